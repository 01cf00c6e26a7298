package models

// Step is one ordered unit of instructional content. Steps belong to a
// technique and are ordered by Idx within a (TechniqueID, Variant) track;
// the (TechniqueID, Variant, Idx) triple is unique.
type Step struct {
	ID          string
	TechniqueID string
	Variant     string
	Idx         int
}
