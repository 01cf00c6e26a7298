// Package seed imports the technique catalog from JSON fixtures. Ids are
// deterministic UUIDv5 values derived from the natural keys, so re-running
// the importer rewrites the same rows instead of growing the catalog.
package seed

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Stable namespaces for id derivation. Changing either rewrites every id in
// the catalog and orphans all recorded progress.
var (
	namespaceTechnique = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	namespaceStep      = uuid.MustParse("6ba7b811-9dad-11d1-80b4-00c04fd430c8")
)

// Expected fixture shape for the launch catalog.
const (
	expectedTechniques = 20
	minSteps           = 80
	maxSteps           = 120
)

// Technique is one entry of techniques.json.
type Technique struct {
	Slug         string `json:"slug"`
	Category     string `json:"category"`
	TitleEN      string `json:"title_en"`
	TitleDE      string `json:"title_de"`
	SkillLevel   string `json:"skill_level"`
	DisplayOrder int    `json:"display_order"`
}

// Step is one entry of steps.json, keyed by (technique_slug, variant, idx).
type Step struct {
	TechniqueSlug string `json:"technique_slug"`
	Idx           int    `json:"idx"`
	Variant       string `json:"variant"`
	TitleEN       string `json:"title_en"`
	TitleDE       string `json:"title_de"`
	CuesEN        string `json:"cues_en"`
	CuesDE        string `json:"cues_de"`
}

// Fixtures is the parsed pair of seed files.
type Fixtures struct {
	Techniques []Technique
	Steps      []Step
}

// Load reads techniques.json and steps.json from dir.
func Load(dir string) (*Fixtures, error) {
	var f Fixtures
	if err := readJSON(filepath.Join(dir, "techniques.json"), &f.Techniques); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, "steps.json"), &f.Steps); err != nil {
		return nil, err
	}
	return &f, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// Validate checks counts, referential integrity and natural-key uniqueness.
// It returns every problem found, not just the first.
func (f *Fixtures) Validate() []string {
	var problems []string

	if len(f.Techniques) != expectedTechniques {
		problems = append(problems,
			fmt.Sprintf("expected %d techniques, got %d", expectedTechniques, len(f.Techniques)))
	}
	if len(f.Steps) < minSteps || len(f.Steps) > maxSteps {
		problems = append(problems,
			fmt.Sprintf("expected %d-%d steps, got %d", minSteps, maxSteps, len(f.Steps)))
	}

	slugs := make(map[string]struct{}, len(f.Techniques))
	for _, t := range f.Techniques {
		if _, dup := slugs[t.Slug]; dup {
			problems = append(problems, fmt.Sprintf("duplicate technique slug: %s", t.Slug))
		}
		slugs[t.Slug] = struct{}{}
	}

	keys := make(map[string]struct{}, len(f.Steps))
	for _, s := range f.Steps {
		if _, ok := slugs[s.TechniqueSlug]; !ok {
			problems = append(problems,
				fmt.Sprintf("step references unknown technique: %s", s.TechniqueSlug))
		}
		key := stepKey(s.TechniqueSlug, s.Variant, s.Idx)
		if _, dup := keys[key]; dup {
			problems = append(problems, fmt.Sprintf("duplicate step key: %s", key))
		}
		keys[key] = struct{}{}
	}

	return problems
}

func stepKey(slug, variant string, idx int) string {
	return fmt.Sprintf("%s:%s:%d", slug, variant, idx)
}

// TechniqueID derives the stable id for a technique slug.
func TechniqueID(slug string) uuid.UUID {
	return uuid.NewSHA1(namespaceTechnique, []byte(slug))
}

// StepID derives the stable id for a step's natural key.
func StepID(slug, variant string, idx int) uuid.UUID {
	return uuid.NewSHA1(namespaceStep, []byte(stepKey(slug, variant, idx)))
}

// TechniqueRow is a technique ready for upsert.
type TechniqueRow struct {
	ID           uuid.UUID
	Slug         string
	Category     string
	TitleEN      string
	TitleDE      string
	SkillLevel   string
	DisplayOrder int
}

// StepRow is a step ready for upsert, with its technique id resolved.
type StepRow struct {
	ID          uuid.UUID
	TechniqueID uuid.UUID
	Variant     string
	Idx         int
	TitleEN     string
	TitleDE     string
	CuesEN      string
	CuesDE      string
}

// Rows derives ids and resolves step references. Call Validate first; an
// unknown technique slug here is a programming error and panics via the map
// lookup producing a zero id, so Rows re-checks and returns the error.
func (f *Fixtures) Rows() ([]TechniqueRow, []StepRow, error) {
	techniqueRows := make([]TechniqueRow, 0, len(f.Techniques))
	idBySlug := make(map[string]uuid.UUID, len(f.Techniques))

	for _, t := range f.Techniques {
		id := TechniqueID(t.Slug)
		idBySlug[t.Slug] = id
		techniqueRows = append(techniqueRows, TechniqueRow{
			ID:           id,
			Slug:         t.Slug,
			Category:     t.Category,
			TitleEN:      t.TitleEN,
			TitleDE:      t.TitleDE,
			SkillLevel:   t.SkillLevel,
			DisplayOrder: t.DisplayOrder,
		})
	}

	stepRows := make([]StepRow, 0, len(f.Steps))
	for _, s := range f.Steps {
		techniqueID, ok := idBySlug[s.TechniqueSlug]
		if !ok {
			return nil, nil, fmt.Errorf("step references unknown technique: %s", s.TechniqueSlug)
		}
		stepRows = append(stepRows, StepRow{
			ID:          StepID(s.TechniqueSlug, s.Variant, s.Idx),
			TechniqueID: techniqueID,
			Variant:     s.Variant,
			Idx:         s.Idx,
			TitleEN:     s.TitleEN,
			TitleDE:     s.TitleDE,
			CuesEN:      s.CuesEN,
			CuesDE:      s.CuesDE,
		})
	}

	return techniqueRows, stepRows, nil
}
