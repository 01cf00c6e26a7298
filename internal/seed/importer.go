package seed

import (
	"context"
	"fmt"

	"gripgate/internal/dbx"
)

// Importer upserts derived rows into the catalog tables. Both statements key
// the conflict on id, so the importer can run against a live database.
type Importer struct {
	db dbx.DBTX
}

func NewImporter(db dbx.DBTX) *Importer {
	return &Importer{db: db}
}

const upsertTechniqueQuery = `
	INSERT INTO technique (id, slug, category, title_en, title_de, skill_level, display_order)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (id) DO UPDATE SET
		slug = EXCLUDED.slug,
		category = EXCLUDED.category,
		title_en = EXCLUDED.title_en,
		title_de = EXCLUDED.title_de,
		skill_level = EXCLUDED.skill_level,
		display_order = EXCLUDED.display_order;`

const upsertStepQuery = `
	INSERT INTO technique_step (id, technique_id, variant, idx, title_en, title_de, cues_en, cues_de)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (id) DO UPDATE SET
		technique_id = EXCLUDED.technique_id,
		variant = EXCLUDED.variant,
		idx = EXCLUDED.idx,
		title_en = EXCLUDED.title_en,
		title_de = EXCLUDED.title_de,
		cues_en = EXCLUDED.cues_en,
		cues_de = EXCLUDED.cues_de;`

func (i *Importer) Apply(ctx context.Context, techniques []TechniqueRow, steps []StepRow) error {
	for _, t := range techniques {
		_, err := i.db.ExecContext(ctx, upsertTechniqueQuery,
			t.ID, t.Slug, t.Category, t.TitleEN, t.TitleDE, t.SkillLevel, t.DisplayOrder)
		if err != nil {
			return fmt.Errorf("upsert technique %s: %w", t.Slug, err)
		}
	}

	for _, s := range steps {
		_, err := i.db.ExecContext(ctx, upsertStepQuery,
			s.ID, s.TechniqueID, s.Variant, s.Idx, s.TitleEN, s.TitleDE, s.CuesEN, s.CuesDE)
		if err != nil {
			return fmt.Errorf("upsert step %s: %w", s.ID, err)
		}
	}

	return nil
}
