// Command seed imports technique and step fixtures into the database.
//
// Usage:
//
//	export DATABASE_DSN=postgres://...
//	seed -seeds seeds -dry-run
//	seed -seeds seeds -apply
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"

	"gripgate/internal/dbx"
	"gripgate/internal/seed"
)

func main() {
	dir := flag.String("seeds", "seeds", "directory containing techniques.json and steps.json")
	dryRun := flag.Bool("dry-run", false, "validate and preview without writing")
	apply := flag.Bool("apply", false, "write rows to the database")
	flag.Parse()

	if *dryRun == *apply {
		log.Fatal("specify exactly one of -dry-run or -apply")
	}

	fixtures, err := seed.Load(*dir)
	if err != nil {
		log.Fatalf("load fixtures: %v", err)
	}
	fmt.Printf("loaded %d techniques, %d steps\n", len(fixtures.Techniques), len(fixtures.Steps))

	if problems := fixtures.Validate(); len(problems) > 0 {
		fmt.Fprintln(os.Stderr, "validation failed:")
		for _, p := range problems {
			fmt.Fprintf(os.Stderr, "  - %s\n", p)
		}
		os.Exit(1)
	}
	fmt.Println("validation passed")

	techniques, steps, err := fixtures.Rows()
	if err != nil {
		log.Fatalf("derive rows: %v", err)
	}

	if *dryRun {
		fmt.Printf("dry-run: %d technique rows, %d step rows\n", len(techniques), len(steps))
		fmt.Printf("sample technique: %s -> %s\n", techniques[0].Slug, techniques[0].ID)
		fmt.Printf("sample step: %s/%s/%d -> %s\n",
			fixtures.Steps[0].TechniqueSlug, steps[0].Variant, steps[0].Idx, steps[0].ID)
		fmt.Println("dry-run complete, use -apply to execute")
		return
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("DATABASE_DSN is required with -apply")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	err = dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return seed.NewImporter(tx).Apply(ctx, techniques, steps)
	})
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	fmt.Printf("import complete: %d techniques, %d steps\n", len(techniques), len(steps))
}
