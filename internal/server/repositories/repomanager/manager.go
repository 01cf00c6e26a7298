package repomanager

import (
	"context"
	"database/sql"

	"gripgate/internal/dbx"
	"gripgate/internal/server/repositories/achievements"
	"gripgate/internal/server/repositories/profiles"
	"gripgate/internal/server/repositories/progress"
	"gripgate/internal/server/repositories/steps"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Steps(db dbx.DBTX) steps.Repository
	Progress(db dbx.DBTX) progress.Repository
	Profiles(db dbx.DBTX) profiles.Repository
	Achievements(db dbx.DBTX) achievements.Repository
}
