package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/bijligrid/internal/dbx"
	"github.com/dmitrijs2005/bijligrid/internal/server/repositories/assets"
	"github.com/dmitrijs2005/bijligrid/internal/server/repositories/history"
	"github.com/dmitrijs2005/bijligrid/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/bijligrid/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Profiles(db dbx.DBTX) profiles.Repository
	Assets(db dbx.DBTX) assets.Repository
	History(db dbx.DBTX) history.Repository
}
