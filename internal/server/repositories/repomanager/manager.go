package repomanager

import (
	"github.com/dmitrijs2005/entrycounter/internal/dbx"
	"github.com/dmitrijs2005/entrycounter/internal/server/repositories/entries"
	"github.com/dmitrijs2005/entrycounter/internal/server/repositories/schema"
)

type RepositoryManager interface {
	Entries(db dbx.DBTX) entries.Repository
	Schema(db dbx.DBTX) schema.Repository
}
