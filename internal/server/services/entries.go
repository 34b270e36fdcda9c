package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/entrycounter/internal/common"
	"github.com/dmitrijs2005/entrycounter/internal/dbx"
	"github.com/dmitrijs2005/entrycounter/internal/server/models"
	"github.com/dmitrijs2005/entrycounter/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// AddResult is the outcome of EntryService.Add.
type AddResult struct {
	Entry *models.Entry
	// Count is the number of rows right after the insert, including it.
	Count int64
}

type EntryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	newData     func() string
}

func NewEntryService(db *sql.DB, repomanager repomanager.RepositoryManager) *EntryService {
	return &EntryService{
		db:          db,
		repomanager: repomanager,
		newData:     uuid.NewString,
	}
}

// Add stores a new entry holding a random UUID and returns it together with
// the table's row count. Insert and count share one transaction so the
// count always includes this entry. Errors come back as *common.StorageError.
func (s *EntryService) Add(ctx context.Context) (*AddResult, error) {
	data := s.newData()

	var result AddResult

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Entries(tx)

		entry, err := repo.Insert(ctx, data)
		if err != nil {
			return err
		}

		count, err := repo.Count(ctx)
		if err != nil {
			return err
		}

		result = AddResult{Entry: entry, Count: count}
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrStorage) {
			return nil, err
		}
		return nil, common.NewStorageError("add entry", err)
	}

	return &result, nil
}
