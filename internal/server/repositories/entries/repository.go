package entries

import (
	"context"

	"github.com/dmitrijs2005/entrycounter/internal/server/models"
)

type Repository interface {
	Insert(ctx context.Context, data string) (*models.Entry, error)
	Count(ctx context.Context) (int64, error)
}
