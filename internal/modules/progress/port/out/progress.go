package out

import (
	"context"

	"microhub/internal/modules/progress/domain"
	"microhub/internal/platform/tx"
)

type TableStore interface {
	Load(ctx context.Context) (domain.Table, error)
	Save(ctx context.Context, table domain.Table) error
}

// ProgressProjector writes the queryable mirror of the progress table.
// Calls made inside Within share one transaction.
type ProgressProjector interface {
	tx.Manager
	Reset(ctx context.Context) error
	Upsert(ctx context.Context, row domain.Row) error
	Rows(ctx context.Context) ([]domain.Row, error)
}
