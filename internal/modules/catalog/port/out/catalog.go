package out

import (
	"context"

	"microhub/internal/modules/catalog/domain"
)

type CourseSource interface {
	Load(ctx context.Context) (*domain.Registry, error)
}
