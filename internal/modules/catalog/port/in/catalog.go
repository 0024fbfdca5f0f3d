package in

import (
	"context"

	"microhub/internal/modules/catalog/dto"
)

type Usecase interface {
	List(ctx context.Context, input dto.ListInput) ([]dto.CourseSummary, error)
	Get(ctx context.Context, id string) (dto.CourseDetail, error)
	Filters(ctx context.Context) (dto.FiltersOutput, error)
}
