package in

import (
	"context"

	"microhub/internal/modules/catalog/dto"
	catalogin "microhub/internal/modules/catalog/port/in"
)

type CLIHandler struct {
	usecase catalogin.Usecase
}

func NewCLIHandler(usecase catalogin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context, category, level string) ([]dto.CourseSummary, error) {
	return h.usecase.List(ctx, dto.ListInput{Category: category, Level: level})
}

func (h CLIHandler) Show(ctx context.Context, id string) (dto.CourseDetail, error) {
	return h.usecase.Get(ctx, id)
}

func (h CLIHandler) Filters(ctx context.Context) (dto.FiltersOutput, error) {
	return h.usecase.Filters(ctx)
}
