package in

import (
	"context"

	"microhub/internal/modules/progress/dto"
	progressin "microhub/internal/modules/progress/port/in"
)

type CLIHandler struct {
	usecase progressin.Usecase
}

func NewCLIHandler(usecase progressin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Show(ctx context.Context, courseID string, isFree bool) (dto.ProgressOutput, error) {
	return h.usecase.Get(ctx, dto.CourseRef{CourseID: courseID, IsFree: isFree})
}

func (h CLIHandler) List(ctx context.Context) ([]dto.ProgressOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Reset(ctx context.Context, courseID string, isFree bool) (dto.MutationOutput, error) {
	return h.usecase.Reset(ctx, dto.CourseRef{CourseID: courseID, IsFree: isFree})
}

func (h CLIHandler) Reindex(ctx context.Context) error {
	return h.usecase.Reindex(ctx)
}

func (h CLIHandler) Report(ctx context.Context) ([]dto.ReportRow, error) {
	return h.usecase.Report(ctx)
}
