package in

import (
	"context"

	"microhub/internal/modules/progress/dto"
)

type Usecase interface {
	Get(ctx context.Context, input dto.CourseRef) (dto.ProgressOutput, error)
	List(ctx context.Context) ([]dto.ProgressOutput, error)
	MarkLessonComplete(ctx context.Context, input dto.MarkLessonInput) (dto.MutationOutput, error)
	GrantAccess(ctx context.Context, input dto.GrantAccessInput) (dto.MutationOutput, error)
	MarkQuizSubmitted(ctx context.Context, input dto.CourseRef) (dto.MutationOutput, error)
	Reset(ctx context.Context, input dto.CourseRef) (dto.MutationOutput, error)
	Reindex(ctx context.Context) error
	Report(ctx context.Context) ([]dto.ReportRow, error)
}
