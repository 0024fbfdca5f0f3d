package usecase

import (
	"context"
	"fmt"
	"strings"

	"microhub/internal/modules/progress/domain"
	"microhub/internal/modules/progress/dto"
	progressin "microhub/internal/modules/progress/port/in"
	"microhub/internal/modules/progress/service"
	apperrors "microhub/internal/platform/errors"
)

type Interactor struct {
	svc *service.ProgressService
}

func NewInteractor(svc *service.ProgressService) progressin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Get(_ context.Context, input dto.CourseRef) (dto.ProgressOutput, error) {
	if err := requireCourse(input.CourseID); err != nil {
		return dto.ProgressOutput{}, err
	}
	return toOutput(input.CourseID, i.svc.Bind(input.CourseID, input.IsFree).Progress()), nil
}

func (i *Interactor) List(ctx context.Context) ([]dto.ProgressOutput, error) {
	table := i.svc.Snapshot(ctx)
	out := make([]dto.ProgressOutput, 0, len(table))
	for _, id := range table.CourseIDs() {
		out = append(out, toOutput(id, table[id]))
	}
	return out, nil
}

func (i *Interactor) MarkLessonComplete(ctx context.Context, input dto.MarkLessonInput) (dto.MutationOutput, error) {
	if err := requireCourse(input.CourseID); err != nil {
		return dto.MutationOutput{}, err
	}
	res, err := i.svc.Bind(input.CourseID, input.IsFree).MarkLessonComplete(ctx, input.LessonID)
	if err != nil {
		return dto.MutationOutput{}, err
	}
	return toMutation(input.CourseID, res), nil
}

func (i *Interactor) GrantAccess(ctx context.Context, input dto.GrantAccessInput) (dto.MutationOutput, error) {
	if err := requireCourse(input.CourseID); err != nil {
		return dto.MutationOutput{}, err
	}
	res, err := i.svc.Bind(input.CourseID, input.IsFree).GrantAccess(ctx, strings.TrimSpace(input.Code))
	if err != nil {
		return dto.MutationOutput{}, err
	}
	return toMutation(input.CourseID, res), nil
}

func (i *Interactor) MarkQuizSubmitted(ctx context.Context, input dto.CourseRef) (dto.MutationOutput, error) {
	if err := requireCourse(input.CourseID); err != nil {
		return dto.MutationOutput{}, err
	}
	res, err := i.svc.Bind(input.CourseID, input.IsFree).MarkQuizSubmitted(ctx)
	if err != nil {
		return dto.MutationOutput{}, err
	}
	return toMutation(input.CourseID, res), nil
}

func (i *Interactor) Reset(ctx context.Context, input dto.CourseRef) (dto.MutationOutput, error) {
	if err := requireCourse(input.CourseID); err != nil {
		return dto.MutationOutput{}, err
	}
	res, err := i.svc.Bind(input.CourseID, input.IsFree).Reset(ctx)
	if err != nil {
		return dto.MutationOutput{}, err
	}
	return toMutation(input.CourseID, res), nil
}

func (i *Interactor) Reindex(ctx context.Context) error {
	return i.svc.Reindex(ctx)
}

func (i *Interactor) Report(ctx context.Context) ([]dto.ReportRow, error) {
	rows, err := i.svc.Report(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ReportRow{
			CourseID:       r.CourseID,
			CompletedCount: r.CompletedCount,
			UnlockedMax:    r.UnlockedMax,
			HasAccess:      r.HasAccess,
			AccessCode:     r.AccessCode,
			QuizSubmitted:  r.QuizSubmitted,
			UpdatedAt:      r.UpdatedAt,
		})
	}
	return out, nil
}

func requireCourse(courseID string) error {
	if strings.TrimSpace(courseID) == "" {
		return fmt.Errorf("course id is required: %w", apperrors.ErrInvalidInput)
	}
	return nil
}

func toOutput(courseID string, p domain.CourseProgress) dto.ProgressOutput {
	return dto.ProgressOutput{
		CourseID:         courseID,
		CompletedLessons: p.CompletedLessons.Sorted(),
		UnlockedLessons:  p.UnlockedLessons.Sorted(),
		CompletedCount:   len(p.CompletedLessons),
		HasAccess:        p.HasAccess,
		AccessCode:       p.AccessCode,
		QuizSubmitted:    p.QuizSubmitted,
		UpdatedAt:        p.UpdatedAt,
	}
}

func toMutation(courseID string, res service.Result) dto.MutationOutput {
	out := dto.MutationOutput{Progress: toOutput(courseID, res.Progress), Changed: res.Changed}
	if res.Warning != nil {
		out.Warning = "progress was not saved: " + res.Warning.Error()
	}
	return out
}
