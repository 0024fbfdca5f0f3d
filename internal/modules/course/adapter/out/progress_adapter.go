package out

import (
	"context"

	"microhub/internal/modules/course/domain"
	courseout "microhub/internal/modules/course/port/out"
	"microhub/internal/modules/progress/dto"
	progressin "microhub/internal/modules/progress/port/in"
)

type ProgressAdapter struct {
	progress progressin.Usecase
}

func NewProgressAdapter(progress progressin.Usecase) courseout.ProgressPort {
	return &ProgressAdapter{progress: progress}
}

func (a *ProgressAdapter) Get(ctx context.Context, courseID string, isFree bool) (domain.Progress, error) {
	out, err := a.progress.Get(ctx, dto.CourseRef{CourseID: courseID, IsFree: isFree})
	if err != nil {
		return domain.Progress{}, err
	}
	return toProgress(out), nil
}

func (a *ProgressAdapter) CompleteLesson(ctx context.Context, courseID string, isFree bool, lesson int) (domain.Progress, string, error) {
	out, err := a.progress.MarkLessonComplete(ctx, dto.MarkLessonInput{CourseID: courseID, IsFree: isFree, LessonID: lesson})
	if err != nil {
		return domain.Progress{}, "", err
	}
	return toProgress(out.Progress), out.Warning, nil
}

func (a *ProgressAdapter) MarkQuizSubmitted(ctx context.Context, courseID string, isFree bool) (string, error) {
	out, err := a.progress.MarkQuizSubmitted(ctx, dto.CourseRef{CourseID: courseID, IsFree: isFree})
	if err != nil {
		return "", err
	}
	return out.Warning, nil
}

func toProgress(out dto.ProgressOutput) domain.Progress {
	return domain.Progress{
		Completed:     out.CompletedLessons,
		Unlocked:      out.UnlockedLessons,
		HasAccess:     out.HasAccess,
		AccessCode:    out.AccessCode,
		QuizSubmitted: out.QuizSubmitted,
	}
}
