package out

import (
	"context"

	accessout "microhub/internal/modules/access/port/out"
	"microhub/internal/modules/progress/dto"
	progressin "microhub/internal/modules/progress/port/in"
)

type ProgressGrantAdapter struct {
	progress progressin.Usecase
}

func NewProgressGrantAdapter(progress progressin.Usecase) accessout.ProgressPort {
	return &ProgressGrantAdapter{progress: progress}
}

func (a *ProgressGrantAdapter) HasAccess(ctx context.Context, courseID string, isFree bool) (bool, error) {
	p, err := a.progress.Get(ctx, dto.CourseRef{CourseID: courseID, IsFree: isFree})
	if err != nil {
		return false, err
	}
	return p.HasAccess, nil
}

func (a *ProgressGrantAdapter) Grant(ctx context.Context, courseID string, isFree bool, code string) (string, error) {
	out, err := a.progress.GrantAccess(ctx, dto.GrantAccessInput{CourseID: courseID, IsFree: isFree, Code: code})
	if err != nil {
		return "", err
	}
	return out.Warning, nil
}
