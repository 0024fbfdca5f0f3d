package out

import (
	"context"

	"microhub/internal/modules/access/dto"
	accessin "microhub/internal/modules/access/port/in"
	courseout "microhub/internal/modules/course/port/out"
)

type GateAdapter struct {
	gate accessin.Usecase
}

func NewGateAdapter(gate accessin.Usecase) courseout.GatePort {
	return &GateAdapter{gate: gate}
}

func (a *GateAdapter) IsUnlocked(ctx context.Context, courseID string, isFree bool) (bool, error) {
	return a.gate.IsUnlocked(ctx, dto.GateInput{CourseID: courseID, IsFree: isFree})
}

func (a *GateAdapter) Redeem(ctx context.Context, courseID string, isFree bool, code string) (courseout.GateResult, error) {
	out, err := a.gate.Submit(ctx, dto.SubmitInput{CourseID: courseID, IsFree: isFree, Code: code})
	if err != nil {
		return courseout.GateResult{}, err
	}
	return courseout.GateResult{Accepted: out.Accepted, Reason: out.Reason, Message: out.Message, Warning: out.Warning}, nil
}
