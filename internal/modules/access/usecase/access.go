package usecase

import (
	"context"

	"microhub/internal/modules/access/domain"
	"microhub/internal/modules/access/dto"
	accessin "microhub/internal/modules/access/port/in"
	"microhub/internal/modules/access/service"
)

type Interactor struct {
	svc *service.GateService
}

func NewInteractor(svc *service.GateService) accessin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) IsUnlocked(ctx context.Context, input dto.GateInput) (bool, error) {
	return i.svc.IsUnlocked(ctx, input.CourseID, input.IsFree)
}

func (i *Interactor) Submit(ctx context.Context, input dto.SubmitInput) (dto.SubmitOutput, error) {
	outcome, err := i.svc.Submit(ctx, input.CourseID, input.IsFree, input.Code)
	if err != nil {
		return dto.SubmitOutput{}, err
	}
	v := outcome.Verdict
	return dto.SubmitOutput{
		CourseID: input.CourseID,
		Code:     v.Code,
		Accepted: v.Accepted,
		Kind:     string(v.Kind),
		Reason:   string(v.Reason),
		Message:  v.Message(),
		Warning:  outcome.Warning,
	}, nil
}

func (i *Interactor) Check(_ context.Context, code string) dto.CheckOutput {
	v := domain.Check(code)
	return dto.CheckOutput{Code: v.Code, Accepted: v.Accepted, Kind: string(v.Kind), Reason: string(v.Reason)}
}
