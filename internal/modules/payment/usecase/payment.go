package usecase

import (
	"context"

	"microhub/internal/modules/payment/domain"
	"microhub/internal/modules/payment/dto"
	paymentin "microhub/internal/modules/payment/port/in"
	"microhub/internal/modules/payment/service"
)

type Interactor struct {
	svc *service.PaymentService
}

func NewInteractor(svc *service.PaymentService) paymentin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Plans(_ context.Context) []dto.PlanOutput {
	plans := i.svc.Plans()
	out := make([]dto.PlanOutput, 0, len(plans))
	for _, p := range plans {
		out = append(out, toPlan(p))
	}
	return out
}

func (i *Interactor) Start(ctx context.Context, plan string) (dto.StartOutput, error) {
	started, err := i.svc.Start(ctx, plan)
	if err != nil {
		return dto.StartOutput{}, err
	}
	in := started.Instructions
	return dto.StartOutput{
		Plan:      toPlan(in.Plan),
		Till:      in.Till,
		Method:    in.Method,
		Reference: in.Reference,
		Text:      started.Sent.Text,
		Link:      started.Sent.Link,
		Opened:    started.Sent.Opened,
		Warning:   started.Sent.Warning,
	}, nil
}

func (i *Interactor) Confirm(ctx context.Context, input dto.ConfirmInput) (dto.ConfirmOutput, error) {
	confirmed, err := i.svc.Confirm(ctx, input.Plan, input.MpesaMessage)
	if err != nil {
		return dto.ConfirmOutput{}, err
	}
	return dto.ConfirmOutput{
		Plan:        toPlan(confirmed.Plan),
		Code:        confirmed.Code,
		Text:        confirmed.Sent.Text,
		Link:        confirmed.Sent.Link,
		Opened:      confirmed.Sent.Opened,
		ReceiptPath: confirmed.ReceiptPath,
		Warning:     confirmed.Warning,
	}, nil
}

func toPlan(p domain.Plan) dto.PlanOutput {
	return dto.PlanOutput{
		Name:          p.Name,
		Title:         p.Title,
		Price:         p.Price(),
		Amount:        p.Amount,
		OriginalPrice: p.OriginalPrice,
		Badge:         p.Badge,
		Description:   p.Description,
		Features:      append([]string(nil), p.Features...),
	}
}
