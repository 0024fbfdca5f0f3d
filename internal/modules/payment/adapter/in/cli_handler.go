package in

import (
	"context"

	"microhub/internal/modules/payment/dto"
	paymentin "microhub/internal/modules/payment/port/in"
)

type CLIHandler struct {
	usecase paymentin.Usecase
}

func NewCLIHandler(usecase paymentin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Plans(ctx context.Context) []dto.PlanOutput {
	return h.usecase.Plans(ctx)
}

func (h CLIHandler) Start(ctx context.Context, plan string) (dto.StartOutput, error) {
	return h.usecase.Start(ctx, plan)
}

func (h CLIHandler) Confirm(ctx context.Context, plan, message string) (dto.ConfirmOutput, error) {
	return h.usecase.Confirm(ctx, dto.ConfirmInput{Plan: plan, MpesaMessage: message})
}
