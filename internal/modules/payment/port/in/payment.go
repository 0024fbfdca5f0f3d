package in

import (
	"context"

	"microhub/internal/modules/payment/dto"
)

type Usecase interface {
	Plans(ctx context.Context) []dto.PlanOutput
	Start(ctx context.Context, plan string) (dto.StartOutput, error)
	// Confirm waits the processing delay; cancelling ctx issues nothing.
	Confirm(ctx context.Context, input dto.ConfirmInput) (dto.ConfirmOutput, error)
}
