package in

import (
	"context"

	"microhub/internal/modules/access/dto"
)

type Usecase interface {
	IsUnlocked(ctx context.Context, input dto.GateInput) (bool, error)
	// Submit waits the verification delay before granting. Cancelling ctx
	// during the wait discards the verification without touching progress.
	Submit(ctx context.Context, input dto.SubmitInput) (dto.SubmitOutput, error)
	Check(ctx context.Context, code string) dto.CheckOutput
}
