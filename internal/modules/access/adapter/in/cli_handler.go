package in

import (
	"context"

	"microhub/internal/modules/access/dto"
	accessin "microhub/internal/modules/access/port/in"
)

type CLIHandler struct {
	usecase accessin.Usecase
}

func NewCLIHandler(usecase accessin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Check(ctx context.Context, code string) dto.CheckOutput {
	return h.usecase.Check(ctx, code)
}
