package in

import (
	"context"

	"microhub/internal/modules/outreach/dto"
	outreachin "microhub/internal/modules/outreach/port/in"
)

type CLIHandler struct {
	usecase outreachin.Usecase
}

func NewCLIHandler(usecase outreachin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Join(ctx context.Context, input dto.JoinInput) (dto.SendOutput, error) {
	return h.usecase.Join(ctx, input)
}

func (h CLIHandler) Certificate(ctx context.Context, input dto.CertificateInput) (dto.SendOutput, error) {
	return h.usecase.RequestCertificate(ctx, input)
}

func (h CLIHandler) Partnership(ctx context.Context, input dto.PartnershipInput) (dto.SendOutput, error) {
	return h.usecase.Partnership(ctx, input)
}

func (h CLIHandler) Group(ctx context.Context, input dto.GroupRegistrationInput) (dto.SendOutput, error) {
	return h.usecase.RegisterGroup(ctx, input)
}

func (h CLIHandler) Request(ctx context.Context, input dto.AccessRequestInput) (dto.SendOutput, error) {
	return h.usecase.RequestAccess(ctx, input)
}

func (h CLIHandler) GroupPricing(ctx context.Context, input dto.GroupPricingInput) (dto.SendOutput, error) {
	return h.usecase.GroupPricing(ctx, input)
}

func (h CLIHandler) Contact(ctx context.Context) dto.ContactOutput {
	return h.usecase.Contact(ctx)
}
