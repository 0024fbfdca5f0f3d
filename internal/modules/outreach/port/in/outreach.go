package in

import (
	"context"

	"microhub/internal/modules/outreach/dto"
)

type Usecase interface {
	SubmitQuiz(ctx context.Context, input dto.QuizSubmissionInput) (dto.SendOutput, error)
	Join(ctx context.Context, input dto.JoinInput) (dto.SendOutput, error)
	RequestCertificate(ctx context.Context, input dto.CertificateInput) (dto.SendOutput, error)
	Partnership(ctx context.Context, input dto.PartnershipInput) (dto.SendOutput, error)
	RegisterGroup(ctx context.Context, input dto.GroupRegistrationInput) (dto.SendOutput, error)
	RequestAccess(ctx context.Context, input dto.AccessRequestInput) (dto.SendOutput, error)
	GroupPricing(ctx context.Context, input dto.GroupPricingInput) (dto.SendOutput, error)
	PaymentInitiated(ctx context.Context, input dto.PaymentInitiatedInput) (dto.SendOutput, error)
	PaymentConfirmed(ctx context.Context, input dto.PaymentConfirmationInput) (dto.SendOutput, error)
	Contact(ctx context.Context) dto.ContactOutput
}
