package out

import (
	"context"

	accessin "microhub/internal/modules/access/port/in"
	paymentout "microhub/internal/modules/payment/port/out"
)

type AccessCodeVerifier struct {
	access accessin.Usecase
}

func NewAccessCodeVerifier(access accessin.Usecase) paymentout.CodeVerifier {
	return &AccessCodeVerifier{access: access}
}

func (v *AccessCodeVerifier) Accepts(ctx context.Context, code string) bool {
	return v.access.Check(ctx, code).Accepted
}
