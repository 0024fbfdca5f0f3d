package out

import (
	"context"

	"microhub/internal/modules/outreach/dto"
	outreachin "microhub/internal/modules/outreach/port/in"
	"microhub/internal/modules/payment/domain"
	paymentout "microhub/internal/modules/payment/port/out"
)

type OutreachNotifier struct {
	outreach outreachin.Usecase
}

func NewOutreachNotifier(outreach outreachin.Usecase) paymentout.Notifier {
	return &OutreachNotifier{outreach: outreach}
}

func (n *OutreachNotifier) Initiated(ctx context.Context, plan domain.Plan, till string) (paymentout.Sent, error) {
	out, err := n.outreach.PaymentInitiated(ctx, dto.PaymentInitiatedInput{Plan: plan.Name, Amount: plan.Amount, Till: till})
	if err != nil {
		return paymentout.Sent{}, err
	}
	return toSent(out), nil
}

func (n *OutreachNotifier) Confirmed(ctx context.Context, plan domain.Plan, code, mpesaMessage string) (paymentout.Sent, error) {
	out, err := n.outreach.PaymentConfirmed(ctx, dto.PaymentConfirmationInput{Plan: plan.Name, Amount: plan.Amount, Code: code, MpesaMessage: mpesaMessage})
	if err != nil {
		return paymentout.Sent{}, err
	}
	return toSent(out), nil
}

func (n *OutreachNotifier) Contact(ctx context.Context) paymentout.Contact {
	c := n.outreach.Contact(ctx)
	return paymentout.Contact{DisplayPhone: c.DisplayPhone, ChatLink: c.ChatLink}
}

func toSent(out dto.SendOutput) paymentout.Sent {
	return paymentout.Sent{Text: out.Text, Link: out.Link, Opened: out.Opened, Warning: out.Warning}
}
