package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"microhub/internal/modules/payment/domain"
	paymentout "microhub/internal/modules/payment/port/out"
	"microhub/internal/platform/clock"
	apperrors "microhub/internal/platform/errors"
	"microhub/internal/platform/logging"
)

type Started struct {
	Instructions domain.Instructions
	Sent         paymentout.Sent
}

type Confirmed struct {
	Plan        domain.Plan
	Code        string
	Sent        paymentout.Sent
	ReceiptPath string
	Warning     string
}

// PaymentService simulates the till payment flow. No money moves; a
// confirmation message is accepted as is and a code is issued after the
// processing delay.
type PaymentService struct {
	clock    clock.Clock
	delay    time.Duration
	till     string
	intn     func(n int) int
	notifier paymentout.Notifier
	verifier paymentout.CodeVerifier
	receipts paymentout.ReceiptStore
	logger   *slog.Logger
}

func NewPaymentService(
	clock clock.Clock,
	delay time.Duration,
	till string,
	intn func(n int) int,
	notifier paymentout.Notifier,
	verifier paymentout.CodeVerifier,
	receipts paymentout.ReceiptStore,
	logger *slog.Logger,
) *PaymentService {
	return &PaymentService{
		clock:    clock,
		delay:    delay,
		till:     till,
		intn:     intn,
		notifier: notifier,
		verifier: verifier,
		receipts: receipts,
		logger:   logging.OrDiscard(logger),
	}
}

func (s *PaymentService) Plans() []domain.Plan { return domain.Plans() }

func (s *PaymentService) Start(ctx context.Context, planName string) (Started, error) {
	plan, err := domain.LookupPlan(planName)
	if err != nil {
		return Started{}, err
	}
	sent, err := s.notifier.Initiated(ctx, plan, s.till)
	if err != nil {
		return Started{}, err
	}
	s.logger.Info("payment initiated", "plan", plan.Name, "amount", plan.Amount)
	return Started{Instructions: domain.InstructionsFor(plan, s.till), Sent: sent}, nil
}

func (s *PaymentService) Confirm(ctx context.Context, planName, mpesaMessage string) (Confirmed, error) {
	plan, err := domain.LookupPlan(planName)
	if err != nil {
		return Confirmed{}, err
	}
	message := strings.TrimSpace(mpesaMessage)
	if message == "" {
		return Confirmed{}, fmt.Errorf("mpesa confirmation message: %w", apperrors.ErrInvalidInput)
	}
	if err := s.wait(ctx); err != nil {
		s.logger.Info("payment confirmation cancelled", "plan", plan.Name)
		return Confirmed{}, err
	}

	code := domain.GenerateCode(plan, s.intn)
	if !s.verifier.Accepts(ctx, code) {
		return Confirmed{}, fmt.Errorf("issued code %q is not redeemable", code)
	}
	sent, err := s.notifier.Confirmed(ctx, plan, code, message)
	if err != nil {
		return Confirmed{}, err
	}

	contact := s.notifier.Contact(ctx)
	receipt := domain.Receipt{
		Plan:         plan,
		Till:         s.till,
		Code:         code,
		IssuedAt:     s.clock.Now(),
		DisplayPhone: contact.DisplayPhone,
		ChatLink:     contact.ChatLink,
	}
	out := Confirmed{Plan: plan, Code: code, Sent: sent}
	var warnings []error
	if sent.Warning != "" {
		warnings = append(warnings, errors.New(sent.Warning))
	}
	path, err := s.receipts.Save(ctx, receipt)
	if err != nil {
		s.logger.Warn("write receipt failed", "plan", plan.Name, "error", err)
		warnings = append(warnings, fmt.Errorf("receipt was not saved: %w", err))
	}
	out.ReceiptPath = path
	if joined := errors.Join(warnings...); joined != nil {
		out.Warning = joined.Error()
	}
	s.logger.Info("payment confirmed", "plan", plan.Name, "receipt", path)
	return out, nil
}

func (s *PaymentService) wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.clock.After(s.delay):
		return nil
	}
}
