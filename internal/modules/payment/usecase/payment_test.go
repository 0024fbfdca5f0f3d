package usecase_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	accessdomain "microhub/internal/modules/access/domain"
	paymentoutadapter "microhub/internal/modules/payment/adapter/out"
	"microhub/internal/modules/payment/domain"
	"microhub/internal/modules/payment/dto"
	paymentin "microhub/internal/modules/payment/port/in"
	paymentout "microhub/internal/modules/payment/port/out"
	"microhub/internal/modules/payment/service"
	"microhub/internal/modules/payment/usecase"
	apperrors "microhub/internal/platform/errors"
)

type manualClock struct {
	fire     chan time.Time
	requests chan time.Duration
}

func newManualClock() *manualClock {
	return &manualClock{fire: make(chan time.Time, 1), requests: make(chan time.Duration, 1)}
}

func (c *manualClock) Now() time.Time { return time.Date(2026, 3, 7, 9, 5, 0, 0, time.UTC) }

func (c *manualClock) After(d time.Duration) <-chan time.Time {
	c.requests <- d
	return c.fire
}

type fakeNotifier struct {
	initiated []string
	confirmed []string
}

func (n *fakeNotifier) Initiated(_ context.Context, plan domain.Plan, till string) (paymentout.Sent, error) {
	n.initiated = append(n.initiated, plan.Name+"@"+till)
	return paymentout.Sent{Text: "New Payment Initiated", Link: "https://api.whatsapp.com/send?phone=254710654707&text=init"}, nil
}

func (n *fakeNotifier) Confirmed(_ context.Context, _ domain.Plan, code, message string) (paymentout.Sent, error) {
	n.confirmed = append(n.confirmed, code+"|"+message)
	return paymentout.Sent{Text: "Payment Confirmation Received", Link: "https://api.whatsapp.com/send?phone=254710654707&text=done"}, nil
}

func (n *fakeNotifier) Contact(context.Context) paymentout.Contact {
	return paymentout.Contact{DisplayPhone: "+254 710 654 707", ChatLink: "https://wa.me/254710654707"}
}

type gateVerifier struct{}

func (gateVerifier) Accepts(_ context.Context, code string) bool {
	return accessdomain.Check(code).Accepted
}

func newPayment(t *testing.T, clk *manualClock, delay time.Duration) (paymentin.Usecase, *fakeNotifier, string) {
	t.Helper()
	notifier := &fakeNotifier{}
	home := t.TempDir()
	svc := service.NewPaymentService(clk, delay, "705768", func(int) int { return 3321 }, notifier, gateVerifier{}, paymentoutadapter.NewFileReceiptStore(home), nil)
	return usecase.NewInteractor(svc), notifier, home
}

func TestStartReturnsTillInstructions(t *testing.T) {
	t.Parallel()
	uc, notifier, _ := newPayment(t, newManualClock(), 0)
	out, err := uc.Start(context.Background(), "full")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if out.Till != "705768" || out.Reference != "MHUB-FULL" || out.Plan.Price != "KES 100" || out.Link == "" {
		t.Fatalf("unexpected instructions: %+v", out)
	}
	if len(notifier.initiated) != 1 || notifier.initiated[0] != "full@705768" {
		t.Fatalf("expected admin notification, got %v", notifier.initiated)
	}
	if _, err := uc.Start(context.Background(), "gold"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid plan, got %v", err)
	}
}

func TestConfirmRequiresMessage(t *testing.T) {
	t.Parallel()
	clk := newManualClock()
	uc, notifier, _ := newPayment(t, clk, 2*time.Second)
	_, err := uc.Confirm(context.Background(), dto.ConfirmInput{Plan: "full", MpesaMessage: "   "})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if len(clk.requests) != 0 || len(notifier.confirmed) != 0 {
		t.Fatalf("empty message must not wait or notify")
	}
}

func TestConfirmWaitsThenIssuesCode(t *testing.T) {
	t.Parallel()
	clk := newManualClock()
	uc, notifier, home := newPayment(t, clk, 2*time.Second)

	done := make(chan dto.ConfirmOutput, 1)
	errs := make(chan error, 1)
	go func() {
		out, err := uc.Confirm(context.Background(), dto.ConfirmInput{Plan: "premium", MpesaMessage: "QWE123 Confirmed. Ksh200.00 paid"})
		if err != nil {
			errs <- err
			return
		}
		done <- out
	}()

	if d := <-clk.requests; d != 2*time.Second {
		t.Fatalf("expected 2s processing delay, got %s", d)
	}
	clk.fire <- clk.Now()

	var out dto.ConfirmOutput
	select {
	case err := <-errs:
		t.Fatalf("confirm: %v", err)
	case out = <-done:
	}
	if out.Code != "4321-CERT-KES200" {
		t.Fatalf("unexpected code %q", out.Code)
	}
	if len(notifier.confirmed) != 1 || notifier.confirmed[0] != "4321-CERT-KES200|QWE123 Confirmed. Ksh200.00 paid" {
		t.Fatalf("unexpected confirmation notice: %v", notifier.confirmed)
	}
	if !strings.HasPrefix(out.ReceiptPath, home) {
		t.Fatalf("receipt outside home: %s", out.ReceiptPath)
	}
	raw, err := os.ReadFile(out.ReceiptPath)
	if err != nil {
		t.Fatalf("read receipt: %v", err)
	}
	if !strings.Contains(string(raw), "Access Code: 4321-CERT-KES200") || !strings.Contains(string(raw), "Plan: PREMIUM ACCESS") {
		t.Fatalf("unexpected receipt:\n%s", raw)
	}
}

func TestConfirmCancelledIssuesNothing(t *testing.T) {
	t.Parallel()
	clk := newManualClock()
	uc, notifier, home := newPayment(t, clk, 2*time.Second)
	ctx, cancel := context.WithCancel(context.Background())

	errs := make(chan error, 1)
	go func() {
		_, err := uc.Confirm(ctx, dto.ConfirmInput{Plan: "full", MpesaMessage: "paid"})
		errs <- err
	}()
	<-clk.requests
	cancel()

	if err := <-errs; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if len(notifier.confirmed) != 0 {
		t.Fatalf("cancelled confirmation must not notify")
	}
	if _, err := os.Stat(home + "/receipts"); !os.IsNotExist(err) {
		t.Fatalf("cancelled confirmation must not write a receipt")
	}
}

func TestPlans(t *testing.T) {
	t.Parallel()
	uc, _, _ := newPayment(t, newManualClock(), 0)
	plans := uc.Plans(context.Background())
	if len(plans) != 3 || plans[0].Price != "FREE" || plans[2].Title != "Premium Certificate" {
		t.Fatalf("unexpected plans: %+v", plans)
	}
}
