package domain_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	accessdomain "microhub/internal/modules/access/domain"
	"microhub/internal/modules/payment/domain"
	apperrors "microhub/internal/platform/errors"
)

func TestGenerateCodeIsRedeemable(t *testing.T) {
	t.Parallel()
	for _, n := range []int{0, 4321, 8999} {
		for _, plan := range domain.Plans() {
			code := domain.GenerateCode(plan, func(int) int { return n })
			if !accessdomain.Check(code).Accepted {
				t.Fatalf("plan %s issued unredeemable code %q", plan.Name, code)
			}
		}
	}
}

func TestGenerateCodeShapes(t *testing.T) {
	t.Parallel()
	full, _ := domain.LookupPlan("full")
	premium, _ := domain.LookupPlan(" PREMIUM ")
	free, _ := domain.LookupPlan("free")
	fixed := func(int) int { return 234 }
	if got := domain.GenerateCode(full, fixed); got != "1234-MHUB-KES100" {
		t.Fatalf("unexpected full code %q", got)
	}
	if got := domain.GenerateCode(premium, fixed); got != "1234-CERT-KES200" {
		t.Fatalf("unexpected premium code %q", got)
	}
	if got := domain.GenerateCode(free, fixed); got != domain.FreeCode {
		t.Fatalf("unexpected free code %q", got)
	}
}

func TestLookupPlanUnknown(t *testing.T) {
	t.Parallel()
	if _, err := domain.LookupPlan("gold"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestReceiptRender(t *testing.T) {
	t.Parallel()
	full, _ := domain.LookupPlan("full")
	at := time.Date(2026, 3, 7, 9, 5, 0, 0, time.UTC)
	receipt := domain.Receipt{Plan: full, Till: "705768", Code: "1234-MHUB-KES100", IssuedAt: at, DisplayPhone: "+254 710 654 707", ChatLink: "https://wa.me/254710654707"}
	text := receipt.Render()
	for _, want := range []string{
		"MICROLEARNING HUB - PAYMENT CONFIRMATION\n",
		"Plan: FULL ACCESS\n",
		"Amount Paid: KES 100\n",
		"Till Number: 705768\n",
		"Date: 7 Mar 2026, 09:05:00\n",
		"Your access code: 1234-MHUB-KES100\n",
		"WhatsApp: https://wa.me/254710654707\n",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("receipt missing %q:\n%s", want, text)
		}
	}
	if receipt.FileName() != "microlearning-receipt-1772874300000.txt" {
		t.Fatalf("unexpected file name %s", receipt.FileName())
	}
}
