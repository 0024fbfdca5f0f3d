package domain_test

import (
	"errors"
	"testing"

	"microhub/internal/modules/access/domain"
	apperrors "microhub/internal/platform/errors"
)

func TestCheckScenarios(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in       string
		accepted bool
		kind     domain.Kind
		reason   domain.Reason
	}{
		{in: "2024-FREE-MHUB", accepted: true, kind: domain.KindReusable},
		{in: "1234-MHUB-KES100", accepted: true, kind: domain.KindStandard},
		{in: "7777-CERT-KES250", accepted: true, kind: domain.KindCertification},
		{in: "  1234-MHUB-KES100\t", accepted: true, kind: domain.KindStandard},
		{in: "", reason: domain.ReasonMissing},
		{in: "   ", reason: domain.ReasonMissing},
		{in: "random-code-123", reason: domain.ReasonNoMatch},
		{in: "123-MHUB-KES100", reason: domain.ReasonNoMatch},
		{in: "1234-MHUB-KES", reason: domain.ReasonNoMatch},
		{in: "1234-mhub-kes100", reason: domain.ReasonNoMatch},
		{in: "2024-free-mhub", reason: domain.ReasonNoMatch},
	}
	for _, tc := range cases {
		v := domain.Check(tc.in)
		if v.Accepted != tc.accepted || v.Kind != tc.kind || v.Reason != tc.reason {
			t.Fatalf("Check(%q) = %+v", tc.in, v)
		}
	}
}

func TestVerdictErrors(t *testing.T) {
	t.Parallel()
	if err := domain.Check("").Err(); !errors.Is(err, apperrors.ErrCodeMissing) {
		t.Fatalf("expected missing code error, got %v", err)
	}
	if err := domain.Check("nope").Err(); !errors.Is(err, apperrors.ErrCodeNoMatch) {
		t.Fatalf("expected no match error, got %v", err)
	}
	if err := domain.Check(domain.FreeCode).Err(); err != nil {
		t.Fatalf("accepted code should have no error: %v", err)
	}
	if domain.Check("").Message() == domain.Check("nope").Message() {
		t.Fatalf("missing and no-match messages must differ")
	}
}

func TestIsUnlocked(t *testing.T) {
	t.Parallel()
	if !domain.IsUnlocked(true, false) || !domain.IsUnlocked(false, true) || domain.IsUnlocked(false, false) {
		t.Fatalf("unexpected gate truth table")
	}
}
