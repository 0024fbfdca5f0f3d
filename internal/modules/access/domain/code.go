package domain

import (
	"regexp"
	"strings"

	apperrors "microhub/internal/platform/errors"
)

// Code rules are a client-side pattern match only. Anyone holding the binary
// can read them; they are not a security boundary.

type Kind string

const (
	KindReusable      Kind = "reusable"
	KindStandard      Kind = "standard"
	KindCertification Kind = "certification"
)

type Reason string

const (
	ReasonMissing Reason = "missing"
	ReasonNoMatch Reason = "no match"
)

const FreeCode = "2024-FREE-MHUB"

var (
	reusableCodes     = []string{FreeCode}
	standardCode      = regexp.MustCompile(`^\d{4}-MHUB-KES\d+$`)
	certificationCode = regexp.MustCompile(`^\d{4}-CERT-KES\d+$`)
)

// Classify reports which rule accepts code. It does not trim.
func Classify(code string) (Kind, bool) {
	for _, c := range reusableCodes {
		if code == c {
			return KindReusable, true
		}
	}
	switch {
	case standardCode.MatchString(code):
		return KindStandard, true
	case certificationCode.MatchString(code):
		return KindCertification, true
	default:
		return "", false
	}
}

type Verdict struct {
	Code     string
	Accepted bool
	Kind     Kind
	Reason   Reason
}

// Check trims raw and applies the rules.
func Check(raw string) Verdict {
	code := strings.TrimSpace(raw)
	if code == "" {
		return Verdict{Reason: ReasonMissing}
	}
	kind, ok := Classify(code)
	if !ok {
		return Verdict{Code: code, Reason: ReasonNoMatch}
	}
	return Verdict{Code: code, Accepted: true, Kind: kind}
}

// Err maps a rejection to its sentinel; accepted verdicts return nil.
func (v Verdict) Err() error {
	if v.Accepted {
		return nil
	}
	if v.Reason == ReasonMissing {
		return apperrors.ErrCodeMissing
	}
	return apperrors.ErrCodeNoMatch
}

func (v Verdict) Message() string {
	switch {
	case v.Accepted:
		return "Access Granted! You now have access to premium content."
	case v.Reason == ReasonMissing:
		return "Please enter an access code"
	default:
		return "Invalid access code. Please check and try again."
	}
}

// IsUnlocked is the gate itself: free courses are always open.
func IsUnlocked(isFree, hasAccess bool) bool {
	return isFree || hasAccess
}
