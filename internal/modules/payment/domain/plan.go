package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "microhub/internal/platform/errors"
)

const (
	PlanFree    = "free"
	PlanFull    = "full"
	PlanPremium = "premium"

	FreeCode      = "2024-FREE-MHUB"
	PaymentMethod = "M-Pesa → Lipa na M-Pesa → Buy Goods"
)

type Plan struct {
	Name          string
	Title         string
	Amount        int
	OriginalPrice string
	Badge         string
	Description   string
	Features      []string
}

func (p Plan) Price() string {
	if p.Amount == 0 {
		return "FREE"
	}
	return fmt.Sprintf("KES %d", p.Amount)
}

func (p Plan) Reference() string { return "MHUB-" + strings.ToUpper(p.Name) }

var plans = []Plan{
	{
		Name:        PlanFree,
		Title:       "Free Starter",
		Badge:       "Perfect to Start",
		Description: "Get started with 2 complete beginner courses",
		Features: []string{
			"2 Free Beginner Courses",
			"WhatsApp lesson delivery",
			"Basic progress tracking",
			"Community support",
			"Mobile-friendly content",
			"Certificate of completion",
		},
	},
	{
		Name:          PlanFull,
		Title:         "Full Access",
		Amount:        100,
		OriginalPrice: "KES 200",
		Badge:         "Most Popular",
		Description:   "Unlock all courses and premium features",
		Features: []string{
			"All courses (Beginner to Advanced)",
			"500+ lessons across 4 categories",
			"Progress tracking & badges",
			"Gamified learning experience",
			"WhatsApp coach support",
			"Downloadable resources",
			"Priority customer support",
			"Monthly new content updates",
		},
	},
	{
		Name:          PlanPremium,
		Title:         "Premium Certificate",
		Amount:        200,
		OriginalPrice: "KES 300",
		Badge:         "Professional",
		Description:   "Full access plus official certificates",
		Features: []string{
			"Everything in Full Access",
			"Official certificates with QR codes",
			"LinkedIn-ready credentials",
			"Priority course completion",
			"1-on-1 mentor sessions",
			"Job placement assistance",
			"Professional portfolio guidance",
			"Industry recognition",
		},
	},
}

func Plans() []Plan {
	out := make([]Plan, len(plans))
	copy(out, plans)
	return out
}

func LookupPlan(name string) (Plan, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, p := range plans {
		if p.Name == key {
			return p, nil
		}
	}
	return Plan{}, fmt.Errorf("unknown plan %q: %w", name, apperrors.ErrInvalidInput)
}

// GenerateCode issues the access code for a confirmed payment. intn must
// return a value in [0, n).
func GenerateCode(p Plan, intn func(n int) int) string {
	switch p.Name {
	case PlanFull:
		return fmt.Sprintf("%d-MHUB-KES%d", 1000+intn(9000), p.Amount)
	case PlanPremium:
		return fmt.Sprintf("%d-CERT-KES%d", 1000+intn(9000), p.Amount)
	default:
		return FreeCode
	}
}

type Instructions struct {
	Plan      Plan
	Till      string
	Method    string
	Reference string
}

func InstructionsFor(p Plan, till string) Instructions {
	return Instructions{Plan: p, Till: till, Method: PaymentMethod, Reference: p.Reference()}
}

type Receipt struct {
	Plan         Plan
	Till         string
	Code         string
	IssuedAt     time.Time
	DisplayPhone string
	ChatLink     string
}

const receiptRule = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

func (r Receipt) Render() string {
	var b strings.Builder
	b.WriteString("MICROLEARNING HUB - PAYMENT CONFIRMATION\n\n")
	b.WriteString("Payment Details:\n")
	b.WriteString(receiptRule + "\n")
	fmt.Fprintf(&b, "Plan: %s ACCESS\n", strings.ToUpper(r.Plan.Name))
	fmt.Fprintf(&b, "Amount Paid: KES %d\n", r.Plan.Amount)
	fmt.Fprintf(&b, "Till Number: %s\n", r.Till)
	fmt.Fprintf(&b, "Date: %s\n", r.IssuedAt.Format("2 Jan 2006, 15:04:05"))
	fmt.Fprintf(&b, "Access Code: %s\n", r.Code)
	b.WriteString(receiptRule + "\n\n")
	b.WriteString("Thank you for your payment!\n\n")
	fmt.Fprintf(&b, "Your access code: %s\n", r.Code)
	b.WriteString("Use this code to unlock your premium courses.\n\n")
	fmt.Fprintf(&b, "Contact: %s\n", r.DisplayPhone)
	fmt.Fprintf(&b, "WhatsApp: %s\n\n", r.ChatLink)
	b.WriteString("microlearninghub.co.ke\n")
	return b.String()
}

func (r Receipt) FileName() string {
	return fmt.Sprintf("microlearning-receipt-%d.txt", r.IssuedAt.UnixMilli())
}
