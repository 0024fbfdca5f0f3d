package out

import (
	"context"

	"microhub/internal/modules/payment/domain"
)

type Sent struct {
	Text    string
	Link    string
	Opened  bool
	Warning string
}

type Contact struct {
	DisplayPhone string
	ChatLink     string
}

type Notifier interface {
	Initiated(ctx context.Context, plan domain.Plan, till string) (Sent, error)
	Confirmed(ctx context.Context, plan domain.Plan, code, mpesaMessage string) (Sent, error)
	Contact(ctx context.Context) Contact
}

type CodeVerifier interface {
	Accepts(ctx context.Context, code string) bool
}

type ReceiptStore interface {
	Save(ctx context.Context, receipt domain.Receipt) (string, error)
}
