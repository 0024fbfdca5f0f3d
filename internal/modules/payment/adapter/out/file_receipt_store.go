package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"microhub/internal/modules/payment/domain"
	paymentout "microhub/internal/modules/payment/port/out"
)

type FileReceiptStore struct {
	dir string
}

func NewFileReceiptStore(homePath string) paymentout.ReceiptStore {
	return &FileReceiptStore{dir: filepath.Join(homePath, "receipts")}
}

func (s *FileReceiptStore) Save(_ context.Context, receipt domain.Receipt) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create receipts dir: %w", err)
	}
	path := filepath.Join(s.dir, receipt.FileName())
	if err := os.WriteFile(path, []byte(receipt.Render()), 0o644); err != nil {
		return "", fmt.Errorf("write receipt: %w", err)
	}
	return path, nil
}
