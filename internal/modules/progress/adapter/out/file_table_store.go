package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"microhub/internal/modules/progress/domain"
	progressout "microhub/internal/modules/progress/port/out"
)

// FileTableStore keeps the whole progress table in one JSON document.
type FileTableStore struct {
	path string
}

func NewFileTableStore(path string) progressout.TableStore {
	return &FileTableStore{path: path}
}

func (s *FileTableStore) Load(_ context.Context) (domain.Table, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Table{}, nil
		}
		return nil, fmt.Errorf("read progress table: %w", err)
	}
	return domain.DecodeTable(payload)
}

func (s *FileTableStore) Save(_ context.Context, table domain.Table) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create progress dir: %w", err)
	}
	payload, err := domain.EncodeTable(table)
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write progress table: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace progress table: %w", err)
	}
	return nil
}
