package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"microhub/internal/modules/progress/domain"
	progressout "microhub/internal/modules/progress/port/out"
	"microhub/internal/platform/tx"

	_ "modernc.org/sqlite"
)

var _ progressout.ProgressProjector = (*SQLiteProgressProjector)(nil)

type SQLiteProgressProjector struct {
	*tx.SQLManager
	db *sql.DB
}

func NewSQLiteProgressProjector(dbPath string) (*SQLiteProgressProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteProgressProjector{SQLManager: tx.NewSQLManager(db), db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteProgressProjector) Close() error {
	return s.db.Close()
}

func (s *SQLiteProgressProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS course_progress (
  course_id TEXT PRIMARY KEY,
  completed_count INTEGER NOT NULL,
  unlocked_max INTEGER NOT NULL,
  has_access INTEGER NOT NULL,
  access_code TEXT,
  quiz_submitted INTEGER NOT NULL,
  updated_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create course_progress table: %w", err)
	}
	return nil
}

func (s *SQLiteProgressProjector) Reset(ctx context.Context) error {
	if _, err := tx.From(ctx, s.db).ExecContext(ctx, `DELETE FROM course_progress`); err != nil {
		return fmt.Errorf("reset course_progress: %w", err)
	}
	return nil
}

func (s *SQLiteProgressProjector) Upsert(ctx context.Context, row domain.Row) error {
	const stmt = `
INSERT INTO course_progress (course_id, completed_count, unlocked_max, has_access, access_code, quiz_submitted, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(course_id) DO UPDATE SET
  completed_count=excluded.completed_count,
  unlocked_max=excluded.unlocked_max,
  has_access=excluded.has_access,
  access_code=excluded.access_code,
  quiz_submitted=excluded.quiz_submitted,
  updated_at=excluded.updated_at;
`
	_, err := tx.From(ctx, s.db).ExecContext(ctx, stmt,
		row.CourseID,
		row.CompletedCount,
		row.UnlockedMax,
		boolToInt(row.HasAccess),
		row.AccessCode,
		boolToInt(row.QuizSubmitted),
		row.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upsert course progress: %w", err)
	}
	return nil
}

func (s *SQLiteProgressProjector) Rows(ctx context.Context) ([]domain.Row, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT course_id, completed_count, unlocked_max, has_access, COALESCE(access_code, ''), quiz_submitted, updated_at
FROM course_progress
ORDER BY course_id`)
	if err != nil {
		return nil, fmt.Errorf("query course progress: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []domain.Row{}
	for rows.Next() {
		var (
			row           domain.Row
			hasAccess     int
			quizSubmitted int
			updatedAt     string
		)
		if err := rows.Scan(&row.CourseID, &row.CompletedCount, &row.UnlockedMax, &hasAccess, &row.AccessCode, &quizSubmitted, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan course progress: %w", err)
		}
		row.HasAccess = hasAccess == 1
		row.QuizSubmitted = quizSubmitted == 1
		if ts, err := time.Parse(time.RFC3339, updatedAt); err == nil {
			row.UpdatedAt = ts
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate course progress: %w", err)
	}
	return out, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
