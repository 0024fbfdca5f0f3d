package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"microhub/internal/modules/progress/domain"
	progressout "microhub/internal/modules/progress/port/out"
	"microhub/internal/platform/clock"
	apperrors "microhub/internal/platform/errors"
	"microhub/internal/platform/logging"
)

// ProgressService owns the progress table. Every mutation runs
// read-modify-persist under one lock and writes through before returning.
type ProgressService struct {
	clock     clock.Clock
	store     progressout.TableStore
	projector progressout.ProgressProjector
	logger    *slog.Logger

	mu     sync.Mutex
	table  domain.Table
	loaded bool
}

// Result is the outcome of a mutation. Warning is set when the durable copy
// could not be written; the returned progress is still authoritative.
type Result struct {
	Progress domain.CourseProgress
	Changed  bool
	Warning  error
}

func NewProgressService(clock clock.Clock, store progressout.TableStore, projector progressout.ProgressProjector, logger *slog.Logger) *ProgressService {
	return &ProgressService{clock: clock, store: store, projector: projector, logger: logging.OrDiscard(logger)}
}

// Load reads the table once. A corrupt document is replaced by an empty table.
func (s *ProgressService) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)
}

func (s *ProgressService) loadLocked(ctx context.Context) {
	if s.loaded {
		return
	}
	s.loaded = true
	table, err := s.store.Load(ctx)
	switch {
	case err == nil:
		s.table = table
	case errors.Is(err, apperrors.ErrCorruptState):
		s.logger.Warn("discarding corrupt progress table", "err", err)
		s.table = domain.Table{}
	default:
		s.logger.Warn("progress table unreadable, starting empty", "err", err)
		s.table = domain.Table{}
	}
	if s.table == nil {
		s.table = domain.Table{}
	}
}

// Bind returns a handle scoped to one course.
func (s *ProgressService) Bind(courseID string, isFree bool) *Binding {
	return &Binding{svc: s, courseID: courseID, isFree: isFree}
}

// Snapshot returns a copy of every stored record.
func (s *ProgressService) Snapshot(ctx context.Context) domain.Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)
	return s.table.Clone()
}

func (s *ProgressService) Reindex(ctx context.Context) error {
	if s.projector == nil {
		return fmt.Errorf("progress projection is not configured")
	}
	// mu stays held so no mutation can upsert between the snapshot and commit.
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)
	table := s.table.Clone()
	return s.projector.Within(ctx, func(ctx context.Context) error {
		if err := s.projector.Reset(ctx); err != nil {
			return err
		}
		for _, id := range table.CourseIDs() {
			if err := s.projector.Upsert(ctx, table[id].Row(id)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *ProgressService) Report(ctx context.Context) ([]domain.Row, error) {
	if s.projector == nil {
		return nil, fmt.Errorf("progress projection is not configured")
	}
	return s.projector.Rows(ctx)
}

// current must be called with mu held.
func (s *ProgressService) current(courseID string, isFree bool) domain.CourseProgress {
	if p, ok := s.table[courseID]; ok {
		return p
	}
	return domain.Seed(isFree)
}

func (s *ProgressService) read(courseID string, isFree bool) domain.CourseProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(context.Background())
	return s.current(courseID, isFree).Clone()
}

func (s *ProgressService) mutate(ctx context.Context, courseID string, isFree bool, apply func(p *domain.CourseProgress) (bool, error)) (Result, error) {
	if courseID == "" {
		return Result{}, fmt.Errorf("course id is required: %w", apperrors.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)

	p := s.current(courseID, isFree).Clone()
	changed, err := apply(&p)
	if err != nil {
		return Result{}, err
	}
	if !changed {
		return Result{Progress: p.Clone()}, nil
	}
	p.UpdatedAt = s.clock.Now()
	s.table[courseID] = p
	return Result{Progress: p.Clone(), Changed: true, Warning: s.persistLocked(ctx, courseID, p)}, nil
}

func (s *ProgressService) persistLocked(ctx context.Context, courseID string, p domain.CourseProgress) error {
	var warnings []error
	if err := s.store.Save(ctx, s.table.Clone()); err != nil {
		s.logger.Warn("progress write failed, keeping in-memory state", "course_id", courseID, "err", err)
		warnings = append(warnings, err)
	}
	if s.projector != nil {
		if err := s.projector.Upsert(ctx, p.Row(courseID)); err != nil {
			s.logger.Warn("progress projection failed", "course_id", courseID, "err", err)
			warnings = append(warnings, err)
		}
	}
	return errors.Join(warnings...)
}

type Binding struct {
	svc      *ProgressService
	courseID string
	isFree   bool
}

func (b *Binding) CourseID() string { return b.courseID }

// Progress materializes the seed when the course was never visited.
func (b *Binding) Progress() domain.CourseProgress {
	return b.svc.read(b.courseID, b.isFree)
}

func (b *Binding) IsLessonUnlocked(n int) bool {
	return b.Progress().UnlockedLessons.Has(n)
}

func (b *Binding) IsLessonCompleted(n int) bool {
	return b.Progress().CompletedLessons.Has(n)
}

func (b *Binding) CompletedCount() int {
	return len(b.Progress().CompletedLessons)
}

func (b *Binding) HasAccess() bool {
	return b.Progress().HasAccess
}

func (b *Binding) MarkLessonComplete(ctx context.Context, lessonID int) (Result, error) {
	return b.svc.mutate(ctx, b.courseID, b.isFree, func(p *domain.CourseProgress) (bool, error) {
		return p.Complete(lessonID)
	})
}

func (b *Binding) GrantAccess(ctx context.Context, code string) (Result, error) {
	return b.svc.mutate(ctx, b.courseID, b.isFree, func(p *domain.CourseProgress) (bool, error) {
		return p.Grant(code), nil
	})
}

func (b *Binding) MarkQuizSubmitted(ctx context.Context) (Result, error) {
	return b.svc.mutate(ctx, b.courseID, b.isFree, func(p *domain.CourseProgress) (bool, error) {
		if p.QuizSubmitted {
			return false, nil
		}
		p.QuizSubmitted = true
		return true, nil
	})
}

// Reset replaces the record with the seed and persists it.
func (b *Binding) Reset(ctx context.Context) (Result, error) {
	return b.svc.mutate(ctx, b.courseID, b.isFree, func(p *domain.CourseProgress) (bool, error) {
		*p = domain.Seed(b.isFree)
		return true, nil
	})
}
