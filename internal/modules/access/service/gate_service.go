package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"microhub/internal/modules/access/domain"
	accessout "microhub/internal/modules/access/port/out"
	"microhub/internal/platform/clock"
	apperrors "microhub/internal/platform/errors"
	"microhub/internal/platform/logging"
)

type Outcome struct {
	Verdict domain.Verdict
	Warning string
}

// GateService adjudicates access codes. Rejections are decided before the
// verification delay so they never wait and never touch progress.
type GateService struct {
	clock    clock.Clock
	delay    time.Duration
	progress accessout.ProgressPort
	logger   *slog.Logger
}

func NewGateService(clock clock.Clock, delay time.Duration, progress accessout.ProgressPort, logger *slog.Logger) *GateService {
	return &GateService{clock: clock, delay: delay, progress: progress, logger: logging.OrDiscard(logger)}
}

func (s *GateService) IsUnlocked(ctx context.Context, courseID string, isFree bool) (bool, error) {
	if isFree {
		return true, nil
	}
	hasAccess, err := s.progress.HasAccess(ctx, courseID, isFree)
	if err != nil {
		return false, err
	}
	return domain.IsUnlocked(isFree, hasAccess), nil
}

func (s *GateService) Submit(ctx context.Context, courseID string, isFree bool, raw string) (Outcome, error) {
	if strings.TrimSpace(courseID) == "" {
		return Outcome{}, fmt.Errorf("course id is required: %w", apperrors.ErrInvalidInput)
	}
	verdict := domain.Check(raw)
	if !verdict.Accepted {
		s.logger.Debug("access code rejected", "course_id", courseID, "reason", verdict.Reason)
		return Outcome{Verdict: verdict}, nil
	}
	if err := s.wait(ctx); err != nil {
		s.logger.Info("access verification cancelled", "course_id", courseID)
		return Outcome{}, err
	}
	warning, err := s.progress.Grant(ctx, courseID, isFree, verdict.Code)
	if err != nil {
		return Outcome{}, err
	}
	s.logger.Info("access granted", "course_id", courseID, "kind", verdict.Kind)
	return Outcome{Verdict: verdict, Warning: warning}, nil
}

func (s *GateService) wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.clock.After(s.delay):
		return nil
	}
}
