package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"microhub/internal/modules/course/domain"
	courseout "microhub/internal/modules/course/port/out"
	"microhub/internal/platform/clock"
	apperrors "microhub/internal/platform/errors"
	"microhub/internal/platform/id"
	"microhub/internal/platform/logging"
)

type CompleteResult struct {
	View    domain.View
	Notice  string
	Warning string
}

type RedeemResult struct {
	View    domain.View
	Gate    courseout.GateResult
	Warning string
}

type SubmitResult struct {
	View       domain.View
	Submission domain.Submission
	Sent       courseout.Sent
	NotePath   string
	Warning    string
}

// CourseService sequences lessons and the end-of-course quiz on top of the
// catalog, progress, gate and outreach modules.
type CourseService struct {
	clock       clock.Clock
	ids         id.Generator
	catalog     courseout.CatalogPort
	progress    courseout.ProgressPort
	gate        courseout.GatePort
	messenger   courseout.MessengerPort
	submissions courseout.SubmissionStore
	logger      *slog.Logger

	submitMu sync.Mutex
}

func NewCourseService(
	clock clock.Clock,
	ids id.Generator,
	catalog courseout.CatalogPort,
	progress courseout.ProgressPort,
	gate courseout.GatePort,
	messenger courseout.MessengerPort,
	submissions courseout.SubmissionStore,
	logger *slog.Logger,
) *CourseService {
	return &CourseService{
		clock:       clock,
		ids:         ids,
		catalog:     catalog,
		progress:    progress,
		gate:        gate,
		messenger:   messenger,
		submissions: submissions,
		logger:      logging.OrDiscard(logger),
	}
}

func (s *CourseService) Open(ctx context.Context, courseID string) (domain.View, error) {
	course, err := s.course(ctx, courseID)
	if err != nil {
		return domain.View{}, err
	}
	return s.project(ctx, course)
}

func (s *CourseService) ViewLesson(ctx context.Context, courseID string, n int) (domain.Lesson, error) {
	view, err := s.Open(ctx, courseID)
	if err != nil {
		return domain.Lesson{}, err
	}
	return lessonFor(view, n)
}

func (s *CourseService) CompleteLesson(ctx context.Context, courseID string, n int) (CompleteResult, error) {
	view, err := s.Open(ctx, courseID)
	if err != nil {
		return CompleteResult{}, err
	}
	if _, err := lessonFor(view, n); err != nil {
		return CompleteResult{}, err
	}
	progress, warning, err := s.progress.CompleteLesson(ctx, view.Course.ID, view.Course.IsFree, n)
	if err != nil {
		return CompleteResult{}, err
	}
	next := domain.Project(view.Course, progress, true)
	s.logger.Info("lesson completed", "course_id", view.Course.ID, "lesson", n, "completed", next.Completed, "total", next.Total)
	return CompleteResult{View: next, Notice: domain.LessonCompleteNotice, Warning: warning}, nil
}

func (s *CourseService) RedeemCode(ctx context.Context, courseID, code string) (RedeemResult, error) {
	course, err := s.course(ctx, courseID)
	if err != nil {
		return RedeemResult{}, err
	}
	gate, err := s.gate.Redeem(ctx, course.ID, course.IsFree, code)
	if err != nil {
		return RedeemResult{}, err
	}
	view, err := s.project(ctx, course)
	if err != nil {
		return RedeemResult{}, err
	}
	return RedeemResult{View: view, Gate: gate, Warning: gate.Warning}, nil
}

// StartQuiz returns a fresh draft for a course whose lessons are all complete.
func (s *CourseService) StartQuiz(ctx context.Context, courseID string) (domain.View, *domain.QuizDraft, error) {
	view, err := s.Open(ctx, courseID)
	if err != nil {
		return domain.View{}, nil, err
	}
	if err := quizOpen(view); err != nil {
		return domain.View{}, nil, err
	}
	view.Stage = domain.StageQuizInProgress
	return view, domain.NewQuizDraft(view.Course.Quiz), nil
}

func (s *CourseService) SubmitQuiz(ctx context.Context, courseID string, answers map[int]string, name, phone string) (SubmitResult, error) {
	s.submitMu.Lock()
	defer s.submitMu.Unlock()

	view, err := s.Open(ctx, courseID)
	if err != nil {
		return SubmitResult{}, err
	}
	if err := quizOpen(view); err != nil {
		return SubmitResult{}, err
	}

	draft := domain.NewQuizDraft(view.Course.Quiz)
	for qid, answer := range answers {
		if err := draft.Answer(qid, answer); err != nil {
			return SubmitResult{}, err
		}
	}
	if missing := draft.Unanswered(); len(missing) > 0 {
		return SubmitResult{}, fmt.Errorf("%w: %d questions remaining", apperrors.ErrQuizIncomplete, len(missing))
	}
	if strings.TrimSpace(name) == "" || strings.TrimSpace(phone) == "" {
		return SubmitResult{}, apperrors.ErrMissingContact
	}

	submission := domain.Submission{
		ID:          s.ids.New(),
		CourseID:    view.Course.ID,
		CourseTitle: view.Course.Title,
		Name:        strings.TrimSpace(name),
		Phone:       strings.TrimSpace(phone),
		SubmittedAt: s.clock.Now(),
	}
	for _, q := range view.Course.Quiz {
		submission.Answers = append(submission.Answers, domain.Answer{QuestionID: q.ID, Question: q.Prompt, Answer: draft.Get(q.ID)})
	}

	if err := ctx.Err(); err != nil {
		return SubmitResult{}, err
	}
	sent, err := s.messenger.SubmitQuiz(ctx, submission)
	if err != nil {
		return SubmitResult{}, err
	}
	// The message is out; record it even if the caller gave up meanwhile.
	ctx = context.WithoutCancel(ctx)
	submission.Message = sent.Text
	submission.Link = sent.Link

	var warnings []error
	if sent.Warning != "" {
		warnings = append(warnings, errors.New(sent.Warning))
	}
	notePath, err := s.submissions.Save(ctx, submission)
	if err != nil {
		s.logger.Warn("archive quiz submission failed", "course_id", submission.CourseID, "error", err)
		warnings = append(warnings, fmt.Errorf("submission was not archived: %w", err))
	}
	warning, err := s.progress.MarkQuizSubmitted(ctx, view.Course.ID, view.Course.IsFree)
	if err != nil {
		return SubmitResult{}, err
	}
	if warning != "" {
		warnings = append(warnings, errors.New(warning))
	}

	view.Stage = domain.StageQuizSubmitted
	view.Progress.QuizSubmitted = true
	s.logger.Info("quiz submitted", "course_id", submission.CourseID, "submission_id", submission.ID, "note", notePath)

	result := SubmitResult{View: view, Submission: submission, Sent: sent, NotePath: notePath}
	if joined := errors.Join(warnings...); joined != nil {
		result.Warning = joined.Error()
	}
	return result, nil
}

func (s *CourseService) course(ctx context.Context, courseID string) (domain.Course, error) {
	if strings.TrimSpace(courseID) == "" {
		return domain.Course{}, fmt.Errorf("course id is required: %w", apperrors.ErrInvalidInput)
	}
	return s.catalog.Course(ctx, courseID)
}

func (s *CourseService) project(ctx context.Context, course domain.Course) (domain.View, error) {
	unlocked, err := s.gate.IsUnlocked(ctx, course.ID, course.IsFree)
	if err != nil {
		return domain.View{}, err
	}
	progress, err := s.progress.Get(ctx, course.ID, course.IsFree)
	if err != nil {
		return domain.View{}, err
	}
	return domain.Project(course, progress, unlocked), nil
}

func lessonFor(view domain.View, n int) (domain.Lesson, error) {
	if view.Stage == domain.StageLocked {
		return domain.Lesson{}, fmt.Errorf("%s: %w", view.Course.ID, apperrors.ErrCourseLocked)
	}
	lesson, ok := view.Course.Lesson(n)
	if !ok {
		return domain.Lesson{}, fmt.Errorf("lesson %d of %s: %w", n, view.Course.ID, apperrors.ErrNotFound)
	}
	if !view.Progress.IsUnlocked(n) {
		return domain.Lesson{}, fmt.Errorf("lesson %d of %s: %w", n, view.Course.ID, apperrors.ErrLessonLocked)
	}
	return lesson, nil
}

func quizOpen(view domain.View) error {
	switch view.Stage {
	case domain.StageQuizSubmitted:
		return fmt.Errorf("%s: %w", view.Course.ID, apperrors.ErrQuizAlreadySubmitted)
	case domain.StageQuizOffered, domain.StageQuizInProgress:
		return nil
	case domain.StageLocked:
		return fmt.Errorf("%s: %w", view.Course.ID, apperrors.ErrCourseLocked)
	default:
		return fmt.Errorf("%s: %w", view.Course.ID, apperrors.ErrQuizNotOffered)
	}
}
