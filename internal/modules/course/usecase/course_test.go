package usecase_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	courseoutadapter "microhub/internal/modules/course/adapter/out"
	"microhub/internal/modules/course/domain"
	"microhub/internal/modules/course/dto"
	coursein "microhub/internal/modules/course/port/in"
	courseout "microhub/internal/modules/course/port/out"
	"microhub/internal/modules/course/service"
	"microhub/internal/modules/course/usecase"
	apperrors "microhub/internal/platform/errors"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func (c fixedClock) After(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- c.now
	return ch
}

type fixedIDs struct{}

func (fixedIDs) New() string { return "sub-1" }

type fakeCatalog struct {
	courses map[string]domain.Course
}

func (f *fakeCatalog) Course(_ context.Context, id string) (domain.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return domain.Course{}, apperrors.ErrNotFound
	}
	return c, nil
}

type fakeProgress struct {
	records map[string]domain.Progress
}

func (f *fakeProgress) get(id string, isFree bool) domain.Progress {
	p, ok := f.records[id]
	if !ok {
		p = domain.Progress{Unlocked: []int{1}, HasAccess: isFree}
	}
	return p
}

func (f *fakeProgress) Get(_ context.Context, id string, isFree bool) (domain.Progress, error) {
	return f.get(id, isFree), nil
}

func (f *fakeProgress) CompleteLesson(_ context.Context, id string, isFree bool, n int) (domain.Progress, string, error) {
	p := f.get(id, isFree)
	if !p.IsCompleted(n) {
		p.Completed = append(p.Completed, n)
	}
	if !p.IsUnlocked(n + 1) {
		p.Unlocked = append(p.Unlocked, n+1)
	}
	f.records[id] = p
	return p, "", nil
}

func (f *fakeProgress) MarkQuizSubmitted(_ context.Context, id string, isFree bool) (string, error) {
	p := f.get(id, isFree)
	p.QuizSubmitted = true
	f.records[id] = p
	return "", nil
}

type fakeGate struct {
	progress *fakeProgress
}

func (g *fakeGate) IsUnlocked(_ context.Context, id string, isFree bool) (bool, error) {
	return isFree || g.progress.get(id, isFree).HasAccess, nil
}

func (g *fakeGate) Redeem(_ context.Context, id string, isFree bool, code string) (courseout.GateResult, error) {
	if code != "2024-FREE-MHUB" {
		return courseout.GateResult{Reason: "no match", Message: "Invalid access code. Please check and try again."}, nil
	}
	p := g.progress.get(id, isFree)
	p.HasAccess = true
	p.AccessCode = code
	g.progress.records[id] = p
	return courseout.GateResult{Accepted: true, Message: "Access Granted! You now have access to premium content."}, nil
}

type fakeMessenger struct {
	sent []domain.Submission
}

func (m *fakeMessenger) SubmitQuiz(_ context.Context, s domain.Submission) (courseout.Sent, error) {
	m.sent = append(m.sent, s)
	return courseout.Sent{Text: "QUIZ SUBMISSION - " + s.CourseTitle, Link: "https://api.whatsapp.com/send?phone=254710654707&text=x"}, nil
}

type harness struct {
	uc        coursein.Usecase
	progress  *fakeProgress
	messenger *fakeMessenger
	home      string
}

func newHarness(t *testing.T) harness {
	t.Helper()
	catalog := &fakeCatalog{courses: map[string]domain.Course{
		"gmail-mastery": {
			ID: "gmail-mastery", Title: "Gmail Mastery for Hustlers", IsFree: true, HasLessons: true, TotalLessons: 2,
			Lessons: []domain.Lesson{{Number: 1, Title: "Intro", Content: "# Intro"}, {Number: 2, Title: "Labels", Content: "# Labels"}},
			Quiz:    []domain.Question{{ID: 1, Prompt: "What is Gmail?"}, {ID: 2, Prompt: "Why labels?"}},
		},
		"canva-design": {ID: "canva-design", Title: "Canva for Business Graphics", TotalLessons: 12},
	}}
	progress := &fakeProgress{records: map[string]domain.Progress{}}
	messenger := &fakeMessenger{}
	home := t.TempDir()
	svc := service.NewCourseService(
		fixedClock{now: time.Date(2026, 3, 7, 14, 30, 5, 0, time.UTC)},
		fixedIDs{},
		catalog,
		progress,
		&fakeGate{progress: progress},
		messenger,
		courseoutadapter.NewVaultSubmissionStore(home),
		nil,
	)
	return harness{uc: usecase.NewInteractor(svc), progress: progress, messenger: messenger, home: home}
}

func TestLessonSequencing(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	view, err := h.uc.Open(ctx, "gmail-mastery")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if view.Stage != string(domain.StageUnlocked) || view.Lessons[0].State != "unlocked" || view.Lessons[1].State != "locked" {
		t.Fatalf("unexpected initial view: %+v", view)
	}
	if _, err := h.uc.ViewLesson(ctx, dto.LessonInput{CourseID: "gmail-mastery", Lesson: 2}); !errors.Is(err, apperrors.ErrLessonLocked) {
		t.Fatalf("expected lesson 2 locked, got %v", err)
	}
	if _, err := h.uc.CompleteLesson(ctx, dto.LessonInput{CourseID: "gmail-mastery", Lesson: 2}); !errors.Is(err, apperrors.ErrLessonLocked) {
		t.Fatalf("expected completing a locked lesson to fail, got %v", err)
	}

	out, err := h.uc.CompleteLesson(ctx, dto.LessonInput{CourseID: "gmail-mastery", Lesson: 1})
	if err != nil {
		t.Fatalf("complete lesson 1: %v", err)
	}
	if out.Notice != "Lesson Complete!" || out.View.Percent != 50 {
		t.Fatalf("unexpected completion: %+v", out)
	}
	lesson, err := h.uc.ViewLesson(ctx, dto.LessonInput{CourseID: "gmail-mastery", Lesson: 2})
	if err != nil || lesson.Title != "Labels" {
		t.Fatalf("expected lesson 2 content, got %+v %v", lesson, err)
	}

	if _, err := h.uc.StartQuiz(ctx, "gmail-mastery"); !errors.Is(err, apperrors.ErrQuizNotOffered) {
		t.Fatalf("expected quiz not offered yet, got %v", err)
	}
	out, err = h.uc.CompleteLesson(ctx, dto.LessonInput{CourseID: "gmail-mastery", Lesson: 2})
	if err != nil {
		t.Fatalf("complete lesson 2: %v", err)
	}
	if out.View.Stage != string(domain.StageQuizOffered) {
		t.Fatalf("expected quiz offered after last lesson, got %s", out.View.Stage)
	}
}

func TestLockedCourseAndRedeem(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	view, err := h.uc.Open(ctx, "canva-design")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if view.Stage != string(domain.StageLocked) || len(view.Lessons) != 0 {
		t.Fatalf("expected locked view, got %+v", view)
	}
	if _, err := h.uc.ViewLesson(ctx, dto.LessonInput{CourseID: "canva-design", Lesson: 1}); !errors.Is(err, apperrors.ErrCourseLocked) {
		t.Fatalf("expected course locked, got %v", err)
	}

	rejected, err := h.uc.RedeemCode(ctx, dto.RedeemInput{CourseID: "canva-design", Code: "nope"})
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if rejected.Accepted || rejected.View.Stage != string(domain.StageLocked) {
		t.Fatalf("expected rejection to keep course locked: %+v", rejected)
	}

	accepted, err := h.uc.RedeemCode(ctx, dto.RedeemInput{CourseID: "canva-design", Code: "2024-FREE-MHUB"})
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if !accepted.Accepted || accepted.View.Stage != string(domain.StageUnlocked) {
		t.Fatalf("expected unlocked after redeem: %+v", accepted)
	}
	if accepted.View.Notice != domain.ComingSoonNotice || accepted.View.AccessCode != "2024-FREE-MHUB" {
		t.Fatalf("expected coming soon stub view, got %+v", accepted.View)
	}
}

func finishLessons(t *testing.T, h harness) {
	t.Helper()
	for n := 1; n <= 2; n++ {
		if _, err := h.uc.CompleteLesson(context.Background(), dto.LessonInput{CourseID: "gmail-mastery", Lesson: n}); err != nil {
			t.Fatalf("complete lesson %d: %v", n, err)
		}
	}
}

func TestSubmitQuizValidation(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()
	finishLessons(t, h)

	quiz, err := h.uc.StartQuiz(ctx, "gmail-mastery")
	if err != nil {
		t.Fatalf("start quiz: %v", err)
	}
	if quiz.View.Stage != string(domain.StageQuizInProgress) || len(quiz.Questions) != 2 || quiz.Draft == nil {
		t.Fatalf("unexpected quiz: %+v", quiz)
	}

	_, err = h.uc.SubmitQuiz(ctx, dto.SubmitQuizInput{CourseID: "gmail-mastery", Answers: map[int]string{1: "mail"}, Name: "Amina", Phone: "0712"})
	if !errors.Is(err, apperrors.ErrQuizIncomplete) || !strings.Contains(err.Error(), "1 questions remaining") {
		t.Fatalf("expected incomplete with count, got %v", err)
	}
	_, err = h.uc.SubmitQuiz(ctx, dto.SubmitQuizInput{CourseID: "gmail-mastery", Answers: map[int]string{1: "mail", 2: "order"}, Name: " ", Phone: "0712"})
	if !errors.Is(err, apperrors.ErrMissingContact) {
		t.Fatalf("expected missing contact, got %v", err)
	}
	if len(h.messenger.sent) != 0 || h.progress.records["gmail-mastery"].QuizSubmitted {
		t.Fatalf("rejected submissions must not send or persist")
	}
}

func TestSubmitQuizArchivesAndIsTerminal(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()
	finishLessons(t, h)

	out, err := h.uc.SubmitQuiz(ctx, dto.SubmitQuizInput{
		CourseID: "gmail-mastery",
		Answers:  map[int]string{1: "Email service", 2: "Organizing"},
		Name:     " Amina ",
		Phone:    "0712345678",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out.View.Stage != string(domain.StageQuizSubmitted) || out.SubmissionID != "sub-1" || out.Link == "" {
		t.Fatalf("unexpected submit output: %+v", out)
	}
	if !strings.Contains(out.NotePath, "submissions/2026/03/07/143005-gmail-mastery-for-hustlers.md") {
		t.Fatalf("unexpected note path: %s", out.NotePath)
	}
	if len(h.messenger.sent) != 1 || h.messenger.sent[0].Name != "Amina" {
		t.Fatalf("expected one trimmed submission sent, got %+v", h.messenger.sent)
	}

	store := courseoutadapter.NewVaultSubmissionStore(h.home)
	saved, err := store.Load(ctx, out.NotePath)
	if err != nil {
		t.Fatalf("load note: %v", err)
	}
	if saved.ID != "sub-1" || len(saved.Answers) != 2 || saved.Answers[1].Answer != "Organizing" {
		t.Fatalf("unexpected archived submission: %+v", saved)
	}
	if !saved.SubmittedAt.Equal(time.Date(2026, 3, 7, 14, 30, 5, 0, time.UTC)) {
		t.Fatalf("unexpected submitted_at: %s", saved.SubmittedAt)
	}
	raw, err := os.ReadFile(out.NotePath)
	if err != nil {
		t.Fatalf("read note: %v", err)
	}
	if !strings.Contains(string(raw), "Q2: Why labels?\nA: Organizing") {
		t.Fatalf("note body is missing results:\n%s", raw)
	}

	view, err := h.uc.Open(ctx, "gmail-mastery")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if view.Stage != string(domain.StageQuizSubmitted) {
		t.Fatalf("expected submitted stage on reopen, got %s", view.Stage)
	}
	_, err = h.uc.SubmitQuiz(ctx, dto.SubmitQuizInput{CourseID: "gmail-mastery", Answers: map[int]string{1: "a", 2: "b"}, Name: "A", Phone: "1"})
	if !errors.Is(err, apperrors.ErrQuizAlreadySubmitted) {
		t.Fatalf("expected already submitted, got %v", err)
	}
}

func TestCancelledSubmitSendsNothing(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	finishLessons(t, h)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := h.uc.SubmitQuiz(ctx, dto.SubmitQuizInput{
		CourseID: "gmail-mastery",
		Answers:  map[int]string{1: "Email service", 2: "Organizing"},
		Name:     "Amina",
		Phone:    "0712345678",
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if len(h.messenger.sent) != 0 {
		t.Fatalf("cancelled submission must not be sent: %+v", h.messenger.sent)
	}
	view, err := h.uc.Open(context.Background(), "gmail-mastery")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if view.Stage == string(domain.StageQuizSubmitted) {
		t.Fatalf("cancelled submission must leave the quiz open")
	}
}

func TestOpenUnknownAndEmpty(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	if _, err := h.uc.Open(context.Background(), ""); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := h.uc.Open(context.Background(), "missing"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
