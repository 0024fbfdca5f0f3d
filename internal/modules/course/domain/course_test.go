package domain_test

import (
	"errors"
	"testing"

	"microhub/internal/modules/course/domain"
	apperrors "microhub/internal/platform/errors"
)

func threeLessonCourse() domain.Course {
	return domain.Course{
		ID:           "gmail-mastery",
		Title:        "Gmail Mastery for Hustlers",
		IsFree:       true,
		HasLessons:   true,
		TotalLessons: 3,
		Lessons: []domain.Lesson{
			{Number: 1, Title: "One"},
			{Number: 2, Title: "Two"},
			{Number: 3, Title: "Three"},
		},
		Quiz: []domain.Question{{ID: 1, Prompt: "First?"}, {ID: 2, Prompt: "Second?"}},
	}
}

func TestProjectLockedHidesLessons(t *testing.T) {
	t.Parallel()
	view := domain.Project(threeLessonCourse(), domain.Progress{Unlocked: []int{1, 2, 3}}, false)
	if view.Stage != domain.StageLocked {
		t.Fatalf("expected locked stage, got %s", view.Stage)
	}
	if len(view.Lessons) != 0 {
		t.Fatalf("locked course must expose no lessons, got %d", len(view.Lessons))
	}
}

func TestProjectLessonStates(t *testing.T) {
	t.Parallel()
	view := domain.Project(threeLessonCourse(), domain.Progress{Completed: []int{1}, Unlocked: []int{1, 2}}, true)
	want := []domain.LessonState{domain.LessonCompleted, domain.LessonUnlocked, domain.LessonLocked}
	for i, lesson := range view.Lessons {
		if lesson.State != want[i] {
			t.Fatalf("lesson %d: expected %s, got %s", lesson.Number, want[i], lesson.State)
		}
	}
	if view.Stage != domain.StageUnlocked || view.Completed != 1 || view.Percent != 33 {
		t.Fatalf("unexpected view: stage=%s completed=%d percent=%d", view.Stage, view.Completed, view.Percent)
	}
}

func TestProjectQuizStages(t *testing.T) {
	t.Parallel()
	done := domain.Progress{Completed: []int{1, 2, 3}, Unlocked: []int{1, 2, 3, 4}}
	if stage := domain.Project(threeLessonCourse(), done, true).Stage; stage != domain.StageQuizOffered {
		t.Fatalf("expected quiz offered, got %s", stage)
	}
	done.QuizSubmitted = true
	view := domain.Project(threeLessonCourse(), done, true)
	if view.Stage != domain.StageQuizSubmitted || view.Percent != 100 {
		t.Fatalf("expected submitted at 100%%, got %s %d", view.Stage, view.Percent)
	}
}

func TestProjectStubComingSoon(t *testing.T) {
	t.Parallel()
	stub := domain.Course{ID: "canva-design", Title: "Canva", TotalLessons: 12}
	view := domain.Project(stub, domain.Progress{Unlocked: []int{1}, HasAccess: true}, true)
	if view.Stage != domain.StageUnlocked || view.Notice != domain.ComingSoonNotice || len(view.Lessons) != 0 {
		t.Fatalf("unexpected stub view: %+v", view)
	}
	if view.Total != 12 {
		t.Fatalf("stub keeps its advertised total, got %d", view.Total)
	}
}

func TestQuizDraft(t *testing.T) {
	t.Parallel()
	draft := domain.NewQuizDraft(threeLessonCourse().Quiz)
	if draft.Ready() {
		t.Fatalf("empty draft must not be ready")
	}
	if err := draft.Answer(1, "yes"); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if err := draft.Answer(2, "   "); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if got := draft.Unanswered(); len(got) != 1 || got[0] != 2 {
		t.Fatalf("expected question 2 unanswered, got %v", got)
	}
	if err := draft.Answer(9, "x"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for unknown question, got %v", err)
	}
	_ = draft.Answer(2, "no")
	if !draft.Ready() {
		t.Fatalf("expected ready draft")
	}
	answers := draft.Answers()
	answers[1] = "changed"
	if draft.Get(1) != "yes" {
		t.Fatalf("answers must be a copy")
	}
}

func TestSubmissionResults(t *testing.T) {
	t.Parallel()
	s := domain.Submission{Answers: []domain.Answer{
		{QuestionID: 1, Question: "First?", Answer: " a "},
		{QuestionID: 2, Question: "Second?", Answer: "b"},
	}}
	want := "Q1: First?\nA: a\n\nQ2: Second?\nA: b"
	if got := s.Results(); got != want {
		t.Fatalf("unexpected results:\n%s", got)
	}
}
