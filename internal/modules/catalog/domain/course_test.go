package domain_test

import (
	"strings"
	"testing"

	"microhub/internal/modules/catalog/domain"
)

func threeLessonCourse() domain.FullCourse {
	return domain.FullCourse{
		Meta: domain.Meta{ID: "three", Title: "Three", Category: "Digital Skills", Level: "Beginner", TotalLessons: 3, IsFree: true},
		Lessons: []domain.Lesson{
			{Number: 1, Title: "One"},
			{Number: 2, Title: "Two"},
			{Number: 3, Title: "Three"},
		},
		Quiz: []domain.Question{
			{ID: 1, Prompt: "a?", Type: domain.QuestionTrueFalse},
			{ID: 2, Prompt: "b?", Type: domain.QuestionMultipleChoice, Options: []string{"x", "y"}},
			{ID: 3, Prompt: "c?", Type: domain.QuestionShortAnswer},
		},
	}
}

func TestFullCourseValidate(t *testing.T) {
	t.Parallel()
	if err := threeLessonCourse().Validate(); err != nil {
		t.Fatalf("course should be valid: %v", err)
	}
	gap := threeLessonCourse()
	gap.Lessons[2].Number = 4
	if err := gap.Validate(); err == nil || !strings.Contains(err.Error(), "numbered") {
		t.Fatalf("gap in lesson numbers should fail, got %v", err)
	}
	mismatch := threeLessonCourse()
	mismatch.Meta.TotalLessons = 8
	if err := mismatch.Validate(); err == nil {
		t.Fatalf("total lesson mismatch should fail")
	}
	dup := threeLessonCourse()
	dup.Quiz[1].ID = 1
	if err := dup.Validate(); err == nil {
		t.Fatalf("duplicate question id should fail")
	}
	badType := threeLessonCourse()
	badType.Quiz[0].Type = "essay"
	if err := badType.Validate(); err == nil {
		t.Fatalf("unknown question type should fail")
	}
}

func TestRegistryListFiltersAndVariants(t *testing.T) {
	t.Parallel()
	stub := domain.StubCourse{Meta: domain.Meta{ID: "nail-art", Title: "Nail Art 101", Category: "Vocational Skills", Level: "Beginner"}}
	reg, err := domain.NewRegistry(nil, nil, []domain.Course{threeLessonCourse(), stub})
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	if got := reg.List(domain.Filter{Category: "All", Level: "All"}); len(got) != 2 {
		t.Fatalf("All filter should return every course, got %d", len(got))
	}
	got := reg.List(domain.Filter{Category: "Vocational Skills"})
	if len(got) != 1 || got[0].Info().ID != "nail-art" {
		t.Fatalf("unexpected category filter result: %+v", got)
	}
	if got := reg.List(domain.Filter{Level: "Advanced"}); len(got) != 0 {
		t.Fatalf("expected no advanced courses, got %d", len(got))
	}

	c, ok := reg.Get("three")
	if !ok {
		t.Fatalf("course three missing")
	}
	full, isFull := c.(domain.FullCourse)
	if !isFull {
		t.Fatalf("expected full course, got %T", c)
	}
	if l, ok := full.Lesson(2); !ok || l.Title != "Two" {
		t.Fatalf("unexpected lesson 2: %+v", l)
	}
	if _, ok := full.Lesson(4); ok {
		t.Fatalf("lesson 4 should not exist")
	}

	if _, err := domain.NewRegistry(nil, nil, []domain.Course{stub, stub}); err == nil {
		t.Fatalf("duplicate ids should fail")
	}
}

func TestQuestionChoices(t *testing.T) {
	t.Parallel()
	tf := domain.Question{Type: domain.QuestionTrueFalse}
	if got := tf.Choices(); len(got) != 2 || got[0] != "True" {
		t.Fatalf("unexpected true/false choices: %v", got)
	}
	if got := (domain.Question{Type: domain.QuestionShortAnswer}).Choices(); got != nil {
		t.Fatalf("short answer should have no choices: %v", got)
	}
}
