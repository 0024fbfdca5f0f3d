package usecase_test

import (
	"context"
	"errors"
	"testing"

	catalogout "microhub/internal/modules/catalog/adapter/out"
	"microhub/internal/modules/catalog/dto"
	catalogin "microhub/internal/modules/catalog/port/in"
	"microhub/internal/modules/catalog/service"
	"microhub/internal/modules/catalog/usecase"
	apperrors "microhub/internal/platform/errors"
)

func newCatalog() catalogin.Usecase {
	return usecase.NewInteractor(service.NewCatalogService(catalogout.NewYAMLCourseSource("")))
}

func TestListFiltersByCategoryAndLevel(t *testing.T) {
	t.Parallel()
	uc := newCatalog()
	all, err := uc.List(context.Background(), dto.ListInput{Category: "All", Level: "All"})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) < 10 || all[0].ID != "gmail-mastery" {
		t.Fatalf("unexpected catalog: %d courses, first %+v", len(all), all[0])
	}
	advanced, err := uc.List(context.Background(), dto.ListInput{Level: "Advanced"})
	if err != nil {
		t.Fatalf("list advanced: %v", err)
	}
	for _, c := range advanced {
		if c.Level != "Advanced" || c.HasLessons() {
			t.Fatalf("unexpected advanced course: %+v", c)
		}
	}
	tips, err := uc.List(context.Background(), dto.ListInput{Category: "Hustler Business Tips", Level: "Beginner"})
	if err != nil || len(tips) == 0 {
		t.Fatalf("expected business tips courses: %v", err)
	}
}

func TestGetFullAndStubCourses(t *testing.T) {
	t.Parallel()
	uc := newCatalog()
	whatsapp, err := uc.Get(context.Background(), "whatsapp-business")
	if err != nil {
		t.Fatalf("get whatsapp-business: %v", err)
	}
	if !whatsapp.HasLessons() || len(whatsapp.Lessons) != whatsapp.TotalLessons || len(whatsapp.Quiz) != 10 {
		t.Fatalf("unexpected detail: %+v", whatsapp.CourseSummary)
	}
	if whatsapp.Quiz[1].Type != "true-false" || len(whatsapp.Quiz[1].Choices) != 2 {
		t.Fatalf("true/false question should expose two choices: %+v", whatsapp.Quiz[1])
	}

	stub, err := uc.Get(context.Background(), "baking-mandazi")
	if err != nil {
		t.Fatalf("get stub: %v", err)
	}
	if stub.HasLessons() || len(stub.Lessons) != 0 || stub.IsFree {
		t.Fatalf("unexpected stub detail: %+v", stub)
	}

	if _, err := uc.Get(context.Background(), "unknown-course"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := uc.Get(context.Background(), " "); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestFiltersStartWithAll(t *testing.T) {
	t.Parallel()
	f, err := newCatalog().Filters(context.Background())
	if err != nil {
		t.Fatalf("filters: %v", err)
	}
	if f.Categories[0] != "All" || f.Levels[0] != "All" || len(f.Categories) != 5 || len(f.Levels) != 4 {
		t.Fatalf("unexpected filters: %+v", f)
	}
}
