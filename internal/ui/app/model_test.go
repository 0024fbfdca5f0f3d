package app

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	catalogdto "microhub/internal/modules/catalog/dto"
	coursedto "microhub/internal/modules/course/dto"
	outreachdto "microhub/internal/modules/outreach/dto"
	paymentdto "microhub/internal/modules/payment/dto"
	progressdto "microhub/internal/modules/progress/dto"
	"microhub/internal/ui/components"
	catalogview "microhub/internal/ui/views/catalog"
	courseview "microhub/internal/ui/views/course"
)

type fakeCatalog struct{}

func (fakeCatalog) List(context.Context, string, string) ([]catalogdto.CourseSummary, error) {
	return []catalogdto.CourseSummary{
		{ID: "gmail-mastery", Title: "Gmail Mastery", IsFree: true, TotalLessons: 5},
		{ID: "canva-design", Title: "Canva for Business Graphics", TotalLessons: 8},
	}, nil
}

func (fakeCatalog) Filters(context.Context) (catalogdto.FiltersOutput, error) {
	return catalogdto.FiltersOutput{Categories: []string{"All"}, Levels: []string{"All"}}, nil
}

type fakeCourse struct{}

func (fakeCourse) Open(_ context.Context, id string) (coursedto.CourseView, error) {
	return coursedto.CourseView{CourseID: id, Title: id, IsFree: id == "gmail-mastery", Stage: "unlocked", Unlocked: true}, nil
}

func (fakeCourse) Lesson(context.Context, string, int) (coursedto.LessonOutput, error) {
	return coursedto.LessonOutput{}, nil
}

func (fakeCourse) Complete(context.Context, string, int) (coursedto.CompleteOutput, error) {
	return coursedto.CompleteOutput{}, nil
}

func (fakeCourse) Redeem(context.Context, string, string) (coursedto.RedeemOutput, error) {
	return coursedto.RedeemOutput{}, nil
}

func (fakeCourse) Quiz(context.Context, string) (coursedto.QuizOutput, error) {
	return coursedto.QuizOutput{}, nil
}

func (fakeCourse) Submit(context.Context, string, map[int]string, string, string) (coursedto.SubmitQuizOutput, error) {
	return coursedto.SubmitQuizOutput{}, nil
}

type fakePricing struct{}

func (fakePricing) Plans(context.Context) []paymentdto.PlanOutput {
	return []paymentdto.PlanOutput{{Name: "full", Title: "Full Access", Price: "KES 100"}}
}

func (fakePricing) Start(context.Context, string) (paymentdto.StartOutput, error) {
	return paymentdto.StartOutput{}, nil
}

func (fakePricing) Confirm(context.Context, string, string) (paymentdto.ConfirmOutput, error) {
	return paymentdto.ConfirmOutput{}, nil
}

type fakeProgress struct{ resets []string }

func (p *fakeProgress) Reset(_ context.Context, id string, isFree bool) (progressdto.MutationOutput, error) {
	if isFree {
		id += "+free"
	}
	p.resets = append(p.resets, id)
	return progressdto.MutationOutput{Changed: true}, nil
}

type fakeContact struct{}

func (fakeContact) Contact(context.Context) outreachdto.ContactOutput {
	return outreachdto.ContactOutput{DisplayPhone: "+254 710 654 707", ChatLink: "https://wa.me/254710654707"}
}

func newTestModel(t *testing.T, progress *fakeProgress) Model {
	t.Helper()
	m := NewModel(fakeCatalog{}, fakeCourse{}, fakePricing{}, progress, fakeContact{})
	m = step(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	courses, _ := fakeCatalog{}.List(context.Background(), "All", "All")
	return step(t, m, catalogview.CoursesLoadedMsg{Courses: courses})
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestEnterOnCatalogOpensCourse(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, &fakeProgress{})
	if m.Route().Kind != RouteCatalog {
		t.Fatalf("expected catalog route first, got %+v", m.Route())
	}
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if cmd == nil {
		t.Fatalf("enter on a course should open it")
	}
	opened, ok := cmd().(courseview.OpenedMsg)
	if !ok {
		t.Fatalf("expected OpenedMsg")
	}
	m = step(t, m, opened)
	if got := m.Route(); got.Kind != RouteCourseDetail || got.CourseID != "gmail-mastery" {
		t.Fatalf("unexpected route %+v", got)
	}
	if !strings.Contains(m.View(), "Course: gmail-mastery") {
		t.Fatalf("tab bar should name the open course:\n%s", m.View())
	}
}

func TestTabCyclesRoutes(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, &fakeProgress{})
	m = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Route().Kind != RouteCourseDetail || !strings.Contains(m.View(), "No course open") {
		t.Fatalf("expected empty course screen:\n%s", m.View())
	}
	m = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Route().Kind != RoutePricing || !strings.Contains(m.View(), "Full Access") {
		t.Fatalf("expected pricing screen:\n%s", m.View())
	}
	m = step(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m = step(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.Route().Kind != RouteCatalog {
		t.Fatalf("expected catalog route, got %+v", m.Route())
	}
}

func TestPaletteCommands(t *testing.T) {
	t.Parallel()
	progress := &fakeProgress{}
	m := newTestModel(t, progress)

	m = step(t, m, components.PaletteSubmitMsg{Input: "reset"})
	if !strings.Contains(m.Status(), "open a course first") {
		t.Fatalf("reset without a course: %q", m.Status())
	}

	next, cmd := m.Update(components.PaletteSubmitMsg{Input: "open gmail-mastery"})
	m = step(t, next.(Model), cmd())
	if m.Route().CourseID != "gmail-mastery" {
		t.Fatalf("open command did not route: %+v", m.Route())
	}

	next, cmd = m.Update(components.PaletteSubmitMsg{Input: "reset"})
	m = step(t, next.(Model), cmd())
	if len(progress.resets) != 1 || progress.resets[0] != "gmail-mastery+free" {
		t.Fatalf("unexpected resets %v", progress.resets)
	}
	if !strings.Contains(m.Status(), "progress reset: gmail-mastery") {
		t.Fatalf("unexpected status %q", m.Status())
	}

	m = step(t, m, components.PaletteSubmitMsg{Input: "contact"})
	if !strings.Contains(m.Status(), "+254 710 654 707") {
		t.Fatalf("unexpected contact status %q", m.Status())
	}

	m = step(t, m, components.PaletteSubmitMsg{Input: "pricing"})
	if m.Route().Kind != RoutePricing {
		t.Fatalf("expected pricing route, got %+v", m.Route())
	}

	m = step(t, m, components.PaletteSubmitMsg{Input: "frobnicate"})
	if m.Status() != "unknown command: frobnicate" {
		t.Fatalf("unexpected status %q", m.Status())
	}
}
