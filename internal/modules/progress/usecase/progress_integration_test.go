package usecase_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	progressout "microhub/internal/modules/progress/adapter/out"
	"microhub/internal/modules/progress/dto"
	"microhub/internal/modules/progress/service"
	"microhub/internal/modules/progress/usecase"
	apperrors "microhub/internal/platform/errors"

	_ "modernc.org/sqlite"
)

type fixedClock struct{}

func (fixedClock) Now() time.Time                       { return time.Date(2026, 3, 5, 7, 0, 0, 0, time.UTC) }
func (fixedClock) After(time.Duration) <-chan time.Time { return make(chan time.Time) }

func TestProgressPersistsAcrossRestartAndProjects(t *testing.T) {
	t.Parallel()
	home := t.TempDir()
	jsonPath := filepath.Join(home, ".microhub", "progress.json")
	dbPath := filepath.Join(home, ".microhub", "microhub.db")

	projector, err := progressout.NewSQLiteProgressProjector(dbPath)
	if err != nil {
		t.Fatalf("new projector: %v", err)
	}
	uc := usecase.NewInteractor(service.NewProgressService(fixedClock{}, progressout.NewFileTableStore(jsonPath), projector, nil))
	ctx := context.Background()

	if _, err := uc.MarkLessonComplete(ctx, dto.MarkLessonInput{CourseID: "gmail-mastery", IsFree: true, LessonID: 1}); err != nil {
		t.Fatalf("complete lesson: %v", err)
	}
	out, err := uc.GrantAccess(ctx, dto.GrantAccessInput{CourseID: "canva-design", Code: " 1234-MHUB-KES100 "})
	if err != nil {
		t.Fatalf("grant: %v", err)
	}
	if out.Warning != "" || out.Progress.AccessCode != "1234-MHUB-KES100" {
		t.Fatalf("unexpected grant output: %+v", out)
	}

	restarted := usecase.NewInteractor(service.NewProgressService(fixedClock{}, progressout.NewFileTableStore(jsonPath), projector, nil))
	got, err := restarted.Get(ctx, dto.CourseRef{CourseID: "gmail-mastery", IsFree: true})
	if err != nil {
		t.Fatalf("get after restart: %v", err)
	}
	if !reflect.DeepEqual(got.CompletedLessons, []int{1}) || !reflect.DeepEqual(got.UnlockedLessons, []int{1, 2}) {
		t.Fatalf("progress lost across restart: %+v", got)
	}
	list, err := restarted.List(ctx)
	if err != nil || len(list) != 2 || list[0].CourseID != "canva-design" {
		t.Fatalf("unexpected list: %+v %v", list, err)
	}

	if err := restarted.Reindex(ctx); err != nil {
		t.Fatalf("reindex: %v", err)
	}
	report, err := restarted.Report(ctx)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if len(report) != 2 || report[1].CourseID != "gmail-mastery" || report[1].UnlockedMax != 2 {
		t.Fatalf("unexpected report: %+v", report)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer func() { _ = db.Close() }()
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM course_progress WHERE has_access = 1`).Scan(&count); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected two projected courses with access, got %d", count)
	}
}

func TestCorruptFileDegradesToFirstVisit(t *testing.T) {
	t.Parallel()
	home := t.TempDir()
	jsonPath := filepath.Join(home, "progress.json")
	if err := os.WriteFile(jsonPath, []byte("{\"gmail-mastery\": tru"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}
	uc := usecase.NewInteractor(service.NewProgressService(fixedClock{}, progressout.NewFileTableStore(jsonPath), nil, nil))
	got, err := uc.Get(context.Background(), dto.CourseRef{CourseID: "gmail-mastery", IsFree: true})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CompletedCount != 0 || !got.HasAccess || !reflect.DeepEqual(got.UnlockedLessons, []int{1}) {
		t.Fatalf("expected seed after corrupt load, got %+v", got)
	}
	if _, err := uc.MarkLessonComplete(context.Background(), dto.MarkLessonInput{CourseID: "gmail-mastery", IsFree: true, LessonID: 1}); err != nil {
		t.Fatalf("complete after corrupt load: %v", err)
	}
	if err := uc.Reindex(context.Background()); err == nil {
		t.Fatalf("reindex without projection should fail")
	}
}

func TestEmptyCourseIDRejected(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(service.NewProgressService(fixedClock{}, progressout.NewFileTableStore(filepath.Join(t.TempDir(), "p.json")), nil, nil))
	if _, err := uc.Get(context.Background(), dto.CourseRef{}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
