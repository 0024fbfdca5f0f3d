package out

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"microhub/internal/modules/catalog/domain"
	catalogout "microhub/internal/modules/catalog/port/out"
	"microhub/internal/platform/slug"
)

//go:embed courses.yaml
var embeddedCourses []byte

type catalogFile struct {
	SchemaVersion int            `yaml:"schema_version"`
	Categories    []string       `yaml:"categories"`
	Levels        []string       `yaml:"levels"`
	Courses       []courseRecord `yaml:"courses"`
}

type courseRecord struct {
	ID             string           `yaml:"id"`
	Kind           string           `yaml:"kind"`
	Title          string           `yaml:"title"`
	Description    string           `yaml:"description"`
	Category       string           `yaml:"category"`
	Level          string           `yaml:"level"`
	Duration       string           `yaml:"duration"`
	TotalLessons   int              `yaml:"total_lessons"`
	Students       int              `yaml:"students"`
	Rating         float64          `yaml:"rating"`
	CompletionRate int              `yaml:"completion_rate"`
	Free           bool             `yaml:"free"`
	Popular        bool             `yaml:"popular"`
	Price          string           `yaml:"price"`
	Features       []string         `yaml:"features"`
	Lessons        []lessonRecord   `yaml:"lessons"`
	Quiz           []questionRecord `yaml:"quiz"`
}

type lessonRecord struct {
	Number  int    `yaml:"number"`
	Title   string `yaml:"title"`
	Content string `yaml:"content"`
}

type questionRecord struct {
	ID      int      `yaml:"id"`
	Prompt  string   `yaml:"prompt"`
	Type    string   `yaml:"type"`
	Options []string `yaml:"options"`
	Answer  string   `yaml:"answer"`
}

// YAMLCourseSource reads the catalog from a file, or from the copy built into
// the binary when no path is configured.
type YAMLCourseSource struct {
	path string
}

func NewYAMLCourseSource(path string) catalogout.CourseSource {
	return &YAMLCourseSource{path: strings.TrimSpace(path)}
}

func (s *YAMLCourseSource) Load(_ context.Context) (*domain.Registry, error) {
	payload := embeddedCourses
	if s.path != "" {
		b, err := os.ReadFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		payload = b
	}
	return decodeCatalog(payload)
}

func decodeCatalog(payload []byte) (*domain.Registry, error) {
	dec := yaml.NewDecoder(bytes.NewReader(payload))
	dec.KnownFields(true)
	file := catalogFile{}
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if file.SchemaVersion != domain.SchemaVersion {
		return nil, fmt.Errorf("unsupported catalog schema version %d", file.SchemaVersion)
	}
	courses := make([]domain.Course, 0, len(file.Courses))
	for _, rec := range file.Courses {
		course, err := rec.toDomain()
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	return domain.NewRegistry(file.Categories, file.Levels, courses)
}

func (r courseRecord) toDomain() (domain.Course, error) {
	id := strings.TrimSpace(r.ID)
	if id == "" {
		id = slug.Make(r.Title)
	}
	price := r.Price
	if price == "" && r.Free {
		price = "FREE"
	}
	meta := domain.Meta{
		ID:             id,
		Title:          strings.TrimSpace(r.Title),
		Description:    r.Description,
		Category:       r.Category,
		Level:          r.Level,
		Duration:       r.Duration,
		TotalLessons:   r.TotalLessons,
		Students:       r.Students,
		Rating:         r.Rating,
		CompletionRate: r.CompletionRate,
		IsFree:         r.Free,
		Popular:        r.Popular,
		Price:          price,
		Features:       r.Features,
	}
	switch r.Kind {
	case "full":
		full := domain.FullCourse{Meta: meta}
		for _, l := range r.Lessons {
			full.Lessons = append(full.Lessons, domain.Lesson{Number: l.Number, Title: l.Title, Content: l.Content})
		}
		for _, q := range r.Quiz {
			full.Quiz = append(full.Quiz, domain.Question{
				ID:       q.ID,
				Prompt:   q.Prompt,
				Type:     domain.QuestionType(q.Type),
				Options:  q.Options,
				Expected: q.Answer,
			})
		}
		return full, nil
	case "stub", "":
		if len(r.Lessons) > 0 || len(r.Quiz) > 0 {
			return nil, fmt.Errorf("course %s: stub courses cannot carry lessons or a quiz", id)
		}
		return domain.StubCourse{Meta: meta}, nil
	default:
		return nil, fmt.Errorf("course %s: unknown kind %q", id, r.Kind)
	}
}
