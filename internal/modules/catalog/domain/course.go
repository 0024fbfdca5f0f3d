package domain

import (
	"fmt"
	"strings"
)

const (
	SchemaVersion = 1
	FilterAll     = "All"
)

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple-choice"
	QuestionTrueFalse      QuestionType = "true-false"
	QuestionShortAnswer    QuestionType = "short-answer"
)

func (q QuestionType) Validate() error {
	switch q {
	case QuestionMultipleChoice, QuestionTrueFalse, QuestionShortAnswer:
		return nil
	default:
		return fmt.Errorf("unsupported question type %q", string(q))
	}
}

type Meta struct {
	ID             string
	Title          string
	Description    string
	Category       string
	Level          string
	Duration       string
	TotalLessons   int
	Students       int
	Rating         float64
	CompletionRate int
	IsFree         bool
	Popular        bool
	Price          string
	Features       []string
}

type Lesson struct {
	Number  int
	Title   string
	Content string
}

// Question keeps the expected answer for the reviewer; quizzes are never auto-graded.
type Question struct {
	ID       int
	Prompt   string
	Type     QuestionType
	Options  []string
	Expected string
}

// Choices lists the selectable answers; short-answer questions have none.
func (q Question) Choices() []string {
	switch q.Type {
	case QuestionTrueFalse:
		return []string{"True", "False"}
	case QuestionMultipleChoice:
		return q.Options
	default:
		return nil
	}
}

// Course is either a FullCourse or a StubCourse.
type Course interface {
	Info() Meta
	course()
}

type FullCourse struct {
	Meta    Meta
	Lessons []Lesson
	Quiz    []Question
}

func (c FullCourse) Info() Meta { return c.Meta }
func (FullCourse) course()      {}

// Lesson returns lesson n, 1-based.
func (c FullCourse) Lesson(n int) (Lesson, bool) {
	if n < 1 || n > len(c.Lessons) {
		return Lesson{}, false
	}
	return c.Lessons[n-1], true
}

// StubCourse has metadata only; its content is not published yet.
type StubCourse struct {
	Meta Meta
}

func (c StubCourse) Info() Meta { return c.Meta }
func (StubCourse) course()      {}

func (m Meta) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(m.Title) == "" {
		return fmt.Errorf("course %s: title is required", m.ID)
	}
	if m.TotalLessons < 0 {
		return fmt.Errorf("course %s: total lessons must be non-negative", m.ID)
	}
	return nil
}

func (c FullCourse) Validate() error {
	if err := c.Meta.Validate(); err != nil {
		return err
	}
	if c.Meta.TotalLessons != len(c.Lessons) {
		return fmt.Errorf("course %s: total lessons %d does not match %d lessons", c.Meta.ID, c.Meta.TotalLessons, len(c.Lessons))
	}
	for i, lesson := range c.Lessons {
		if lesson.Number != i+1 {
			return fmt.Errorf("course %s: lesson %d is numbered %d", c.Meta.ID, i+1, lesson.Number)
		}
		if strings.TrimSpace(lesson.Title) == "" {
			return fmt.Errorf("course %s: lesson %d has no title", c.Meta.ID, lesson.Number)
		}
	}
	seen := map[int]bool{}
	for _, q := range c.Quiz {
		if q.ID < 1 {
			return fmt.Errorf("course %s: quiz question id must be positive", c.Meta.ID)
		}
		if seen[q.ID] {
			return fmt.Errorf("course %s: duplicate quiz question %d", c.Meta.ID, q.ID)
		}
		seen[q.ID] = true
		if err := q.Type.Validate(); err != nil {
			return fmt.Errorf("course %s: question %d: %w", c.Meta.ID, q.ID, err)
		}
		if q.Type == QuestionMultipleChoice && len(q.Options) < 2 {
			return fmt.Errorf("course %s: question %d needs at least two options", c.Meta.ID, q.ID)
		}
	}
	return nil
}

type Filter struct {
	Category string
	Level    string
}

// Match treats empty and "All" as no constraint.
func (f Filter) Match(m Meta) bool {
	return matches(f.Category, m.Category) && matches(f.Level, m.Level)
}

func matches(want, got string) bool {
	want = strings.TrimSpace(want)
	if want == "" || strings.EqualFold(want, FilterAll) {
		return true
	}
	return strings.EqualFold(want, got)
}

// Registry is the ordered set of courses keyed by ID.
type Registry struct {
	Categories []string
	Levels     []string
	order      []string
	byID       map[string]Course
}

func NewRegistry(categories, levels []string, courses []Course) (*Registry, error) {
	r := &Registry{Categories: categories, Levels: levels, byID: map[string]Course{}}
	for _, c := range courses {
		var err error
		switch v := c.(type) {
		case FullCourse:
			err = v.Validate()
		case StubCourse:
			err = v.Meta.Validate()
		default:
			err = fmt.Errorf("unknown course variant %T", c)
		}
		if err != nil {
			return nil, err
		}
		id := c.Info().ID
		if _, dup := r.byID[id]; dup {
			return nil, fmt.Errorf("duplicate course id %q", id)
		}
		r.byID[id] = c
		r.order = append(r.order, id)
	}
	return r, nil
}

func (r *Registry) Get(id string) (Course, bool) {
	c, ok := r.byID[id]
	return c, ok
}

func (r *Registry) List(filter Filter) []Course {
	out := []Course{}
	for _, id := range r.order {
		c := r.byID[id]
		if filter.Match(c.Info()) {
			out = append(out, c)
		}
	}
	return out
}
