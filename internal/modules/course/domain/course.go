package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	apperrors "microhub/internal/platform/errors"
)

type Stage string

const (
	StageLocked         Stage = "locked"
	StageUnlocked       Stage = "unlocked"
	StageQuizOffered    Stage = "quiz-offered"
	StageQuizInProgress Stage = "quiz-in-progress"
	StageQuizSubmitted  Stage = "quiz-submitted"
)

type LessonState string

const (
	LessonCompleted LessonState = "completed"
	LessonUnlocked  LessonState = "unlocked"
	LessonLocked    LessonState = "locked"
)

const (
	LessonCompleteNotice = "Lesson Complete!"
	ComingSoonNotice     = "Content coming soon. Full lessons for this course are being prepared."
	LockedNotice         = "This course is locked. Enter an access code to continue."
)

type Lesson struct {
	Number  int
	Title   string
	Content string
}

type Question struct {
	ID      int
	Prompt  string
	Type    string
	Choices []string
}

// Course is the slice of a catalog entry that sequencing needs.
type Course struct {
	ID           string
	Title        string
	IsFree       bool
	HasLessons   bool
	TotalLessons int
	Lessons      []Lesson
	Quiz         []Question
}

func (c Course) Lesson(n int) (Lesson, bool) {
	for _, lesson := range c.Lessons {
		if lesson.Number == n {
			return lesson, true
		}
	}
	return Lesson{}, false
}

func (c Course) Question(id int) (Question, bool) {
	for _, q := range c.Quiz {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// Progress is the learner state for one course as seen by sequencing.
type Progress struct {
	Completed     []int
	Unlocked      []int
	HasAccess     bool
	AccessCode    string
	QuizSubmitted bool
}

func (p Progress) IsCompleted(n int) bool { return contains(p.Completed, n) }

func (p Progress) IsUnlocked(n int) bool { return contains(p.Unlocked, n) }

func contains(values []int, n int) bool {
	for _, v := range values {
		if v == n {
			return true
		}
	}
	return false
}

type LessonView struct {
	Number int
	Title  string
	State  LessonState
}

type View struct {
	Course    Course
	Stage     Stage
	Unlocked  bool
	Lessons   []LessonView
	Completed int
	Total     int
	Percent   int
	Progress  Progress
	Notice    string
}

// Project derives the course view from the catalog entry and stored progress.
// Locked courses never expose lessons, whatever the stored unlock state says.
func Project(course Course, progress Progress, unlocked bool) View {
	view := View{Course: course, Unlocked: unlocked, Total: course.TotalLessons, Progress: progress}
	if !unlocked {
		view.Stage = StageLocked
		view.Notice = LockedNotice
		return view
	}
	if !course.HasLessons {
		view.Stage = StageUnlocked
		view.Notice = ComingSoonNotice
		return view
	}

	view.Total = len(course.Lessons)
	view.Lessons = make([]LessonView, 0, len(course.Lessons))
	for _, lesson := range course.Lessons {
		state := LessonLocked
		switch {
		case progress.IsCompleted(lesson.Number):
			state = LessonCompleted
			view.Completed++
		case progress.IsUnlocked(lesson.Number):
			state = LessonUnlocked
		}
		view.Lessons = append(view.Lessons, LessonView{Number: lesson.Number, Title: lesson.Title, State: state})
	}
	view.Percent = Percent(view.Completed, view.Total)

	switch {
	case view.Total > 0 && view.Completed >= view.Total && progress.QuizSubmitted:
		view.Stage = StageQuizSubmitted
	case view.Total > 0 && view.Completed >= view.Total && len(course.Quiz) > 0:
		view.Stage = StageQuizOffered
	default:
		view.Stage = StageUnlocked
	}
	return view
}

func Percent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	if completed > total {
		completed = total
	}
	return completed * 100 / total
}

// QuizDraft holds in-flight answers. It lives only with the caller;
// dropping it is how a quiz is cancelled.
type QuizDraft struct {
	questions []int
	answers   map[int]string
}

func NewQuizDraft(questions []Question) *QuizDraft {
	ids := make([]int, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
	}
	sort.Ints(ids)
	return &QuizDraft{questions: ids, answers: map[int]string{}}
}

func (d *QuizDraft) Answer(questionID int, answer string) error {
	if !contains(d.questions, questionID) {
		return fmt.Errorf("question %d: %w", questionID, apperrors.ErrInvalidInput)
	}
	d.answers[questionID] = answer
	return nil
}

func (d *QuizDraft) Get(questionID int) string { return d.answers[questionID] }

// Unanswered lists question ids whose answer is empty after trimming.
func (d *QuizDraft) Unanswered() []int {
	out := []int{}
	for _, id := range d.questions {
		if strings.TrimSpace(d.answers[id]) == "" {
			out = append(out, id)
		}
	}
	return out
}

func (d *QuizDraft) Ready() bool { return len(d.Unanswered()) == 0 }

func (d *QuizDraft) Answers() map[int]string {
	out := make(map[int]string, len(d.answers))
	for id, answer := range d.answers {
		out[id] = answer
	}
	return out
}

// Submission is the archived record of a sent quiz.
type Submission struct {
	ID          string
	CourseID    string
	CourseTitle string
	Name        string
	Phone       string
	Answers     []Answer
	Message     string
	Link        string
	SubmittedAt time.Time
}

type Answer struct {
	QuestionID int
	Question   string
	Answer     string
}

// Results renders the answer block in the same shape the message carries.
func (s Submission) Results() string {
	blocks := make([]string, 0, len(s.Answers))
	for _, a := range s.Answers {
		blocks = append(blocks, fmt.Sprintf("Q%d: %s\nA: %s", a.QuestionID, a.Question, strings.TrimSpace(a.Answer)))
	}
	return strings.Join(blocks, "\n\n")
}
