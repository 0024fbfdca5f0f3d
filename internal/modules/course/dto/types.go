package dto

import "microhub/internal/modules/course/domain"

type LessonState struct {
	Number int
	Title  string
	State  string
}

type QuestionOutput struct {
	ID      int
	Prompt  string
	Type    string
	Choices []string
}

type CourseView struct {
	CourseID   string
	Title      string
	IsFree     bool
	HasLessons bool
	Stage      string
	Unlocked   bool
	Lessons    []LessonState
	Completed  int
	Total      int
	Percent    int
	AccessCode string
	Notice     string
}

type LessonInput struct {
	CourseID string
	Lesson   int
}

type LessonOutput struct {
	CourseID string
	Number   int
	Title    string
	Content  string
}

type CompleteOutput struct {
	View    CourseView
	Notice  string
	Warning string
}

type RedeemInput struct {
	CourseID string
	Code     string
}

type RedeemOutput struct {
	View     CourseView
	Accepted bool
	Reason   string
	Message  string
	Warning  string
}

// QuizOutput hands the caller a draft to fill; it is never persisted.
type QuizOutput struct {
	View      CourseView
	Questions []QuestionOutput
	Draft     *domain.QuizDraft
}

type SubmitQuizInput struct {
	CourseID string
	Answers  map[int]string
	Name     string
	Phone    string
}

type SubmitQuizOutput struct {
	View         CourseView
	SubmissionID string
	Text         string
	Link         string
	Notice       string
	Opened       bool
	NotePath     string
	Warning      string
}
