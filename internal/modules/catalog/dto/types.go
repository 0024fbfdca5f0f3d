package dto

const (
	KindFull = "full"
	KindStub = "stub"
)

type ListInput struct {
	Category string
	Level    string
}

type CourseSummary struct {
	ID             string
	Kind           string
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

func (c CourseSummary) HasLessons() bool { return c.Kind == KindFull }

type LessonOutput struct {
	Number  int
	Title   string
	Content string
}

type QuestionOutput struct {
	ID       int
	Prompt   string
	Type     string
	Choices  []string
	Expected string
}

type CourseDetail struct {
	CourseSummary
	Lessons []LessonOutput
	Quiz    []QuestionOutput
}

type FiltersOutput struct {
	Categories []string
	Levels     []string
}
