package out

import (
	"context"

	"microhub/internal/modules/course/domain"
)

type CatalogPort interface {
	Course(ctx context.Context, courseID string) (domain.Course, error)
}

type ProgressPort interface {
	Get(ctx context.Context, courseID string, isFree bool) (domain.Progress, error)
	CompleteLesson(ctx context.Context, courseID string, isFree bool, lesson int) (domain.Progress, string, error)
	MarkQuizSubmitted(ctx context.Context, courseID string, isFree bool) (string, error)
}

type GateResult struct {
	Accepted bool
	Reason   string
	Message  string
	Warning  string
}

type GatePort interface {
	IsUnlocked(ctx context.Context, courseID string, isFree bool) (bool, error)
	Redeem(ctx context.Context, courseID string, isFree bool, code string) (GateResult, error)
}

type Sent struct {
	Text    string
	Link    string
	Notice  string
	Opened  bool
	Warning string
}

type MessengerPort interface {
	SubmitQuiz(ctx context.Context, submission domain.Submission) (Sent, error)
}

type SubmissionStore interface {
	Save(ctx context.Context, submission domain.Submission) (string, error)
	Load(ctx context.Context, path string) (domain.Submission, error)
}
