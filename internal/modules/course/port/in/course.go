package in

import (
	"context"

	"microhub/internal/modules/course/dto"
)

type Usecase interface {
	Open(ctx context.Context, courseID string) (dto.CourseView, error)
	ViewLesson(ctx context.Context, input dto.LessonInput) (dto.LessonOutput, error)
	CompleteLesson(ctx context.Context, input dto.LessonInput) (dto.CompleteOutput, error)
	// RedeemCode blocks for the gate's verification delay on a well-formed
	// code; cancelling ctx abandons the attempt.
	RedeemCode(ctx context.Context, input dto.RedeemInput) (dto.RedeemOutput, error)
	StartQuiz(ctx context.Context, courseID string) (dto.QuizOutput, error)
	SubmitQuiz(ctx context.Context, input dto.SubmitQuizInput) (dto.SubmitQuizOutput, error)
}
