package in

import (
	"context"

	"microhub/internal/modules/course/dto"
	coursein "microhub/internal/modules/course/port/in"
)

type CLIHandler struct {
	usecase coursein.Usecase
}

func NewCLIHandler(usecase coursein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Open(ctx context.Context, courseID string) (dto.CourseView, error) {
	return h.usecase.Open(ctx, courseID)
}

func (h CLIHandler) Lesson(ctx context.Context, courseID string, lesson int) (dto.LessonOutput, error) {
	return h.usecase.ViewLesson(ctx, dto.LessonInput{CourseID: courseID, Lesson: lesson})
}

func (h CLIHandler) Complete(ctx context.Context, courseID string, lesson int) (dto.CompleteOutput, error) {
	return h.usecase.CompleteLesson(ctx, dto.LessonInput{CourseID: courseID, Lesson: lesson})
}

func (h CLIHandler) Redeem(ctx context.Context, courseID, code string) (dto.RedeemOutput, error) {
	return h.usecase.RedeemCode(ctx, dto.RedeemInput{CourseID: courseID, Code: code})
}

func (h CLIHandler) Quiz(ctx context.Context, courseID string) (dto.QuizOutput, error) {
	return h.usecase.StartQuiz(ctx, courseID)
}

func (h CLIHandler) Submit(ctx context.Context, courseID string, answers map[int]string, name, phone string) (dto.SubmitQuizOutput, error) {
	return h.usecase.SubmitQuiz(ctx, dto.SubmitQuizInput{CourseID: courseID, Answers: answers, Name: name, Phone: phone})
}
