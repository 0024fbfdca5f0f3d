package usecase

import (
	"context"

	"microhub/internal/modules/course/domain"
	"microhub/internal/modules/course/dto"
	coursein "microhub/internal/modules/course/port/in"
	"microhub/internal/modules/course/service"
)

type Interactor struct {
	svc *service.CourseService
}

func NewInteractor(svc *service.CourseService) coursein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Open(ctx context.Context, courseID string) (dto.CourseView, error) {
	view, err := i.svc.Open(ctx, courseID)
	if err != nil {
		return dto.CourseView{}, err
	}
	return toView(view), nil
}

func (i *Interactor) ViewLesson(ctx context.Context, input dto.LessonInput) (dto.LessonOutput, error) {
	lesson, err := i.svc.ViewLesson(ctx, input.CourseID, input.Lesson)
	if err != nil {
		return dto.LessonOutput{}, err
	}
	return dto.LessonOutput{CourseID: input.CourseID, Number: lesson.Number, Title: lesson.Title, Content: lesson.Content}, nil
}

func (i *Interactor) CompleteLesson(ctx context.Context, input dto.LessonInput) (dto.CompleteOutput, error) {
	result, err := i.svc.CompleteLesson(ctx, input.CourseID, input.Lesson)
	if err != nil {
		return dto.CompleteOutput{}, err
	}
	return dto.CompleteOutput{View: toView(result.View), Notice: result.Notice, Warning: result.Warning}, nil
}

func (i *Interactor) RedeemCode(ctx context.Context, input dto.RedeemInput) (dto.RedeemOutput, error) {
	result, err := i.svc.RedeemCode(ctx, input.CourseID, input.Code)
	if err != nil {
		return dto.RedeemOutput{}, err
	}
	return dto.RedeemOutput{
		View:     toView(result.View),
		Accepted: result.Gate.Accepted,
		Reason:   result.Gate.Reason,
		Message:  result.Gate.Message,
		Warning:  result.Warning,
	}, nil
}

func (i *Interactor) StartQuiz(ctx context.Context, courseID string) (dto.QuizOutput, error) {
	view, draft, err := i.svc.StartQuiz(ctx, courseID)
	if err != nil {
		return dto.QuizOutput{}, err
	}
	out := dto.QuizOutput{View: toView(view), Draft: draft}
	for _, q := range view.Course.Quiz {
		out.Questions = append(out.Questions, dto.QuestionOutput{ID: q.ID, Prompt: q.Prompt, Type: q.Type, Choices: q.Choices})
	}
	return out, nil
}

func (i *Interactor) SubmitQuiz(ctx context.Context, input dto.SubmitQuizInput) (dto.SubmitQuizOutput, error) {
	result, err := i.svc.SubmitQuiz(ctx, input.CourseID, input.Answers, input.Name, input.Phone)
	if err != nil {
		return dto.SubmitQuizOutput{}, err
	}
	return dto.SubmitQuizOutput{
		View:         toView(result.View),
		SubmissionID: result.Submission.ID,
		Text:         result.Sent.Text,
		Link:         result.Sent.Link,
		Notice:       result.Sent.Notice,
		Opened:       result.Sent.Opened,
		NotePath:     result.NotePath,
		Warning:      result.Warning,
	}, nil
}

func toView(view domain.View) dto.CourseView {
	out := dto.CourseView{
		CourseID:   view.Course.ID,
		Title:      view.Course.Title,
		IsFree:     view.Course.IsFree,
		HasLessons: view.Course.HasLessons,
		Stage:      string(view.Stage),
		Unlocked:   view.Unlocked,
		Completed:  view.Completed,
		Total:      view.Total,
		Percent:    view.Percent,
		AccessCode: view.Progress.AccessCode,
		Notice:     view.Notice,
	}
	for _, lesson := range view.Lessons {
		out.Lessons = append(out.Lessons, dto.LessonState{Number: lesson.Number, Title: lesson.Title, State: string(lesson.State)})
	}
	return out
}
