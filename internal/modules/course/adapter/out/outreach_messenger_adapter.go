package out

import (
	"context"

	"microhub/internal/modules/course/domain"
	courseout "microhub/internal/modules/course/port/out"
	"microhub/internal/modules/outreach/dto"
	outreachin "microhub/internal/modules/outreach/port/in"
)

type OutreachMessengerAdapter struct {
	outreach outreachin.Usecase
}

func NewOutreachMessengerAdapter(outreach outreachin.Usecase) courseout.MessengerPort {
	return &OutreachMessengerAdapter{outreach: outreach}
}

func (a *OutreachMessengerAdapter) SubmitQuiz(ctx context.Context, submission domain.Submission) (courseout.Sent, error) {
	input := dto.QuizSubmissionInput{
		CourseTitle: submission.CourseTitle,
		Name:        submission.Name,
		Phone:       submission.Phone,
	}
	for _, answer := range submission.Answers {
		input.Answers = append(input.Answers, dto.QuizAnswer{QuestionID: answer.QuestionID, Question: answer.Question, Answer: answer.Answer})
	}
	out, err := a.outreach.SubmitQuiz(ctx, input)
	if err != nil {
		return courseout.Sent{}, err
	}
	return courseout.Sent{Text: out.Text, Link: out.Link, Notice: out.Notice, Opened: out.Opened, Warning: out.Warning}, nil
}
