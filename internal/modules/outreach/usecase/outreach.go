package usecase

import (
	"context"
	"time"

	"microhub/internal/modules/outreach/domain"
	"microhub/internal/modules/outreach/dto"
	outreachin "microhub/internal/modules/outreach/port/in"
	"microhub/internal/modules/outreach/service"
)

type Interactor struct {
	svc *service.OutreachService
}

func NewInteractor(svc *service.OutreachService) outreachin.Usecase {
	return &Interactor{svc: svc}
}

type form interface {
	Message(at time.Time) domain.Message
}

func (i *Interactor) send(ctx context.Context, f form) (dto.SendOutput, error) {
	if err := i.svc.Validate(f); err != nil {
		return dto.SendOutput{}, err
	}
	d := i.svc.Deliver(ctx, f.Message(i.svc.Now()))
	out := dto.SendOutput{
		Kind:   string(d.Message.Kind),
		Text:   d.Message.Text,
		Link:   d.Link,
		Notice: d.Message.Notice,
		Opened: d.Opened,
	}
	if d.Warning != nil {
		out.Warning = "could not open WhatsApp, use the link instead: " + d.Warning.Error()
	}
	return out, nil
}

func (i *Interactor) SubmitQuiz(ctx context.Context, input dto.QuizSubmissionInput) (dto.SendOutput, error) {
	answers := make([]domain.QuizAnswer, 0, len(input.Answers))
	for _, a := range input.Answers {
		answers = append(answers, domain.QuizAnswer{QuestionID: a.QuestionID, Question: a.Question, Answer: a.Answer})
	}
	q := domain.QuizSubmission{CourseTitle: input.CourseTitle, Name: input.Name, Phone: input.Phone, Answers: answers}
	if err := q.Validate(); err != nil {
		return dto.SendOutput{}, err
	}
	return i.send(ctx, q)
}

func (i *Interactor) Join(ctx context.Context, input dto.JoinInput) (dto.SendOutput, error) {
	return i.send(ctx, domain.JoinForm{WhatToLearn: input.WhatToLearn, Age: input.Age, WhyChooseUs: input.WhyChooseUs})
}

func (i *Interactor) RequestCertificate(ctx context.Context, input dto.CertificateInput) (dto.SendOutput, error) {
	return i.send(ctx, domain.CertificateForm{
		FullName:        input.FullName,
		CourseCompleted: input.CourseCompleted,
		WhatsAppNumber:  input.WhatsAppNumber,
		DateCompleted:   input.DateCompleted,
		Rating:          input.Rating,
		Feedback:        input.Feedback,
	})
}

func (i *Interactor) Partnership(ctx context.Context, input dto.PartnershipInput) (dto.SendOutput, error) {
	return i.send(ctx, domain.PartnershipForm{
		FullName:         input.FullName,
		OrganizationName: input.OrganizationName,
		OfficialTitle:    input.OfficialTitle,
		Phone:            input.Phone,
		Email:            input.Email,
		PartnershipTypes: input.PartnershipTypes,
		Description:      input.Description,
		Website:          input.Website,
	})
}

func (i *Interactor) RegisterGroup(ctx context.Context, input dto.GroupRegistrationInput) (dto.SendOutput, error) {
	return i.send(ctx, domain.GroupRegistrationForm{
		GroupName:          input.GroupName,
		RepresentativeName: input.RepresentativeName,
		Phone:              input.Phone,
		Email:              input.Email,
		SelectedCourses:    input.SelectedCourses,
		Members:            input.Members,
	})
}

func (i *Interactor) RequestAccess(ctx context.Context, input dto.AccessRequestInput) (dto.SendOutput, error) {
	return i.send(ctx, domain.AccessRequestForm{
		Type:     domain.RequestType(input.Type),
		FullName: input.FullName,
		Email:    input.Email,
		Phone:    input.Phone,
		Courses:  input.Courses,
		Reason:   input.Reason,
	})
}

func (i *Interactor) GroupPricing(ctx context.Context, input dto.GroupPricingInput) (dto.SendOutput, error) {
	return i.send(ctx, domain.GroupPricingForm{
		Name:             input.Name,
		Institution:      input.Institution,
		Phone:            input.Phone,
		NumberOfLearners: input.NumberOfLearners,
		CourseInterest:   input.CourseInterest,
		AdditionalInfo:   input.AdditionalInfo,
	})
}

func (i *Interactor) PaymentInitiated(ctx context.Context, input dto.PaymentInitiatedInput) (dto.SendOutput, error) {
	return i.send(ctx, domain.PaymentInitiated{Plan: input.Plan, Amount: input.Amount, Till: input.Till})
}

func (i *Interactor) PaymentConfirmed(ctx context.Context, input dto.PaymentConfirmationInput) (dto.SendOutput, error) {
	return i.send(ctx, domain.PaymentConfirmation{Plan: input.Plan, Amount: input.Amount, Code: input.Code, MpesaMessage: input.MpesaMessage})
}

func (i *Interactor) Contact(_ context.Context) dto.ContactOutput {
	number := i.svc.Number()
	return dto.ContactOutput{
		WhatsAppNumber: number,
		DisplayPhone:   domain.DisplayPhone(number),
		ChatLink:       "https://wa.me/" + number,
	}
}
