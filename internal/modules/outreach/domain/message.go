package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "microhub/internal/platform/errors"
)

const TimestampLayout = "2 Jan 2006, 15:04:05"

type Kind string

const (
	KindQuizSubmission      Kind = "quiz-submission"
	KindJoin                Kind = "join"
	KindCertificate         Kind = "certificate"
	KindPartnership         Kind = "partnership"
	KindGroupRegistration   Kind = "group-registration"
	KindAccessRequest       Kind = "access-request"
	KindGroupPricing        Kind = "group-pricing"
	KindPaymentInitiated    Kind = "payment-initiated"
	KindPaymentConfirmation Kind = "payment-confirmation"
)

// Message is a composed outbound text and the channel it should go through.
type Message struct {
	Kind    Kind
	Channel Channel
	Text    string
	Notice  string
}

var PartnershipTypes = []string{
	"Content Contributor",
	"Certificate & Accreditation Partner",
	"Sponsorship/CSR",
	"Data/Research Access Partner",
	"Platform Co-Owner or Angel Supporter",
	"Government/County Collaboration",
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return strings.TrimSpace(v)
}

type QuizAnswer struct {
	QuestionID int
	Question   string
	Answer     string
}

// QuizResults renders "Q<id>: <question>\nA: <answer>" blocks separated by a blank line.
func QuizResults(answers []QuizAnswer) string {
	blocks := make([]string, 0, len(answers))
	for _, a := range answers {
		blocks = append(blocks, fmt.Sprintf("Q%d: %s\nA: %s", a.QuestionID, a.Question, strings.TrimSpace(a.Answer)))
	}
	return strings.Join(blocks, "\n\n")
}

type QuizSubmission struct {
	CourseTitle string
	Name        string
	Phone       string
	Answers     []QuizAnswer
}

func (q QuizSubmission) Validate() error {
	unanswered := 0
	for _, a := range q.Answers {
		if strings.TrimSpace(a.Answer) == "" {
			unanswered++
		}
	}
	if unanswered > 0 {
		return fmt.Errorf("%w: %d questions remaining", apperrors.ErrQuizIncomplete, unanswered)
	}
	if strings.TrimSpace(q.Name) == "" || strings.TrimSpace(q.Phone) == "" {
		return apperrors.ErrMissingContact
	}
	return nil
}

func (q QuizSubmission) Message(at time.Time) Message {
	text := fmt.Sprintf("QUIZ SUBMISSION - %s\n\nStudent Details:\nName: %s\nPhone: %s\nDate: %s\n\nQuiz Results:\n%s\n\nPlease review and issue certificate if passed.",
		q.CourseTitle, strings.TrimSpace(q.Name), strings.TrimSpace(q.Phone), at.Format(TimestampLayout), QuizResults(q.Answers))
	return Message{Kind: KindQuizSubmission, Channel: ChannelAPI, Text: text, Notice: "Quiz Submitted! Your answers have been sent for review. You'll be contacted about your certificate."}
}

type JoinForm struct {
	WhatToLearn string `label:"what you want to learn" validate:"notblank"`
	Age         string `label:"age" validate:"notblank"`
	WhyChooseUs string `label:"why you chose us" validate:"notblank,min=10"`
}

func (f JoinForm) Message(at time.Time) Message {
	text := "🎓 NEW LEARNER REGISTRATION\n\n" +
		fmt.Sprintf("📚 What they want to learn: %s\n", strings.TrimSpace(f.WhatToLearn)) +
		fmt.Sprintf("🎂 Age: %s\n", strings.TrimSpace(f.Age)) +
		fmt.Sprintf("💭 Why they chose Microlearning Hub: %s\n\n", strings.TrimSpace(f.WhyChooseUs)) +
		fmt.Sprintf("Submitted at: %s", at.Format(TimestampLayout))
	return Message{Kind: KindJoin, Channel: ChannelShort, Text: text, Notice: "Registration Submitted! We'll get back to you shortly."}
}

type CertificateForm struct {
	FullName        string `label:"full name" validate:"notblank,min=2"`
	CourseCompleted string `label:"course completed" validate:"notblank"`
	WhatsAppNumber  string `label:"WhatsApp number" validate:"notblank,min=10"`
	DateCompleted   string
	Rating          int    `label:"rating (1-5)" validate:"min=1,max=5"`
	Feedback        string `label:"feedback" validate:"notblank,min=10"`
}

func (f CertificateForm) Message(at time.Time) Message {
	text := "📥 CERTIFICATE REQUEST\n\n" +
		fmt.Sprintf("Name: %s\n", strings.TrimSpace(f.FullName)) +
		fmt.Sprintf("Course: %s\n", strings.TrimSpace(f.CourseCompleted)) +
		fmt.Sprintf("WhatsApp: %s\n", strings.TrimSpace(f.WhatsAppNumber)) +
		fmt.Sprintf("Completed on: %s\n", orDefault(f.DateCompleted, "Not specified")) +
		fmt.Sprintf("Rating: %s\n", strings.Repeat("⭐", f.Rating)) +
		fmt.Sprintf("Feedback: %s\n\n", strings.TrimSpace(f.Feedback)) +
		fmt.Sprintf("Submitted at: %s", at.Format(TimestampLayout))
	return Message{Kind: KindCertificate, Channel: ChannelShort, Text: text, Notice: "Thank you! Your certificate will be generated and sent to your WhatsApp shortly."}
}

type PartnershipForm struct {
	FullName         string   `label:"full name" validate:"notblank,min=2"`
	OrganizationName string   `label:"organization name" validate:"notblank,min=2"`
	OfficialTitle    string   `label:"official title" validate:"notblank,min=2"`
	Phone            string   `label:"phone number" validate:"notblank,min=10"`
	Email            string   `label:"email" validate:"required,email"`
	PartnershipTypes []string `label:"partnership type" validate:"min=1,dive,partnership_type"`
	Description      string   `label:"description" validate:"notblank,min=20"`
	Website          string
}

// IsPartnershipType reports whether t names one of PartnershipTypes, ignoring case.
func IsPartnershipType(t string) bool {
	for _, known := range PartnershipTypes {
		if strings.EqualFold(known, strings.TrimSpace(t)) {
			return true
		}
	}
	return false
}

func (f PartnershipForm) Message(at time.Time) Message {
	text := "🤝 NEW PARTNERSHIP INQUIRY\n\n" +
		fmt.Sprintf("👤 Representative: %s\n", strings.TrimSpace(f.FullName)) +
		fmt.Sprintf("🏢 Organization: %s\n", strings.TrimSpace(f.OrganizationName)) +
		fmt.Sprintf("📋 Title/Role: %s\n", strings.TrimSpace(f.OfficialTitle)) +
		fmt.Sprintf("📱 Phone: %s\n", strings.TrimSpace(f.Phone)) +
		fmt.Sprintf("📧 Email: %s\n", strings.TrimSpace(f.Email)) +
		fmt.Sprintf("🎯 Partnership Types: %s\n", strings.Join(f.PartnershipTypes, ", ")) +
		fmt.Sprintf("📝 Description: %s\n", strings.TrimSpace(f.Description)) +
		fmt.Sprintf("🌐 Website: %s\n\n", orDefault(f.Website, "Not provided")) +
		fmt.Sprintf("Submitted at: %s", at.Format(TimestampLayout))
	return Message{Kind: KindPartnership, Channel: ChannelShort, Text: text, Notice: "Partnership Inquiry Submitted! Our team will reach out to you shortly."}
}

type GroupRegistrationForm struct {
	GroupName          string
	RepresentativeName string `label:"representative name" validate:"notblank"`
	Phone              string `label:"phone" validate:"notblank"`
	Email              string `label:"email" validate:"required,email"`
	SelectedCourses    string
	Members            string
}

func (f GroupRegistrationForm) Message(time.Time) Message {
	text := fmt.Sprintf("Group Registration\n\nGroup Name: %s\nRepresentative: %s\nPhone: %s\nEmail: %s\nSelected Courses: %s\n\nMembers List:\n%s",
		strings.TrimSpace(f.GroupName), strings.TrimSpace(f.RepresentativeName), strings.TrimSpace(f.Phone),
		strings.TrimSpace(f.Email), strings.TrimSpace(f.SelectedCourses), strings.TrimSpace(f.Members))
	return Message{Kind: KindGroupRegistration, Channel: ChannelAPI, Text: text, Notice: "📚 Group registration received! We'll contact you shortly."}
}

type RequestType string

const (
	RequestAccess        RequestType = "access"
	RequestCertification RequestType = "certification"
)

type AccessRequestForm struct {
	Type     RequestType `label:"request type (access|certification)" validate:"oneof=access certification"`
	FullName string      `label:"full name" validate:"notblank"`
	Email    string      `label:"email" validate:"required,email"`
	Phone    string      `label:"phone" validate:"notblank"`
	Courses  string
	Reason   string
}

func (f AccessRequestForm) Message(time.Time) Message {
	title := "Certification Request"
	if f.Type == RequestAccess {
		title = "Full Access Request"
	}
	text := fmt.Sprintf("%s\n\nFull Name: %s\nEmail: %s\nPhone: %s\nCourses Interested: %s\nReason: %s",
		title, strings.TrimSpace(f.FullName), strings.TrimSpace(f.Email), strings.TrimSpace(f.Phone),
		strings.TrimSpace(f.Courses), strings.TrimSpace(f.Reason))
	return Message{Kind: KindAccessRequest, Channel: ChannelAPI, Text: text, Notice: "🎉 Thank you! Our team will get back to you shortly."}
}

type GroupPricingForm struct {
	Name             string `label:"name" validate:"notblank"`
	Institution      string `label:"institution" validate:"notblank"`
	Phone            string `label:"phone" validate:"notblank"`
	NumberOfLearners string `label:"number of learners" validate:"positive_count"`
	CourseInterest   string `label:"course interest" validate:"notblank"`
	AdditionalInfo   string
}

func (f GroupPricingForm) Message(at time.Time) Message {
	text := fmt.Sprintf("GROUP PRICING INQUIRY\n\nContact Details:\nName: %s\nInstitution: %s\nPhone: %s\n\nTraining Requirements:\nNumber of Learners: %s\nCourse Interest: %s\n\nAdditional Information:\n%s\n\nInquiry Date: %s\n\nPlease provide group pricing and training options.",
		strings.TrimSpace(f.Name), strings.TrimSpace(f.Institution), strings.TrimSpace(f.Phone),
		strings.TrimSpace(f.NumberOfLearners), strings.TrimSpace(f.CourseInterest),
		orDefault(f.AdditionalInfo, "None provided"), at.Format(TimestampLayout))
	return Message{Kind: KindGroupPricing, Channel: ChannelAPI, Text: text, Notice: "Inquiry Sent! Our team will contact you within 2 hours with custom pricing."}
}

type PaymentInitiated struct {
	Plan   string
	Amount int
	Till   string
}

func (p PaymentInitiated) Message(at time.Time) Message {
	text := fmt.Sprintf("New Payment Initiated\n\nPlan: %s\nAmount: KES %d\nTill: %s\nTime: %s\n\nPlease verify payment and issue access code.",
		strings.ToUpper(p.Plan), p.Amount, p.Till, at.Format(TimestampLayout))
	return Message{Kind: KindPaymentInitiated, Channel: ChannelAPI, Text: text, Notice: "Payment Instructions Sent. Complete your M-Pesa payment and paste the confirmation message."}
}

type PaymentConfirmation struct {
	Plan         string
	Amount       int
	Code         string
	MpesaMessage string
}

func (p PaymentConfirmation) Message(at time.Time) Message {
	text := fmt.Sprintf("Payment Confirmation Received\n\nPlan: %s\nAmount: KES %d\nGenerated Code: %s\nM-Pesa Message: %s\nTime: %s",
		strings.ToUpper(p.Plan), p.Amount, p.Code, strings.TrimSpace(p.MpesaMessage), at.Format(TimestampLayout))
	return Message{Kind: KindPaymentConfirmation, Channel: ChannelAPI, Text: text, Notice: "Payment Confirmed! Your access code is: " + p.Code}
}
