package dto

type SendOutput struct {
	Kind    string
	Text    string
	Link    string
	Notice  string
	Opened  bool
	Warning string
}

type QuizAnswer struct {
	QuestionID int
	Question   string
	Answer     string
}

type QuizSubmissionInput struct {
	CourseTitle string
	Name        string
	Phone       string
	Answers     []QuizAnswer
}

type JoinInput struct {
	WhatToLearn string
	Age         string
	WhyChooseUs string
}

type CertificateInput struct {
	FullName        string
	CourseCompleted string
	WhatsAppNumber  string
	DateCompleted   string
	Rating          int
	Feedback        string
}

type PartnershipInput struct {
	FullName         string
	OrganizationName string
	OfficialTitle    string
	Phone            string
	Email            string
	PartnershipTypes []string
	Description      string
	Website          string
}

type GroupRegistrationInput struct {
	GroupName          string
	RepresentativeName string
	Phone              string
	Email              string
	SelectedCourses    string
	Members            string
}

type AccessRequestInput struct {
	Type     string
	FullName string
	Email    string
	Phone    string
	Courses  string
	Reason   string
}

type GroupPricingInput struct {
	Name             string
	Institution      string
	Phone            string
	NumberOfLearners string
	CourseInterest   string
	AdditionalInfo   string
}

type PaymentInitiatedInput struct {
	Plan   string
	Amount int
	Till   string
}

type PaymentConfirmationInput struct {
	Plan         string
	Amount       int
	Code         string
	MpesaMessage string
}

type ContactOutput struct {
	WhatsAppNumber string
	DisplayPhone   string
	ChatLink       string
}
