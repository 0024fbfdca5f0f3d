package dto

type GateInput struct {
	CourseID string
	IsFree   bool
}

type SubmitInput struct {
	CourseID string
	IsFree   bool
	Code     string
}

type SubmitOutput struct {
	CourseID string
	Code     string
	Accepted bool
	Kind     string
	Reason   string
	Message  string
	Warning  string
}

type CheckOutput struct {
	Code     string
	Accepted bool
	Kind     string
	Reason   string
}
