package dto

import "time"

type CourseRef struct {
	CourseID string
	IsFree   bool
}

type MarkLessonInput struct {
	CourseID string
	IsFree   bool
	LessonID int
}

type GrantAccessInput struct {
	CourseID string
	IsFree   bool
	Code     string
}

type ProgressOutput struct {
	CourseID         string
	CompletedLessons []int
	UnlockedLessons  []int
	CompletedCount   int
	HasAccess        bool
	AccessCode       string
	QuizSubmitted    bool
	UpdatedAt        time.Time
}

// MutationOutput carries a non-fatal persistence warning; the in-memory
// progress is authoritative even when Warning is set.
type MutationOutput struct {
	Progress ProgressOutput
	Changed  bool
	Warning  string
}

type ReportRow struct {
	CourseID       string
	CompletedCount int
	UnlockedMax    int
	HasAccess      bool
	AccessCode     string
	QuizSubmitted  bool
	UpdatedAt      time.Time
}
