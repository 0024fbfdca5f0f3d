package apperrors

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrCorruptState = errors.New("stored state is corrupt")

	ErrCourseLocked = errors.New("course is locked")
	ErrLessonLocked = errors.New("lesson is locked")

	ErrCodeMissing = errors.New("please enter an access code")
	ErrCodeNoMatch = errors.New("invalid access code")

	ErrQuizNotOffered       = errors.New("quiz is not available yet")
	ErrQuizIncomplete       = errors.New("please answer all questions")
	ErrQuizAlreadySubmitted = errors.New("quiz already submitted")
	ErrMissingContact       = errors.New("please provide your name and phone number")
)
