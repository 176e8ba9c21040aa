package service

import "errors"

// Sentinel kinds for dashboard errors.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrNotTeacher       = errors.New("user is not a teacher")
	ErrNotStudent       = errors.New("user is not a student")
	ErrCourseNotOwned   = errors.New("course belongs to another teacher")
	ErrNotEnrolled      = errors.New("student is not enrolled in the course")
	ErrEmptySubmission  = errors.New("submission content is empty")
	ErrAlreadySubmitted = errors.New("assignment already submitted")
	ErrAlreadyGraded    = errors.New("submission already graded")
	ErrBackpressure     = errors.New("grading queue rejected job")
)
