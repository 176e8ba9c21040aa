package model

import "time"

// SubmissionKey identifies a student's work on one assignment. A student
// submits at most once per assignment.
type SubmissionKey struct {
	StudentID    string
	AssignmentID string
}

// String renders the key as student/assignment.
func (k SubmissionKey) String() string {
	return k.StudentID + "/" + k.AssignmentID
}

// Submission is a student's answer to an assignment.
type Submission struct {
	ID           string `validate:"required"`
	StudentID    string `validate:"required"`
	AssignmentID string `validate:"required"`
	Content      string
	SubmittedAt  time.Time `validate:"required"`
	Grade        *int      // nil until graded
	AIScore      *int      // set when the grade came from the assistant
	Feedback     string
}

// Key returns the submission's identity.
func (s Submission) Key() SubmissionKey {
	return SubmissionKey{StudentID: s.StudentID, AssignmentID: s.AssignmentID}
}

// IsGraded reports whether a grade has been recorded.
func (s Submission) IsGraded() bool {
	return s.Grade != nil
}

// Clone returns a copy that does not share grade pointers.
func (s Submission) Clone() Submission {
	if s.Grade != nil {
		g := *s.Grade
		s.Grade = &g
	}
	if s.AIScore != nil {
		a := *s.AIScore
		s.AIScore = &a
	}
	return s
}
