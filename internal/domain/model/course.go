package model

import "slices"

// Course groups enrolled students and the assignments handed out to them.
type Course struct {
	ID          string `validate:"required"`
	Name        string `validate:"required"`
	TeacherID   string `validate:"required"`
	GradeLevel  int    `validate:"gte=0,lte=12"`
	Subject     string `validate:"required"`
	Students    []string
	Assignments []string
}

// HasStudent reports whether studentID is enrolled.
func (c Course) HasStudent(studentID string) bool {
	return slices.Contains(c.Students, studentID)
}

// Clone returns a copy that does not share the ID slices.
func (c Course) Clone() Course {
	c.Students = slices.Clone(c.Students)
	c.Assignments = slices.Clone(c.Assignments)
	return c
}
