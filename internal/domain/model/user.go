// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strings"
)

// Role distinguishes teachers from students.
type Role string

// Supported roles.
const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// ParseRole converts a raw role string, rejecting anything unknown.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleTeacher:
		return RoleTeacher, nil
	case RoleStudent:
		return RoleStudent, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// User is anyone who can log into the system.
type User struct {
	ID         string `validate:"required"`
	Name       string `validate:"required"`
	Role       Role   `validate:"required,oneof=teacher student"`
	GradeLevel int    `validate:"gte=0,lte=12"` // students only; zero for teachers
}

// IsTeacher reports whether the user has the teacher role.
func (u User) IsTeacher() bool { return u.Role == RoleTeacher }

// IsStudent reports whether the user has the student role.
func (u User) IsStudent() bool { return u.Role == RoleStudent }
