package model

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// PerformanceRecord is a student's score history per subject plus optional
// strength/weakness tags. Subjects keep insertion order and scores keep
// chronological order, so flattening is deterministic.
//
// Read methods accept a nil receiver and behave as an empty record.
type PerformanceRecord struct {
	Strength string // empty when absent
	Weakness string // empty when absent

	subjects []string
	scores   map[string][]float64
}

// NewPerformanceRecord creates an empty record with the given tags.
func NewPerformanceRecord(strength, weakness string) *PerformanceRecord {
	return &PerformanceRecord{
		Strength: strength,
		Weakness: weakness,
		scores:   make(map[string][]float64),
	}
}

// AddScores appends scores to subject, registering the subject on first use.
// The subject must be non-empty and lowercase and every score finite;
// nothing is appended when validation fails.
func (r *PerformanceRecord) AddScores(subject string, scores ...float64) error {
	if subject == "" {
		return ErrEmptySubject
	}
	if subject != strings.ToLower(subject) {
		return fmt.Errorf("%w: %q", ErrSubjectNotLowercase, subject)
	}
	for _, s := range scores {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return fmt.Errorf("%w: %s=%v", ErrNonFiniteScore, subject, s)
		}
	}
	if r.scores == nil {
		r.scores = make(map[string][]float64)
	}
	if _, ok := r.scores[subject]; !ok {
		r.subjects = append(r.subjects, subject)
	}
	r.scores[subject] = append(r.scores[subject], scores...)
	return nil
}

// Subjects lists subjects in insertion order.
func (r *PerformanceRecord) Subjects() []string {
	if r == nil {
		return nil
	}
	return slices.Clone(r.subjects)
}

// Scores returns a copy of the score list for an exact subject key.
func (r *PerformanceRecord) Scores(subject string) []float64 {
	if r == nil {
		return nil
	}
	return slices.Clone(r.scores[subject])
}

// AllScores flattens every subject's scores, subjects in insertion order.
func (r *PerformanceRecord) AllScores() []float64 {
	if r == nil {
		return nil
	}
	var all []float64
	for _, subject := range r.subjects {
		all = append(all, r.scores[subject]...)
	}
	return all
}

// Len counts scores across all subjects.
func (r *PerformanceRecord) Len() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, s := range r.scores {
		n += len(s)
	}
	return n
}

// Clone deep-copies the record. Cloning nil yields nil.
func (r *PerformanceRecord) Clone() *PerformanceRecord {
	if r == nil {
		return nil
	}
	c := NewPerformanceRecord(r.Strength, r.Weakness)
	c.subjects = slices.Clone(r.subjects)
	for subject, scores := range r.scores {
		c.scores[subject] = slices.Clone(scores)
	}
	return c
}

// PerformanceBook indexes performance records by student ID.
type PerformanceBook map[string]*PerformanceRecord

// Lookup returns the student's record, or nil when there is none.
func (b PerformanceBook) Lookup(studentID string) *PerformanceRecord {
	if b == nil {
		return nil
	}
	return b[studentID]
}

// Clone deep-copies every record in the book.
func (b PerformanceBook) Clone() PerformanceBook {
	if b == nil {
		return nil
	}
	c := make(PerformanceBook, len(b))
	for id, rec := range b {
		c[id] = rec.Clone()
	}
	return c
}
