package model_test

import (
	"errors"
	"math"
	"testing"
	"time"

	model "github.com/okian/k12lms/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestPerformanceRecord(t *testing.T) {
	convey.Convey("Given a performance record", t, func() {
		rec := model.NewPerformanceRecord("math", "writing")

		convey.Convey("When adding scores for several subjects", func() {
			convey.So(rec.AddScores("math", 88, 92), convey.ShouldBeNil)
			convey.So(rec.AddScores("science", 85), convey.ShouldBeNil)
			convey.So(rec.AddScores("math", 95), convey.ShouldBeNil)

			convey.Convey("Then subjects keep insertion order", func() {
				convey.So(rec.Subjects(), convey.ShouldResemble, []string{"math", "science"})
			})

			convey.Convey("And flattening follows subject then chronological order", func() {
				convey.So(rec.AllScores(), convey.ShouldResemble, []float64{88, 92, 95, 85})
				convey.So(rec.Len(), convey.ShouldEqual, 4)
			})

			convey.Convey("And returned slices are copies", func() {
				scores := rec.Scores("math")
				scores[0] = 0
				convey.So(rec.Scores("math")[0], convey.ShouldEqual, 88)
			})
		})

		convey.Convey("When the subject is not lowercase", func() {
			err := rec.AddScores("Math", 90)

			convey.Convey("Then it is rejected", func() {
				convey.So(errors.Is(err, model.ErrSubjectNotLowercase), convey.ShouldBeTrue)
				convey.So(rec.Len(), convey.ShouldEqual, 0)
			})
		})

		convey.Convey("When the subject is empty", func() {
			convey.So(errors.Is(rec.AddScores("", 90), model.ErrEmptySubject), convey.ShouldBeTrue)
		})

		convey.Convey("When a score is not finite", func() {
			err := rec.AddScores("math", 90, math.NaN())

			convey.Convey("Then nothing is appended", func() {
				convey.So(errors.Is(err, model.ErrNonFiniteScore), convey.ShouldBeTrue)
				convey.So(rec.Scores("math"), convey.ShouldBeEmpty)
				convey.So(rec.Subjects(), convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When cloning", func() {
			_ = rec.AddScores("math", 70)
			clone := rec.Clone()
			_ = clone.AddScores("math", 100)

			convey.Convey("Then the original is untouched", func() {
				convey.So(rec.Scores("math"), convey.ShouldResemble, []float64{70})
				convey.So(clone.Scores("math"), convey.ShouldResemble, []float64{70, 100})
				convey.So(clone.Strength, convey.ShouldEqual, "math")
			})
		})
	})

	convey.Convey("Given a nil performance record", t, func() {
		var rec *model.PerformanceRecord

		convey.Convey("Then reads behave as empty", func() {
			convey.So(rec.AllScores(), convey.ShouldBeEmpty)
			convey.So(rec.Scores("math"), convey.ShouldBeEmpty)
			convey.So(rec.Len(), convey.ShouldEqual, 0)
			convey.So(rec.Clone(), convey.ShouldBeNil)
		})
	})
}

func TestPerformanceBook(t *testing.T) {
	convey.Convey("Given a performance book", t, func() {
		rec := model.NewPerformanceRecord("", "")
		_ = rec.AddScores("english", 90)
		book := model.PerformanceBook{"student4": rec}

		convey.Convey("Then unknown students yield nil", func() {
			convey.So(book.Lookup("nobody"), convey.ShouldBeNil)
			convey.So(model.PerformanceBook(nil).Lookup("student4"), convey.ShouldBeNil)
		})

		convey.Convey("Then clones are independent", func() {
			clone := book.Clone()
			_ = clone.Lookup("student4").AddScores("english", 10)
			convey.So(book.Lookup("student4").Len(), convey.ShouldEqual, 1)
		})
	})
}

func TestEnums(t *testing.T) {
	convey.Convey("Given role strings", t, func() {
		role, err := model.ParseRole(" Teacher ")
		convey.So(err, convey.ShouldBeNil)
		convey.So(role, convey.ShouldEqual, model.RoleTeacher)

		_, err = model.ParseRole("principal")
		convey.So(errors.Is(err, model.ErrUnknownRole), convey.ShouldBeTrue)
	})

	convey.Convey("Given difficulty values", t, func() {
		convey.So(model.DifficultyHard.Known(), convey.ShouldBeTrue)
		convey.So(model.Difficulty("Hard").Known(), convey.ShouldBeFalse)
		convey.So(model.Difficulty("extreme").Known(), convey.ShouldBeFalse)
	})
}

func TestValidate(t *testing.T) {
	convey.Convey("Given an assignment", t, func() {
		a := model.Assignment{
			ID:         "a1",
			CourseID:   "math7",
			Title:      "Fractions Quiz",
			DueDate:    time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
			Points:     100,
			Difficulty: model.DifficultyMedium,
		}

		convey.Convey("When it is complete", func() {
			convey.So(model.Validate(a), convey.ShouldBeNil)
		})

		convey.Convey("When the difficulty is unknown", func() {
			a.Difficulty = "extreme"
			convey.So(errors.Is(model.Validate(a), model.ErrInvalidEntity), convey.ShouldBeTrue)
		})

		convey.Convey("When the title is missing", func() {
			a.Title = ""
			convey.So(errors.Is(model.Validate(a), model.ErrInvalidEntity), convey.ShouldBeTrue)
		})
	})

	convey.Convey("Given a user with an unknown role", t, func() {
		u := model.User{ID: "x", Name: "X", Role: "principal"}
		convey.So(model.Validate(u), convey.ShouldNotBeNil)
	})
}

func TestSubmission(t *testing.T) {
	convey.Convey("Given a graded submission", t, func() {
		grade := 90
		s := model.Submission{ID: "s1", StudentID: "student1", AssignmentID: "a1", Grade: &grade}

		convey.So(s.IsGraded(), convey.ShouldBeTrue)
		convey.So(s.Key().String(), convey.ShouldEqual, "student1/a1")

		clone := s.Clone()
		*clone.Grade = 10
		convey.So(*s.Grade, convey.ShouldEqual, 90)
	})
}
