package scoring_test

import (
	"strings"
	"testing"

	"github.com/okian/k12lms/internal/domain/model"
	scoring "github.com/okian/k12lms/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func record(strength, weakness string, scores map[string][]float64, order ...string) *model.PerformanceRecord {
	rec := model.NewPerformanceRecord(strength, weakness)
	for _, subject := range order {
		if err := rec.AddScores(subject, scores[subject]...); err != nil {
			panic(err)
		}
	}
	return rec
}

func TestAutoGrade(t *testing.T) {
	Convey("Given the auto grader", t, func() {
		Convey("When the submission is empty", func() {
			res := scoring.AutoGrade("", model.DifficultyMedium, nil)

			Convey("Then it scores zero and needs improvement", func() {
				So(res.Score, ShouldEqual, 0)
				So(res.Band, ShouldEqual, scoring.BandNeedsImprovement)
				So(res.Feedback, ShouldEqual, "Needs significant improvement.")
				So(res.Suggestions, ShouldResemble, []string{
					"Schedule one-on-one tutoring session.",
					"Review foundational concepts before attempting similar work.",
				})
			})
		})

		Convey("When the submission is 300 characters of medium work", func() {
			res := scoring.AutoGrade(strings.Repeat("x", 300), model.DifficultyMedium, nil)

			Convey("Then it reaches the cap", func() {
				So(res.Score, ShouldEqual, 100)
				So(res.Band, ShouldEqual, scoring.BandOutstanding)
				So(res.Feedback, ShouldEqual, "Outstanding work! Demonstrates deep understanding.")
				So(res.Suggestions, ShouldHaveLength, 1)
			})
		})

		Convey("When an easy submission would exceed 100", func() {
			res := scoring.AutoGrade(strings.Repeat("x", 300), model.DifficultyEasy, nil)

			Convey("Then it is clamped", func() {
				So(res.Score, ShouldEqual, 100)
			})
		})

		Convey("When grading 240 characters at each difficulty", func() {
			content := strings.Repeat("y", 240)
			easy := scoring.AutoGrade(content, model.DifficultyEasy, nil)
			medium := scoring.AutoGrade(content, model.DifficultyMedium, nil)
			hard := scoring.AutoGrade(content, model.DifficultyHard, nil)

			Convey("Then the multipliers apply", func() {
				So(easy.Score, ShouldAlmostEqual, 88, 1e-9)
				So(medium.Score, ShouldEqual, 80)
				So(hard.Score, ShouldAlmostEqual, 76, 1e-9)
				So(medium.Band, ShouldEqual, scoring.BandGood)
				So(hard.Band, ShouldEqual, scoring.BandSatisfactory)
				So(hard.Feedback, ShouldEqual, "Satisfactory effort. Room for improvement.")
			})
		})

		Convey("When the difficulty is not recognised", func() {
			content := strings.Repeat("z", 150)
			odd := scoring.AutoGrade(content, model.Difficulty("extreme"), nil)
			medium := scoring.AutoGrade(content, model.DifficultyMedium, nil)

			Convey("Then the neutral multiplier applies", func() {
				So(odd.Score, ShouldEqual, medium.Score)
			})
		})

		Convey("When content length grows", func() {
			Convey("Then the score strictly increases until the cap", func() {
				for _, d := range []model.Difficulty{model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard} {
					prev := scoring.AutoGrade("", d, nil).Score
					for l := 1; l <= 300; l++ {
						cur := scoring.AutoGrade(strings.Repeat("a", l), d, nil).Score
						if prev < 100 {
							So(cur, ShouldBeGreaterThan, prev)
						} else {
							So(cur, ShouldEqual, 100)
						}
						prev = cur
					}
				}
			})

			Convey("And easy >= medium >= hard at every length", func() {
				for l := 0; l <= 400; l += 7 {
					content := strings.Repeat("a", l)
					easy := scoring.AutoGrade(content, model.DifficultyEasy, nil).Score
					medium := scoring.AutoGrade(content, model.DifficultyMedium, nil).Score
					hard := scoring.AutoGrade(content, model.DifficultyHard, nil).Score
					So(easy, ShouldBeGreaterThanOrEqualTo, medium)
					So(medium, ShouldBeGreaterThanOrEqualTo, hard)
				}
			})
		})

		Convey("When the content has multi-byte characters", func() {
			res := scoring.AutoGrade(strings.Repeat("é", 30), model.DifficultyMedium, nil)

			Convey("Then characters are counted, not bytes", func() {
				So(res.Score, ShouldEqual, 10)
			})
		})

		Convey("When the student has history", func() {
			perf := record("math", "writing", map[string][]float64{"math": {88, 92, 95, 90}}, "math")
			res := scoring.AutoGrade(strings.Repeat("y", 240), model.DifficultyMedium, perf)

			Convey("Then the score blends 90/10 with the overall average", func() {
				So(res.Score, ShouldAlmostEqual, 80*0.9+91.25*0.1, 1e-9)
				So(res.Band, ShouldEqual, scoring.BandGood)
			})
		})

		Convey("When the record carries tags but no scores", func() {
			perf := model.NewPerformanceRecord("all", "none")
			res := scoring.AutoGrade(strings.Repeat("y", 240), model.DifficultyMedium, perf)

			Convey("Then no blending happens", func() {
				So(res.Score, ShouldEqual, 80)
			})
		})

		Convey("When a caller mutates returned suggestions", func() {
			first := scoring.AutoGrade("", model.DifficultyMedium, nil)
			first.Suggestions[0] = "changed"
			second := scoring.AutoGrade("", model.DifficultyMedium, nil)

			Convey("Then later results are unaffected", func() {
				So(second.Suggestions[0], ShouldEqual, "Schedule one-on-one tutoring session.")
			})
		})
	})
}

func TestBandFor(t *testing.T) {
	Convey("Given band cutoffs", t, func() {
		So(scoring.BandFor(90), ShouldEqual, scoring.BandOutstanding)
		So(scoring.BandFor(89.99), ShouldEqual, scoring.BandGood)
		So(scoring.BandFor(80), ShouldEqual, scoring.BandGood)
		So(scoring.BandFor(70), ShouldEqual, scoring.BandSatisfactory)
		So(scoring.BandFor(69.9), ShouldEqual, scoring.BandNeedsImprovement)
	})
}

func TestPredict(t *testing.T) {
	Convey("Given the performance predictor", t, func() {
		Convey("When the student is unknown", func() {
			p := scoring.Predict("ghost", model.DifficultyHard, model.PerformanceBook{})

			Convey("Then the fixed fallback is returned", func() {
				So(p.Score, ShouldEqual, 75)
				So(p.Explanation, ShouldEqual, "No historical data available")
				So(p.HasHistory, ShouldBeFalse)
			})
		})

		Convey("When the record has tags only", func() {
			book := model.PerformanceBook{"s": model.NewPerformanceRecord("all", "none")}
			p := scoring.Predict("s", model.DifficultyEasy, book)

			Convey("Then it is treated as no history", func() {
				So(p.Score, ShouldEqual, 75)
				So(p.Explanation, ShouldEqual, scoring.NoHistoryExplanation)
			})
		})

		Convey("When scores are 88, 92, 95, 90 on a hard assignment", func() {
			book := model.PerformanceBook{
				"student1": record("", "", map[string][]float64{"math": {88, 92, 95, 90}}, "math"),
			}
			p := scoring.Predict("student1", model.DifficultyHard, book)

			Convey("Then the mean is shifted down and the trend is improving", func() {
				So(p.Score, ShouldEqual, 86.25)
				So(p.Trend, ShouldEqual, scoring.TrendImproving)
				So(p.Explanation, ShouldEqual, "Predicted score: 86.2% (Performance trend: improving)")
			})
		})

		Convey("When scores span subjects", func() {
			book := model.PerformanceBook{
				"student1": record("math", "writing", map[string][]float64{
					"math":    {88, 92, 95, 90},
					"science": {85, 91, 89},
				}, "math", "science"),
			}
			p := scoring.Predict("student1", model.DifficultyMedium, book)

			Convey("Then the flattened order drives the trend", func() {
				So(p.Score, ShouldEqual, 90)
				So(p.Trend, ShouldEqual, scoring.TrendDeclining)
				So(p.Explanation, ShouldEqual, "Predicted score: 90.0% (Performance trend: declining)")
			})
		})

		Convey("When there are exactly three scores", func() {
			book := model.PerformanceBook{"s": record("", "", map[string][]float64{"math": {70, 80, 90}}, "math")}
			p := scoring.Predict("s", model.DifficultyMedium, book)

			Convey("Then the overall average stands in for older scores", func() {
				So(p.Trend, ShouldEqual, scoring.TrendStable)
			})
		})

		Convey("When there are fewer than three scores", func() {
			book := model.PerformanceBook{"s": record("", "", map[string][]float64{"math": {40, 100}}, "math")}
			p := scoring.Predict("s", model.DifficultyEasy, book)

			Convey("Then the trend is stable and easy adds five", func() {
				So(p.Trend, ShouldEqual, scoring.TrendStable)
				So(p.Score, ShouldEqual, 75)
			})
		})

		Convey("When the prediction exceeds 100", func() {
			book := model.PerformanceBook{"s": record("", "", map[string][]float64{"math": {100, 100}}, "math")}
			p := scoring.Predict("s", model.DifficultyEasy, book)

			Convey("Then it is not clamped", func() {
				So(p.Score, ShouldEqual, 105)
			})
		})

		Convey("When the difficulty is unrecognised", func() {
			book := model.PerformanceBook{"s": record("", "", map[string][]float64{"math": {60, 70}}, "math")}
			p := scoring.Predict("s", model.Difficulty("Hard"), book)

			Convey("Then no adjustment applies", func() {
				So(p.Score, ShouldEqual, 65)
			})
		})

		Convey("When a graded score is fed back into history", func() {
			rec := record("", "", map[string][]float64{"math": {80, 90}}, "math")
			book := model.PerformanceBook{"s": rec}
			before := scoring.Predict("s", model.DifficultyMedium, book)

			graded := scoring.AutoGrade(strings.Repeat("x", 300), model.DifficultyMedium, nil)
			So(rec.AddScores("math", graded.Score), ShouldBeNil)
			after := scoring.Predict("s", model.DifficultyMedium, book)

			Convey("Then the prediction moves by the change in mean", func() {
				So(after.Score-before.Score, ShouldAlmostEqual, (graded.Score-before.Score)/3, 1e-9)
			})
		})
	})
}

func TestRecommendPath(t *testing.T) {
	Convey("Given the learning path recommender", t, func() {
		titles := func(recs []scoring.Recommendation) []string {
			out := make([]string, len(recs))
			for i, r := range recs {
				out[i] = r.Title
			}
			return out
		}

		Convey("When the weakness is math and the strength science", func() {
			book := model.PerformanceBook{"student2": model.NewPerformanceRecord("science", "math")}
			recs := scoring.RecommendPath("student2", book)

			Convey("Then weakness items lead and the study group closes", func() {
				So(titles(recs), ShouldResemble, []string{
					"Math Foundations Workshop",
					"Khan Academy Math Videos",
					"Science Fair Project",
					"Study Group",
				})
				So(recs[0].Priority, ShouldEqual, scoring.PriorityHigh)
				So(recs[0].Type, ShouldEqual, scoring.TypePractice)
				So(recs[1].Type, ShouldEqual, scoring.TypeResource)
				So(recs[3].Priority, ShouldEqual, scoring.PriorityLow)
			})
		})

		Convey("When the weakness is writing and the strength math", func() {
			book := model.PerformanceBook{"student1": model.NewPerformanceRecord("math", "writing")}
			recs := scoring.RecommendPath("student1", book)

			Convey("Then the writing lab precedes the math challenge", func() {
				So(titles(recs), ShouldResemble, []string{"Writing Skills Lab", "Advanced Math Challenge", "Study Group"})
				So(recs[1].Type, ShouldEqual, scoring.TypeEnrichment)
			})
		})

		Convey("When the tags match no rule", func() {
			book := model.PerformanceBook{"student3": model.NewPerformanceRecord("all", "none")}

			Convey("Then only the study group remains", func() {
				So(titles(scoring.RecommendPath("student3", book)), ShouldResemble, []string{"Study Group"})
				So(titles(scoring.RecommendPath("unknown", book)), ShouldResemble, []string{"Study Group"})
			})
		})
	})
}

func TestRecommendContent(t *testing.T) {
	Convey("Given the content recommender", t, func() {
		book := model.PerformanceBook{
			"student1": record("math", "writing", map[string][]float64{
				"math":        {88, 92, 95, 90},
				"mathematics": {88, 92, 95, 90},
				"history":     {60, 65},
				"english":     {80},
			}, "math", "mathematics", "history", "english"),
		}

		Convey("When mathematics scores average 91.25", func() {
			Convey("Then the advanced mathematics list is returned", func() {
				So(scoring.RecommendContent("student1", "Mathematics", book), ShouldResemble,
					[]string{"Pre-Algebra Concepts", "Advanced Problem Solving", "Mathematical Proofs"})
			})
		})

		Convey("When history scores are low", func() {
			So(scoring.RecommendContent("student1", "History", book), ShouldResemble,
				[]string{"Timeline Skills", "Map Reading", "Historical Figures"})
		})

		Convey("When english scores are middling", func() {
			So(scoring.RecommendContent("student1", "ENGLISH", book), ShouldResemble,
				[]string{"Literary Analysis", "Essay Writing", "Vocabulary Building"})
		})

		Convey("When there are no scores under the exact subject key", func() {
			Convey("Then the intermediate list is used", func() {
				So(scoring.RecommendContent("student1", "Grade 7 Science", book), ShouldResemble,
					[]string{"Ecosystems Study", "Physics Principles", "Cell Biology"})
				So(scoring.RecommendContent("nobody", "Mathematics", book), ShouldResemble,
					[]string{"Algebraic Expressions", "Geometry Foundations", "Data Analysis"})
			})
		})

		Convey("When no bucket matches", func() {
			Convey("Then the general fallback is returned", func() {
				So(scoring.RecommendContent("student1", "Art", book), ShouldResemble,
					[]string{"General Study Materials", "Practice Exercises", "Review Sessions"})
				So(scoring.RecommendContent("student1", "Math", book), ShouldResemble,
					[]string{"General Study Materials", "Practice Exercises", "Review Sessions"})
			})
		})

		Convey("When normalising subjects", func() {
			So(scoring.SubjectKey("Grade 8 History"), ShouldEqual, "history")
			So(scoring.SubjectKey("Gra de 7 English"), ShouldEqual, "english")
		})

		Convey("When levels are picked", func() {
			So(scoring.LevelFor(nil), ShouldEqual, scoring.LevelMedium)
			So(scoring.LevelFor([]float64{90}), ShouldEqual, scoring.LevelAdvanced)
			So(scoring.LevelFor([]float64{75}), ShouldEqual, scoring.LevelIntermediate)
			So(scoring.LevelFor([]float64{74.9}), ShouldEqual, scoring.LevelFoundational)
		})

		Convey("When a caller mutates the returned list", func() {
			first := scoring.RecommendContent("student1", "Art", book)
			first[0] = "changed"
			So(scoring.RecommendContent("student1", "Art", book)[0], ShouldEqual, "General Study Materials")
		})
	})
}

func TestRuleBasedAssistant(t *testing.T) {
	Convey("Given the rule-based assistant", t, func() {
		var a scoring.Assistant = scoring.NewRuleBased()
		book := model.PerformanceBook{
			"student1": record("math", "writing", map[string][]float64{"math": {88, 92, 95, 90}}, "math"),
		}

		Convey("Then repeated calls give identical results", func() {
			So(a.AutoGrade("abc", model.DifficultyHard, book.Lookup("student1")), ShouldResemble,
				a.AutoGrade("abc", model.DifficultyHard, book.Lookup("student1")))
			So(a.Predict("student1", model.DifficultyHard, book), ShouldResemble,
				a.Predict("student1", model.DifficultyHard, book))
			So(a.RecommendPath("student1", book), ShouldResemble, a.RecommendPath("student1", book))
			So(a.RecommendContent("student1", "Mathematics", book), ShouldResemble,
				a.RecommendContent("student1", "Mathematics", book))
		})

		Convey("Then the record is never mutated", func() {
			_ = a.AutoGrade("abc", model.DifficultyHard, book.Lookup("student1"))
			_ = a.Predict("student1", model.DifficultyHard, book)
			So(book.Lookup("student1").AllScores(), ShouldResemble, []float64{88, 92, 95, 90})
		})
	})
}
