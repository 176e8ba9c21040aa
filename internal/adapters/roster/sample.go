package roster

import "time"

const day = 24 * time.Hour

func grade(g int) *int { return &g }

// Sample returns the demo school: two teachers, five students in grades 7
// and 8, four courses and a little grading history. Each call builds a
// fresh value.
func Sample() *Roster {
	return &Roster{
		Users: []User{
			{ID: "teacher1", Name: "Ms. Johnson", Role: "teacher"},
			{ID: "teacher2", Name: "Mr. Davis", Role: "teacher"},
			{ID: "student1", Name: "Emma Wilson", Role: "student", GradeLevel: 7},
			{ID: "student2", Name: "Liam Brown", Role: "student", GradeLevel: 7},
			{ID: "student3", Name: "Olivia Garcia", Role: "student", GradeLevel: 7},
			{ID: "student4", Name: "Noah Martinez", Role: "student", GradeLevel: 8},
			{ID: "student5", Name: "Sophia Anderson", Role: "student", GradeLevel: 8},
		},
		Courses: []Course{
			{ID: "math7", Name: "Grade 7 Mathematics", Teacher: "teacher1", GradeLevel: 7, Subject: "Mathematics",
				Students: []string{"student1", "student2", "student3"}},
			{ID: "science7", Name: "Grade 7 Science", Teacher: "teacher1", GradeLevel: 7, Subject: "Science",
				Students: []string{"student1", "student2", "student3"}},
			{ID: "english8", Name: "Grade 8 English", Teacher: "teacher2", GradeLevel: 8, Subject: "English",
				Students: []string{"student4", "student5"}},
			{ID: "history8", Name: "Grade 8 History", Teacher: "teacher2", GradeLevel: 8, Subject: "History",
				Students: []string{"student4", "student5"}},
		},
		Assignments: []Assignment{
			{ID: "a1", Course: "math7", Title: "Fractions Quiz", Description: "Complete problems 1-20 on fractions",
				DueIn: 3 * day, Points: 100, Difficulty: "medium"},
			{ID: "a2", Course: "math7", Title: "Geometry Project", Description: "Create a presentation on geometric shapes",
				DueIn: 7 * day, Points: 150, Difficulty: "hard"},
			{ID: "a3", Course: "science7", Title: "Ecosystem Essay", Description: "Write a 500-word essay on local ecosystems",
				DueIn: 5 * day, Points: 100, Difficulty: "medium"},
			{ID: "a4", Course: "english8", Title: "Book Report", Description: "Analyze themes in your chosen novel",
				DueIn: 10 * day, Points: 200, Difficulty: "hard"},
			{ID: "a5", Course: "history8", Title: "Timeline Activity", Description: "Create a timeline of major historical events",
				DueIn: 2 * day, Points: 50, Difficulty: "easy"},
		},
		Submissions: []Submission{
			{Student: "student1", Assignment: "a1", Content: "Completed all 20 problems with work shown",
				SubmittedAgo: day, Grade: grade(95), Feedback: "Excellent work! Clear explanations."},
			{Student: "student2", Assignment: "a1", Content: "Completed 18 problems, struggled with #15-17",
				SubmittedAgo: 2 * time.Hour, Grade: grade(82), Feedback: "Good effort. Review complex fractions."},
			{Student: "student1", Assignment: "a3", Content: "Comprehensive essay on forest ecosystems with examples",
				SubmittedAgo: 2 * day},
		},
		Performance: []Performance{
			{Student: "student1", Strength: "math", Weakness: "writing", Scores: []SubjectScores{
				{Subject: "math", Values: []float64{88, 92, 95, 90}},
				{Subject: "science", Values: []float64{85, 91, 89}},
			}},
			{Student: "student2", Strength: "science", Weakness: "math", Scores: []SubjectScores{
				{Subject: "math", Values: []float64{75, 78, 82, 79}},
				{Subject: "science", Values: []float64{88, 85, 90}},
			}},
			{Student: "student3", Strength: "all", Weakness: "none", Scores: []SubjectScores{
				{Subject: "math", Values: []float64{92, 94, 96, 93}},
				{Subject: "science", Values: []float64{94, 92, 95}},
			}},
			{Student: "student4", Strength: "english", Weakness: "dates", Scores: []SubjectScores{
				{Subject: "english", Values: []float64{88, 85, 90}},
				{Subject: "history", Values: []float64{82, 86, 84}},
			}},
			{Student: "student5", Strength: "all", Weakness: "none", Scores: []SubjectScores{
				{Subject: "english", Values: []float64{94, 96, 95}},
				{Subject: "history", Values: []float64{90, 92, 91}},
			}},
		},
	}
}
