package model

// GradeJob is one submission queued for automatic grading. History is a
// snapshot taken when the job was built; workers never see later changes.
type GradeJob struct {
	Key        SubmissionKey
	Content    string
	Difficulty Difficulty
	History    *PerformanceRecord
}
