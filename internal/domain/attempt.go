package domain

import "time"

// AnswerRecord is the graded answer to one question of a session.
// It is written once per question index and never changed.
type AnswerRecord struct {
	Answer       string
	IsCorrect    bool
	PointsEarned int
	AnsweredAt   time.Time
}

// AnswerLog is the advisory copy of an AnswerRecord sent to a ProgressSink.
type AnswerLog struct {
	QuestionID   string
	QuestionType QuestionType
	Answer       string
	IsCorrect    bool
	PointsEarned int
	AnsweredAt   time.Time
}

// AttemptResult is the advisory final score of an attempt.
type AttemptResult struct {
	EarnedPoints int
	TotalPoints  int
	Percentage   int
	TimeSpent    int // seconds
	CompletedAt  time.Time
}
