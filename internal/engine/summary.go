package engine

import (
	"math"

	"quiz-master/internal/domain"
)

// Summary is the score of a session at one point in time.
type Summary struct {
	EarnedPoints  int
	TotalPoints   int
	Percentage    int
	Passed        bool
	PassScore     int
	CorrectCount  int
	WrongCount    int
	AnsweredCount int
	QuestionCount int
}

// Summarize derives totals from the selected questions and the answer records
// keyed by question index. Unanswered questions count toward TotalPoints only.
func Summarize(questions []domain.Question, records map[int]domain.AnswerRecord, passScore int) Summary {
	sum := Summary{PassScore: passScore, QuestionCount: len(questions)}
	for i := range questions {
		sum.TotalPoints += questions[i].PointValue()

		rec, ok := records[i]
		if !ok {
			continue
		}
		sum.AnsweredCount++
		sum.EarnedPoints += rec.PointsEarned
		if rec.IsCorrect {
			sum.CorrectCount++
		} else {
			sum.WrongCount++
		}
	}

	if sum.TotalPoints > 0 {
		sum.Percentage = int(math.Round(100 * float64(sum.EarnedPoints) / float64(sum.TotalPoints)))
	}
	sum.Passed = sum.Percentage >= passScore
	return sum
}
