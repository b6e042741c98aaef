package engine

import (
	"strings"

	"quiz-master/internal/domain"
)

// Grade is the outcome of grading one answer.
type Grade struct {
	Correct bool
	Points  int
}

type matcher func(q *domain.Question, submitted string) bool

var matchers = map[domain.QuestionType]matcher{
	domain.QuestionMultipleChoice: matchMultipleChoice,
	domain.QuestionTrueFalse:      matchTrueFalse,
	domain.QuestionShortAnswer:    matchShortAnswer,
}

// GradeAnswer decides correctness and points for submitted. It never panics:
// malformed questions, unknown types and unknown option ids grade as incorrect.
func GradeAnswer(q *domain.Question, submitted string) Grade {
	if q == nil {
		return Grade{}
	}
	match, ok := matchers[q.Type]
	if !ok || !match(q, submitted) {
		return Grade{}
	}
	return Grade{Correct: true, Points: q.PointValue()}
}

func matchMultipleChoice(q *domain.Question, submitted string) bool {
	opt := q.FindOption(submitted)
	return opt != nil && opt.IsCorrect
}

func matchTrueFalse(q *domain.Question, submitted string) bool {
	opt := q.CorrectOption()
	return opt != nil && opt.ID == submitted
}

func matchShortAnswer(q *domain.Question, submitted string) bool {
	for _, key := range q.AnswerKeys {
		if matchKey(key, submitted) {
			return true
		}
	}
	return false
}

func matchKey(key domain.AnswerKey, submitted string) bool {
	accepted := key.Text
	if !key.CaseSensitive {
		accepted = strings.ToLower(accepted)
		submitted = strings.ToLower(submitted)
	}
	if key.ExactMatch {
		return submitted == accepted
	}
	return strings.Contains(submitted, accepted)
}
