package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultPassScore is the pass threshold (percent) when a quiz does not set one.
	DefaultPassScore = 70
	// DefaultPoints is the point value of a question that does not set one.
	DefaultPoints = 1
)

// QuestionType selects the grading policy of a question.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionTrueFalse      QuestionType = "true_false"
	QuestionShortAnswer    QuestionType = "short_answer"
)

// IsChoice reports whether answers to this type are option ids.
func (t QuestionType) IsChoice() bool {
	return t == QuestionMultipleChoice || t == QuestionTrueFalse
}

// Difficulty of a quiz as shown in the catalog.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty maps free text to a Difficulty; unknown values return "".
func ParseDifficulty(s string) Difficulty {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case DifficultyEasy:
		return DifficultyEasy
	case DifficultyMedium:
		return DifficultyMedium
	case DifficultyHard:
		return DifficultyHard
	default:
		return ""
	}
}

// Category groups quizzes in the catalog
type Category struct {
	ID    string
	Name  string
	Color string
	Icon  string
}

// QuizDefinition is the immutable description of one quiz and its bank.
type QuizDefinition struct {
	ID                string
	Slug              string
	Title             string
	Description       string
	Category          *Category
	Difficulty        Difficulty
	ThumbnailImage    string
	QuestionCount     int
	TimeLimit         int // total seconds for the whole bank, 0 when untimed
	PassScore         int // percent, 0 means DefaultPassScore
	ShowCorrectAnswer bool
	AllowReview       bool
	IsPublished       bool
	AttemptCount      int
	CreatedAt         time.Time
}

// HasTimeLimit reports whether sessions of this quiz are timed.
func (q *QuizDefinition) HasTimeLimit() bool {
	return q.TimeLimit > 0
}

// EffectivePassScore returns the pass threshold, falling back to def when unset.
func (q *QuizDefinition) EffectivePassScore(def int) int {
	if q.PassScore > 0 {
		return q.PassScore
	}
	if def > 0 {
		return def
	}
	return DefaultPassScore
}

// Validate validates the quiz definition
func (q *QuizDefinition) Validate() error {
	if strings.TrimSpace(q.Slug) == "" {
		return NewValidationError("slug is required")
	}
	if strings.TrimSpace(q.Title) == "" {
		return NewValidationError("title is required")
	}
	if q.TimeLimit < 0 {
		return NewValidationError("time limit cannot be negative")
	}
	if q.PassScore < 0 || q.PassScore > 100 {
		return NewValidationError("pass score must be between 0 and 100")
	}
	return nil
}

// Option is one selectable answer of a choice question.
type Option struct {
	ID        string
	Text      string
	IsCorrect bool
	Order     int
}

// AnswerKey is one accepted answer of a short-answer question with its own matching policy.
type AnswerKey struct {
	Text          string
	CaseSensitive bool
	ExactMatch    bool
}

// Question is one item of a quiz bank.
type Question struct {
	ID          string
	QuizID      string
	Type        QuestionType
	Text        string
	Image       string
	Points      int
	Options     []Option    // ordered by Option.Order
	AnswerKeys  []AnswerKey // insertion order
	Explanation string
	Order       int
}

// PointValue returns the question's points, defaulting to 1.
func (q *Question) PointValue() int {
	if q.Points > 0 {
		return q.Points
	}
	return DefaultPoints
}

// CorrectOption returns the option flagged correct, or nil.
func (q *Question) CorrectOption() *Option {
	for i := range q.Options {
		if q.Options[i].IsCorrect {
			return &q.Options[i]
		}
	}
	return nil
}

// FindOption looks up an option by id.
func (q *Question) FindOption(id string) *Option {
	for i := range q.Options {
		if q.Options[i].ID == id {
			return &q.Options[i]
		}
	}
	return nil
}

// CorrectAnswerText is what gets revealed to a player who answered wrong.
func (q *Question) CorrectAnswerText() string {
	if q.Type.IsChoice() {
		if opt := q.CorrectOption(); opt != nil {
			return opt.Text
		}
		return ""
	}
	if len(q.AnswerKeys) > 0 {
		return q.AnswerKeys[0].Text
	}
	return ""
}

// Validate checks the per-type invariants of a question.
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" && q.Image == "" {
		return NewValidationError("question text or image is required")
	}
	if q.Points < 0 {
		return NewValidationError("points cannot be negative")
	}
	switch q.Type {
	case QuestionMultipleChoice, QuestionTrueFalse:
		correct := 0
		for _, opt := range q.Options {
			if opt.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return NewValidationError(fmt.Sprintf("%s question must have exactly one correct option, got %d", q.Type, correct))
		}
	case QuestionShortAnswer:
		if len(q.AnswerKeys) == 0 {
			return NewValidationError("short_answer question requires at least one answer key")
		}
	default:
		return NewValidationError(fmt.Sprintf("unknown question type: %q", q.Type))
	}
	return nil
}

// QuizBank is a definition together with every question, used for seeding.
type QuizBank struct {
	Definition QuizDefinition
	Questions  []Question
}

// Validate validates the definition and every question.
func (b *QuizBank) Validate() error {
	if err := b.Definition.Validate(); err != nil {
		return err
	}
	if len(b.Questions) == 0 {
		return NewValidationError("quiz bank has no questions")
	}
	for i := range b.Questions {
		if err := b.Questions[i].Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return nil
}

// QuizFilter narrows the published catalog.
type QuizFilter struct {
	CategoryID string
	Difficulty Difficulty
	Search     string
}

// ValidationError represents a validation error
type ValidationError struct {
	message string
}

func (e *ValidationError) Error() string {
	return e.message
}

func NewValidationError(message string) error {
	return &ValidationError{message: message}
}
