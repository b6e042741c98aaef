package seedmodels

import (
	"encoding/json"
	"fmt"
	"io"

	"quiz-master/internal/domain"
)

// SeedOption is one option of a choice question in the JSON seed file.
type SeedOption struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// SeedAnswer is one accepted answer of a short-answer question.
type SeedAnswer struct {
	Text          string `json:"text"`
	CaseSensitive bool   `json:"case_sensitive"`
	ExactMatch    bool   `json:"exact_match"`
}

type SeedQuestion struct {
	Type        string       `json:"type"`
	Text        string       `json:"text"`
	Image       string       `json:"image"`
	Points      int          `json:"points"`
	Explanation string       `json:"explanation"`
	Options     []SeedOption `json:"options"`
	Answers     []SeedAnswer `json:"answers"`
}

type SeedCategory struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// SeedQuizBank defines one quiz with its questions. Published defaults to true.
type SeedQuizBank struct {
	Slug              string         `json:"slug"`
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	Category          *SeedCategory  `json:"category"`
	Difficulty        string         `json:"difficulty"`
	ThumbnailImage    string         `json:"thumbnail_image"`
	TimeLimit         int            `json:"time_limit"`
	PassScore         int            `json:"pass_score"`
	ShowCorrectAnswer bool           `json:"show_correct_answer"`
	AllowReview       bool           `json:"allow_review"`
	Published         *bool          `json:"published"`
	Questions         []SeedQuestion `json:"questions"`
}

// Decode reads a JSON array of quiz banks.
func Decode(r io.Reader) ([]SeedQuizBank, error) {
	var banks []SeedQuizBank
	if err := json.NewDecoder(r).Decode(&banks); err != nil {
		return nil, fmt.Errorf("failed to decode seed data: %w", err)
	}
	return banks, nil
}

// ToDomain converts the seed entry. Option order follows the file.
func (b *SeedQuizBank) ToDomain() (*domain.QuizBank, error) {
	difficulty := domain.DifficultyMedium
	if b.Difficulty != "" {
		difficulty = domain.ParseDifficulty(b.Difficulty)
		if difficulty == "" {
			return nil, fmt.Errorf("quiz %s: unknown difficulty %q", b.Slug, b.Difficulty)
		}
	}

	bank := &domain.QuizBank{
		Definition: domain.QuizDefinition{
			Slug:              b.Slug,
			Title:             b.Title,
			Description:       b.Description,
			Difficulty:        difficulty,
			ThumbnailImage:    b.ThumbnailImage,
			TimeLimit:         b.TimeLimit,
			PassScore:         b.PassScore,
			ShowCorrectAnswer: b.ShowCorrectAnswer,
			AllowReview:       b.AllowReview,
			IsPublished:       b.Published == nil || *b.Published,
		},
		Questions: make([]domain.Question, 0, len(b.Questions)),
	}
	if b.Category != nil {
		bank.Definition.Category = &domain.Category{Name: b.Category.Name, Color: b.Category.Color, Icon: b.Category.Icon}
	}

	for i, sq := range b.Questions {
		q := domain.Question{
			Type:        domain.QuestionType(sq.Type),
			Text:        sq.Text,
			Image:       sq.Image,
			Points:      sq.Points,
			Explanation: sq.Explanation,
			Order:       i + 1,
		}
		for j, so := range sq.Options {
			q.Options = append(q.Options, domain.Option{Text: so.Text, IsCorrect: so.Correct, Order: j + 1})
		}
		for _, sa := range sq.Answers {
			q.AnswerKeys = append(q.AnswerKeys, domain.AnswerKey{Text: sa.Text, CaseSensitive: sa.CaseSensitive, ExactMatch: sa.ExactMatch})
		}
		bank.Questions = append(bank.Questions, q)
	}
	return bank, nil
}
