package repository

import (
	"quiz-master/internal/domain"
	"quiz-master/internal/repository/models"
	"quiz-master/internal/util"
)

func toDomainQuizDefinition(m *models.QuizSet) *domain.QuizDefinition {
	def := &domain.QuizDefinition{
		ID:                m.ID,
		Slug:              m.Slug,
		Title:             m.Title,
		Description:       m.Description.String,
		Difficulty:        domain.ParseDifficulty(m.Difficulty.String),
		ThumbnailImage:    m.ThumbnailImage.String,
		QuestionCount:     m.QuestionCount,
		TimeLimit:         int(m.TimeLimit.Int64),
		PassScore:         int(m.PassScore.Int64),
		ShowCorrectAnswer: m.ShowCorrectAnswer != 0,
		AllowReview:       m.AllowReview != 0,
		IsPublished:       m.IsPublished != 0,
		AttemptCount:      m.AttemptCount,
		CreatedAt:         m.CreatedAt,
	}
	if m.CategoryID.Valid {
		def.Category = &domain.Category{
			ID:    m.CategoryID.String,
			Name:  m.CategoryName.String,
			Color: m.CategoryColor.String,
			Icon:  m.CategoryIcon.String,
		}
	}
	return def
}

func toModelQuizSet(d *domain.QuizDefinition) *models.QuizSet {
	m := &models.QuizSet{
		ID:                d.ID,
		Slug:              d.Slug,
		Title:             d.Title,
		Description:       util.StringToNullString(d.Description),
		Difficulty:        util.StringToNullString(string(d.Difficulty)),
		ThumbnailImage:    util.StringToNullString(d.ThumbnailImage),
		TimeLimit:         util.IntToNullInt64(d.TimeLimit),
		PassScore:         util.IntToNullInt64(d.PassScore),
		ShowCorrectAnswer: models.BoolToInt(d.ShowCorrectAnswer),
		AllowReview:       models.BoolToInt(d.AllowReview),
		IsPublished:       models.BoolToInt(d.IsPublished),
		AttemptCount:      d.AttemptCount,
		CreatedAt:         d.CreatedAt,
	}
	if d.Category != nil {
		m.CategoryID = util.StringToNullString(d.Category.ID)
	}
	return m
}

func toDomainCategory(m *models.Category) domain.Category {
	return domain.Category{ID: m.ID, Name: m.Name, Color: m.Color.String, Icon: m.Icon.String}
}

// toDomainQuestions assembles question rows with their options and answer keys.
// Child rows are expected ordered by order_index.
func toDomainQuestions(rows []models.Question, options []models.Option, keys []models.AnswerKey) []domain.Question {
	optionsByQuestion := make(map[string][]domain.Option)
	for _, o := range options {
		optionsByQuestion[o.QuestionID] = append(optionsByQuestion[o.QuestionID], domain.Option{
			ID:        o.ID,
			Text:      o.OptionText,
			IsCorrect: o.IsCorrect != 0,
			Order:     o.OrderIndex,
		})
	}
	keysByQuestion := make(map[string][]domain.AnswerKey)
	for _, k := range keys {
		keysByQuestion[k.QuestionID] = append(keysByQuestion[k.QuestionID], domain.AnswerKey{
			Text:          k.AnswerText,
			CaseSensitive: k.IsCaseSensitive != 0,
			ExactMatch:    k.IsExactMatch != 0,
		})
	}

	out := make([]domain.Question, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Question{
			ID:          r.ID,
			QuizID:      r.QuizSetID,
			Type:        domain.QuestionType(r.QuestionType),
			Text:        r.QuestionText,
			Image:       r.QuestionImage.String,
			Points:      r.Points,
			Options:     optionsByQuestion[r.ID],
			AnswerKeys:  keysByQuestion[r.ID],
			Explanation: r.Explanation.String,
			Order:       r.OrderIndex,
		})
	}
	return out
}
