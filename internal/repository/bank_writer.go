package repository

import (
	"context"
	"fmt"
	"time"

	"quiz-master/internal/domain"
	"quiz-master/internal/logger"
	"quiz-master/internal/repository/models"
	"quiz-master/internal/util"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const (
	insertCategory = `INSERT INTO quiz_categories (id, name, color, icon)
		VALUES (:id, :name, :color, :icon)`
	insertQuizSet = `INSERT INTO quiz_sets (
		id, slug, title, description, category_id, difficulty, thumbnail_image,
		time_limit, pass_score, show_correct_answer, allow_review, is_published,
		attempt_count, created_at
	) VALUES (
		:id, :slug, :title, :description, :category_id, :difficulty, :thumbnail_image,
		:time_limit, :pass_score, :show_correct_answer, :allow_review, :is_published,
		:attempt_count, :created_at
	)`
	insertQuestion = `INSERT INTO quiz_questions (
		id, quiz_set_id, question_type, question_text, question_image, points, explanation, order_index
	) VALUES (
		:id, :quiz_set_id, :question_type, :question_text, :question_image, :points, :explanation, :order_index
	)`
	insertOption = `INSERT INTO quiz_options (id, question_id, option_text, is_correct, order_index)
		VALUES (:id, :question_id, :option_text, :is_correct, :order_index)`
	insertAnswerKey = `INSERT INTO quiz_answers (id, question_id, answer_text, is_case_sensitive, is_exact_match, order_index)
		VALUES (:id, :question_id, :answer_text, :is_case_sensitive, :is_exact_match, :order_index)`
)

type bankWriter struct {
	db DBTX
	tm domain.TransactionManager
}

// NewQuizBankWriter creates a writer that stores a bank in one transaction.
func NewQuizBankWriter(db *sqlx.DB, tm domain.TransactionManager) domain.QuizBankWriter {
	return &bankWriter{db: db, tm: tm}
}

// SaveQuizBank validates bank and inserts its category (when new), definition,
// questions, options and answer keys. Generated ids are written back to bank.
// A slug that already exists is rejected.
func (w *bankWriter) SaveQuizBank(ctx context.Context, bank *domain.QuizBank) error {
	if bank == nil {
		return domain.NewInvalidInputError("quiz bank is required")
	}
	if err := bank.Validate(); err != nil {
		return domain.NewError(domain.CodeValidation, err.Error(), err)
	}

	err := w.tm.WithTransaction(ctx, func(ctx context.Context) error {
		exec := GetExecutor(ctx, w.db)

		var existing int
		if err := exec.GetContext(ctx, &existing, exec.Rebind(`SELECT COUNT(*) FROM quiz_sets WHERE slug = ?`), bank.Definition.Slug); err != nil {
			return fmt.Errorf("failed to check slug: %w", err)
		}
		if existing > 0 {
			return domain.NewInvalidInputError(fmt.Sprintf("quiz with slug %s already exists", bank.Definition.Slug))
		}

		if err := w.saveCategory(ctx, exec, bank.Definition.Category); err != nil {
			return err
		}

		def := &bank.Definition
		def.ID = util.NewULID()
		if def.CreatedAt.IsZero() {
			def.CreatedAt = time.Now().UTC()
		}
		if _, err := exec.NamedExecContext(ctx, insertQuizSet, toModelQuizSet(def)); err != nil {
			return fmt.Errorf("failed to insert quiz %s: %w", def.Slug, err)
		}

		for i := range bank.Questions {
			q := &bank.Questions[i]
			if err := w.saveQuestion(ctx, exec, def.ID, i+1, q); err != nil {
				return err
			}
		}
		def.QuestionCount = len(bank.Questions)
		return nil
	})
	if err != nil {
		return err
	}

	logger.Get().Info("Quiz bank saved",
		zap.String("quiz_id", bank.Definition.ID),
		zap.String("slug", bank.Definition.Slug),
		zap.Int("questions", len(bank.Questions)))
	return nil
}

func (w *bankWriter) saveCategory(ctx context.Context, exec DBTX, c *domain.Category) error {
	if c == nil {
		return nil
	}
	if c.ID != "" {
		var n int
		if err := exec.GetContext(ctx, &n, exec.Rebind(`SELECT COUNT(*) FROM quiz_categories WHERE id = ?`), c.ID); err != nil {
			return fmt.Errorf("failed to check category: %w", err)
		}
		if n > 0 {
			return nil
		}
	} else {
		var ids []string
		if err := exec.SelectContext(ctx, &ids, exec.Rebind(`SELECT id "id" FROM quiz_categories WHERE name = ?`), c.Name); err != nil {
			return fmt.Errorf("failed to look up category: %w", err)
		}
		if len(ids) > 0 {
			c.ID = ids[0]
			return nil
		}
		c.ID = util.NewULID()
	}

	row := models.Category{
		ID:    c.ID,
		Name:  c.Name,
		Color: util.StringToNullString(c.Color),
		Icon:  util.StringToNullString(c.Icon),
	}
	if _, err := exec.NamedExecContext(ctx, insertCategory, row); err != nil {
		return fmt.Errorf("failed to insert category %s: %w", c.Name, err)
	}
	return nil
}

func (w *bankWriter) saveQuestion(ctx context.Context, exec DBTX, quizID string, order int, q *domain.Question) error {
	q.ID = util.NewULID()
	q.QuizID = quizID
	if q.Order == 0 {
		q.Order = order
	}

	row := models.Question{
		ID:            q.ID,
		QuizSetID:     quizID,
		QuestionType:  string(q.Type),
		QuestionText:  q.Text,
		QuestionImage: util.StringToNullString(q.Image),
		Points:        q.PointValue(),
		Explanation:   util.StringToNullString(q.Explanation),
		OrderIndex:    q.Order,
	}
	if _, err := exec.NamedExecContext(ctx, insertQuestion, row); err != nil {
		return fmt.Errorf("failed to insert question %d: %w", order, err)
	}

	for i := range q.Options {
		opt := &q.Options[i]
		opt.ID = util.NewULID()
		if opt.Order == 0 {
			opt.Order = i + 1
		}
		o := models.Option{
			ID:         opt.ID,
			QuestionID: q.ID,
			OptionText: opt.Text,
			IsCorrect:  models.BoolToInt(opt.IsCorrect),
			OrderIndex: opt.Order,
		}
		if _, err := exec.NamedExecContext(ctx, insertOption, o); err != nil {
			return fmt.Errorf("failed to insert option %d of question %d: %w", i+1, order, err)
		}
	}

	for i, key := range q.AnswerKeys {
		k := models.AnswerKey{
			ID:              util.NewULID(),
			QuestionID:      q.ID,
			AnswerText:      key.Text,
			IsCaseSensitive: models.BoolToInt(key.CaseSensitive),
			IsExactMatch:    models.BoolToInt(key.ExactMatch),
			OrderIndex:      i + 1,
		}
		if _, err := exec.NamedExecContext(ctx, insertAnswerKey, k); err != nil {
			return fmt.Errorf("failed to insert answer key %d of question %d: %w", i+1, order, err)
		}
	}
	return nil
}
