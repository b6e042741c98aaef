package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"quiz-master/internal/domain"
	"quiz-master/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

const quizSetSelect = `SELECT
	q.id "id",
	q.slug "slug",
	q.title "title",
	q.description "description",
	q.category_id "category_id",
	c.name "category_name",
	c.color "category_color",
	c.icon "category_icon",
	q.difficulty "difficulty",
	q.thumbnail_image "thumbnail_image",
	q.time_limit "time_limit",
	q.pass_score "pass_score",
	q.show_correct_answer "show_correct_answer",
	q.allow_review "allow_review",
	q.is_published "is_published",
	q.attempt_count "attempt_count",
	q.created_at "created_at",
	(SELECT COUNT(*) FROM quiz_questions qq WHERE qq.quiz_set_id = q.id) "question_count"
FROM quiz_sets q
LEFT JOIN quiz_categories c ON c.id = q.category_id`

const questionSelect = `SELECT
	id "id",
	quiz_set_id "quiz_set_id",
	question_type "question_type",
	question_text "question_text",
	question_image "question_image",
	points "points",
	explanation "explanation",
	order_index "order_index"
FROM quiz_questions`

const optionSelect = `SELECT
	id "id",
	question_id "question_id",
	option_text "option_text",
	is_correct "is_correct",
	order_index "order_index"
FROM quiz_options`

const answerKeySelect = `SELECT
	id "id",
	question_id "question_id",
	answer_text "answer_text",
	is_case_sensitive "is_case_sensitive",
	is_exact_match "is_exact_match",
	order_index "order_index"
FROM quiz_answers`

// sqlxQuizRepository implements domain.QuizStore. Only published quizzes are visible.
type sqlxQuizRepository struct {
	db DBTX
}

// NewQuizRepository creates the sqlx backed question store.
func NewQuizRepository(db *sqlx.DB) domain.QuizStore {
	return &sqlxQuizRepository{db: db}
}

func (r *sqlxQuizRepository) GetQuizDefinitionBySlug(ctx context.Context, slug string) (*domain.QuizDefinition, error) {
	return r.getQuizSet(ctx, "q.slug", slug)
}

func (r *sqlxQuizRepository) GetQuizDefinitionByID(ctx context.Context, id string) (*domain.QuizDefinition, error) {
	return r.getQuizSet(ctx, "q.id", id)
}

func (r *sqlxQuizRepository) getQuizSet(ctx context.Context, column, value string) (*domain.QuizDefinition, error) {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(quizSetSelect + " WHERE " + column + " = ? AND q.is_published = 1")

	var row models.QuizSet
	if err := exec.GetContext(ctx, &row, query, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewQuizNotFoundError(value)
		}
		return nil, fmt.Errorf("failed to get quiz by %s %s: %w", column, value, err)
	}
	return toDomainQuizDefinition(&row), nil
}

func (r *sqlxQuizRepository) GetQuestionIDs(ctx context.Context, quizID string) ([]string, error) {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`SELECT id "id" FROM quiz_questions WHERE quiz_set_id = ? ORDER BY order_index`)

	var ids []string
	if err := exec.SelectContext(ctx, &ids, query, quizID); err != nil {
		return nil, fmt.Errorf("failed to get question ids for quiz %s: %w", quizID, err)
	}
	return ids, nil
}

// GetQuestionsByIDs loads question bodies with their options and answer keys.
// Rows come back in storage order; ids without a row are omitted.
func (r *sqlxQuizRepository) GetQuestionsByIDs(ctx context.Context, ids []string) ([]domain.Question, error) {
	if len(ids) == 0 {
		return []domain.Question{}, nil
	}
	exec := GetExecutor(ctx, r.db)

	var questions []models.Question
	if err := r.selectIn(ctx, exec, &questions, questionSelect+" WHERE id IN (?) ORDER BY order_index", ids); err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}
	if len(questions) == 0 {
		return []domain.Question{}, nil
	}

	found := make([]string, len(questions))
	for i, q := range questions {
		found[i] = q.ID
	}

	var options []models.Option
	if err := r.selectIn(ctx, exec, &options, optionSelect+" WHERE question_id IN (?) ORDER BY question_id, order_index", found); err != nil {
		return nil, fmt.Errorf("failed to get question options: %w", err)
	}
	var keys []models.AnswerKey
	if err := r.selectIn(ctx, exec, &keys, answerKeySelect+" WHERE question_id IN (?) ORDER BY question_id, order_index", found); err != nil {
		return nil, fmt.Errorf("failed to get answer keys: %w", err)
	}

	return toDomainQuestions(questions, options, keys), nil
}

func (r *sqlxQuizRepository) selectIn(ctx context.Context, exec DBTX, dest interface{}, query string, ids []string) error {
	q, args, err := sqlx.In(query, ids)
	if err != nil {
		return err
	}
	return exec.SelectContext(ctx, dest, exec.Rebind(q), args...)
}

// ListQuizzes returns published quizzes matching filter, newest first.
func (r *sqlxQuizRepository) ListQuizzes(ctx context.Context, filter domain.QuizFilter) ([]domain.QuizDefinition, error) {
	exec := GetExecutor(ctx, r.db)

	conditions := []string{"q.is_published = 1"}
	var args []interface{}
	if filter.CategoryID != "" {
		conditions = append(conditions, "q.category_id = ?")
		args = append(args, filter.CategoryID)
	}
	if filter.Difficulty != "" {
		conditions = append(conditions, "q.difficulty = ?")
		args = append(args, string(filter.Difficulty))
	}
	if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
		like := "%" + search + "%"
		conditions = append(conditions, "(LOWER(q.title) LIKE ? OR LOWER(q.description) LIKE ?)")
		args = append(args, like, like)
	}

	query := exec.Rebind(quizSetSelect + " WHERE " + strings.Join(conditions, " AND ") + " ORDER BY q.created_at DESC")

	var rows []models.QuizSet
	if err := exec.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}

	out := make([]domain.QuizDefinition, 0, len(rows))
	for i := range rows {
		out = append(out, *toDomainQuizDefinition(&rows[i]))
	}
	return out, nil
}

func (r *sqlxQuizRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	exec := GetExecutor(ctx, r.db)

	var rows []models.Category
	query := `SELECT id "id", name "name", color "color", icon "icon" FROM quiz_categories ORDER BY name`
	if err := exec.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	out := make([]domain.Category, 0, len(rows))
	for i := range rows {
		out = append(out, toDomainCategory(&rows[i]))
	}
	return out, nil
}
