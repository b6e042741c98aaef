package models

import (
	"database/sql"
	"time"
)

// Flags are stored as 0/1 integers so the same schema works on every driver.

type Category struct {
	ID    string         `db:"id"`
	Name  string         `db:"name"`
	Color sql.NullString `db:"color"`
	Icon  sql.NullString `db:"icon"`
}

// QuizSet is one row of quiz_sets joined with its category and question count.
type QuizSet struct {
	ID                string         `db:"id"`
	Slug              string         `db:"slug"`
	Title             string         `db:"title"`
	Description       sql.NullString `db:"description"`
	CategoryID        sql.NullString `db:"category_id"`
	CategoryName      sql.NullString `db:"category_name"`
	CategoryColor     sql.NullString `db:"category_color"`
	CategoryIcon      sql.NullString `db:"category_icon"`
	Difficulty        sql.NullString `db:"difficulty"`
	ThumbnailImage    sql.NullString `db:"thumbnail_image"`
	TimeLimit         sql.NullInt64  `db:"time_limit"`
	PassScore         sql.NullInt64  `db:"pass_score"`
	ShowCorrectAnswer int            `db:"show_correct_answer"`
	AllowReview       int            `db:"allow_review"`
	IsPublished       int            `db:"is_published"`
	AttemptCount      int            `db:"attempt_count"`
	QuestionCount     int            `db:"question_count"`
	CreatedAt         time.Time      `db:"created_at"`
}

type Question struct {
	ID            string         `db:"id"`
	QuizSetID     string         `db:"quiz_set_id"`
	QuestionType  string         `db:"question_type"`
	QuestionText  string         `db:"question_text"`
	QuestionImage sql.NullString `db:"question_image"`
	Points        int            `db:"points"`
	Explanation   sql.NullString `db:"explanation"`
	OrderIndex    int            `db:"order_index"`
}

type Option struct {
	ID         string `db:"id"`
	QuestionID string `db:"question_id"`
	OptionText string `db:"option_text"`
	IsCorrect  int    `db:"is_correct"`
	OrderIndex int    `db:"order_index"`
}

type AnswerKey struct {
	ID              string `db:"id"`
	QuestionID      string `db:"question_id"`
	AnswerText      string `db:"answer_text"`
	IsCaseSensitive int    `db:"is_case_sensitive"`
	IsExactMatch    int    `db:"is_exact_match"`
	OrderIndex      int    `db:"order_index"`
}

type Attempt struct {
	ID          string        `db:"id"`
	QuizSetID   string        `db:"quiz_set_id"`
	SessionID   string        `db:"session_id"`
	StartedAt   time.Time     `db:"started_at"`
	Completed   int           `db:"completed"`
	CompletedAt sql.NullTime  `db:"completed_at"`
	Score       sql.NullInt64 `db:"score"`
	TotalPoints sql.NullInt64 `db:"total_points"`
	Percentage  sql.NullInt64 `db:"percentage"`
	TimeSpent   sql.NullInt64 `db:"time_spent"`
}

type Response struct {
	ID               string         `db:"id"`
	AttemptID        string         `db:"attempt_id"`
	QuestionID       string         `db:"question_id"`
	SelectedOptionID sql.NullString `db:"selected_option_id"`
	AnswerText       sql.NullString `db:"answer_text"`
	IsCorrect        int            `db:"is_correct"`
	PointsEarned     int            `db:"points_earned"`
	AnsweredAt       time.Time      `db:"answered_at"`
}

// BoolToInt converts a flag for storage.
func BoolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
