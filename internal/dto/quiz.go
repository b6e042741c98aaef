package dto

import "time"

// CategoryResponse represents a quiz category
// @Description Quiz category
type CategoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

// QuizListQuery holds the catalog filters taken from the query string
type QuizListQuery struct {
	CategoryID string `query:"category_id"`
	Difficulty string `query:"difficulty"`
	Search     string `query:"search"`
}

// QuizSummaryResponse is one entry of the quiz catalog
// @Description Published quiz
type QuizSummaryResponse struct {
	ID               string            `json:"id"`
	Slug             string            `json:"slug"`
	Title            string            `json:"title"`
	Description      string            `json:"description,omitempty"`
	Category         *CategoryResponse `json:"category,omitempty"`
	Difficulty       string            `json:"difficulty,omitempty"`
	ThumbnailImage   string            `json:"thumbnail_image,omitempty"`
	QuestionCount    int               `json:"question_count"`
	TimeLimitSeconds int               `json:"time_limit_seconds"`
	TimeLimit        string            `json:"time_limit,omitempty"` // m:ss
	PassScore        int               `json:"pass_score"`
	AttemptCount     int               `json:"attempt_count"`
	CreatedAt        time.Time         `json:"created_at"`
}

// QuizListResponse is the filtered catalog
type QuizListResponse struct {
	Quizzes []QuizSummaryResponse `json:"quizzes"`
	Total   int                   `json:"total"`
}

// QuestionCountOption is one selectable question count with the time it grants
type QuestionCountOption struct {
	Count            int    `json:"count"`
	TimeLimitSeconds int    `json:"time_limit_seconds"`
	TimeLimit        string `json:"time_limit,omitempty"`
}

// QuizDetailResponse describes a quiz on its setup screen
// @Description Quiz setup information
type QuizDetailResponse struct {
	QuizSummaryResponse
	ShowCorrectAnswer bool                  `json:"show_correct_answer"`
	AllowReview       bool                  `json:"allow_review"`
	CountOptions      []QuestionCountOption `json:"count_options"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}
