package dto

import "time"

// CreateSessionRequest selects the quiz to play by slug or id
// @Description Request body for creating a quiz session
type CreateSessionRequest struct {
	QuizSlug string `json:"quiz_slug"`
	QuizID   string `json:"quiz_id"`
}

// CreateSessionResponse carries the bearer token required by every session route
type CreateSessionResponse struct {
	SessionID string          `json:"session_id"`
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Session   SessionResponse `json:"session"`
}

// StartSessionRequest chooses how many questions to sample
type StartSessionRequest struct {
	Count int `json:"count"`
}

// SubmitAnswerRequest holds an option id or free text
type SubmitAnswerRequest struct {
	Answer string `json:"answer"`
}

type OptionResponse struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// QuestionResponse never exposes correctness flags or answer keys
type QuestionResponse struct {
	ID      string           `json:"id"`
	Type    string           `json:"type"`
	Text    string           `json:"text"`
	Image   string           `json:"image,omitempty"`
	Points  int              `json:"points"`
	Options []OptionResponse `json:"options,omitempty"`
}

type AnswerRecordResponse struct {
	Answer       string    `json:"answer"`
	IsCorrect    bool      `json:"is_correct"`
	PointsEarned int       `json:"points_earned"`
	AnsweredAt   time.Time `json:"answered_at"`
}

type SummaryResponse struct {
	EarnedPoints  int  `json:"earned_points"`
	TotalPoints   int  `json:"total_points"`
	Percentage    int  `json:"percentage"`
	Passed        bool `json:"passed"`
	PassScore     int  `json:"pass_score"`
	CorrectCount  int  `json:"correct_count"`
	WrongCount    int  `json:"wrong_count"`
	AnsweredCount int  `json:"answered_count"`
	QuestionCount int  `json:"question_count"`
}

// SessionResponse is the current view of a session
// @Description Quiz session state
type SessionResponse struct {
	SessionID        string                `json:"session_id"`
	QuizID           string                `json:"quiz_id"`
	QuizTitle        string                `json:"quiz_title"`
	State            string                `json:"state"`
	Reason           string                `json:"reason,omitempty"`
	CurrentIndex     int                   `json:"current_index"`
	QuestionCount    int                   `json:"question_count"`
	Question         *QuestionResponse     `json:"question,omitempty"`
	Answer           *AnswerRecordResponse `json:"answer,omitempty"`
	Timed            bool                  `json:"timed"`
	DurationSeconds  int                   `json:"duration_seconds,omitempty"`
	RemainingSeconds int                   `json:"remaining_seconds,omitempty"`
	Remaining        string                `json:"remaining,omitempty"` // m:ss
	Progress         SummaryResponse       `json:"progress"`
}

// SubmitAnswerResponse reveals the grading of one answer
type SubmitAnswerResponse struct {
	Accepted      bool   `json:"accepted"`
	QuestionID    string `json:"question_id"`
	Index         int    `json:"index"`
	IsCorrect     bool   `json:"is_correct"`
	PointsEarned  int    `json:"points_earned"`
	Explanation   string `json:"explanation,omitempty"`
	CorrectAnswer string `json:"correct_answer,omitempty"`
	IsLast        bool   `json:"is_last"`
}

// ResultResponse is the score of a session, final once State is completed
// @Description Quiz session result
type ResultResponse struct {
	SessionID        string          `json:"session_id"`
	QuizID           string          `json:"quiz_id"`
	State            string          `json:"state"`
	Reason           string          `json:"reason,omitempty"`
	Summary          SummaryResponse `json:"summary"`
	TimeSpentSeconds int             `json:"time_spent_seconds"`
	TimeSpent        string          `json:"time_spent,omitempty"`
}

type ReviewItemResponse struct {
	Index         int                   `json:"index"`
	Question      QuestionResponse      `json:"question"`
	Answer        *AnswerRecordResponse `json:"answer,omitempty"`
	CorrectAnswer string                `json:"correct_answer"`
	Explanation   string                `json:"explanation,omitempty"`
}

type ReviewResponse struct {
	SessionID string               `json:"session_id"`
	Items     []ReviewItemResponse `json:"items"`
}
