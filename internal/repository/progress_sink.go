package repository

import (
	"context"
	"fmt"
	"time"

	"quiz-master/internal/domain"
	"quiz-master/internal/repository/models"
	"quiz-master/internal/util"

	"github.com/jmoiron/sqlx"
)

const (
	insertAttempt = `INSERT INTO quiz_attempts (id, quiz_set_id, session_id, started_at, completed)
		VALUES (:id, :quiz_set_id, :session_id, :started_at, :completed)`
	insertResponse = `INSERT INTO quiz_responses (
		id, attempt_id, question_id, selected_option_id, answer_text, is_correct, points_earned, answered_at
	) VALUES (
		:id, :attempt_id, :question_id, :selected_option_id, :answer_text, :is_correct, :points_earned, :answered_at
	)`
)

type sqlxProgressSink struct {
	db  DBTX
	now func() time.Time
}

// NewProgressSink stores attempts and responses in quiz_attempts and quiz_responses.
func NewProgressSink(db *sqlx.DB) domain.ProgressSink {
	return &sqlxProgressSink{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (s *sqlxProgressSink) RecordAttemptStart(ctx context.Context, quizID, sessionID string) (string, error) {
	row := models.Attempt{
		ID:        util.NewULID(),
		QuizSetID: quizID,
		SessionID: sessionID,
		StartedAt: s.now(),
	}
	if _, err := GetExecutor(ctx, s.db).NamedExecContext(ctx, insertAttempt, row); err != nil {
		return "", fmt.Errorf("failed to record attempt start for quiz %s: %w", quizID, err)
	}
	return row.ID, nil
}

// RecordAnswer stores option answers in selected_option_id and free text in answer_text.
func (s *sqlxProgressSink) RecordAnswer(ctx context.Context, attemptID string, entry domain.AnswerLog) error {
	row := models.Response{
		ID:           util.NewULID(),
		AttemptID:    attemptID,
		QuestionID:   entry.QuestionID,
		IsCorrect:    models.BoolToInt(entry.IsCorrect),
		PointsEarned: entry.PointsEarned,
		AnsweredAt:   entry.AnsweredAt,
	}
	if entry.QuestionType.IsChoice() {
		row.SelectedOptionID = util.StringToNullString(entry.Answer)
	} else {
		row.AnswerText = util.StringToNullString(entry.Answer)
	}
	if row.AnsweredAt.IsZero() {
		row.AnsweredAt = s.now()
	}
	if _, err := GetExecutor(ctx, s.db).NamedExecContext(ctx, insertResponse, row); err != nil {
		return fmt.Errorf("failed to record answer for attempt %s: %w", attemptID, err)
	}
	return nil
}

func (s *sqlxProgressSink) RecordAttemptFinish(ctx context.Context, attemptID string, result domain.AttemptResult) error {
	completedAt := util.TimeToNullTime(result.CompletedAt)
	if !completedAt.Valid {
		completedAt = util.TimeToNullTime(s.now())
	}
	exec := GetExecutor(ctx, s.db)
	query := exec.Rebind(`UPDATE quiz_attempts SET
		completed = 1,
		completed_at = ?,
		score = ?,
		total_points = ?,
		percentage = ?,
		time_spent = ?
	WHERE id = ?`)
	if _, err := exec.ExecContext(ctx, query,
		completedAt, result.EarnedPoints, result.TotalPoints, result.Percentage, result.TimeSpent, attemptID,
	); err != nil {
		return fmt.Errorf("failed to record attempt finish for %s: %w", attemptID, err)
	}
	return nil
}

func (s *sqlxProgressSink) IncrementAttemptCounter(ctx context.Context, quizID string) error {
	exec := GetExecutor(ctx, s.db)
	query := exec.Rebind(`UPDATE quiz_sets SET attempt_count = attempt_count + 1 WHERE id = ?`)
	if _, err := exec.ExecContext(ctx, query, quizID); err != nil {
		return fmt.Errorf("failed to increment attempt counter for quiz %s: %w", quizID, err)
	}
	return nil
}
