package validation

import (
	"strings"
	"testing"

	"quiz-master/internal/dto"
	"quiz-master/internal/util"

	"github.com/stretchr/testify/assert"
)

func TestValidateSessionID(t *testing.T) {
	v := NewValidator(100)

	tests := []struct {
		name      string
		id        string
		wantField string
	}{
		{"valid ulid", util.NewULID(), ""},
		{"empty", "  ", "session_id"},
		{"too short", "abc", "session_id"},
		{"invalid letter", strings.Repeat("U", 26), "session_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.ValidateSessionID(tt.id)
			if tt.wantField == "" {
				assert.Empty(t, errs)
				return
			}
			if assert.Len(t, errs, 1) {
				assert.Equal(t, tt.wantField, errs[0].Field)
			}
		})
	}
}

func TestValidateQuizID(t *testing.T) {
	v := NewValidator(100)

	assert.Empty(t, v.ValidateQuizID(util.NewULID()))
	assert.Empty(t, v.ValidateQuizID(strings.ToLower(util.NewULID())))
	for _, id := range []string{"", "quiz-1", "../etc", strings.Repeat("U", 26)} {
		errs := v.ValidateQuizID(id)
		if assert.Len(t, errs, 1, "id %q", id) {
			assert.Equal(t, "quiz_id", errs[0].Field)
		}
	}
}

func TestValidateCreateSessionRequest(t *testing.T) {
	v := NewValidator(100)

	assert.Empty(t, v.ValidateCreateSessionRequest(&dto.CreateSessionRequest{QuizSlug: "world-capitals"}))
	assert.Empty(t, v.ValidateCreateSessionRequest(&dto.CreateSessionRequest{QuizID: util.NewULID()}))

	errs := v.ValidateCreateSessionRequest(&dto.CreateSessionRequest{QuizID: "quiz-1"})
	if assert.Len(t, errs, 1) {
		assert.Equal(t, "quiz_id", errs[0].Field)
	}

	errs = v.ValidateCreateSessionRequest(&dto.CreateSessionRequest{})
	if assert.Len(t, errs, 1) {
		assert.Equal(t, "quiz_slug", errs[0].Field)
	}

	errs = v.ValidateCreateSessionRequest(&dto.CreateSessionRequest{QuizSlug: "a", QuizID: "b"})
	if assert.Len(t, errs, 1) {
		assert.Equal(t, "quiz_id", errs[0].Field)
	}

	errs = v.ValidateCreateSessionRequest(&dto.CreateSessionRequest{QuizSlug: "../etc"})
	if assert.Len(t, errs, 1) {
		assert.Equal(t, "quiz_slug", errs[0].Field)
	}
}

func TestValidateStartRequest(t *testing.T) {
	v := NewValidator(20)

	tests := []struct {
		count int
		ok    bool
	}{
		{0, false},
		{1, true},
		{20, true},
		{21, false},
		{-5, false},
	}
	for _, tt := range tests {
		errs := v.ValidateStartRequest(&dto.StartSessionRequest{Count: tt.count})
		assert.Equal(t, tt.ok, len(errs) == 0, "count %d", tt.count)
	}
}

func TestValidateSubmitAnswerRequest(t *testing.T) {
	v := NewValidator(100)

	assert.Empty(t, v.ValidateSubmitAnswerRequest(&dto.SubmitAnswerRequest{Answer: "Paris"}))
	assert.Empty(t, v.ValidateSubmitAnswerRequest(&dto.SubmitAnswerRequest{Answer: " \t"}))
	assert.Len(t, v.ValidateSubmitAnswerRequest(&dto.SubmitAnswerRequest{Answer: strings.Repeat("x", MaxAnswerLength+1)}), 1)
}

func TestValidateListQuery(t *testing.T) {
	v := NewValidator(100)

	assert.Empty(t, v.ValidateListQuery(&dto.QuizListQuery{}))
	assert.Empty(t, v.ValidateListQuery(&dto.QuizListQuery{Difficulty: "all"}))
	assert.Empty(t, v.ValidateListQuery(&dto.QuizListQuery{Difficulty: "Hard"}))
	assert.Len(t, v.ValidateListQuery(&dto.QuizListQuery{Difficulty: "expert"}), 1)
}
