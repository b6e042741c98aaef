package seedmodels

import (
	"strings"
	"testing"

	"quiz-master/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSeed = `[
  {
    "slug": "solar-system",
    "title": "Solar System",
    "category": {"name": "Science", "color": "#3366ff"},
    "difficulty": "Easy",
    "time_limit": 120,
    "show_correct_answer": true,
    "questions": [
      {"type": "multiple_choice", "text": "Closest planet to the sun?", "points": 2,
       "options": [{"text": "Venus"}, {"text": "Mercury", "correct": true}]},
      {"type": "short_answer", "text": "Largest planet?",
       "answers": [{"text": "Jupiter"}, {"text": "JUPITER", "case_sensitive": true, "exact_match": true}]}
    ]
  },
  {"slug": "draft", "title": "Draft", "published": false, "questions": []}
]`

func TestDecodeAndConvert(t *testing.T) {
	banks, err := Decode(strings.NewReader(sampleSeed))
	require.NoError(t, err)
	require.Len(t, banks, 2)

	bank, err := banks[0].ToDomain()
	require.NoError(t, err)
	assert.NoError(t, bank.Validate())

	def := bank.Definition
	assert.Equal(t, "solar-system", def.Slug)
	assert.Equal(t, domain.DifficultyEasy, def.Difficulty)
	assert.Equal(t, 120, def.TimeLimit)
	assert.True(t, def.IsPublished)
	assert.True(t, def.ShowCorrectAnswer)
	require.NotNil(t, def.Category)
	assert.Equal(t, "Science", def.Category.Name)

	require.Len(t, bank.Questions, 2)
	mc := bank.Questions[0]
	assert.Equal(t, domain.QuestionMultipleChoice, mc.Type)
	assert.Equal(t, 1, mc.Order)
	assert.Equal(t, "Mercury", mc.CorrectOption().Text)
	assert.Equal(t, 2, mc.Options[1].Order)

	sa := bank.Questions[1]
	assert.Equal(t, []domain.AnswerKey{
		{Text: "Jupiter"},
		{Text: "JUPITER", CaseSensitive: true, ExactMatch: true},
	}, sa.AnswerKeys)

	draft, err := banks[1].ToDomain()
	require.NoError(t, err)
	assert.False(t, draft.Definition.IsPublished)
	assert.Equal(t, domain.DifficultyMedium, draft.Definition.Difficulty)
	assert.Error(t, draft.Validate())
}

func TestToDomain_UnknownDifficulty(t *testing.T) {
	b := SeedQuizBank{Slug: "x", Title: "X", Difficulty: "extreme"}
	_, err := b.ToDomain()
	assert.ErrorContains(t, err, "unknown difficulty")
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"slug": "not-an-array"}`))
	assert.Error(t, err)
}
