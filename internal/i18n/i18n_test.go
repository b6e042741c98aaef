package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTranslator(t *testing.T, lang string) *Translator {
	t.Helper()
	tr, err := New(lang)
	require.NoError(t, err)
	return tr
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		lang string
		id   string
		want string
	}{
		{lang: "en", id: "TimeUp", want: "Time is up!"},
		{lang: "ko", id: "TimeUp", want: "시간이 종료되었습니다!"},
		{lang: "ko-KR", id: "Incorrect", want: "오답입니다."},
		{lang: "fr", id: "Incorrect", want: "Incorrect."},
	}
	for _, tt := range tests {
		t.Run(tt.lang+"/"+tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, newTranslator(t, tt.lang).T(tt.id))
		})
	}
}

func TestTemplateData(t *testing.T) {
	tr := newTranslator(t, "en")
	got := tr.Td("ResultScore", map[string]any{"Earned": 3, "Total": 4, "Percentage": 75})
	assert.Equal(t, "Score: 3/4 points (75%)", got)
}

func TestPlural(t *testing.T) {
	en := newTranslator(t, "en")
	assert.Equal(t, "1 question available.", en.Tp("QuestionsAvailable", 1))
	assert.Equal(t, "12 questions available.", en.Tp("QuestionsAvailable", 12))

	ko := newTranslator(t, "ko")
	assert.Equal(t, "문제 1개를 풀 수 있습니다.", ko.Tp("QuestionsAvailable", 1))
}

func TestMissingKey(t *testing.T) {
	assert.Equal(t, "NoSuchMessage", newTranslator(t, "en").T("NoSuchMessage"))
}

func TestInvalidLanguage(t *testing.T) {
	_, err := New("not a language!")
	assert.Error(t, err)
}
