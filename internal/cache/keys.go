package cache

import "strings"

const (
	GlobalKeyPrefix = "quizmaster"
)

// GenerateCacheKey builds prefix:service:object:identifier, with paramsKey
// joined by "_" and appended as a final segment when present.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// QuizKey addresses a cached quiz lookup, e.g. QuizKey("slug", "world-capitals").
func QuizKey(by, value string) string {
	return GenerateCacheKey("quiz", "definition", by+"="+value)
}

// QuestionIDsKey addresses the cached id list of a quiz bank.
func QuestionIDsKey(quizID string) string {
	return GenerateCacheKey("quiz", "question_ids", quizID)
}

// QuestionKey addresses one cached question body.
func QuestionKey(questionID string) string {
	return GenerateCacheKey("quiz", "question", questionID)
}

// ResultKey addresses the summary of a completed session.
func ResultKey(sessionID string) string {
	return GenerateCacheKey("session", "result", sessionID)
}
