package domain

import "context"

// QuestionRepository is the read side of the question store.
// Lookups of missing or unpublished quizzes return a NotFound-class DomainError.
type QuestionRepository interface {
	GetQuizDefinitionBySlug(ctx context.Context, slug string) (*QuizDefinition, error)
	GetQuizDefinitionByID(ctx context.Context, id string) (*QuizDefinition, error)
	GetQuestionIDs(ctx context.Context, quizID string) ([]string, error)
	// GetQuestionsByIDs does not guarantee result order.
	GetQuestionsByIDs(ctx context.Context, ids []string) ([]Question, error)
}

// QuizCatalog lists published quizzes for browsing.
type QuizCatalog interface {
	ListQuizzes(ctx context.Context, filter QuizFilter) ([]QuizDefinition, error)
	ListCategories(ctx context.Context) ([]Category, error)
}

// QuizStore is the full read side used by the application services.
type QuizStore interface {
	QuestionRepository
	QuizCatalog
}

// QuizBankWriter persists a whole quiz bank.
type QuizBankWriter interface {
	SaveQuizBank(ctx context.Context, bank *QuizBank) error
}

// ProgressSink receives advisory writes about attempts. Callers never wait on
// delivery and never retry.
type ProgressSink interface {
	RecordAttemptStart(ctx context.Context, quizID, sessionID string) (attemptID string, err error)
	RecordAnswer(ctx context.Context, attemptID string, entry AnswerLog) error
	RecordAttemptFinish(ctx context.Context, attemptID string, result AttemptResult) error
	IncrementAttemptCounter(ctx context.Context, quizID string) error
}

// TransactionManager runs fn inside a single database transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
