package validation

import (
	"regexp"
	"strings"

	"quiz-master/internal/domain"
	"quiz-master/internal/dto"
	"quiz-master/internal/util"
)

const (
	MaxAnswerLength = 2000
	maxSlugLength   = 200
)

var slugPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// Validator provides request validation functionality
type Validator struct {
	maxQuestionCount int
}

// NewValidator creates a validator. maxQuestionCount bounds the count of a start request.
func NewValidator(maxQuestionCount int) *Validator {
	if maxQuestionCount <= 0 {
		maxQuestionCount = 100
	}
	return &Validator{maxQuestionCount: maxQuestionCount}
}

func (v *Validator) ValidateSessionID(id string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError("session_id"))
	} else if !isValidULID(id) {
		errors = append(errors, domain.NewInvalidFormatError("session_id", id))
	}
	return errors
}

// ValidateQuizID accepts the ULIDs the bank writer assigns.
func (v *Validator) ValidateQuizID(id string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError("quiz_id"))
	} else if !isValidULID(id) {
		errors = append(errors, domain.NewInvalidFormatError("quiz_id", id))
	}
	return errors
}

func (v *Validator) ValidateSlug(slug string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(slug) == "" {
		errors = append(errors, domain.NewMissingFieldError("slug"))
	} else if len(slug) > maxSlugLength || !slugPattern.MatchString(slug) {
		errors = append(errors, domain.NewInvalidFormatError("slug", slug))
	}
	return errors
}

// ValidateCreateSessionRequest requires exactly one of quiz_slug or quiz_id.
func (v *Validator) ValidateCreateSessionRequest(req *dto.CreateSessionRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors
	slug := strings.TrimSpace(req.QuizSlug)
	id := strings.TrimSpace(req.QuizID)

	switch {
	case slug == "" && id == "":
		errors = append(errors, domain.NewMissingFieldError("quiz_slug"))
	case slug != "" && id != "":
		errors = append(errors, domain.FieldError{Field: "quiz_id", Message: "cannot be combined with quiz_slug"})
	case slug != "":
		for _, fe := range v.ValidateSlug(slug) {
			fe.Field = "quiz_slug"
			errors = append(errors, fe)
		}
	default:
		errors = append(errors, v.ValidateQuizID(id)...)
	}
	return errors
}

func (v *Validator) ValidateStartRequest(req *dto.StartSessionRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if req.Count < 1 || req.Count > v.maxQuestionCount {
		errors = append(errors, domain.NewOutOfRangeError("count", req.Count, 1, v.maxQuestionCount))
	}
	return errors
}

// ValidateSubmitAnswerRequest only bounds the length. Blank answers are left to the
// session, which grades them by question type.
func (v *Validator) ValidateSubmitAnswerRequest(req *dto.SubmitAnswerRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if len(req.Answer) > MaxAnswerLength {
		errors = append(errors, domain.NewOutOfRangeError("answer", len(req.Answer), 0, MaxAnswerLength))
	}
	return errors
}

// ValidateListQuery accepts an empty or "all" difficulty.
func (v *Validator) ValidateListQuery(q *dto.QuizListQuery) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if d := strings.TrimSpace(q.Difficulty); d != "" && d != "all" && domain.ParseDifficulty(d) == "" {
		errors = append(errors, domain.NewInvalidFormatError("difficulty", q.Difficulty))
	}
	if len(q.Search) > maxSlugLength {
		errors = append(errors, domain.NewOutOfRangeError("search", len(q.Search), 0, maxSlugLength))
	}
	return errors
}

func isValidULID(s string) bool {
	return util.IsULID(strings.ToUpper(s))
}
