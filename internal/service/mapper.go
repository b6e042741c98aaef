package service

import (
	"quiz-master/internal/domain"
	"quiz-master/internal/dto"
	"quiz-master/internal/engine"
)

func toCategoryResponse(c *domain.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name, Color: c.Color, Icon: c.Icon}
}

func toQuizSummaryResponse(q *domain.QuizDefinition, defaultPassScore int) dto.QuizSummaryResponse {
	return dto.QuizSummaryResponse{
		ID:               q.ID,
		Slug:             q.Slug,
		Title:            q.Title,
		Description:      q.Description,
		Category:         toCategoryResponse(q.Category),
		Difficulty:       string(q.Difficulty),
		ThumbnailImage:   q.ThumbnailImage,
		QuestionCount:    q.QuestionCount,
		TimeLimitSeconds: q.TimeLimit,
		TimeLimit:        engine.FormatClock(q.TimeLimit),
		PassScore:        q.EffectivePassScore(defaultPassScore),
		AttemptCount:     q.AttemptCount,
		CreatedAt:        q.CreatedAt,
	}
}

// toCountOptions pairs every offered count with the time it grants.
func toCountOptions(q *domain.QuizDefinition) []dto.QuestionCountOption {
	counts := engine.CountOptions(q.QuestionCount)
	out := make([]dto.QuestionCountOption, 0, len(counts))
	for _, n := range counts {
		secs := engine.EffectiveDuration(q.TimeLimit, q.QuestionCount, n)
		out = append(out, dto.QuestionCountOption{
			Count:            n,
			TimeLimitSeconds: secs,
			TimeLimit:        engine.FormatClock(secs),
		})
	}
	return out
}

func toQuestionResponse(q *domain.Question) *dto.QuestionResponse {
	resp := &dto.QuestionResponse{
		ID:     q.ID,
		Type:   string(q.Type),
		Text:   q.Text,
		Image:  q.Image,
		Points: q.PointValue(),
	}
	for _, opt := range q.Options {
		resp.Options = append(resp.Options, dto.OptionResponse{ID: opt.ID, Text: opt.Text})
	}
	return resp
}

func toAnswerRecordResponse(rec *domain.AnswerRecord) *dto.AnswerRecordResponse {
	if rec == nil {
		return nil
	}
	return &dto.AnswerRecordResponse{
		Answer:       rec.Answer,
		IsCorrect:    rec.IsCorrect,
		PointsEarned: rec.PointsEarned,
		AnsweredAt:   rec.AnsweredAt,
	}
}

func toSummaryResponse(s engine.Summary) dto.SummaryResponse {
	return dto.SummaryResponse{
		EarnedPoints:  s.EarnedPoints,
		TotalPoints:   s.TotalPoints,
		Percentage:    s.Percentage,
		Passed:        s.Passed,
		PassScore:     s.PassScore,
		CorrectCount:  s.CorrectCount,
		WrongCount:    s.WrongCount,
		AnsweredCount: s.AnsweredCount,
		QuestionCount: s.QuestionCount,
	}
}

func toSessionResponse(quiz domain.QuizDefinition, snap engine.Snapshot) *dto.SessionResponse {
	resp := &dto.SessionResponse{
		SessionID:     snap.SessionID,
		QuizID:        quiz.ID,
		QuizTitle:     quiz.Title,
		State:         string(snap.State),
		Reason:        string(snap.Reason),
		CurrentIndex:  snap.CurrentIndex,
		QuestionCount: snap.QuestionCount,
		Timed:         snap.Timed,
		Progress:      toSummaryResponse(snap.Summary),
	}
	if snap.Timed {
		resp.DurationSeconds = snap.Duration
		resp.RemainingSeconds = snap.Remaining
		resp.Remaining = engine.FormatClock(snap.Remaining)
	}
	if snap.Current != nil {
		resp.Question = toQuestionResponse(snap.Current)
		resp.Answer = toAnswerRecordResponse(snap.CurrentRecord)
	}
	return resp
}

func toSubmitAnswerResponse(sub engine.Submission) *dto.SubmitAnswerResponse {
	return &dto.SubmitAnswerResponse{
		Accepted:      sub.Accepted,
		QuestionID:    sub.QuestionID,
		Index:         sub.Index,
		IsCorrect:     sub.Record.IsCorrect,
		PointsEarned:  sub.Record.PointsEarned,
		Explanation:   sub.Explanation,
		CorrectAnswer: sub.CorrectAnswer,
		IsLast:        sub.IsLast,
	}
}

func toResultResponse(res engine.Result) *dto.ResultResponse {
	return &dto.ResultResponse{
		SessionID:        res.SessionID,
		QuizID:           res.QuizID,
		State:            string(engine.StateCompleted),
		Reason:           string(res.Reason),
		Summary:          toSummaryResponse(res.Summary),
		TimeSpentSeconds: res.TimeSpent,
		TimeSpent:        engine.FormatClock(res.TimeSpent),
	}
}

func toReviewResponse(sessionID string, items []engine.ReviewItem) *dto.ReviewResponse {
	resp := &dto.ReviewResponse{SessionID: sessionID, Items: make([]dto.ReviewItemResponse, 0, len(items))}
	for i := range items {
		item := &items[i]
		resp.Items = append(resp.Items, dto.ReviewItemResponse{
			Index:         item.Index,
			Question:      *toQuestionResponse(&item.Question),
			Answer:        toAnswerRecordResponse(item.Record),
			CorrectAnswer: item.CorrectAnswer,
			Explanation:   item.Question.Explanation,
		})
	}
	return resp
}
