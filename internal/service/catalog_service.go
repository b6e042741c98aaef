package service

import (
	"context"
	"fmt"
	"strings"

	"quiz-master/internal/domain"
	"quiz-master/internal/dto"
	"quiz-master/internal/logger"

	"go.uber.org/zap"
)

// CatalogService serves the published quiz catalog.
type CatalogService interface {
	ListCategories(ctx context.Context) ([]dto.CategoryResponse, error)
	ListQuizzes(ctx context.Context, query dto.QuizListQuery) (*dto.QuizListResponse, error)
	GetQuizBySlug(ctx context.Context, slug string) (*dto.QuizDetailResponse, error)
	GetQuizByID(ctx context.Context, id string) (*dto.QuizDetailResponse, error)
}

type catalogService struct {
	repo             domain.QuizStore
	defaultPassScore int
}

func NewCatalogService(repo domain.QuizStore, defaultPassScore int) CatalogService {
	return &catalogService{repo: repo, defaultPassScore: defaultPassScore}
}

func (s *catalogService) ListCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	cats, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, domain.NewInternalError("failed to list categories", err)
	}
	out := make([]dto.CategoryResponse, 0, len(cats))
	for i := range cats {
		out = append(out, *toCategoryResponse(&cats[i]))
	}
	return out, nil
}

// ListQuizzes rejects an unknown difficulty instead of silently ignoring it.
func (s *catalogService) ListQuizzes(ctx context.Context, query dto.QuizListQuery) (*dto.QuizListResponse, error) {
	filter := domain.QuizFilter{
		CategoryID: strings.TrimSpace(query.CategoryID),
		Search:     query.Search,
	}
	if query.Difficulty != "" && query.Difficulty != "all" {
		filter.Difficulty = domain.ParseDifficulty(query.Difficulty)
		if filter.Difficulty == "" {
			return nil, domain.NewInvalidInputError(fmt.Sprintf("unknown difficulty: %s", query.Difficulty))
		}
	}
	if filter.CategoryID == "all" {
		filter.CategoryID = ""
	}

	quizzes, err := s.repo.ListQuizzes(ctx, filter)
	if err != nil {
		logger.Get().Error("Failed to list quizzes", zap.Error(err))
		return nil, domain.NewInternalError("failed to list quizzes", err)
	}

	resp := &dto.QuizListResponse{Quizzes: make([]dto.QuizSummaryResponse, 0, len(quizzes)), Total: len(quizzes)}
	for i := range quizzes {
		resp.Quizzes = append(resp.Quizzes, toQuizSummaryResponse(&quizzes[i], s.defaultPassScore))
	}
	return resp, nil
}

func (s *catalogService) GetQuizBySlug(ctx context.Context, slug string) (*dto.QuizDetailResponse, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, domain.NewInvalidInputError("quiz slug is required")
	}
	def, err := s.repo.GetQuizDefinitionBySlug(ctx, slug)
	return s.detail(def, err)
}

func (s *catalogService) GetQuizByID(ctx context.Context, id string) (*dto.QuizDetailResponse, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.NewInvalidInputError("quiz id is required")
	}
	def, err := s.repo.GetQuizDefinitionByID(ctx, id)
	return s.detail(def, err)
}

func (s *catalogService) detail(def *domain.QuizDefinition, err error) (*dto.QuizDetailResponse, error) {
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, err
		}
		return nil, domain.NewInternalError("failed to load quiz", err)
	}
	return &dto.QuizDetailResponse{
		QuizSummaryResponse: toQuizSummaryResponse(def, s.defaultPassScore),
		ShowCorrectAnswer:   def.ShowCorrectAnswer,
		AllowReview:         def.AllowReview,
		CountOptions:        toCountOptions(def),
	}, nil
}
