package handler

import (
	"quiz-master/internal/dto"
	"quiz-master/internal/service"
	"quiz-master/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles quiz catalog HTTP requests
type CatalogHandler struct {
	service   service.CatalogService
	validator *validation.Validator
}

func NewCatalogHandler(service service.CatalogService, validator *validation.Validator) *CatalogHandler {
	return &CatalogHandler{service: service, validator: validator}
}

// ListCategories godoc
// @Summary List quiz categories
// @Description Returns every category ordered by name
// @Tags catalog
// @Produce json
// @Success 200 {array} dto.CategoryResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	cats, err := h.service.ListCategories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(cats)
}

// ListQuizzes godoc
// @Summary List published quizzes
// @Description Returns published quizzes, newest first
// @Tags catalog
// @Produce json
// @Param category_id query string false "Category ID or all"
// @Param difficulty query string false "easy, medium, hard or all"
// @Param search query string false "Case-insensitive search over title and description"
// @Success 200 {object} dto.QuizListResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quizzes [get]
func (h *CatalogHandler) ListQuizzes(c *fiber.Ctx) error {
	var query dto.QuizListQuery
	if err := c.QueryParser(&query); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query parameters")
	}
	if errs := h.validator.ValidateListQuery(&query); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.ListQuizzes(c.UserContext(), query)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetQuizBySlug godoc
// @Summary Get a quiz by slug
// @Description Returns the setup information of a published quiz
// @Tags catalog
// @Produce json
// @Param slug path string true "Quiz slug"
// @Success 200 {object} dto.QuizDetailResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/slug/{slug} [get]
func (h *CatalogHandler) GetQuizBySlug(c *fiber.Ctx) error {
	resp, err := h.service.GetQuizBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetQuizByID godoc
// @Summary Get a quiz by id
// @Tags catalog
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.QuizDetailResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/id/{id} [get]
func (h *CatalogHandler) GetQuizByID(c *fiber.Ctx) error {
	resp, err := h.service.GetQuizByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
