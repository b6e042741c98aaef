package middleware

import (
	"quiz-master/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

func NewValidationMiddleware(v *validation.Validator) *ValidationMiddleware {
	return &ValidationMiddleware{validator: v}
}

// ValidateSessionID rejects malformed :id route parameters before auth runs.
func (vm *ValidationMiddleware) ValidateSessionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if errs := vm.validator.ValidateSessionID(c.Params("id")); len(errs) > 0 {
			return errs // This will be handled by ErrorHandler middleware
		}
		return c.Next()
	}
}

// ValidateQuizID rejects malformed quiz :id route parameters.
func (vm *ValidationMiddleware) ValidateQuizID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if errs := vm.validator.ValidateQuizID(c.Params("id")); len(errs) > 0 {
			return errs
		}
		return c.Next()
	}
}

// ValidateSlug rejects malformed :slug route parameters.
func (vm *ValidationMiddleware) ValidateSlug() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if errs := vm.validator.ValidateSlug(c.Params("slug")); len(errs) > 0 {
			return errs
		}
		return c.Next()
	}
}
