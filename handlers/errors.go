package handlers

import (
	"errors"

	"github.com/Praveenkaushik12/CollegeFied/internal/marketplace"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// statusForError maps core errors onto HTTP status codes: permission errors
// to 403, state conflicts to 409, precondition failures to 400.
func statusForError(err error) int {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, marketplace.ErrForbidden),
		errors.Is(err, marketplace.ErrUnauthorized):
		return fiber.StatusForbidden
	case errors.Is(err, marketplace.ErrSelfRequest),
		errors.Is(err, marketplace.ErrProductUnavailable),
		errors.Is(err, marketplace.ErrDuplicatePending),
		errors.Is(err, marketplace.ErrInvalidTransition),
		errors.Is(err, marketplace.ErrActiveRequestExists),
		errors.Is(err, marketplace.ErrAlreadySold),
		errors.Is(err, marketplace.ErrChatInactive),
		errors.Is(err, marketplace.ErrDuplicateRating),
		errors.Is(err, marketplace.ErrProductNotSold):
		return fiber.StatusConflict
	case errors.Is(err, marketplace.ErrProfileIncomplete),
		errors.Is(err, marketplace.ErrScoreOutOfRange),
		errors.Is(err, marketplace.ErrRatingWindowExpired),
		errors.Is(err, marketplace.ErrNotApprovedBuyer):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// coreError renders a core error as the standard JSON error body.
func coreError(c *fiber.Ctx, err error) error {
	return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
}
