package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/gigstudio/internal/refdata"
)

type RefDataHandler struct{}

// Search serves GET /refdata/:kind?q=...&limit=...
func (RefDataHandler) Search(c *fiber.Ctx) error {
	items, err := refdata.Search(refdata.Kind(c.Params("kind")), c.Query("q"), c.QueryInt("limit", refdata.DefaultLimit))
	if errors.Is(err, refdata.ErrUnknownKind) {
		return fail(c, fiber.StatusNotFound, "Daftar tidak ditemukan")
	}
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    items,
	})
}
