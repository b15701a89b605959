package handlers

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

const categoriesCacheKey = "categories"

// Cache is a JSON value cache; Get fails on a miss.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

type CategorySource interface {
	Categories(ctx context.Context) ([]string, error)
}

type CategoryHandler struct {
	Gigs  CategorySource
	Cache Cache
	TTL   time.Duration
}

func NewCategoryHandler(gigs CategorySource, cache Cache, ttl time.Duration) *CategoryHandler {
	return &CategoryHandler{Gigs: gigs, Cache: cache, TTL: ttl}
}

func (h *CategoryHandler) GetCategories(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var categories []string
	if h.Cache != nil && h.Cache.Get(ctx, categoriesCacheKey, &categories) == nil {
		return c.JSON(fiber.Map{
			"success": true,
			"data":    categories,
		})
	}

	categories, err := h.Gigs.Categories(ctx)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Gagal mengambil kategori")
	}
	if categories == nil {
		categories = []string{}
	}

	if h.Cache != nil && h.TTL > 0 {
		if err := h.Cache.Set(ctx, categoriesCacheKey, categories, h.TTL); err != nil {
			log.Printf("[Cache] set categories: %v", err)
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    categories,
	})
}
