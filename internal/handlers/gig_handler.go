package handlers

import (
	"context"
	"errors"
	"log"
	"math"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/Windi-Fikriyansyah/gigstudio/internal/middleware"
	"github.com/Windi-Fikriyansyah/gigstudio/internal/models"
	"github.com/Windi-Fikriyansyah/gigstudio/internal/realtime"
	"github.com/Windi-Fikriyansyah/gigstudio/internal/repository"
	"github.com/Windi-Fikriyansyah/gigstudio/internal/utils"
)

type StatusNotifier interface {
	GigStatusChanged(ev realtime.GigEvent)
}

type GigHandler struct {
	Gigs     repository.GigRepository
	IDs      utils.IDCodec
	Notifier StatusNotifier
	Cache    Cache
}

func NewGigHandler(gigs repository.GigRepository, ids utils.IDCodec, notifier StatusNotifier, cache Cache) *GigHandler {
	return &GigHandler{Gigs: gigs, IDs: ids, Notifier: notifier, Cache: cache}
}

func (h *GigHandler) ListPublic(c *fiber.Ctx) error {
	f := repository.GigFilter{
		Query:    strings.TrimSpace(c.Query("q")),
		Category: strings.TrimSpace(c.Query("cat")),
		MinPrice: queryDecimal(c, "min"),
		MaxPrice: queryDecimal(c, "max"),
		Sort:     c.Query("sort"), // latest | price_low | price_high
		Page:     c.QueryInt("page", 1),
		Limit:    c.QueryInt("limit", 20),
	}.Normalize()

	gigs, total, err := h.Gigs.ListPublished(c.UserContext(), f)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Gagal mengambil layanan")
	}

	out := make([]fiber.Map, 0, len(gigs))
	for i := range gigs {
		g := &gigs[i]
		encID, err := h.IDs.Encode(g.ID)
		if err != nil {
			return fail(c, fiber.StatusInternalServerError, "Gagal mengenkripsi ID layanan")
		}
		out = append(out, fiber.Map{
			"id":                encID,
			"title":             g.Title,
			"category":          g.Category,
			"short_description": g.ShortDescription,
			"pricing_mode":      g.PricingMode,
			"price":             g.BasePrice,
			"cover":             g.CoverURL,
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    out,
		"meta": fiber.Map{
			"page":        f.Page,
			"limit":       f.Limit,
			"total_items": total,
			"total_pages": int(math.Ceil(float64(total) / float64(f.Limit))),
		},
	})
}

func (h *GigHandler) GetDetail(c *fiber.Ctx) error {
	gig, err := h.lookup(c)
	if err != nil {
		return err
	}
	if gig.Status != models.GigStatusPublished {
		return fail(c, fiber.StatusNotFound, "Layanan tidak ditemukan")
	}
	return h.respondGig(c, gig)
}

func (h *GigHandler) ListMine(c *fiber.Ctx) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	gigs, err := h.Gigs.ListByOwner(c.UserContext(), uid)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Gagal mengambil layanan")
	}
	return h.respondList(c, gigs)
}

func (h *GigHandler) GetOne(c *fiber.Ctx) error {
	gig, err := h.lookupOwned(c)
	if err != nil {
		return err
	}
	return h.respondGig(c, gig)
}

func (h *GigHandler) Delete(c *fiber.Ctx) error {
	gig, err := h.lookupOwned(c)
	if err != nil {
		return err
	}

	if err := h.Gigs.Delete(c.UserContext(), gig.ID, gig.UserID); err != nil {
		return fail(c, fiber.StatusInternalServerError, "Gagal menghapus layanan")
	}
	if gig.Status == models.GigStatusPublished {
		h.invalidateCategories(c.UserContext())
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Layanan berhasil dihapus",
	})
}

func (h *GigHandler) AdminList(c *fiber.Ctx) error {
	status := models.GigStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		return fail(c, fiber.StatusBadRequest, "Status tidak valid")
	}

	gigs, err := h.Gigs.ListAll(c.UserContext(), status)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Gagal mengambil layanan")
	}
	return h.respondList(c, gigs)
}

type SetStatusReq struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

func (h *GigHandler) AdminSetStatus(c *fiber.Ctx) error {
	gig, err := h.lookup(c)
	if err != nil {
		return err
	}

	var req SetStatusReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	status := models.GigStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	if !status.Valid() {
		errs := FieldErrors{}
		errs.Add("status", "Status tidak valid")
		return validationFail(c, errs)
	}

	note := strings.TrimSpace(req.Note)
	if err := h.Gigs.SetStatus(c.UserContext(), gig.ID, status, note); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, fiber.StatusNotFound, "Layanan tidak ditemukan")
		}
		return fail(c, fiber.StatusInternalServerError, "Gagal memperbarui status")
	}
	h.invalidateCategories(c.UserContext())

	encID, _ := h.IDs.Encode(gig.ID)
	if h.Notifier != nil {
		h.Notifier.GigStatusChanged(realtime.GigEvent{
			GigID:   encID,
			OwnerID: gig.UserID,
			Title:   gig.Title,
			Status:  string(status),
			At:      time.Now(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Status layanan diperbarui",
		"data": fiber.Map{
			"id":     encID,
			"status": status,
		},
	})
}

func (h *GigHandler) lookup(c *fiber.Ctx) (*models.Gig, error) {
	rawID, err := h.IDs.Decode(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "ID layanan tidak valid")
	}

	gig, err := h.Gigs.FindByID(c.UserContext(), rawID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Layanan tidak ditemukan")
	}
	if err != nil {
		return nil, err
	}
	return gig, nil
}

// lookupOwned hides gigs of other users behind a 404.
func (h *GigHandler) lookupOwned(c *fiber.Ctx) (*models.Gig, error) {
	uid, ok := middleware.UserID(c)
	if !ok {
		return nil, fiber.ErrUnauthorized
	}
	gig, err := h.lookup(c)
	if err != nil {
		return nil, err
	}
	if gig.UserID != uid {
		return nil, fiber.NewError(fiber.StatusNotFound, "Layanan tidak ditemukan")
	}
	return gig, nil
}

func (h *GigHandler) respondGig(c *fiber.Ctx, gig *models.Gig) error {
	view, err := h.gigView(gig)
	if err != nil {
		log.Printf("[Gig] render %d: %v", gig.ID, err)
		return fail(c, fiber.StatusInternalServerError, "Gagal memproses data layanan")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    view,
	})
}

func (h *GigHandler) respondList(c *fiber.Ctx, gigs []models.Gig) error {
	out := make([]fiber.Map, 0, len(gigs))
	for i := range gigs {
		g := &gigs[i]
		encID, err := h.IDs.Encode(g.ID)
		if err != nil {
			return fail(c, fiber.StatusInternalServerError, "Gagal mengenkripsi ID layanan")
		}
		out = append(out, fiber.Map{
			"id":           encID,
			"title":        g.Title,
			"category":     g.Category,
			"pricing_mode": g.PricingMode,
			"base_price":   g.BasePrice,
			"cover_url":    g.CoverURL,
			"status":       g.Status,
			"review_note":  g.ReviewNote,
			"created_at":   g.CreatedAt,
			"updated_at":   g.UpdatedAt,
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    out,
	})
}

func (h *GigHandler) gigView(g *models.Gig) (fiber.Map, error) {
	p, err := g.Payload()
	if err != nil {
		return nil, err
	}
	encID, err := h.IDs.Encode(g.ID)
	if err != nil {
		return nil, err
	}

	return fiber.Map{
		"id":                 encID,
		"user_id":            g.UserID,
		"title":              p.Title,
		"category":           p.Category,
		"subcategory":        p.Subcategory,
		"description":        p.Description,
		"short_title":        p.ShortTitle,
		"short_description":  p.ShortDescription,
		"cover_url":          p.Cover,
		"images":             p.Images,
		"features":           p.Features,
		"pricing_mode":       p.Mode(),
		"price":              p.Price,
		"delivery_time_days": p.DeliveryTimeDays,
		"revision_count":     p.RevisionCount,
		"packages":           p.Packages,
		"milestones":         p.Milestones,
		"status":             g.Status,
		"review_note":        g.ReviewNote,
		"created_at":         g.CreatedAt,
		"updated_at":         g.UpdatedAt,
	}, nil
}

func (h *GigHandler) invalidateCategories(ctx context.Context) {
	if h.Cache == nil {
		return
	}
	if err := h.Cache.Invalidate(ctx, categoriesCacheKey); err != nil {
		log.Printf("[Cache] invalidate categories: %v", err)
	}
}

func queryDecimal(c *fiber.Ctx, key string) decimal.Decimal {
	v, err := decimal.NewFromString(strings.TrimSpace(c.Query(key)))
	if err != nil {
		return decimal.Zero
	}
	return v
}
