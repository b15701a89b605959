package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/gigstudio/internal/drafts"
	"github.com/Windi-Fikriyansyah/gigstudio/internal/gigdraft"
	"github.com/Windi-Fikriyansyah/gigstudio/internal/middleware"
	"github.com/Windi-Fikriyansyah/gigstudio/internal/services/drafting"
	"github.com/Windi-Fikriyansyah/gigstudio/internal/storage"
	"github.com/Windi-Fikriyansyah/gigstudio/internal/utils"
)

type GigDraftHandler struct {
	Drafts *drafting.DraftService
	IDs    utils.IDCodec
}

func NewGigDraftHandler(svc *drafting.DraftService, ids utils.IDCodec) *GigDraftHandler {
	return &GigDraftHandler{Drafts: svc, IDs: ids}
}

type CreateDraftReq struct {
	// GigID, when set, opens the draft on an existing gig.
	GigID string `json:"gig_id"`
}

type DispatchReq struct {
	Actions []gigdraft.Envelope `json:"actions"`
}

func (h *GigDraftHandler) Create(c *fiber.Ctx) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var req CreateDraftReq
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "Body request tidak valid")
		}
	}

	var (
		sess *drafts.Session
		err  error
	)
	if enc := strings.TrimSpace(req.GigID); enc != "" {
		gigID, decErr := h.IDs.Decode(enc)
		if decErr != nil {
			return fail(c, fiber.StatusBadRequest, "ID layanan tidak valid")
		}
		sess, err = h.Drafts.StartEdit(c.UserContext(), uid, gigID)
	} else {
		sess, err = h.Drafts.Start(c.UserContext(), uid)
	}
	if err != nil {
		return h.serviceFail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Draft dibuat",
		"data":    h.sessionView(sess),
	})
}

func (h *GigDraftHandler) Get(c *fiber.Ctx) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	sess, err := h.Drafts.Get(c.UserContext(), uid, c.Params("id"))
	if err != nil {
		return h.serviceFail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.sessionView(sess),
	})
}

// Dispatch applies a batch of form actions. Unknown or malformed actions
// reject the whole batch before anything is applied.
func (h *GigDraftHandler) Dispatch(c *fiber.Ctx) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var req DispatchReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if len(req.Actions) == 0 {
		return fail(c, fiber.StatusBadRequest, "Tidak ada aksi")
	}

	actions, err := gigdraft.DecodeAll(req.Actions)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	sess, err := h.Drafts.Dispatch(c.UserContext(), uid, c.Params("id"), actions...)
	if err != nil {
		return h.serviceFail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.sessionView(sess),
	})
}

func (h *GigDraftHandler) Validate(c *fiber.Ctx) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	errs, err := h.Drafts.Validate(c.UserContext(), uid, c.Params("id"))
	if err != nil {
		return h.serviceFail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"valid":  errs.Empty(),
			"errors": errs,
		},
	})
}

func (h *GigDraftHandler) UploadCover(c *fiber.Ctx) error {
	return h.upload(c, "cover", storage.KindCover)
}

func (h *GigDraftHandler) UploadImage(c *fiber.Ctx) error {
	return h.upload(c, "image", storage.KindImage)
}

func (h *GigDraftHandler) upload(c *fiber.Ctx, field string, kind storage.Kind) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	fh, err := c.FormFile(field)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "File tidak ditemukan")
	}
	file, err := fh.Open()
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "File tidak dapat dibaca")
	}
	defer file.Close()

	sess, url, err := h.Drafts.Upload(c.UserContext(), uid, c.Params("id"), storage.File{
		Kind:     kind,
		Filename: fh.Filename,
		Size:     fh.Size,
		Content:  file,
	})
	if err != nil {
		return h.serviceFail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"url":     url,
		"data":    h.sessionView(sess),
	})
}

func (h *GigDraftHandler) Submit(c *fiber.Ctx) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	gig, err := h.Drafts.Submit(c.UserContext(), uid, c.Params("id"))
	if err != nil {
		return h.serviceFail(c, err)
	}

	encID, err := h.IDs.Encode(gig.ID)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Gagal mengenkripsi ID layanan")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Layanan berhasil dikirim untuk ditinjau",
		"data": fiber.Map{
			"id":       encID,
			"status":   gig.Status,
			"title":    gig.Title,
			"category": gig.Category,
		},
	})
}

func (h *GigDraftHandler) Delete(c *fiber.Ctx) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	if err := h.Drafts.Discard(c.UserContext(), uid, c.Params("id")); err != nil {
		return h.serviceFail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Draft dihapus",
	})
}

func (h *GigDraftHandler) sessionView(s *drafts.Session) fiber.Map {
	var gigID any
	if s.GigID != nil {
		if enc, err := h.IDs.Encode(*s.GigID); err == nil {
			gigID = enc
		}
	}
	return fiber.Map{
		"id":         s.ID,
		"gig_id":     gigID,
		"revision":   s.Revision,
		"draft":      s.Draft,
		"updated_at": s.UpdatedAt,
	}
}

func (h *GigDraftHandler) serviceFail(c *fiber.Ctx, err error) error {
	var verr *drafting.ValidationError
	switch {
	case errors.As(err, &verr):
		return validationFail(c, verr.Errors)
	case errors.Is(err, drafting.ErrSessionNotFound):
		return fail(c, fiber.StatusNotFound, "Draft tidak ditemukan atau sudah kedaluwarsa")
	case errors.Is(err, drafting.ErrGigNotFound):
		return fail(c, fiber.StatusNotFound, "Layanan tidak ditemukan")
	case errors.Is(err, drafting.ErrForbidden):
		return fail(c, fiber.StatusForbidden, "Akses ditolak")
	case errors.Is(err, drafts.ErrConflict):
		return fail(c, fiber.StatusConflict, "Draft sedang diperbarui, coba lagi")
	case errors.Is(err, storage.ErrEmptyFile):
		return fail(c, fiber.StatusBadRequest, "Ukuran file tidak valid")
	case errors.Is(err, storage.ErrTooLarge):
		return fail(c, fiber.StatusRequestEntityTooLarge, "Ukuran file maksimal 5MB")
	case errors.Is(err, storage.ErrUnsupportedType):
		return fail(c, fiber.StatusBadRequest, "Format gambar tidak didukung")
	}
	log.Printf("[Draft] %s %s: %v", c.Method(), c.Path(), err)
	return fail(c, fiber.StatusInternalServerError, "Terjadi kesalahan server")
}
