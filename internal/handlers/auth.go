package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/gigstudio/internal/middleware"
	"github.com/Windi-Fikriyansyah/gigstudio/internal/models"
	"github.com/Windi-Fikriyansyah/gigstudio/internal/repository"
	"github.com/Windi-Fikriyansyah/gigstudio/internal/utils"
)

type AuthHandler struct {
	Users        repository.UserRepository
	JWTSecret    string
	Expires      int
	SecureCookie bool
}

type RegisterReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Role     string `json:"role"` // client / freelancer (admin jangan dari publik)
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Body request tidak valid")
	}

	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	phone := strings.TrimSpace(req.Phone)
	password := strings.TrimSpace(req.Password)

	role := models.Role(strings.ToLower(strings.TrimSpace(req.Role)))
	if role == "" {
		role = models.RoleClient
	}

	errs := FieldErrors{}
	if name == "" {
		errs.Add("name", "Nama wajib diisi")
	}
	if email == "" {
		errs.Add("email", "Email wajib diisi")
	} else if !strings.Contains(email, "@") {
		errs.Add("email", "Format email tidak valid")
	}
	if password == "" {
		errs.Add("password", "Password wajib diisi")
	} else if len(password) < 6 {
		errs.Add("password", "Password minimal 6 karakter")
	}
	if phone != "" && len(phone) < 8 {
		errs.Add("phone", "No. HP tidak valid")
	}
	if role != models.RoleClient && role != models.RoleFreelancer {
		errs.Add("role", "Role tidak valid")
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	if _, err := h.Users.FindByEmail(c.UserContext(), email); err == nil {
		errs.Add("email", "Email sudah terdaftar")
		return validationFail(c, errs)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	pw, err := utils.HashPassword(password)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Gagal memproses password")
	}

	u := models.User{
		Name:     name,
		Email:    email,
		Password: pw,
		Role:     role,
		IsActive: true,
	}
	if phone != "" {
		u.Phone = &phone
	}

	if err := h.Users.Create(c.UserContext(), &u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			errs.Add("phone", "No. HP sudah terdaftar")
			return validationFail(c, errs)
		}
		return fail(c, fiber.StatusBadRequest, "Gagal register")
	}

	if err := h.setSession(c, &u); err != nil {
		return fail(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Register berhasil",
		"data": fiber.Map{
			"user": userView(&u),
		},
	})
}

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Body request tidak valid")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)

	errs := FieldErrors{}
	if email == "" {
		errs.Add("email", "Email wajib diisi")
	}
	if password == "" {
		errs.Add("password", "Password wajib diisi")
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	u, err := h.Users.FindByEmail(c.UserContext(), email)
	if errors.Is(err, repository.ErrNotFound) {
		return fail(c, fiber.StatusUnauthorized, "Email atau password salah")
	}
	if err != nil {
		return err
	}
	if !u.IsActive {
		return fail(c, fiber.StatusForbidden, "Akun tidak aktif")
	}
	if !utils.CheckPassword(u.Password, password) {
		return fail(c, fiber.StatusUnauthorized, "Email atau password salah")
	}

	if err := h.setSession(c, u); err != nil {
		return fail(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login berhasil",
		"data": fiber.Map{
			"user": userView(u),
		},
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.SecureCookie,
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logout berhasil",
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	u, err := h.Users.FindByID(c.UserContext(), uid)
	if errors.Is(err, repository.ErrNotFound) {
		return fail(c, fiber.StatusUnauthorized, "User tidak ditemukan")
	}
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    userView(u),
	})
}

func (h *AuthHandler) setSession(c *fiber.Ctx, u *models.User) error {
	token, err := utils.SignJWT(h.JWTSecret, u.ID, string(u.Role), h.Expires)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.SecureCookie,
		SameSite: "Lax",
		MaxAge:   h.Expires * 60,
	})
	return nil
}

func userView(u *models.User) fiber.Map {
	return fiber.Map{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"phone": u.Phone,
		"role":  u.Role,
	}
}
