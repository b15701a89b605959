package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/Windi-Fikriyansyah/gigstudio/internal/middleware"
)

type Routes struct {
	JWTSecret string
	UploadDir string

	Auth       *AuthHandler
	Categories *CategoryHandler
	Gigs       *GigHandler
	Drafts     *GigDraftHandler
	RefData    RefDataHandler
	Realtime   *RealtimeHandler
}

func Mount(app *fiber.App, r Routes) {
	if r.UploadDir != "" {
		app.Static("/uploads", r.UploadDir)
	}

	api := app.Group("/api")

	// public
	api.Post("/auth/register", r.Auth.Register)
	api.Post("/auth/login", r.Auth.Login)
	api.Post("/auth/logout", r.Auth.Logout)
	api.Get("/categories", r.Categories.GetCategories)
	api.Get("/gigs", r.Gigs.ListPublic)
	api.Get("/gigs/:id", r.Gigs.GetDetail)
	api.Get("/refdata/:kind", r.RefData.Search)

	// protected (JWT)
	protected := api.Group("/",
		middleware.JWTFromCookie(r.JWTSecret),
		middleware.AttachJWTLocals(),
	)

	protected.Get("/me", r.Auth.Me)

	freelancer := protected.Group("/freelancer", middleware.RequireRoles("freelancer"))

	drafts := freelancer.Group("/gig-drafts")
	drafts.Post("/", r.Drafts.Create)
	drafts.Get("/:id", r.Drafts.Get)
	drafts.Post("/:id/actions", r.Drafts.Dispatch)
	drafts.Get("/:id/validate", r.Drafts.Validate)
	drafts.Post("/:id/cover", r.Drafts.UploadCover)
	drafts.Post("/:id/images", r.Drafts.UploadImage)
	drafts.Post("/:id/submit", r.Drafts.Submit)
	drafts.Delete("/:id", r.Drafts.Delete)

	freelancer.Get("/gigs", r.Gigs.ListMine)
	freelancer.Get("/gigs/:id", r.Gigs.GetOne)
	freelancer.Delete("/gigs/:id", r.Gigs.Delete)

	// admin only
	admin := protected.Group("/admin", middleware.RequireRoles("admin"))
	admin.Get("/gigs", r.Gigs.AdminList)
	admin.Patch("/gigs/:id/status", r.Gigs.AdminSetStatus)

	if r.Realtime != nil {
		app.Get("/ws/gigs",
			middleware.JWTFromCookie(r.JWTSecret),
			middleware.AttachJWTLocals(),
			r.Realtime.Upgrade,
			websocket.New(r.Realtime.Serve),
		)
	}
}
