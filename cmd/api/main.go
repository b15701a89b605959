package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/Windi-Fikriyansyah/gigstudio/internal/config"
	"github.com/Windi-Fikriyansyah/gigstudio/internal/cron"
	"github.com/Windi-Fikriyansyah/gigstudio/internal/db"
	"github.com/Windi-Fikriyansyah/gigstudio/internal/drafts"
	"github.com/Windi-Fikriyansyah/gigstudio/internal/handlers"
	"github.com/Windi-Fikriyansyah/gigstudio/internal/models"
	"github.com/Windi-Fikriyansyah/gigstudio/internal/realtime"
	"github.com/Windi-Fikriyansyah/gigstudio/internal/repository"
	"github.com/Windi-Fikriyansyah/gigstudio/internal/services/drafting"
	"github.com/Windi-Fikriyansyah/gigstudio/internal/storage"
	"github.com/Windi-Fikriyansyah/gigstudio/internal/utils"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	if err := gdb.AutoMigrate(&models.User{}, &models.Gig{}); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := db.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal("[Redis] not reachable: ", err)
	}
	cache := db.NewCache(rdb)

	var (
		store  drafts.Store
		purger cron.Purger
	)
	switch cfg.DraftStore {
	case "memory":
		mem := drafts.NewMemoryStore(cfg.DraftTTL)
		store, purger = mem, mem
		log.Println("[Draft] using in-process session store")
	default:
		store = drafts.NewRedisStore(rdb, cfg.DraftTTL)
	}

	scheduler := cron.NewScheduler(purger)
	if err := scheduler.Start(); err != nil {
		log.Fatal(err)
	}

	hub := realtime.NewHub()
	go hub.Run(ctx)
	notifier := realtime.GigNotifier{Hub: hub}

	ids := utils.IDCodec{Key: cfg.IDEncryptKey}
	gigs := repository.NewGigRepository(gdb)
	users := repository.NewUserRepository(gdb)

	draftSvc := drafting.NewDraftService(
		store,
		gigs,
		storage.NewLocalUploader(cfg.UploadDir, cfg.AppBaseURL),
		notifier,
		ids.Encode,
	)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
		BodyLimit:    storage.DefaultMaxSize + 1<<20,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders:    "Content-Length",
		AllowCredentials: true,
	}))

	app.Options("/*", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	handlers.Mount(app, handlers.Routes{
		JWTSecret: cfg.JWTSecret,
		UploadDir: cfg.UploadDir,
		Auth: &handlers.AuthHandler{
			Users:     users,
			JWTSecret: cfg.JWTSecret,
			Expires:   cfg.JWTExpiresMin,
		},
		Categories: handlers.NewCategoryHandler(gigs, cache, cfg.CategoryCache),
		Gigs:       handlers.NewGigHandler(gigs, ids, notifier, cache),
		Drafts:     handlers.NewGigDraftHandler(draftSvc, ids),
		Realtime:   &handlers.RealtimeHandler{Hub: hub},
	})

	go func() {
		<-ctx.Done()
		log.Println("Shutting down...")
		scheduler.Stop()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("shutdown: %v", err)
		}
		if err := rdb.Close(); err != nil {
			log.Printf("[Redis] close: %v", err)
		}
	}()

	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatal(err)
	}
}
