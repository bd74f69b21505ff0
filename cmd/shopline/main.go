package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"shopline/internal/config"
	"shopline/internal/http/handlers"
	applog "shopline/internal/log"
	"shopline/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	// Explicit one-shot seeding before any request is served.
	if err := repos.Seed(db); err != nil {
		log.Fatal(err)
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 8 << 20, // uploads are capped at 5 MiB below this
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Internal Server Error",
			})
		},
	})

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Authorization",
	}))

	deps, err := handlers.NewDeps(db, cfg)
	if err != nil {
		log.Fatal(err)
	}
	requireUser := handlers.RequireUser(deps.Auth)
	requireAdmin := handlers.RequireAdmin(deps.Auth)

	api := app.Group("/api")

	// Users
	users := api.Group("/users")
	users.Post("/register", deps.UserHandler.Register)
	users.Post("/signin", limiter.New(limiter.Config{
		Max:        10,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.signin.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"message": "too many attempts, retry soon"})
		},
	}), deps.UserHandler.SignIn)
	users.Put("/:id", requireUser, deps.UserHandler.Update)

	// Products & reviews
	products := api.Group("/products")
	products.Get("/", deps.ProductHandler.List)
	products.Get("/:id", deps.ProductHandler.Get)
	products.Post("/", requireAdmin, deps.ProductHandler.Create)
	products.Put("/:id", requireAdmin, deps.ProductHandler.Update)
	products.Delete("/:id", requireAdmin, deps.ProductHandler.Delete)
	products.Post("/:id/reviews", requireUser, deps.ProductHandler.AddReview)

	// Orders
	orders := api.Group("/orders")
	orders.Get("/", requireAdmin, deps.OrderHandler.List)
	orders.Get("/mine", requireUser, deps.OrderHandler.Mine)
	orders.Get("/:id", requireUser, deps.OrderHandler.Get)
	orders.Post("/", requireUser, deps.OrderHandler.Create)
	orders.Put("/:id/pay", requireUser, deps.OrderHandler.Pay)
	orders.Put("/:id/deliver", requireAdmin, deps.OrderHandler.Deliver)
	orders.Delete("/:id", requireAdmin, deps.OrderHandler.Delete)

	// Uploads
	api.Post("/uploads", requireAdmin, deps.UploadHandler.Local)
	api.Post("/uploads/s3", requireAdmin, deps.UploadHandler.S3Upload)

	api.Get("/config/paypal", func(c *fiber.Ctx) error {
		return c.SendString(cfg.PayPalClient)
	})

	// ---------- Static assets ----------
	app.Static("/uploads", cfg.UploadDir)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Not Found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
