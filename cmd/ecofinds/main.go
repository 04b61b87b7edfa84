package main

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"

	"ecofinds/internal/cache"
	"ecofinds/internal/config"
	"ecofinds/internal/http/handlers"
	applog "ecofinds/internal/log"
	"ecofinds/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Redis idempotency guard is a fast path only; run without it when the
	// server is absent (the purchases unique index stays authoritative).
	var guard *cache.IdempotencyGuard
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[warn] redis unreachable at %s, idempotency cache disabled: %v", cfg.RedisAddr, err)
		} else {
			guard = cache.NewIdempotencyGuard(client)
		}
		cancel()
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Log and return a generic body; never leak internals
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "something went wrong, please try again",
			})
		},
	})
	// Global body size guard; admits inline base64 listing images
	app.Server().MaxRequestBodySize = 8 << 20

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/healthz"
		},
	}))

	// ---------- Routes ----------
	deps := handlers.NewDeps(db, cfg.JWTSecret, guard)
	user := handlers.RequireUser(cfg.JWTSecret)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	api := app.Group("/api/v1")

	authAPI := api.Group("/auth")
	authAPI.Post("/register", deps.AuthHandler.Register)
	authAPI.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, try again later"})
		},
	}), deps.AuthHandler.Login)
	authAPI.Get("/me", user, deps.AuthHandler.Me)

	products := api.Group("/products")
	products.Get("/", deps.ProductHandler.List)
	products.Get("/search", limiter.New(limiter.Config{Max: 30, Expiration: time.Minute}), deps.ProductHandler.Search)
	products.Get("/category/:category", deps.ProductHandler.ListByCategory)
	products.Get("/mine", user, deps.ProductHandler.Mine)
	products.Get("/:id", deps.ProductHandler.Detail)
	products.Post("/", user, deps.ProductHandler.Create)
	products.Put("/:id", user, deps.ProductHandler.Update)
	products.Delete("/:id", user, deps.ProductHandler.Delete)

	cart := api.Group("/cart", user)
	cart.Get("/", deps.CartHandler.View)
	cart.Post("/", deps.CartHandler.Add)
	cart.Put("/:productId", deps.CartHandler.UpdateQuantity)
	cart.Delete("/:productId", deps.CartHandler.Remove)
	cart.Delete("/", deps.CartHandler.Clear)

	api.Post("/checkout", user, deps.CheckoutHandler.Place)
	api.Get("/purchases", user, deps.CheckoutHandler.History)

	favorites := api.Group("/favorites", user)
	favorites.Get("/", deps.FavoritesHandler.List)
	favorites.Post("/", deps.FavoritesHandler.Save)
	favorites.Delete("/:productId", deps.FavoritesHandler.Unsave)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
