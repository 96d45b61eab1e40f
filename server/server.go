// Package server assembles the Fiber application from configuration and
// storage.
package server

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/vasanthreddy12/e-commerce/configs"
	cartController "github.com/vasanthreddy12/e-commerce/controllers/cart"
	orderController "github.com/vasanthreddy12/e-commerce/controllers/orders"
	productController "github.com/vasanthreddy12/e-commerce/controllers/products"
	userController "github.com/vasanthreddy12/e-commerce/controllers/user"
	"github.com/vasanthreddy12/e-commerce/middlewares"
	"github.com/vasanthreddy12/e-commerce/payments"
	"github.com/vasanthreddy12/e-commerce/repositories"
	"github.com/vasanthreddy12/e-commerce/responses"
	"github.com/vasanthreddy12/e-commerce/routes"
	"github.com/vasanthreddy12/e-commerce/services"
)

// Services are the application services the routes are bound to.
type Services struct {
	Auth     *services.AuthService
	Products *services.ProductService
	Carts    *services.CartService
	Orders   *services.OrderService
}

func NewServices(cfg configs.Config, stores repositories.Stores, gateway payments.Gateway) Services {
	return Services{
		Auth:     services.NewAuthService(stores, services.AuthConfig{JWTSecret: cfg.JWTSecret, TokenTTL: cfg.JWTTTL}),
		Products: services.NewProductService(stores),
		Carts:    services.NewCartService(stores),
		Orders: services.NewOrderService(stores, gateway, services.OrderConfig{
			KeySecret: cfg.RazorpayKeySecret,
			Currency:  cfg.PaymentCurrency,
		}),
	}
}

// New builds the HTTP application. Every endpoint lives under /api.
func New(cfg configs.Config, svc Services) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "e-commerce",
		ErrorHandler: responses.Error,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins(),
		AllowCredentials: true,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type,Authorization",
	}))

	api := app.Group("/api", limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: cfg.RateLimitWindow,
		LimitReached: func(c *fiber.Ctx) error {
			return responses.Send(c, fiber.StatusTooManyRequests,
				"Too many requests from this IP, please try again later", nil)
		},
	}))
	loginLimiter := limiter.New(limiter.Config{
		Max:        cfg.LoginRateLimitMax,
		Expiration: cfg.RateLimitWindow,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "-" + c.Path()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return responses.Send(c, fiber.StatusTooManyRequests,
				"Too many login attempts. Please try again later.", nil)
		},
	})

	protect := middlewares.Protect(svc.Auth)
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	routes.HealthRoute(api, time.Now())
	routes.UserRoute(api, userController.New(svc.Auth, timeout), protect, loginLimiter)
	routes.ProductsRoute(api, productController.New(svc.Products, timeout), protect)
	routes.CartRoutes(api, cartController.New(svc.Carts, timeout), protect)
	routes.OrderRoutes(api, orderController.New(svc.Orders, cfg.RazorpayKeyID, timeout), protect)

	return app
}

// Bootstrap opens the configured store. The returned close func releases it.
func Bootstrap(ctx context.Context, cfg configs.Config) (repositories.Stores, func(context.Context) error, error) {
	switch cfg.StoreDriver {
	case configs.DriverMemory:
		log.Warn("Using the in-memory store; data is lost on restart")
		return repositories.NewMemoryStores(), func(context.Context) error { return nil }, nil
	case configs.DriverMongo:
		client, err := configs.ConnectDB(ctx, cfg.MongoURI)
		if err != nil {
			return repositories.Stores{}, nil, err
		}
		db := client.Database(cfg.MongoDatabase)
		if err := repositories.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return repositories.Stores{}, nil, err
		}
		return repositories.NewMongoStores(db), client.Disconnect, nil
	default:
		return repositories.Stores{}, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
