package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sweetshop/internal/config"
	"sweetshop/internal/database"
	"sweetshop/internal/handlers"
	"sweetshop/internal/middleware"
	"sweetshop/internal/models"
	"sweetshop/internal/pricing"
	"sweetshop/internal/repositories"
	"sweetshop/internal/services"
	"sweetshop/pkg/imagestore"
	"sweetshop/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	app, cleanup, err := NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}
	defer cleanup()

	log.Printf("Starting server on port %s", cfg.AppPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

type stores struct {
	products     repositories.ProductRepository
	orders       repositories.OrderRepository
	transactions repositories.TransactionRepository
	users        repositories.UserRepository
	close        func()
}

// openStores builds the repositories for the configured DB_DRIVER.
func openStores(ctx context.Context, cfg config.Config) (*stores, error) {
	switch cfg.DBDriver {
	case config.DriverMemory:
		s := &stores{
			products:     repositories.NewInMemoryProductRepository(),
			orders:       repositories.NewInMemoryOrderRepository(),
			transactions: repositories.NewInMemoryTransactionRepository(),
			users:        repositories.NewInMemoryUserRepository(),
			close:        func() {},
		}
		seedProducts(ctx, s.products)
		return s, nil

	case config.DriverSQLite, config.DriverPostgres:
		db, err := database.OpenGORM(cfg.DBDriver, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		return &stores{
			products:     repositories.NewGORMProductRepository(db),
			orders:       repositories.NewGORMOrderRepository(db),
			transactions: repositories.NewGORMTransactionRepository(db),
			users:        repositories.NewGORMUserRepository(db),
			close: func() {
				if sqlDB, err := db.DB(); err == nil {
					sqlDB.Close()
				}
			},
		}, nil

	case config.DriverMongo:
		client, err := database.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		mdb := client.Database(cfg.MongoDatabase)
		users := repositories.NewMongoUserRepository(mdb)
		if err := users.EnsureIndexes(ctx); err != nil {
			client.Disconnect(context.Background())
			return nil, err
		}
		return &stores{
			products:     repositories.NewMongoProductRepository(mdb),
			orders:       repositories.NewMongoOrderRepository(mdb),
			transactions: repositories.NewMongoTransactionRepository(mdb),
			users:        users,
			close: func() {
				if err := client.Disconnect(context.Background()); err != nil {
					log.Printf("Error disconnecting MongoDB: %v", err)
				}
			},
		}, nil
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
}

// newImageStore prefers Cloudinary and falls back to the local upload dir,
// in which case the dir is also returned so it can be served.
func newImageStore(cfg config.Config) (imagestore.Store, string, error) {
	if cfg.CloudinaryEnabled() {
		store, err := imagestore.NewCloudinaryStore(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		return store, "", err
	}
	log.Printf("Cloudinary not configured, storing uploads in %s", cfg.UploadDir)
	store, err := imagestore.NewLocalStore(cfg.UploadDir, cfg.BaseURL)
	if err != nil {
		return nil, "", err
	}
	return store, store.Dir(), nil
}

// connectEvents returns nil when RabbitMQ is disabled or unreachable; the
// app then runs without order events.
func connectEvents(cfg config.Config) *rabbitmq.Client {
	if !cfg.RabbitMQEnabled {
		log.Println("RabbitMQ disabled. Order events will not be published.")
		return nil
	}
	client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
	if err != nil {
		log.Printf("Warning: RabbitMQ unavailable, order events will not be published: %v", err)
		return nil
	}
	return client
}

// NewApp wires the configured storage, integrations, services and routes.
// The returned cleanup releases the database and broker connections.
func NewApp(cfg config.Config) (*fiber.App, func(), error) {
	ctx := context.Background()

	st, err := openStores(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	images, uploadDir, err := newImageStore(cfg)
	if err != nil {
		st.close()
		return nil, nil, err
	}

	mqClient := connectEvents(cfg)
	var events services.EventPublisher
	if mqClient != nil {
		events = mqClient
	}

	cleanup := func() {
		if mqClient != nil {
			if err := mqClient.Close(); err != nil {
				log.Printf("Error closing RabbitMQ client: %v", err)
			}
		}
		st.close()
	}

	// --- Initialize Services ---
	calc := pricing.NewCalculator(cfg.ShippingFee)
	authService := services.NewAuthService(st.users, cfg.JWTSecret,
		services.WithAdminEmails(cfg.AdminEmails),
		services.WithRegistration(cfg.AllowRegistration),
	)
	productService := services.NewProductService(st.products, images)
	orderService := services.NewOrderService(st.orders, calc, events)
	cartService := services.NewCartService(st.products, calc)
	checkoutService := services.NewCheckoutService(cartService, orderService, cfg.WhatsAppNumber)
	ledgerService := services.NewLedgerService(st.transactions)

	// --- Initialize Fiber App ---
	// Params and headers end up as ids and map keys in the memory stores
	// and the cart registry, so they must outlive the request.
	app := fiber.New(fiber.Config{
		AppName:      "sweetshop",
		ErrorHandler: jsonErrorHandler,
		Immutable:    true,
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.CORSOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, " + middleware.CartHeader,
		ExposeHeaders: middleware.CartHeader,
	}))

	if uploadDir != "" {
		app.Static(imagestore.URLPrefix, uploadDir)
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": cfg.DBDriver,
			"events":   mqClient != nil,
		})
	})

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")
	handlers.Set{
		Auth:     handlers.NewAuthHandler(authService),
		Products: handlers.NewProductHandler(productService),
		Cart:     handlers.NewCartHandler(cartService),
		Checkout: handlers.NewCheckoutHandler(checkoutService),
		Orders:   handlers.NewOrderHandler(orderService),
		Ledger:   handlers.NewLedgerHandler(ledgerService),
		Upload:   handlers.NewUploadHandler(images),
	}.RegisterRoutes(apiV1, middleware.AuthRequired(authService), middleware.RequireRole(models.RoleAdmin))

	return app, cleanup, nil
}

// jsonErrorHandler renders errors that escape the handlers, such as unknown
// routes, in the same shape as handler errors.
func jsonErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"message": statusMessage(code),
		"error":   err.Error(),
	})
}

func statusMessage(code int) string {
	if code == fiber.StatusNotFound {
		return "Route not found"
	}
	return "Request failed"
}

// seedProducts populates the in-memory catalog so a fresh instance has
// something to browse.
func seedProducts(ctx context.Context, repo repositories.ProductRepository) {
	drafts := []models.ProductDraft{
		{Name: "Chocolate Truffle Cake", Price: decimal.NewFromInt(550), Image: "https://images.sweetshop.local/truffle.jpg", Available: true, Category: "Cakes"},
		{Name: "Butter Croissant", Price: decimal.NewFromInt(90), Image: "https://images.sweetshop.local/croissant.jpg", Available: true, Category: "Pastries"},
		{Name: "Sourdough Loaf", Price: decimal.NewFromInt(220), Image: "https://images.sweetshop.local/sourdough.jpg", Available: true, Category: "Bread"},
		{Name: "Red Velvet Cupcake", Price: decimal.NewFromInt(120), Image: "https://images.sweetshop.local/red-velvet.jpg", Available: false, Category: "Cupcakes"},
	}
	for _, d := range drafts {
		p := models.NewProduct("", d)
		if err := repo.Create(ctx, &p); err != nil {
			log.Printf("Error seeding product %s: %v", d.Name, err)
		} else {
			log.Printf("Seeded product: %s (ID: %s)", p.Name, p.ID)
		}
	}
}
