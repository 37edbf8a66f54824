package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"catalogo/internal/cache"
	"catalogo/internal/handlers"
	"catalogo/internal/middleware"
	"catalogo/internal/models"
	"catalogo/internal/repositories"
	"catalogo/internal/services"
	"catalogo/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_DSN", "catalogo.db")
	viper.SetDefault("ADMIN_TOKEN", "")
	viper.SetDefault("ADMIN_TOKEN_BCRYPT", "")
	viper.SetDefault("CACHE_TTL", "120s")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")

	// --- Remote store ---
	productRepo, categoryRepo, err := openStore(
		viper.GetString("DATABASE_DRIVER"),
		viper.GetString("DATABASE_DSN"),
	)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}

	// --- Event publisher (optional) ---
	var publisher services.EventPublisher
	if url := viper.GetString("RABBITMQ_URL"); url != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: url})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		publisher = mqClient
	} else {
		log.Println("RABBITMQ_URL not set, catalog event publishing disabled")
	}

	// --- Service and HTTP app ---
	productCache := cache.New(viper.GetDuration("CACHE_TTL"))
	catalog := services.NewCatalogService(productRepo, categoryRepo, productCache, publisher)

	app := newApp(catalog, viper.GetString("ADMIN_TOKEN"), viper.GetString("ADMIN_TOKEN_BCRYPT"))

	// --- Start HTTP server with graceful shutdown ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// newApp builds the Fiber app with all routes wired. Admin-gated write
// routes check the static admin credential.
func newApp(catalog *services.CatalogService, adminToken, adminTokenBcrypt string) *fiber.App {
	app := fiber.New()

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	admin := middleware.AdminRequired(adminToken, adminTokenBcrypt)

	apiV1 := app.Group("/api/v1")
	handlers.NewProductHandler(catalog).RegisterRoutes(apiV1, admin)
	handlers.NewCategoryHandler(catalog).RegisterRoutes(apiV1, admin)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app
}

// openStore opens the configured remote store and returns the two
// repositories. The memory driver runs without a database, mirroring the
// mock-backed bootstrap used in tests.
func openStore(driver, dsn string) (repositories.ProductRepository, repositories.CategoryRepository, error) {
	var (
		db  *gorm.DB
		err error
	)
	switch driver {
	case "memory":
		return repositories.NewMemoryProductRepository(), repositories.NewMemoryCategoryRepository(), nil
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	case "postgres":
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		return nil, nil, fmt.Errorf("unknown DATABASE_DRIVER %q", driver)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}

	if err := db.AutoMigrate(&models.Product{}, &models.Category{}); err != nil {
		return nil, nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return repositories.NewGORMProductRepository(db), repositories.NewGORMCategoryRepository(db), nil
}
