package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	_ "github.com/lib/pq"
	"golang.org/x/time/rate"

	"wishlist-service/internal/api"
	"wishlist-service/internal/config"
	"wishlist-service/internal/entity"
	"wishlist-service/internal/repository"
	"wishlist-service/internal/service"
	"wishlist-service/migrations"
)

func connectDB(databaseURL string) (*sql.DB, error) {
	var db *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sql.Open("postgres", databaseURL)
		if err == nil {
			err = db.Ping()
			if err == nil {
				log.Printf("Connected to database")
				return db, nil
			}
		}
		log.Printf("Retry %d: failed to connect to database: %v", i+1, err)
		time.Sleep(3 * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to database after retries: %v", err)
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := connectDB(cfg.DatabaseURL)
	if err != nil {
		panic(err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := migrations.AutoMigrate(3, db); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	kafkaWriter := config.NewKafkaWriter(cfg.KafkaBrokers, "wishlist-events")
	events := service.NewEventPublisher(kafkaWriter)

	checker := repository.NewChecker(db)
	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)
	itemCategories := repository.NewCategoryRepository(db, entity.ItemCategory)
	wishlistCategories := repository.NewCategoryRepository(db, entity.WishlistCategory)

	userService := service.NewUserService(userRepo, checker, events)
	itemService := service.NewItemService(itemRepo, itemCategories, checker, events)
	wishlistService := service.NewWishlistService(wishlistRepo, wishlistCategories, checker, events)

	secret := []byte(cfg.JWTSecret)
	authHandler := api.NewAuthHandler(userService, secret)
	userHandler := api.NewUserHandler(userService, wishlistService)
	itemHandler := api.NewItemHandler(itemService)
	wishlistHandler := api.NewWishlistHandler(wishlistService)

	e := echo.New()
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.HTTPErrorHandler

	limiterConfig := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(10),
				Burst:     30,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
	}

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RateLimiterWithConfig(limiterConfig))

	api.RegisterRoutes(e, secret, authHandler, userHandler, itemHandler, wishlistHandler)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
