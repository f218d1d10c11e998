// Package app wires configuration, storage and HTTP routes into a runnable
// storefront.
package app

import (
	"context"
	"database/sql"
	"log/slog"

	"ecom-cart/cache"
	"ecom-cart/config"
	"ecom-cart/controllers"
	"ecom-cart/database"
	"ecom-cart/libs"
	"ecom-cart/repositories"
	"ecom-cart/routes"
	"ecom-cart/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type App struct {
	Router *gin.Engine

	db    *sql.DB
	redis *redis.Client
}

// New connects the database, applies the schema, seeds the catalog and builds
// the router. Redis and SMTP are used only when configured.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := config.ConnectDB(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := database.Migrate(db, cfg.Database.Driver, cfg.Database.URL); err != nil {
		config.CloseDB(db)
		return nil, err
	}

	redisClient := config.ConnectRedis(ctx, cfg.Redis)

	var productCache cache.ProductCache = cache.NopCache{}
	if redisClient != nil {
		productCache = cache.NewRedisCache(redisClient, cfg.Redis.CacheTTL)
	}

	var notifier services.ReceiptNotifier
	if mailer := libs.NewEmailService(cfg.SMTP); mailer != nil {
		notifier = mailer
	} else {
		slog.Info("SMTP not configured, receipts will not be emailed")
	}

	productRepo := repositories.NewProductRepository(db, cfg.Database.Driver)
	cartRepo := repositories.NewCartRepository(db, cfg.Database.Driver)

	productSvc := services.NewProductService(productRepo, productCache)
	if err := productSvc.Seed(ctx); err != nil {
		config.CloseRedis(redisClient)
		config.CloseDB(db)
		return nil, err
	}

	router := routes.NewRouter(routes.Controllers{
		Products: controllers.NewProductController(productSvc),
		Cart:     controllers.NewCartController(services.NewCartService(cartRepo, productRepo)),
		Checkout: controllers.NewCheckoutController(services.NewCheckoutService(cartRepo, notifier)),
	}, cfg.RequestTimeout)

	return &App{
		Router: router,
		db:     db,
		redis:  redisClient,
	}, nil
}

func (a *App) Close() {
	config.CloseRedis(a.redis)
	config.CloseDB(a.db)
}
