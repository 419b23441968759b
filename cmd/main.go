package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ArtemGolubev/medshop-service/internal/app"
	"github.com/ArtemGolubev/medshop-service/internal/config"
	"github.com/ArtemGolubev/medshop-service/internal/entities"
	"github.com/ArtemGolubev/medshop-service/internal/events"
	"github.com/ArtemGolubev/medshop-service/internal/handler"
	"github.com/ArtemGolubev/medshop-service/internal/postgres"
	"github.com/ArtemGolubev/medshop-service/internal/repo"
	"github.com/ArtemGolubev/medshop-service/internal/service"
	"github.com/ArtemGolubev/medshop-service/pkg/cache"
	"github.com/ArtemGolubev/medshop-service/pkg/trm"

	"github.com/joho/godotenv"
)

// @title           MedShop Service API
// @version         1.0
// @description     HTTP API аптечного маркетплейса: каталог, корзина, заказы
func main() {
	conf := config.New()
	logger := newLogger(conf.Env)
	panicIfErr("invalid config", conf.Validate())

	var (
		orderRepo   service.OrderRepo
		catalogRepo service.CatalogRepo
		txManager   trm.Manager
		closers     []app.Closer
	)

	switch conf.Storage.Driver {
	case "postgres":
		db, err := postgres.New(conf.Postgres)
		panicIfErr("failed to connect to db", err)
		logger.Info("postgres connected")

		orderRepo = repo.NewPostgresOrderRepo(db)
		catalogRepo = repo.NewPostgresCatalogRepo(db)
		txManager = trm.NewManager(db)
		closers = append(closers, db)
	default:
		store := repo.NewMemoryStore()
		repo.Seed(store)
		logger.Info("memory store seeded with demo catalog")

		orderRepo = store
		catalogRepo = store
		txManager = trm.NewNop()
	}

	var publisher service.EventPublisher = events.NewNop()
	if conf.Kafka.Enabled {
		kafkaPublisher := events.NewKafkaPublisher(logger, conf.Kafka)
		closers = append(closers, kafkaPublisher)
		publisher = kafkaPublisher
	}

	orderCache := cache.NewLRU[entities.Order](conf.Cache.Capacity, conf.Cache.TTL)

	orderService := service.NewOrderService(logger, txManager, orderRepo, orderCache, publisher, conf.Pricing)
	cartService := service.NewCartService(logger, catalogRepo, repo.NewCartStore())
	catalogService := service.NewCatalogService(logger, catalogRepo)

	handler.RegisterMetrics()
	httpHandler := handler.NewHTTPHandler(logger, orderService, cartService, catalogService)

	app := app.New(logger, conf)
	app.SetHTTPHandlers(httpHandler)
	app.SetStarters(orderCache, cacheWarmUpAdapter{svc: orderService, count: conf.Cache.Capacity})
	app.SetClosers(closers...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	app.Start(ctx)
	<-ctx.Done()
	panicIfErr("failed to stop app", app.Stop())
}

func init() {
	godotenv.Load()
}

func newLogger(env string) *slog.Logger {
	switch env {
	case "production":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func panicIfErr(prefix string, err error) {
	if err != nil {
		panic(prefix + ": " + err.Error())
	}
}

type warmUpper interface {
	WarmUpCache(ctx context.Context, count int) error
}

type cacheWarmUpAdapter struct {
	svc   warmUpper
	count int
}

func (a cacheWarmUpAdapter) Start(ctx context.Context) error {
	return a.svc.WarmUpCache(ctx, a.count)
}
