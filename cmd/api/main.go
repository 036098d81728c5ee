package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/negocio-api/internal/application/usecase"
	"github.com/jhoicas/negocio-api/internal/domain/entity"
	"github.com/jhoicas/negocio-api/internal/domain/repository"
	"github.com/jhoicas/negocio-api/internal/domain/store"
	"github.com/jhoicas/negocio-api/internal/infrastructure/postgres"
	"github.com/jhoicas/negocio-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/negocio-api/internal/interfaces/http"
	"github.com/jhoicas/negocio-api/pkg/config"
	"github.com/jhoicas/negocio-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	kv, cleanup, err := buildKV(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("colaborador de almacenamiento durable")
	}
	defer cleanup()

	// Stores construidos una sola vez al arrancar y pasados por referencia:
	// sin singletons ni re-inicialización escondida.
	itemStore := store.New(store.Options[entity.Item]{
		GetID: func(i entity.Item) string { return i.ID },
		SetID: func(i *entity.Item, id string) { i.ID = id },
	})
	categoryStore := store.New(store.Options[entity.Category]{
		GetID: func(c entity.Category) string { return c.ID },
		SetID: func(c *entity.Category, id string) { c.ID = id },
	})
	customerStore := store.New(store.Options[entity.Customer]{
		GetID: func(c entity.Customer) string { return c.ID },
		SetID: func(c *entity.Customer, id string) { c.ID = id },
	})

	catalogUC := usecase.NewCatalogUseCase(itemStore, categoryStore, kv)
	customerUC := usecase.NewCustomerUseCase(customerStore, kv)

	if err := catalogUC.Hydrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("hidratar catálogo")
	}
	if err := customerUC.Hydrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("hidratar clientes")
	}
	log.Info().
		Int("items", itemStore.Len()).
		Int("categories", categoryStore.Len()).
		Int("customers", customerStore.Len()).
		Msg("estado cargado")

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Negocio API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC:  catalogUC,
		CustomerUC: customerUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// buildKV construye el colaborador clave-valor según el driver configurado y
// devuelve la función de cierre de recursos.
func buildKV(ctx context.Context, cfg *config.Config) (repository.KeyValueStore, func(), error) {
	switch cfg.Storage.Driver {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, nil, err
		}
		return storage.NewRedisStore(client), func() { client.Close() }, nil
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		kv, err := postgres.NewKVStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return kv, pool.Close, nil
	case "memory":
		return storage.NewMemoryStore(), func() {}, nil
	default: // sqlite
		kv, err := storage.NewSQLiteStore(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return kv, func() { kv.Close() }, nil
	}
}
