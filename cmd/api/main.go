package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	goredis "github.com/redis/go-redis/v9"
	"github.com/tu-usuario/punto-venta/internal/application/auth"
	"github.com/tu-usuario/punto-venta/internal/application/inventory"
	"github.com/tu-usuario/punto-venta/internal/application/product"
	"github.com/tu-usuario/punto-venta/internal/application/reports"
	"github.com/tu-usuario/punto-venta/internal/application/sales"
	"github.com/tu-usuario/punto-venta/internal/application/session"
	"github.com/tu-usuario/punto-venta/internal/infrastructure/postgres"
	infraredis "github.com/tu-usuario/punto-venta/internal/infrastructure/redis"
	httpRouter "github.com/tu-usuario/punto-venta/internal/interfaces/http"
	"github.com/tu-usuario/punto-venta/pkg/config"
	"github.com/tu-usuario/punto-venta/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	movRepo := postgres.NewInventoryMovementRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Sesiones: Redis en producción; sin REDIS_ADDR cae al store en memoria.
	var sessions session.Store
	if cfg.Redis.Addr != "" {
		rdb := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		sessions = infraredis.NewSessionStore(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("sesiones en Redis")
	} else {
		sessions = session.NewMemoryStore()
		log.Warn().Msg("REDIS_ADDR ausente: sesiones en memoria")
	}

	inventoryUC := inventory.NewUseCase(txRunner, productRepo, movRepo)
	salesUC := sales.NewUseCase(txRunner, inventoryUC, productRepo, saleRepo)
	productUC := product.NewUseCase(txRunner, productRepo)
	reportsUC := reports.NewUseCase(reportRepo)
	authUC := auth.NewUseCase(userRepo, sessions, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		InventoryUC: inventoryUC,
		SalesUC:     salesUC,
		ReportsUC:   reportsUC,
		Sessions:    sessions,
		JWTSecret:   cfg.JWT.Secret,
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
