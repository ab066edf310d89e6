package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
	"github.com/jhoicas/Catalogo-api/internal/domain/query"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
	"github.com/jhoicas/Catalogo-api/internal/infrastructure/cache"
	"github.com/jhoicas/Catalogo-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Catalogo-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Catalogo-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Catalogo-api/internal/infrastructure/sqlite"
	httpRouter "github.com/jhoicas/Catalogo-api/internal/interfaces/http"
	"github.com/jhoicas/Catalogo-api/pkg/config"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

// store repositorios y ciclo de vida del almacenamiento elegido por DB_DRIVER.
type store struct {
	products  repository.ProductRepository
	suppliers repository.SupplierRepository
	tx        usecase.TxRunner
	ping      func(context.Context) error
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStore(ctx, cfg.DB, cfg.App.Env == "development")
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("abrir almacenamiento")
	}
	defer st.close()

	appMetrics := metrics.New()

	// Caché opcional: sin REDIS_ADDR las lecturas van directo al almacenamiento.
	var (
		readRepo = st.products
		evicter  usecase.CacheEvicter
	)
	if cfg.Redis.Enabled() {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible; la caché degradará a BD")
		}
		productCache := cache.NewProductCache(st.products, client, cfg.Cache.TTL, log.Component("cache"), appMetrics)
		readRepo, evicter = productCache, productCache
	}

	limits := query.Limits{DefaultSize: cfg.Catalog.DefaultPageSize, MaxSize: cfg.Catalog.MaxPageSize}
	productUC := usecase.NewProductUseCase(st.tx, readRepo, evicter, infrapdf.NewMarotoCatalogGenerator(), limits)
	supplierUC := usecase.NewSupplierUseCase(st.tx, st.suppliers, st.products, limits)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Catálogo API",
		}))
	} else {
		log.Debug().Str("file", cfg.HTTP.SwaggerFile).Msg("swagger deshabilitado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:  productUC,
		SupplierUC: supplierUC,
		Metrics:    appMetrics,
		Ping:       st.ping,
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

func openStore(ctx context.Context, cfg config.DBConfig, debug bool) (*store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			if err := postgres.RunMigrations(pool); err != nil {
				pool.Close()
				return nil, err
			}
		}
		return &store{
			products:  postgres.NewProductRepository(pool),
			suppliers: postgres.NewSupplierRepository(pool),
			tx:        postgres.NewTxRunner(pool),
			ping:      pool.Ping,
			close:     pool.Close,
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.SQLitePath, debug)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		return &store{
			products:  sqlite.NewProductRepository(db),
			suppliers: sqlite.NewSupplierRepository(db),
			tx:        sqlite.NewTxRunner(db),
			ping:      sqlDB.PingContext,
			close:     func() { _ = sqlite.Close(db) },
		}, nil
	}
	return nil, errors.New("driver de almacenamiento no soportado: " + cfg.Driver)
}
