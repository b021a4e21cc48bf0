package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/autopublish-api/internal/application/auth"
	"github.com/jhoicas/autopublish-api/internal/application/usecase"
	"github.com/jhoicas/autopublish-api/internal/domain/repository"
	"github.com/jhoicas/autopublish-api/internal/infrastructure/memory"
	"github.com/jhoicas/autopublish-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/autopublish-api/internal/infrastructure/redis"
	"github.com/jhoicas/autopublish-api/internal/infrastructure/sqlite"
	httpRouter "github.com/jhoicas/autopublish-api/internal/interfaces/http"
	"github.com/jhoicas/autopublish-api/pkg/config"
	"github.com/jhoicas/autopublish-api/pkg/logger"
)

// store repositorios de la base elegida y su cierre.
type store struct {
	users repository.UserRepository
	sites repository.SiteRepository
	close func()
}

func openStore(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			if err := sqlite.Migrate(ctx, db); err != nil {
				db.Close()
				return nil, err
			}
		}
		log.Info().Str("path", cfg.SQLitePath).Msg("usando SQLite")
		return &store{
			users: sqlite.NewUserRepository(db),
			sites: sqlite.NewSiteRepository(db),
			close: func() { db.Close() },
		}, nil
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, err
			}
		}
		log.Info().Msg("usando PostgreSQL")
		return &store{
			users: postgres.NewUserRepository(pool),
			sites: postgres.NewSiteRepository(pool),
			close: pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("DB_DRIVER no soportado: %q", cfg.Driver)
}

// newDenyList usa Redis si REDIS_URL está configurado; si no, memoria del proceso.
func newDenyList(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (auth.TokenDenyList, func(), error) {
	if cfg.URL == "" {
		log.Warn().Msg("REDIS_URL vacío: tokens revocados en memoria (no se comparten entre instancias)")
		return memory.NewTokenDenyList(), func() {}, nil
	}
	client, err := infraredis.NewClient(ctx, cfg.URL)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Msg("tokens revocados en Redis")
	return infraredis.NewTokenDenyList(client), func() { client.Close() }, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStore(ctx, cfg.DB, log.Named("db"))
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a la base de datos")
	}
	defer st.close()

	denyList, closeDenyList, err := newDenyList(ctx, cfg.Redis, log.Named("redis"))
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer closeDenyList()

	authUC := auth.NewAuthUseCase(st.users, denyList, auth.Config{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	siteUC := usecase.NewSiteUseCase(st.sites)
	dashboardUC := usecase.NewDashboardUseCase(st.sites)

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
		Title:    "AutoPublish API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		SiteUC:      siteUC,
		DashboardUC: dashboardUC,
		Users:       st.users,
		Metrics:     httpRouter.NewHTTPMetrics(cfg.App.Name),
		RateLimit:   cfg.RateLimit,
		Log:         log,
		ServiceName: cfg.App.Name,
		DevMode:     cfg.App.IsDevelopment(),
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
