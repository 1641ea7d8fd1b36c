package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hyun090116/vortex-game-explorer/api/routes"
	"github.com/hyun090116/vortex-game-explorer/internal/auth"
	cartsvc "github.com/hyun090116/vortex-game-explorer/internal/cart"
	checkoutsvc "github.com/hyun090116/vortex-game-explorer/internal/checkout"
	gamesvc "github.com/hyun090116/vortex-game-explorer/internal/games"
	newssvc "github.com/hyun090116/vortex-game-explorer/internal/news"
	postsvc "github.com/hyun090116/vortex-game-explorer/internal/posts"
	purchasesvc "github.com/hyun090116/vortex-game-explorer/internal/purchases"
	usersvc "github.com/hyun090116/vortex-game-explorer/internal/users"
	"github.com/hyun090116/vortex-game-explorer/pkg/auth/session"
	"github.com/hyun090116/vortex-game-explorer/pkg/config"
	"github.com/hyun090116/vortex-game-explorer/pkg/db"
	"github.com/hyun090116/vortex-game-explorer/pkg/logger"
	"github.com/hyun090116/vortex-game-explorer/pkg/metrics"
	"github.com/hyun090116/vortex-game-explorer/pkg/migrate"
	"github.com/hyun090116/vortex-game-explorer/pkg/outbox"
	"github.com/hyun090116/vortex-game-explorer/pkg/redis"
	"github.com/hyun090116/vortex-game-explorer/pkg/toss"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       usersvc.NewRepository(dbClient.DB()),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		DB:             dbClient,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create register service", err)
		os.Exit(1)
	}

	usersService, err := usersvc.NewService(usersvc.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	gamesService, err := gamesvc.NewService(gamesvc.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create games service", err)
		os.Exit(1)
	}

	cartService, err := cartsvc.NewService(redisClient, cfg.Cart)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	tossClient, err := toss.NewClient(cfg.Toss, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create toss client", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(checkoutsvc.ServiceParams{
		TxRunner:     dbClient,
		Cart:         cartService,
		Store:        redisClient,
		Confirmer:    tossClient,
		Materializer: gamesvc.NewMaterializer(logg),
		Outbox:       outbox.NewService(outbox.NewRepository(dbClient.DB()), logg),
		Customers:    usersvc.NewRepository(dbClient.DB()),
		Logger:       logg,

		TossClientKey:  cfg.Toss.ClientKey,
		PurchasesTopic: cfg.PubSub.PurchasesTopic,
		Checkout:       cfg.Checkout,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	purchasesService, err := purchasesvc.NewService(purchasesvc.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create purchases service", err)
		os.Exit(1)
	}

	postsService, err := postsvc.NewService(postsvc.NewRepository(dbClient.DB()), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create posts service", err)
		os.Exit(1)
	}

	newsService, err := newssvc.NewService(newssvc.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create news service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	handler := routes.NewRouter(routes.Deps{
		Config:      cfg,
		Logger:      logg,
		DB:          dbClient,
		Redis:       redisClient,
		Sessions:    sessionManager,
		HTTPMetrics: metrics.NewHTTPMetrics(registry),
		Metrics:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),

		Auth:      authService,
		Register:  registerService,
		Users:     usersService,
		Games:     gamesService,
		Cart:      cartService,
		Checkout:  checkoutService,
		Purchases: purchasesService,
		Posts:     postsService,
		News:      newsService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutdown signal received, draining connections")
		drainCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(drainCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}

	logg.Info(ctx, "api server stopped")
}
