package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"learnhub/config"
	"learnhub/internal/admin"
	"learnhub/internal/dashboard"
	"learnhub/internal/domain"
	"learnhub/internal/infrastructure/cache"
	"learnhub/internal/infrastructure/repository"
	"learnhub/internal/infrastructure/security"
	"learnhub/internal/middleware"
	"learnhub/internal/render"
	grpc_server "learnhub/internal/transport/grpc"
	handlers "learnhub/internal/transport/http"
)

const catalogCacheTTL = 10 * time.Minute

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Config load failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var rdb *redis.Client
	if cfg.UseRedis() {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		log.Println("Connected to Redis at", cfg.RedisAddr)
		defer rdb.Close()
	}

	catalog, err := loadCatalog(ctx, cfg, rdb)
	if err != nil {
		log.Fatalf("Catalog load failed: %v", err)
	}
	log.Printf("Catalog ready: %d steps, %d videos, %d resource groups",
		len(catalog.Roadmap), len(catalog.Videos), len(catalog.Resources))

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Printf("Unknown timezone %q, using UTC: %v", cfg.Timezone, err)
		loc = time.UTC
	}

	renderer, err := render.New()
	if err != nil {
		log.Fatalf("Templates failed: %v", err)
	}

	sessions := dashboard.NewSessions(catalog, cfg.SessionIdleTimeout).WithLimit(cfg.MaxSessions)
	go sessions.Run(ctx, time.Minute)

	var limiter *middleware.RateLimiter
	if rdb != nil {
		limiter = middleware.NewRateLimiter(rdb)
	}

	router := handlers.NewRouter(handlers.RouterDeps{
		Sessions:       sessions,
		Tokens:         security.NewSessionTokens(cfg.SessionSecret, cfg.SessionIdleTimeout),
		Decorator:      admin.NewDecorator(),
		Limiter:        limiter,
		ToggleLimit:    cfg.ToggleRateLimit,
		Dashboard:      handlers.NewDashboardHandler(sessions, renderer, cfg.MediaDir, loc),
		Admin:          handlers.NewAdminHandler(sessions, renderer),
		MediaDir:       cfg.MediaDir,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("Dashboard running on %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	var health *grpc_server.HealthServer
	if cfg.GRPCPort != "" {
		lis, err := net.Listen("tcp", cfg.GRPCPort)
		if err != nil {
			log.Fatalf("Listen failed: %v", err)
		}
		health = grpc_server.NewHealthServer()
		go func() {
			log.Printf("gRPC health running on %s", cfg.GRPCPort)
			if err := health.Server().Serve(lis); err != nil {
				log.Printf("gRPC server stopped: %v", err)
			}
		}()
	}

	<-ctx.Done()
	log.Println("Shutting down")

	if health != nil {
		health.Shutdown()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown failed: %v", err)
	}
}

// loadCatalog reads the catalog from postgres, seeding it on first run.
// Without a database the built-in catalog is used.
func loadCatalog(ctx context.Context, cfg config.Config, rdb *redis.Client) (domain.Catalog, error) {
	if !cfg.UseDatabase() {
		log.Println("DB_HOST not set, using built-in catalog")
		return dashboard.DefaultCatalog(), nil
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("connect db: %w", err)
	}

	var catalogCache *cache.CatalogCache
	if rdb != nil {
		catalogCache = cache.NewCatalogCache(rdb, catalogCacheTTL)
	}
	repo := repository.NewCatalogRepository(db, catalogCache)

	if err := repo.Migrate(ctx); err != nil {
		return domain.Catalog{}, fmt.Errorf("migrate: %w", err)
	}
	seeded, err := repo.Seed(ctx, dashboard.DefaultCatalog())
	if err != nil {
		return domain.Catalog{}, err
	}
	if seeded {
		log.Println(">>> DB Seeded with default catalog")
	}

	return repo.LoadOr(ctx, dashboard.DefaultCatalog())
}
