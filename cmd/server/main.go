package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Skotchmaster/product_catalog/internal/config"
	"github.com/Skotchmaster/product_catalog/internal/db"
	"github.com/Skotchmaster/product_catalog/internal/events"
	"github.com/Skotchmaster/product_catalog/internal/httpserver"
	"github.com/Skotchmaster/product_catalog/internal/logging"
	authmw "github.com/Skotchmaster/product_catalog/internal/middleware/auth"
	"github.com/Skotchmaster/product_catalog/internal/middleware/ratelimit"
	"github.com/Skotchmaster/product_catalog/internal/repo"
	"github.com/Skotchmaster/product_catalog/internal/search"
	"github.com/Skotchmaster/product_catalog/internal/service"
	"github.com/Skotchmaster/product_catalog/internal/session"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")

	logger := logging.New(cfg.LogLevel).With("service", "product_catalog")
	slog.SetDefault(logger)

	appCtx, stopApp := context.WithCancel(context.Background())
	defer stopApp()

	ctx, cancel := context.WithTimeout(appCtx, 10*time.Second)
	gdb, err := db.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	var extra []any
	if cfg.SessionStore == config.SessionStoreDB {
		extra = append(extra, &session.Record{})
	}
	if err := db.Migrate(appCtx, gdb, extra...); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	store, rdb, err := newSessionStore(appCtx, cfg, gdb)
	if err != nil {
		log.Fatalf("session store: %v", err)
	}
	sessions := session.NewManager(store, cfg.SessionTTL)
	if len(cfg.SessionSigningKey) == 0 {
		logger.Warn("session_cookie_unsigned", "reason", "SESSION_SIGNING_KEY is empty")
	}
	authMW := authmw.New(sessions, session.NewCookieCodec(cfg.SessionSigningKey), cfg.CookieSecure)

	var publisher events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers)
		logger.Info("kafka_enabled", "brokers", cfg.KafkaBrokers)
	}

	r := repo.New(gdb)
	catalog := &service.CatalogService{Repo: r, Events: publisher}
	if cfg.ESURL != "" {
		idx, err := newSearchIndex(appCtx, cfg)
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		catalog.Index = idx
	}

	authSvc := &service.AuthService{
		Users:            r,
		Sessions:         sessions,
		Events:           publisher,
		AllowAdminSignup: cfg.AllowAdminSignup,
	}
	categorySvc := &service.CategoryService{Repo: r}

	if created, err := authSvc.EnsureAdmin(appCtx, cfg.DefaultAdminEmail, cfg.DefaultAdminPassword); err != nil {
		log.Fatalf("default admin: %v", err)
	} else if created {
		logger.Info("default_admin_created", "email", cfg.DefaultAdminEmail)
	}
	if n, err := categorySvc.EnsureDefaults(appCtx); err != nil {
		log.Fatalf("default categories: %v", err)
	} else if n > 0 {
		logger.Info("default_categories_created", "count", n)
	}

	checks := map[string]httpserver.Check{
		"database": func(ctx context.Context) error { return db.Ping(ctx, gdb) },
	}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	e := httpserver.NewEcho(httpserver.Options{
		Logger:       logger,
		CORSOrigins:  cfg.CORSOrigins,
		BodyLimit:    cfg.BodyLimit,
		CSRF:         cfg.CSRFEnabled,
		CookieSecure: cfg.CookieSecure,
	})
	httpserver.Register(e, &httpserver.Deps{
		Products:   &httpserver.ProductHTTP{Svc: catalog},
		Auth:       &httpserver.AuthHTTP{Svc: authSvc, MW: authMW},
		Cart:       &httpserver.CartHTTP{Svc: &service.CartService{Repo: r, Events: publisher}},
		Admin:      &httpserver.AdminHTTP{Svc: &service.AdminService{Repo: r}},
		Categories: &httpserver.CategoryHTTP{Svc: categorySvc},
		Health:     &httpserver.HealthHTTP{Checks: checks},
		AuthMW:     authMW,
		AuthLimiter: ratelimit.New(ratelimit.Config{
			Rate:  cfg.AuthRateLimit,
			Burst: cfg.AuthRateBurst,
		}),
	})

	srv := httpserver.NewHTTPServer(fmt.Sprintf(":%d", cfg.ServerPort), e)

	go func() {
		log.Printf("product catalog listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	stopApp()

	if err := publisher.Close(); err != nil {
		log.Printf("kafka close: %v", err)
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Printf("redis close: %v", err)
		}
	}
	if err := db.Close(gdb); err != nil {
		log.Printf("db close: %v", err)
	}

	log.Println("product catalog stopped")
}

// newSessionStore returns the configured store. The redis client is non-nil
// only for the redis backend.
func newSessionStore(ctx context.Context, cfg config.Config, gdb *gorm.DB) (session.Store, *redis.Client, error) {
	switch cfg.SessionStore {
	case config.SessionStoreMemory, "":
		st := session.NewMemoryStore()
		go st.Run(ctx, time.Minute)
		return st, nil, nil

	case config.SessionStoreRedis:
		config.MustNonEmpty(cfg.RedisAddr, "REDIS_ADDR")
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		return session.NewRedisStore(rdb, cfg.RedisPrefix), rdb, nil

	case config.SessionStoreDB:
		st := session.NewGormStore(gdb)
		go st.Run(ctx, 10*time.Minute)
		return st, nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown SESSION_STORE %q", cfg.SessionStore)
	}
}

func newSearchIndex(ctx context.Context, cfg config.Config) (*search.Client, error) {
	idx, err := search.NewClient(search.Config{
		URL:      cfg.ESURL,
		Username: cfg.ESUser,
		Password: cfg.ESPassword,
		Index:    cfg.ESIndex,
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := idx.EnsureIndex(ctx); err != nil {
		slog.Warn("search_index_unavailable", "index", idx.Index(), "error", err)
	}
	return idx, nil
}
