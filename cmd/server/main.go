package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"softveda-site/internal/archive"
	"softveda-site/internal/auth"
	"softveda-site/internal/config"
	apphttp "softveda-site/internal/http"
	"softveda-site/internal/metrics"
	"softveda-site/internal/repository/sqldb"
	"softveda-site/internal/service"
	"softveda-site/internal/session"
	"softveda-site/internal/storage"
)

const sweepInterval = time.Minute

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("invalid config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warnf("unknown log level %q, keeping %s", cfg.Log.Level, logger.GetLevel())
	}
	if cfg.Auth.AdminSecret == "" {
		logger.Warn("auth admin secret is empty, admin bootstrap is disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqldb.Open(ctx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	applied, err := sqldb.Migrate(ctx, db)
	if err != nil {
		logger.Fatalf("migrate database: %v", err)
	}
	logger.Infof("database ready (%s, %d migrations applied)", db.Dialect(), len(applied))

	userRepo := sqldb.NewUserRepository(db)
	adminRepo := sqldb.NewAdminRepository(db)
	contactRepo := sqldb.NewContactRepository(db)

	authService := service.NewAuthService(userRepo, adminRepo, auth.NewBcryptHasher(), cfg.Auth.AdminSecret, logger)
	directoryService := service.NewDirectoryService(userRepo, adminRepo)
	contactService := service.NewContactService(contactRepo)

	sessions, closeSessions, err := buildSessionStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("setup sessions: %v", err)
	}
	defer closeSessions()

	cookies, err := session.NewCookieCodec(cfg.Session.Secret)
	if err != nil {
		logger.Fatalf("setup session cookies: %v", err)
	}

	var archiver archive.Manager
	if cfg.Storage.Bucket != "" {
		storageSvc, err := buildStorage(ctx, cfg, logger)
		if err != nil {
			logger.Fatalf("setup storage: %v", err)
		}
		archiver = archive.NewManager(archive.Config{
			Bucket:        cfg.Storage.Bucket,
			KeyPrefix:     cfg.Storage.KeyPrefix,
			MaxConcurrent: cfg.Archive.MaxConcurrent,
			Logger:        logger,
		}, contactService, storageSvc)
		if err := archiver.Start(ctx); err != nil {
			logger.Fatalf("start archiver: %v", err)
		}
		if err := archiver.Resume(ctx); err != nil {
			logger.Warnf("resume archive jobs: %v", err)
		}
	} else {
		logger.Info("storage bucket not set, contact archiving disabled")
	}

	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		metricsHandler = metrics.Handler(metrics.NewRegistry())
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(apphttp.Deps{
		Auth:      authService,
		Directory: directoryService,
		Contacts:  contactService,
		Archiver:  archiver,
		Sessions:  sessions,
		Cookies:   cookies,
		Cookie: apphttp.CookieOptions{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.Secure,
			TTL:    cfg.SessionTTL(),
		},
		Web: apphttp.WebDirs{
			PublicDir: cfg.Web.PublicDir,
			ViewsDir:  cfg.Web.ViewsDir,
		},
		Metrics: metricsHandler,
		Logger:  logger,
	})
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}
	if archiver != nil {
		archiver.Shutdown()
	}

	logger.Info("bye")
}

func buildSessionStore(ctx context.Context, cfg config.Config, logger *logrus.Logger) (session.Store, func(), error) {
	ttl := cfg.SessionTTL()
	if cfg.Session.Backend != "redis" {
		store := session.NewMemoryStore(ttl)
		store.StartSweeper(ctx, sweepInterval)
		logger.Infof("using in-memory sessions (ttl %s)", ttl)
		return store, func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	store := session.NewRedisStore(client, cfg.Redis.Prefix, ttl)
	if err := store.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}
	logger.Infof("using redis sessions at %s (ttl %s)", cfg.Redis.Addr, ttl)
	return store, func() { _ = client.Close() }, nil
}

func buildStorage(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.Service, error) {
	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Storage.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})
	logger.Infof("archiving contacts to s3 bucket %s (region %s)", cfg.Storage.Bucket, cfg.Storage.Region)
	return storage.NewS3Service(client), nil
}
