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
	"github.com/sirupsen/logrus"

	"bloglist/internal/auth"
	"bloglist/internal/config"
	apphttp "bloglist/internal/http"
	"bloglist/internal/repository"
	"bloglist/internal/repository/mongodb"
	"bloglist/internal/repository/sqlite"
	"bloglist/internal/service"
	"bloglist/internal/storage"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warnf("unknown log level %q, keeping %s", cfg.Log.Level, logger.GetLevel())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	userRepo, blogRepo, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("open store: %v", err)
	}
	defer closeStore()

	userService := service.NewUserService(userRepo, blogRepo, cfg.Auth.BCryptCost)
	blogService := service.NewBlogService(blogRepo, userRepo)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)

	var storageSvc storage.Service
	if cfg.Storage.Bucket != "" {
		storageSvc, err = buildStorage(ctx, cfg, logger)
		if err != nil {
			logger.Fatalf("setup storage: %v", err)
		}
	} else {
		logger.Info("no storage bucket configured, snapshots disabled")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(apphttp.Config{
		Blogs:            blogService,
		Users:            userService,
		Tokens:           tokens,
		Storage:          storageSvc,
		Bucket:           cfg.Storage.Bucket,
		KeyPrefix:        cfg.Storage.KeyPrefix,
		OwnerUpdatesOnly: cfg.Auth.OwnerUpdatesOnly,
		Logger:           logger,
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

	logger.Info("bye")
}

func openStore(ctx context.Context, cfg config.Config, logger *logrus.Logger) (repository.UserRepository, repository.BlogRepository, func(), error) {
	switch cfg.Database.Driver {
	case config.DriverMongo:
		db, err := mongodb.Connect(ctx, cfg.Database.URI, cfg.Database.Name)
		if err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := db.Client().Disconnect(disconnectCtx); err != nil {
				logger.Warnf("mongo disconnect: %v", err)
			}
		}
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			closeFn()
			return nil, nil, nil, fmt.Errorf("ensure indexes: %w", err)
		}
		logger.Infof("using mongo database %s", cfg.Database.Name)
		return mongodb.NewUserRepository(db), mongodb.NewBlogRepository(db), closeFn, nil

	default:
		db, err := sqlite.Open(cfg.Database.Path)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := sqlite.Migrate(ctx, db, logger); err != nil {
			db.Close()
			return nil, nil, nil, fmt.Errorf("migrate: %w", err)
		}
		logger.Infof("using sqlite database %s", cfg.Database.Path)
		closeFn := func() {
			if err := db.Close(); err != nil {
				logger.Warnf("close database: %v", err)
			}
		}
		return sqlite.NewUserRepository(db), sqlite.NewBlogRepository(db), closeFn, nil
	}
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
	logger.Infof("using s3 bucket %s (region %s)", cfg.Storage.Bucket, cfg.Storage.Region)
	return storage.NewS3Service(client), nil
}
