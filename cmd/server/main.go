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
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jaquitoriano/vercel-blog-sub001/internal/auth"
	"github.com/jaquitoriano/vercel-blog-sub001/internal/config"
	apphttp "github.com/jaquitoriano/vercel-blog-sub001/internal/http"
	"github.com/jaquitoriano/vercel-blog-sub001/internal/preview"
	"github.com/jaquitoriano/vercel-blog-sub001/internal/repository/orm"
	"github.com/jaquitoriano/vercel-blog-sub001/internal/service"
	"github.com/jaquitoriano/vercel-blog-sub001/internal/storage"
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

	db, err := orm.Open(orm.Config{
		Driver:  cfg.Database.Driver,
		Path:    cfg.Database.Path,
		DSN:     cfg.Database.DSN,
		LogMode: cfg.Database.LogMode,
	}, logger)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer orm.Close(db)

	repos := orm.NewRepositories(db)
	if err := repos.Init(ctx); err != nil {
		logger.Fatalf("%v", err)
	}

	userService := service.NewUserService(repos.Users, cfg.Auth.BcryptCost)
	settingsService := service.NewSettingsService(repos.Settings)
	if err := settingsService.EnsureDefaults(ctx); err != nil {
		logger.Warnf("ensure default settings: %v", err)
	}

	storageSvc, err := buildStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("setup storage: %v", err)
	}

	previews, err := buildPreviewSigner(cfg, logger)
	if err != nil {
		logger.Fatalf("setup previews: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(
		apphttp.Services{
			Users:      userService,
			Posts:      service.NewPostService(repos.Posts, repos.Authors, repos.Categories),
			Authors:    service.NewAuthorService(repos.Authors),
			Categories: service.NewCategoryService(repos.Categories),
			Tags:       service.NewTagService(repos.Tags),
			Settings:   settingsService,
			Dashboard:  service.NewDashboardService(repos.Posts, repos.Authors, repos.Categories, repos.Tags, repos.Users),
			Media:      service.NewMediaService(storageSvc, cfg.Storage.KeyPrefix),
		},
		auth.NewResolver(userService, cfg.Auth.CookieName, logger),
		previews,
		apphttp.Options{
			Cookie: auth.CookieConfig{
				Name:       cfg.Auth.CookieName,
				TTL:        cfg.SessionTTL(),
				Production: cfg.IsProduction(),
			},
			MaxUploadBytes: cfg.MaxUploadBytes(),
			PublicURL:      cfg.Server.PublicURL,
			Ping: func(ctx context.Context) error {
				return orm.Ping(ctx, db)
			},
		},
		logger,
	)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("listening on %s (%s)", cfg.Server.Addr, cfg.Server.Env)
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

// buildStorage returns nil when no bucket is configured; uploads then answer 503.
func buildStorage(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.Service, error) {
	if cfg.Storage.Bucket == "" {
		logger.Warn("storage bucket not set, image uploads are disabled")
		return nil, nil
	}

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
	svc, err := storage.NewS3Service(client, storage.S3Options{
		Bucket:        cfg.Storage.Bucket,
		Region:        cfg.Storage.Region,
		PublicBaseURL: cfg.Storage.PublicBaseURL,
	})
	if err != nil {
		return nil, err
	}
	return svc, nil
}

// buildPreviewSigner falls back to a per-process secret outside production,
// so preview links stop working after a restart.
func buildPreviewSigner(cfg config.Config, logger *logrus.Logger) (*preview.Signer, error) {
	secret := cfg.Auth.PreviewSecret
	if secret == "" {
		secret = uuid.NewString() + uuid.NewString()
		logger.Warn("auth.preview_secret not set, using an ephemeral secret")
	}
	return preview.NewSigner(secret, cfg.PreviewTTL())
}
