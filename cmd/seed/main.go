// Command seed creates the first admin account and the default site settings.
package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/jaquitoriano/vercel-blog-sub001/internal/config"
	"github.com/jaquitoriano/vercel-blog-sub001/internal/repository/orm"
	"github.com/jaquitoriano/vercel-blog-sub001/internal/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if strings.TrimSpace(cfg.Seed.AdminEmail) == "" || cfg.Seed.AdminPassword == "" {
		logger.Fatalf("seed.admin_email and seed.admin_password are required (BLOG_SEED_ADMIN_EMAIL, BLOG_SEED_ADMIN_PASSWORD)")
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

	users := service.NewUserService(repos.Users, cfg.Auth.BcryptCost)
	admin, created, err := users.EnsureAdmin(ctx, service.UserInput{
		Name:     cfg.Seed.AdminName,
		Email:    cfg.Seed.AdminEmail,
		Password: cfg.Seed.AdminPassword,
	})
	if err != nil {
		logger.Fatalf("ensure admin: %v", err)
	}
	if created {
		logger.Infof("created admin %s", admin.Email)
	} else {
		logger.Infof("admin %s already present", admin.Email)
	}

	if err := service.NewSettingsService(repos.Settings).EnsureDefaults(ctx); err != nil {
		logger.Fatalf("ensure settings: %v", err)
	}
	logger.Info("seed complete")
}
