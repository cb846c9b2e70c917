package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jaquitoriano/vercel-blog-sub001/internal/domain"
	"github.com/jaquitoriano/vercel-blog-sub001/internal/repository"
)

type SettingsInput struct {
	SiteName     string
	Description  string
	LogoURL      string
	FooterText   string
	PostsPerPage int
}

type SettingsService interface {
	Get(ctx context.Context) (*domain.SiteSettings, error)
	Update(ctx context.Context, in SettingsInput) (*domain.SiteSettings, error)
	EnsureDefaults(ctx context.Context) error
}

type settingsService struct {
	repo repository.SettingsRepository
}

func NewSettingsService(repo repository.SettingsRepository) SettingsService {
	return &settingsService{repo: repo}
}

// Get returns the stored settings, or the defaults when none were saved yet.
func (s *settingsService) Get(ctx context.Context) (*domain.SiteSettings, error) {
	settings, err := s.repo.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		d := domain.DefaultSettings()
		return &d, nil
	}
	return settings, err
}

func (s *settingsService) Update(ctx context.Context, in SettingsInput) (*domain.SiteSettings, error) {
	name := strings.TrimSpace(in.SiteName)
	if name == "" {
		return nil, invalid("site name is required")
	}
	if in.PostsPerPage < 1 || in.PostsPerPage > maxPerPage {
		return nil, invalid("posts per page must be between 1 and %d", maxPerPage)
	}

	settings := &domain.SiteSettings{
		SiteName:     name,
		Description:  strings.TrimSpace(in.Description),
		LogoURL:      strings.TrimSpace(in.LogoURL),
		FooterText:   strings.TrimSpace(in.FooterText),
		PostsPerPage: in.PostsPerPage,
	}
	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *settingsService) EnsureDefaults(ctx context.Context) error {
	_, err := s.repo.Get(ctx)
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	d := domain.DefaultSettings()
	return s.repo.Save(ctx, &d)
}
