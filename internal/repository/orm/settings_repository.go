package orm

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jaquitoriano/vercel-blog-sub001/internal/domain"
	"github.com/jaquitoriano/vercel-blog-sub001/internal/repository"
)

type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) repository.SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Init(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&domain.SiteSettings{}); err != nil {
		return fmt.Errorf("migrate site settings table: %w", err)
	}
	return nil
}

func (r *SettingsRepository) Get(ctx context.Context) (*domain.SiteSettings, error) {
	var s domain.SiteSettings
	if err := r.db.WithContext(ctx).First(&s, domain.SettingsID).Error; err != nil {
		return nil, translateError(err)
	}
	return &s, nil
}

func (r *SettingsRepository) Save(ctx context.Context, settings *domain.SiteSettings) error {
	settings.ID = domain.SettingsID
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(settings).Error
	if err != nil {
		return fmt.Errorf("save site settings: %w", translateError(err))
	}
	return nil
}
