package repository

import (
	"context"

	"github.com/jaquitoriano/vercel-blog-sub001/internal/domain"
)

// PostRepository exposes persistence operations for posts and their tag links.
type PostRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, post *domain.Post, tagIDs []uint) error
	Update(ctx context.Context, post *domain.Post, tagIDs []uint) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*domain.Post, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Post, error)
	List(ctx context.Context, filter domain.PostFilter) ([]domain.Post, int64, error)
	Count(ctx context.Context, published *bool) (int64, error)
}

type AuthorRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, author *domain.Author) error
	Update(ctx context.Context, author *domain.Author) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*domain.Author, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Author, error)
	List(ctx context.Context) ([]domain.Author, error)
	Count(ctx context.Context) (int64, error)
}

type CategoryRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*domain.Category, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Count(ctx context.Context) (int64, error)
}

type TagRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, tag *domain.Tag) error
	Update(ctx context.Context, tag *domain.Tag) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*domain.Tag, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Tag, error)
	List(ctx context.Context) ([]domain.Tag, error)
	Count(ctx context.Context) (int64, error)
}

// SettingsRepository stores the single SiteSettings row.
type SettingsRepository interface {
	Init(ctx context.Context) error
	Get(ctx context.Context) (*domain.SiteSettings, error)
	Save(ctx context.Context, settings *domain.SiteSettings) error
}
