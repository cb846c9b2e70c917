package orm

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/jaquitoriano/vercel-blog-sub001/internal/domain"
	"github.com/jaquitoriano/vercel-blog-sub001/internal/repository"
)

type slugged interface {
	domain.Author | domain.Category | domain.Tag
}

// sluggedRepository holds the CRUD shared by taxonomy-like tables keyed by a
// unique slug.
type sluggedRepository[T slugged] struct {
	db   *gorm.DB
	name string
}

func (r *sluggedRepository[T]) Init(ctx context.Context) error {
	var zero T
	if err := r.db.WithContext(ctx).AutoMigrate(&zero); err != nil {
		return fmt.Errorf("migrate %s table: %w", r.name, err)
	}
	return nil
}

func (r *sluggedRepository[T]) Create(ctx context.Context, v *T) error {
	if err := r.db.WithContext(ctx).Create(v).Error; err != nil {
		return fmt.Errorf("insert %s: %w", r.name, translateError(err))
	}
	return nil
}

func (r *sluggedRepository[T]) Update(ctx context.Context, v *T) error {
	if err := r.db.WithContext(ctx).Save(v).Error; err != nil {
		return fmt.Errorf("update %s: %w", r.name, translateError(err))
	}
	return nil
}

func (r *sluggedRepository[T]) Delete(ctx context.Context, id uint) error {
	var zero T
	res := r.db.WithContext(ctx).Delete(&zero, id)
	if res.Error != nil {
		return fmt.Errorf("delete %s: %w", r.name, translateError(res.Error))
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *sluggedRepository[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	var v T
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &v, nil
}

func (r *sluggedRepository[T]) GetBySlug(ctx context.Context, slug string) (*T, error) {
	var v T
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&v).Error; err != nil {
		return nil, translateError(err)
	}
	return &v, nil
}

func (r *sluggedRepository[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.db.WithContext(ctx).Order("name ASC, id ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", r.name, err)
	}
	return out, nil
}

func (r *sluggedRepository[T]) Count(ctx context.Context) (int64, error) {
	var zero T
	var n int64
	if err := r.db.WithContext(ctx).Model(&zero).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count %s: %w", r.name, err)
	}
	return n, nil
}

type AuthorRepository struct {
	sluggedRepository[domain.Author]
}

func NewAuthorRepository(db *gorm.DB) repository.AuthorRepository {
	return &AuthorRepository{sluggedRepository[domain.Author]{db: db, name: "author"}}
}

type CategoryRepository struct {
	sluggedRepository[domain.Category]
}

func NewCategoryRepository(db *gorm.DB) repository.CategoryRepository {
	return &CategoryRepository{sluggedRepository[domain.Category]{db: db, name: "category"}}
}

type TagRepository struct {
	sluggedRepository[domain.Tag]
}

func NewTagRepository(db *gorm.DB) repository.TagRepository {
	return &TagRepository{sluggedRepository[domain.Tag]{db: db, name: "tag"}}
}
