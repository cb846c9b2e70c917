package orm

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jaquitoriano/vercel-blog-sub001/internal/domain"
	"github.com/jaquitoriano/vercel-blog-sub001/internal/repository"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) repository.PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Init(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&domain.Post{}); err != nil {
		return fmt.Errorf("migrate posts table: %w", err)
	}
	return nil
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post, tagIDs []uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(post).Error; err != nil {
			return err
		}
		return replaceTags(tx, post, tagIDs)
	})
	if err != nil {
		return fmt.Errorf("insert post: %w", translateError(err))
	}
	return nil
}

func (r *PostRepository) Update(ctx context.Context, post *domain.Post, tagIDs []uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(post).Error; err != nil {
			return err
		}
		return replaceTags(tx, post, tagIDs)
	})
	if err != nil {
		return fmt.Errorf("update post: %w", translateError(err))
	}
	return nil
}

func replaceTags(tx *gorm.DB, post *domain.Post, tagIDs []uint) error {
	assoc := tx.Model(post).Association("Tags")
	if len(tagIDs) == 0 {
		post.Tags = nil
		return assoc.Clear()
	}

	var tags []domain.Tag
	if err := tx.Where("id IN ?", tagIDs).Find(&tags).Error; err != nil {
		return err
	}
	if len(tags) != len(uniqueIDs(tagIDs)) {
		return fmt.Errorf("unknown tag id: %w", repository.ErrNotFound)
	}
	if err := assoc.Replace(tags); err != nil {
		return err
	}
	post.Tags = tags
	return nil
}

func uniqueIDs(ids []uint) map[uint]struct{} {
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	return seen
}

func (r *PostRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Post{ID: id}).Association("Tags").Clear(); err != nil {
			return err
		}
		res := tx.Delete(&domain.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repository.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete post: %w", translateError(err))
	}
	return nil
}

func (r *PostRepository) withRelations(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Author").Preload("Category").Preload("Tags", func(db *gorm.DB) *gorm.DB {
		return db.Order("tags.name ASC")
	})
}

func (r *PostRepository) GetByID(ctx context.Context, id uint) (*domain.Post, error) {
	var post domain.Post
	if err := r.withRelations(r.db.WithContext(ctx)).First(&post, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &post, nil
}

func (r *PostRepository) GetBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	var post domain.Post
	err := r.withRelations(r.db.WithContext(ctx)).Where("posts.slug = ?", slug).First(&post).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &post, nil
}

// List returns one page of posts matching filter plus the total match count.
func (r *PostRepository) List(ctx context.Context, filter domain.PostFilter) ([]domain.Post, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Post{})

	if filter.Published != nil {
		q = q.Where("posts.published = ?", *filter.Published)
	}
	if term := strings.ToLower(strings.TrimSpace(filter.Query)); term != "" {
		like := "%" + term + "%"
		q = q.Where("LOWER(posts.title) LIKE ? OR LOWER(posts.excerpt) LIKE ?", like, like)
	}
	if filter.CategorySlug != "" {
		q = q.Joins("JOIN categories ON categories.id = posts.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.AuthorSlug != "" {
		q = q.Joins("JOIN authors ON authors.id = posts.author_id").
			Where("authors.slug = ?", filter.AuthorSlug)
	}
	if filter.TagSlug != "" {
		sub := r.db.Table("post_tags").
			Select("post_tags.post_id").
			Joins("JOIN tags ON tags.id = post_tags.tag_id").
			Where("tags.slug = ?", filter.TagSlug)
		q = q.Where("posts.id IN (?)", sub)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	page := r.withRelations(q).
		Order("COALESCE(posts.published_at, posts.created_at) DESC, posts.id DESC")
	if filter.PerPage > 0 {
		page = page.Offset(filter.Offset()).Limit(filter.PerPage)
	}

	var posts []domain.Post
	if err := page.Find(&posts).Error; err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	return posts, total, nil
}

func (r *PostRepository) Count(ctx context.Context, published *bool) (int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Post{})
	if published != nil {
		q = q.Where("published = ?", *published)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return n, nil
}
