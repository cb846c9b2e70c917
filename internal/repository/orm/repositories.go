package orm

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/jaquitoriano/vercel-blog-sub001/internal/repository"
)

// Repositories bundles every gorm-backed repository over one connection.
type Repositories struct {
	Users      repository.UserRepository
	Authors    repository.AuthorRepository
	Categories repository.CategoryRepository
	Tags       repository.TagRepository
	Settings   repository.SettingsRepository
	Posts      repository.PostRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Users:      NewUserRepository(db),
		Authors:    NewAuthorRepository(db),
		Categories: NewCategoryRepository(db),
		Tags:       NewTagRepository(db),
		Settings:   NewSettingsRepository(db),
		Posts:      NewPostRepository(db),
	}
}

// Init migrates tables in dependency order; posts reference the others.
func (r Repositories) Init(ctx context.Context) error {
	steps := []struct {
		name string
		init func(context.Context) error
	}{
		{"user", r.Users.Init},
		{"author", r.Authors.Init},
		{"category", r.Categories.Init},
		{"tag", r.Tags.Init},
		{"settings", r.Settings.Init},
		{"post", r.Posts.Init},
	}
	for _, step := range steps {
		if err := step.init(ctx); err != nil {
			return fmt.Errorf("init %s repository: %w", step.name, err)
		}
	}
	return nil
}
