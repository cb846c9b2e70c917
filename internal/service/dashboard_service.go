package service

import (
	"context"

	"github.com/jaquitoriano/vercel-blog-sub001/internal/repository"
)

// Stats summarizes content counts for the admin dashboard.
type Stats struct {
	Posts      int64
	Published  int64
	Drafts     int64
	Authors    int64
	Categories int64
	Tags       int64
	Users      int64
}

type DashboardService interface {
	Stats(ctx context.Context) (Stats, error)
}

type dashboardService struct {
	posts      repository.PostRepository
	authors    repository.AuthorRepository
	categories repository.CategoryRepository
	tags       repository.TagRepository
	users      repository.UserRepository
}

func NewDashboardService(
	posts repository.PostRepository,
	authors repository.AuthorRepository,
	categories repository.CategoryRepository,
	tags repository.TagRepository,
	users repository.UserRepository,
) DashboardService {
	return &dashboardService{posts: posts, authors: authors, categories: categories, tags: tags, users: users}
}

func (s *dashboardService) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	var err error

	if st.Posts, err = s.posts.Count(ctx, nil); err != nil {
		return Stats{}, err
	}
	published := true
	if st.Published, err = s.posts.Count(ctx, &published); err != nil {
		return Stats{}, err
	}
	st.Drafts = st.Posts - st.Published
	if st.Authors, err = s.authors.Count(ctx); err != nil {
		return Stats{}, err
	}
	if st.Categories, err = s.categories.Count(ctx); err != nil {
		return Stats{}, err
	}
	if st.Tags, err = s.tags.Count(ctx); err != nil {
		return Stats{}, err
	}
	if st.Users, err = s.users.Count(ctx); err != nil {
		return Stats{}, err
	}
	return st, nil
}
