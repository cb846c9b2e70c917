package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jaquitoriano/vercel-blog-sub001/internal/domain"
	"github.com/jaquitoriano/vercel-blog-sub001/internal/repository"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

// PostInput carries editable post fields. An empty Slug is derived from Title.
type PostInput struct {
	Title      string
	Slug       string
	Excerpt    string
	Content    string
	CoverImage string
	Published  bool
	Featured   bool
	AuthorID   uint
	CategoryID *uint
	TagIDs     []uint
}

// PostPage is one page of a post listing.
type PostPage struct {
	Posts   []domain.Post
	Total   int64
	Page    int
	PerPage int
}

// Pages returns the number of pages needed for Total.
func (p PostPage) Pages() int {
	if p.PerPage <= 0 || p.Total == 0 {
		return 1
	}
	return int((p.Total + int64(p.PerPage) - 1) / int64(p.PerPage))
}

type PostService interface {
	List(ctx context.Context, filter domain.PostFilter) (PostPage, error)
	Get(ctx context.Context, id uint) (*domain.Post, error)
	GetPublished(ctx context.Context, slug string) (*domain.Post, error)
	Create(ctx context.Context, in PostInput) (*domain.Post, error)
	Update(ctx context.Context, id uint, in PostInput) (*domain.Post, error)
	SetPublished(ctx context.Context, id uint, published bool) (*domain.Post, error)
	Delete(ctx context.Context, id uint) error
}

type postService struct {
	posts      repository.PostRepository
	authors    repository.AuthorRepository
	categories repository.CategoryRepository
	now        func() time.Time
}

func NewPostService(posts repository.PostRepository, authors repository.AuthorRepository, categories repository.CategoryRepository) PostService {
	return &postService{
		posts:      posts,
		authors:    authors,
		categories: categories,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *postService) List(ctx context.Context, filter domain.PostFilter) (PostPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage <= 0 {
		filter.PerPage = defaultPerPage
	}
	if filter.PerPage > maxPerPage {
		filter.PerPage = maxPerPage
	}

	posts, total, err := s.posts.List(ctx, filter)
	if err != nil {
		return PostPage{}, err
	}
	return PostPage{Posts: posts, Total: total, Page: filter.Page, PerPage: filter.PerPage}, nil
}

func (s *postService) Get(ctx context.Context, id uint) (*domain.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// GetPublished hides drafts behind repository.ErrNotFound.
func (s *postService) GetPublished(ctx context.Context, slug string) (*domain.Post, error) {
	post, err := s.posts.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !post.Published {
		return nil, repository.ErrNotFound
	}
	return post, nil
}

func (s *postService) Create(ctx context.Context, in PostInput) (*domain.Post, error) {
	post := &domain.Post{}
	if err := s.apply(ctx, post, in); err != nil {
		return nil, err
	}
	if err := s.posts.Create(ctx, post, in.TagIDs); err != nil {
		return nil, s.tagError(err)
	}
	return s.posts.GetByID(ctx, post.ID)
}

func (s *postService) Update(ctx context.Context, id uint, in PostInput) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, post, in); err != nil {
		return nil, err
	}
	if err := s.posts.Update(ctx, post, in.TagIDs); err != nil {
		return nil, s.tagError(err)
	}
	return s.posts.GetByID(ctx, post.ID)
}

func (s *postService) SetPublished(ctx context.Context, id uint, published bool) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	post.Published = published
	s.stampPublished(post)

	tagIDs := make([]uint, len(post.Tags))
	for i, t := range post.Tags {
		tagIDs[i] = t.ID
	}
	if err := s.posts.Update(ctx, post, tagIDs); err != nil {
		return nil, err
	}
	return s.posts.GetByID(ctx, id)
}

func (s *postService) Delete(ctx context.Context, id uint) error {
	return s.posts.Delete(ctx, id)
}

func (s *postService) apply(ctx context.Context, post *domain.Post, in PostInput) error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return invalid("title is required")
	}
	slug, err := slugFor(in.Slug, title)
	if err != nil {
		return err
	}
	if in.AuthorID == 0 {
		return invalid("author is required")
	}
	if _, err := s.authors.GetByID(ctx, in.AuthorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return invalid("author %d does not exist", in.AuthorID)
		}
		return err
	}
	if in.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *in.CategoryID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return invalid("category %d does not exist", *in.CategoryID)
			}
			return err
		}
	}

	post.Title = title
	post.Slug = slug
	post.Excerpt = strings.TrimSpace(in.Excerpt)
	post.Content = in.Content
	post.CoverImage = strings.TrimSpace(in.CoverImage)
	post.Published = in.Published
	post.Featured = in.Featured
	post.AuthorID = in.AuthorID
	post.Author = domain.Author{}
	post.CategoryID = in.CategoryID
	post.Category = nil
	s.stampPublished(post)
	return nil
}

// stampPublished records the first publication time and keeps it afterwards.
func (s *postService) stampPublished(post *domain.Post) {
	if post.Published && post.PublishedAt == nil {
		t := s.now()
		post.PublishedAt = &t
	}
}

func (s *postService) tagError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return invalid("one or more tags do not exist")
	}
	return err
}
