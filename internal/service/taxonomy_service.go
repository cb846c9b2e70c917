package service

import (
	"context"
	"strings"

	"github.com/jaquitoriano/vercel-blog-sub001/internal/domain"
	"github.com/jaquitoriano/vercel-blog-sub001/internal/repository"
)

// TermInput is the editable shape shared by categories and tags.
type TermInput struct {
	Name        string
	Slug        string
	Description string
}

type CategoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
	Get(ctx context.Context, id uint) (*domain.Category, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)
	Create(ctx context.Context, in TermInput) (*domain.Category, error)
	Update(ctx context.Context, id uint, in TermInput) (*domain.Category, error)
	Delete(ctx context.Context, id uint) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.repo.List(ctx)
}

func (s *categoryService) Get(ctx context.Context, id uint) (*domain.Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *categoryService) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *categoryService) Create(ctx context.Context, in TermInput) (*domain.Category, error) {
	name, slug, err := validateTerm(in)
	if err != nil {
		return nil, err
	}
	c := &domain.Category{Name: name, Slug: slug, Description: strings.TrimSpace(in.Description)}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *categoryService) Update(ctx context.Context, id uint, in TermInput) (*domain.Category, error) {
	name, slug, err := validateTerm(in)
	if err != nil {
		return nil, err
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name, c.Slug, c.Description = name, slug, strings.TrimSpace(in.Description)
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *categoryService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

type TagService interface {
	List(ctx context.Context) ([]domain.Tag, error)
	Get(ctx context.Context, id uint) (*domain.Tag, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Tag, error)
	Create(ctx context.Context, in TermInput) (*domain.Tag, error)
	Update(ctx context.Context, id uint, in TermInput) (*domain.Tag, error)
	Delete(ctx context.Context, id uint) error
}

type tagService struct {
	repo repository.TagRepository
}

func NewTagService(repo repository.TagRepository) TagService {
	return &tagService{repo: repo}
}

func (s *tagService) List(ctx context.Context) ([]domain.Tag, error) {
	return s.repo.List(ctx)
}

func (s *tagService) Get(ctx context.Context, id uint) (*domain.Tag, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *tagService) GetBySlug(ctx context.Context, slug string) (*domain.Tag, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *tagService) Create(ctx context.Context, in TermInput) (*domain.Tag, error) {
	name, slug, err := validateTerm(in)
	if err != nil {
		return nil, err
	}
	t := &domain.Tag{Name: name, Slug: slug}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *tagService) Update(ctx context.Context, id uint, in TermInput) (*domain.Tag, error) {
	name, slug, err := validateTerm(in)
	if err != nil {
		return nil, err
	}
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Name, t.Slug = name, slug
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *tagService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func validateTerm(in TermInput) (string, string, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return "", "", invalid("name is required")
	}
	slug, err := slugFor(in.Slug, name)
	if err != nil {
		return "", "", err
	}
	return name, slug, nil
}
