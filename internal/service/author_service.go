package service

import (
	"context"
	"strings"

	"github.com/jaquitoriano/vercel-blog-sub001/internal/domain"
	"github.com/jaquitoriano/vercel-blog-sub001/internal/repository"
)

type AuthorInput struct {
	Name      string
	Slug      string
	Email     string
	Bio       string
	AvatarURL string
}

type AuthorService interface {
	List(ctx context.Context) ([]domain.Author, error)
	Get(ctx context.Context, id uint) (*domain.Author, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Author, error)
	Create(ctx context.Context, in AuthorInput) (*domain.Author, error)
	Update(ctx context.Context, id uint, in AuthorInput) (*domain.Author, error)
	Delete(ctx context.Context, id uint) error
}

type authorService struct {
	repo repository.AuthorRepository
}

func NewAuthorService(repo repository.AuthorRepository) AuthorService {
	return &authorService{repo: repo}
}

func (s *authorService) List(ctx context.Context) ([]domain.Author, error) {
	return s.repo.List(ctx)
}

func (s *authorService) Get(ctx context.Context, id uint) (*domain.Author, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *authorService) GetBySlug(ctx context.Context, slug string) (*domain.Author, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *authorService) Create(ctx context.Context, in AuthorInput) (*domain.Author, error) {
	a := &domain.Author{}
	if err := applyAuthor(a, in); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *authorService) Update(ctx context.Context, id uint, in AuthorInput) (*domain.Author, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyAuthor(a, in); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Delete fails with repository.ErrConflict while posts still reference the author.
func (s *authorService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func applyAuthor(a *domain.Author, in AuthorInput) error {
	name, slug, err := validateTerm(TermInput{Name: in.Name, Slug: in.Slug})
	if err != nil {
		return err
	}
	email := normalizeEmail(in.Email)
	if email != "" {
		if err := validate.Var(email, "email,max=255"); err != nil {
			return invalid("email address is not valid")
		}
	}
	a.Name = name
	a.Slug = slug
	a.Email = email
	a.Bio = strings.TrimSpace(in.Bio)
	a.AvatarURL = strings.TrimSpace(in.AvatarURL)
	return nil
}
