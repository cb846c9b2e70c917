package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/jaquitoriano/vercel-blog-sub001/internal/domain"
	"github.com/jaquitoriano/vercel-blog-sub001/internal/repository"
)

const minPasswordLen = 8

var validate = validator.New()

// compareHash is swapped in tests to count bcrypt work.
var compareHash = bcrypt.CompareHashAndPassword

// UserInput carries fields for creating or editing an account. An empty
// Password on update leaves the stored hash untouched.
type UserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// UserService describes user lifecycle operations.
type UserService interface {
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uint) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, in UserInput) (*domain.User, error)
	Update(ctx context.Context, id uint, in UserInput) (*domain.User, error)
	Delete(ctx context.Context, id uint) error
	EnsureAdmin(ctx context.Context, in UserInput) (*domain.User, bool, error)
}

type userService struct {
	users repository.UserRepository
	cost  int

	dummyOnce sync.Once
	dummyHash []byte
}

func NewUserService(users repository.UserRepository, bcryptCost int) UserService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userService{users: users, cost: bcryptCost}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Unknown emails pay the same bcrypt cost as a wrong password.
			_ = compareHash(s.placeholderHash(), []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := compareHash([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return sanitizeUser(user), nil
}

func (s *userService) placeholderHash() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("placeholder-password"), s.cost)
	})
	return s.dummyHash
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, repository.ErrNotFound
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

func (s *userService) Create(ctx context.Context, in UserInput) (*domain.User, error) {
	name, email, err := validateIdentity(in)
	if err != nil {
		return nil, err
	}
	if len(in.Password) < minPasswordLen {
		return nil, invalid("password must be at least %d characters", minPasswordLen)
	}
	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     domain.ParseRole(in.Role),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) Update(ctx context.Context, id uint, in UserInput) (*domain.User, error) {
	name, email, err := validateIdentity(in)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Name = name
	user.Email = email
	if strings.TrimSpace(in.Role) != "" {
		user.Role = domain.ParseRole(in.Role)
	}
	if in.Password != "" {
		if len(in.Password) < minPasswordLen {
			return nil, invalid("password must be at least %d characters", minPasswordLen)
		}
		if user.Password, err = s.hash(in.Password); err != nil {
			return nil, err
		}
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) Delete(ctx context.Context, id uint) error {
	return s.users.Delete(ctx, id)
}

// EnsureAdmin creates the account when missing, or promotes an existing one
// to ADMIN. The boolean reports whether a new account was created.
func (s *userService) EnsureAdmin(ctx context.Context, in UserInput) (*domain.User, bool, error) {
	in.Role = string(domain.RoleAdmin)
	existing, err := s.users.GetByEmail(ctx, normalizeEmail(in.Email))
	switch {
	case errors.Is(err, repository.ErrNotFound):
		user, err := s.Create(ctx, in)
		return user, err == nil, err
	case err != nil:
		return nil, false, err
	}

	if existing.Role.Is(domain.RoleAdmin) {
		return sanitizeUser(existing), false, nil
	}
	existing.Role = domain.RoleAdmin
	if err := s.users.Update(ctx, existing); err != nil {
		return nil, false, err
	}
	return sanitizeUser(existing), false, nil
}

func (s *userService) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func validateIdentity(in UserInput) (string, string, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return "", "", invalid("name is required")
	}
	email := normalizeEmail(in.Email)
	if err := validate.Var(email, "required,email,max=255"); err != nil {
		return "", "", invalid("email address is not valid")
	}
	return name, email, nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
