package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaquitoriano/vercel-blog-sub001/internal/domain"
	"github.com/jaquitoriano/vercel-blog-sub001/internal/repository"
)

func TestUserService_CreateAndAuthenticate(t *testing.T) {
	svc, repos := newTestUserService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, UserInput{Name: "Ada", Email: " Ada@Example.com ", Password: "password123", Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, domain.RoleAdmin, user.Role)
	assert.Empty(t, user.Password)

	stored, err := repos.Users.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", stored.Password, "password must be hashed")

	got, err := svc.Authenticate(ctx, "ADA@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Empty(t, got.Password)

	_, err = svc.Authenticate(ctx, "ada@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_Validation(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   UserInput
	}{
		{"missing name", UserInput{Email: "a@example.com", Password: "password123"}},
		{"bad email", UserInput{Name: "A", Email: "not-an-email", Password: "password123"}},
		{"short password", UserInput{Name: "A", Email: "a@example.com", Password: "short"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUserService_DuplicateEmail(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, UserInput{Name: "Ada", Email: "ada@example.com", Password: "password123"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, UserInput{Name: "Ada 2", Email: "ADA@example.com", Password: "password123"})
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestUserService_UpdateKeepsPasswordWhenBlank(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, UserInput{Name: "Ada", Email: "ada@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)

	updated, err := svc.Update(ctx, user.ID, UserInput{Name: "Ada L.", Email: "ada@example.com", Role: "ADMIN"})
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", updated.Name)
	assert.Equal(t, domain.RoleAdmin, updated.Role)

	_, err = svc.Authenticate(ctx, "ada@example.com", "password123")
	assert.NoError(t, err)

	_, err = svc.Update(ctx, user.ID, UserInput{Name: "Ada", Email: "ada@example.com", Password: "new-password"})
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, "ada@example.com", "new-password")
	assert.NoError(t, err)
}

func TestUserService_EnsureAdmin(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	admin, created, err := svc.EnsureAdmin(ctx, UserInput{Name: "Root", Email: "root@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, domain.RoleAdmin, admin.Role)

	_, created, err = svc.EnsureAdmin(ctx, UserInput{Name: "Root", Email: "root@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.False(t, created)

	plain, err := svc.Create(ctx, UserInput{Name: "Bob", Email: "bob@example.com", Password: "password123"})
	require.NoError(t, err)
	promoted, created, err := svc.EnsureAdmin(ctx, UserInput{Name: "Bob", Email: "bob@example.com", Password: "ignored-pass"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, plain.ID, promoted.ID)
	assert.Equal(t, domain.RoleAdmin, promoted.Role)
}

func TestUserService_AuthenticateHashesForUnknownEmail(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()
	_, err := svc.Create(ctx, UserInput{Name: "Ada", Email: "ada@example.com", Password: "password123"})
	require.NoError(t, err)

	calls := 0
	orig := compareHash
	compareHash = func(hash, password []byte) error {
		calls++
		return orig(hash, password)
	}
	t.Cleanup(func() { compareHash = orig })

	_, err = svc.Authenticate(ctx, "ada@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 1, calls)

	_, err = svc.Authenticate(ctx, "nobody@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 2, calls, "unknown email must run one bcrypt comparison")
}
