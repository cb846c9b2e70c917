package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaquitoriano/vercel-blog-sub001/internal/domain"
)

func TestAuthorize(t *testing.T) {
	admin := Session{User: &domain.User{ID: 1, Role: domain.RoleAdmin}}
	lowerAdmin := Session{User: &domain.User{ID: 2, Role: "admin"}}
	user := Session{User: &domain.User{ID: 3, Role: domain.RoleUser}}

	tests := []struct {
		name     string
		session  Session
		required domain.Role
		want     error
	}{
		{"anonymous needs admin", Session{}, domain.RoleAdmin, ErrUnauthenticated},
		{"anonymous needs user", Session{}, domain.RoleUser, ErrUnauthenticated},
		{"user needs admin", user, domain.RoleAdmin, ErrForbidden},
		{"user needs user", user, domain.RoleUser, nil},
		{"admin needs admin", admin, domain.RoleAdmin, nil},
		{"lower-case admin claim", lowerAdmin, domain.RoleAdmin, nil},
		{"admin needs user", admin, domain.RoleUser, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.session, tt.required)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
