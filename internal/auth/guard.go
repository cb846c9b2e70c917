package auth

import (
	"errors"

	"github.com/jaquitoriano/vercel-blog-sub001/internal/domain"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("insufficient role")
)

// Authorize checks a freshly resolved session against the role an action
// needs. USER is satisfied by any authenticated session; ADMIN only by an
// ADMIN claim, compared case-insensitively.
func Authorize(s Session, required domain.Role) error {
	if !s.Authenticated() {
		return ErrUnauthenticated
	}
	if required.Is(domain.RoleAdmin) && !s.User.Role.Is(domain.RoleAdmin) {
		return ErrForbidden
	}
	return nil
}
