// Package auth resolves the admin session cookie into an identity and decides
// whether that identity may act.
//
// The session cookie holds the user's email. Presence of the cookie says
// nothing about validity: every Resolve re-reads the user from the credential
// store, so a deleted or demoted account loses access on its next request.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jaquitoriano/vercel-blog-sub001/internal/domain"
	"github.com/jaquitoriano/vercel-blog-sub001/internal/repository"
)

// Session is the identity derived from one request. The zero value is anonymous.
type Session struct {
	User *domain.User
}

func (s Session) Authenticated() bool {
	return s.User != nil
}

// Role returns the role claim, or the empty role for anonymous sessions.
func (s Session) Role() domain.Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}

// UserLookup is the part of the credential store the resolver reads.
type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// Resolver turns a request's session cookie into a Session.
type Resolver struct {
	users      UserLookup
	cookieName string
	log        logrus.FieldLogger
}

func NewResolver(users UserLookup, cookieName string, log logrus.FieldLogger) *Resolver {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Resolver{users: users, cookieName: cookieName, log: log}
}

func (r *Resolver) CookieName() string {
	return r.cookieName
}

// Resolve performs one credential-store read per call. Lookup failures of any
// kind yield an anonymous session.
func (r *Resolver) Resolve(ctx context.Context, req *http.Request) Session {
	cookie, err := req.Cookie(r.cookieName)
	if err != nil {
		return Session{}
	}
	email := strings.TrimSpace(cookie.Value)
	if email == "" {
		return Session{}
	}

	user, err := r.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			r.log.WithError(err).Warn("session lookup failed, treating request as anonymous")
		}
		return Session{}
	}
	if user == nil {
		return Session{}
	}

	u := *user
	u.Password = ""
	return Session{User: &u}
}
