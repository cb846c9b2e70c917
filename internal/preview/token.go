// Package preview issues and verifies signed links that expose a single post,
// draft or not, for a limited time.
package preview

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "blog-preview"

var ErrInvalidToken = errors.New("invalid preview token")

type claims struct {
	PostID uint `json:"pid"`
	jwt.RegisteredClaims
}

// Signer creates HS256 preview tokens.
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSigner(secret string, ttl time.Duration) (*Signer, error) {
	if secret == "" {
		return nil, fmt.Errorf("preview secret is required")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Signer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Sign returns a token for postID and the moment it stops being valid.
func (s *Signer) Sign(postID uint) (string, time.Time, error) {
	now := s.now()
	expires := now.Add(s.ttl)
	c := &claims{
		PostID: postID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatUint(uint64(postID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign preview token: %w", err)
	}
	return token, expires, nil
}

// Verify returns the post id carried by a valid, unexpired token.
func (s *Signer) Verify(token string) (uint, error) {
	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid || c.PostID == 0 {
		return 0, ErrInvalidToken
	}
	return c.PostID, nil
}
