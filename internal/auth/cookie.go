package auth

import (
	"net"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultCookieName = "admin_session"
	DefaultSessionTTL = 24 * time.Hour
)

// CookieConfig fixes the attributes of the session cookie.
type CookieConfig struct {
	Name string
	TTL  time.Duration
	// Production enables the Secure flag and strict same-site policy for
	// non-local hosts.
	Production bool
}

func (c CookieConfig) name() string {
	if c.Name == "" {
		return DefaultCookieName
	}
	return c.Name
}

// Issue sets the session cookie to the user's email.
func (c CookieConfig) Issue(w http.ResponseWriter, r *http.Request, email string) {
	ttl := c.TTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	http.SetCookie(w, &http.Cookie{
		Name:     c.name(),
		Value:    email,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		Secure:   c.Production,
		SameSite: c.sameSite(r),
	})
}

// Clear overwrites the session cookie with an already-expired empty value.
func (c CookieConfig) Clear(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   c.Production,
		SameSite: c.sameSite(r),
	})
}

func (c CookieConfig) sameSite(r *http.Request) http.SameSite {
	if !c.Production || isLocalHost(r) {
		return http.SameSiteLaxMode
	}
	return http.SameSiteStrictMode
}

func isLocalHost(r *http.Request) bool {
	if r == nil {
		return false
	}
	host := r.Host
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.Trim(strings.ToLower(host), "[]")
	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
