package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGateDecision(t *testing.T) {
	tests := []struct {
		path      string
		hasCookie bool
		want      gateAction
	}{
		{"/admin/login", true, gateToDashboard},
		{"/admin/login", false, gateAllow},
		{"/admin", true, gateAllow},
		{"/admin", false, gateToLogin},
		{"/admin/posts", true, gateAllow},
		{"/admin/posts", false, gateToLogin},
		{"/admin/logout", true, gateAllow},
		{"/admin/logout", false, gateAllow},
		{"/api/admin/posts", true, gateAllow},
		{"/api/admin/posts", false, gateUnauthorized},
		{"/api/admin", false, gateUnauthorized},
		{"/api/auth/login", false, gatePass},
		{"/", false, gatePass},
		{"/posts/admin", false, gatePass},
		{"/administrator", false, gatePass},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, gateDecision(tt.path, tt.hasCookie), "%s cookie=%v", tt.path, tt.hasCookie)
	}
}

func TestSafeNext(t *testing.T) {
	tests := map[string]string{
		"":                          "/admin",
		"/admin/posts":              "/admin/posts",
		"/admin/posts?status=draft": "/admin/posts?status=draft",
		"/admin/login":              "/admin",
		"/":                         "/admin",
		"//evil.example.com/admin":  "/admin",
		"https://evil.example.com":  "/admin",
		"/\\evil.example.com":       "/admin",
	}
	for in, want := range tests {
		assert.Equal(t, want, safeNext(in), in)
	}
}

func TestEdgeGate(t *testing.T) {
	env := newTestEnv(t)

	t.Run("admin page without cookie redirects to login", func(t *testing.T) {
		rec := env.do(httptest.NewRequest(http.MethodGet, "/admin/posts", nil))
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/admin/login?next=%2Fadmin%2Fposts", rec.Header().Get("Location"))
		assert.Equal(t, "noindex, nofollow", rec.Header().Get("X-Robots-Tag"))
	})

	t.Run("unknown admin path is still gated", func(t *testing.T) {
		rec := env.do(httptest.NewRequest(http.MethodGet, "/admin/does-not-exist", nil))
		assert.Equal(t, http.StatusFound, rec.Code)
	})

	t.Run("login page with cookie redirects to dashboard", func(t *testing.T) {
		rec := env.do(withSession(httptest.NewRequest(http.MethodGet, "/admin/login", nil), adminEmail))
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/admin", rec.Header().Get("Location"))
	})

	t.Run("login page without cookie renders", func(t *testing.T) {
		rec := env.do(httptest.NewRequest(http.MethodGet, "/admin/login", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `action="/admin/login"`)
		assert.Equal(t, "noindex, nofollow", rec.Header().Get("X-Robots-Tag"))
	})

	t.Run("admin api without cookie is 401", func(t *testing.T) {
		rec := env.do(httptest.NewRequest(http.MethodGet, "/api/admin/posts", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, false, decode(t, rec)["success"])
		assert.Equal(t, "noindex, nofollow", rec.Header().Get("X-Robots-Tag"))
	})

	t.Run("logout is always reachable", func(t *testing.T) {
		rec := env.do(httptest.NewRequest(http.MethodGet, "/admin/logout", nil))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/admin/login", rec.Header().Get("Location"))
	})

	t.Run("public pages are not tagged", func(t *testing.T) {
		rec := env.do(httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("X-Robots-Tag"))
	})
}
