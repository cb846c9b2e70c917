package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_Success(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "Admin@Example.com",
		"password": password,
	}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, adminEmail, user["email"])
	assert.Equal(t, "ADMIN", user["role"])
	assert.Equal(t, "Admin", user["name"])
	assert.NotContains(t, user, "password")

	c := sessionCookie(rec)
	require.NotNil(t, c)
	assert.Equal(t, adminEmail, c.Value)
	assert.Equal(t, 86400, c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, "/", c.Path)
}

func TestLogin_Failure(t *testing.T) {
	env := newTestEnv(t)

	for name, creds := range map[string]map[string]string{
		"wrong password": {"email": adminEmail, "password": "nope-nope"},
		"unknown email":  {"email": "ghost@example.com", "password": password},
		"empty":          {},
	} {
		t.Run(name, func(t *testing.T) {
			rec := env.do(jsonRequest(t, http.MethodPost, "/api/auth/login", creds))
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			body := decode(t, rec)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, "Invalid email or password", body["message"])
			assert.Nil(t, sessionCookie(rec))
		})
	}
}

func TestLogin_MalformedBody(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")

	rec := env.do(req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogout_Idempotent(t *testing.T) {
	env := newTestEnv(t)

	for i, req := range []*http.Request{
		withSession(httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil), adminEmail),
		httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil),
	} {
		rec := env.do(req)
		assert.Equal(t, http.StatusOK, rec.Code, "call %d", i)
		assert.Equal(t, true, decode(t, rec)["success"])
		c := sessionCookie(rec)
		require.NotNil(t, c)
		assert.Empty(t, c.Value)
		assert.Equal(t, -1, c.MaxAge)
	}
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(withSession(httptest.NewRequest(http.MethodGet, "/api/admin/me", nil), adminEmail))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, adminEmail, body["email"])
	assert.Equal(t, "ADMIN", body["role"])
}

func TestLoginForm(t *testing.T) {
	env := newTestEnv(t)

	post := func(form url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return env.do(req)
	}

	rec := post(url.Values{"email": {adminEmail}, "password": {password}, "next": {"/admin/posts"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/posts", rec.Header().Get("Location"))
	require.NotNil(t, sessionCookie(rec))
	assert.Equal(t, adminEmail, sessionCookie(rec).Value)

	rec = post(url.Values{"email": {adminEmail}, "password": {password}, "next": {"https://evil.example.com/"}})
	assert.Equal(t, "/admin", rec.Header().Get("Location"))

	rec = post(url.Values{"email": {adminEmail}, "password": {"wrong-password"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email or password")
	assert.Contains(t, rec.Body.String(), `value="admin@example.com"`)
	assert.Nil(t, sessionCookie(rec))

	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader("email=%zz&password=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = env.do(req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "The submitted form could not be read.")
	assert.Nil(t, sessionCookie(rec))
}
