package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jaquitoriano/vercel-blog-sub001/internal/auth"
	"github.com/jaquitoriano/vercel-blog-sub001/internal/preview"
	"github.com/jaquitoriano/vercel-blog-sub001/internal/repository/orm"
	"github.com/jaquitoriano/vercel-blog-sub001/internal/service"
	"github.com/jaquitoriano/vercel-blog-sub001/internal/storage"
)

const (
	adminEmail = "admin@example.com"
	userEmail  = "reader@example.com"
	password   = "password123"
)

type memoryStore struct {
	objects map[string][]byte
}

func (m *memoryStore) Upload(_ context.Context, in storage.UploadInput) (string, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return "", err
	}
	m.objects[in.Key] = data
	return m.PublicURL(in.Key), nil
}

func (m *memoryStore) ListObjects(_ context.Context, prefix string) ([]storage.ObjectInfo, error) {
	var out []storage.ObjectInfo
	for k, v := range m.objects {
		if strings.HasPrefix(k, prefix) {
			out = append(out, storage.ObjectInfo{Key: k, Size: int64(len(v))})
		}
	}
	return out, nil
}

func (m *memoryStore) DeleteObject(_ context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

func (m *memoryStore) GetObjectURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return m.PublicURL(key), nil
}

func (m *memoryStore) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

type testEnv struct {
	router *gin.Engine
	repos  orm.Repositories
	svc    Services
	store  *memoryStore
	admin  uint
	user   uint
}

type envOption func(*Options, *storage.Service)

func withoutStorage() envOption {
	return func(_ *Options, s *storage.Service) { *s = nil }
}

func withMaxUpload(n int64) envOption {
	return func(o *Options, _ *storage.Service) { o.MaxUploadBytes = n }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	db, err := orm.Open(orm.Config{Driver: orm.DriverSQLite, Path: ":memory:"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = orm.Close(db) })
	repos := orm.NewRepositories(db)
	require.NoError(t, repos.Init(ctx))

	store := &memoryStore{objects: map[string][]byte{}}
	var blob storage.Service = store
	options := Options{
		Cookie:    auth.CookieConfig{Name: auth.DefaultCookieName},
		PublicURL: "http://blog.test",
		Ping:      func(ctx context.Context) error { return orm.Ping(ctx, db) },
	}
	for _, opt := range opts {
		opt(&options, &blob)
	}

	users := service.NewUserService(repos.Users, bcrypt.MinCost)
	svc := Services{
		Users:      users,
		Posts:      service.NewPostService(repos.Posts, repos.Authors, repos.Categories),
		Authors:    service.NewAuthorService(repos.Authors),
		Categories: service.NewCategoryService(repos.Categories),
		Tags:       service.NewTagService(repos.Tags),
		Settings:   service.NewSettingsService(repos.Settings),
		Dashboard:  service.NewDashboardService(repos.Posts, repos.Authors, repos.Categories, repos.Tags, repos.Users),
		Media:      service.NewMediaService(blob, "uploads"),
	}

	admin, err := users.Create(ctx, service.UserInput{Name: "Admin", Email: adminEmail, Password: password, Role: "ADMIN"})
	require.NoError(t, err)
	reader, err := users.Create(ctx, service.UserInput{Name: "Reader", Email: userEmail, Password: password})
	require.NoError(t, err)

	signer, err := preview.NewSigner("test-secret", time.Hour)
	require.NoError(t, err)
	logger, _ := test.NewNullLogger()

	router := gin.New()
	h := NewHandler(svc, auth.NewResolver(users, auth.DefaultCookieName, logger), signer, options, logger)
	h.RegisterRoutes(router)

	return &testEnv{router: router, repos: repos, svc: svc, store: store, admin: admin.ID, user: reader.ID}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func withSession(req *http.Request, email string) *http.Request {
	req.AddCookie(&http.Cookie{Name: auth.DefaultCookieName, Value: email})
	return req
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func multipartRequest(t *testing.T, target, field, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.DefaultCookieName {
			return c
		}
	}
	return nil
}
