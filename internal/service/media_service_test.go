package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaquitoriano/vercel-blog-sub001/internal/storage"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

type memoryStore struct {
	objects map[string][]byte
	types   map[string]string
	failErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *memoryStore) Upload(_ context.Context, in storage.UploadInput) (string, error) {
	if m.failErr != nil {
		return "", m.failErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return "", err
	}
	m.objects[in.Key] = data
	m.types[in.Key] = in.ContentType
	return m.PublicURL(in.Key), nil
}

func (m *memoryStore) ListObjects(_ context.Context, prefix string) ([]storage.ObjectInfo, error) {
	var out []storage.ObjectInfo
	for k, v := range m.objects {
		if strings.HasPrefix(k, prefix) {
			out = append(out, storage.ObjectInfo{Key: k, Size: int64(len(v)), URL: m.PublicURL(k)})
		}
	}
	return out, nil
}

func (m *memoryStore) DeleteObject(_ context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

func (m *memoryStore) GetObjectURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return m.PublicURL(key) + "?signed=1", nil
}

func (m *memoryStore) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

func TestMediaService_UploadImage(t *testing.T) {
	store := newMemoryStore()
	svc := NewMediaService(store, "/uploads/").(*mediaService)
	svc.now = func() time.Time { return time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC) }

	body := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 5000)...)
	media, err := svc.UploadImage(context.Background(), "photo.png", bytes.NewReader(body))
	require.NoError(t, err)

	assert.Regexp(t, `^uploads/2025/03/[0-9a-f-]{36}\.png$`, media.Key)
	assert.Equal(t, "image/png", media.ContentType)
	assert.Equal(t, int64(len(body)), media.Size)
	assert.Equal(t, "https://cdn.example.com/"+media.Key, media.URL)
	assert.Equal(t, body, store.objects[media.Key], "sniffed bytes are not lost")
	assert.Equal(t, "image/png", store.types[media.Key])

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "image/png", items[0].ContentType)
}

func TestMediaService_RejectsNonImages(t *testing.T) {
	svc := NewMediaService(newMemoryStore(), "uploads")

	tests := []struct {
		name string
		body []byte
	}{
		{"empty", nil},
		{"text", []byte("just some text")},
		{"svg", []byte(`<svg xmlns="http://www.w3.org/2000/svg"><script>alert(1)</script></svg>`)},
		{"pdf", []byte("%PDF-1.4\n%...")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UploadImage(context.Background(), "file", bytes.NewReader(tt.body))
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestMediaService_Delete(t *testing.T) {
	store := newMemoryStore()
	store.objects["uploads/2025/03/a.png"] = []byte("x")
	svc := NewMediaService(store, "uploads")
	ctx := context.Background()

	assert.ErrorIs(t, svc.Delete(ctx, ""), ErrInvalidInput)
	assert.ErrorIs(t, svc.Delete(ctx, "uploads/../secrets.txt"), ErrInvalidInput)
	assert.ErrorIs(t, svc.Delete(ctx, "other/a.png"), ErrInvalidInput)

	require.NoError(t, svc.Delete(ctx, "/uploads/2025/03/a.png"))
	assert.Empty(t, store.objects)
}

func TestMediaService_StorageDisabled(t *testing.T) {
	svc := NewMediaService(nil, "uploads")
	ctx := context.Background()

	_, err := svc.UploadImage(ctx, "a.png", bytes.NewReader(pngHeader))
	assert.ErrorIs(t, err, ErrStorageDisabled)
	_, err = svc.List(ctx)
	assert.ErrorIs(t, err, ErrStorageDisabled)
	assert.ErrorIs(t, svc.Delete(ctx, "uploads/a.png"), ErrStorageDisabled)
}

func TestMediaService_StoreFailure(t *testing.T) {
	store := newMemoryStore()
	store.failErr = errors.New("s3 unavailable")
	svc := NewMediaService(store, "uploads")

	_, err := svc.UploadImage(context.Background(), "a.png", bytes.NewReader(pngHeader))
	assert.EqualError(t, err, "s3 unavailable")
}

func TestMediaService_SignedURL(t *testing.T) {
	svc := NewMediaService(newMemoryStore(), "uploads")

	url, err := svc.SignedURL(context.Background(), "uploads/2025/03/a.png", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/uploads/2025/03/a.png?signed=1", url)

	_, err = svc.SignedURL(context.Background(), "private/a.png", time.Minute)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
