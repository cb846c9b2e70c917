package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/jaquitoriano/vercel-blog-sub001/internal/storage"
)

// ErrStorageDisabled is returned when no blob store is configured.
var ErrStorageDisabled = errors.New("image storage is not configured")

// sniffLen matches the amount of data mimetype inspects.
const sniffLen = 3072

var allowedImageTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"image/avif",
}

// Media is an uploaded image as exposed to the back-office.
type Media struct {
	Key          string
	URL          string
	ContentType  string
	Size         int64
	LastModified *time.Time
}

type MediaService interface {
	UploadImage(ctx context.Context, filename string, body io.Reader) (*Media, error)
	List(ctx context.Context) ([]Media, error)
	Delete(ctx context.Context, key string) error
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type mediaService struct {
	store     storage.Service
	keyPrefix string
	now       func() time.Time
}

// NewMediaService accepts a nil store; every call then fails with ErrStorageDisabled.
func NewMediaService(store storage.Service, keyPrefix string) MediaService {
	return &mediaService{
		store:     store,
		keyPrefix: strings.Trim(keyPrefix, "/"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// UploadImage sniffs the leading bytes, rejects anything but raster images and
// stores the object under <prefix>/<yyyy>/<mm>/<uuid><ext>.
func (s *mediaService) UploadImage(ctx context.Context, filename string, body io.Reader) (*Media, error) {
	if s.store == nil {
		return nil, ErrStorageDisabled
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]
	if n == 0 {
		return nil, invalid("file %q is empty", filename)
	}

	mt := mimetype.Detect(head)
	if !mimetype.EqualsAny(mt.String(), allowedImageTypes...) {
		return nil, invalid("file %q is %s, expected an image", filename, mt.String())
	}

	counter := &countingReader{r: io.MultiReader(bytes.NewReader(head), body)}
	key := s.objectKey(mt.Extension())
	url, err := s.store.Upload(ctx, storage.UploadInput{
		Key:         key,
		Body:        counter,
		ContentType: mt.String(),
	})
	if err != nil {
		return nil, err
	}

	now := s.now()
	return &Media{
		Key:          key,
		URL:          url,
		ContentType:  mt.String(),
		Size:         counter.n,
		LastModified: &now,
	}, nil
}

func (s *mediaService) List(ctx context.Context) ([]Media, error) {
	if s.store == nil {
		return nil, ErrStorageDisabled
	}
	prefix := s.keyPrefix
	if prefix != "" {
		prefix += "/"
	}
	objects, err := s.store.ListObjects(ctx, prefix)
	if err != nil {
		return nil, err
	}

	out := make([]Media, len(objects))
	for i, obj := range objects {
		out[i] = Media{
			Key:          obj.Key,
			URL:          obj.URL,
			ContentType:  extensionType(obj.Key),
			Size:         obj.Size,
			LastModified: obj.LastModified,
		}
	}
	return out, nil
}

// Delete only touches keys under the media prefix.
func (s *mediaService) Delete(ctx context.Context, key string) error {
	if s.store == nil {
		return ErrStorageDisabled
	}
	key, err := s.mediaKey(key)
	if err != nil {
		return err
	}
	return s.store.DeleteObject(ctx, key)
}

// SignedURL returns a time-limited link for buckets that are not public.
func (s *mediaService) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if s.store == nil {
		return "", ErrStorageDisabled
	}
	key, err := s.mediaKey(key)
	if err != nil {
		return "", err
	}
	return s.store.GetObjectURL(ctx, key, ttl)
}

func (s *mediaService) mediaKey(key string) (string, error) {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if key == "" || strings.Contains(key, "..") {
		return "", invalid("key is required")
	}
	if s.keyPrefix != "" && !strings.HasPrefix(key, s.keyPrefix+"/") {
		return "", invalid("key %q is outside the media folder", key)
	}
	return key, nil
}

func (s *mediaService) objectKey(ext string) string {
	now := s.now()
	name := uuid.NewString() + ext
	return path.Join(s.keyPrefix, now.Format("2006"), now.Format("01"), name)
}

func extensionType(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".avif":
		return "image/avif"
	}
	return "application/octet-stream"
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
