package http

import (
	"time"

	"github.com/jaquitoriano/vercel-blog-sub001/internal/domain"
	"github.com/jaquitoriano/vercel-blog-sub001/internal/service"
)

type UserResponse struct {
	ID        uint        `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CreatedAt string      `json:"createdAt,omitempty"`
	UpdatedAt string      `json:"updatedAt,omitempty"`
}

type AuthorResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Email     string `json:"email,omitempty"`
	Bio       string `json:"bio,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type TermResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

type PostResponse struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	Excerpt     string          `json:"excerpt"`
	Content     string          `json:"content"`
	CoverImage  string          `json:"coverImage,omitempty"`
	Published   bool            `json:"published"`
	Featured    bool            `json:"featured"`
	PublishedAt *string         `json:"publishedAt,omitempty"`
	AuthorID    uint            `json:"authorId"`
	Author      *AuthorResponse `json:"author,omitempty"`
	CategoryID  *uint           `json:"categoryId,omitempty"`
	Category    *TermResponse   `json:"category,omitempty"`
	Tags        []TermResponse  `json:"tags"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
}

type PostListResponse struct {
	Posts   []PostResponse `json:"posts"`
	Total   int64          `json:"total"`
	Page    int            `json:"page"`
	PerPage int            `json:"perPage"`
	Pages   int            `json:"pages"`
}

type SettingsResponse struct {
	SiteName     string  `json:"siteName"`
	Description  string  `json:"description"`
	LogoURL      string  `json:"logoUrl"`
	FooterText   string  `json:"footerText"`
	PostsPerPage int     `json:"postsPerPage"`
	UpdatedAt    *string `json:"updatedAt,omitempty"`
}

type MediaResponse struct {
	Key          string  `json:"key"`
	URL          string  `json:"url"`
	ContentType  string  `json:"contentType,omitempty"`
	Size         int64   `json:"size"`
	LastModified *string `json:"lastModified,omitempty"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	v := formatTime(*t)
	return &v
}

func userToResponse(u domain.User) UserResponse {
	resp := UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
	if !u.CreatedAt.IsZero() {
		resp.CreatedAt = formatTime(u.CreatedAt)
	}
	if !u.UpdatedAt.IsZero() {
		resp.UpdatedAt = formatTime(u.UpdatedAt)
	}
	return resp
}

func authorToResponse(a domain.Author) AuthorResponse {
	return AuthorResponse{
		ID:        a.ID,
		Name:      a.Name,
		Slug:      a.Slug,
		Email:     a.Email,
		Bio:       a.Bio,
		AvatarURL: a.AvatarURL,
		CreatedAt: formatTime(a.CreatedAt),
		UpdatedAt: formatTime(a.UpdatedAt),
	}
}

func categoryToResponse(c domain.Category) TermResponse {
	return TermResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		CreatedAt:   formatTime(c.CreatedAt),
		UpdatedAt:   formatTime(c.UpdatedAt),
	}
}

func tagToResponse(t domain.Tag) TermResponse {
	return TermResponse{
		ID:        t.ID,
		Name:      t.Name,
		Slug:      t.Slug,
		CreatedAt: formatTime(t.CreatedAt),
		UpdatedAt: formatTime(t.UpdatedAt),
	}
}

func postToResponse(p domain.Post) PostResponse {
	resp := PostResponse{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Excerpt:     p.Excerpt,
		Content:     p.Content,
		CoverImage:  p.CoverImage,
		Published:   p.Published,
		Featured:    p.Featured,
		PublishedAt: formatTimePtr(p.PublishedAt),
		AuthorID:    p.AuthorID,
		CategoryID:  p.CategoryID,
		Tags:        make([]TermResponse, len(p.Tags)),
		CreatedAt:   formatTime(p.CreatedAt),
		UpdatedAt:   formatTime(p.UpdatedAt),
	}
	if p.Author.ID != 0 {
		a := authorToResponse(p.Author)
		resp.Author = &a
	}
	if p.Category != nil {
		c := categoryToResponse(*p.Category)
		resp.Category = &c
	}
	for i := range p.Tags {
		resp.Tags[i] = tagToResponse(p.Tags[i])
	}
	return resp
}

func postPageToResponse(page service.PostPage) PostListResponse {
	resp := PostListResponse{
		Posts:   make([]PostResponse, len(page.Posts)),
		Total:   page.Total,
		Page:    page.Page,
		PerPage: page.PerPage,
		Pages:   page.Pages(),
	}
	for i := range page.Posts {
		resp.Posts[i] = postToResponse(page.Posts[i])
	}
	return resp
}

func settingsToResponse(s domain.SiteSettings) SettingsResponse {
	resp := SettingsResponse{
		SiteName:     s.SiteName,
		Description:  s.Description,
		LogoURL:      s.LogoURL,
		FooterText:   s.FooterText,
		PostsPerPage: s.PostsPerPage,
	}
	if !s.UpdatedAt.IsZero() {
		resp.UpdatedAt = formatTimePtr(&s.UpdatedAt)
	}
	return resp
}

func mediaToResponse(m service.Media) MediaResponse {
	return MediaResponse{
		Key:          m.Key,
		URL:          m.URL,
		ContentType:  m.ContentType,
		Size:         m.Size,
		LastModified: formatTimePtr(m.LastModified),
	}
}
