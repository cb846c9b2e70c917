package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jaquitoriano/vercel-blog-sub001/internal/domain"
	"github.com/jaquitoriano/vercel-blog-sub001/internal/service"
)

type postRequest struct {
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	Excerpt    string `json:"excerpt"`
	Content    string `json:"content"`
	CoverImage string `json:"coverImage"`
	Published  bool   `json:"published"`
	Featured   bool   `json:"featured"`
	AuthorID   uint   `json:"authorId"`
	CategoryID *uint  `json:"categoryId"`
	TagIDs     []uint `json:"tagIds"`
}

func (r postRequest) toInput() service.PostInput {
	return service.PostInput{
		Title:      r.Title,
		Slug:       r.Slug,
		Excerpt:    r.Excerpt,
		Content:    r.Content,
		CoverImage: r.CoverImage,
		Published:  r.Published,
		Featured:   r.Featured,
		AuthorID:   r.AuthorID,
		CategoryID: r.CategoryID,
		TagIDs:     r.TagIDs,
	}
}

// postFilterFromQuery reads page, per_page, q, status, category, tag and author.
func postFilterFromQuery(c *gin.Context) (domain.PostFilter, bool) {
	filter := domain.PostFilter{
		Query:        strings.TrimSpace(c.Query("q")),
		CategorySlug: c.Query("category"),
		TagSlug:      c.Query("tag"),
		AuthorSlug:   c.Query("author"),
	}
	var err error
	if v := c.Query("page"); v != "" {
		if filter.Page, err = strconv.Atoi(v); err != nil {
			return filter, false
		}
	}
	if v := c.Query("per_page"); v != "" {
		if filter.PerPage, err = strconv.Atoi(v); err != nil {
			return filter, false
		}
	}
	switch strings.ToLower(c.Query("status")) {
	case "", "all":
	case "published":
		v := true
		filter.Published = &v
	case "draft":
		v := false
		filter.Published = &v
	default:
		return filter, false
	}
	return filter, true
}

func (h *Handler) listPosts(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}
	filter, ok := postFilterFromQuery(c)
	if !ok {
		c.JSON(http.StatusBadRequest, errorBody("invalid listing parameters"))
		return
	}

	page, err := h.svc.Posts.List(c.Request.Context(), filter)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, postPageToResponse(page))
}

func (h *Handler) getPost(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	post, err := h.svc.Posts.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, postToResponse(*post))
}

func (h *Handler) createPost(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}
	var req postRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := h.svc.Posts.Create(c.Request.Context(), req.toInput())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, postToResponse(*post))
}

func (h *Handler) updatePost(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req postRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := h.svc.Posts.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, postToResponse(*post))
}

func (h *Handler) deletePost(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.svc.Posts.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) publishPost(c *gin.Context) {
	h.setPublished(c, true)
}

func (h *Handler) unpublishPost(c *gin.Context) {
	h.setPublished(c, false)
}

func (h *Handler) setPublished(c *gin.Context, published bool) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	post, err := h.svc.Posts.SetPublished(c.Request.Context(), id, published)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, postToResponse(*post))
}

func (h *Handler) previewLink(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if h.previews == nil {
		c.JSON(http.StatusServiceUnavailable, errorBody("draft previews are not configured"))
		return
	}

	post, err := h.svc.Posts.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	token, expires, err := h.previews.Sign(post.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"url":       strings.TrimRight(h.opts.PublicURL, "/") + "/preview/" + token,
		"expiresAt": expires.UTC().Format(time.RFC3339),
	})
}
