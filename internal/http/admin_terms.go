package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jaquitoriano/vercel-blog-sub001/internal/service"
)

type authorRequest struct {
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Email     string `json:"email"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatarUrl"`
}

func (r authorRequest) toInput() service.AuthorInput {
	return service.AuthorInput{
		Name:      r.Name,
		Slug:      r.Slug,
		Email:     r.Email,
		Bio:       r.Bio,
		AvatarURL: r.AvatarURL,
	}
}

type termRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

func (r termRequest) toInput() service.TermInput {
	return service.TermInput{Name: r.Name, Slug: r.Slug, Description: r.Description}
}

func (h *Handler) listAuthors(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}
	authors, err := h.svc.Authors.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	resp := make([]AuthorResponse, len(authors))
	for i := range authors {
		resp[i] = authorToResponse(authors[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getAuthor(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	author, err := h.svc.Authors.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, authorToResponse(*author))
}

func (h *Handler) createAuthor(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}
	var req authorRequest
	if !bindJSON(c, &req) {
		return
	}
	author, err := h.svc.Authors.Create(c.Request.Context(), req.toInput())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, authorToResponse(*author))
}

func (h *Handler) updateAuthor(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req authorRequest
	if !bindJSON(c, &req) {
		return
	}
	author, err := h.svc.Authors.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, authorToResponse(*author))
}

func (h *Handler) deleteAuthor(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Authors.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) listCategories(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}
	categories, err := h.svc.Categories.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	resp := make([]TermResponse, len(categories))
	for i := range categories {
		resp[i] = categoryToResponse(categories[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getCategory(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	category, err := h.svc.Categories.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, categoryToResponse(*category))
}

func (h *Handler) createCategory(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}
	var req termRequest
	if !bindJSON(c, &req) {
		return
	}
	category, err := h.svc.Categories.Create(c.Request.Context(), req.toInput())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, categoryToResponse(*category))
}

func (h *Handler) updateCategory(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req termRequest
	if !bindJSON(c, &req) {
		return
	}
	category, err := h.svc.Categories.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, categoryToResponse(*category))
}

func (h *Handler) deleteCategory(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Categories.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) listTags(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}
	tags, err := h.svc.Tags.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	resp := make([]TermResponse, len(tags))
	for i := range tags {
		resp[i] = tagToResponse(tags[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getTag(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	tag, err := h.svc.Tags.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tagToResponse(*tag))
}

func (h *Handler) createTag(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}
	var req termRequest
	if !bindJSON(c, &req) {
		return
	}
	tag, err := h.svc.Tags.Create(c.Request.Context(), req.toInput())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tagToResponse(*tag))
}

func (h *Handler) updateTag(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req termRequest
	if !bindJSON(c, &req) {
		return
	}
	tag, err := h.svc.Tags.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tagToResponse(*tag))
}

func (h *Handler) deleteTag(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Tags.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
