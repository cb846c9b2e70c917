package http

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jaquitoriano/vercel-blog-sub001/internal/auth"
	"github.com/jaquitoriano/vercel-blog-sub001/internal/domain"
	"github.com/jaquitoriano/vercel-blog-sub001/internal/repository"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var templateFuncs = template.FuncMap{
	"date": func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format("January 2, 2006")
	},
	"add": func(a, b int) int { return a + b },
	"sub": func(a, b int) int { return a - b },
}

func mustParseTemplates() *template.Template {
	return template.Must(template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.tmpl"))
}

func pageNumber(c *gin.Context) int {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func (h *Handler) render(c *gin.Context, status int, name string, data gin.H) {
	data["Settings"] = siteSettings(c)
	c.HTML(status, name, data)
}

func (h *Handler) renderError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	msg := genericFailure
	if errors.Is(err, repository.ErrNotFound) {
		status, msg = http.StatusNotFound, "The page you are looking for does not exist."
	} else {
		h.log.WithError(err).WithField("path", c.Request.URL.Path).Error("render page")
	}
	h.render(c, status, "error.tmpl", gin.H{"Status": status, "Message": msg})
}

func (h *Handler) publishedListing(c *gin.Context, filter domain.PostFilter, title string) {
	published := true
	filter.Published = &published
	filter.Page = pageNumber(c)
	filter.PerPage = siteSettings(c).PostsPerPage

	page, err := h.svc.Posts.List(c.Request.Context(), filter)
	if err != nil {
		h.renderError(c, err)
		return
	}
	h.render(c, http.StatusOK, "listing.tmpl", gin.H{
		"Title": title,
		"Page":  page,
		"Path":  c.Request.URL.Path,
	})
}

func (h *Handler) homePage(c *gin.Context) {
	h.publishedListing(c, domain.PostFilter{}, "")
}

func (h *Handler) categoryPage(c *gin.Context) {
	category, err := h.svc.Categories.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	h.publishedListing(c, domain.PostFilter{CategorySlug: category.Slug}, "Category: "+category.Name)
}

func (h *Handler) tagPage(c *gin.Context) {
	tag, err := h.svc.Tags.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	h.publishedListing(c, domain.PostFilter{TagSlug: tag.Slug}, "Tag: "+tag.Name)
}

func (h *Handler) authorPage(c *gin.Context) {
	author, err := h.svc.Authors.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	h.publishedListing(c, domain.PostFilter{AuthorSlug: author.Slug}, "Posts by "+author.Name)
}

func (h *Handler) postPage(c *gin.Context) {
	post, err := h.svc.Posts.GetPublished(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	h.render(c, http.StatusOK, "post.tmpl", gin.H{"Post": post})
}

// previewPage shows a draft through a signed link. Invalid or expired links
// look like missing pages.
func (h *Handler) previewPage(c *gin.Context) {
	c.Header("X-Robots-Tag", "noindex, nofollow")
	if h.previews == nil {
		h.renderError(c, repository.ErrNotFound)
		return
	}
	id, err := h.previews.Verify(c.Param("token"))
	if err != nil {
		h.renderError(c, repository.ErrNotFound)
		return
	}
	post, err := h.svc.Posts.Get(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	h.render(c, http.StatusOK, "post.tmpl", gin.H{"Post": post, "Preview": true})
}

// adminSession gates a back-office page. Anonymous callers get their stale
// cookie cleared and are sent to the login page; signed-in non-admins see a
// forbidden banner.
func (h *Handler) adminSession(c *gin.Context) (auth.Session, bool) {
	sess := h.sessions.Resolve(c.Request.Context(), c.Request)
	switch err := auth.Authorize(sess, domain.RoleAdmin); {
	case errors.Is(err, auth.ErrUnauthenticated):
		h.opts.Cookie.Clear(c.Writer, c.Request)
		c.Redirect(http.StatusFound, loginURL(c.Request.URL.RequestURI()))
		c.Abort()
		return sess, false
	case err != nil:
		h.render(c, http.StatusForbidden, "admin_forbidden.tmpl", gin.H{"User": sess.User})
		c.Abort()
		return sess, false
	}
	return sess, true
}

func (h *Handler) adminBanner(c *gin.Context, sess auth.Session, status int, name string, data gin.H, err error) {
	data["User"] = sess.User
	if err != nil {
		s, msg := classify(err)
		if s == http.StatusInternalServerError {
			h.log.WithError(err).WithField("path", c.Request.URL.Path).Error("admin page")
		}
		data["Error"] = msg
		status = s
	}
	h.render(c, status, name, data)
}

func (h *Handler) dashboardPage(c *gin.Context) {
	sess, ok := h.adminSession(c)
	if !ok {
		return
	}
	stats, err := h.svc.Dashboard.Stats(c.Request.Context())
	h.adminBanner(c, sess, http.StatusOK, "admin_dashboard.tmpl", gin.H{"Stats": stats}, err)
}

func (h *Handler) adminPostsPage(c *gin.Context) {
	sess, ok := h.adminSession(c)
	if !ok {
		return
	}
	filter, valid := postFilterFromQuery(c)
	if !valid {
		filter = domain.PostFilter{}
	}
	page, err := h.svc.Posts.List(c.Request.Context(), filter)
	h.adminBanner(c, sess, http.StatusOK, "admin_posts.tmpl", gin.H{
		"Page":   page,
		"Query":  filter.Query,
		"Status": c.Query("status"),
	}, err)
}

type termRow struct {
	ID    uint
	Name  string
	Slug  string
	Extra string
}

func (h *Handler) adminAuthorsPage(c *gin.Context) {
	sess, ok := h.adminSession(c)
	if !ok {
		return
	}
	authors, err := h.svc.Authors.List(c.Request.Context())
	rows := make([]termRow, len(authors))
	for i, a := range authors {
		rows[i] = termRow{ID: a.ID, Name: a.Name, Slug: a.Slug, Extra: a.Email}
	}
	h.adminBanner(c, sess, http.StatusOK, "admin_terms.tmpl", gin.H{"Title": "Authors", "Rows": rows, "PublicPrefix": "/authors/"}, err)
}

func (h *Handler) adminCategoriesPage(c *gin.Context) {
	sess, ok := h.adminSession(c)
	if !ok {
		return
	}
	categories, err := h.svc.Categories.List(c.Request.Context())
	rows := make([]termRow, len(categories))
	for i, cat := range categories {
		rows[i] = termRow{ID: cat.ID, Name: cat.Name, Slug: cat.Slug, Extra: cat.Description}
	}
	h.adminBanner(c, sess, http.StatusOK, "admin_terms.tmpl", gin.H{"Title": "Categories", "Rows": rows, "PublicPrefix": "/categories/"}, err)
}

func (h *Handler) adminTagsPage(c *gin.Context) {
	sess, ok := h.adminSession(c)
	if !ok {
		return
	}
	tags, err := h.svc.Tags.List(c.Request.Context())
	rows := make([]termRow, len(tags))
	for i, t := range tags {
		rows[i] = termRow{ID: t.ID, Name: t.Name, Slug: t.Slug}
	}
	h.adminBanner(c, sess, http.StatusOK, "admin_terms.tmpl", gin.H{"Title": "Tags", "Rows": rows, "PublicPrefix": "/tags/"}, err)
}

func (h *Handler) adminUsersPage(c *gin.Context) {
	sess, ok := h.adminSession(c)
	if !ok {
		return
	}
	users, err := h.svc.Users.List(c.Request.Context())
	h.adminBanner(c, sess, http.StatusOK, "admin_users.tmpl", gin.H{"Users": users}, err)
}

func (h *Handler) adminSettingsPage(c *gin.Context) {
	sess, ok := h.adminSession(c)
	if !ok {
		return
	}
	settings, err := h.svc.Settings.Get(c.Request.Context())
	h.adminBanner(c, sess, http.StatusOK, "admin_settings.tmpl", gin.H{"Form": settings}, err)
}

func (h *Handler) adminSettingsSubmit(c *gin.Context) {
	sess, ok := h.adminSession(c)
	if !ok {
		return
	}
	var req settingsRequest
	if err := c.ShouldBind(&req); err != nil {
		h.adminBanner(c, sess, http.StatusOK, "admin_settings.tmpl", gin.H{"Form": &req}, errInvalidForm)
		return
	}
	settings, err := h.svc.Settings.Update(c.Request.Context(), req.toInput())
	if err != nil {
		h.adminBanner(c, sess, http.StatusOK, "admin_settings.tmpl", gin.H{"Form": &req}, err)
		return
	}
	c.Set(settingsKey, settings)
	h.adminBanner(c, sess, http.StatusOK, "admin_settings.tmpl", gin.H{"Form": settings, "Notice": "Settings saved."}, nil)
}
