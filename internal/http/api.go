package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jaquitoriano/vercel-blog-sub001/internal/auth"
	"github.com/jaquitoriano/vercel-blog-sub001/internal/preview"
	"github.com/jaquitoriano/vercel-blog-sub001/internal/service"
)

const (
	adminPrefix    = "/admin"
	adminAPIPrefix = "/api/admin"
	loginPath      = "/admin/login"
	logoutPath     = "/admin/logout"
	dashboardPath  = "/admin"
)

const defaultMaxUploadBytes int64 = 5 << 20

// Services groups the business services the HTTP layer depends on.
type Services struct {
	Users      service.UserService
	Posts      service.PostService
	Authors    service.AuthorService
	Categories service.CategoryService
	Tags       service.TagService
	Settings   service.SettingsService
	Dashboard  service.DashboardService
	Media      service.MediaService
}

// Options carries transport-level settings.
type Options struct {
	Cookie         auth.CookieConfig
	MaxUploadBytes int64
	PublicURL      string
	// Ping reports datastore health for /api/health. Nil means always healthy.
	Ping func(ctx context.Context) error
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	svc      Services
	sessions *auth.Resolver
	previews *preview.Signer
	opts     Options
	log      logrus.FieldLogger
}

func NewHandler(svc Services, sessions *auth.Resolver, previews *preview.Signer, opts Options, log logrus.FieldLogger) *Handler {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUploadBytes
	}
	if opts.Cookie.Name == "" {
		opts.Cookie.Name = sessions.CookieName()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{
		svc:      svc,
		sessions: sessions,
		previews: previews,
		opts:     opts,
		log:      log,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(requestLogger(h.log))
	router.Use(h.edgeGate())
	router.Use(h.loadSettings())
	router.SetHTMLTemplate(mustParseTemplates())

	router.GET("/", h.homePage)
	router.GET("/posts/:slug", h.postPage)
	router.GET("/categories/:slug", h.categoryPage)
	router.GET("/tags/:slug", h.tagPage)
	router.GET("/authors/:slug", h.authorPage)
	router.GET("/preview/:token", h.previewPage)

	api := router.Group("/api")
	{
		api.GET("/health", h.health)
		api.POST("/auth/login", h.login)
		api.POST("/auth/logout", h.logout)
	}

	admin := router.Group(adminAPIPrefix)
	{
		admin.GET("/me", h.me)

		admin.GET("/posts", h.listPosts)
		admin.POST("/posts", h.createPost)
		admin.GET("/posts/:id", h.getPost)
		admin.PUT("/posts/:id", h.updatePost)
		admin.DELETE("/posts/:id", h.deletePost)
		admin.POST("/posts/:id/publish", h.publishPost)
		admin.POST("/posts/:id/unpublish", h.unpublishPost)
		admin.POST("/posts/:id/preview", h.previewLink)

		admin.GET("/authors", h.listAuthors)
		admin.POST("/authors", h.createAuthor)
		admin.GET("/authors/:id", h.getAuthor)
		admin.PUT("/authors/:id", h.updateAuthor)
		admin.DELETE("/authors/:id", h.deleteAuthor)

		admin.GET("/categories", h.listCategories)
		admin.POST("/categories", h.createCategory)
		admin.GET("/categories/:id", h.getCategory)
		admin.PUT("/categories/:id", h.updateCategory)
		admin.DELETE("/categories/:id", h.deleteCategory)

		admin.GET("/tags", h.listTags)
		admin.POST("/tags", h.createTag)
		admin.GET("/tags/:id", h.getTag)
		admin.PUT("/tags/:id", h.updateTag)
		admin.DELETE("/tags/:id", h.deleteTag)

		admin.GET("/users", h.listUsers)
		admin.POST("/users", h.createUser)
		admin.GET("/users/:id", h.getUser)
		admin.PUT("/users/:id", h.updateUser)
		admin.DELETE("/users/:id", h.deleteUser)

		admin.GET("/settings", h.getSettings)
		admin.PUT("/settings", h.updateSettings)

		admin.GET("/uploads", h.listUploads)
		admin.POST("/uploads", h.uploadImage)
		admin.DELETE("/uploads", h.deleteUpload)
		admin.GET("/uploads/signed", h.signedUploadURL)
	}

	ui := router.Group(adminPrefix)
	{
		ui.GET("/login", h.loginPage)
		ui.POST("/login", h.loginForm)
		ui.GET("/logout", h.logoutForm)
		ui.POST("/logout", h.logoutForm)
		ui.GET("", h.dashboardPage)
		ui.GET("/posts", h.adminPostsPage)
		ui.GET("/authors", h.adminAuthorsPage)
		ui.GET("/categories", h.adminCategoriesPage)
		ui.GET("/tags", h.adminTagsPage)
		ui.GET("/users", h.adminUsersPage)
		ui.GET("/settings", h.adminSettingsPage)
		ui.POST("/settings", h.adminSettingsSubmit)
	}
}

func (h *Handler) health(c *gin.Context) {
	if h.opts.Ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.opts.Ping(ctx); err != nil {
			h.log.WithError(err).Warn("health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "database unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
