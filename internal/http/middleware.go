package http

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jaquitoriano/vercel-blog-sub001/internal/domain"
)

const settingsKey = "site_settings"

type gateAction int

const (
	gatePass gateAction = iota
	gateAllow
	gateToDashboard
	gateToLogin
	gateUnauthorized
)

// gateDecision is the edge gate's routing table. It only looks at whether a
// session cookie is present; resolving the cookie to a user and checking the
// role is left to each handler.
func gateDecision(path string, hasCookie bool) gateAction {
	switch {
	case path == logoutPath:
		return gateAllow
	case path == loginPath:
		if hasCookie {
			return gateToDashboard
		}
		return gateAllow
	case underPrefix(path, adminAPIPrefix):
		if hasCookie {
			return gateAllow
		}
		return gateUnauthorized
	case underPrefix(path, adminPrefix):
		if hasCookie {
			return gateAllow
		}
		return gateToLogin
	}
	return gatePass
}

func underPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func (h *Handler) edgeGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		action := gateDecision(path, h.hasSessionCookie(c.Request))
		if action == gatePass {
			c.Next()
			return
		}

		c.Header("X-Robots-Tag", "noindex, nofollow")
		switch action {
		case gateToDashboard:
			c.Redirect(http.StatusFound, dashboardPath)
			c.Abort()
		case gateToLogin:
			c.Redirect(http.StatusFound, loginURL(c.Request.URL.RequestURI()))
			c.Abort()
		case gateUnauthorized:
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody("authentication required"))
		default:
			c.Next()
		}
	}
}

func (h *Handler) hasSessionCookie(r *http.Request) bool {
	cookie, err := r.Cookie(h.opts.Cookie.Name)
	return err == nil && strings.TrimSpace(cookie.Value) != ""
}

func loginURL(next string) string {
	if next == "" || next == dashboardPath || !underPrefix(strings.SplitN(next, "?", 2)[0], adminPrefix) {
		return loginPath
	}
	return loginPath + "?next=" + url.QueryEscape(next)
}

// safeNext keeps post-login redirects inside the admin UI.
func safeNext(next string) string {
	if next == "" || strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return dashboardPath
	}
	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" {
		return dashboardPath
	}
	if !underPrefix(u.Path, adminPrefix) || u.Path == loginPath || u.Path == logoutPath {
		return dashboardPath
	}
	return u.RequestURI()
}

func requestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"ip":      c.ClientIP(),
		})
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			entry.Error("request")
		case status >= http.StatusBadRequest:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
	}
}

// loadSettings puts the site settings into the request context for pages.
// JSON endpoints skip the lookup.
func (h *Handler) loadSettings() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.Next()
			return
		}
		settings, err := h.svc.Settings.Get(c.Request.Context())
		if err != nil {
			h.log.WithError(err).Warn("load site settings")
			d := domain.DefaultSettings()
			settings = &d
		}
		c.Set(settingsKey, settings)
		c.Next()
	}
}

func siteSettings(c *gin.Context) *domain.SiteSettings {
	if v, ok := c.Get(settingsKey); ok {
		if s, ok := v.(*domain.SiteSettings); ok {
			return s
		}
	}
	d := domain.DefaultSettings()
	return &d
}
