package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jaquitoriano/vercel-blog-sub001/internal/service"
)

type settingsRequest struct {
	SiteName     string `json:"siteName" form:"siteName"`
	Description  string `json:"description" form:"description"`
	LogoURL      string `json:"logoUrl" form:"logoUrl"`
	FooterText   string `json:"footerText" form:"footerText"`
	PostsPerPage int    `json:"postsPerPage" form:"postsPerPage"`
}

func (r settingsRequest) toInput() service.SettingsInput {
	return service.SettingsInput{
		SiteName:     r.SiteName,
		Description:  r.Description,
		LogoURL:      r.LogoURL,
		FooterText:   r.FooterText,
		PostsPerPage: r.PostsPerPage,
	}
}

func (h *Handler) getSettings(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}
	settings, err := h.svc.Settings.Get(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, settingsToResponse(*settings))
}

func (h *Handler) updateSettings(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}
	var req settingsRequest
	if !bindJSON(c, &req) {
		return
	}
	settings, err := h.svc.Settings.Update(c.Request.Context(), req.toInput())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, settingsToResponse(*settings))
}
