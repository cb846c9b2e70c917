package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jaquitoriano/vercel-blog-sub001/internal/domain"
	"github.com/jaquitoriano/vercel-blog-sub001/internal/service"
)

const invalidCredentialsMessage = "Invalid email or password"

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type sessionUser struct {
	ID    uint        `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.svc.Users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, errorBody(invalidCredentialsMessage))
			return
		}
		h.writeError(c, err)
		return
	}

	h.opts.Cookie.Issue(c.Writer, c.Request, user.Email)
	h.log.WithField("user_id", user.ID).Info("user signed in")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": sessionUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
	})
}

func (h *Handler) logout(c *gin.Context) {
	h.opts.Cookie.Clear(c.Writer, c.Request)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) me(c *gin.Context) {
	sess, ok := h.requireAdmin(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, userToResponse(*sess.User))
}

func (h *Handler) loginPage(c *gin.Context) {
	h.renderLogin(c, http.StatusOK, c.Query("next"), "", "")
}

func (h *Handler) loginForm(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.log.WithError(err).Warn("login form rejected")
		h.renderLogin(c, http.StatusBadRequest, c.Query("next"), "", "The submitted form could not be read.")
		return
	}
	next := c.PostForm("next")

	user, err := h.svc.Users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		status, msg := http.StatusUnauthorized, invalidCredentialsMessage
		if !errors.Is(err, service.ErrInvalidCredentials) {
			h.log.WithError(err).Error("login failed")
			status, msg = http.StatusInternalServerError, genericFailure
		}
		h.renderLogin(c, status, next, req.Email, msg)
		return
	}

	h.opts.Cookie.Issue(c.Writer, c.Request, user.Email)
	h.log.WithField("user_id", user.ID).Info("user signed in")
	c.Redirect(http.StatusSeeOther, safeNext(next))
}

func (h *Handler) logoutForm(c *gin.Context) {
	h.opts.Cookie.Clear(c.Writer, c.Request)
	c.Redirect(http.StatusSeeOther, loginPath)
}

func (h *Handler) renderLogin(c *gin.Context, status int, next, email, errMsg string) {
	c.HTML(status, "login.tmpl", gin.H{
		"Settings": siteSettings(c),
		"Next":     next,
		"Email":    email,
		"Error":    errMsg,
	})
}
