package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jaquitoriano/vercel-blog-sub001/internal/auth"
	"github.com/jaquitoriano/vercel-blog-sub001/internal/domain"
	"github.com/jaquitoriano/vercel-blog-sub001/internal/repository"
	"github.com/jaquitoriano/vercel-blog-sub001/internal/service"
)

const genericFailure = "something went wrong, please try again"

func errorBody(message string) gin.H {
	return gin.H{"success": false, "message": message}
}

// classify maps an error onto a status code and a message that is safe to
// show to the client.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, auth.ErrForbidden):
		return http.StatusForbidden, "admin access required"
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, repository.ErrConflict):
		return http.StatusConflict, "a record with the same unique value already exists"
	case errors.Is(err, service.ErrStorageDisabled):
		return http.StatusServiceUnavailable, err.Error()
	}
	return http.StatusInternalServerError, genericFailure
}

func (h *Handler) writeError(c *gin.Context, err error) {
	status, msg := classify(err)
	if status == http.StatusInternalServerError {
		h.log.WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, errorBody(msg))
}

// requireAdmin resolves the caller and writes 401/403 when it may not act.
func (h *Handler) requireAdmin(c *gin.Context) (auth.Session, bool) {
	sess := h.sessions.Resolve(c.Request.Context(), c.Request)
	if err := auth.Authorize(sess, domain.RoleAdmin); err != nil {
		h.writeError(c, err)
		return sess, false
	}
	return sess, true
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorBody("invalid id"))
		return 0, false
	}
	return uint(id), true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorBody("invalid request body: "+err.Error()))
		return false
	}
	return true
}

var errInvalidForm = fmt.Errorf("%w: the submitted form could not be read", service.ErrInvalidInput)
