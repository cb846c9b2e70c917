package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jaquitoriano/vercel-blog-sub001/internal/domain"
	"github.com/jaquitoriano/vercel-blog-sub001/internal/service"
)

type userRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (r userRequest) toInput() service.UserInput {
	return service.UserInput{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Role:     r.Role,
	}
}

func (h *Handler) listUsers(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}
	users, err := h.svc.Users.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = userToResponse(users[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getUser(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	user, err := h.svc.Users.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(*user))
}

func (h *Handler) createUser(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}
	var req userRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.svc.Users.Create(c.Request.Context(), req.toInput())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, userToResponse(*user))
}

func (h *Handler) updateUser(c *gin.Context) {
	sess, ok := h.requireAdmin(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req userRequest
	if !bindJSON(c, &req) {
		return
	}
	self := sess.User.ID == id
	if self && strings.TrimSpace(req.Role) != "" && !domain.ParseRole(req.Role).Is(domain.RoleAdmin) {
		c.JSON(http.StatusBadRequest, errorBody("you cannot remove your own admin role"))
		return
	}
	user, err := h.svc.Users.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.writeError(c, err)
		return
	}
	// The cookie carries the email, so a changed address needs a fresh one.
	if self && user.Email != sess.User.Email {
		h.opts.Cookie.Issue(c.Writer, c.Request, user.Email)
	}
	c.JSON(http.StatusOK, userToResponse(*user))
}

func (h *Handler) deleteUser(c *gin.Context) {
	sess, ok := h.requireAdmin(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if sess.User.ID == id {
		c.JSON(http.StatusBadRequest, errorBody("you cannot delete your own account"))
		return
	}
	if err := h.svc.Users.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
