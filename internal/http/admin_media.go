package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	uploadField  = "file"
	signedURLTTL = 15 * time.Minute
)

func (h *Handler) uploadImage(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}

	// Leave room for the multipart envelope around the file itself.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.opts.MaxUploadBytes+64<<10)
	fh, err := c.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, errorBody("file is too large"))
			return
		}
		c.JSON(http.StatusBadRequest, errorBody("multipart field \"file\" is required"))
		return
	}
	if fh.Size > h.opts.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, errorBody("file is too large"))
		return
	}

	file, err := fh.Open()
	if err != nil {
		h.writeError(c, err)
		return
	}
	defer file.Close()

	media, err := h.svc.Media.UploadImage(c.Request.Context(), fh.Filename, file)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.log.WithField("key", media.Key).Info("image uploaded")
	c.JSON(http.StatusCreated, mediaToResponse(*media))
}

func (h *Handler) listUploads(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}
	items, err := h.svc.Media.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	resp := make([]MediaResponse, len(items))
	for i := range items {
		resp[i] = mediaToResponse(items[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) deleteUpload(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}
	key := c.Query("key")
	if err := h.svc.Media.Delete(c.Request.Context(), key); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": key})
}

func (h *Handler) signedUploadURL(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}
	url, err := h.svc.Media.SignedURL(c.Request.Context(), c.Query("key"), signedURLTTL)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"url":       url,
		"expiresAt": time.Now().Add(signedURLTTL).UTC().Format(time.RFC3339),
	})
}
