package http

import (
	"io"
	"net/http"

	"github.com/comitanigiacomo/dailypulse/internal/adapters/media"
	"github.com/comitanigiacomo/dailypulse/internal/core/usecases"
	"github.com/gin-gonic/gin"
)

const imageField = "image"

type MediaHandler struct {
	upload *usecases.UploadImage
}

func NewMediaHandler(upload *usecases.UploadImage) *MediaHandler {
	return &MediaHandler{upload: upload}
}

type uploadResponse struct {
	URL string `json:"url"`
}

func (h *MediaHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/media", h.Upload)
}

// Upload godoc
// @Summary Upload a post image
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "JPEG, PNG or GIF"
// @Success 201 {object} uploadResponse
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /media [post]
func (h *MediaHandler) Upload(c *gin.Context) {
	header, err := c.FormFile(imageField)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if header.Size > media.MaxImageBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image is too large"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, media.MaxImageBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}

	url, err := h.upload.Execute(c.Request.Context(), data).Get()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, uploadResponse{URL: url})
}
