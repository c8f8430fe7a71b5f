package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/legwalet/le-barber/internal/httperr"
	"github.com/legwalet/le-barber/internal/httpresp"
	"github.com/legwalet/le-barber/internal/media"
)

const maxUploadBytes = 10 << 20

// ======================================================
// HANDLER
// ======================================================

type UploadHandler struct {
	uploader *media.Uploader
}

func NewUploadHandler(uploader *media.Uploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

// ======================================================
// UPLOAD
// ======================================================

// Upload accepts a multipart image, re-encodes it and stores it. The
// response carries the storage key and a serving URL.
func (h *UploadHandler) Upload(c *gin.Context) {
	kind := c.DefaultPostForm("kind", "portfolio")
	if kind != "portfolio" && kind != "rental" && kind != "avatar" {
		httperr.BadRequest(c, "invalid_request", "unknown upload kind")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "file is required")
		return
	}
	if fileHeader.Size > maxUploadBytes {
		httperr.BadRequest(c, "file_too_large", "image exceeds the size limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "upload_error", "failed to open upload")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		httperr.Internal(c, "upload_error", "failed to read upload")
		return
	}

	key, err := h.uploader.Upload(c.Request.Context(), kind, raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "unsupported or corrupt image")
		return
	}

	url, err := h.uploader.URL(c.Request.Context(), key)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, gin.H{"key": key, "url": url})
}
