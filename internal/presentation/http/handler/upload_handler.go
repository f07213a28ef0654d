package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/xylem-api/internal/application/service"
	"github.com/sangkips/xylem-api/internal/presentation/http/dto/response"
	"github.com/sangkips/xylem-api/pkg/apperror"
	"github.com/sangkips/xylem-api/pkg/storage"
)

type UploadHandler struct {
	uploadService *service.UploadService
}

func NewUploadHandler(uploadService *service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// Upload forwards the multipart "file" field to the storage backend. The
// body is capped before parsing so oversized files never reach disk.
func (h *UploadHandler) Upload(c *gin.Context) {
	limit := h.uploadService.BodyLimit()
	if c.Request.ContentLength > limit {
		response.Error(c, h.uploadService.TooLarge())
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, h.uploadService.TooLarge())
			return
		}
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			response.Error(c, apperror.NewBadRequestError(storage.ErrNoFile.Error()))
			return
		}
		response.BadRequest(c, invalidBody)
		return
	}
	file, err := header.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	res, err := h.uploadService.Upload(c.Request.Context(), &storage.UploadInput{
		Filename:    header.Filename,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	data := gin.H{}
	for k, v := range res.Extra {
		data[k] = v
	}
	data["provider"] = res.Provider
	if res.URL != "" {
		data["url"] = res.URL
	}
	if res.Key != "" {
		data["key"] = res.Key
	}
	response.OK(c, "File uploaded successfully", data)
}
