// handlers_upload.go - File ingestion handlers
package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/soulfile-vault/backend/internal/compress"
	"github.com/soulfile-vault/backend/internal/ingest"
	"github.com/soulfile-vault/backend/internal/metadata"
	"github.com/soulfile-vault/backend/internal/models"
	"github.com/soulfile-vault/backend/internal/storage"
)

// Multipart field names accepted by HandleUploadFiles
var uploadFields = []string{"files", "file"}

// UploadHandlerImpl implements the UploadHandler interface
type UploadHandlerImpl struct {
	ingester Ingester
	batches  BatchRunner
}

// NewUploadHandler creates a new upload handler instance
func NewUploadHandler(ingester Ingester, batches BatchRunner) UploadHandler {
	return &UploadHandlerImpl{
		ingester: ingester,
		batches:  batches,
	}
}

// HandleUploadFiles accepts zero or more multipart files and processes them as one batch.
// Each item succeeds or fails on its own; the response lists every outcome.
func (h *UploadHandlerImpl) HandleUploadFiles(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return NewBadRequestError("expected multipart/form-data body", err)
	}

	var uploads []models.Upload
	for _, field := range uploadFields {
		for _, fh := range form.File[field] {
			src, err := fh.Open()
			if err != nil {
				return NewInternalError("failed to open uploaded file", err)
			}
			data, err := io.ReadAll(src)
			src.Close()
			if err != nil {
				return NewInternalError("failed to read uploaded file", err)
			}

			uploads = append(uploads, models.Upload{
				Name:      fh.Filename,
				MediaType: fh.Header.Get(echo.HeaderContentType),
				Data:      data,
			})
		}
	}

	batch := h.batches.RunBatch(c.Request().Context(), uploads)
	return c.JSON(http.StatusOK, batch)
}

// HandleUploadJSON accepts one file as base64 JSON and processes it immediately
func (h *UploadHandlerImpl) HandleUploadJSON(c echo.Context) error {
	var req uploadFileRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	if err := req.validate(); err != nil {
		return err
	}

	data, err := decodePayload(req.Data, req.Encoding)
	if err != nil {
		return NewBadRequestError("invalid file data", err)
	}

	res, err := h.ingester.Process(c.Request().Context(), models.Upload{
		Name:      req.Name,
		MediaType: req.MediaType,
		Data:      data,
	})
	if err != nil {
		return processError(req.Name, err)
	}

	item := models.ItemResult{
		Name:   req.Name,
		Status: models.ItemStatusComplete,
		Path:   res.Path,
		SizeKB: res.SizeKB,
		Domain: res.Domain,
	}
	return c.JSON(http.StatusCreated, uploadFileResponse{
		ItemResult: item,
		Message:    item.Summary(),
	})
}

// HandleGetBatch returns the outcome of a recent batch
func (h *UploadHandlerImpl) HandleGetBatch(c echo.Context) error {
	id := c.Param("batchId")
	if id == "" {
		return NewValidationError("batchId")
	}

	batch, ok := h.batches.GetBatch(id)
	if !ok {
		return NewNotFoundError("batch", id)
	}

	return c.JSON(http.StatusOK, batch)
}

// processError maps ingestion failures onto API errors
func processError(name string, err error) *APIError {
	switch {
	case errors.Is(err, compress.ErrDecode),
		errors.Is(err, compress.ErrEncode),
		errors.Is(err, compress.ErrUnsupportedFormat):
		return NewUnprocessableError("failed to compress "+name, err)
	case errors.Is(err, ingest.ErrMissingName),
		errors.Is(err, storage.ErrInvalidName),
		errors.Is(err, metadata.ErrIncompleteRecord):
		return NewBadRequestError("invalid upload "+name, err)
	default:
		return NewInternalError("failed to process "+name, err)
	}
}

// Request/Response types

type uploadFileRequest struct {
	Name      string `json:"name"`
	MediaType string `json:"mediaType"`
	Data      string `json:"data"`               // Base64-encoded content
	Encoding  string `json:"encoding,omitempty"` // "gzip" or empty
}

func (r *uploadFileRequest) validate() error {
	if r.Name == "" {
		return NewValidationError("name")
	}
	if r.Data == "" {
		return NewValidationError("data")
	}
	return nil
}

type uploadFileResponse struct {
	models.ItemResult
	Message string `json:"message"`
}
