// handlers_files.go - Listing of stored file records
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/vmihailenco/msgpack/v5"
)

// FilesHandlerImpl implements the FilesHandler interface
type FilesHandlerImpl struct {
	records RecordLister
}

// NewFilesHandler creates a new listing handler
func NewFilesHandler(records RecordLister) FilesHandler {
	return &FilesHandlerImpl{records: records}
}

// HandleListFiles returns every stored record in storage order
func (h *FilesHandlerImpl) HandleListFiles(c echo.Context) error {
	records, err := h.records.ListAll(c.Request().Context())
	if err != nil {
		return NewInternalError("failed to list files", err)
	}

	return c.JSON(http.StatusOK, records)
}

// HandleListFilesMsgpack returns the listing encoded as msgpack
func (h *FilesHandlerImpl) HandleListFilesMsgpack(c echo.Context) error {
	records, err := h.records.ListAll(c.Request().Context())
	if err != nil {
		return NewInternalError("failed to list files", err)
	}

	data, err := msgpack.Marshal(map[string]interface{}{
		"files": records,
		"total": len(records),
	})
	if err != nil {
		return NewInternalError("failed to encode msgpack", err)
	}

	return c.Blob(http.StatusOK, "application/msgpack", data)
}
