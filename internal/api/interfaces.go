// interfaces.go - Handler interface definitions for clean separation of concerns
package api

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/soulfile-vault/backend/internal/ingest"
	"github.com/soulfile-vault/backend/internal/models"
	"github.com/soulfile-vault/backend/internal/upload"
)

// UploadHandler handles file ingestion
type UploadHandler interface {
	HandleUploadFiles(c echo.Context) error
	HandleUploadJSON(c echo.Context) error
	HandleGetBatch(c echo.Context) error
}

// FilesHandler lists stored file records
type FilesHandler interface {
	HandleListFiles(c echo.Context) error
	HandleListFilesMsgpack(c echo.Context) error
}

// SymbolHandler serves the symbol reference table
type SymbolHandler interface {
	HandleGetSymbols(c echo.Context) error
}

// HealthHandler handles health check operations
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}

// Ingester processes a single upload; implemented by *ingest.Pipeline
type Ingester interface {
	Process(ctx context.Context, u models.Upload) (ingest.Result, error)
}

// BatchRunner processes a batch of uploads; implemented by *upload.Manager
type BatchRunner interface {
	RunBatch(ctx context.Context, uploads []models.Upload) *upload.Batch
	GetBatch(id string) (*upload.Batch, bool)
}

// RecordLister reads all metadata records; implemented by metadata.Store
type RecordLister interface {
	ListAll(ctx context.Context) ([]models.FileRecord, error)
}
