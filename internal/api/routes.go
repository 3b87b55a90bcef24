// routes.go - Route registration helpers
// This file provides a clean way to register all API routes
package api

import (
	"github.com/labstack/echo/v4"
	"github.com/soulfile-vault/backend/internal/models"
)

// Dependencies holds all handler dependencies
type Dependencies struct {
	Records  RecordLister
	Ingester Ingester
	Batches  BatchRunner
	Symbols  []models.SymbolEntry
	Version  string
}

// Handlers holds all handler instances
type Handlers struct {
	Health    HealthHandler
	Upload    UploadHandler
	Files     FilesHandler
	Symbols   SymbolHandler
	WebSocket *WebSocketHandler
}

// NewHandlers creates all handler instances
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(deps.Version),
		Upload:    NewUploadHandler(deps.Ingester, deps.Batches),
		Files:     NewFilesHandler(deps.Records),
		Symbols:   NewSymbolHandler(deps.Symbols),
		WebSocket: NewWebSocketHandler(deps.Batches),
	}
}

// RegisterRoutes registers all API routes with the Echo instance
func RegisterRoutes(e *echo.Echo, handlers *Handlers) {
	apiGroup := e.Group("/api")

	// Health check
	apiGroup.GET("/health", handlers.Health.HandleHealth)

	// WebSocket endpoint
	apiGroup.GET("/ws/uploads", handlers.WebSocket.HandleWebSocket)

	// Ingestion
	filesGroup := apiGroup.Group("/files")
	filesGroup.POST("/upload", handlers.Upload.HandleUploadFiles)
	filesGroup.POST("/upload/json", handlers.Upload.HandleUploadJSON)
	filesGroup.GET("/upload/:batchId", handlers.Upload.HandleGetBatch)

	// Listing
	filesGroup.GET("", handlers.Files.HandleListFiles)
	filesGroup.GET("/msgpack", handlers.Files.HandleListFilesMsgpack)

	// Symbol table
	apiGroup.GET("/symbols", handlers.Symbols.HandleGetSymbols)
}

// SetupMiddleware configures common middleware
func SetupMiddleware(e *echo.Echo, showErrorDetails bool) {
	// Use custom error handler
	e.HTTPErrorHandler = NewErrorHandler(showErrorDetails)
}
