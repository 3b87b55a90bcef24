// handlers_symbols.go - Symbol reference table
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/soulfile-vault/backend/internal/models"
)

// SymbolHandlerImpl serves the table loaded at startup; it never changes afterwards.
type SymbolHandlerImpl struct {
	symbols []models.SymbolEntry
}

// NewSymbolHandler creates a new symbol handler
func NewSymbolHandler(symbols []models.SymbolEntry) SymbolHandler {
	if symbols == nil {
		symbols = []models.SymbolEntry{}
	}
	return &SymbolHandlerImpl{symbols: symbols}
}

// HandleGetSymbols returns the symbol table
func (h *SymbolHandlerImpl) HandleGetSymbols(c echo.Context) error {
	return c.JSON(http.StatusOK, h.symbols)
}
