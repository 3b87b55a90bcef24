// handlers_files_test.go - Tests for listing, symbol and health handlers
package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/soulfile-vault/backend/internal/models"
	"github.com/soulfile-vault/backend/internal/symbols"
	"github.com/soulfile-vault/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func seededRecords() *testutil.MockMetadataStore {
	store := testutil.NewMockMetadataStore()
	store.AddRecord(models.FileRecord{Name: "photo.jpg", Path: "compressed_photo.jpg", CompressedSize: 12.5, Domain: models.DomainImage})
	store.AddRecord(models.FileRecord{Name: "notes.txt", Path: "notes.txt", CompressedSize: 0.5, Domain: models.DomainDocument})
	return store
}

func TestFilesHandler_HandleListFiles(t *testing.T) {
	tests := []struct {
		name      string
		store     *testutil.MockMetadataStore
		wantNames []string
	}{
		{name: "empty store", store: testutil.NewMockMetadataStore(), wantNames: []string{}},
		{name: "records in storage order", store: seededRecords(), wantNames: []string{"photo.jpg", "notes.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewFilesHandler(tt.store)

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/api/files", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			require.NoError(t, handler.HandleListFiles(c))
			assert.Equal(t, http.StatusOK, rec.Code)

			var records []models.FileRecord
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
			require.NotNil(t, records, "empty listing should be an array, not null")

			names := make([]string, 0, len(records))
			for _, r := range records {
				names = append(names, r.Name)
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestFilesHandler_HandleListFiles_StoreError(t *testing.T) {
	store := testutil.NewMockMetadataStore()
	store.ListErr = testutil.ErrMockFailure
	handler := NewFilesHandler(store)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/files", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.HandleListFiles(c)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "INTERNAL_ERROR", apiErr.Code)
}

func TestFilesHandler_HandleListFilesMsgpack(t *testing.T) {
	handler := NewFilesHandler(seededRecords())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/files/msgpack", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.HandleListFilesMsgpack(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/msgpack", rec.Header().Get(echo.HeaderContentType))

	var decoded struct {
		Files []models.FileRecord `msgpack:"files"`
		Total int                 `msgpack:"total"`
	}
	require.NoError(t, msgpack.Unmarshal(rec.Body.Bytes(), &decoded))
	assert.Equal(t, 2, decoded.Total)
	require.Len(t, decoded.Files, 2)
	assert.Equal(t, "compressed_photo.jpg", decoded.Files[0].Path)
	assert.Equal(t, 12.5, decoded.Files[0].CompressedSize)
	assert.Equal(t, models.DomainDocument, decoded.Files[1].Domain)
}

func TestSymbolHandler_HandleGetSymbols(t *testing.T) {
	tests := []struct {
		name    string
		entries []models.SymbolEntry
		want    int
	}{
		{name: "default table", entries: symbols.DefaultEntries(), want: 4},
		{name: "nil table", entries: nil, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewSymbolHandler(tt.entries)

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/api/symbols", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			require.NoError(t, handler.HandleGetSymbols(c))

			var got []models.SymbolEntry
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			require.NotNil(t, got)
			assert.Len(t, got, tt.want)
			if tt.want > 0 {
				assert.Equal(t, "α", got[0].Symbol)
			}
		})
	}
}

func TestHealthHandler_HandleHealth(t *testing.T) {
	handler := NewHealthHandler("1.2.3")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.HandleHealth(c))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "1.2.3", body["version"])
}

func TestRegisterRoutes(t *testing.T) {
	env := newTestEnv()
	e := echo.New()
	SetupMiddleware(e, false)
	RegisterRoutes(e, NewHandlers(&Dependencies{
		Records:  env.records,
		Ingester: env.pipeline,
		Batches:  env.manager,
		Symbols:  symbols.DefaultEntries(),
		Version:  "test",
	}))

	tests := []struct {
		method     string
		path       string
		wantStatus int
	}{
		{http.MethodGet, "/api/health", http.StatusOK},
		{http.MethodGet, "/api/files", http.StatusOK},
		{http.MethodGet, "/api/files/msgpack", http.StatusOK},
		{http.MethodGet, "/api/symbols", http.StatusOK},
		{http.MethodGet, "/api/files/upload/unknown", http.StatusNotFound},
		{http.MethodGet, "/api/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
