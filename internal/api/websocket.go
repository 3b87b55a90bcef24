package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/soulfile-vault/backend/internal/models"
)

// WebSocket message types for upload protocol
const (
	// Client -> Server messages
	MsgTypeUpload = "upload"
	MsgTypePing   = "ping"

	// Server -> Client messages
	MsgTypeConnected  = "connected"
	MsgTypeProcessing = "processing"
	MsgTypeComplete   = "complete"
	MsgTypeError      = "error"
	MsgTypePong       = "pong"
)

// WebSocket message structure
type WSMessage struct {
	Type      string          `json:"type"`
	ID        string          `json:"id,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// Upload payload: one file per message
type UploadPayload struct {
	Name      string `json:"name"`
	MediaType string `json:"mediaType"`
	Data      string `json:"data"`               // Base64 encoded file
	Encoding  string `json:"encoding,omitempty"` // "gzip", "none"
}

// WebSocket completion response
type WSCompleteResponse struct {
	BatchID string            `json:"batchId"`
	Result  models.ItemResult `json:"result"`
	Message string            `json:"message"`
}

// WebSocket error response
type WSErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// WebSocketHandler manages WebSocket connections for file uploads
type WebSocketHandler struct {
	batches  BatchRunner
	upgrader websocket.Upgrader
	writeMu  sync.Mutex
}

// NewWebSocketHandler creates a new WebSocket upload handler
func NewWebSocketHandler(batches BatchRunner) *WebSocketHandler {
	return &WebSocketHandler{
		batches: batches,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Allow connections from dev server
				return true
			},
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
		},
	}
}

// HandleWebSocket upgrades HTTP connection to WebSocket and handles upload protocol.
// Messages on one connection are processed in the order received.
func (wsh *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	ws, err := wsh.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	fmt.Println("[WebSocket] Client connected for upload")

	wsh.sendMessage(ws, WSMessage{
		Type:      MsgTypeConnected,
		Timestamp: time.Now().UnixMilli(),
	})

	// Main message loop
	for {
		var msg WSMessage
		err := ws.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				fmt.Printf("[WebSocket] Connection error: %v\n", err)
			}
			break
		}

		switch msg.Type {
		case MsgTypePing:
			wsh.sendMessage(ws, WSMessage{Type: MsgTypePong, ID: msg.ID, Timestamp: time.Now().UnixMilli()})
		case MsgTypeUpload:
			wsh.handleUpload(c, ws, msg)
		default:
			wsh.sendError(ws, msg.ID, "Unknown message type: "+msg.Type, "INVALID_TYPE")
		}
	}

	fmt.Println("[WebSocket] Client disconnected")
	return nil
}

// handleUpload runs a single-file batch and reports the outcome
func (wsh *WebSocketHandler) handleUpload(c echo.Context, ws *websocket.Conn, msg WSMessage) {
	id := msg.ID
	if id == "" {
		id = uuid.New().String()
	}

	var payload UploadPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		wsh.sendError(ws, id, "Invalid upload payload: "+err.Error(), "INVALID_PAYLOAD")
		return
	}
	if payload.Name == "" {
		wsh.sendError(ws, id, "Upload payload has no name", "INVALID_PAYLOAD")
		return
	}

	data, err := decodePayload(payload.Data, payload.Encoding)
	if err != nil {
		wsh.sendError(ws, id, err.Error(), "INVALID_DATA")
		return
	}

	wsh.sendMessage(ws, WSMessage{
		Type:      MsgTypeProcessing,
		ID:        id,
		Timestamp: time.Now().UnixMilli(),
	})

	batch := wsh.batches.RunBatch(c.Request().Context(), []models.Upload{{
		Name:      payload.Name,
		MediaType: payload.MediaType,
		Data:      data,
	}})
	result := batch.Items[0]

	if result.Status != models.ItemStatusComplete {
		wsh.sendError(ws, id, result.Summary(), "PROCESSING_FAILED")
		return
	}

	wsh.sendMessage(ws, WSMessage{
		Type:      MsgTypeComplete,
		ID:        id,
		Timestamp: time.Now().UnixMilli(),
		Payload: mustJSON(WSCompleteResponse{
			BatchID: batch.ID,
			Result:  result,
			Message: result.Summary(),
		}),
	})
}

// Helper methods

func (wsh *WebSocketHandler) sendMessage(ws *websocket.Conn, msg WSMessage) {
	wsh.writeMu.Lock()
	defer wsh.writeMu.Unlock()

	if err := ws.WriteJSON(msg); err != nil {
		fmt.Printf("[WebSocket] Failed to send message: %v\n", err)
	}
}

func (wsh *WebSocketHandler) sendError(ws *websocket.Conn, id, message, code string) {
	wsh.sendMessage(ws, WSMessage{
		Type:      MsgTypeError,
		ID:        id,
		Timestamp: time.Now().UnixMilli(),
		Payload: mustJSON(WSErrorResponse{
			Message: message,
			Code:    code,
		}),
	})
}

func mustJSON(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return []byte("{}")
	}
	return data
}
