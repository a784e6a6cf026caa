package watch

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/vango-dev/routegen/internal/logger"
)

// ReloadMessageType represents the type of reload message.
type ReloadMessageType string

const (
	// ReloadTypeRoutes tells clients the generated files changed.
	ReloadTypeRoutes ReloadMessageType = "routes"

	// ReloadTypeError tells clients the last run failed.
	ReloadTypeError ReloadMessageType = "error"
)

// ReloadMessage is sent to dev clients via WebSocket.
type ReloadMessage struct {
	Type  ReloadMessageType `json:"type"`
	Error string            `json:"error,omitempty"`
	Files []string          `json:"files,omitempty"`
}

// ReloadServer manages WebSocket connections of dev clients waiting for
// regenerated routes.
type ReloadServer struct {
	clients  map[*websocket.Conn]bool
	mu       sync.RWMutex
	writeMu  sync.Mutex
	upgrader websocket.Upgrader
	log      *zap.Logger

	// OnClientsChanged, if set, receives the client count after every
	// connect and disconnect.
	OnClientsChanged func(n int)
}

// NewReloadServer creates a new reload server.
func NewReloadServer(log *zap.Logger) *ReloadServer {
	return &ReloadServer{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // dev tooling on localhost
			},
		},
		log: logger.OrNop(log),
	}
}

// HandleWebSocket handles WebSocket upgrade and connection.
func (r *ReloadServer) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := r.upgrader.Upgrade(w, req, nil)
	if err != nil {
		r.log.Debug("reload upgrade failed", zap.Error(err))
		return
	}

	r.mu.Lock()
	r.clients[conn] = true
	n := len(r.clients)
	r.mu.Unlock()
	r.clientsChanged(n)
	r.log.Debug("reload client connected", zap.String("remote", req.RemoteAddr))

	// Keep connection alive until client disconnects
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	r.remove(conn)
}

// NotifyRoutes tells clients that files were regenerated.
func (r *ReloadServer) NotifyRoutes(files []string) {
	r.broadcast(ReloadMessage{Type: ReloadTypeRoutes, Files: files})
}

// NotifyError sends an error message to all clients.
func (r *ReloadServer) NotifyError(errMsg string) {
	r.broadcast(ReloadMessage{Type: ReloadTypeError, Error: errMsg})
}

// broadcast sends a message to all connected clients.
func (r *ReloadServer) broadcast(msg ReloadMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	r.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(r.clients))
	for client := range r.clients {
		clients = append(clients, client)
	}
	r.mu.RUnlock()

	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	for _, client := range clients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			r.remove(client)
		}
	}
}

func (r *ReloadServer) remove(conn *websocket.Conn) {
	r.mu.Lock()
	_, ok := r.clients[conn]
	delete(r.clients, conn)
	n := len(r.clients)
	r.mu.Unlock()

	conn.Close()
	if ok {
		r.clientsChanged(n)
	}
}

func (r *ReloadServer) clientsChanged(n int) {
	if r.OnClientsChanged != nil {
		r.OnClientsChanged(n)
	}
}

// ClientCount returns the number of connected clients.
func (r *ReloadServer) ClientCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// Close closes all client connections.
func (r *ReloadServer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for client := range r.clients {
		client.Close()
		delete(r.clients, client)
	}
}
