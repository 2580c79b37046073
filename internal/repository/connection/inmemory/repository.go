package inmemory

import (
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/watchparty/server/internal/repository/connection"
)

// repo maps live connections to client ids and keeps the explicit
// client-id -> room-id side table consulted on disconnect.
type repo struct {
	connList map[*websocket.Conn]string
	idList   map[string]*websocket.Conn
	roomList map[string]string
	mu       sync.RWMutex
	logger   *slog.Logger
}

func NewRepo(logger *slog.Logger) *repo {
	return &repo{
		connList: make(map[*websocket.Conn]string),
		idList:   make(map[string]*websocket.Conn),
		roomList: make(map[string]string),
		logger:   logger,
	}
}

func (r *repo) Add(conn *websocket.Conn, clientId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.connList[conn] != "" || r.idList[clientId] != nil {
		return connection.ErrAlreadyExists
	}

	r.connList[conn] = clientId
	r.idList[clientId] = conn
	r.logger.Debug("connection added", "client_id", clientId)

	return nil
}

// RemoveByClientId drops the connection mapping and the room attachment.
func (r *repo) RemoveByClientId(clientId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, ok := r.idList[clientId]
	if !ok {
		return connection.ErrNotFound
	}

	delete(r.connList, conn)
	delete(r.idList, clientId)
	delete(r.roomList, clientId)
	r.logger.Debug("connection removed", "client_id", clientId)

	return nil
}

func (r *repo) GetClientId(conn *websocket.Conn) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	clientId, ok := r.connList[conn]
	if !ok {
		return "", connection.ErrNotFound
	}

	return clientId, nil
}

func (r *repo) GetConn(clientId string) (*websocket.Conn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conn, ok := r.idList[clientId]
	if !ok {
		return nil, connection.ErrNotFound
	}

	return conn, nil
}

// SetRoomId records which room the client is attached to. Each connection
// tracks at most one active room.
func (r *repo) SetRoomId(clientId, roomId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.idList[clientId]; !ok {
		return connection.ErrNotFound
	}

	r.roomList[clientId] = roomId

	return nil
}

func (r *repo) GetRoomId(clientId string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	roomId, ok := r.roomList[clientId]
	if !ok {
		return "", connection.ErrNotFound
	}

	return roomId, nil
}

func (r *repo) ClearRoomId(clientId string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.roomList, clientId)
}
