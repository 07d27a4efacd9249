package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect4-engine/internal/domain"
)

const writeWait = 10 * time.Second

// client wraps one socket. conn.WriteJSON is not safe for concurrent use, so
// every write goes through mu.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func newClient(conn *websocket.Conn) *client {
	return &client{conn: conn}
}

func (c *client) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(v)
}

// ConnectionManager maps each game to the socket that is playing it
type ConnectionManager struct {
	connections map[string]*client
	mu          sync.RWMutex
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[string]*client),
	}
}

func (cm *ConnectionManager) AddConnection(gameID string, c *client) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.connections[gameID] = c
}

// RemoveConnectionIfMatching avoids dropping a newer socket that took over
// the same game.
func (cm *ConnectionManager) RemoveConnectionIfMatching(gameID string, c *client) bool {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if current, exists := cm.connections[gameID]; exists && current == c {
		delete(cm.connections, gameID)
		return true
	}
	return false
}

func (cm *ConnectionManager) Count() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.connections)
}

// SendMessage sends a JSON message to the socket playing gameID. Games nobody
// is connected to are silently skipped.
func (cm *ConnectionManager) SendMessage(gameID string, message domain.ServerMessage) error {
	cm.mu.RLock()
	c, exists := cm.connections[gameID]
	cm.mu.RUnlock()

	if !exists {
		return nil
	}
	return c.writeJSON(message)
}
