// Package gateway bridges WebSocket clients onto table sessions. One
// connection owns at most one session; every envelope the session emits
// is pushed down the socket as JSON text.
package gateway

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Jimmyu2foru18/pookies-grand-casino/casino"
	"github.com/Jimmyu2foru18/pookies-grand-casino/internal/auth"
	"github.com/Jimmyu2foru18/pookies-grand-casino/internal/codec"
	"github.com/Jimmyu2foru18/pookies-grand-casino/internal/ledger"
	"github.com/Jimmyu2foru18/pookies-grand-casino/internal/table"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // TODO: Restrict in production
	},
}

// Connection is one WebSocket client.
type Connection struct {
	ID     string
	UserID uint64

	conn *websocket.Conn
	send chan []byte

	gateway *Gateway

	mu      sync.Mutex
	session *table.Session
}

// Gateway tracks live connections and spawns sessions for them.
type Gateway struct {
	mu          sync.RWMutex
	connections map[string]*Connection
	nextConnID  uint64

	auth   auth.Service
	ledger ledger.Service
}

func New(authSvc auth.Service, led ledger.Service) *Gateway {
	return &Gateway{
		connections: make(map[string]*Connection),
		auth:        authSvc,
		ledger:      led,
	}
}

// HandleWebSocket upgrades the request. The session token travels in
// the Authorization header or the token query parameter; unknown tokens
// play as anonymous (nothing is persisted for them).
func (g *Gateway) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	var userID uint64
	if g.auth != nil {
		userID, _, _ = g.auth.ResolveSession(auth.BearerToken(r))
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Gateway] Upgrade error: %v", err)
		return
	}

	g.mu.Lock()
	g.nextConnID++
	c := &Connection{
		ID:      fmt.Sprintf("conn_%d", g.nextConnID),
		UserID:  userID,
		conn:    conn,
		send:    make(chan []byte, 256),
		gateway: g,
	}
	g.connections[c.ID] = c
	total := len(g.connections)
	g.mu.Unlock()

	log.Printf("[Gateway] Client connected: %s (userID=%d), total: %d", c.ID, userID, total)

	go c.readPump()
	go c.writePump()
}

func (c *Connection) readPump() {
	defer func() {
		c.gateway.removeConnection(c)
		c.closeSession()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(65536)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		messageType, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[Gateway] Read error: %v", err)
			}
			break
		}
		if messageType == websocket.TextMessage || messageType == websocket.BinaryMessage {
			c.handleMessage(message)
		}
	}
}

func (c *Connection) handleMessage(data []byte) {
	in, err := codec.DecodeIntent(data)
	if err != nil {
		c.sendError(0, err)
		return
	}

	if in.Type == codec.IntentStartSession {
		c.startSession(in)
		return
	}

	c.mu.Lock()
	sess := c.session
	c.mu.Unlock()
	if sess == nil {
		c.sendError(in.ClientSeq, fmt.Errorf("no active session"))
		return
	}

	resp, err := sess.Submit(in)
	if err != nil {
		c.sendError(in.ClientSeq, err)
		return
	}
	if err := <-resp; err != nil {
		c.sendError(in.ClientSeq, err)
	}
}

func (c *Connection) startSession(in codec.Intent) {
	variant, err := casino.ParseVariant(in.Variant)
	if err != nil {
		c.sendError(in.ClientSeq, err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != nil && !c.session.Closed() {
		c.sendError(in.ClientSeq, fmt.Errorf("session already running"))
		return
	}

	sess, err := table.New(c.UserID, variant, 0, c.gateway.ledger, c.push)
	if err != nil {
		c.sendError(in.ClientSeq, err)
		return
	}
	c.session = sess
	sess.Start()
	c.push(codec.WrapSnapshot(0, sess.Snapshot()))
	log.Printf("[Gateway] %s opened a %s session %s", c.ID, variant, sess.ID)
}

func (c *Connection) closeSession() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != nil {
		c.session.Stop()
		c.session = nil
	}
}

// push serializes an envelope onto the outbound queue; a slow client
// drops frames rather than stalling the session.
func (c *Connection) push(env codec.ServerEnvelope) {
	data, err := json.Marshal(env)
	if err != nil {
		log.Printf("[Gateway] marshal envelope failed: %v", err)
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (c *Connection) sendError(clientSeq uint64, err error) {
	c.push(codec.WrapError(0, clientSeq, err))
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (g *Gateway) removeConnection(c *Connection) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.connections, c.ID)
	log.Printf("[Gateway] Client disconnected: %s, total: %d", c.ID, len(g.connections))
}
