package wshub

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/coder/websocket"
)

// Client message types.
const (
	MsgDown      = "down"
	MsgKey       = "key"
	MsgResize    = "resize"
	MsgChallenge = "challenge"
	MsgTrain     = "train"
	MsgRestart   = "restart"
	MsgMenu      = "menu"
)

// Server message types.
const (
	MsgFrame  = "frame"
	MsgHUD    = "hud"
	MsgScreen = "screen"
)

// ClientMessage is the JSON structure received from clients.
type ClientMessage struct {
	Type   string  `json:"t"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Width  float64 `json:"w,omitempty"`
	Height float64 `json:"h,omitempty"`
	Key    string  `json:"k,omitempty"`
}

// Circle is one filled circle in a frame.
type Circle struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	R     float64 `json:"r"`
	Color string  `json:"c"`
}

// ServerMessage is the JSON structure sent to clients.
type ServerMessage struct {
	Type    string   `json:"t"`
	Width   float64  `json:"w,omitempty"`
	Height  float64  `json:"h,omitempty"`
	Circles []Circle `json:"c,omitempty"`
	Field   string   `json:"f,omitempty"`
	Text    string   `json:"x,omitempty"`
	Screen  string   `json:"s,omitempty"`
}

// maxQueued bounds the control messages waiting for the write pump.
const maxQueued = 256

// Client represents a single WebSocket connection in the hub.
//
// Frames are coalesced into one slot holding the newest frame, so only
// frames are ever lost to a slow connection. HUD updates for the same field
// replace each other in place. Screen changes are kept in order.
type Client struct {
	PlayerID string
	Conn     *websocket.Conn

	mu     sync.Mutex
	queue  [][]byte
	hudAt  map[string]int
	frame  []byte
	closed bool
	wake   chan struct{}
}

func NewClient(playerID string, conn *websocket.Conn) *Client {
	return &Client{
		PlayerID: playerID,
		Conn:     conn,
		hudAt:    make(map[string]int),
		wake:     make(chan struct{}, 1),
	}
}

// Deliver queues msg for the write pump. It never blocks. It reports false
// if the client is closed or its control queue is full.
func (c *Client) Deliver(msg ServerMessage) bool {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[WSHub] Marshal error: %v\n", err)
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	switch msg.Type {
	case MsgFrame:
		c.frame = data
	case MsgHUD:
		if i, ok := c.hudAt[msg.Field]; ok {
			c.queue[i] = data
			break
		}
		if len(c.queue) >= maxQueued {
			log.Printf("[WSHub] Queue full for player %s, dropping %s\n", c.PlayerID, msg.Field)
			return false
		}
		c.hudAt[msg.Field] = len(c.queue)
		c.queue = append(c.queue, data)
	default:
		if len(c.queue) >= maxQueued {
			log.Printf("[WSHub] Queue full for player %s, dropping %s\n", c.PlayerID, msg.Type)
			return false
		}
		c.queue = append(c.queue, data)
	}

	select {
	case c.wake <- struct{}{}:
	default:
	}
	return true
}

// Take removes and returns everything waiting to be written: control
// messages in order, then the newest frame.
func (c *Client) Take() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.queue
	if c.frame != nil {
		out = append(out, c.frame)
	}
	c.queue = nil
	c.frame = nil
	clear(c.hudAt)
	return out
}

// Close stops the client from accepting messages and ends its write pump.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.wake)
	}
}

// WritePump writes queued messages to the WebSocket connection until the
// client is closed or ctx is done.
func (c *Client) WritePump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-c.wake:
			if !ok {
				return
			}
			for _, msg := range c.Take() {
				if err := c.Conn.Write(ctx, websocket.MessageText, msg); err != nil {
					return
				}
			}
		}
	}
}

// Hub tracks the connected clients by player.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.PlayerID] = c
}

// Unregister removes a client and closes it.
func (h *Hub) Unregister(playerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[playerID]; ok {
		c.Close()
		delete(h.clients, playerID)
	}
}

// Send delivers msg to one player. It reports false if the player is not
// connected or the message was dropped.
func (h *Hub) Send(playerID string, msg ServerMessage) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.clients[playerID]
	if !ok {
		return false
	}
	return c.Deliver(msg)
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
