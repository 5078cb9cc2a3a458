package network

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"github.com/RDelgadoM/RatNewsNetwork/server/internal/platform/metrics"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

// Client represents an active WebSocket connection.
type Client struct {
	hub            *Hub
	conn           *websocket.Conn
	send           chan []byte
	lastActionTime time.Time
}

// NewClient creates a new WebSocket client and returns it.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
	}
}

// Register adds the client to the hub.
func (c *Client) Register() {
	c.hub.register <- c
}

// ClientCommand is an incoming control message from the front end. The
// state-changing game commands go through the REST API; over the socket a
// client only steers the clock.
type ClientCommand struct {
	Type    string          `json:"type"` // "SET_SPEED", "PAUSE", "RESUME"
	Payload json.RawMessage `json:"payload"`
}

// ReadPump pumps messages from the websocket connection to the hub.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error: %v", err)
			}
			break
		}
		metrics.Get().RecordWSMessage(true)

		var cmd ClientCommand
		if err := json.Unmarshal(message, &cmd); err != nil {
			c.hub.logger.Error("Failed to parse ClientCommand from WebSocket: %v", err)
			continue
		}

		c.handleCommand(cmd)
	}
}

func (c *Client) handleCommand(cmd ClientCommand) {
	// Clock controls are cheap but there is no reason to accept a flood.
	if time.Since(c.lastActionTime) < 100*time.Millisecond {
		c.hub.logger.Warn("Rate limit exceeded for client command %s", cmd.Type)
		return
	}
	c.lastActionTime = time.Now()

	switch cmd.Type {
	case "SET_SPEED":
		var parsed struct {
			Speed int64 `json:"speed"`
		}
		if err := json.Unmarshal(cmd.Payload, &parsed); err != nil {
			c.hub.logger.Warn("Failed to parse SET_SPEED payload: %v", err)
			return
		}
		c.hub.loop.SetSpeed(parsed.Speed)
	case "PAUSE":
		c.hub.loop.SetPaused(true)
	case "RESUME":
		c.hub.loop.SetPaused(false)
	default:
		c.hub.logger.Warn("Unknown ClientCommand type: %s", cmd.Type)
	}
}

// WritePump pumps messages from the hub to the websocket connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				metrics.Get().RecordWSError()
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
