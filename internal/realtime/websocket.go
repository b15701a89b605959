package realtime

import (
	"log"

	"github.com/gofiber/websocket/v2"
)

// WebSocketConn wraps websocket.Conn so the hub does not depend on the transport.
type WebSocketConn struct {
	Conn *websocket.Conn
}

func NewWebSocketConn(c *websocket.Conn) *WebSocketConn {
	return &WebSocketConn{Conn: c}
}

// Serve pumps hub messages to the connection until the peer goes away.
// Inbound frames are only read to detect disconnects.
func (h *Hub) Serve(client *Client) {
	h.RegisterClient(client)
	defer h.UnregisterClient(client)

	c := client.Conn.Conn
	go func() {
		for msg := range client.Send {
			if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Printf("[Hub] write to %s: %v", client.ID, err)
				return
			}
		}
	}()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}
