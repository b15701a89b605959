package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/gigstudio/internal/realtime"
)

type RealtimeHandler struct {
	Hub *realtime.Hub
}

// Upgrade only lets websocket handshakes through; it runs after the JWT
// middleware so the connection inherits the caller's locals.
func (h *RealtimeHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

func (h *RealtimeHandler) Serve(c *websocket.Conn) {
	uid, ok := c.Locals("userId").(uuid.UUID)
	if !ok {
		log.Println("[Hub] websocket without user, closing")
		c.Close()
		return
	}
	role, _ := c.Locals("role").(string)

	log.Printf("[Hub] user %s connected", uid)
	h.Hub.Serve(realtime.NewClient(uid, role, realtime.NewWebSocketConn(c)))
	log.Printf("[Hub] user %s disconnected", uid)
}
