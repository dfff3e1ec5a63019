package handler

import (
	"context"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"public-vision-be/internal/middleware"
	"public-vision-be/internal/realtime"
	"public-vision-be/internal/service/notification"
)

type StreamHandler struct {
	hub                 *realtime.Hub
	notificationService notification.Service
}

func NewStreamHandler(hub *realtime.Hub, notificationService notification.Service) *StreamHandler {
	return &StreamHandler{
		hub:                 hub,
		notificationService: notificationService,
	}
}

// Upgrade rejects plain HTTP requests before the websocket handshake.
func (h *StreamHandler) Upgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

// Stream keeps one websocket open per user. The first frame is always an
// INIT event carrying the unread count; after that the connection only
// receives NOTIFICATION events pushed through the hub.
func (h *StreamHandler) Stream() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID, ok := conn.Locals(middleware.UserIDContextKey).(uuid.UUID)
		if !ok || userID == uuid.Nil {
			conn.Close()
			return
		}

		ch := h.hub.Register(userID)
		defer h.hub.Unregister(userID, ch)

		unread, err := h.notificationService.UnreadCount(context.Background(), userID)
		if err != nil {
			unread = 0
		}
		if err := conn.WriteJSON(realtime.Event{
			Event: realtime.EventInit,
			Data:  fiber.Map{"unread_count": unread},
		}); err != nil {
			return
		}

		// Drain the read side so we notice when the client goes away.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-done:
				return
			case event, open := <-ch:
				if !open {
					return
				}
				if err := conn.WriteJSON(event); err != nil {
					return
				}
			}
		}
	})
}
