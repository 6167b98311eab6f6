package handlers

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/medlove-app/medlove-api/reminder"
)

// WebSocket upgrader
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust CORS as needed, e.g., check r.Header.Get("Origin")
	},
}

// EventHub stores connected users (userId -> *websocket.Conn) and pushes
// reminder and streak events to them as they happen
type EventHub struct {
	clients map[string]*websocket.Conn
	mutex   sync.Mutex
}

// NewEventHub creates an empty hub
func NewEventHub() *EventHub {
	return &EventHub{
		clients: make(map[string]*websocket.Conn),
	}
}

// HandleEventsWebSocket upgrades the connection and registers the user for
// event delivery until they disconnect
func (h *EventHub) HandleEventsWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Errorw("websocket upgrade error", "error", err)
		return
	}

	// Get userId from query param (replace with JWT/auth middleware in production)
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		conn.Close()
		return
	}

	// Register client
	h.mutex.Lock()
	h.clients[userID] = conn
	h.mutex.Unlock()
	zap.S().Infow("user connected to /ws/events", "userId", userID)

	// Handle disconnect
	conn.SetCloseHandler(func(code int, text string) error {
		h.mutex.Lock()
		delete(h.clients, userID)
		h.mutex.Unlock()
		zap.S().Infow("user disconnected from /ws/events", "userId", userID)
		return nil
	})

	// Keep connection alive
	for {
		if _, _, err := conn.NextReader(); err != nil {
			conn.Close()
			break
		}
	}
}

// BroadcastReminder pushes a dispatched reminder to the owning user
func (h *EventHub) BroadcastReminder(ev reminder.ReminderEvent) {
	h.sendToUser(ev.SubjectID, "reminder_dispatched", ev)
}

// BroadcastStreak pushes an updated streak to the owning user
func (h *EventHub) BroadcastStreak(ev reminder.StreakEvent) {
	h.sendToUser(ev.SubjectID, "streak_updated", ev)
}

func (h *EventHub) sendToUser(userID, eventType string, data interface{}) {
	h.mutex.Lock()
	conn, exists := h.clients[userID]
	h.mutex.Unlock()

	if !exists {
		return
	}

	err := conn.WriteJSON(map[string]interface{}{
		"event": eventType,
		"data":  data,
	})
	if err != nil {
		zap.S().Errorw("error sending event to user", "userId", userID, "event", eventType, "error", err)
		h.mutex.Lock()
		delete(h.clients, userID)
		h.mutex.Unlock()
		conn.Close()
	}
}
