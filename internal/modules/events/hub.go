package events

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"parkhub/internal/domain"
)

// SlotEvent is pushed to every connected client when a slot's occupancy
// changes.
type SlotEvent struct {
	Type        string `json:"type"`
	SlotID      int64  `json:"slot_id"`
	Number      string `json:"number"`
	Floor       int    `json:"floor"`
	IsAvailable bool   `json:"is_available"`
	VehicleID   *int64 `json:"vehicle_id,omitempty"`
}

type Hub struct {
	clients map[*websocket.Conn]bool
	mutex   sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]bool),
	}
}

func (h *Hub) Register(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[conn] = true
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[conn]; ok {
		_ = conn.Close()
		delete(h.clients, conn)
	}
}

// PublishSlotChange satisfies the SlotEventPublisher interfaces of the
// parking and payment services.
func (h *Hub) PublishSlotChange(slot domain.ParkingSlot) {
	event := SlotEvent{
		Type:        "slot_change",
		SlotID:      slot.ID,
		Number:      slot.Number,
		Floor:       slot.Floor,
		IsAvailable: slot.IsAvailable,
		VehicleID:   slot.VehicleID,
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()
	for conn := range h.clients {
		if err := conn.WriteJSON(event); err != nil {
			log.Printf("slot event not delivered, dropping client: %v", err)
			_ = conn.Close()
			delete(h.clients, conn)
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for conn := range h.clients {
		_ = conn.Close()
		delete(h.clients, conn)
	}
}
