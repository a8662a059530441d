package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"offerstack-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Notice is the real-time payload pushed to connected admin dashboards.
type Notice struct {
	Type       string                 `json:"type"`
	Title      string                 `json:"title"`
	Message    string                 `json:"message"`
	EntityType string                 `json:"entity_type,omitempty"`
	EntityId   string                 `json:"entity_id,omitempty"`
	Data       map[string]interface{} `json:"data,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

// Hub fans notices out to every connected admin. An admin may have multiple
// open tabs, so connections are tracked per admin id.
type Hub struct {
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis relays notices between instances when the API runs replicated.
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.AdminID] = append(h.clients[client.AdminID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Admin connected", map[string]interface{}{"admin_id": client.AdminID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.AdminID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.AdminID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.AdminID]) == 0 {
					delete(h.clients, client.AdminID)
					h.logger.Info("Hub", "Admin disconnected", map[string]interface{}{"admin_id": client.AdminID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast pushes a notice to every connected admin on this instance and
// relays it over Redis for the other instances.
func (h *Hub) Broadcast(notice Notice) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "notice",
		"data": notice,
	})

	h.broadcastLocal(data)

	if h.rdb != nil {
		payload, _ := json.Marshal(clusterEnvelope{TargetAdminID: "*", Message: data})
		h.rdb.Publish(context.Background(), "admin_events", payload)
	}
}

// Send pushes a notice to a single admin's open connections.
func (h *Hub) Send(adminID uuid.UUID, notice Notice) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "notice",
		"data": notice,
	})

	h.mu.RLock()
	clients, localFound := h.clients[adminID]
	h.mu.RUnlock()

	if localFound {
		for _, client := range clients {
			h.deliver(client, data)
		}
	}

	// Always relay: the same admin may be connected on another instance.
	if h.rdb != nil {
		payload, _ := json.Marshal(clusterEnvelope{TargetAdminID: adminID.String(), Message: data})
		h.rdb.Publish(context.Background(), "admin_events", payload)
	}
}

// clusterEnvelope wraps a serialized notice for the cross-instance channel.
// "*" as the target means broadcast.
type clusterEnvelope struct {
	TargetAdminID string          `json:"target_admin_id"`
	Message       json.RawMessage `json:"message"`
}

func (h *Hub) broadcastLocal(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, clients := range h.clients {
		for _, client := range clients {
			h.deliver(client, data)
		}
	}
}

// deliver drops slow consumers instead of blocking the hub. The unregister
// path owns closing Send.
func (h *Hub) deliver(client *Client, data []byte) {
	select {
	case client.Send <- data:
	default:
		h.logger.Warn("Hub", "Send buffer full, dropping connection", map[string]interface{}{"admin_id": client.AdminID})
		go func() { h.unregister <- client }()
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "admin_events")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var envelope clusterEnvelope
		if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
			h.logger.Warn("Hub", "Bad cluster payload", map[string]interface{}{"error": err.Error()})
			continue
		}

		if envelope.TargetAdminID == "*" {
			h.broadcastLocal(envelope.Message)
			continue
		}

		adminID, err := uuid.Parse(envelope.TargetAdminID)
		if err != nil {
			continue
		}

		h.mu.RLock()
		clients, ok := h.clients[adminID]
		h.mu.RUnlock()

		if ok {
			for _, client := range clients {
				h.deliver(client, envelope.Message)
			}
		}
	}
}
