// Package chat runs the building-wide chat room. Each service instance
// keeps its own set of WebSocket clients; instances exchange messages
// through the chat topic so every resident sees the full conversation
// regardless of which instance they landed on.
package chat

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"maison/internal/chat/repository"
	"maison/internal/chat/validator"
	"maison/pkg/config"
	apperrors "maison/pkg/errors"
	"maison/pkg/kafka"
	"maison/pkg/model"
	"maison/pkg/sanitizer"
)

const (
	frameMessage     = "message"
	frameOnlineCount = "online_count"
)

// Frame is the envelope sent to WebSocket clients.
type Frame struct {
	Type    string             `json:"type"`
	Message *model.ChatMessage `json:"message,omitempty"`
	Count   int                `json:"count,omitempty"`
}

// EventPublisher is the slice of the Kafka producer the hub needs.
// A nil publisher keeps the chat single-instance.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type Hub struct {
	originID  string
	repo      repository.MessageRepository
	validator *validator.MessageValidator
	events    EventPublisher
	cfg       *config.Config

	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
}

func NewHub(
	repo repository.MessageRepository,
	validator *validator.MessageValidator,
	events EventPublisher,
	cfg *config.Config,
) *Hub {
	return &Hub{
		originID:   uuid.NewString(),
		repo:       repo,
		validator:  validator,
		events:     events,
		cfg:        cfg,
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
	}
}

// Run owns the client set. All membership changes and broadcasts go
// through the channels, so no locking is needed.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			return
		case client := <-h.register:
			h.clients[client] = struct{}{}
			h.broadcastOnlineCount()
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.broadcastOnlineCount()
			}
		case payload := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- payload:
				default:
					delete(h.clients, client)
					close(client.send)
				}
			}
		}
	}
}

// Submit handles a message sent by a locally connected client: persist,
// fan out to local clients, then publish for the other instances.
func (h *Hub) Submit(ctx context.Context, message *model.ChatMessage) error {
	message.ID = ""
	message.SenderName = sanitizer.SanitizeName(message.SenderName)
	message.Text = sanitizer.SanitizeMessageText(message.Text)

	if err := h.validator.Validate(message); err != nil {
		h.cfg.Log.Warn("Chat message validation failed", "error", err)
		return apperrors.Validation("Message validation failed", map[string]any{"error": err.Error()})
	}

	if err := h.repo.Create(ctx, message); err != nil {
		h.cfg.Log.Error("Failed to persist chat message", "sender_id", message.SenderID, "error", err)
		return apperrors.Internal("Failed to persist message", err)
	}

	h.broadcastMessage(message)
	h.publish(ctx, message)
	return nil
}

// HandleRemote is the Kafka handler for messages published by other
// instances. Messages this instance published are skipped; the local
// clients already saw them.
func (h *Hub) HandleRemote(ctx context.Context, msg kafka.Message) error {
	if source, ok := msg.GetHeader(kafka.HeaderSource); ok && source == h.originID {
		return nil
	}

	var message model.ChatMessage
	if err := msg.DecodeValue(&message); err != nil {
		return kafka.NewPermanentError("decode chat message", err)
	}

	h.broadcastMessage(&message)
	return nil
}

func (h *Hub) broadcastMessage(message *model.ChatMessage) {
	payload, err := json.Marshal(Frame{Type: frameMessage, Message: message})
	if err != nil {
		h.cfg.Log.Error("Failed to encode chat frame", "error", err)
		return
	}
	h.broadcast <- payload
}

func (h *Hub) broadcastOnlineCount() {
	payload, err := json.Marshal(Frame{Type: frameOnlineCount, Count: len(h.clients)})
	if err != nil {
		h.cfg.Log.Error("Failed to encode online count frame", "error", err)
		return
	}
	for client := range h.clients {
		select {
		case client.send <- payload:
		default:
			delete(h.clients, client)
			close(client.send)
		}
	}
}

func (h *Hub) publish(ctx context.Context, message *model.ChatMessage) {
	if h.events == nil {
		return
	}

	msg := kafka.NewMessage().
		WithKey(message.SenderID).
		WithValue(message).
		WithEventType(kafka.EventChatMessage).
		WithSource(h.originID).
		Build()

	if err := h.events.Publish(ctx, msg); err != nil {
		// The message already reached local clients and storage.
		h.cfg.Log.Warn("Failed to publish chat message", "sender_id", message.SenderID, "error", err)
	}
}
