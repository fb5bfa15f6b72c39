package chat

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"maison/internal/chat/validator"
	"maison/pkg/config"
	apperrors "maison/pkg/errors"
	"maison/pkg/kafka"
	"maison/pkg/logger"
	"maison/pkg/model"
)

type mockMessageRepository struct {
	createFunc  func(ctx context.Context, message *model.ChatMessage) error
	findAllFunc func(ctx context.Context, limit int, offset int64) ([]*model.ChatMessage, error)
	countFunc   func(ctx context.Context) (int64, error)
}

func (m *mockMessageRepository) Create(ctx context.Context, message *model.ChatMessage) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, message)
	}
	message.ID = "507f191e810c19729de860ea"
	return nil
}

func (m *mockMessageRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.ChatMessage, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return []*model.ChatMessage{}, nil
}

func (m *mockMessageRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

type mockPublisher struct {
	published []kafka.Message
}

func (m *mockPublisher) Publish(ctx context.Context, msg kafka.Message) error {
	m.published = append(m.published, msg)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
	}
}

func newTestHub(repo *mockMessageRepository, events *mockPublisher) *Hub {
	var publisher EventPublisher
	if events != nil {
		publisher = events
	}
	return NewHub(repo, validator.NewMessageValidator(), publisher, testConfig())
}

// addClient registers a synthetic client and returns its send channel.
func addClient(t *testing.T, hub *Hub) *Client {
	t.Helper()
	client := &Client{hub: hub, send: make(chan []byte, 16)}
	hub.register <- client
	return client
}

func awaitFrame(t *testing.T, client *Client) Frame {
	t.Helper()
	select {
	case payload := <-client.send:
		var frame Frame
		if err := json.Unmarshal(payload, &frame); err != nil {
			t.Fatalf("malformed frame %q: %v", payload, err)
		}
		return frame
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a frame")
		return Frame{}
	}
}

func TestHubBroadcastsSubmittedMessages(t *testing.T) {
	hub := newTestHub(&mockMessageRepository{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	first := addClient(t, hub)
	if frame := awaitFrame(t, first); frame.Type != frameOnlineCount || frame.Count != 1 {
		t.Errorf("first frame = %+v, want online_count 1", frame)
	}

	second := addClient(t, hub)
	if frame := awaitFrame(t, first); frame.Type != frameOnlineCount || frame.Count != 2 {
		t.Errorf("frame after join = %+v, want online_count 2", frame)
	}
	awaitFrame(t, second)

	err := hub.Submit(context.Background(), &model.ChatMessage{
		SenderID:   "user-1",
		SenderName: "Maria Silva",
		Text:       "The elevator is working again",
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	for _, client := range []*Client{first, second} {
		frame := awaitFrame(t, client)
		if frame.Type != frameMessage {
			t.Fatalf("frame.Type = %q, want %q", frame.Type, frameMessage)
		}
		if frame.Message == nil || frame.Message.Text != "The elevator is working again" {
			t.Errorf("frame.Message = %+v, want the submitted text", frame.Message)
		}
	}
}

func TestHubOnlineCountDropsOnUnregister(t *testing.T) {
	hub := newTestHub(&mockMessageRepository{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	first := addClient(t, hub)
	awaitFrame(t, first)
	second := addClient(t, hub)
	awaitFrame(t, first)
	awaitFrame(t, second)

	hub.unregister <- second
	if frame := awaitFrame(t, first); frame.Type != frameOnlineCount || frame.Count != 1 {
		t.Errorf("frame after leave = %+v, want online_count 1", frame)
	}
}

func TestHubSubmitValidation(t *testing.T) {
	created := false
	repo := &mockMessageRepository{
		createFunc: func(ctx context.Context, message *model.ChatMessage) error {
			created = true
			return nil
		},
	}
	hub := newTestHub(repo, nil)

	err := hub.Submit(context.Background(), &model.ChatMessage{
		SenderID:   "user-1",
		SenderName: "Maria Silva",
		Text:       "   ",
	})
	if err == nil {
		t.Fatal("Submit() with blank text should fail")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeValidation {
		t.Errorf("error code = %v, want validation", apperrors.AsAppError(err).Code)
	}
	if created {
		t.Error("blank message was persisted")
	}
}

func TestHubPublishesWithOrigin(t *testing.T) {
	events := &mockPublisher{}
	hub := newTestHub(&mockMessageRepository{}, events)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	err := hub.Submit(context.Background(), &model.ChatMessage{
		SenderID:   "user-1",
		SenderName: "Maria Silva",
		Text:       "hello",
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if len(events.published) != 1 {
		t.Fatalf("published %d messages, want 1", len(events.published))
	}
	msg := events.published[0]
	if msg.Key != "user-1" {
		t.Errorf("message key = %q, want the sender ID", msg.Key)
	}
	if source, ok := msg.GetHeader(kafka.HeaderSource); !ok || source != hub.originID {
		t.Errorf("source header = %q, want the hub origin", source)
	}
	if eventType := msg.Headers[kafka.HeaderEventType]; eventType != kafka.EventChatMessage {
		t.Errorf("event type = %q, want %q", eventType, kafka.EventChatMessage)
	}
}

func TestHubSkipsOwnRemoteMessages(t *testing.T) {
	hub := newTestHub(&mockMessageRepository{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := addClient(t, hub)
	awaitFrame(t, client)

	remote := kafka.NewMessage().
		WithKey("user-2").
		WithValue(&model.ChatMessage{
			SenderID:   "user-2",
			SenderName: "Pedro Costa",
			Text:       "anyone up for tennis",
		}).
		WithEventType(kafka.EventChatMessage).
		WithSource("another-instance").
		Build()

	if err := hub.HandleRemote(context.Background(), remote); err != nil {
		t.Fatalf("HandleRemote() error = %v", err)
	}
	frame := awaitFrame(t, client)
	if frame.Type != frameMessage || frame.Message == nil || frame.Message.SenderID != "user-2" {
		t.Errorf("frame = %+v, want the remote message", frame)
	}

	local := kafka.NewMessage().
		WithKey("user-1").
		WithValue(&model.ChatMessage{SenderID: "user-1", SenderName: "Maria Silva", Text: "echo"}).
		WithEventType(kafka.EventChatMessage).
		WithSource(hub.originID).
		Build()

	if err := hub.HandleRemote(context.Background(), local); err != nil {
		t.Fatalf("HandleRemote() error = %v", err)
	}
	select {
	case payload := <-client.send:
		t.Errorf("own message was rebroadcast: %s", payload)
	case <-time.After(100 * time.Millisecond):
	}
}
