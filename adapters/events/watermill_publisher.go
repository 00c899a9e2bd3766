package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/layer-3/wombat/core"
	"github.com/layer-3/wombat/ports"
)

const (
	LoginTopic  = "wombat.login"
	LogoutTopic = "wombat.logout"
)

// LoginEvent represents a login event
type LoginEvent struct {
	SessionID string         `json:"session_id"`
	AppName   string         `json:"app_name"`
	Accounts  []core.Account `json:"accounts"`
	IssuedAt  time.Time      `json:"issued_at"`
}

// LogoutEvent represents a logout event
type LogoutEvent struct {
	SessionID string `json:"session_id"`
}

// WatermillPublisher implements the EventPublisher interface using Watermill
type WatermillPublisher struct {
	publisher message.Publisher
}

// NewWatermillPublisher creates a new Watermill publisher
func NewWatermillPublisher(publisher message.Publisher) ports.EventPublisher {
	return &WatermillPublisher{publisher: publisher}
}

// PublishLogin publishes a login event
func (p *WatermillPublisher) PublishLogin(ctx context.Context, session *core.Session) error {
	return p.publish(ctx, LoginTopic, LoginEvent{
		SessionID: session.ID,
		AppName:   session.AppName,
		Accounts:  session.Accounts,
		IssuedAt:  session.IssuedAt,
	})
}

// PublishLogout publishes a logout event
func (p *WatermillPublisher) PublishLogout(ctx context.Context, sessionID string) error {
	return p.publish(ctx, LogoutTopic, LogoutEvent{SessionID: sessionID})
}

func (p *WatermillPublisher) publish(ctx context.Context, topic string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)

	if err := p.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}
