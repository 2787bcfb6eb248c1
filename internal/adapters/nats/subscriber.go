package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/strategickhaos/pipetrades/internal/core/domain"
)

// Subscriber implements ports.EventSubscriber using NATS.
type Subscriber struct {
	conn *nats.Conn
	js   nats.JetStreamContext
	subs []*nats.Subscription
}

// NewSubscriber creates a subscriber with its own NATS connection.
func NewSubscriber(url string) (*Subscriber, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}
	return &Subscriber{conn: conn, js: js}, nil
}

// SubscribeCrewUpdates consumes shared calculations from the durable crew
// stream. Undecodable payloads are dropped rather than redelivered forever.
func (s *Subscriber) SubscribeCrewUpdates(ctx context.Context, handler func(ctx context.Context, update *domain.CrewUpdate) error) error {
	sub, err := s.js.Subscribe(SubjectCrewPrefix+">", func(msg *nats.Msg) {
		var update domain.CrewUpdate
		if err := json.Unmarshal(msg.Data, &update); err != nil {
			_ = msg.Term()
			return
		}
		if err := handler(ctx, &update); err != nil {
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	},
		nats.Durable("crew-archiver"),
		nats.ManualAck(),
		nats.MaxDeliver(3),
	)
	if err != nil {
		return err
	}
	s.subs = append(s.subs, sub)
	return nil
}

// SubscribePresence watches the ephemeral presence subject.
func (s *Subscriber) SubscribePresence(ctx context.Context, handler func(ctx context.Context, presence *domain.Presence) error) error {
	sub, err := s.conn.Subscribe(SubjectPresence, func(msg *nats.Msg) {
		var presence domain.Presence
		if err := json.Unmarshal(msg.Data, &presence); err != nil {
			return
		}
		_ = handler(ctx, &presence)
	})
	if err != nil {
		return err
	}
	s.subs = append(s.subs, sub)
	return nil
}

// Close unsubscribes and drains.
func (s *Subscriber) Close() {
	for _, sub := range s.subs {
		_ = sub.Unsubscribe()
	}
	_ = s.conn.Drain()
}
