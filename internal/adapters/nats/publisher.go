package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/strategickhaos/pipetrades/internal/core/domain"
)

// Subjects and streams for the crew channel.
const (
	SubjectCrewPrefix = "pipetrades.crew."    // + kind
	SubjectPresence   = "pipetrades.presence" // ephemeral, not archived
	SubjectBroadcast  = "pipetrades.updates.broadcast"
)

// Publisher implements ports.EventPublisher using NATS JetStream for crew
// updates and plain NATS for presence and broadcast relays.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS and ensures the crew stream exists.
func NewPublisher(url string) (*Publisher, error) {
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

	// Shared calculations are archived by the relay; keep a week of them
	// so crews coming back on shift can catch up.
	cfg := nats.StreamConfig{
		Name:      "CREW_JOBS",
		Subjects:  []string{SubjectCrewPrefix + ">"},
		Retention: nats.InterestPolicy,
		MaxAge:    7 * 24 * time.Hour,
		Storage:   nats.FileStorage,
	}
	if _, err := js.AddStream(&cfg); err != nil {
		// Stream may already exist — try update
		if _, err := js.UpdateStream(&cfg); err != nil {
			return nil, fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
		}
	}

	return &Publisher{conn: conn, js: js}, nil
}

func (p *Publisher) PublishCrewUpdate(ctx context.Context, update *domain.CrewUpdate) error {
	data, err := json.Marshal(update)
	if err != nil {
		return err
	}
	_, err = p.js.Publish(SubjectCrewPrefix+update.Kind, data)
	return err
}

func (p *Publisher) PublishPresence(ctx context.Context, presence *domain.Presence) error {
	data, err := json.Marshal(presence)
	if err != nil {
		return err
	}
	return p.conn.Publish(SubjectPresence, data)
}

func (p *Publisher) PublishBroadcast(ctx context.Context, data []byte) error {
	return p.conn.Publish(SubjectBroadcast, data)
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RawConn creates a plain NATS connection for subscribing (e.g. WebSocket relay).
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
