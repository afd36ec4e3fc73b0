package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"notebookrag/pkg/events"
)

const (
	streamName    = "NOTEBOOK_EVENTS"
	subjectPrefix = "notebook"
)

// Publisher announces notebook lifecycle events on a NATS JetStream bus
// so external systems can react to ingestion and catalog changes.
type Publisher struct {
	nc *nats.Conn
	js jetstream.JetStream
}

func NewPublisher(url string) (*Publisher, error) {
	nc, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     streamName,
		Subjects: []string{subjectPrefix + ".>"},
		Storage:  jetstream.FileStorage,
	})
	if err != nil {
		// The stream may already exist with compatible settings, or NATS
		// may still be starting. Publishing will surface a real problem.
		log.Printf("Warn: Failed to ensure stream %q: %v", streamName, err)
	}

	return &Publisher{nc: nc, js: js}, nil
}

// Announce implements events.Announcer. Delivery failures are logged and
// swallowed; the event bus is strictly an observer of the system.
func (p *Publisher) Announce(ctx context.Context, event events.Event) {
	data, err := json.Marshal(event.Payload())
	if err != nil {
		log.Printf("Warn: Failed to marshal event %s: %v", event.EventType(), err)
		return
	}

	if _, err := p.js.Publish(ctx, event.EventType(), data); err != nil {
		log.Printf("Warn: Failed to publish event %s: %v", event.EventType(), err)
	}
}

func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Close()
	}
}
