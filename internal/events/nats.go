package events

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
)

const natsConnectTimeout = 10 * time.Second

// NATSPublisher publishes events on <subject>.<type>, e.g. cv.jobs.job.created.
type NATSPublisher struct {
	conn    *nats.Conn
	subject string
}

// NewNATSPublisher connects to url and publishes under subject.
func NewNATSPublisher(url, subject string) (*NATSPublisher, error) {
	subject = strings.Trim(strings.TrimSpace(subject), ".")
	if subject == "" {
		return nil, fmt.Errorf("nats subject is required")
	}
	conn, err := nats.Connect(url,
		nats.Name("cv-backend"),
		nats.Timeout(natsConnectTimeout),
		nats.RetryOnFailedConnect(true),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn, subject: subject}, nil
}

// Subject returns the subject an event of type t is published on.
func (p *NATSPublisher) Subject(t Type) string {
	return p.subject + "." + string(t)
}

func (p *NATSPublisher) Publish(ctx context.Context, evt Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := EncodeEvent(evt)
	if err != nil {
		return fmt.Errorf("encode nats message: %w", err)
	}
	if err := p.conn.Publish(p.Subject(evt.Type), data); err != nil {
		return fmt.Errorf("publishing to NATS: %w", err)
	}
	return nil
}

// Close drains pending messages before closing the connection.
func (p *NATSPublisher) Close() error {
	if p.conn == nil {
		return nil
	}
	return p.conn.Drain()
}

var _ Publisher = (*NATSPublisher)(nil)
