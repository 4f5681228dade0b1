// Package notify publishes "manifest generated" events over NATS so that
// caches in front of the rendering layer can refresh.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/lessonindex/internal/foundation/errors"
	"git.home.luguber.info/inful/lessonindex/internal/logfields"
	"git.home.luguber.info/inful/lessonindex/internal/retry"
)

// Event is the payload published after a manifest is written.
type Event struct {
	RunID        string    `json:"runId"`
	ModuleID     string    `json:"moduleId"`
	Version      string    `json:"version"`
	GeneratedAt  time.Time `json:"generatedAt"`
	SectionsHash string    `json:"sectionsHash"`
	Sections     int       `json:"sections"`
	Items        int       `json:"items"`
}

// conn is the subset of *nats.Conn the publisher needs.
type conn interface {
	Publish(subj string, data []byte) error
	FlushWithContext(ctx context.Context) error
	Close()
}

// Publisher sends Events to one subject.
type Publisher struct {
	conn    conn
	subject string
	retry   retry.Policy // zero value means a single attempt
}

const connectTimeout = 5 * time.Second

// Connect dials the NATS server at url. Publish retries failed sends
// according to policy.
func Connect(url, subject string, policy retry.Policy) (*Publisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("lessonindex"),
		nats.Timeout(connectTimeout),
	)
	if err != nil {
		return nil, errors.NotifyError("failed to connect to NATS").
			WithCause(err).
			WithContext("url", url).
			Build()
	}
	slog.Info("NATS publisher connected", slog.String("url", url), slog.String("subject", subject))
	return &Publisher{conn: nc, subject: subject, retry: policy}, nil
}

// Publish sends ev and waits for the server to acknowledge the flush.
func (p *Publisher) Publish(ctx context.Context, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := p.retry.Do(ctx, func(ctx context.Context) error { return p.send(ctx, data) }); err != nil {
		return err
	}
	slog.Debug("Published manifest event", logfields.RunID(ev.RunID), logfields.Hash(ev.SectionsHash))
	return nil
}

func (p *Publisher) send(ctx context.Context, data []byte) error {
	if err := p.conn.Publish(p.subject, data); err != nil {
		return errors.NotifyError("failed to publish event").WithCause(err).WithContext("subject", p.subject).Build()
	}
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := p.conn.FlushWithContext(ctx); err != nil {
		return errors.NotifyError("failed to flush event").WithCause(err).WithContext("subject", p.subject).Build()
	}
	return nil
}

// Close closes the connection. Publish already flushed pending messages.
func (p *Publisher) Close() {
	if p != nil && p.conn != nil {
		p.conn.Close()
	}
}
