package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fivetwenty-io/fofa-cli/internal/constants"
	"github.com/nats-io/nats.go"
)

// Conn is the subset of *nats.Conn the publisher needs.
type Conn interface {
	Publish(subject string, data []byte) error
	FlushTimeout(timeout time.Duration) error
	Drain() error
}

// Record is one published search result.
type Record struct {
	Query  string            `json:"query"`
	Cursor string            `json:"cursor,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
	Values []string          `json:"values"`
}

// Publisher sends search results to a NATS subject.
type Publisher struct {
	conn    Conn
	subject string
	timeout time.Duration

	// closed is signalled once a drained connection has fully closed. Nil
	// when the connection was supplied by the caller.
	closed chan struct{}
}

// Connect dials url and returns a publisher for subject.
func Connect(url, subject string) (*Publisher, error) {
	closed := make(chan struct{})

	conn, err := nats.Connect(url,
		nats.Name(constants.UserAgent),
		nats.Timeout(constants.NATSConnectTimeout),
		nats.DrainTimeout(constants.NATSConnectTimeout),
		nats.ClosedHandler(func(*nats.Conn) { close(closed) }),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}

	publisher := NewPublisher(conn, subject)
	publisher.closed = closed

	return publisher, nil
}

// NewPublisher wraps an existing connection.
func NewPublisher(conn Conn, subject string) *Publisher {
	return &Publisher{conn: conn, subject: subject, timeout: constants.NATSConnectTimeout}
}

// PublishRows sends one message per row. Rows are keyed by fields when the
// widths agree.
func (p *Publisher) PublishRows(query, cursor string, fields []string, rows [][]string) (int, error) {
	if p == nil || p.conn == nil {
		return 0, constants.ErrNoPublisher
	}

	for i, row := range rows {
		record := Record{Query: query, Cursor: cursor, Values: row}
		if len(fields) == len(row) {
			record.Fields = make(map[string]string, len(row))
			for j, field := range fields {
				record.Fields[field] = row[j]
			}
		}

		data, err := json.Marshal(record)
		if err != nil {
			return i, fmt.Errorf("failed to encode result %d: %w", i+1, err)
		}

		err = p.conn.Publish(p.subject, data)
		if err != nil {
			return i, fmt.Errorf("failed to publish result %d: %w", i+1, err)
		}
	}

	return len(rows), nil
}

// Close flushes pending messages, drains the connection and waits for it to
// close. Drain alone returns before the connection has finished.
func (p *Publisher) Close() error {
	if p == nil || p.conn == nil {
		return nil
	}

	flushErr := p.conn.FlushTimeout(p.timeout)
	if flushErr != nil {
		flushErr = fmt.Errorf("failed to flush NATS messages: %w", flushErr)
	}

	err := p.conn.Drain()
	if err != nil {
		return errors.Join(flushErr, fmt.Errorf("failed to drain NATS connection: %w", err))
	}

	if p.closed != nil {
		select {
		case <-p.closed:
		case <-time.After(p.timeout):
			return errors.Join(flushErr, constants.ErrDrainTimeout)
		}
	}

	return flushErr
}
