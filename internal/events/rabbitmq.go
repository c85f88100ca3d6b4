package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const Exchange = "foodtrack_events"

// ErrNotConnected is returned while the publisher waits out the delay
// after a failed reconnect. Events published meanwhile are dropped.
var ErrNotConnected = errors.New("rabbitmq: not connected")

type RabbitConfig struct {
	URL        string
	Exchange   string
	MaxRetries int
	RetryDelay time.Duration
	// DialTimeout bounds the TCP connect plus the AMQP handshake.
	DialTimeout time.Duration
}

type RabbitPublisher struct {
	cfg     RabbitConfig
	mu      sync.Mutex
	conn    *amqp.Connection
	ch      *amqp.Channel
	retryAt time.Time
}

func NewRabbitPublisher(ctx context.Context, cfg RabbitConfig) (*RabbitPublisher, error) {
	p := newRabbitPublisher(cfg)
	if err := p.connect(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

func newRabbitPublisher(cfg RabbitConfig) *RabbitPublisher {
	if cfg.Exchange == "" {
		cfg.Exchange = Exchange
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 5
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 2 * time.Second
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 2 * time.Second
	}
	return &RabbitPublisher{cfg: cfg}
}

func (p *RabbitPublisher) connect(ctx context.Context) error {
	var err error
	for i := 0; i < p.cfg.MaxRetries; i++ {
		if err = p.dial(ctx); err == nil {
			return nil
		}

		if i < p.cfg.MaxRetries-1 {
			wait := time.Duration(i+1) * p.cfg.RetryDelay
			slog.Warn("rabbitmq connection failed, retrying", "error", err, "wait", wait)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
	}
	return fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", p.cfg.MaxRetries, err)
}

func (p *RabbitPublisher) dial(ctx context.Context) error {
	conn, err := amqp.DialConfig(p.cfg.URL, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      p.dialer(ctx),
	})
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}

	ch, err := p.openChannel(conn)
	if err != nil {
		conn.Close()
		return err
	}

	p.conn, p.ch = conn, ch
	return nil
}

// dialer connects with a deadline of DialTimeout or the ctx deadline,
// whichever comes first. The deadline stays on the socket through the
// handshake and amqp clears it once the connection is open.
func (p *RabbitPublisher) dialer(ctx context.Context) func(network, addr string) (net.Conn, error) {
	return func(network, addr string) (net.Conn, error) {
		deadline := time.Now().Add(p.cfg.DialTimeout)
		if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
			deadline = d
		}

		d := net.Dialer{Deadline: deadline}
		conn, err := d.DialContext(ctx, network, addr)
		if err != nil {
			return nil, err
		}
		if err := conn.SetDeadline(deadline); err != nil {
			conn.Close()
			return nil, err
		}
		return conn, nil
	}
}

func (p *RabbitPublisher) openChannel(conn *amqp.Connection) (*amqp.Channel, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		p.cfg.Exchange, // name
		"topic",        // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", p.cfg.Exchange, err)
	}
	return ch, nil
}

// ensureChannel reopens a channel closed by the broker on the live
// connection, or redials when the connection itself is gone. After a
// failed redial it returns ErrNotConnected until RetryDelay has passed.
func (p *RabbitPublisher) ensureChannel(ctx context.Context) error {
	if p.conn != nil && !p.conn.IsClosed() {
		if p.ch != nil && !p.ch.IsClosed() {
			return nil
		}

		ch, err := p.openChannel(p.conn)
		if err == nil {
			p.ch = ch
			return nil
		}
		slog.Warn("rabbitmq channel reopen failed, redialing", "error", err)
		p.conn.Close()
	}

	if time.Now().Before(p.retryAt) {
		return ErrNotConnected
	}
	if err := p.dial(ctx); err != nil {
		p.retryAt = time.Now().Add(p.cfg.RetryDelay)
		return fmt.Errorf("reconnect: %w", err)
	}
	p.retryAt = time.Time{}
	return nil
}

func (p *RabbitPublisher) Publish(ctx context.Context, e Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensureChannel(ctx); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.ch.PublishWithContext(ctx, p.cfg.Exchange, e.Type, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    e.OccurredAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", e.Type, err)
	}
	return nil
}

func (p *RabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
