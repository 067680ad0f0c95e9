package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	// flushTimeout bounds how long Close waits for buffered publishes.
	flushTimeout = 2 * time.Second

	// subscriptionBuffer is the per-subscription channel capacity.
	subscriptionBuffer = 64
)

func connect(url, name string, opts []nats.Option, defaults ...nats.Option) (*nats.Conn, error) {
	all := append([]nats.Option{nats.Name(name)}, defaults...)
	nc, err := nats.Connect(url, append(all, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS at %s: %w", url, err)
	}
	return nc, nil
}

// NATSPublisher publishes events as JSON on the subject named by the topic.
type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(url string, opts ...nats.Option) (*NATSPublisher, error) {
	nc, err := connect(url, "campus", opts)
	if err != nil {
		return nil, err
	}
	return &NATSPublisher{conn: nc}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, topic string, event any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding %s event: %w", topic, err)
	}
	return p.conn.Publish(topic, data)
}

// Close flushes pending publishes before disconnecting; the CLI exits right
// after a mutation.
func (p *NATSPublisher) Close() error {
	err := p.conn.FlushTimeout(flushTimeout)
	p.conn.Close()
	if err != nil {
		return fmt.Errorf("flushing NATS: %w", err)
	}
	return nil
}

// NATSSubscriber reads events for `campus watch`. It reconnects forever.
type NATSSubscriber struct {
	conn *nats.Conn
}

func NewNATSSubscriber(url string, opts ...nats.Option) (*NATSSubscriber, error) {
	nc, err := connect(url, "campus-watch", opts, nats.MaxReconnects(-1), nats.ReconnectWait(time.Second))
	if err != nil {
		return nil, err
	}
	return &NATSSubscriber{conn: nc}, nil
}

// subscription bridges NATS callbacks to a channel. A full channel drops
// the message so the NATS client never blocks.
type subscription struct {
	mu      sync.Mutex
	ch      chan Message
	sub     *nats.Subscription
	stopped bool
	once    sync.Once
}

func (s *subscription) deliver(msg *nats.Msg) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	select {
	case s.ch <- Message{Topic: msg.Subject, Data: msg.Data}:
	default:
	}
}

// stop unsubscribes, discards anything still buffered and closes the
// channel, so a receive after stop reports ok=false.
func (s *subscription) stop() {
	s.once.Do(func() {
		if s.sub != nil {
			_ = s.sub.Unsubscribe()
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		s.stopped = true
		for len(s.ch) > 0 {
			<-s.ch
		}
		close(s.ch)
	})
}

// Subscribe delivers messages for topic, which may use NATS wildcards such
// as TopicAll. The interest is flushed to the server before returning.
func (s *NATSSubscriber) Subscribe(topic string) (<-chan Message, func(), error) {
	sub := &subscription{ch: make(chan Message, subscriptionBuffer)}
	ns, err := s.conn.Subscribe(topic, sub.deliver)
	if err != nil {
		sub.stop()
		return nil, nil, fmt.Errorf("subscribing to %s: %w", topic, err)
	}
	sub.sub = ns
	if err := s.conn.Flush(); err != nil {
		sub.stop()
		return nil, nil, fmt.Errorf("flushing subscription: %w", err)
	}
	return sub.ch, sub.stop, nil
}

func (s *NATSSubscriber) Close() error {
	s.conn.Close()
	return nil
}
