package events

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	natsserver "github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"

	"github.com/alfredjeanlab/campus/internal/model"
)

// startTestNATS starts an embedded NATS server and returns its client URL.
func startTestNATS(t *testing.T) string {
	t.Helper()
	srv, err := natsserver.NewServer(&natsserver.Options{Host: "127.0.0.1", Port: -1})
	if err != nil {
		t.Fatalf("starting embedded NATS: %v", err)
	}
	srv.Start()
	t.Cleanup(srv.Shutdown)
	if !srv.ReadyForConnections(5 * time.Second) {
		t.Fatal("embedded NATS not ready")
	}
	return srv.ClientURL()
}

// watchPair connects a publisher and a subscriber on TopicAll.
func watchPair(t *testing.T) (*NATSPublisher, <-chan Message, func()) {
	t.Helper()
	url := startTestNATS(t)
	pub, err := NewNATSPublisher(url)
	if err != nil {
		t.Fatalf("NewNATSPublisher() error = %v", err)
	}
	t.Cleanup(func() { pub.Close() })
	sub, err := NewNATSSubscriber(url)
	if err != nil {
		t.Fatalf("NewNATSSubscriber() error = %v", err)
	}
	t.Cleanup(func() { sub.Close() })
	ch, cancel, err := sub.Subscribe(TopicAll)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	return pub, ch, cancel
}

func receive(t *testing.T, ch <-chan Message) Message {
	t.Helper()
	select {
	case msg, ok := <-ch:
		if !ok {
			t.Fatal("channel closed")
		}
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return Message{}
}

func TestNATSSubscriber_RoundTripsEvents(t *testing.T) {
	pub, ch, cancel := watchPair(t)
	defer cancel()
	ctx := context.Background()

	sent := []struct {
		topic string
		event any
		want  any
	}{
		{
			TopicApplicationStatusUpdated,
			ApplicationStatusUpdated{ApplicationID: "a1", From: model.ApplicationApplied, To: model.ApplicationInterview},
			&ApplicationStatusUpdated{ApplicationID: "a1", From: model.ApplicationApplied, To: model.ApplicationInterview},
		},
		{
			TopicOfferResponded,
			OfferResponded{OfferID: "o9", Status: model.OfferDeclined},
			&OfferResponded{OfferID: "o9", Status: model.OfferDeclined},
		},
		{
			TopicCompanyUnassigned,
			CompanyAssignment{CompanyID: "c3"},
			&CompanyAssignment{CompanyID: "c3"},
		},
	}
	for _, s := range sent {
		if err := pub.Publish(ctx, s.topic, s.event); err != nil {
			t.Fatalf("Publish(%s) error = %v", s.topic, err)
		}
	}
	if err := pub.conn.Flush(); err != nil {
		t.Fatal(err)
	}

	for _, s := range sent {
		msg := receive(t, ch)
		if msg.Topic != s.topic {
			t.Errorf("topic = %q, want %q", msg.Topic, s.topic)
			continue
		}
		got, err := msg.Decode()
		if err != nil {
			t.Fatalf("Decode(%s) error = %v", msg.Topic, err)
		}
		if diff := cmp.Diff(s.want, got); diff != "" {
			t.Errorf("%s payload mismatch (-want +got):\n%s", s.topic, diff)
		}
	}
}

func TestNATSSubscriber_TopicFilter(t *testing.T) {
	url := startTestNATS(t)
	pub, err := NewNATSPublisher(url)
	if err != nil {
		t.Fatal(err)
	}
	defer pub.Close()
	sub, err := NewNATSSubscriber(url)
	if err != nil {
		t.Fatal(err)
	}
	defer sub.Close()

	ch, cancel, err := sub.Subscribe("campus.company.*")
	if err != nil {
		t.Fatal(err)
	}
	defer cancel()

	ctx := context.Background()
	_ = pub.Publish(ctx, TopicApplicationWithdrawn, ApplicationWithdrawn{ApplicationID: "a1"})
	_ = pub.Publish(ctx, TopicCompanyAssigned, CompanyAssignment{CompanyID: "c1"})
	pub.conn.Flush()

	if msg := receive(t, ch); msg.Topic != TopicCompanyAssigned {
		t.Errorf("first message topic = %q, want only company topics", msg.Topic)
	}
}

func TestNATSSubscriber_CancelClosesChannel(t *testing.T) {
	_, ch, cancel := watchPair(t)
	cancel()
	if _, ok := <-ch; ok {
		t.Fatal("receive after cancel: ok = true, want closed channel")
	}
	// A second cancel is harmless.
	cancel()
}

func TestNATSSubscriber_CancelDiscardsBuffered(t *testing.T) {
	pub, ch, cancel := watchPair(t)
	for i := 0; i < 10; i++ {
		_ = pub.Publish(context.Background(), TopicCompanyAssigned, CompanyAssignment{CompanyID: "c1"})
	}
	pub.conn.Flush()
	time.Sleep(50 * time.Millisecond)

	cancel()
	if _, ok := <-ch; ok {
		t.Fatal("buffered message delivered after cancel")
	}
}

func TestNATSSubscriber_CancelWhilePublishing(t *testing.T) {
	pub, ch, cancel := watchPair(t)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			_ = pub.Publish(context.Background(), TopicApplicationWithdrawn, ApplicationWithdrawn{ApplicationID: "a1"})
		}
		pub.conn.Flush()
	}()
	cancel()
	<-done

	for range ch {
	}
}

func TestNATSSubscriber_FullBufferDrops(t *testing.T) {
	pub, ch, cancel := watchPair(t)
	defer cancel()

	total := subscriptionBuffer + 20
	for i := 0; i < total; i++ {
		_ = pub.Publish(context.Background(), TopicCompanyAssigned, CompanyAssignment{CompanyID: "c1"})
	}
	pub.conn.Flush()
	time.Sleep(100 * time.Millisecond)

	if got := len(ch); got != subscriptionBuffer {
		t.Errorf("buffered = %d, want %d (extra messages dropped)", got, subscriptionBuffer)
	}
}

func TestNewNATSSubscriber_AcceptsOptions(t *testing.T) {
	url := startTestNATS(t)
	sub, err := NewNATSSubscriber(url, nats.ReconnectHandler(func(*nats.Conn) {}))
	if err != nil {
		t.Fatalf("NewNATSSubscriber() error = %v", err)
	}
	defer sub.Close()
	if !sub.conn.IsConnected() {
		t.Error("subscriber not connected")
	}
	var _ Subscriber = sub
}

func TestNewNATSSubscriber_BadURL(t *testing.T) {
	if _, err := NewNATSSubscriber("nats://127.0.0.1:1", nats.MaxReconnects(0), nats.Timeout(200*time.Millisecond)); err == nil {
		t.Fatal("NewNATSSubscriber(unreachable) error = nil")
	}
}
