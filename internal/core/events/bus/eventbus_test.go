package bus

import (
	"errors"
	"testing"
)

func TestBasicPublishSubscribe(t *testing.T) {
	b := New()
	called := 0
	_, err := b.Subscribe("test.event", func(e Event) error {
		called++
		if e.Data() != 123 {
			t.Fatalf("unexpected data: %v", e.Data())
		}
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if err = b.Publish(NewEvent("test.event", "tester", 123)); err != nil {
		t.Fatalf("publish: %v", err)
	}
	// Delivery is synchronous: the handler has already run.
	if called != 1 {
		t.Fatalf("handler called %d times", called)
	}
}

func TestEventTypeIsolation(t *testing.T) {
	b := New()
	count1 := 0
	count2 := 0
	_, _ = b.Subscribe("ev.one", func(e Event) error { count1++; return nil })
	_, _ = b.Subscribe("ev.two", func(e Event) error { count2++; return nil })
	_ = b.Publish(NewEvent("ev.one", "src", nil))
	if count1 != 1 || count2 != 0 {
		t.Fatalf("event type isolation failed: %d %d", count1, count2)
	}
}

func TestHandlerErrorsAggregate(t *testing.T) {
	b := New()
	errA := errors.New("a")
	errB := errors.New("b")
	_, _ = b.Subscribe("x", func(e Event) error { return errA })
	_, _ = b.Subscribe("x", func(e Event) error { return errB })
	err := b.Publish(NewEvent("x", "src", nil))
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Fatalf("expected both errors joined, got %v", err)
	}
}

func TestCancelStopsDelivery(t *testing.T) {
	b := New()
	count := 0
	sub, _ := b.Subscribe("x", func(e Event) error { count++; return nil })
	_ = b.Publish(NewEvent("x", "src", nil))
	if err := b.Unsubscribe(sub); err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}
	_ = b.Publish(NewEvent("x", "src", nil))
	if count != 1 {
		t.Fatalf("handler ran after cancel: %d", count)
	}
	if sub.IsActive() {
		t.Fatal("subscription still active after cancel")
	}
}

func TestMetricsCountActivity(t *testing.T) {
	b := New()
	_, _ = b.Subscribe("e", func(e Event) error { return nil })
	_ = b.Publish(NewEvent("e", "s", nil))
	_ = b.Publish(NewEvent("e", "s", nil))
	m := b.GetMetrics()
	if m.Published != 2 || m.DeliveredHandlers != 2 {
		t.Fatalf("unexpected metrics: %+v", m)
	}
	if m.SubscribersActive != 1 {
		t.Fatalf("unexpected subscriber count: %+v", m)
	}
}
