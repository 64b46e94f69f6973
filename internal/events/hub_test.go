package events

import (
	"testing"
	"time"

	"github.com/jianshanacademy/camp-portal/internal/domain/applicant"
	"github.com/stretchr/testify/assert"
)

func TestHub_PublishReachesAllSubscribers(t *testing.T) {
	hub := NewHub()

	ch1, cancel1 := hub.Subscribe()
	defer cancel1()
	ch2, cancel2 := hub.Subscribe()
	defer cancel2()

	ev := StatusEvent{ApplicationID: 1, From: applicant.StatusDraft, To: applicant.StatusUnderReview}
	hub.Publish(ev)

	for _, ch := range []<-chan StatusEvent{ch1, ch2} {
		select {
		case got := <-ch:
			assert.Equal(t, ev.ApplicationID, got.ApplicationID)
			assert.Equal(t, ev.To, got.To)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive event")
		}
	}
}

func TestHub_CancelStopsDelivery(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe()
	cancel()

	// Channel is closed after cancel; publish must not panic.
	hub.Publish(StatusEvent{ApplicationID: 1})

	_, ok := <-ch
	assert.False(t, ok)
}

func TestHub_SlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			hub.Publish(StatusEvent{ApplicationID: uint(i)})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}

	// The buffer holds the earliest events; the rest were dropped.
	first := <-ch
	assert.Equal(t, uint(0), first.ApplicationID)
}

func TestHub_CancelTwiceIsSafe(t *testing.T) {
	hub := NewHub()
	_, cancel := hub.Subscribe()
	cancel()
	cancel()
}
