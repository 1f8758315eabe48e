package dataset

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"hrdash-service/service/models"
)

type countingReloader struct {
	mu       sync.Mutex
	triggers []string
	signal   chan struct{}
}

func (r *countingReloader) Reload(ctx context.Context, trigger string) (*Snapshot, error) {
	r.mu.Lock()
	r.triggers = append(r.triggers, trigger)
	r.mu.Unlock()
	r.signal <- struct{}{}
	return &Snapshot{}, nil
}

func TestChangeListener_CoalescesNotifications(t *testing.T) {
	reloader := &countingReloader{signal: make(chan struct{}, 8)}
	listener := NewChangeListener("", "", reloader)
	listener.debounce = 30 * time.Millisecond
	assert.Equal(t, DefaultNotifyChannel, listener.channel)

	notify := make(chan *pq.Notification, 4)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- listener.loop(ctx, notify, nil) }()

	notify <- &pq.Notification{Channel: DefaultNotifyChannel, Extra: "INSERT"}
	notify <- &pq.Notification{Channel: DefaultNotifyChannel, Extra: "DELETE"}
	notify <- nil

	select {
	case <-reloader.signal:
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not reload")
	}
	time.Sleep(100 * time.Millisecond)
	cancel()
	assert.NoError(t, <-done)

	reloader.mu.Lock()
	defer reloader.mu.Unlock()
	assert.Equal(t, []string{models.LoadTriggerNotify}, reloader.triggers)
}

func TestChangeListener_StopsWhenChannelCloses(t *testing.T) {
	listener := NewChangeListener("", "custom", &countingReloader{signal: make(chan struct{}, 1)})
	notify := make(chan *pq.Notification)
	close(notify)
	assert.NoError(t, listener.loop(context.Background(), notify, nil))
}

func TestNormalizeHeader(t *testing.T) {
	cases := map[string]string{
		"Employee_Name":     "employeename",
		" RaceDesc ":        "racedesc",
		"\ufeffNome":        "nome",
		"Competencia_3":     "competencia3",
		"Engagement-Survey": "engagementsurvey",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizeHeader(in))
	}
}
