package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hrdash-service/service/dataset"
	"hrdash-service/service/models"
	"hrdash-service/testutil"
)

func TestReloadScheduler_InvalidExpression(t *testing.T) {
	_, err := NewReloadScheduler(&testutil.MockReloader{}, "every monday")
	assert.Error(t, err)
}

func TestReloadScheduler_TriggersReload(t *testing.T) {
	reloader := &testutil.MockReloader{}
	fired := make(chan struct{}, 4)
	reloader.On("Reload", models.LoadTriggerCron).
		Run(func(args mock.Arguments) {
			select {
			case fired <- struct{}{}:
			default:
			}
		}).
		Return(&dataset.Snapshot{}, nil)

	s, err := NewReloadScheduler(reloader, "* * * * * *")
	require.NoError(t, err)
	s.Start()
	defer s.Stop()

	assert.False(t, s.Next().IsZero())

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("scheduler did not fire")
	}
}
