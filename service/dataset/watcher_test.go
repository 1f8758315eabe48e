package dataset_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hrdash-service/service/dataset"
	"hrdash-service/service/models"
	"hrdash-service/testutil"
)

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hr.csv")
	require.NoError(t, os.WriteFile(path, []byte(hrCSV), 0o644))

	reloader := &testutil.MockReloader{}
	reloaded := make(chan struct{}, 4)
	reloader.On("Reload", models.LoadTriggerWatch).
		Run(func(args mock.Arguments) {
			select {
			case reloaded <- struct{}{}:
			default:
			}
		}).
		Return(&dataset.Snapshot{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	watcher := dataset.NewWatcher(path, reloader, 20*time.Millisecond)
	done := make(chan error, 1)
	go func() { done <- watcher.Run(ctx) }()

	// 等待监听建立后再写入
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "other.csv"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte(hrCSV+"Dan,HR,Clerk,White,1,1,Active,0\n"), 0o644))

	select {
	case <-reloaded:
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not reload after write")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
	reloader.AssertCalled(t, "Reload", models.LoadTriggerWatch)
}
