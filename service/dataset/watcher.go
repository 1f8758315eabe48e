package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"hrdash-service/service/models"
)

// DefaultDebounce 文件变更后等待写入完成的时间
const DefaultDebounce = 500 * time.Millisecond

// Watcher 监听数据文件变更并触发重载
type Watcher struct {
	path     string
	reloader Reloader
	debounce time.Duration
}

// NewWatcher 创建文件监听器
func NewWatcher(path string, reloader Reloader, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{path: path, reloader: reloader, debounce: debounce}
}

// Run 阻塞运行直到 ctx 取消
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("创建文件监听器失败: %w", err)
	}
	defer fw.Close()

	target, err := filepath.Abs(w.path)
	if err != nil {
		return err
	}
	// 监听目录，编辑器保存时常以重命名方式替换文件
	if err := fw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("监听目录失败: %w", err)
	}
	slog.Info("数据文件监听已启动", "path", target)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(target, ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("文件监听错误", "error", err)
		case <-fire:
			fire = nil
			if _, err := w.reloader.Reload(ctx, models.LoadTriggerWatch); err != nil {
				slog.Warn("文件变更后重载失败，继续使用上一个快照", "error", err)
			}
		}
	}
}

func (w *Watcher) relevant(target string, ev fsnotify.Event) bool {
	name, err := filepath.Abs(ev.Name)
	if err != nil || name != target {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}
