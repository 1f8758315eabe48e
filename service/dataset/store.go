/*
 * @module service/dataset/store
 * @description 数据集快照存储，持有当前不可变快照并负责原子切换
 * @architecture 读写分离 - 读者持有旧快照直至完成，重载只替换指针
 * @documentReference DESIGN.md
 * @stateFlow 加载 -> 校验 -> 生成版本号 -> 原子替换 -> 写入加载记录 -> 通知回调
 * @rules 加载失败时保留上一个快照；同一时刻只有一个重载在执行；快照记录只读
 * @dependencies gorm.io/gorm, github.com/google/uuid
 * @refs loader.go, watcher.go, listener.go, importer.go
 */

package dataset

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hrdash-service/service/models"
)

// Snapshot 某一时刻的完整数据集，加载后不再修改
type Snapshot struct {
	Version    string                  `json:"version"`
	SourceType string                  `json:"source_type"`
	Source     string                  `json:"source"`
	Trigger    string                  `json:"trigger"`
	Count      int                     `json:"count"`
	LoadedAt   time.Time               `json:"loaded_at"`
	Records    []models.EmployeeRecord `json:"-"`
}

// ReloadResult 一次重载的结果
type ReloadResult struct {
	Trigger  string
	Previous *Snapshot
	Snapshot *Snapshot
	Duration time.Duration
	Err      error
}

// ReloadHook 重载完成后的回调
type ReloadHook func(ctx context.Context, result ReloadResult)

// Reloader 可被触发重载的数据集
type Reloader interface {
	Reload(ctx context.Context, trigger string) (*Snapshot, error)
}

// Store 数据集快照存储
type Store struct {
	loader Loader
	db     *gorm.DB

	mu      sync.RWMutex
	current *Snapshot
	hooks   []ReloadHook

	reloadMu sync.Mutex
}

// NewStore 创建快照存储，db 不为空时写入加载审计记录
func NewStore(loader Loader, db *gorm.DB) *Store {
	return &Store{loader: loader, db: db}
}

// Loader 当前使用的加载器
func (s *Store) Loader() Loader {
	return s.loader
}

// OnReload 注册重载回调
func (s *Store) OnReload(hook ReloadHook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, hook)
}

// Current 当前快照，未加载时返回 ErrNoSnapshot
func (s *Store) Current() (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, ErrNoSnapshot
	}
	return s.current, nil
}

// Records 返回当前快照的记录，首次调用时触发加载
func (s *Store) Records(ctx context.Context) ([]models.EmployeeRecord, error) {
	if snap, err := s.Current(); err == nil {
		return snap.Records, nil
	}

	s.reloadMu.Lock()
	if snap, err := s.Current(); err == nil {
		s.reloadMu.Unlock()
		return snap.Records, nil
	}
	s.reloadMu.Unlock()

	snap, err := s.Reload(ctx, models.LoadTriggerStartup)
	if err != nil {
		return nil, err
	}
	return snap.Records, nil
}

// Reload 重新加载数据集，成功后原子替换当前快照
func (s *Store) Reload(ctx context.Context, trigger string) (*Snapshot, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	start := time.Now()
	previous, _ := s.Current()

	records, err := s.loader.Load(ctx)
	if err == nil {
		err = validateRecords(records)
	}

	var snap *Snapshot
	if err == nil {
		snap = &Snapshot{
			Version:    uuid.New().String(),
			SourceType: s.loader.Type(),
			Source:     s.loader.Describe(),
			Trigger:    trigger,
			Count:      len(records),
			LoadedAt:   time.Now(),
			Records:    records,
		}
		s.mu.Lock()
		s.current = snap
		s.mu.Unlock()
		slog.Info("数据集已加载", "version", snap.Version, "source", snap.Source, "trigger", trigger, "records", snap.Count)
	} else {
		slog.Error("数据集加载失败", "source", s.loader.Describe(), "trigger", trigger, "error", err)
	}

	s.audit(ctx, trigger, start, snap, err)

	result := ReloadResult{Trigger: trigger, Previous: previous, Snapshot: snap, Duration: time.Since(start), Err: err}
	s.mu.RLock()
	hooks := append([]ReloadHook(nil), s.hooks...)
	s.mu.RUnlock()
	for _, hook := range hooks {
		hook(ctx, result)
	}

	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *Store) audit(ctx context.Context, trigger string, start time.Time, snap *Snapshot, loadErr error) {
	if s.db == nil {
		return
	}
	finished := time.Now()
	entry := models.DatasetLoad{
		SourceType: s.loader.Type(),
		Source:     s.loader.Describe(),
		Trigger:    trigger,
		Status:     models.LoadStatusSuccess,
		StartedAt:  start,
		FinishedAt: &finished,
	}
	if snap != nil {
		entry.Version = snap.Version
		entry.RecordCount = snap.Count
	}
	if loadErr != nil {
		entry.Status = models.LoadStatusFailed
		entry.ErrorMessage = loadErr.Error()
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		slog.Warn("写入数据集加载记录失败", "error", err)
	}
}

// History 最近的加载记录，按开始时间倒序
func (s *Store) History(ctx context.Context, limit int) ([]models.DatasetLoad, error) {
	if s.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}
	var loads []models.DatasetLoad
	err := s.db.WithContext(ctx).Order("started_at DESC").Limit(limit).Find(&loads).Error
	return loads, err
}
