/*
 * @module service/dataset/importer
 * @description 员工数据导入，将上传的CSV/XLSX整体替换 hr_employees 表
 * @architecture 事务脚本 - 解析校验在事务外完成，替换在单个事务内完成
 * @documentReference DESIGN.md
 * @stateFlow 识别格式 -> 解析 -> 校验 -> 事务替换 -> 写入加载记录 -> 触发快照重载
 * @rules 任一行无效则不写库；替换要么全部成功要么保持原表不变
 * @dependencies gorm.io/gorm, github.com/google/uuid
 * @refs loader.go, store.go
 */

package dataset

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hrdash-service/service/distributed_lock"
	"hrdash-service/service/models"
)

const (
	importBatchSize = 200
	importLockKey   = "dataset:import"
	importLockTTL   = 5 * time.Minute
)

// ImportResult 导入结果
type ImportResult struct {
	BatchID  string    `json:"batch_id"`
	Format   string    `json:"format"`
	Filename string    `json:"filename"`
	Records  int       `json:"records"`
	Snapshot *Snapshot `json:"snapshot,omitempty"`
}

// Importer 员工数据导入器
type Importer struct {
	db       *gorm.DB
	store    *Store
	encoding string
	locker   distributed_lock.Locker
}

// NewImporter 创建导入器；store 使用数据库数据源时导入后立即重载
func NewImporter(db *gorm.DB, store *Store, encoding string) *Importer {
	return &Importer{db: db, store: store, encoding: encoding, locker: distributed_lock.NewLocalLock()}
}

// SetLocker 替换导入锁，多实例部署时使用Redis锁
func (i *Importer) SetLocker(locker distributed_lock.Locker) {
	if locker != nil {
		i.locker = locker
	}
}

// FormatOf 按文件扩展名识别格式
func FormatOf(filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return SourceCSV, nil
	case ".xlsx":
		return SourceXLSX, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}
}

// Parse 解析上传内容
func (i *Importer) Parse(filename string, r io.Reader) (string, []models.EmployeeRecord, error) {
	format, err := FormatOf(filename)
	if err != nil {
		return "", nil, err
	}
	var records []models.EmployeeRecord
	if format == SourceCSV {
		records, err = ParseCSV(r, i.encoding)
	} else {
		records, err = ParseXLSX(r, "")
	}
	if err != nil {
		return format, nil, err
	}
	if err := validateRecords(records); err != nil {
		return format, nil, err
	}
	return format, records, nil
}

// Import 解析并替换员工表
func (i *Importer) Import(ctx context.Context, filename string, r io.Reader) (*ImportResult, error) {
	start := time.Now()
	format, records, err := i.Parse(filename, r)
	if err != nil {
		i.audit(ctx, format, filename, start, 0, "", err)
		return nil, err
	}

	batchID := uuid.New().String()
	err = distributed_lock.WithLock(ctx, i.locker, importLockKey, importLockTTL, func() error {
		return i.replace(ctx, records)
	})
	i.audit(ctx, format, filename, start, len(records), batchID, err)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{BatchID: batchID, Format: format, Filename: filename, Records: len(records)}
	if i.store != nil && i.store.Loader().Type() == SourceDatabase {
		snap, err := i.store.Reload(ctx, models.LoadTriggerImport)
		if err != nil {
			return result, fmt.Errorf("导入成功但重载快照失败: %w", err)
		}
		result.Snapshot = snap
	}
	return result, nil
}

// replace 在单个事务内清空并写入员工表
func (i *Importer) replace(ctx context.Context, records []models.EmployeeRecord) error {
	return i.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.EmployeeRecord{}).Error; err != nil {
			return fmt.Errorf("清空员工表失败: %w", err)
		}
		for idx := range records {
			records[idx].ID = ""
		}
		if len(records) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(records, importBatchSize).Error; err != nil {
			return fmt.Errorf("写入员工数据失败: %w", err)
		}
		return nil
	})
}

func (i *Importer) audit(ctx context.Context, format, filename string, start time.Time, count int, batchID string, importErr error) {
	finished := time.Now()
	entry := models.DatasetLoad{
		Version:     batchID,
		SourceType:  format,
		Source:      filename,
		Trigger:     models.LoadTriggerImport,
		Status:      models.LoadStatusSuccess,
		RecordCount: count,
		StartedAt:   start,
		FinishedAt:  &finished,
	}
	if entry.SourceType == "" {
		entry.SourceType = "unknown"
	}
	if importErr != nil {
		entry.Status = models.LoadStatusFailed
		entry.ErrorMessage = importErr.Error()
	}
	if err := i.db.WithContext(ctx).Create(&entry).Error; err != nil {
		slog.Warn("写入导入记录失败", "filename", filename, "batch_id", batchID, "error", err)
	}
}
