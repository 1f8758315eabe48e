package dataset

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"hrdash-service/service/models"
)

// DBLoader 从 hr_employees 表加载员工数据
type DBLoader struct {
	db *gorm.DB
}

// NewDBLoader 创建数据库加载器
func NewDBLoader(db *gorm.DB) *DBLoader {
	return &DBLoader{db: db}
}

// Type 实现 Loader
func (l *DBLoader) Type() string { return SourceDatabase }

// Describe 实现 Loader
func (l *DBLoader) Describe() string { return models.EmployeeRecord{}.TableName() }

// Load 按源数据行序读取全部员工
func (l *DBLoader) Load(ctx context.Context) ([]models.EmployeeRecord, error) {
	var records []models.EmployeeRecord
	if err := l.db.WithContext(ctx).Order("row_num ASC").Order("created_at ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("查询员工数据失败: %w", err)
	}
	return records, nil
}
