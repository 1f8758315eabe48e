/*
 * @module service/models/employee
 * @description 员工数据模型定义，HR看板的全部派生视图都基于该实体计算
 * @architecture DDD领域驱动设计 - 实体模型
 * @documentReference DESIGN.md
 * @stateFlow 数据集加载 -> 校验 -> 快照(只读) -> 过滤/聚合
 * @rules 姓名是查找键不能为空；数值为有限值，薪资和敬业度不能为负，评分在各自量程内；离职标记与在职状态相互独立
 * @dependencies gorm.io/gorm, github.com/google/uuid
 * @refs service/dataset, service/analytics
 */

package models

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmploymentStatusActive 在职状态取值
const EmploymentStatusActive = "Active"

// EmploymentStatusTerminated 离职状态取值
const EmploymentStatusTerminated = "Terminated"

// EmployeeRecord 员工记录模型
type EmployeeRecord struct {
	ID               string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	RowNum           int       `json:"row_num" gorm:"not null;default:0;index"` // 源数据中的行序，加载时按此排序
	Name             string    `json:"name" gorm:"not null;size:255;index" example:"Alice Johnson"`
	Department       string    `json:"department" gorm:"size:100;index" example:"IT"`
	Position         string    `json:"position" gorm:"size:100" example:"Developer"`
	RaceDesc         string    `json:"race_desc" gorm:"size:100" example:"White"`
	Salary           float64   `json:"salary" gorm:"not null;default:0" example:"90000"`
	EngagementSurvey float64   `json:"engagement_survey" gorm:"not null;default:0" example:"4.1"`
	Terminated       bool      `json:"terminated" gorm:"not null;default:false"`
	EmploymentStatus string    `json:"employment_status" gorm:"size:50" example:"Active"`
	Performance      float64   `json:"performance" gorm:"not null;default:0"`
	Potential        float64   `json:"potential" gorm:"not null;default:0"`
	Competency1      float64   `json:"competency_1" gorm:"column:competency_1;not null;default:0"`
	Competency2      float64   `json:"competency_2" gorm:"column:competency_2;not null;default:0"`
	Competency3      float64   `json:"competency_3" gorm:"column:competency_3;not null;default:0"`
	Competency4      float64   `json:"competency_4" gorm:"column:competency_4;not null;default:0"`
	Competency5      float64   `json:"competency_5" gorm:"column:competency_5;not null;default:0"`
	CreatedAt        time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt        time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName 指定表名
func (EmployeeRecord) TableName() string {
	return "hr_employees"
}

// BeforeCreate GORM钩子，创建前生成UUID
func (e *EmployeeRecord) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}

// Competencies 按顺序返回五项能力评分
func (e EmployeeRecord) Competencies() [5]float64 {
	return [5]float64{e.Competency1, e.Competency2, e.Competency3, e.Competency4, e.Competency5}
}

// Normalize 去除分类字段首尾空白（HRDataset导出的部门名带尾随空格）
func (e *EmployeeRecord) Normalize() {
	e.Name = strings.TrimSpace(e.Name)
	e.Department = strings.TrimSpace(e.Department)
	e.Position = strings.TrimSpace(e.Position)
	e.RaceDesc = strings.TrimSpace(e.RaceDesc)
	e.EmploymentStatus = strings.TrimSpace(e.EmploymentStatus)
}

// 评分取值范围
const (
	MaxScore      = 10.0
	MaxCompetency = 5.0
)

// Validate 校验记录是否满足数据集不变量：数值字段必须为有限值，
// 薪资与敬业度非负，绩效/潜力在 [0,10]，能力评分在 [0,5]
func (e EmployeeRecord) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("员工姓名不能为空")
	}
	checks := []struct {
		field string
		value float64
		max   float64
	}{
		{"salary", e.Salary, math.Inf(1)},
		{"engagement_survey", e.EngagementSurvey, math.Inf(1)},
		{"performance", e.Performance, MaxScore},
		{"potential", e.Potential, MaxScore},
		{"competency_1", e.Competency1, MaxCompetency},
		{"competency_2", e.Competency2, MaxCompetency},
		{"competency_3", e.Competency3, MaxCompetency},
		{"competency_4", e.Competency4, MaxCompetency},
		{"competency_5", e.Competency5, MaxCompetency},
	}
	for _, c := range checks {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return fmt.Errorf("员工 %s 的 %s 不是有限数值: %v", e.Name, c.field, c.value)
		}
		if c.value < 0 || c.value > c.max {
			return fmt.Errorf("员工 %s 的 %s 超出范围: %v", e.Name, c.field, c.value)
		}
	}
	return nil
}

// DatasetLoad 数据集加载记录，用于审计每次快照切换
type DatasetLoad struct {
	ID           string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Version      string     `json:"version" gorm:"size:36;index"`
	SourceType   string     `json:"source_type" gorm:"not null;size:20"` // database, csv, xlsx, fixture
	Source       string     `json:"source" gorm:"size:1000"`
	Trigger      string     `json:"trigger" gorm:"not null;size:20"` // startup, manual, cron, watch, notify, import
	Status       string     `json:"status" gorm:"not null;size:20"`  // success, failed
	RecordCount  int        `json:"record_count" gorm:"not null;default:0"`
	ErrorMessage string     `json:"error_message,omitempty" gorm:"type:text"`
	StartedAt    time.Time  `json:"started_at" gorm:"not null"`
	FinishedAt   *time.Time `json:"finished_at"`
}

// BeforeCreate GORM钩子，创建前生成UUID
func (d *DatasetLoad) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return nil
}

// 加载触发方式
const (
	LoadTriggerStartup = "startup"
	LoadTriggerManual  = "manual"
	LoadTriggerCron    = "cron"
	LoadTriggerWatch   = "watch"
	LoadTriggerNotify  = "notify"
	LoadTriggerImport  = "import"
)

// 加载结果状态
const (
	LoadStatusSuccess = "success"
	LoadStatusFailed  = "failed"
)
