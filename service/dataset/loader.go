/*
 * @module service/dataset/loader
 * @description 员工数据集加载器，支持数据库、CSV、XLSX和内置样例四种来源
 * @architecture 策略模式 - 按数据源类型选择加载器
 * @documentReference DESIGN.md
 * @stateFlow 读取原始数据 -> 表头映射 -> 单元格转换 -> 规范化 -> 校验
 * @rules 任一行无效则整次加载失败；行序保持源数据顺序
 * @dependencies github.com/spf13/cast, gorm.io/gorm
 * @refs store.go, csv.go, xlsx.go
 */

package dataset

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"
	"gorm.io/gorm"

	"hrdash-service/service/models"
)

// 数据源类型
const (
	SourceDatabase = "database"
	SourceCSV      = "csv"
	SourceXLSX     = "xlsx"
	SourceFixture  = "fixture"
)

// Loader 数据集加载器
type Loader interface {
	Load(ctx context.Context) ([]models.EmployeeRecord, error)
	// Type 数据源类型
	Type() string
	// Describe 数据源描述（文件路径、表名等）
	Describe() string
}

// SourceConfig 数据源配置
type SourceConfig struct {
	Type     string
	Path     string
	Encoding string
	Sheet    string
	Fixture  string
	DB       *gorm.DB
}

// NewLoader 根据配置创建加载器
func NewLoader(cfg SourceConfig) (Loader, error) {
	switch cfg.Type {
	case SourceDatabase:
		if cfg.DB == nil {
			return nil, fmt.Errorf("%w: database source requires a connection", ErrUnknownSource)
		}
		return NewDBLoader(cfg.DB), nil
	case SourceCSV:
		return NewCSVLoader(cfg.Path, cfg.Encoding), nil
	case SourceXLSX:
		return NewXLSXLoader(cfg.Path, cfg.Sheet), nil
	case SourceFixture:
		return NewFixtureLoader(cfg.Fixture)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, cfg.Type)
	}
}

type column int

const (
	colName column = iota
	colDepartment
	colPosition
	colRace
	colSalary
	colEngagement
	colStatus
	colTerminated
	colPerformance
	colPotential
	colCompetency1
	colCompetency2
	colCompetency3
	colCompetency4
	colCompetency5
)

// headerAliases 兼容 HRDataset 导出和九宫格表格两种表头
var headerAliases = map[string]column{
	"employeename":     colName,
	"name":             colName,
	"nome":             colName,
	"department":       colDepartment,
	"departamento":     colDepartment,
	"position":         colPosition,
	"cargo":            colPosition,
	"racedesc":         colRace,
	"race":             colRace,
	"salary":           colSalary,
	"salario":          colSalary,
	"engagementsurvey": colEngagement,
	"engagement":       colEngagement,
	"employmentstatus": colStatus,
	"status":           colStatus,
	"termd":            colTerminated,
	"terminated":       colTerminated,
	"performance":      colPerformance,
	"potential":        colPotential,
	"potencial":        colPotential,
	"competency1":      colCompetency1,
	"competencia1":     colCompetency1,
	"competency2":      colCompetency2,
	"competencia2":     colCompetency2,
	"competency3":      colCompetency3,
	"competencia3":     colCompetency3,
	"competency4":      colCompetency4,
	"competencia4":     colCompetency4,
	"competency5":      colCompetency5,
	"competencia5":     colCompetency5,
}

func normalizeHeader(header string) string {
	header = strings.ToLower(strings.TrimSpace(header))
	replacer := strings.NewReplacer("_", "", " ", "", "-", "", "\ufeff", "")
	return replacer.Replace(header)
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseRows 将表格行（首行为表头）转换为员工记录
func parseRows(rows [][]string) ([]models.EmployeeRecord, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty header", ErrMissingColumn)
	}

	index := make(map[column]int)
	for i, header := range rows[0] {
		col, ok := headerAliases[normalizeHeader(header)]
		if !ok {
			continue
		}
		if _, seen := index[col]; !seen {
			index[col] = i
		}
	}
	if _, ok := index[colName]; !ok {
		return nil, fmt.Errorf("%w: employee name", ErrMissingColumn)
	}

	records := make([]models.EmployeeRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		line := i + 2
		rec, err := mapRow(row, index)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrInvalidRecord, line, err)
		}
		rec.RowNum = len(records) + 1
		records = append(records, rec)
	}
	return records, nil
}

func mapRow(row []string, index map[column]int) (models.EmployeeRecord, error) {
	text := func(col column) string {
		idx, ok := index[col]
		if !ok {
			return ""
		}
		return cellValue(row, idx)
	}

	var firstErr error
	number := func(col column) float64 {
		raw := text(col)
		if raw == "" {
			return 0
		}
		v, err := cast.ToFloat64E(raw)
		if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
			err = fmt.Errorf("non-finite")
		}
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("column %d: %q is not a finite number", index[col]+1, raw)
		}
		return v
	}
	flag := func(col column) bool {
		raw := text(col)
		if raw == "" {
			return false
		}
		v, err := cast.ToBoolE(raw)
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("column %d: %q is not a flag", index[col]+1, raw)
		}
		return v
	}

	rec := models.EmployeeRecord{
		Name:             text(colName),
		Department:       text(colDepartment),
		Position:         text(colPosition),
		RaceDesc:         text(colRace),
		Salary:           number(colSalary),
		EngagementSurvey: number(colEngagement),
		EmploymentStatus: text(colStatus),
		Terminated:       flag(colTerminated),
		Performance:      number(colPerformance),
		Potential:        number(colPotential),
		Competency1:      number(colCompetency1),
		Competency2:      number(colCompetency2),
		Competency3:      number(colCompetency3),
		Competency4:      number(colCompetency4),
		Competency5:      number(colCompetency5),
	}
	return rec, firstErr
}

// validateRecords 规范化并校验全部记录，错误中带行号
func validateRecords(records []models.EmployeeRecord) error {
	for i := range records {
		records[i].Normalize()
		if err := records[i].Validate(); err != nil {
			return fmt.Errorf("%w: row %d: %v", ErrInvalidRecord, i+1, err)
		}
	}
	return nil
}
