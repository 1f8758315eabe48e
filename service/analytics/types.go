/*
 * @module service/analytics/types
 * @description 过滤聚合引擎的基础类型：分类维度、数值字段、过滤选择和派生结果
 * @architecture 纯函数计算层
 * @documentReference DESIGN.md
 * @stateFlow 无状态：输入记录 -> 派生结果
 * @rules 派生结果保持首次出现顺序；零条记录求均值返回显式的无数据标记
 * @dependencies hrdash-service/service/models
 * @refs filters.go, aggregators.go
 */

package analytics

import (
	"encoding/json"
	"fmt"

	"hrdash-service/service/models"
)

// Dimension 可过滤/可分组的分类维度
type Dimension string

const (
	DimensionName             Dimension = "name"
	DimensionDepartment       Dimension = "department"
	DimensionPosition         Dimension = "position"
	DimensionRace             Dimension = "race_desc"
	DimensionEmploymentStatus Dimension = "employment_status"
)

// Field 可聚合的数值字段
type Field string

const (
	FieldSalary      Field = "salary"
	FieldEngagement  Field = "engagement_survey"
	FieldPerformance Field = "performance"
	FieldPotential   Field = "potential"
	FieldCompetency1 Field = "competency_1"
	FieldCompetency2 Field = "competency_2"
	FieldCompetency3 Field = "competency_3"
	FieldCompetency4 Field = "competency_4"
	FieldCompetency5 Field = "competency_5"
)

// CompetencyFields 雷达图的五项能力，顺序固定
var CompetencyFields = []Field{FieldCompetency1, FieldCompetency2, FieldCompetency3, FieldCompetency4, FieldCompetency5}

// DimensionValue 读取记录在某维度上的取值
func DimensionValue(rec *models.EmployeeRecord, dim Dimension) (string, error) {
	switch dim {
	case DimensionName:
		return rec.Name, nil
	case DimensionDepartment:
		return rec.Department, nil
	case DimensionPosition:
		return rec.Position, nil
	case DimensionRace:
		return rec.RaceDesc, nil
	case DimensionEmploymentStatus:
		return rec.EmploymentStatus, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownDimension, dim)
}

// FieldValue 读取记录的数值字段
func FieldValue(rec *models.EmployeeRecord, field Field) (float64, error) {
	switch field {
	case FieldSalary:
		return rec.Salary, nil
	case FieldEngagement:
		return rec.EngagementSurvey, nil
	case FieldPerformance:
		return rec.Performance, nil
	case FieldPotential:
		return rec.Potential, nil
	case FieldCompetency1:
		return rec.Competency1, nil
	case FieldCompetency2:
		return rec.Competency2, nil
	case FieldCompetency3:
		return rec.Competency3, nil
	case FieldCompetency4:
		return rec.Competency4, nil
	case FieldCompetency5:
		return rec.Competency5, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownField, field)
}

// ValidDimension 维度名是否可识别
func ValidDimension(dim Dimension) bool {
	_, err := DimensionValue(&models.EmployeeRecord{}, dim)
	return err == nil
}

// ValidField 字段名是否可识别
func ValidField(field Field) bool {
	_, err := FieldValue(&models.EmployeeRecord{}, field)
	return err == nil
}

// Average 均值结果。Valid 为 false 表示“无数据”，Value 此时无意义
type Average struct {
	Value float64
	Valid bool
}

// NoData 返回无数据标记
func NoData() Average {
	return Average{}
}

// MarshalJSON 无数据时 value 输出为 null 并带 no_data 标记
func (a Average) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte(`{"value":null,"no_data":true}`), nil
	}
	return json.Marshal(struct {
		Value  float64 `json:"value"`
		NoData bool    `json:"no_data"`
	}{Value: a.Value})
}

// UnmarshalJSON 与 MarshalJSON 对称
func (a *Average) UnmarshalJSON(data []byte) error {
	var raw struct {
		Value  *float64 `json:"value"`
		NoData bool     `json:"no_data"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.NoData || raw.Value == nil {
		*a = NoData()
		return nil
	}
	*a = Average{Value: *raw.Value, Valid: true}
	return nil
}

// SummaryMetrics 看板顶部的三项指标
type SummaryMetrics struct {
	Headcount   int     `json:"headcount"`    // Terminated == false 的人数
	ActiveCount int     `json:"active_count"` // EmploymentStatus == "Active" 的人数
	AvgSalary   Average `json:"avg_salary"`   // 全部记录的平均薪资
	Total       int     `json:"total"`
}

// GroupValue 分组均值
type GroupValue struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// GroupCount 分组计数
type GroupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// TerminationBreakdown 各部门离职人数；NoTerminations 为 true 时前端展示提示信息而非空图
type TerminationBreakdown struct {
	Counts         []GroupCount `json:"counts"`
	NoTerminations bool         `json:"no_terminations"`
}

// BoxStats 五数概括，用于箱线图
type BoxStats struct {
	Key    string  `json:"key"`
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
}

// HistogramBin 直方图分箱，区间左闭右开，最后一箱右闭
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// ScatterPoint 散点
type ScatterPoint struct {
	Name  string  `json:"name"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Group string  `json:"group,omitempty"`
	Size  float64 `json:"size,omitempty"`
}

// EmployeeCard 员工档案卡（姓名/绩效/潜力）
type EmployeeCard struct {
	Name        string  `json:"name"`
	Department  string  `json:"department,omitempty"`
	Position    string  `json:"position,omitempty"`
	Performance float64 `json:"performance"`
	Potential   float64 `json:"potential"`
}

// RadarAxis 雷达图的一个轴
type RadarAxis struct {
	Axis  Field   `json:"axis"`
	Value float64 `json:"value"`
}
