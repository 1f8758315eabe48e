package analytics

import (
	"fmt"

	"hrdash-service/service/models"
)

// SelectOffenders 返回 field < threshold 的记录（严格小于），保持原顺序
func SelectOffenders(records []models.EmployeeRecord, field Field, threshold float64) ([]models.EmployeeRecord, error) {
	if !ValidField(field) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	out := make([]models.EmployeeRecord, 0)
	for i := range records {
		v, _ := FieldValue(&records[i], field)
		if v < threshold {
			out = append(out, records[i])
		}
	}
	return out, nil
}

// LookupRecord 返回第一个姓名完全匹配的记录
func LookupRecord(records []models.EmployeeRecord, name string) (models.EmployeeRecord, error) {
	for i := range records {
		if records[i].Name == name {
			return records[i], nil
		}
	}
	return models.EmployeeRecord{}, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// NewEmployeeCard 生成员工档案卡
func NewEmployeeCard(rec models.EmployeeRecord) EmployeeCard {
	return EmployeeCard{
		Name:        rec.Name,
		Department:  rec.Department,
		Position:    rec.Position,
		Performance: rec.Performance,
		Potential:   rec.Potential,
	}
}

// CompetencyRadar 五项能力评分，顺序与 CompetencyFields 一致
func CompetencyRadar(rec models.EmployeeRecord) []RadarAxis {
	values := rec.Competencies()
	axes := make([]RadarAxis, len(CompetencyFields))
	for i, f := range CompetencyFields {
		axes[i] = RadarAxis{Axis: f, Value: values[i]}
	}
	return axes
}
