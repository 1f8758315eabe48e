package analytics

import (
	"fmt"

	"hrdash-service/service/models"
)

// ComputeSummaryMetrics 计算在职人数、Active人数和平均薪资。
// 三个指标分别读取 Terminated、EmploymentStatus 和全部记录的 Salary，互不推导。
func ComputeSummaryMetrics(records []models.EmployeeRecord) SummaryMetrics {
	metrics := SummaryMetrics{Total: len(records), AvgSalary: NoData()}
	var total float64
	for i := range records {
		if !records[i].Terminated {
			metrics.Headcount++
		}
		if records[i].EmploymentStatus == models.EmploymentStatusActive {
			metrics.ActiveCount++
		}
		total += records[i].Salary
	}
	if len(records) > 0 {
		metrics.AvgSalary = Average{Value: total / float64(len(records)), Valid: true}
	}
	return metrics
}

// Mean 计算数值字段的均值，空输入返回无数据标记
func Mean(records []models.EmployeeRecord, field Field) (Average, error) {
	if !ValidField(field) {
		return NoData(), fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	if len(records) == 0 {
		return NoData(), nil
	}
	var total float64
	for i := range records {
		v, _ := FieldValue(&records[i], field)
		total += v
	}
	return Average{Value: total / float64(len(records)), Valid: true}, nil
}

// group 按维度分组后的记录下标，order 为首次出现顺序
type group struct {
	order []string
	index map[string][]int
}

func groupBy(records []models.EmployeeRecord, dim Dimension) (*group, error) {
	if !ValidDimension(dim) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDimension, dim)
	}
	g := &group{index: make(map[string][]int)}
	for i := range records {
		key, _ := DimensionValue(&records[i], dim)
		if _, exists := g.index[key]; !exists {
			g.order = append(g.order, key)
		}
		g.index[key] = append(g.index[key], i)
	}
	return g, nil
}

// AggregateBy 按维度分组求数值字段均值，组顺序为首次出现顺序，不输出空组
func AggregateBy(records []models.EmployeeRecord, dim Dimension, field Field) ([]GroupValue, error) {
	if !ValidField(field) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	g, err := groupBy(records, dim)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoData
	}

	out := make([]GroupValue, 0, len(g.order))
	for _, key := range g.order {
		idx := g.index[key]
		var total float64
		for _, i := range idx {
			v, _ := FieldValue(&records[i], field)
			total += v
		}
		out = append(out, GroupValue{Key: key, Value: total / float64(len(idx)), Count: len(idx)})
	}
	return out, nil
}

// AggregateByDepartment 各部门的字段均值
func AggregateByDepartment(records []models.EmployeeRecord, field Field) ([]GroupValue, error) {
	return AggregateBy(records, DimensionDepartment, field)
}

// CountBy 维度取值频数，首次出现顺序
func CountBy(records []models.EmployeeRecord, dim Dimension) ([]GroupCount, error) {
	g, err := groupBy(records, dim)
	if err != nil {
		return nil, err
	}
	out := make([]GroupCount, 0, len(g.order))
	for _, key := range g.order {
		out = append(out, GroupCount{Key: key, Count: len(g.index[key])})
	}
	return out, nil
}

// CountTerminationsBy 仅统计 Terminated 记录，按维度计数
func CountTerminationsBy(records []models.EmployeeRecord, dim Dimension) (TerminationBreakdown, error) {
	terminated := make([]models.EmployeeRecord, 0)
	for i := range records {
		if records[i].Terminated {
			terminated = append(terminated, records[i])
		}
	}
	counts, err := CountBy(terminated, dim)
	if err != nil {
		return TerminationBreakdown{}, err
	}
	return TerminationBreakdown{Counts: counts, NoTerminations: len(counts) == 0}, nil
}

// CountTerminationsByDepartment 各部门离职人数
func CountTerminationsByDepartment(records []models.EmployeeRecord) TerminationBreakdown {
	// 部门维度恒可识别
	breakdown, _ := CountTerminationsBy(records, DimensionDepartment)
	return breakdown
}

// ComputeDiversityBreakdown 分类字段（如种族）的分布，计数之和等于记录数
func ComputeDiversityBreakdown(records []models.EmployeeRecord, dim Dimension) ([]GroupCount, error) {
	return CountBy(records, dim)
}
