package analytics

import (
	"fmt"
	"math"
	"sort"

	"hrdash-service/service/models"
)

// DistributionBy 按维度分组计算字段的五数概括（箱线图），四分位数采用线性插值
func DistributionBy(records []models.EmployeeRecord, dim Dimension, field Field) ([]BoxStats, error) {
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

	out := make([]BoxStats, 0, len(g.order))
	for _, key := range g.order {
		values := make([]float64, 0, len(g.index[key]))
		for _, i := range g.index[key] {
			v, _ := FieldValue(&records[i], field)
			values = append(values, v)
		}
		out = append(out, boxStats(key, values))
	}
	return out, nil
}

func boxStats(key string, values []float64) BoxStats {
	sort.Float64s(values)
	var total float64
	for _, v := range values {
		total += v
	}
	return BoxStats{
		Key:    key,
		Count:  len(values),
		Min:    values[0],
		Q1:     quantile(values, 0.25),
		Median: quantile(values, 0.5),
		Q3:     quantile(values, 0.75),
		Max:    values[len(values)-1],
		Mean:   total / float64(len(values)),
	}
}

// quantile 要求 sorted 已升序且非空
func quantile(sorted []float64, p float64) float64 {
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (sorted[hi]-sorted[lo])*(pos-float64(lo))
}

// Histogram 在 [min, max] 上等宽分箱
func Histogram(records []models.EmployeeRecord, field Field, bins int) ([]HistogramBin, error) {
	if !ValidField(field) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	if bins <= 0 {
		return nil, fmt.Errorf("分箱数必须大于0: %d", bins)
	}
	if len(records) == 0 {
		return nil, ErrNoData
	}

	values := make([]float64, 0, len(records))
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := range records {
		v, _ := FieldValue(&records[i], field)
		// 非有限值无法落入任何分箱
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		values = append(values, v)
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if len(values) == 0 {
		return nil, ErrNoData
	}

	if hi == lo {
		return []HistogramBin{{Lower: lo, Upper: hi, Count: len(values)}}, nil
	}

	width := (hi - lo) / float64(bins)
	out := make([]HistogramBin, bins)
	for i := range out {
		out[i].Lower = lo + width*float64(i)
		out[i].Upper = lo + width*float64(i+1)
	}
	out[bins-1].Upper = hi

	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		if idx < 0 {
			idx = 0
		}
		out[idx].Count++
	}
	return out, nil
}

// ScatterPoints 每条记录一个点，groupBy 为空时不着色
func ScatterPoints(records []models.EmployeeRecord, x, y Field, groupBy Dimension) ([]ScatterPoint, error) {
	if !ValidField(x) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, x)
	}
	if !ValidField(y) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, y)
	}
	if groupBy != "" && !ValidDimension(groupBy) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDimension, groupBy)
	}

	points := make([]ScatterPoint, 0, len(records))
	for i := range records {
		p := ScatterPoint{Name: records[i].Name}
		p.X, _ = FieldValue(&records[i], x)
		p.Y, _ = FieldValue(&records[i], y)
		if groupBy != "" {
			p.Group, _ = DimensionValue(&records[i], groupBy)
		}
		points = append(points, p)
	}
	return points, nil
}
