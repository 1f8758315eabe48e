package analytics

import (
	"fmt"
	"sort"

	"hrdash-service/service/models"
)

// FilterSelection 每个维度的已选取值集合。
// 维度不在 map 中表示不约束；维度存在但集合为空表示没有记录能通过。
type FilterSelection map[Dimension][]string

// Constrains 该维度是否受约束
func (s FilterSelection) Constrains(dim Dimension) bool {
	_, ok := s[dim]
	return ok
}

// Clone 深拷贝
func (s FilterSelection) Clone() FilterSelection {
	if s == nil {
		return nil
	}
	out := make(FilterSelection, len(s))
	for dim, values := range s {
		out[dim] = append(make([]string, 0, len(values)), values...)
	}
	return out
}

// Dimensions 按名称排序返回受约束的维度
func (s FilterSelection) Dimensions() []Dimension {
	dims := make([]Dimension, 0, len(s))
	for dim := range s {
		dims = append(dims, dim)
	}
	sort.Slice(dims, func(i, j int) bool { return dims[i] < dims[j] })
	return dims
}

// ApplyFilters 返回在每个受约束维度上取值都属于已选集合的记录。
// 维度之间为 AND，同一维度内为 OR；保持原始相对顺序，返回新切片。
func ApplyFilters(records []models.EmployeeRecord, selection FilterSelection) ([]models.EmployeeRecord, error) {
	sets := make(map[Dimension]map[string]struct{}, len(selection))
	for dim, allowed := range selection {
		if !ValidDimension(dim) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownDimension, dim)
		}
		set := make(map[string]struct{}, len(allowed))
		for _, v := range allowed {
			set[v] = struct{}{}
		}
		sets[dim] = set
	}

	out := make([]models.EmployeeRecord, 0, len(records))
	for i := range records {
		pass := true
		for dim, set := range sets {
			val, _ := DimensionValue(&records[i], dim)
			if _, ok := set[val]; !ok {
				pass = false
				break
			}
		}
		if pass {
			out = append(out, records[i])
		}
	}
	return out, nil
}

// DistinctValues 返回维度的去重取值，按首次出现顺序
func DistinctValues(records []models.EmployeeRecord, dim Dimension) ([]string, error) {
	if !ValidDimension(dim) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDimension, dim)
	}
	seen := make(map[string]struct{})
	values := make([]string, 0)
	for i := range records {
		val, _ := DimensionValue(&records[i], dim)
		if _, ok := seen[val]; ok {
			continue
		}
		seen[val] = struct{}{}
		values = append(values, val)
	}
	return values, nil
}

// DefaultSelection 为给定维度选中数据集中出现的全部取值
func DefaultSelection(records []models.EmployeeRecord, dims ...Dimension) (FilterSelection, error) {
	selection := make(FilterSelection, len(dims))
	for _, dim := range dims {
		values, err := DistinctValues(records, dim)
		if err != nil {
			return nil, err
		}
		selection[dim] = values
	}
	return selection, nil
}

// ResolveSelection 以默认选择为底，覆盖请求中显式给出的维度。
// 请求中未出现的暴露维度取全部值；请求中出现但未暴露的维度同样生效。
func ResolveSelection(records []models.EmployeeRecord, exposed []Dimension, requested FilterSelection) (FilterSelection, error) {
	resolved, err := DefaultSelection(records, exposed...)
	if err != nil {
		return nil, err
	}
	for dim, values := range requested {
		if !ValidDimension(dim) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownDimension, dim)
		}
		resolved[dim] = append([]string{}, values...)
	}
	return resolved, nil
}
