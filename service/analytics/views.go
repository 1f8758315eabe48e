package analytics

import (
	"errors"
	"fmt"

	"hrdash-service/service/models"
)

// ViewRequest 一次交互的输入：过滤选择 + 可选的焦点员工
type ViewRequest struct {
	Selection FilterSelection `json:"selection"`
	Focus     string          `json:"focus,omitempty"`
}

// FieldAggregate 某字段按维度分组的均值
type FieldAggregate struct {
	Field   Field        `json:"field"`
	GroupBy Dimension    `json:"group_by"`
	Groups  []GroupValue `json:"groups"`
	NoData  bool         `json:"no_data"`
}

// FieldDistribution 某字段按维度分组的箱线图数据
type FieldDistribution struct {
	Field   Field      `json:"field"`
	GroupBy Dimension  `json:"group_by"`
	Groups  []BoxStats `json:"groups"`
	NoData  bool       `json:"no_data"`
}

// CategoryBreakdown 分类分布
type CategoryBreakdown struct {
	Dimension Dimension    `json:"dimension"`
	Counts    []GroupCount `json:"counts"`
}

// ScatterView 散点图数据
type ScatterView struct {
	Name    string         `json:"name"`
	X       Field          `json:"x"`
	Y       Field          `json:"y"`
	GroupBy Dimension      `json:"group_by,omitempty"`
	Points  []ScatterPoint `json:"points"`
}

// HistogramView 直方图数据
type HistogramView struct {
	Field  Field          `json:"field"`
	Bins   []HistogramBin `json:"bins"`
	NoData bool           `json:"no_data"`
}

// OffenderView 预警名单
type OffenderView struct {
	Name      string                  `json:"name"`
	Field     Field                   `json:"field"`
	Threshold float64                 `json:"threshold"`
	Records   []models.EmployeeRecord `json:"records"`
}

// FocusView 焦点员工的档案卡和能力雷达；NotFound 时由展示层提示重新选择
type FocusView struct {
	Name     string        `json:"name"`
	Card     *EmployeeCard `json:"card,omitempty"`
	Radar    []RadarAxis   `json:"radar,omitempty"`
	NotFound bool          `json:"not_found"`
	Error    string        `json:"error,omitempty"`
}

// Table 过滤后的明细表
type Table struct {
	Columns []string        `json:"columns"`
	Rows    [][]interface{} `json:"rows"`
}

// DashboardViews 一次选择变化后重新计算出的全部派生视图
type DashboardViews struct {
	Profile       string                `json:"profile"`
	Selection     FilterSelection       `json:"selection"`
	DatasetCount  int                   `json:"dataset_count"`
	RecordCount   int                   `json:"record_count"`
	Summary       *SummaryMetrics       `json:"summary,omitempty"`
	Aggregates    []FieldAggregate      `json:"aggregates,omitempty"`
	Distributions []FieldDistribution   `json:"distributions,omitempty"`
	Categories    []CategoryBreakdown   `json:"categories,omitempty"`
	Terminations  *TerminationBreakdown `json:"terminations,omitempty"`
	Scatter       []ScatterView         `json:"scatter,omitempty"`
	Histograms    []HistogramView       `json:"histograms,omitempty"`
	Offenders     []OffenderView        `json:"offenders,omitempty"`
	FocusOptions  []string              `json:"focus_options,omitempty"`
	Focus         *FocusView            `json:"focus,omitempty"`
	Table         Table                 `json:"table"`
}

// DeriveAllViews 过滤 -> 指标 -> 聚合 -> 预警 -> 焦点，一次性重新计算全部视图。
// dataset 不会被修改。
func DeriveAllViews(dataset []models.EmployeeRecord, profile Profile, req ViewRequest) (*DashboardViews, error) {
	selection, err := ResolveSelection(dataset, profile.Filters, req.Selection)
	if err != nil {
		return nil, err
	}
	filtered, err := ApplyFilters(dataset, selection)
	if err != nil {
		return nil, err
	}

	views := &DashboardViews{
		Profile:      profile.Name,
		Selection:    selection,
		DatasetCount: len(dataset),
		RecordCount:  len(filtered),
	}

	switch profile.Summary {
	case SummaryFiltered:
		m := ComputeSummaryMetrics(filtered)
		views.Summary = &m
	case SummaryDataset:
		m := ComputeSummaryMetrics(dataset)
		views.Summary = &m
	}

	for _, field := range profile.MetricFields {
		agg := FieldAggregate{Field: field, GroupBy: profile.GroupBy, Groups: []GroupValue{}}
		groups, err := AggregateBy(filtered, profile.GroupBy, field)
		switch {
		case errors.Is(err, ErrNoData):
			agg.NoData = true
		case err != nil:
			return nil, err
		default:
			agg.Groups = groups
		}
		views.Aggregates = append(views.Aggregates, agg)
	}

	for _, field := range profile.DistributionFields {
		dist := FieldDistribution{Field: field, GroupBy: profile.GroupBy, Groups: []BoxStats{}}
		groups, err := DistributionBy(filtered, profile.GroupBy, field)
		switch {
		case errors.Is(err, ErrNoData):
			dist.NoData = true
		case err != nil:
			return nil, err
		default:
			dist.Groups = groups
		}
		views.Distributions = append(views.Distributions, dist)
	}

	for _, dim := range profile.CategoryFields {
		counts, err := ComputeDiversityBreakdown(filtered, dim)
		if err != nil {
			return nil, err
		}
		views.Categories = append(views.Categories, CategoryBreakdown{Dimension: dim, Counts: counts})
	}

	if profile.Terminations {
		t, err := CountTerminationsBy(filtered, profile.GroupBy)
		if err != nil {
			return nil, err
		}
		views.Terminations = &t
	}

	for _, rule := range profile.Scatter {
		points, err := ScatterPoints(filtered, rule.X, rule.Y, rule.GroupBy)
		if err != nil {
			return nil, err
		}
		if rule.SizeBy != "" {
			for i := range points {
				points[i].Size, _ = FieldValue(&filtered[i], rule.SizeBy)
			}
		}
		views.Scatter = append(views.Scatter, ScatterView{Name: rule.Name, X: rule.X, Y: rule.Y, GroupBy: rule.GroupBy, Points: points})
	}

	for _, rule := range profile.Histograms {
		hv := HistogramView{Field: rule.Field, Bins: []HistogramBin{}}
		bins, err := Histogram(filtered, rule.Field, rule.Bins)
		switch {
		case errors.Is(err, ErrNoData):
			hv.NoData = true
		case err != nil:
			return nil, err
		default:
			hv.Bins = bins
		}
		views.Histograms = append(views.Histograms, hv)
	}

	for _, rule := range profile.Offenders {
		records, err := SelectOffenders(filtered, rule.Field, rule.Threshold)
		if err != nil {
			return nil, err
		}
		views.Offenders = append(views.Offenders, OffenderView{Name: rule.Name, Field: rule.Field, Threshold: rule.Threshold, Records: records})
	}

	if profile.Focus {
		names := make([]string, 0, len(filtered))
		for i := range filtered {
			names = append(names, filtered[i].Name)
		}
		views.FocusOptions = names
		views.Focus = resolveFocus(filtered, req.Focus)
	}

	table, err := BuildTable(filtered, profile.TableColumns)
	if err != nil {
		return nil, err
	}
	views.Table = table

	return views, nil
}

// resolveFocus 未指定焦点时取过滤结果的第一人
func resolveFocus(filtered []models.EmployeeRecord, name string) *FocusView {
	if name == "" {
		if len(filtered) == 0 {
			return &FocusView{NotFound: true, Error: ErrNoData.Error()}
		}
		name = filtered[0].Name
	}
	rec, err := LookupRecord(filtered, name)
	if err != nil {
		return &FocusView{Name: name, NotFound: true, Error: err.Error()}
	}
	card := NewEmployeeCard(rec)
	return &FocusView{Name: name, Card: &card, Radar: CompetencyRadar(rec)}
}

// CellValue 读取表格单元格
func CellValue(rec *models.EmployeeRecord, column string) (interface{}, error) {
	if column == ColumnTerminated {
		return rec.Terminated, nil
	}
	if v, err := DimensionValue(rec, Dimension(column)); err == nil {
		return v, nil
	}
	if v, err := FieldValue(rec, Field(column)); err == nil {
		return v, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownField, column)
}

// BuildTable 将记录投影到指定列
func BuildTable(records []models.EmployeeRecord, columns []string) (Table, error) {
	table := Table{Columns: append([]string{}, columns...), Rows: make([][]interface{}, 0, len(records))}
	for i := range records {
		row := make([]interface{}, len(columns))
		for j, col := range columns {
			v, err := CellValue(&records[i], col)
			if err != nil {
				return Table{}, err
			}
			row[j] = v
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}
