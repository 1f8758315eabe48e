/*
 * @module service/analytics/profile
 * @description 看板配置：同一个过滤聚合引擎通过配置区分不同看板（过滤维度、聚合字段、阈值等）
 * @architecture 配置驱动 - 注册中心模式
 * @documentReference DESIGN.md
 * @stateFlow 内置配置注册 -> YAML配置加载 -> 校验 -> 查询
 * @rules 配置在注册时校验，派生视图时不再出现未知字段/维度
 * @dependencies gopkg.in/yaml.v3
 * @refs engine.go, views.go
 */

package analytics

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// SummaryScope 顶部指标的计算范围
type SummaryScope string

const (
	SummaryNone     SummaryScope = "none"
	SummaryFiltered SummaryScope = "filtered" // 基于过滤后的记录
	SummaryDataset  SummaryScope = "dataset"  // 基于整个数据集，不受过滤影响
)

// ColumnTerminated 表格中的离职标记列
const ColumnTerminated = "terminated"

// OffenderRule 低于阈值即标记
type OffenderRule struct {
	Name      string  `yaml:"name" json:"name"`
	Field     Field   `yaml:"field" json:"field"`
	Threshold float64 `yaml:"threshold" json:"threshold"`
}

// HistogramRule 直方图配置
type HistogramRule struct {
	Field Field `yaml:"field" json:"field"`
	Bins  int   `yaml:"bins" json:"bins"`
}

// ScatterRule 散点图配置
type ScatterRule struct {
	Name    string    `yaml:"name" json:"name"`
	X       Field     `yaml:"x" json:"x"`
	Y       Field     `yaml:"y" json:"y"`
	GroupBy Dimension `yaml:"group_by,omitempty" json:"group_by,omitempty"`
	SizeBy  Field     `yaml:"size_by,omitempty" json:"size_by,omitempty"`
}

// Profile 看板配置
type Profile struct {
	Name               string          `yaml:"name" json:"name"`
	Title              string          `yaml:"title" json:"title"`
	Filters            []Dimension     `yaml:"filters" json:"filters"`
	GroupBy            Dimension       `yaml:"group_by" json:"group_by"`
	Summary            SummaryScope    `yaml:"summary" json:"summary"`
	MetricFields       []Field         `yaml:"metric_fields" json:"metric_fields"`
	DistributionFields []Field         `yaml:"distribution_fields" json:"distribution_fields"`
	CategoryFields     []Dimension     `yaml:"category_fields" json:"category_fields"`
	Terminations       bool            `yaml:"terminations" json:"terminations"`
	Scatter            []ScatterRule   `yaml:"scatter" json:"scatter"`
	Histograms         []HistogramRule `yaml:"histograms" json:"histograms"`
	Offenders          []OffenderRule  `yaml:"offenders" json:"offenders"`
	Focus              bool            `yaml:"focus" json:"focus"`
	TableColumns       []string        `yaml:"table_columns" json:"table_columns"`
}

// Normalize 填充默认值
func (p *Profile) Normalize() {
	if p.GroupBy == "" {
		p.GroupBy = DimensionDepartment
	}
	if p.Summary == "" {
		p.Summary = SummaryFiltered
	}
	if p.Title == "" {
		p.Title = p.Name
	}
	for i := range p.Offenders {
		if p.Offenders[i].Name == "" {
			p.Offenders[i].Name = "low_" + string(p.Offenders[i].Field)
		}
	}
	for i := range p.Scatter {
		if p.Scatter[i].Name == "" {
			p.Scatter[i].Name = string(p.Scatter[i].X) + "_" + string(p.Scatter[i].Y)
		}
	}
}

// Validate 校验配置中的字段和维度
func (p *Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: 名称不能为空", ErrInvalidProfile)
	}
	bad := func(format string, args ...interface{}) error {
		return fmt.Errorf("%w: %s: %s", ErrInvalidProfile, p.Name, fmt.Sprintf(format, args...))
	}

	for _, dim := range p.Filters {
		if !ValidDimension(dim) {
			return bad("未知过滤维度 %s", dim)
		}
	}
	if !ValidDimension(p.GroupBy) {
		return bad("未知分组维度 %s", p.GroupBy)
	}
	switch p.Summary {
	case SummaryNone, SummaryFiltered, SummaryDataset:
	default:
		return bad("未知指标范围 %s", p.Summary)
	}
	for _, f := range append(append([]Field{}, p.MetricFields...), p.DistributionFields...) {
		if !ValidField(f) {
			return bad("未知数值字段 %s", f)
		}
	}
	for _, dim := range p.CategoryFields {
		if !ValidDimension(dim) {
			return bad("未知分类字段 %s", dim)
		}
	}
	for _, s := range p.Scatter {
		if !ValidField(s.X) || !ValidField(s.Y) {
			return bad("散点图 %s 字段无效", s.Name)
		}
		if s.GroupBy != "" && !ValidDimension(s.GroupBy) {
			return bad("散点图 %s 着色维度无效", s.Name)
		}
		if s.SizeBy != "" && !ValidField(s.SizeBy) {
			return bad("散点图 %s 尺寸字段无效", s.Name)
		}
	}
	for _, h := range p.Histograms {
		if !ValidField(h.Field) {
			return bad("直方图字段无效 %s", h.Field)
		}
		if h.Bins <= 0 {
			return bad("直方图 %s 分箱数必须大于0", h.Field)
		}
	}
	seen := make(map[string]struct{})
	for _, o := range p.Offenders {
		if !ValidField(o.Field) {
			return bad("预警规则 %s 字段无效", o.Name)
		}
		if _, dup := seen[o.Name]; dup {
			return bad("预警规则重名 %s", o.Name)
		}
		seen[o.Name] = struct{}{}
	}
	for _, col := range p.TableColumns {
		if !validColumn(col) {
			return bad("未知表格列 %s", col)
		}
	}
	return nil
}

func validColumn(col string) bool {
	return col == ColumnTerminated || ValidDimension(Dimension(col)) || ValidField(Field(col))
}

// BuiltinProfiles 内置的三个看板：总览、洞察、九宫格
func BuiltinProfiles() []Profile {
	hrColumns := []string{"name", "department", "position", "race_desc", "salary", "engagement_survey"}
	return []Profile{
		{
			Name:               "overview",
			Title:              "Dashboard de Recursos Humanos",
			Filters:            []Dimension{DimensionDepartment},
			GroupBy:            DimensionDepartment,
			Summary:            SummaryDataset,
			MetricFields:       []Field{FieldSalary, FieldEngagement},
			DistributionFields: []Field{FieldSalary},
			CategoryFields:     []Dimension{DimensionRace},
			TableColumns:       hrColumns,
		},
		{
			Name:               "insights",
			Title:              "Dashboard RH com Insights Estratégicos",
			Filters:            []Dimension{DimensionDepartment, DimensionPosition},
			GroupBy:            DimensionDepartment,
			Summary:            SummaryFiltered,
			MetricFields:       []Field{FieldSalary, FieldEngagement},
			DistributionFields: []Field{FieldSalary},
			CategoryFields:     []Dimension{DimensionRace},
			Terminations:       true,
			Scatter: []ScatterRule{
				{Name: "salary_engagement", X: FieldSalary, Y: FieldEngagement, GroupBy: DimensionDepartment, SizeBy: FieldSalary},
			},
			TableColumns: append(append([]string{}, hrColumns...), "employment_status", ColumnTerminated),
		},
		{
			Name:    "ninebox",
			Title:   "Ninebox e Avaliação de Competências",
			Filters: []Dimension{DimensionName},
			GroupBy: DimensionDepartment,
			Summary: SummaryNone,
			Scatter: []ScatterRule{
				{Name: "ninebox", X: FieldPotential, Y: FieldPerformance},
			},
			Histograms: []HistogramRule{
				{Field: FieldPerformance, Bins: 8},
				{Field: FieldPotential, Bins: 8},
			},
			Offenders: []OffenderRule{
				{Name: "low_performance", Field: FieldPerformance, Threshold: 5},
				{Name: "low_potential", Field: FieldPotential, Threshold: 5},
			},
			Focus:        true,
			TableColumns: []string{"name", "performance", "potential"},
		},
	}
}

// ProfileRegistry 看板配置注册中心
type ProfileRegistry struct {
	mu       sync.RWMutex
	profiles map[string]Profile
	order    []string
}

// NewProfileRegistry 创建注册中心并注册内置看板
func NewProfileRegistry() *ProfileRegistry {
	r := &ProfileRegistry{profiles: make(map[string]Profile)}
	for _, p := range BuiltinProfiles() {
		if err := r.Register(p); err != nil {
			panic(err)
		}
	}
	return r
}

// Register 校验并注册（同名覆盖）
func (r *ProfileRegistry) Register(p Profile) error {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.profiles[p.Name]; !exists {
		r.order = append(r.order, p.Name)
	}
	r.profiles[p.Name] = p
	return nil
}

// Get 获取看板配置
func (r *ProfileRegistry) Get(name string) (Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %s", ErrUnknownProfile, name)
	}
	return p, nil
}

// List 按注册顺序返回全部配置
func (r *ProfileRegistry) List() []Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Profile, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.profiles[name])
	}
	return out
}

type profileFile struct {
	Profiles []Profile `yaml:"profiles"`
}

// ParseProfiles 解析YAML格式的看板配置
func ParseProfiles(data []byte) ([]Profile, error) {
	var file profileFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("解析看板配置失败: %w", err)
	}
	return file.Profiles, nil
}

// LoadFile 从YAML文件加载并注册看板配置，任一配置无效则全部不注册
func (r *ProfileRegistry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("读取看板配置文件失败: %w", err)
	}
	profiles, err := ParseProfiles(data)
	if err != nil {
		return err
	}
	for i := range profiles {
		profiles[i].Normalize()
		if err := profiles[i].Validate(); err != nil {
			return err
		}
	}
	for _, p := range profiles {
		if err := r.Register(p); err != nil {
			return err
		}
	}
	return nil
}
