/*
 * @module service/analytics/engine
 * @description 过滤聚合引擎入口，绑定注入的数据源与看板配置，对外提供派生视图
 * @architecture 依赖注入 - 数据源作为构造参数传入，引擎自身无状态
 * @documentReference DESIGN.md
 * @stateFlow 读取快照 -> 解析选择 -> DeriveAllViews -> 返回
 * @rules 引擎不做I/O，不持有可变状态；同一快照可被多个会话并发读取
 * @dependencies hrdash-service/service/models
 * @refs views.go, profile.go, service/dataset/store.go
 */

package analytics

import (
	"context"
	"fmt"
	"time"

	"hrdash-service/service/models"
)

// RecordSource 引擎的数据来源，返回的切片只读
type RecordSource interface {
	Records(ctx context.Context) ([]models.EmployeeRecord, error)
}

// RecordSourceFunc 函数适配器
type RecordSourceFunc func(ctx context.Context) ([]models.EmployeeRecord, error)

// Records 实现 RecordSource
func (f RecordSourceFunc) Records(ctx context.Context) ([]models.EmployeeRecord, error) {
	return f(ctx)
}

// StaticSource 固定记录集，主要用于测试和内置样例
func StaticSource(records []models.EmployeeRecord) RecordSource {
	return RecordSourceFunc(func(ctx context.Context) ([]models.EmployeeRecord, error) {
		return records, nil
	})
}

// Recorder 派生视图的观测钩子
type Recorder interface {
	ObserveDerivation(profile string, filtered int, elapsed time.Duration, err error)
}

// Engine 过滤聚合引擎
type Engine struct {
	source   RecordSource
	profiles *ProfileRegistry
	recorder Recorder
}

// EngineOption 引擎选项
type EngineOption func(*Engine)

// WithRecorder 设置观测钩子
func WithRecorder(r Recorder) EngineOption {
	return func(e *Engine) {
		e.recorder = r
	}
}

// NewEngine 创建引擎
func NewEngine(source RecordSource, profiles *ProfileRegistry, opts ...EngineOption) *Engine {
	if profiles == nil {
		profiles = NewProfileRegistry()
	}
	e := &Engine{source: source, profiles: profiles}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Profiles 全部看板配置
func (e *Engine) Profiles() []Profile {
	return e.profiles.List()
}

// Profile 获取单个看板配置
func (e *Engine) Profile(name string) (Profile, error) {
	return e.profiles.Get(name)
}

// DimensionOptions 某个过滤维度的可选值
type DimensionOptions struct {
	Dimension Dimension `json:"dimension"`
	Values    []string  `json:"values"`
}

// FilterOptions 看板侧边栏的过滤控件数据
type FilterOptions struct {
	Profile    string             `json:"profile"`
	Dimensions []DimensionOptions `json:"dimensions"`
	Defaults   FilterSelection    `json:"defaults"`
}

// EmployeeDetail 单个员工的档案卡与能力雷达
type EmployeeDetail struct {
	Record models.EmployeeRecord `json:"record"`
	Card   EmployeeCard          `json:"card"`
	Radar  []RadarAxis           `json:"radar"`
}

func (e *Engine) load(ctx context.Context, profileName string) (Profile, []models.EmployeeRecord, error) {
	profile, err := e.profiles.Get(profileName)
	if err != nil {
		return Profile{}, nil, err
	}
	records, err := e.source.Records(ctx)
	if err != nil {
		return Profile{}, nil, fmt.Errorf("读取员工数据失败: %w", err)
	}
	return profile, records, nil
}

// FilterOptions 返回看板暴露维度的全部取值，默认选择为全选
func (e *Engine) FilterOptions(ctx context.Context, profileName string) (*FilterOptions, error) {
	profile, records, err := e.load(ctx, profileName)
	if err != nil {
		return nil, err
	}
	opts := &FilterOptions{Profile: profile.Name, Defaults: FilterSelection{}}
	for _, dim := range profile.Filters {
		values, err := DistinctValues(records, dim)
		if err != nil {
			return nil, err
		}
		opts.Dimensions = append(opts.Dimensions, DimensionOptions{Dimension: dim, Values: values})
		opts.Defaults[dim] = values
	}
	return opts, nil
}

// DeriveViews 对当前快照执行完整的派生流程
func (e *Engine) DeriveViews(ctx context.Context, profileName string, req ViewRequest) (*DashboardViews, error) {
	start := time.Now()
	profile, records, err := e.load(ctx, profileName)
	if err != nil {
		return nil, err
	}
	views, err := DeriveAllViews(records, profile, req)
	if e.recorder != nil {
		filtered := 0
		if views != nil {
			filtered = views.RecordCount
		}
		e.recorder.ObserveDerivation(profile.Name, filtered, time.Since(start), err)
	}
	return views, err
}

// filter 按看板默认值解析选择并过滤
func (e *Engine) filter(ctx context.Context, profileName string, selection FilterSelection) (Profile, []models.EmployeeRecord, error) {
	profile, records, err := e.load(ctx, profileName)
	if err != nil {
		return Profile{}, nil, err
	}
	resolved, err := ResolveSelection(records, profile.Filters, selection)
	if err != nil {
		return Profile{}, nil, err
	}
	filtered, err := ApplyFilters(records, resolved)
	if err != nil {
		return Profile{}, nil, err
	}
	return profile, filtered, nil
}

// FilteredTable 过滤后的明细表
func (e *Engine) FilteredTable(ctx context.Context, profileName string, selection FilterSelection) (*Table, error) {
	profile, filtered, err := e.filter(ctx, profileName, selection)
	if err != nil {
		return nil, err
	}
	table, err := BuildTable(filtered, profile.TableColumns)
	if err != nil {
		return nil, err
	}
	return &table, nil
}

// Employee 在当前过滤结果中查找员工，不在结果中时返回 ErrNotFound
func (e *Engine) Employee(ctx context.Context, profileName string, selection FilterSelection, name string) (*EmployeeDetail, error) {
	_, filtered, err := e.filter(ctx, profileName, selection)
	if err != nil {
		return nil, err
	}
	rec, err := LookupRecord(filtered, name)
	if err != nil {
		return nil, err
	}
	return &EmployeeDetail{Record: rec, Card: NewEmployeeCard(rec), Radar: CompetencyRadar(rec)}, nil
}
