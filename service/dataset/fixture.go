package dataset

import (
	"context"
	"fmt"

	"hrdash-service/service/models"
)

// 内置样例数据集
const (
	FixtureHR      = "hr"
	FixtureNineBox = "ninebox"
	FixtureAll     = "all"
)

// FixtureLoader 加载内置样例数据
type FixtureLoader struct {
	name string
}

// NewFixtureLoader 创建样例加载器，name 为空时使用 hr
func NewFixtureLoader(name string) (*FixtureLoader, error) {
	if name == "" {
		name = FixtureHR
	}
	switch name {
	case FixtureHR, FixtureNineBox, FixtureAll:
		return &FixtureLoader{name: name}, nil
	default:
		return nil, fmt.Errorf("%w: fixture %q", ErrUnknownSource, name)
	}
}

// Type 实现 Loader
func (l *FixtureLoader) Type() string { return SourceFixture }

// Describe 实现 Loader
func (l *FixtureLoader) Describe() string { return l.name }

// Load 返回样例数据的新副本
func (l *FixtureLoader) Load(ctx context.Context) ([]models.EmployeeRecord, error) {
	switch l.name {
	case FixtureNineBox:
		return models.NineBoxEmployees(), nil
	case FixtureAll:
		records := append(models.MockEmployees(), models.NineBoxEmployees()...)
		for i := range records {
			records[i].RowNum = i + 1
		}
		return records, nil
	default:
		return models.MockEmployees(), nil
	}
}
