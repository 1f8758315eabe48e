package dataset

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"hrdash-service/service/models"
)

// XLSXLoader 从Excel工作簿加载员工数据
type XLSXLoader struct {
	path  string
	sheet string
}

// NewXLSXLoader 创建XLSX加载器，sheet 为空时读取第一个工作表
func NewXLSXLoader(path, sheet string) *XLSXLoader {
	return &XLSXLoader{path: path, sheet: sheet}
}

// Type 实现 Loader
func (l *XLSXLoader) Type() string { return SourceXLSX }

// Describe 实现 Loader
func (l *XLSXLoader) Describe() string {
	if l.sheet == "" {
		return l.path
	}
	return l.path + "#" + l.sheet
}

// Load 读取并解析工作簿
func (l *XLSXLoader) Load(ctx context.Context) ([]models.EmployeeRecord, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("打开数据文件失败: %w", err)
	}
	defer f.Close()
	return ParseXLSX(f, l.sheet)
}

// ParseXLSX 解析工作簿中的一个工作表
func ParseXLSX(r io.Reader, sheet string) ([]models.EmployeeRecord, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("解析XLSX失败: %w", err)
	}
	defer func() { _ = file.Close() }()

	if sheet == "" {
		sheet = file.GetSheetName(0)
		if sheet == "" {
			return nil, fmt.Errorf("%w: no worksheet found", ErrMissingColumn)
		}
	}

	rows, err := file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("读取工作表 %s 失败: %w", sheet, err)
	}
	return parseRows(rows)
}
