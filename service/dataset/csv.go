package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"hrdash-service/service/models"
)

// DefaultEncoding CSV默认编码
const DefaultEncoding = "utf-8"

// CSVLoader 从CSV文件加载员工数据
type CSVLoader struct {
	path     string
	encoding string
}

// NewCSVLoader 创建CSV加载器，encoding 为空时按UTF-8读取
func NewCSVLoader(path, encoding string) *CSVLoader {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	return &CSVLoader{path: path, encoding: encoding}
}

// Type 实现 Loader
func (l *CSVLoader) Type() string { return SourceCSV }

// Describe 实现 Loader
func (l *CSVLoader) Describe() string { return l.path }

// Load 读取并解析CSV文件
func (l *CSVLoader) Load(ctx context.Context) ([]models.EmployeeRecord, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("打开数据文件失败: %w", err)
	}
	defer f.Close()
	return ParseCSV(f, l.encoding)
}

// decodeReader 按指定编码解码；带BOM的UTF-8/UTF-16文件以BOM为准
func decodeReader(r io.Reader, encoding string) (io.Reader, error) {
	enc, err := htmlindex.Get(encoding)
	if err != nil {
		return nil, fmt.Errorf("不支持的字符编码 %q: %w", encoding, err)
	}
	return transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder())), nil
}

// ParseCSV 解析CSV内容
func ParseCSV(r io.Reader, encoding string) ([]models.EmployeeRecord, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	decoded, err := decodeReader(r, encoding)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("解析CSV失败: %w", err)
	}
	return parseRows(rows)
}
