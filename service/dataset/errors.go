package dataset

import "errors"

var (
	// ErrUnknownSource 未知的数据源类型
	ErrUnknownSource = errors.New("unknown dataset source")
	// ErrMissingColumn 表头缺少必需列
	ErrMissingColumn = errors.New("missing required column")
	// ErrInvalidRecord 数据行无法转换或不满足校验
	ErrInvalidRecord = errors.New("invalid employee record")
	// ErrUnsupportedFormat 导入文件格式不支持
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	// ErrNoSnapshot 尚未加载任何快照
	ErrNoSnapshot = errors.New("dataset not loaded")
)
