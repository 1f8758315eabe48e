package analytics

import "errors"

var (
	// ErrNoData 对零条记录求均值/聚合
	ErrNoData = errors.New("no data")
	// ErrNotFound 当前过滤结果中不存在该员工
	ErrNotFound = errors.New("employee not found")
	// ErrUnknownField 记录不包含该数值字段
	ErrUnknownField = errors.New("unknown numeric field")
	// ErrUnknownDimension 记录不包含该分类维度
	ErrUnknownDimension = errors.New("unknown dimension")
	// ErrUnknownProfile 看板配置不存在
	ErrUnknownProfile = errors.New("unknown dashboard profile")
	// ErrInvalidProfile 看板配置校验失败
	ErrInvalidProfile = errors.New("invalid dashboard profile")
)
