package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"hrdash-service/service/analytics"
	"hrdash-service/service/dataset"
	"hrdash-service/service/distributed_lock"
)

// APIResponse 统一API响应结构
type APIResponse struct {
	Status int         `json:"status" example:"0"`
	Msg    string      `json:"msg" example:"操作成功"`
	Data   interface{} `json:"data,omitempty"`
}

// SuccessResponse 成功响应
func SuccessResponse(msg string, data interface{}) APIResponse {
	return APIResponse{Status: 0, Msg: msg, Data: data}
}

// ErrorResponse 错误响应，status 为HTTP状态码
func ErrorResponse(status int, msg string, err error) APIResponse {
	if err != nil {
		msg = msg + ": " + err.Error()
	}
	return APIResponse{Status: status, Msg: msg}
}

// BadRequestResponse 请求参数错误
func BadRequestResponse(msg string, err error) APIResponse {
	return ErrorResponse(http.StatusBadRequest, msg, err)
}

// NotFoundResponse 资源不存在
func NotFoundResponse(msg string, err error) APIResponse {
	return ErrorResponse(http.StatusNotFound, msg, err)
}

// InternalErrorResponse 服务器内部错误
func InternalErrorResponse(msg string, err error) APIResponse {
	return ErrorResponse(http.StatusInternalServerError, msg, err)
}

// statusFor 将业务错误映射为HTTP状态码
func statusFor(err error) int {
	switch {
	case errors.Is(err, analytics.ErrUnknownProfile), errors.Is(err, analytics.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, analytics.ErrUnknownDimension), errors.Is(err, analytics.ErrUnknownField),
		errors.Is(err, analytics.ErrInvalidProfile),
		errors.Is(err, dataset.ErrInvalidRecord), errors.Is(err, dataset.ErrMissingColumn),
		errors.Is(err, dataset.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, distributed_lock.ErrLocked):
		return http.StatusConflict
	case errors.Is(err, dataset.ErrNoSnapshot):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// renderError 按错误类型输出响应
func renderError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	status := statusFor(err)
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse(status, msg, err))
}

// renderSuccess 输出成功响应
func renderSuccess(w http.ResponseWriter, r *http.Request, msg string, data interface{}) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, SuccessResponse(msg, data))
}
