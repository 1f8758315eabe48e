/*
 * @module api/controllers/health_controller
 * @description 健康检查控制器，提供服务健康状态检查
 * @architecture MVC架构 - 控制器层
 * @documentReference DESIGN.md
 * @stateFlow HTTP请求处理流程
 * @rules 存活检查总是成功；就绪检查要求已加载数据集快照
 * @dependencies net/http
 * @refs service/dataset/store.go
 */

package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/render"

	"hrdash-service/service/dataset"
)

const (
	serviceName    = "hrdash-service"
	serviceVersion = "1.0.0"
)

// SnapshotProvider 提供当前数据集快照
type SnapshotProvider interface {
	Current() (*dataset.Snapshot, error)
}

// HealthController 健康检查控制器
type HealthController struct {
	snapshots SnapshotProvider
}

// NewHealthController 创建健康检查控制器实例
func NewHealthController(snapshots SnapshotProvider) *HealthController {
	return &HealthController{snapshots: snapshots}
}

// HealthResponse 健康检查响应结构
type HealthResponse struct {
	Status          string    `json:"status" example:"ok"`
	Timestamp       time.Time `json:"timestamp" example:"2024-01-01T00:00:00Z"`
	Version         string    `json:"version" example:"1.0.0"`
	Service         string    `json:"service" example:"hrdash-service"`
	DatasetVersion  string    `json:"dataset_version,omitempty"`
	DatasetRecords  int       `json:"dataset_records,omitempty"`
	DatasetLoadedAt time.Time `json:"dataset_loaded_at,omitempty"`
}

// Health 健康检查
// @Summary 健康检查
// @Description 检查服务健康状态
// @Tags 系统
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   serviceVersion,
		Service:   serviceName,
	}

	render.JSON(w, r, response)
}

// Ready 就绪检查
// @Summary 就绪检查
// @Description 检查数据集是否已加载
// @Tags 系统
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /ready [get]
func (c *HealthController) Ready(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   serviceVersion,
		Service:   serviceName,
	}

	snap, err := c.snapshots.Current()
	if err != nil {
		response.Status = "loading"
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, response)
		return
	}
	response.DatasetVersion = snap.Version
	response.DatasetRecords = snap.Count
	response.DatasetLoadedAt = snap.LoadedAt

	render.JSON(w, r, response)
}
