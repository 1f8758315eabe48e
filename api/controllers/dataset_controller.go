/*
 * @module api/controllers/dataset_controller
 * @description 数据集控制器，提供快照信息、手动重载、文件导入和加载历史
 * @architecture MVC架构 - 控制器层
 * @documentReference DESIGN.md
 * @stateFlow HTTP请求 -> 快照存储/导入器 -> 统一响应
 * @rules 导入仅在配置了数据库时可用；重载失败保留上一个快照
 * @dependencies hrdash-service/service/dataset, github.com/go-chi/render
 * @refs service/dataset/store.go, service/dataset/importer.go
 */

package controllers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/render"
	"github.com/spf13/cast"

	"hrdash-service/service/dataset"
	"hrdash-service/service/models"
)

const maxImportSize = 32 << 20

// DatasetController 数据集控制器
type DatasetController struct {
	store    *dataset.Store
	importer *dataset.Importer
}

// NewDatasetController 创建数据集控制器实例，importer 可为 nil
func NewDatasetController(store *dataset.Store, importer *dataset.Importer) *DatasetController {
	return &DatasetController{store: store, importer: importer}
}

// GetCurrent 当前快照信息
// @Summary 获取当前数据集快照
// @Tags 数据集
// @Produce json
// @Success 200 {object} APIResponse{data=dataset.Snapshot}
// @Failure 503 {object} APIResponse
// @Router /datasets/current [get]
func (c *DatasetController) GetCurrent(w http.ResponseWriter, r *http.Request) {
	snap, err := c.store.Current()
	if err != nil {
		renderError(w, r, "数据集尚未加载", err)
		return
	}
	renderSuccess(w, r, "获取数据集快照成功", snap)
}

// Reload 手动重载数据集
// @Summary 重载数据集
// @Tags 数据集
// @Produce json
// @Success 200 {object} APIResponse{data=dataset.Snapshot}
// @Failure 500 {object} APIResponse
// @Router /datasets/reload [post]
func (c *DatasetController) Reload(w http.ResponseWriter, r *http.Request) {
	log.Printf("[DEBUG] Reload - source: %s", c.store.Loader().Describe())

	snap, err := c.store.Reload(r.Context(), models.LoadTriggerManual)
	if err != nil {
		renderError(w, r, "重载数据集失败", err)
		return
	}
	renderSuccess(w, r, "重载数据集成功", snap)
}

// Import 导入员工数据文件
// @Summary 导入员工数据
// @Description 上传CSV或XLSX文件整体替换员工表
// @Tags 数据集
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV或XLSX文件"
// @Success 200 {object} APIResponse{data=dataset.ImportResult}
// @Failure 400 {object} APIResponse
// @Router /datasets/import [post]
func (c *DatasetController) Import(w http.ResponseWriter, r *http.Request) {
	if c.importer == nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, BadRequestResponse("未配置数据库，无法导入", nil))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, BadRequestResponse("读取上传文件失败", err))
		return
	}
	defer file.Close()
	log.Printf("[DEBUG] Import - filename: %s, size: %d", header.Filename, header.Size)

	result, err := c.importer.Import(r.Context(), header.Filename, file)
	if err != nil {
		renderError(w, r, "导入员工数据失败", err)
		return
	}
	renderSuccess(w, r, fmt.Sprintf("成功导入 %d 条员工数据", result.Records), result)
}

// History 加载历史
// @Summary 获取数据集加载历史
// @Tags 数据集
// @Produce json
// @Param limit query int false "返回条数" default(20)
// @Success 200 {object} APIResponse{data=[]models.DatasetLoad}
// @Router /datasets/history [get]
func (c *DatasetController) History(w http.ResponseWriter, r *http.Request) {
	limit := cast.ToInt(r.URL.Query().Get("limit"))
	loads, err := c.store.History(r.Context(), limit)
	if err != nil {
		renderError(w, r, "获取加载历史失败", err)
		return
	}
	renderSuccess(w, r, "获取加载历史成功", loads)
}
