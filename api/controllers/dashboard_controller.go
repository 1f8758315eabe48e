/*
 * @module api/controllers/dashboard_controller
 * @description 看板派生视图控制器，按会话选择返回全部视图、明细表和员工档案
 * @architecture MVC架构 - 控制器层
 * @documentReference DESIGN.md
 * @stateFlow 解析选择 -> 查询缓存 -> 引擎派生 -> 回填缓存 -> 统一响应
 * @rules 选择由客户端在每次请求中携带，服务端不保存会话状态
 * @dependencies hrdash-service/service/analytics, github.com/go-chi/render
 * @refs service/analytics/engine.go, service/cache/view_cache.go
 */

package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"hrdash-service/service/analytics"
	"hrdash-service/service/cache"
)

// CacheObserver 缓存命中统计
type CacheObserver interface {
	ObserveCache(hit bool)
}

// DashboardController 看板视图控制器
type DashboardController struct {
	engine    *analytics.Engine
	snapshots SnapshotProvider
	cache     cache.ViewCache
	observer  CacheObserver
}

// NewDashboardController 创建看板视图控制器实例，viewCache 可为 nil
func NewDashboardController(engine *analytics.Engine, snapshots SnapshotProvider, viewCache cache.ViewCache, observer CacheObserver) *DashboardController {
	if viewCache == nil {
		viewCache = cache.NopViewCache{}
	}
	return &DashboardController{engine: engine, snapshots: snapshots, cache: viewCache, observer: observer}
}

// ViewsRequest 派生视图请求
type ViewsRequest struct {
	Selection analytics.FilterSelection `json:"selection"`
	Focus     string                    `json:"focus,omitempty" example:"Alice"`
}

// SelectionRequest 明细表/员工档案请求
type SelectionRequest struct {
	Selection analytics.FilterSelection `json:"selection"`
}

// decodeOptional 解析请求体，空请求体视为零值
func decodeOptional(r *http.Request, v interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	if err := render.DecodeJSON(r.Body, v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// cached 以快照版本为键读写缓存，缓存不可用时直接计算。
// 计算期间快照发生切换时不回写，避免新数据落在旧版本的键下
func (c *DashboardController) cached(ctx context.Context, key func(version string) string, compute func() (interface{}, error)) (interface{}, error) {
	var cacheKey, version string
	if snap, err := c.snapshots.Current(); err == nil {
		version = snap.Version
		cacheKey = key(version)
		if data, err := c.cache.Get(ctx, cacheKey); err == nil {
			c.observe(true)
			return json.RawMessage(data), nil
		} else if !errors.Is(err, cache.ErrMiss) {
			log.Printf("[DEBUG] 读取视图缓存失败: %v", err)
		}
		c.observe(false)
	}

	result, err := compute()
	if err != nil || cacheKey == "" {
		return result, err
	}
	if snap, err := c.snapshots.Current(); err != nil || snap.Version != version {
		log.Printf("[DEBUG] 计算期间数据集版本已变化，跳过缓存写入: %s", cacheKey)
		return result, nil
	}
	if data, err := json.Marshal(result); err == nil {
		if err := c.cache.Set(ctx, cacheKey, data); err != nil {
			log.Printf("[DEBUG] 写入视图缓存失败: %v", err)
		}
	}
	return result, nil
}

func (c *DashboardController) observe(hit bool) {
	if c.observer != nil {
		c.observer.ObserveCache(hit)
	}
}

// DeriveViews 派生看板全部视图
// @Summary 派生看板视图
// @Description 按过滤选择计算指标、分组聚合、分布、离职统计、散点、直方图、预警名单、员工档案和明细表
// @Tags 看板
// @Accept json
// @Produce json
// @Param profile path string true "看板名称"
// @Param request body ViewsRequest false "过滤选择，缺省维度为全选，空数组表示不选"
// @Success 200 {object} APIResponse{data=analytics.DashboardViews}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /dashboards/{profile}/views [post]
func (c *DashboardController) DeriveViews(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "profile")

	var req ViewsRequest
	if err := decodeOptional(r, &req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, BadRequestResponse("请求参数格式错误", err))
		return
	}
	log.Printf("[DEBUG] DeriveViews - profile: %s, selection: %v, focus: %s", name, req.Selection, req.Focus)

	views, err := c.cached(r.Context(),
		func(version string) string {
			return cache.ViewKey(version, name, "views", req.Selection, req.Focus)
		},
		func() (interface{}, error) {
			return c.engine.DeriveViews(r.Context(), name, analytics.ViewRequest{Selection: req.Selection, Focus: req.Focus})
		})
	if err != nil {
		renderError(w, r, "派生看板视图失败", err)
		return
	}
	renderSuccess(w, r, "派生看板视图成功", views)
}

// FilteredRecords 过滤后的明细表
// @Summary 获取明细表
// @Tags 看板
// @Accept json
// @Produce json
// @Param profile path string true "看板名称"
// @Param request body SelectionRequest false "过滤选择"
// @Success 200 {object} APIResponse{data=analytics.Table}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /dashboards/{profile}/records [post]
func (c *DashboardController) FilteredRecords(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "profile")

	var req SelectionRequest
	if err := decodeOptional(r, &req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, BadRequestResponse("请求参数格式错误", err))
		return
	}

	table, err := c.cached(r.Context(),
		func(version string) string {
			return cache.ViewKey(version, name, "records", req.Selection, "")
		},
		func() (interface{}, error) {
			return c.engine.FilteredTable(r.Context(), name, req.Selection)
		})
	if err != nil {
		renderError(w, r, "获取明细表失败", err)
		return
	}
	renderSuccess(w, r, "获取明细表成功", table)
}

// GetEmployee 员工档案与能力雷达
// @Summary 获取员工档案
// @Description 在当前过滤结果中查找员工，不在结果中返回404
// @Tags 看板
// @Accept json
// @Produce json
// @Param profile path string true "看板名称"
// @Param name path string true "员工姓名"
// @Param request body SelectionRequest false "过滤选择"
// @Success 200 {object} APIResponse{data=analytics.EmployeeDetail}
// @Failure 404 {object} APIResponse
// @Router /dashboards/{profile}/employees/{name} [post]
func (c *DashboardController) GetEmployee(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "profile")
	employee := chi.URLParam(r, "name")

	var req SelectionRequest
	if err := decodeOptional(r, &req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, BadRequestResponse("请求参数格式错误", err))
		return
	}
	log.Printf("[DEBUG] GetEmployee - profile: %s, employee: %s", name, employee)

	detail, err := c.engine.Employee(r.Context(), name, req.Selection, employee)
	if err != nil {
		renderError(w, r, "获取员工档案失败", err)
		return
	}
	renderSuccess(w, r, "获取员工档案成功", detail)
}
