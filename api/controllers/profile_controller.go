/*
 * @module api/controllers/profile_controller
 * @description 看板配置控制器，提供看板列表和侧边栏过滤选项
 * @architecture MVC架构 - 控制器层
 * @documentReference DESIGN.md
 * @stateFlow HTTP请求 -> 引擎查询 -> 统一响应
 * @rules 过滤选项取自当前快照，默认选择为全选
 * @dependencies github.com/go-chi/chi/v5, github.com/go-chi/render
 * @refs service/analytics/engine.go
 */

package controllers

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrdash-service/service/analytics"
)

// ProfileController 看板配置控制器
type ProfileController struct {
	engine *analytics.Engine
}

// NewProfileController 创建看板配置控制器实例
func NewProfileController(engine *analytics.Engine) *ProfileController {
	return &ProfileController{engine: engine}
}

// ListProfiles 获取看板列表
// @Summary 获取看板列表
// @Description 返回全部看板配置（内置及YAML加载）
// @Tags 看板
// @Produce json
// @Success 200 {object} APIResponse{data=[]analytics.Profile}
// @Router /profiles [get]
func (c *ProfileController) ListProfiles(w http.ResponseWriter, r *http.Request) {
	renderSuccess(w, r, "获取看板列表成功", c.engine.Profiles())
}

// GetProfile 获取看板配置
// @Summary 获取看板配置
// @Tags 看板
// @Produce json
// @Param profile path string true "看板名称"
// @Success 200 {object} APIResponse{data=analytics.Profile}
// @Failure 404 {object} APIResponse
// @Router /profiles/{profile} [get]
func (c *ProfileController) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := c.engine.Profile(chi.URLParam(r, "profile"))
	if err != nil {
		renderError(w, r, "获取看板配置失败", err)
		return
	}
	renderSuccess(w, r, "获取看板配置成功", profile)
}

// GetFilterOptions 获取过滤选项
// @Summary 获取过滤选项
// @Description 返回看板暴露的过滤维度、可选值及默认选择
// @Tags 看板
// @Produce json
// @Param profile path string true "看板名称"
// @Success 200 {object} APIResponse{data=analytics.FilterOptions}
// @Failure 404 {object} APIResponse
// @Router /profiles/{profile}/filters [get]
func (c *ProfileController) GetFilterOptions(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "profile")
	log.Printf("[DEBUG] GetFilterOptions - profile: %s", name)

	opts, err := c.engine.FilterOptions(r.Context(), name)
	if err != nil {
		renderError(w, r, "获取过滤选项失败", err)
		return
	}
	renderSuccess(w, r, "获取过滤选项成功", opts)
}
