/*
 * @module api/routes
 * @description API路由配置模块，负责初始化和配置所有HTTP路由
 * @architecture RESTful API架构
 * @documentReference DESIGN.md
 * @stateFlow 无状态HTTP请求处理，过滤选择由客户端随请求携带
 * @rules 遵循RESTful API设计规范，统一错误处理和响应格式
 * @dependencies github.com/go-chi/chi/v5, github.com/go-chi/cors, github.com/go-chi/render
 * @refs service/init.go
 */

package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"

	"hrdash-service/api/controllers"
	apimw "hrdash-service/api/middleware"
	"hrdash-service/service"
)

// InitRoute 初始化所有API路由
func InitRoute(r *chi.Mux, svc *service.Services) {
	// 基础中间件
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(render.SetContentType(render.ContentTypeJSON))
	if svc.Registerer != nil {
		r.Use(apimw.NewRequestMetrics(svc.Registerer).Handler)
	}

	// CORS配置
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// 健康检查
	healthController := controllers.NewHealthController(svc.Store)
	r.Get("/health", healthController.Health)
	r.Get("/ready", healthController.Ready)

	// 看板配置与过滤选项
	r.Route("/profiles", func(r chi.Router) {
		profileController := controllers.NewProfileController(svc.Engine)
		r.Get("/", profileController.ListProfiles)
		r.Get("/{profile}", profileController.GetProfile)
		r.Get("/{profile}/filters", profileController.GetFilterOptions)
	})

	// 看板派生视图
	r.Route("/dashboards/{profile}", func(r chi.Router) {
		var observer controllers.CacheObserver
		if svc.Metrics != nil {
			observer = svc.Metrics
		}
		dashboardController := controllers.NewDashboardController(svc.Engine, svc.Store, svc.Cache, observer)
		r.Post("/views", dashboardController.DeriveViews)
		r.Post("/records", dashboardController.FilteredRecords)
		r.Post("/employees/{name}", dashboardController.GetEmployee)
	})

	// 数据集管理
	r.Route("/datasets", func(r chi.Router) {
		datasetController := controllers.NewDatasetController(svc.Store, svc.Importer)
		r.Get("/current", datasetController.GetCurrent)
		r.Get("/history", datasetController.History)
		r.Post("/reload", datasetController.Reload)
		r.Post("/import", datasetController.Import)
	})
}
