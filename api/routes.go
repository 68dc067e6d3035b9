/*
 * @module api/routes
 * @description API路由配置模块，负责初始化和配置所有HTTP路由
 * @architecture RESTful API架构
 * @documentReference dev_docs/requirements.md
 * @stateFlow 无状态HTTP请求处理
 * @rules 遵循RESTful API设计规范，统一错误处理和响应格式
 * @dependencies github.com/go-chi/chi/v5, github.com/go-chi/cors, github.com/go-chi/render
 * @refs dev_docs/model.md
 */

package api

import (
	"net/http"

	"mall-service/api/controllers"
	"mall-service/service"
	"mall-service/service/image"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
)

// InitRoute 初始化所有API路由
func InitRoute(r *chi.Mux) {
	// 基础中间件
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(render.SetContentType(render.ContentTypeJSON))

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
	healthController := controllers.NewHealthController(service.DB)
	r.Get("/health", healthController.Health)
	r.Get("/ready", healthController.Ready)

	// SSE变更通知
	eventController := controllers.NewEventController(service.GlobalEventService)
	r.Get("/sse/{client_id}", eventController.HandleSSE)

	// 商品目录
	goodsController := controllers.NewGoodsController(service.GlobalGoodsService, service.ScopeMode)
	r.Route("/goods", func(r chi.Router) {
		r.Get("/", goodsController.ListGoods)
		r.Post("/", goodsController.ReplaceGoods)
	})

	// 商城配置
	configController := controllers.NewMallConfigController(service.GlobalMallConfig, service.GlobalRateLimiter)
	r.Route("/config", func(r chi.Router) {
		r.Get("/", configController.GetConfig)
		r.Post("/", configController.UpdateConfig)
		r.Post("/admin", configController.GetFullConfig)
		r.Post("/reset", configController.ResetSecret)
	})

	// 图片上传
	uploadController := controllers.NewUploadController(service.GlobalImageStore, service.GlobalAuditService)
	r.Post("/upload", uploadController.UploadImage)

	// 磁盘存储模式下的上传文件静态服务
	if service.GlobalImageStore.Mode() == image.ModeDisk {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(service.GlobalImageStore.Dir())))
		r.Get("/uploads/*", fileServer.ServeHTTP)
	}
}
