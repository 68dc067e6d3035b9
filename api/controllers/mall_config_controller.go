/*
 * @module api/controllers/mall_config_controller
 * @description 商城配置API控制器，处理公开读取、管理端读写与密钥重置
 * @architecture MVC架构 - 控制器层
 * @documentReference dev_docs/requirements.md
 * @stateFlow HTTP请求 -> 限流检查 -> 管理鉴权 -> 业务逻辑处理 -> 响应返回
 * @rules 公开读取不含管理密钥；鉴权失败时不发生任何字段变更；凭据路径受限流保护
 * @dependencies mall-service/service/mallconfig, github.com/go-chi/render
 * @refs dev_docs/model.md
 */

package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"mall-service/service/mallconfig"
	"mall-service/service/models"
	"mall-service/service/rate_limiter"

	"github.com/go-chi/render"
)

// MallConfigController 商城配置控制器
type MallConfigController struct {
	service *mallconfig.Service
	limiter *rate_limiter.RedisRateLimiter
}

// NewMallConfigController 创建商城配置控制器实例
// limiter 可为nil，此时凭据路径不限流
func NewMallConfigController(service *mallconfig.Service, limiter *rate_limiter.RedisRateLimiter) *MallConfigController {
	return &MallConfigController{service: service, limiter: limiter}
}

// AdminConfigRequest 管理端完整配置读取请求
type AdminConfigRequest struct {
	Secret string `json:"secret"`
}

// UpdateConfigRequest 管理端配置更新请求
// 未提供的字段保持原值，newSecret为空白时忽略
type UpdateConfigRequest struct {
	Secret string `json:"secret"`
	models.MallConfigPatch
}

// ResetSecretRequest 管理密钥重置请求
type ResetSecretRequest struct {
	ResetSecret string `json:"resetSecret"`
}

// allow 凭据路径限流检查
func (c *MallConfigController) allow(r *http.Request, path string) bool {
	if c.limiter == nil {
		return true
	}
	return c.limiter.Allow(r.Context(), fmt.Sprintf("%s:%s", path, clientIP(r)))
}

// GetConfig 公开读取商城配置
// @Summary 读取商城配置
// @Description 返回横幅与规则配置，不含管理密钥；配置不存在时以默认值创建
// @Tags 商城配置
// @Produce json
// @Success 200 {object} APIResponse{data=models.MallConfigView}
// @Failure 500 {object} APIResponse
// @Router /config [get]
func (c *MallConfigController) GetConfig(w http.ResponseWriter, r *http.Request) {
	view, err := c.service.GetPublic(models.GlobalScope)
	if err != nil {
		render.JSON(w, r, InternalErrorResponse("查询商城配置失败", nil))
		return
	}

	render.JSON(w, r, SuccessResponse("查询成功", view))
}

// GetFullConfig 管理端读取完整配置
// @Summary 管理端读取完整配置
// @Description 校验管理密钥后返回含密钥的完整配置
// @Tags 商城配置
// @Accept json
// @Produce json
// @Param request body AdminConfigRequest true "管理密钥"
// @Success 200 {object} APIResponse{data=models.MallConfig}
// @Failure 401 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /config/admin [post]
func (c *MallConfigController) GetFullConfig(w http.ResponseWriter, r *http.Request) {
	if !c.allow(r, "admin") {
		render.JSON(w, r, TooManyRequestsResponse("尝试过于频繁，请稍后再试", nil))
		return
	}

	var req AdminConfigRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.JSON(w, r, BadRequestResponse(fmt.Sprintf("请求参数格式错误:%s", err.Error()), nil))
		return
	}

	cfg, err := c.service.Authorize(models.GlobalScope, req.Secret)
	if err != nil {
		c.renderAuthError(w, r, err)
		return
	}

	render.JSON(w, r, SuccessResponse("查询成功", cfg))
}

// UpdateConfig 管理端更新配置
// @Summary 管理端更新配置
// @Description 校验管理密钥后按提供的字段部分更新配置
// @Tags 商城配置
// @Accept json
// @Produce json
// @Param request body UpdateConfigRequest true "配置更新请求"
// @Success 200 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /config [post]
func (c *MallConfigController) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	if !c.allow(r, "admin") {
		render.JSON(w, r, TooManyRequestsResponse("尝试过于频繁，请稍后再试", nil))
		return
	}

	var req UpdateConfigRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.JSON(w, r, BadRequestResponse(fmt.Sprintf("请求参数格式错误:%s", err.Error()), nil))
		return
	}

	_, err := c.service.Upsert(models.GlobalScope, req.Secret, &req.MallConfigPatch, "admin", clientIP(r))
	if err != nil {
		c.renderAuthError(w, r, err)
		return
	}

	render.JSON(w, r, SuccessResponse("保存成功", nil))
}

// ResetSecret 重置管理密钥
// @Summary 重置管理密钥
// @Description 校验部署级重置密钥后将管理密钥恢复为默认值
// @Tags 商城配置
// @Accept json
// @Produce json
// @Param request body ResetSecretRequest true "重置请求"
// @Success 200 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /config/reset [post]
func (c *MallConfigController) ResetSecret(w http.ResponseWriter, r *http.Request) {
	if !c.allow(r, "reset") {
		render.JSON(w, r, TooManyRequestsResponse("尝试过于频繁，请稍后再试", nil))
		return
	}

	var req ResetSecretRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.JSON(w, r, BadRequestResponse(fmt.Sprintf("请求参数格式错误:%s", err.Error()), nil))
		return
	}

	if err := c.service.Reset(models.GlobalScope, req.ResetSecret, clientIP(r)); err != nil {
		c.renderAuthError(w, r, err)
		return
	}

	render.JSON(w, r, SuccessResponse("重置成功", nil))
}

// renderAuthError 将服务层错误映射为统一响应
// 不区分"密钥错误"与其他鉴权细节，避免泄露有效信息
func (c *MallConfigController) renderAuthError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, mallconfig.ErrUnauthorized):
		render.JSON(w, r, UnauthorizedResponse("密钥校验失败", nil))
	case errors.Is(err, mallconfig.ErrNotFound):
		render.JSON(w, r, NotFoundResponse("商城配置不存在", nil))
	default:
		render.JSON(w, r, InternalErrorResponse("操作失败", nil))
	}
}
