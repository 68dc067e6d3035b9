/*
 * @module api/controllers/goods_controller
 * @description 商品目录API控制器，处理商品列表查询与整表替换
 * @architecture MVC架构 - 控制器层
 * @documentReference dev_docs/requirements.md
 * @stateFlow HTTP请求处理流程
 * @rules 统一的错误处理和响应格式，参数验证；作用域模式决定owner参数是否必填
 * @dependencies mall-service/service/goods, github.com/go-chi/render
 * @refs dev_docs/model.md
 */

package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"mall-service/service/goods"
	"mall-service/service/models"

	"github.com/go-chi/render"
)

// GoodsController 商品目录控制器
type GoodsController struct {
	service   *goods.Service
	scopeMode string
}

// NewGoodsController 创建商品目录控制器实例
func NewGoodsController(service *goods.Service, scopeMode string) *GoodsController {
	return &GoodsController{service: service, scopeMode: scopeMode}
}

// resolveScope 根据作用域模式解析请求归属的作用域
// owner模式下owner必填，global模式下固定使用全局作用域
func (c *GoodsController) resolveScope(owner string) (string, error) {
	if c.scopeMode == "owner" {
		if owner == "" {
			return "", errors.New("owner参数不能为空")
		}
		return owner, nil
	}
	return models.GlobalScope, nil
}

// ReplaceGoodsRequest 商品整表替换请求
type ReplaceGoodsRequest struct {
	Owner string              `json:"owner"`
	List  *[]models.GoodsItem `json:"list"`
}

// ListGoods 查询商品列表
// @Summary 查询商品列表
// @Description 返回作用域下全部商品，按部署配置的固定顺序排列
// @Tags 商品目录
// @Produce json
// @Param owner query string false "归属标识（按用户隔离模式下必填）"
// @Success 200 {object} APIResponse{data=[]models.GoodsItem}
// @Failure 400 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /goods [get]
func (c *GoodsController) ListGoods(w http.ResponseWriter, r *http.Request) {
	scope, err := c.resolveScope(r.URL.Query().Get("owner"))
	if err != nil {
		render.JSON(w, r, BadRequestResponse(err.Error(), nil))
		return
	}

	items, err := c.service.List(scope)
	if err != nil {
		render.JSON(w, r, InternalErrorResponse("查询商品列表失败", nil))
		return
	}

	render.JSON(w, r, SuccessResponse("查询成功", items))
}

// ReplaceGoods 整表替换商品列表
// @Summary 整表替换商品列表
// @Description 删除作用域下现有商品并写入提交的完整列表，单个事务内完成
// @Tags 商品目录
// @Accept json
// @Produce json
// @Param request body ReplaceGoodsRequest true "商品整表替换请求"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /goods [post]
func (c *GoodsController) ReplaceGoods(w http.ResponseWriter, r *http.Request) {
	var req ReplaceGoodsRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.JSON(w, r, BadRequestResponse(fmt.Sprintf("请求参数格式错误:%s", err.Error()), nil))
		return
	}

	scope, err := c.resolveScope(req.Owner)
	if err != nil {
		render.JSON(w, r, BadRequestResponse(err.Error(), nil))
		return
	}

	if req.List == nil {
		render.JSON(w, r, BadRequestResponse("缺少list字段", nil))
		return
	}

	if err := c.service.ReplaceAll(scope, *req.List, "client", clientIP(r)); err != nil {
		if errors.Is(err, goods.ErrInvalidGoodsList) {
			render.JSON(w, r, BadRequestResponse(err.Error(), nil))
			return
		}
		render.JSON(w, r, InternalErrorResponse("替换商品列表失败", nil))
		return
	}

	render.JSON(w, r, SuccessResponse("保存成功", nil))
}

// clientIP 获取客户端IP，优先使用代理透传头
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	return r.RemoteAddr
}
