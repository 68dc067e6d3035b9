/*
 * @module api/controllers/upload_controller
 * @description 图片上传API控制器，接收multipart图片并返回可用的图片表示
 * @architecture MVC架构 - 控制器层
 * @documentReference dev_docs/requirements.md
 * @stateFlow HTTP请求 -> 大小与类型校验 -> 存储 -> 返回引用路径或内联编码
 * @rules 上传大小上限5MB，仅接受图片类型
 * @dependencies mall-service/service/image, github.com/go-chi/render
 * @refs service/image/storage.go
 */

package controllers

import (
	"errors"
	"io"
	"net/http"

	"mall-service/service/audit"
	"mall-service/service/image"
	"mall-service/service/metrics"
	"mall-service/service/models"

	"github.com/go-chi/render"
)

// UploadController 图片上传控制器
type UploadController struct {
	store        *image.Store
	auditService *audit.AuditService
}

// NewUploadController 创建图片上传控制器实例
func NewUploadController(store *image.Store, auditService *audit.AuditService) *UploadController {
	return &UploadController{store: store, auditService: auditService}
}

// UploadResult 上传结果
type UploadResult struct {
	Image string `json:"image"`
}

// UploadImage 上传图片
// @Summary 上传图片
// @Description 上传商品图或横幅图，返回存储模式对应的图片表示（引用路径或内联编码）
// @Tags 图片上传
// @Accept mpfd
// @Produce json
// @Param file formData file true "图片文件（≤5MB）"
// @Success 200 {object} APIResponse{data=UploadResult}
// @Failure 400 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /upload [post]
func (c *UploadController) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, image.MaxUploadSize+4096)

	file, _, err := r.FormFile("file")
	if err != nil {
		render.JSON(w, r, BadRequestResponse("缺少file文件字段或文件过大", nil))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		render.JSON(w, r, BadRequestResponse("读取上传内容失败", nil))
		return
	}

	ref, err := c.store.Save(data)
	if err != nil {
		if errors.Is(err, image.ErrInvalidImage) || errors.Is(err, image.ErrImageTooLarge) {
			render.JSON(w, r, BadRequestResponse(err.Error(), nil))
			return
		}
		render.JSON(w, r, InternalErrorResponse("保存图片失败", nil))
		return
	}

	metrics.UploadBytesTotal.Add(float64(len(data)))
	if c.auditService != nil {
		c.auditService.Record(models.AuditActionImageUpload, models.GlobalScope, "client", clientIP(r),
			models.JSONB{"size": len(data), "mode": c.store.Mode()})
	}

	render.JSON(w, r, SuccessResponse("上传成功", UploadResult{Image: ref}))
}
