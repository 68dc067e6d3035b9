/*
 * @module service/goods/service
 * @description 商品目录业务服务，提供按作用域的列表查询与整表原子替换
 * @architecture 分层架构 - 业务服务层
 * @documentReference dev_docs/requirements.md
 * @stateFlow 校验入参 -> 图片归一化 -> 事务内先删后插 -> 审计与事件通知
 * @rules 替换操作在单个事务内完成，校验失败不产生任何删除；同一作用域内商品ID唯一
 * @dependencies gorm.io/gorm, mall-service/service/image
 * @refs service/models/goods.go, dev_docs/model.md
 */

package goods

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"mall-service/service/audit"
	"mall-service/service/event"
	"mall-service/service/image"
	"mall-service/service/metrics"
	"mall-service/service/models"

	"gorm.io/gorm"
)

// 列表排序策略
const (
	OrderCreatedAsc  = "created_asc"
	OrderUpdatedDesc = "updated_desc"
)

// ErrInvalidGoodsList 商品列表校验失败
var ErrInvalidGoodsList = errors.New("商品列表不合法")

// Service 商品目录服务
type Service struct {
	db           *gorm.DB
	order        string
	eventService *event.EventService
	auditService *audit.AuditService
}

// NewService 创建商品目录服务实例
// order 为列表排序策略，事件与审计服务可为nil（此时跳过通知与审计）
func NewService(db *gorm.DB, order string, eventService *event.EventService, auditService *audit.AuditService) *Service {
	if order != OrderCreatedAsc && order != OrderUpdatedDesc {
		order = OrderCreatedAsc
	}
	return &Service{
		db:           db,
		order:        order,
		eventService: eventService,
		auditService: auditService,
	}
}

// List 查询指定作用域下的全部商品
// 排序策略固定可预期，客户端依赖它保持手工排序结果；读取时对图片字段做防御性修复
func (s *Service) List(scope string) ([]models.GoodsItem, error) {
	orderClause := "created_at ASC"
	if s.order == OrderUpdatedDesc {
		orderClause = "updated_at DESC"
	}

	items := make([]models.GoodsItem, 0)
	if err := s.db.Where("scope = ?", scope).Order(orderClause).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("查询商品列表失败: %w", err)
	}

	// 修复本规则生效之前写入的历史数据
	for i := range items {
		items[i].Image = image.Normalize(items[i].Image)
	}

	return items, nil
}

// ReplaceAll 整表替换指定作用域下的商品集合
// 删除与插入在同一事务内完成，读取方只会观察到旧列表或新列表
func (s *Service) ReplaceAll(scope string, items []models.GoodsItem, operator, clientIP string) error {
	if err := validateItems(items); err != nil {
		return err
	}

	// 时间戳统一由本次操作赋值，调用方提交的值一律忽略
	for i := range items {
		items[i].RecordID = ""
		items[i].Scope = scope
		items[i].Image = image.Normalize(items[i].Image)
		items[i].CreatedAt = time.Time{}
		items[i].UpdatedAt = time.Time{}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("scope = ?", scope).Delete(&models.GoodsItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return fmt.Errorf("替换商品列表失败: %w", err)
	}

	metrics.GoodsReplaceTotal.WithLabelValues(scope).Inc()
	slog.Info("商品列表已替换", "scope", scope, "count", len(items))

	if s.auditService != nil {
		s.auditService.Record(models.AuditActionGoodsReplace, scope, operator, clientIP,
			models.JSONB{"count": len(items)})
	}
	if s.eventService != nil {
		s.eventService.Emit(models.EventGoodsChanged, scope)
	}

	return nil
}

// validateItems 校验商品集合：必填字段齐全且作用域内ID不重复
func validateItems(items []models.GoodsItem) error {
	seen := make(map[int]bool, len(items))
	for i, item := range items {
		if item.Name == "" {
			return fmt.Errorf("%w: 第%d项缺少商品名称", ErrInvalidGoodsList, i+1)
		}
		if seen[item.GoodsID] {
			return fmt.Errorf("%w: 商品ID %d 重复", ErrInvalidGoodsList, item.GoodsID)
		}
		seen[item.GoodsID] = true
	}
	return nil
}
