/*
 * @module service/models/goods
 * @description 商品数据模型，积分商城可兑换商品的持久化定义
 * @architecture 数据模型层
 * @documentReference dev_docs/requirements.md
 * @stateFlow 整表替换保存 -> 查询展示
 * @rules 同一作用域内商品ID唯一，整个集合按请求原子替换，不做单条修改
 * @dependencies gorm.io/gorm, github.com/google/uuid
 * @refs dev_docs/model.md
 */

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GlobalScope 全局作用域标识，未启用按用户隔离时所有商品归属于该作用域
const GlobalScope = "global"

// GoodsItem 商品模型
// GoodsID 由客户端指定，在同一作用域内唯一；RecordID 仅作为存储主键
type GoodsItem struct {
	RecordID  string    `gorm:"type:uuid;primary_key" json:"-"`
	Scope     string    `gorm:"type:varchar(100);not null;default:'global';uniqueIndex:idx_goods_scope_id" json:"owner,omitempty"`
	GoodsID   int       `gorm:"column:goods_id;not null;uniqueIndex:idx_goods_scope_id" json:"id"`
	Name      string    `gorm:"type:varchar(200);not null" json:"name"`
	Score     int       `gorm:"not null;default:0" json:"score"`
	Desc      string    `gorm:"type:text" json:"desc"`
	Image     string    `gorm:"type:text" json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName 指定表名
func (GoodsItem) TableName() string {
	return "goods_items"
}

// BeforeCreate 创建前钩子
func (g *GoodsItem) BeforeCreate(tx *gorm.DB) error {
	if g.RecordID == "" {
		g.RecordID = uuid.New().String()
	}
	if g.Scope == "" {
		g.Scope = GlobalScope
	}
	return nil
}
