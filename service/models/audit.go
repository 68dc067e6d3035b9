/*
 * @module service/models/audit
 * @description 审计日志模型，记录商品整表替换与配置管理操作
 * @architecture 数据模型层
 * @documentReference dev_docs/requirements.md
 * @stateFlow 操作完成 -> 写入审计记录 -> 可选镜像到消息队列
 * @rules 审计记录只增不改
 * @dependencies gorm.io/gorm, github.com/google/uuid
 * @refs service/audit/audit_service.go
 */

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 审计动作类型
const (
	AuditActionGoodsReplace = "goods_replace"
	AuditActionConfigUpdate = "config_update"
	AuditActionSecretReset  = "secret_reset"
	AuditActionImageUpload  = "image_upload"
)

// AuditLog 审计日志模型
type AuditLog struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	Action    string    `gorm:"type:varchar(50);not null;index" json:"action"`
	Scope     string    `gorm:"type:varchar(100);not null;default:'global'" json:"scope"`
	Operator  string    `gorm:"type:varchar(100);not null;default:'system'" json:"operator"`
	Detail    JSONB     `gorm:"type:jsonb" json:"detail"`
	ClientIP  string    `gorm:"type:varchar(45)" json:"client_ip"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName 指定表名
func (AuditLog) TableName() string {
	return "audit_logs"
}

// BeforeCreate 创建前钩子
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.Operator == "" {
		a.Operator = "system"
	}
	return nil
}
