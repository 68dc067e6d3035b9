/*
 * @module service/database/migrate
 * @description 数据库迁移模块，负责创建表结构并初始化默认配置记录
 * @architecture 数据访问层 - 迁移管理
 * @documentReference dev_docs/model.md
 * @stateFlow 应用启动时执行数据库迁移
 * @rules 确保数据库结构与模型定义保持一致，默认配置只在缺失时写入
 * @dependencies mall-service/service/models, gorm.io/gorm
 * @refs service/init.go
 */

package database

import (
	"errors"
	"log/slog"

	"mall-service/service/models"

	"gorm.io/gorm"
)

// AutoMigrate 自动迁移数据库表结构
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.GoodsItem{},
		&models.MallConfig{},
		&models.AuditLog{},
	)
}

// InitializeData 初始化基础数据
// 为全局作用域预置默认配置记录，已存在时不做任何变更
func InitializeData(db *gorm.DB) error {
	var existing models.MallConfig
	err := db.First(&existing, "id = ?", models.GlobalScope).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	cfg := models.MallConfig{
		ID:          models.GlobalScope,
		BannerImage: models.DefaultBannerImage,
		BannerTitle: models.DefaultBannerTitle,
		RuleList:    models.JSONBStringArray{},
		AdminSecret: models.DefaultAdminSecret,
	}
	if err := db.Create(&cfg).Error; err != nil {
		return err
	}

	slog.Info("默认商城配置已创建", "scope", models.GlobalScope)
	return nil
}
