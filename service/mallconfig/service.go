/*
 * @module service/mallconfig/service
 * @description 商城配置业务服务，提供配置懒创建、部分字段更新、管理鉴权与密钥重置
 * @architecture 分层架构 - 业务服务层
 * @documentReference dev_docs/requirements.md
 * @stateFlow 公开读取懒创建 -> 管理鉴权 -> 部分字段更新；重置路径独立校验部署级密钥
 * @rules 鉴权必须先于任何字段变更；公开读取结果不含管理密钥；未提供的字段保持原值
 * @dependencies gorm.io/gorm, mall-service/service/image
 * @refs service/models/mall_config.go, dev_docs/model.md
 */

package mallconfig

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"

	"mall-service/service/audit"
	"mall-service/service/event"
	"mall-service/service/image"
	"mall-service/service/metrics"
	"mall-service/service/models"

	"gorm.io/gorm"
)

// ErrNotFound 配置记录不存在
var ErrNotFound = errors.New("商城配置不存在")

// ErrUnauthorized 密钥校验失败
var ErrUnauthorized = errors.New("密钥校验失败")

// Service 商城配置服务
type Service struct {
	db           *gorm.DB
	resetSecret  string
	eventService *event.EventService
	auditService *audit.AuditService
}

// NewService 创建商城配置服务实例
// resetSecret 为部署级重置密钥，独立于数据库中的管理密钥
func NewService(db *gorm.DB, resetSecret string, eventService *event.EventService, auditService *audit.AuditService) *Service {
	return &Service{
		db:           db,
		resetSecret:  resetSecret,
		eventService: eventService,
		auditService: auditService,
	}
}

// GetOrCreate 读取指定作用域的配置，不存在时以默认值创建后返回
func (s *Service) GetOrCreate(scope string) (*models.MallConfig, error) {
	var cfg models.MallConfig
	err := s.db.First(&cfg, "id = ?", scope).Error
	if err == nil {
		return &cfg, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("查询商城配置失败: %w", err)
	}

	return s.createDefault(scope)
}

// createDefault 以默认值创建配置记录
// 并发首次访问时另一请求可能已抢先创建，主键冲突时回读既有记录
func (s *Service) createDefault(scope string) (*models.MallConfig, error) {
	cfg := models.MallConfig{
		ID:          scope,
		BannerImage: models.DefaultBannerImage,
		BannerTitle: models.DefaultBannerTitle,
		RuleList:    models.JSONBStringArray{},
		AdminSecret: models.DefaultAdminSecret,
	}
	if err := s.db.Create(&cfg).Error; err != nil {
		var existing models.MallConfig
		if retryErr := s.db.First(&existing, "id = ?", scope).Error; retryErr == nil {
			return &existing, nil
		}
		return nil, fmt.Errorf("初始化商城配置失败: %w", err)
	}

	slog.Info("商城配置已初始化", "scope", scope)
	return &cfg, nil
}

// GetPublic 公开读取配置，剥离管理密钥并对横幅图做防御性修复
func (s *Service) GetPublic(scope string) (*models.MallConfigView, error) {
	cfg, err := s.GetOrCreate(scope)
	if err != nil {
		return nil, err
	}

	view := cfg.PublicView()
	view.BannerImage = image.Normalize(view.BannerImage)
	return view, nil
}

// Authorize 校验管理密钥
// 配置不存在时返回ErrNotFound（重置路径除外，变更前必须已有密钥可比对），
// 密钥不匹配返回ErrUnauthorized，匹配时返回配置记录供后续变更
func (s *Service) Authorize(scope, suppliedSecret string) (*models.MallConfig, error) {
	var cfg models.MallConfig
	err := s.db.First(&cfg, "id = ?", scope).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("查询商城配置失败: %w", err)
	}

	if cfg.AdminSecret != suppliedSecret {
		metrics.AuthFailureTotal.WithLabelValues("admin_gate").Inc()
		return nil, ErrUnauthorized
	}

	return &cfg, nil
}

// Upsert 管理端部分字段更新
// 先鉴权后变更；仅更新patch中提供的字段，新密钥为空白时忽略
func (s *Service) Upsert(scope, suppliedSecret string, patch *models.MallConfigPatch, operator, clientIP string) (*models.MallConfig, error) {
	cfg, err := s.Authorize(scope, suppliedSecret)
	if err != nil {
		return nil, err
	}

	changed := make([]string, 0, 4)
	if patch.BannerImage != nil {
		cfg.BannerImage = image.Normalize(*patch.BannerImage)
		changed = append(changed, "bannerImage")
	}
	if patch.BannerTitle != nil {
		cfg.BannerTitle = *patch.BannerTitle
		changed = append(changed, "bannerTitle")
	}
	if patch.RuleList != nil {
		cfg.RuleList = models.JSONBStringArray(*patch.RuleList)
		changed = append(changed, "ruleList")
	}
	if patch.NewSecret != nil && *patch.NewSecret != "" {
		cfg.AdminSecret = *patch.NewSecret
		changed = append(changed, "adminSecret")
	}

	if err := s.db.Save(cfg).Error; err != nil {
		return nil, fmt.Errorf("保存商城配置失败: %w", err)
	}

	metrics.ConfigUpdateTotal.Inc()
	slog.Info("商城配置已更新", "scope", scope, "fields", changed)

	if s.auditService != nil {
		s.auditService.Record(models.AuditActionConfigUpdate, scope, operator, clientIP,
			models.JSONB{"fields": changed})
	}
	if s.eventService != nil {
		s.eventService.Emit(models.EventConfigChanged, scope)
	}

	return cfg, nil
}

// Reset 重置管理密钥
// 校验部署级重置密钥，匹配时将管理密钥恢复为默认值，配置不存在时先创建
func (s *Service) Reset(scope, suppliedResetSecret, clientIP string) error {
	if subtle.ConstantTimeCompare([]byte(suppliedResetSecret), []byte(s.resetSecret)) != 1 {
		metrics.AuthFailureTotal.WithLabelValues("reset").Inc()
		return ErrUnauthorized
	}

	cfg, err := s.GetOrCreate(scope)
	if err != nil {
		return err
	}

	cfg.AdminSecret = models.DefaultAdminSecret
	if err := s.db.Save(cfg).Error; err != nil {
		return fmt.Errorf("重置管理密钥失败: %w", err)
	}

	slog.Warn("管理密钥已重置为默认值", "scope", scope, "client_ip", clientIP)

	if s.auditService != nil {
		s.auditService.Record(models.AuditActionSecretReset, scope, "reset", clientIP, nil)
	}

	return nil
}
