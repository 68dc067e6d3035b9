/*
 * @module service/audit/audit_service
 * @description 审计服务，持久化管理操作与商品替换的审计记录，可选镜像到Kafka
 * @architecture 分层架构 - 业务服务层
 * @documentReference dev_docs/requirements.md
 * @stateFlow 业务操作完成 -> 写入审计表 -> 异步发送Kafka消息
 * @rules 审计写入失败只记录日志，不阻断业务操作
 * @dependencies gorm.io/gorm, github.com/segmentio/kafka-go
 * @refs service/models/audit.go
 */

package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"mall-service/service/models"

	"github.com/segmentio/kafka-go"
	"gorm.io/gorm"
)

// AuditService 审计服务
type AuditService struct {
	db     *gorm.DB
	writer *kafka.Writer
}

// NewAuditService 创建审计服务实例
// brokers 非空时审计记录同时异步写入Kafka主题 mall-audit
func NewAuditService(db *gorm.DB, brokers []string) *AuditService {
	s := &AuditService{db: db}

	if len(brokers) > 0 {
		s.writer = &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        "mall-audit",
			Balancer:     &kafka.LeastBytes{},
			Async:        true,
			BatchTimeout: 100 * time.Millisecond,
		}
		slog.Info("审计Kafka生产者已初始化", "brokers", brokers)
	}

	return s
}

// Record 记录一条审计日志
func (s *AuditService) Record(action, scope, operator, clientIP string, detail models.JSONB) {
	entry := &models.AuditLog{
		Action:   action,
		Scope:    scope,
		Operator: operator,
		ClientIP: clientIP,
		Detail:   detail,
	}

	if err := s.db.Create(entry).Error; err != nil {
		slog.Error("写入审计记录失败", "action", action, "error", err)
		return
	}

	if s.writer != nil {
		payload, err := json.Marshal(entry)
		if err != nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := s.writer.WriteMessages(ctx, kafka.Message{
			Key:   []byte(action),
			Value: payload,
		}); err != nil {
			slog.Warn("审计消息发送Kafka失败", "action", action, "error", err)
		}
	}
}

// List 按时间倒序查询审计记录
func (s *AuditService) List(limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var logs []models.AuditLog
	err := s.db.Order("created_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}

// Close 关闭Kafka生产者
func (s *AuditService) Close() error {
	if s.writer != nil {
		return s.writer.Close()
	}
	return nil
}
