/*
 * @module testutil/test_helper
 * @description 测试工具和辅助函数
 * @architecture 测试基础设施 - 提供测试通用工具和数据工厂
 * @documentReference dev_docs/test_plan.md
 * @stateFlow 测试环境初始化 -> 测试数据创建 -> 测试执行 -> 清理资源
 * @rules 提供可重用的测试工具，确保测试环境的一致性
 * @dependencies gorm, sqlite, testify, time
 * @refs service/models
 */

package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mall-service/service/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB 测试数据库配置
type TestDB struct {
	DB *gorm.DB
}

// NewTestDB 创建测试数据库
func NewTestDB() *TestDB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(fmt.Sprintf("failed to connect test database: %v", err))
	}

	// 自动迁移所有模型
	err = db.AutoMigrate(
		&models.GoodsItem{},
		&models.MallConfig{},
		&models.AuditLog{},
	)
	if err != nil {
		panic(fmt.Sprintf("failed to migrate test database: %v", err))
	}

	return &TestDB{DB: db}
}

// CleanDB 清理数据库
func (tdb *TestDB) CleanDB() {
	tables := []string{
		"goods_items",
		"mall_configs",
		"audit_logs",
	}

	for _, table := range tables {
		tdb.DB.Exec(fmt.Sprintf("DELETE FROM %s", table))
	}
}

// Close 关闭数据库连接
func (tdb *TestDB) Close() {
	if db, err := tdb.DB.DB(); err == nil {
		db.Close()
	}
}

// TestDataFactory 测试数据工厂
type TestDataFactory struct {
	DB *gorm.DB
}

// NewTestDataFactory 创建测试数据工厂
func NewTestDataFactory(db *gorm.DB) *TestDataFactory {
	return &TestDataFactory{DB: db}
}

// GoodsItemOption 商品选项函数类型
type GoodsItemOption func(*models.GoodsItem)

// CreateGoodsItem 创建测试商品
func (f *TestDataFactory) CreateGoodsItem(scope string, goodsID int, opts ...GoodsItemOption) *models.GoodsItem {
	item := &models.GoodsItem{
		Scope:     scope,
		GoodsID:   goodsID,
		Name:      fmt.Sprintf("测试商品%d", goodsID),
		Score:     100,
		Desc:      "这是一个测试商品",
		Image:     "/static/default-goods.png",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	for _, opt := range opts {
		opt(item)
	}

	err := f.DB.Create(item).Error
	if err != nil {
		panic(fmt.Sprintf("failed to create test goods item: %v", err))
	}

	return item
}

// MallConfigOption 商城配置选项函数类型
type MallConfigOption func(*models.MallConfig)

// CreateMallConfig 创建测试商城配置
func (f *TestDataFactory) CreateMallConfig(scope string, opts ...MallConfigOption) *models.MallConfig {
	cfg := &models.MallConfig{
		ID:          scope,
		BannerImage: models.DefaultBannerImage,
		BannerTitle: "测试商城",
		RuleList:    models.JSONBStringArray{"规则一", "规则二"},
		AdminSecret: models.DefaultAdminSecret,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	err := f.DB.Create(cfg).Error
	if err != nil {
		panic(fmt.Sprintf("failed to create test mall config: %v", err))
	}

	return cfg
}

// HTTPTestHelper HTTP测试辅助工具
type HTTPTestHelper struct{}

// NewHTTPTestHelper 创建HTTP测试辅助工具
func NewHTTPTestHelper() *HTTPTestHelper {
	return &HTTPTestHelper{}
}

// CreateJSONRequest 创建JSON请求
func (h *HTTPTestHelper) CreateJSONRequest(method, url string, body interface{}) (*http.Request, error) {
	var reqBody io.Reader

	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// DecodeEnvelope 解析统一响应结构
func (h *HTTPTestHelper) DecodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var envelope map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &envelope)
	assert.NoError(t, err)
	return envelope
}
