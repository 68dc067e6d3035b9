/*
 * @module service/mallconfig/service_test
 * @description 商城配置服务单元测试
 */

package mallconfig

import (
	"encoding/json"
	"testing"

	"mall-service/service/image"
	"mall-service/service/models"
	"mall-service/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testResetSecret = "deploy-reset-secret"

func newTestService(t *testing.T) (*Service, *testutil.TestDataFactory) {
	tdb := testutil.NewTestDB()
	t.Cleanup(tdb.Close)
	return NewService(tdb.DB, testResetSecret, nil, nil), testutil.NewTestDataFactory(tdb.DB)
}

func strPtr(s string) *string { return &s }

// TestGetOrCreateLazyInit 首次读取以默认值创建配置
func TestGetOrCreateLazyInit(t *testing.T) {
	svc, _ := newTestService(t)

	cfg, err := svc.GetOrCreate(models.GlobalScope)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultBannerImage, cfg.BannerImage)
	assert.Equal(t, models.DefaultBannerTitle, cfg.BannerTitle)
	assert.Equal(t, models.DefaultAdminSecret, cfg.AdminSecret)
	assert.Empty(t, cfg.RuleList)

	// 再次读取返回同一条记录而非重复创建
	again, err := svc.GetOrCreate(models.GlobalScope)
	require.NoError(t, err)
	assert.Equal(t, cfg.ID, again.ID)

	var count int64
	require.NoError(t, svc.db.Model(&models.MallConfig{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

// TestCreateDefaultReturnsExistingOnConflict 并发首次访问时创建冲突回读既有记录
func TestCreateDefaultReturnsExistingOnConflict(t *testing.T) {
	svc, factory := newTestService(t)

	// 模拟另一请求在First未命中与Create之间抢先创建
	factory.CreateMallConfig(models.GlobalScope, func(cfg *models.MallConfig) {
		cfg.BannerTitle = "先到者"
	})

	cfg, err := svc.createDefault(models.GlobalScope)
	require.NoError(t, err)
	assert.Equal(t, "先到者", cfg.BannerTitle)

	var count int64
	require.NoError(t, svc.db.Model(&models.MallConfig{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

// TestGetPublicStripsSecret 公开视图不含管理密钥
func TestGetPublicStripsSecret(t *testing.T) {
	svc, factory := newTestService(t)

	factory.CreateMallConfig(models.GlobalScope, func(cfg *models.MallConfig) {
		cfg.AdminSecret = "super-secret"
	})

	view, err := svc.GetPublic(models.GlobalScope)
	require.NoError(t, err)

	payload, err := json.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "super-secret")
	assert.NotContains(t, string(payload), "adminSecret")
	assert.NotContains(t, string(payload), "admin_secret")
}

// TestGetPublicNormalizesBanner 非法横幅图在读取时修复
func TestGetPublicNormalizesBanner(t *testing.T) {
	svc, factory := newTestService(t)

	factory.CreateMallConfig(models.GlobalScope, func(cfg *models.MallConfig) {
		cfg.BannerImage = "garbage-value"
	})

	view, err := svc.GetPublic(models.GlobalScope)
	require.NoError(t, err)
	assert.Equal(t, image.DefaultGoodsImage, view.BannerImage)
}

// TestAuthorize 管理鉴权三种结果
func TestAuthorize(t *testing.T) {
	svc, factory := newTestService(t)

	// 配置不存在
	_, err := svc.Authorize(models.GlobalScope, models.DefaultAdminSecret)
	assert.ErrorIs(t, err, ErrNotFound)

	factory.CreateMallConfig(models.GlobalScope, func(cfg *models.MallConfig) {
		cfg.AdminSecret = "right"
	})

	// 密钥不匹配
	_, err = svc.Authorize(models.GlobalScope, "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)

	// 密钥匹配
	cfg, err := svc.Authorize(models.GlobalScope, "right")
	require.NoError(t, err)
	assert.Equal(t, models.GlobalScope, cfg.ID)
}

// TestUpsertPartialUpdate 仅更新提供的字段
func TestUpsertPartialUpdate(t *testing.T) {
	svc, factory := newTestService(t)

	factory.CreateMallConfig(models.GlobalScope, func(cfg *models.MallConfig) {
		cfg.BannerTitle = "旧标题"
		cfg.RuleList = models.JSONBStringArray{"旧规则"}
	})

	updated, err := svc.Upsert(models.GlobalScope, models.DefaultAdminSecret, &models.MallConfigPatch{
		BannerTitle: strPtr("新标题"),
	}, "admin", "127.0.0.1")
	require.NoError(t, err)

	assert.Equal(t, "新标题", updated.BannerTitle)
	// 未提供的字段保持原值
	assert.Equal(t, models.DefaultBannerImage, updated.BannerImage)
	assert.Equal(t, models.JSONBStringArray{"旧规则"}, updated.RuleList)
	assert.Equal(t, models.DefaultAdminSecret, updated.AdminSecret)
}

// TestUpsertNormalizesBannerImage 更新横幅图时做归一化
func TestUpsertNormalizesBannerImage(t *testing.T) {
	svc, factory := newTestService(t)
	factory.CreateMallConfig(models.GlobalScope)

	updated, err := svc.Upsert(models.GlobalScope, models.DefaultAdminSecret, &models.MallConfigPatch{
		BannerImage: strPtr("not-an-image"),
	}, "admin", "")
	require.NoError(t, err)
	assert.Equal(t, image.DefaultGoodsImage, updated.BannerImage)
}

// TestUpsertSecretRotation 新密钥非空白时轮换，空白时忽略
func TestUpsertSecretRotation(t *testing.T) {
	svc, factory := newTestService(t)
	factory.CreateMallConfig(models.GlobalScope)

	updated, err := svc.Upsert(models.GlobalScope, models.DefaultAdminSecret, &models.MallConfigPatch{
		NewSecret: strPtr("rotated"),
	}, "admin", "")
	require.NoError(t, err)
	assert.Equal(t, "rotated", updated.AdminSecret)

	// 旧密钥随即失效
	_, err = svc.Upsert(models.GlobalScope, models.DefaultAdminSecret, &models.MallConfigPatch{}, "admin", "")
	assert.ErrorIs(t, err, ErrUnauthorized)

	// 空白新密钥不触发轮换
	updated, err = svc.Upsert(models.GlobalScope, "rotated", &models.MallConfigPatch{
		NewSecret: strPtr(""),
	}, "admin", "")
	require.NoError(t, err)
	assert.Equal(t, "rotated", updated.AdminSecret)
}

// TestUpsertUnauthorizedLeavesConfigUnchanged 鉴权失败不产生任何变更
func TestUpsertUnauthorizedLeavesConfigUnchanged(t *testing.T) {
	svc, factory := newTestService(t)
	factory.CreateMallConfig(models.GlobalScope, func(cfg *models.MallConfig) {
		cfg.BannerTitle = "原标题"
	})

	_, err := svc.Upsert(models.GlobalScope, "wrong", &models.MallConfigPatch{
		BannerTitle: strPtr("被篡改"),
		NewSecret:   strPtr("hijack"),
	}, "attacker", "")
	assert.ErrorIs(t, err, ErrUnauthorized)

	cfg, err := svc.GetOrCreate(models.GlobalScope)
	require.NoError(t, err)
	assert.Equal(t, "原标题", cfg.BannerTitle)
	assert.Equal(t, models.DefaultAdminSecret, cfg.AdminSecret)
}

// TestReset 重置密钥两种结果
func TestReset(t *testing.T) {
	svc, factory := newTestService(t)
	factory.CreateMallConfig(models.GlobalScope, func(cfg *models.MallConfig) {
		cfg.AdminSecret = "forgotten"
	})

	// 重置密钥不匹配
	err := svc.Reset(models.GlobalScope, "wrong-reset", "127.0.0.1")
	assert.ErrorIs(t, err, ErrUnauthorized)

	cfg, getErr := svc.GetOrCreate(models.GlobalScope)
	require.NoError(t, getErr)
	assert.Equal(t, "forgotten", cfg.AdminSecret)

	// 重置密钥匹配时恢复默认管理密钥
	require.NoError(t, svc.Reset(models.GlobalScope, testResetSecret, "127.0.0.1"))
	cfg, getErr = svc.GetOrCreate(models.GlobalScope)
	require.NoError(t, getErr)
	assert.Equal(t, models.DefaultAdminSecret, cfg.AdminSecret)
}

// TestResetCreatesMissingConfig 配置不存在时重置先创建
func TestResetCreatesMissingConfig(t *testing.T) {
	svc, _ := newTestService(t)

	require.NoError(t, svc.Reset("user-x", testResetSecret, ""))

	cfg, err := svc.GetOrCreate("user-x")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultAdminSecret, cfg.AdminSecret)
}
