/*
 * @module api/controllers/mall_config_controller_test
 * @description 商城配置控制器单元测试
 */

package controllers

import (
	"net/http/httptest"
	"testing"

	"mall-service/service/mallconfig"
	"mall-service/service/models"
	"mall-service/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testResetSecret = "deploy-reset-secret"

func newMallConfigController(t *testing.T) (*MallConfigController, *testutil.TestDataFactory) {
	tdb := testutil.NewTestDB()
	t.Cleanup(tdb.Close)
	svc := mallconfig.NewService(tdb.DB, testResetSecret, nil, nil)
	return NewMallConfigController(svc, nil), testutil.NewTestDataFactory(tdb.DB)
}

func TestGetConfigPublic(t *testing.T) {
	controller, factory := newMallConfigController(t)
	factory.CreateMallConfig(models.GlobalScope, func(cfg *models.MallConfig) {
		cfg.BannerTitle = "周年庆"
		cfg.AdminSecret = "top-secret"
	})

	helper := testutil.NewHTTPTestHelper()
	req, err := helper.CreateJSONRequest("GET", "/config", nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	controller.GetConfig(w, req)

	envelope := helper.DecodeEnvelope(t, w)
	require.Equal(t, float64(0), envelope["status"])
	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, "周年庆", data["bannerTitle"])
	// 公开响应不含管理密钥
	assert.NotContains(t, w.Body.String(), "top-secret")
	assert.NotContains(t, data, "adminSecret")
}

func TestGetConfigLazyCreatesDefaults(t *testing.T) {
	controller, _ := newMallConfigController(t)

	helper := testutil.NewHTTPTestHelper()
	req, err := helper.CreateJSONRequest("GET", "/config", nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	controller.GetConfig(w, req)

	envelope := helper.DecodeEnvelope(t, w)
	require.Equal(t, float64(0), envelope["status"])
	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, models.DefaultBannerTitle, data["bannerTitle"])
	assert.Equal(t, models.DefaultBannerImage, data["bannerImage"])
}

func TestGetFullConfig(t *testing.T) {
	controller, factory := newMallConfigController(t)
	factory.CreateMallConfig(models.GlobalScope)

	helper := testutil.NewHTTPTestHelper()

	// 密钥错误
	req, err := helper.CreateJSONRequest("POST", "/config/admin", map[string]interface{}{
		"secret": "wrong",
	})
	require.NoError(t, err)
	w := httptest.NewRecorder()
	controller.GetFullConfig(w, req)
	envelope := helper.DecodeEnvelope(t, w)
	assert.Equal(t, float64(401), envelope["status"])

	// 密钥正确时返回完整配置
	req, err = helper.CreateJSONRequest("POST", "/config/admin", map[string]interface{}{
		"secret": models.DefaultAdminSecret,
	})
	require.NoError(t, err)
	w = httptest.NewRecorder()
	controller.GetFullConfig(w, req)
	envelope = helper.DecodeEnvelope(t, w)
	require.Equal(t, float64(0), envelope["status"])
	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, models.DefaultAdminSecret, data["adminSecret"])
}

func TestGetFullConfigNotFound(t *testing.T) {
	controller, _ := newMallConfigController(t)

	helper := testutil.NewHTTPTestHelper()
	req, err := helper.CreateJSONRequest("POST", "/config/admin", map[string]interface{}{
		"secret": models.DefaultAdminSecret,
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	controller.GetFullConfig(w, req)
	envelope := helper.DecodeEnvelope(t, w)
	assert.Equal(t, float64(404), envelope["status"])
}

func TestUpdateConfig(t *testing.T) {
	controller, factory := newMallConfigController(t)
	factory.CreateMallConfig(models.GlobalScope, func(cfg *models.MallConfig) {
		cfg.BannerTitle = "旧标题"
	})

	helper := testutil.NewHTTPTestHelper()
	req, err := helper.CreateJSONRequest("POST", "/config", map[string]interface{}{
		"secret":      models.DefaultAdminSecret,
		"bannerTitle": "新标题",
		"ruleList":    []string{"规则一"},
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	controller.UpdateConfig(w, req)
	envelope := helper.DecodeEnvelope(t, w)
	require.Equal(t, float64(0), envelope["status"])

	// 公开读取应看到更新后的值
	req, err = helper.CreateJSONRequest("GET", "/config", nil)
	require.NoError(t, err)
	w = httptest.NewRecorder()
	controller.GetConfig(w, req)
	envelope = helper.DecodeEnvelope(t, w)
	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, "新标题", data["bannerTitle"])
	assert.Equal(t, []interface{}{"规则一"}, data["ruleList"])
}

func TestUpdateConfigUnauthorized(t *testing.T) {
	controller, factory := newMallConfigController(t)
	factory.CreateMallConfig(models.GlobalScope, func(cfg *models.MallConfig) {
		cfg.BannerTitle = "原标题"
	})

	helper := testutil.NewHTTPTestHelper()
	req, err := helper.CreateJSONRequest("POST", "/config", map[string]interface{}{
		"secret":      "wrong",
		"bannerTitle": "被篡改",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	controller.UpdateConfig(w, req)
	envelope := helper.DecodeEnvelope(t, w)
	assert.Equal(t, float64(401), envelope["status"])

	// 鉴权失败时字段保持不变
	req, err = helper.CreateJSONRequest("GET", "/config", nil)
	require.NoError(t, err)
	w = httptest.NewRecorder()
	controller.GetConfig(w, req)
	envelope = helper.DecodeEnvelope(t, w)
	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, "原标题", data["bannerTitle"])
}

func TestResetSecret(t *testing.T) {
	controller, factory := newMallConfigController(t)
	factory.CreateMallConfig(models.GlobalScope, func(cfg *models.MallConfig) {
		cfg.AdminSecret = "forgotten"
	})

	helper := testutil.NewHTTPTestHelper()

	// 重置密钥错误
	req, err := helper.CreateJSONRequest("POST", "/config/reset", map[string]interface{}{
		"resetSecret": "wrong",
	})
	require.NoError(t, err)
	w := httptest.NewRecorder()
	controller.ResetSecret(w, req)
	envelope := helper.DecodeEnvelope(t, w)
	assert.Equal(t, float64(401), envelope["status"])

	// 重置成功后默认密钥重新可用
	req, err = helper.CreateJSONRequest("POST", "/config/reset", map[string]interface{}{
		"resetSecret": testResetSecret,
	})
	require.NoError(t, err)
	w = httptest.NewRecorder()
	controller.ResetSecret(w, req)
	envelope = helper.DecodeEnvelope(t, w)
	require.Equal(t, float64(0), envelope["status"])

	req, err = helper.CreateJSONRequest("POST", "/config/admin", map[string]interface{}{
		"secret": models.DefaultAdminSecret,
	})
	require.NoError(t, err)
	w = httptest.NewRecorder()
	controller.GetFullConfig(w, req)
	envelope = helper.DecodeEnvelope(t, w)
	assert.Equal(t, float64(0), envelope["status"])
}
