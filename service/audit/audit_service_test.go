/*
 * @module service/audit/audit_service_test
 * @description 审计服务单元测试（不连接Kafka）
 */

package audit

import (
	"testing"

	"mall-service/service/models"
	"mall-service/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuditService(t *testing.T) *AuditService {
	tdb := testutil.NewTestDB()
	t.Cleanup(tdb.Close)
	return NewAuditService(tdb.DB, nil)
}

func TestRecordAndList(t *testing.T) {
	svc := newTestAuditService(t)

	svc.Record(models.AuditActionGoodsReplace, models.GlobalScope, "admin", "127.0.0.1",
		models.JSONB{"count": 3})
	svc.Record(models.AuditActionSecretReset, models.GlobalScope, "reset", "10.0.0.1", nil)

	logs, err := svc.List(10)
	require.NoError(t, err)
	require.Len(t, logs, 2)

	actions := []string{logs[0].Action, logs[1].Action}
	assert.Contains(t, actions, models.AuditActionGoodsReplace)
	assert.Contains(t, actions, models.AuditActionSecretReset)

	for _, entry := range logs {
		assert.NotEmpty(t, entry.ID)
		assert.Equal(t, models.GlobalScope, entry.Scope)
	}
}

func TestListLimitNormalization(t *testing.T) {
	svc := newTestAuditService(t)

	for i := 0; i < 5; i++ {
		svc.Record(models.AuditActionConfigUpdate, models.GlobalScope, "admin", "", nil)
	}

	logs, err := svc.List(3)
	require.NoError(t, err)
	assert.Len(t, logs, 3)

	// 非法limit回退为默认值
	logs, err = svc.List(-1)
	require.NoError(t, err)
	assert.Len(t, logs, 5)
}

func TestCloseWithoutKafka(t *testing.T) {
	svc := newTestAuditService(t)
	assert.NoError(t, svc.Close())
}
