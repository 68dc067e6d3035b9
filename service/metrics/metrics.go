/*
 * @module service/metrics
 * @description 业务指标定义，通过/metrics端点暴露给Prometheus
 * @architecture 监控层
 * @documentReference dev_docs/requirements.md
 * @stateFlow 业务操作完成 -> 计数器累加 -> Prometheus拉取
 * @rules 指标只增不减，标签基数保持有限
 * @dependencies github.com/prometheus/client_golang
 * @refs main.go
 */

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GoodsReplaceTotal 商品整表替换次数
	GoodsReplaceTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mall_goods_replace_total",
		Help: "商品整表替换操作次数",
	}, []string{"scope"})

	// ConfigUpdateTotal 配置更新次数
	ConfigUpdateTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mall_config_update_total",
		Help: "商城配置更新操作次数",
	})

	// AuthFailureTotal 管理鉴权失败次数
	AuthFailureTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mall_auth_failure_total",
		Help: "管理密钥或重置密钥校验失败次数",
	}, []string{"path"})

	// UploadBytesTotal 上传图片累计字节数
	UploadBytesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mall_upload_bytes_total",
		Help: "上传图片累计字节数",
	})
)
