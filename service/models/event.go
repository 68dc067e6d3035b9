/*
 * @module service/models/event
 * @description 变更事件模型定义，用于SSE推送与跨实例通知
 * @architecture 事件驱动架构 - 数据模型层
 * @documentReference dev_docs/requirements.md
 * @stateFlow 事件生产 -> pg_notify广播 -> SSE分发
 * @rules 事件仅描述"发生了变更"，不携带业务数据本身，客户端收到后重新拉取
 * @dependencies time
 * @refs service/event/event_service.go
 */

package models

import "time"

// 变更事件类型
const (
	EventGoodsChanged  = "goods_changed"
	EventConfigChanged = "config_changed"
)

// ChangeEvent 变更事件
type ChangeEvent struct {
	Type      string    `json:"type"`
	Scope     string    `json:"scope"`
	Timestamp time.Time `json:"timestamp"`
}
