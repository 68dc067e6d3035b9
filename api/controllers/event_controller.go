/*
 * @module api/controllers/event_controller
 * @description 事件控制器，提供SSE连接供客户端接收商品与配置变更通知
 * @architecture 事件驱动架构 - 控制器层
 * @documentReference dev_docs/requirements.md
 * @stateFlow HTTP请求 -> 建立SSE连接 -> 持续推送变更事件 -> 连接关闭
 * @rules 连接断开时及时清理，推送失败不重试
 * @dependencies mall-service/service/event, github.com/google/uuid
 * @refs service/event/event_service.go
 */

package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"mall-service/service/event"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// EventController 事件控制器
type EventController struct {
	eventService *event.EventService
}

// NewEventController 创建事件控制器实例
func NewEventController(eventService *event.EventService) *EventController {
	return &EventController{eventService: eventService}
}

// HandleSSE 处理SSE连接
// @Summary 建立SSE连接
// @Description 客户端通过此接口建立SSE连接，接收商品与配置变更通知
// @Tags 事件
// @Param client_id path string true "客户端标识"
// @Success 200 {string} string "SSE事件流"
// @Router /sse/{client_id} [get]
func (c *EventController) HandleSSE(w http.ResponseWriter, r *http.Request) {
	clientKey := chi.URLParam(r, "client_id")
	if clientKey == "" {
		http.Error(w, "客户端标识不能为空", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	connectionID := clientKey + ":" + uuid.New().String()
	client := c.eventService.AddConnection(connectionID, clientIP(r))
	defer c.eventService.RemoveConnection(connectionID)

	fmt.Fprintf(w, "data: {\"type\":\"connected\",\"connection_id\":\"%s\",\"timestamp\":\"%s\"}\n\n",
		connectionID, time.Now().Format(time.RFC3339))
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	for {
		select {
		case ev := <-client.Channel:
			payload, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}

		case <-client.Done:
			return

		case <-r.Context().Done():
			return
		}
	}
}
