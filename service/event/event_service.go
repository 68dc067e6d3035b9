/*
 * @module service/event/event_service
 * @description 变更事件服务，向SSE客户端推送商品与配置变更通知
 * @architecture 事件驱动架构 - 业务服务层
 * @documentReference dev_docs/requirements.md
 * @stateFlow 业务写入 -> pg_notify广播 -> 监听器接收 -> SSE分发；监听器不可用时退化为进程内直发
 * @rules 事件推送尽力而为，推送失败不影响业务写入结果
 * @dependencies github.com/lib/pq, gorm.io/gorm
 * @refs service/goods/service.go, service/mallconfig/service.go, api/controllers/event_controller.go
 */

package event

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"mall-service/service/models"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// notifyChannel Postgres通知通道名
const notifyChannel = "mall_changes"

// SSEClient SSE客户端连接
type SSEClient struct {
	ID       string
	Channel  chan *models.ChangeEvent
	Done     chan struct{}
	ClientIP string
}

// EventService 变更事件服务
type EventService struct {
	db          *gorm.DB
	connections map[string]*SSEClient
	mu          sync.RWMutex
	dbListener  *pq.Listener
	listening   bool
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewEventService 创建事件服务实例
// listenDSN 非空时启动Postgres监听器做跨实例分发，为空时仅进程内直发（测试场景）
func NewEventService(db *gorm.DB, listenDSN string) *EventService {
	ctx, cancel := context.WithCancel(context.Background())

	s := &EventService{
		db:          db,
		connections: make(map[string]*SSEClient),
		ctx:         ctx,
		cancel:      cancel,
	}

	if listenDSN != "" {
		go s.startDBListener(listenDSN)
	}

	return s
}

// AddConnection 添加SSE连接
func (s *EventService) AddConnection(clientID, clientIP string) *SSEClient {
	s.mu.Lock()
	defer s.mu.Unlock()

	client := &SSEClient{
		ID:       clientID,
		Channel:  make(chan *models.ChangeEvent, 16),
		Done:     make(chan struct{}),
		ClientIP: clientIP,
	}
	s.connections[clientID] = client

	slog.Info("SSE连接已建立", "client_id", clientID, "client_ip", clientIP)
	return client
}

// RemoveConnection 移除SSE连接
func (s *EventService) RemoveConnection(clientID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if client, ok := s.connections[clientID]; ok {
		close(client.Done)
		delete(s.connections, clientID)
		slog.Info("SSE连接已断开", "client_id", clientID)
	}
}

// Emit 发布变更事件
// 监听器可用时经由pg_notify广播给所有实例，否则仅在本进程内分发
func (s *EventService) Emit(eventType, scope string) {
	ev := &models.ChangeEvent{
		Type:      eventType,
		Scope:     scope,
		Timestamp: time.Now(),
	}

	s.mu.RLock()
	listening := s.listening
	s.mu.RUnlock()

	if listening {
		payload, err := json.Marshal(ev)
		if err == nil {
			if err := s.db.Exec("SELECT pg_notify(?, ?)", notifyChannel, string(payload)).Error; err == nil {
				return
			}
			slog.Warn("pg_notify广播失败，退化为进程内分发", "error", err)
		}
	}

	s.broadcast(ev)
}

// broadcast 向本进程内所有SSE连接分发事件
func (s *EventService) broadcast(ev *models.ChangeEvent) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, client := range s.connections {
		select {
		case client.Channel <- ev:
		default:
			slog.Warn("SSE连接事件队列已满，跳过发送", "client_id", client.ID)
		}
	}
}

// startDBListener 启动Postgres通知监听器
func (s *EventService) startDBListener(dsn string) {
	listener := pq.NewListener(dsn, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			slog.Warn("PostgreSQL监听器事件", "event", ev, "error", err)
		}
	})

	s.mu.Lock()
	s.dbListener = listener
	s.mu.Unlock()

	if err := listener.Listen(notifyChannel); err != nil {
		slog.Warn("监听数据库通知失败，变更事件仅在本进程内分发", "error", err)
		return
	}

	s.mu.Lock()
	s.listening = true
	s.mu.Unlock()
	slog.Info("数据库变更监听器已启动", "channel", notifyChannel)

	for {
		select {
		case notification := <-listener.Notify:
			if notification != nil {
				s.handleNotification(notification)
			}
		case <-s.ctx.Done():
			slog.Info("数据库变更监听器已停止")
			return
		}
	}
}

// handleNotification 处理数据库通知并分发给本实例的SSE连接
func (s *EventService) handleNotification(notification *pq.Notification) {
	var ev models.ChangeEvent
	if err := json.Unmarshal([]byte(notification.Extra), &ev); err != nil {
		slog.Warn("解析变更通知失败", "error", err)
		return
	}
	s.broadcast(&ev)
}

// Stop 停止事件服务
func (s *EventService) Stop() {
	s.cancel()

	s.mu.Lock()
	listener := s.dbListener
	s.dbListener = nil
	s.listening = false
	s.mu.Unlock()

	if listener != nil {
		listener.Close()
	}
}
