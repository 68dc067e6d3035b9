/*
 * @module service/rate_limiter/redis_rate_limiter
 * @description 基于Redis的固定窗口限流器，保护管理鉴权与密钥重置路径免受暴力尝试
 * @architecture 工具层 - 提供分布式限流能力
 * @documentReference dev_docs/requirements.md
 * @stateFlow 凭据校验前检查 -> Redis计数 -> 判断是否超限
 * @rules 使用Redis INCR和EXPIRE实现固定窗口限流，Redis不可用时放行并记录告警
 * @dependencies github.com/go-redis/redis/v8
 * @refs api/controllers/mall_config_controller.go
 */

package rate_limiter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
)

// 凭据路径默认限流参数
const (
	DefaultWindowSeconds = 60
	DefaultMaxAttempts   = 10
)

// RedisRateLimiter Redis限流器
type RedisRateLimiter struct {
	client *redis.Client
	window int
	max    int
}

// NewRedisRateLimiter 创建Redis限流器
func NewRedisRateLimiter(window, max int) (*RedisRateLimiter, error) {
	host := getEnvWithDefault("REDIS_HOST", "localhost")
	port := getEnvWithDefault("REDIS_PORT", "6379")
	password := os.Getenv("REDIS_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", host, port),
		Password:     password,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis连接失败: %w", err)
	}

	if window <= 0 {
		window = DefaultWindowSeconds
	}
	if max <= 0 {
		max = DefaultMaxAttempts
	}

	slog.Info("Redis限流器初始化成功", "redis_host", host, "redis_port", port,
		"window_seconds", window, "max_attempts", max)

	return &RedisRateLimiter{client: client, window: window, max: max}, nil
}

// Allow 检查凭据路径的一次尝试是否放行
// key 用于区分限流对象（通常为 路径+客户端IP）；Redis故障时放行
func (r *RedisRateLimiter) Allow(ctx context.Context, key string) bool {
	script := `
		local key = KEYS[1]
		local max_requests = tonumber(ARGV[1])
		local window = tonumber(ARGV[2])

		local current = redis.call('GET', key)
		if current == false then
			current = 0
		else
			current = tonumber(current)
		end

		if current >= max_requests then
			return 0
		end

		local new_count = redis.call('INCR', key)
		if new_count == 1 then
			redis.call('EXPIRE', key, window)
		end

		return 1
	`

	bucket := time.Now().Unix() / int64(r.window)
	redisKey := fmt.Sprintf("mall:rate_limit:%s:%d", key, bucket)

	result, err := r.client.Eval(ctx, script, []string{redisKey}, r.max, r.window).Result()
	if err != nil {
		slog.Warn("限流检查失败，放行请求", "key", key, "error", err)
		return true
	}

	allowed, ok := result.(int64)
	return !ok || allowed == 1
}

// Close 关闭Redis连接
func (r *RedisRateLimiter) Close() error {
	return r.client.Close()
}

// getEnvWithDefault 获取环境变量，如果不存在则返回默认值
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
