package logger

import (
	"log/slog"
	"os"

	"github.com/spf13/cast"
)

// InitLogger 初始化全局日志记录器
// 创建 JSON 格式的日志处理器,输出到 stdout；LOG_DEBUG=true 时输出调试级别日志
func InitLogger() {
	level := slog.LevelInfo
	if cast.ToBool(os.Getenv("LOG_DEBUG")) {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)
}
