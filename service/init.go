/*
 * @module service/init
 * @description 服务初始化模块，负责数据库连接、迁移执行与各业务服务的装配
 * @architecture 分层架构 - 服务层
 * @documentReference dev_docs/requirements.md
 * @stateFlow 应用启动时执行初始化流程
 * @rules 确保所有依赖服务正常启动后才提供API服务，可选组件缺失时降级运行
 * @dependencies gorm.io/gorm, gorm.io/driver/postgres, github.com/spf13/cast
 * @refs dev_docs/model.md
 */

package service

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"mall-service/service/audit"
	"mall-service/service/cleanup"
	"mall-service/service/database"
	"mall-service/service/event"
	"mall-service/service/goods"
	"mall-service/service/image"
	"mall-service/service/mallconfig"
	"mall-service/service/rate_limiter"

	"github.com/spf13/cast"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// 作用域模式
const (
	ScopeModeGlobal = "global"
	ScopeModeOwner  = "owner"
)

var (
	DB                 *gorm.DB
	ScopeMode          string
	GlobalEventService *event.EventService
	GlobalAuditService *audit.AuditService
	GlobalGoodsService *goods.Service
	GlobalMallConfig   *mallconfig.Service
	GlobalImageStore   *image.Store
	GlobalCleanup      *cleanup.FileCleanupService
	GlobalRateLimiter  *rate_limiter.RedisRateLimiter

	dbDSN string
)

func init() {
	initDatabase()
	runMigrations()
	initServices()
}

// initDatabase 初始化数据库连接
func initDatabase() {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		dbDSN = databaseURL
	} else {
		host := getEnvWithDefault("DB_HOST", "localhost")
		port := getEnvWithDefault("DB_PORT", "5432")
		user := getEnvWithDefault("DB_USER", "postgres")
		password := getEnvWithDefault("DB_PASSWORD", "mall2024")
		dbname := getEnvWithDefault("DB_NAME", "postgres")
		sslmode := getEnvWithDefault("DB_SSLMODE", "disable")

		dbDSN = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=Asia/Shanghai",
			host, port, user, password, dbname, sslmode)
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dbDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	log.Println("数据库连接成功")
}

// getEnvWithDefault 获取环境变量，如果不存在则返回默认值
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// runMigrations 运行数据库迁移
func runMigrations() {
	if err := database.AutoMigrate(DB); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}
	if err := database.InitializeData(DB); err != nil {
		log.Fatalf("基础数据初始化失败: %v", err)
	}
	log.Println("数据库迁移完成")
}

// initServices 初始化服务
func initServices() {
	ScopeMode = getEnvWithDefault("GOODS_SCOPE_MODE", ScopeModeGlobal)
	if ScopeMode != ScopeModeGlobal && ScopeMode != ScopeModeOwner {
		log.Fatalf("不支持的作用域模式: %s", ScopeMode)
	}

	// 图片存储
	var err error
	GlobalImageStore, err = image.NewStore(
		getEnvWithDefault("UPLOAD_MODE", image.ModeDisk),
		getEnvWithDefault("UPLOAD_DIR", "./uploads"),
		"/uploads",
	)
	if err != nil {
		log.Fatalf("初始化图片存储失败: %v", err)
	}

	// 变更事件服务（经由Postgres通知跨实例分发）
	GlobalEventService = event.NewEventService(DB, dbDSN)

	// 审计服务，配置了KAFKA_BROKERS时镜像到消息队列
	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = strings.Split(v, ",")
	}
	GlobalAuditService = audit.NewAuditService(DB, brokers)

	// 商品与配置服务
	GlobalGoodsService = goods.NewService(DB,
		getEnvWithDefault("GOODS_LIST_ORDER", goods.OrderCreatedAsc),
		GlobalEventService, GlobalAuditService)
	GlobalMallConfig = mallconfig.NewService(DB,
		getEnvWithDefault("ADMIN_RESET_SECRET", "mall-reset-2024"),
		GlobalEventService, GlobalAuditService)

	// 凭据路径限流器，未配置REDIS_HOST时不启用
	if os.Getenv("REDIS_HOST") != "" {
		GlobalRateLimiter, err = rate_limiter.NewRedisRateLimiter(
			cast.ToInt(os.Getenv("RATE_LIMIT_WINDOW")),
			cast.ToInt(os.Getenv("RATE_LIMIT_MAX")))
		if err != nil {
			log.Printf("初始化限流器失败，凭据路径不限流: %v", err)
		}
	}

	// 孤儿上传文件清理
	retentionHours := cast.ToInt(getEnvWithDefault("UPLOAD_RETENTION_HOURS", "24"))
	GlobalCleanup = cleanup.NewFileCleanupService(DB, GlobalImageStore,
		getEnvWithDefault("UPLOAD_CLEANUP_CRON", "0 3 * * *"),
		time.Duration(retentionHours)*time.Hour)
	if err := GlobalCleanup.Start(); err != nil {
		log.Printf("启动文件清理服务失败: %v", err)
	}

	log.Println("服务初始化完成")
}
