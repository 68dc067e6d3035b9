/*
 * @module service/cleanup/file_cleanup_service
 * @description 上传文件清理服务，定期删除不再被任何商品或配置引用的孤儿图片
 * @architecture 分层架构 - 业务服务层
 * @documentReference dev_docs/requirements.md
 * @stateFlow 定时触发 -> 收集被引用文件 -> 扫描上传目录 -> 删除过期孤儿文件
 * @rules 仅删除超过保留期的未引用文件，清理失败不影响系统正常运行
 * @dependencies gorm.io/gorm, github.com/robfig/cron/v3
 * @refs service/image/storage.go
 */

package cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mall-service/service/image"
	"mall-service/service/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// FileCleanupService 上传文件清理服务
type FileCleanupService struct {
	db        *gorm.DB
	store     *image.Store
	cron      *cron.Cron
	spec      string
	retention time.Duration
	ctx       context.Context
	cancel    context.CancelFunc
	started   bool
}

// NewFileCleanupService 创建文件清理服务实例
// spec 为cron表达式，retention 为孤儿文件的保留宽限期
func NewFileCleanupService(db *gorm.DB, store *image.Store, spec string, retention time.Duration) *FileCleanupService {
	ctx, cancel := context.WithCancel(context.Background())

	return &FileCleanupService{
		db:        db,
		store:     store,
		cron:      cron.New(),
		spec:      spec,
		retention: retention,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start 启动定时清理
func (s *FileCleanupService) Start() error {
	if s.started {
		return nil
	}
	if s.store.Mode() != image.ModeDisk {
		slog.Info("内联存储模式无需文件清理，清理服务未启动")
		return nil
	}

	_, err := s.cron.AddFunc(s.spec, func() {
		if _, err := s.CleanupOrphans(s.ctx); err != nil {
			slog.Error("清理孤儿上传文件失败", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("注册清理任务失败: %w", err)
	}

	s.cron.Start()
	s.started = true
	slog.Info("上传文件清理服务已启动", "cron", s.spec, "retention", s.retention.String())
	return nil
}

// Stop 停止定时清理
func (s *FileCleanupService) Stop() {
	if s.started {
		s.cron.Stop()
		s.cancel()
		s.started = false
	}
}

// CleanupOrphans 清理一轮孤儿文件，返回删除数量
func (s *FileCleanupService) CleanupOrphans(ctx context.Context) (int, error) {
	startTime := time.Now()

	referenced, err := s.collectReferencedFiles()
	if err != nil {
		return 0, err
	}

	entries, err := os.ReadDir(s.store.Dir())
	if err != nil {
		return 0, fmt.Errorf("读取上传目录失败: %w", err)
	}

	deleted := 0
	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return deleted, ctx.Err()
		default:
		}

		if entry.IsDir() || referenced[entry.Name()] {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) < s.retention {
			continue
		}

		if err := s.store.Remove(entry.Name()); err != nil {
			slog.Warn("删除孤儿文件失败", "file", entry.Name(), "error", err)
			continue
		}
		deleted++
	}

	slog.Info("孤儿文件清理完成", "deleted_count", deleted,
		"duration_ms", time.Since(startTime).Milliseconds())
	return deleted, nil
}

// collectReferencedFiles 收集所有仍被商品图或横幅图引用的文件名
func (s *FileCleanupService) collectReferencedFiles() (map[string]bool, error) {
	referenced := make(map[string]bool)

	var goodsImages []string
	if err := s.db.Model(&models.GoodsItem{}).Pluck("image", &goodsImages).Error; err != nil {
		return nil, fmt.Errorf("查询商品图片引用失败: %w", err)
	}
	for _, img := range goodsImages {
		if name := fileNameFromRef(img); name != "" {
			referenced[name] = true
		}
	}

	var bannerImages []string
	if err := s.db.Model(&models.MallConfig{}).Pluck("banner_image", &bannerImages).Error; err != nil {
		return nil, fmt.Errorf("查询横幅图片引用失败: %w", err)
	}
	for _, img := range bannerImages {
		if name := fileNameFromRef(img); name != "" {
			referenced[name] = true
		}
	}

	return referenced, nil
}

// fileNameFromRef 从引用路径中提取文件名，内联编码图片返回空
func fileNameFromRef(ref string) string {
	if ref == "" || strings.HasPrefix(ref, "data:") {
		return ""
	}
	return filepath.Base(ref)
}
