/*
 * @module service/image/storage
 * @description 上传图片存储，支持磁盘文件与内联编码两种存储模式
 * @architecture 工具层 - 存储适配
 * @documentReference dev_docs/requirements.md
 * @stateFlow 接收字节 -> 校验大小与类型 -> 落盘或内联编码 -> 返回图片表示
 * @rules 上传大小上限5MB，仅接受image/*类型，文件名使用uuid避免冲突
 * @dependencies github.com/google/uuid, net/http
 * @refs api/controllers/upload_controller.go, service/cleanup/file_cleanup_service.go
 */

package image

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// 存储模式
const (
	ModeDisk   = "disk"
	ModeInline = "inline"
)

// MaxUploadSize 上传大小上限
const MaxUploadSize = 5 << 20

// ErrInvalidImage 上传内容不是受支持的图片
var ErrInvalidImage = errors.New("上传内容不是受支持的图片类型")

// ErrImageTooLarge 上传内容超过大小上限
var ErrImageTooLarge = errors.New("上传图片超过5MB大小限制")

var extByType = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Store 上传图片存储
type Store struct {
	mode    string
	dir     string
	baseURL string
}

// NewStore 创建图片存储实例
// mode 为 disk 时图片写入 dir 并返回 baseURL 下的引用路径，为 inline 时返回内联编码
func NewStore(mode, dir, baseURL string) (*Store, error) {
	if mode != ModeDisk && mode != ModeInline {
		return nil, fmt.Errorf("不支持的存储模式: %s", mode)
	}
	if mode == ModeDisk {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("创建上传目录失败: %w", err)
		}
	}
	return &Store{mode: mode, dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Mode 返回当前存储模式
func (s *Store) Mode() string {
	return s.mode
}

// Dir 返回磁盘模式下的上传目录
func (s *Store) Dir() string {
	return s.dir
}

// Save 保存图片字节，返回可直接写入商品或配置记录的图片表示
func (s *Store) Save(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrInvalidImage
	}
	if len(data) > MaxUploadSize {
		return "", ErrImageTooLarge
	}

	contentType := http.DetectContentType(data)
	ext, ok := extByType[contentType]
	if !ok {
		return "", ErrInvalidImage
	}

	if s.mode == ModeInline {
		return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data)), nil
	}

	name := uuid.New().String() + ext
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("写入图片文件失败: %w", err)
	}
	return s.baseURL + "/" + name, nil
}

// Remove 删除磁盘模式下的图片文件，内联模式为空操作
func (s *Store) Remove(name string) error {
	if s.mode != ModeDisk {
		return nil
	}
	return os.Remove(filepath.Join(s.dir, filepath.Base(name)))
}
