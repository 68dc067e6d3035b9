/*
 * @module service/image/normalizer
 * @description 图片字段归一化，校验内联编码图片与引用路径，异常值替换为默认占位图
 * @architecture 工具层 - 纯函数
 * @documentReference dev_docs/requirements.md
 * @stateFlow 每次写入时调用，读取时作为防御性修复再次调用
 * @rules 归一化永不失败，输出要么是原值要么是默认占位图，保存操作不因图片字段非法而被拒绝
 * @dependencies encoding/base64, strings
 * @refs service/goods/service.go, service/mallconfig/service.go
 */

package image

import (
	"encoding/base64"
	"strings"
)

// 默认图片，图片字段非法时的替换值
const (
	DefaultGoodsImage  = "/static/default-goods.png"
	inlinePrefix       = "data:image/"
	inlineEncodingMark = ";base64,"
)

// Normalize 归一化图片字段
// 合法的内联编码图片与引用路径原样返回，其余一律替换为默认占位图
func Normalize(candidate string) string {
	if IsInline(candidate) || isReference(candidate) {
		return candidate
	}
	return DefaultGoodsImage
}

// IsInline 判断是否为合法的内联编码图片（data:image/...;base64,<可解码负载>）
func IsInline(s string) bool {
	if !strings.HasPrefix(s, inlinePrefix) {
		return false
	}
	idx := strings.Index(s, inlineEncodingMark)
	if idx < 0 {
		return false
	}
	payload := s[idx+len(inlineEncodingMark):]
	if payload == "" {
		return false
	}
	_, err := base64.StdEncoding.DecodeString(payload)
	return err == nil
}

// isReference 判断是否为引用路径：站内相对路径或http(s)地址
// 磁盘存储模式下上传接口返回的 /uploads/ 路径须原样保留
func isReference(s string) bool {
	return strings.HasPrefix(s, "/") ||
		strings.HasPrefix(s, "http://") ||
		strings.HasPrefix(s, "https://")
}
