/*
 * @module service/models/mall_config
 * @description 商城配置模型，存储首页横幅、兑换规则与管理密钥的单例记录
 * @architecture 数据模型层
 * @documentReference dev_docs/requirements.md
 * @stateFlow 首次访问懒创建 -> 读取展示 -> 管理端部分字段更新
 * @rules 每个作用域有且仅有一条配置记录，AdminSecret 不得出现在公开读取结果中
 * @dependencies gorm.io/gorm
 * @refs dev_docs/model.md
 */

package models

import (
	"time"
)

// 配置默认值
const (
	DefaultAdminSecret = "123456"
	DefaultBannerImage = "/static/default-banner.png"
	DefaultBannerTitle = "积分商城"
)

// MallConfig 商城配置模型，主键即作用域标识
type MallConfig struct {
	ID          string           `gorm:"type:varchar(100);primaryKey" json:"-"`
	BannerImage string           `gorm:"type:text" json:"bannerImage"`
	BannerTitle string           `gorm:"type:varchar(200)" json:"bannerTitle"`
	RuleList    JSONBStringArray `gorm:"type:jsonb" json:"ruleList"`
	AdminSecret string           `gorm:"type:varchar(100);not null" json:"adminSecret"`
	CreatedAt   time.Time        `json:"-"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// TableName 指定表名
func (MallConfig) TableName() string {
	return "mall_configs"
}

// MallConfigView 公开读取视图，结构上不含管理密钥字段
type MallConfigView struct {
	BannerImage string    `json:"bannerImage"`
	BannerTitle string    `json:"bannerTitle"`
	RuleList    []string  `json:"ruleList"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PublicView 转换为公开视图
func (c *MallConfig) PublicView() *MallConfigView {
	rules := c.RuleList
	if rules == nil {
		rules = JSONBStringArray{}
	}
	return &MallConfigView{
		BannerImage: c.BannerImage,
		BannerTitle: c.BannerTitle,
		RuleList:    rules,
		UpdatedAt:   c.UpdatedAt,
	}
}

// MallConfigPatch 部分字段更新请求
// 指针字段区分"未提供"与"提供了零值"，未提供的字段保持原值
type MallConfigPatch struct {
	BannerImage *string   `json:"bannerImage"`
	BannerTitle *string   `json:"bannerTitle"`
	RuleList    *[]string `json:"ruleList"`
	NewSecret   *string   `json:"newSecret"`
}
