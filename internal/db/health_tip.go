package db

import "gorm.io/gorm"

// HealthTip 定义了健康贴士模型
// Content 为 Markdown 文本，展示时由服务层渲染并净化
type HealthTip struct {
	gorm.Model
	Title   string `gorm:"not null"`
	Content string `gorm:"not null"`
	Type    string `gorm:"not null;default:general"`
	Icon    string `gorm:"not null;default:lightbulb"`
}
