package db

import (
	"time"

	"gorm.io/gorm"
)

// ActivityStat 记录一条运动统计时间序列数据点
// Value 的含义由 ActivityType 决定，例如步数、卡路里或分钟数
type ActivityStat struct {
	gorm.Model
	UserID       uint      `gorm:"index;not null"`
	Date         time.Time `gorm:"index;not null"`
	ActivityType string    `gorm:"not null"`
	Value        float64   `gorm:"not null"`
}
