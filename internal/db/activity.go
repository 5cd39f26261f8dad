package db

import (
	"time"

	"gorm.io/gorm"
)

// Activity 记录一次运动日志
// Duration 单位为分钟，Steps 仅对计步类运动存在，记录创建后不可修改
type Activity struct {
	gorm.Model
	Name     string `gorm:"not null"`
	Type     string `gorm:"not null"`
	Icon     string `gorm:"not null;default:directions_run"`
	Duration int    `gorm:"not null"`
	Steps    *int
	Date     time.Time `gorm:"index;not null"`
	UserID   uint      `gorm:"index;not null"`
}
