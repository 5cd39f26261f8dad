package db

import (
	"time"

	"gorm.io/gorm"
)

// Goal 定义了用户目标模型
// TargetValue 必须为正数（创建时校验），CurrentValue 通过部分更新推进
// DueDate 为空表示长期目标，始终计入进度
type Goal struct {
	gorm.Model
	Name         string `gorm:"not null"`
	Type         string `gorm:"not null"`
	TargetValue  int    `gorm:"not null"`
	CurrentValue int    `gorm:"not null;default:0"`
	Unit         string `gorm:"not null"`
	Completed    bool   `gorm:"not null;default:false"`
	UserID       uint   `gorm:"index;not null"`
	DueDate      *time.Time
}
