package db

import (
	"time"

	"gorm.io/gorm"
)

// ScheduleEvent 定义了家庭日程中的一个事件
// Color 为前端使用的配色标记，CreatedBy 记录创建者用户 ID
type ScheduleEvent struct {
	gorm.Model
	Title     string    `gorm:"not null"`
	StartTime time.Time `gorm:"index;not null"`
	EndTime   time.Time `gorm:"not null"`
	Type      string    `gorm:"not null;default:task"`
	Color     string    `gorm:"not null;default:primary"`
	CreatedBy uint      `gorm:"index;not null"`
}

// EventAssignee 记录事件与参与用户的多对多关联
// EventID + UserID 采用唯一索引，同一用户不会被重复指派
type EventAssignee struct {
	gorm.Model
	EventID uint `gorm:"index;index:idx_event_assignee_unique,unique;not null"`
	UserID  uint `gorm:"index:idx_event_assignee_unique,unique;not null"`
}

// TableName 重写确保唯一索引作用到 event_id + user_id
func (EventAssignee) TableName() string {
	return "event_assignees"
}
