package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/familyfit/internal/db"
	"gorm.io/gorm"
)

// DefaultRecentActivityLimit 为最近运动查询的默认条数
const DefaultRecentActivityLimit = 5

// ErrActivityInvalidDuration 在运动时长非正数时返回
var ErrActivityInvalidDuration = errors.New("activity duration must be positive")

// ActivityService 负责运动日志的写入与查询
// 日志创建后不可修改，最近列表按日期倒序、同日期按插入顺序返回

type ActivityService struct {
	db *gorm.DB
}

// ActivityInput 定义记录运动时可配置字段
type ActivityInput struct {
	Name     string
	Type     string
	Icon     string
	Duration int
	Steps    *int
	Date     time.Time
	UserID   uint
}

// NewActivityService 构造 ActivityService
func NewActivityService(gdb *gorm.DB) *ActivityService {
	return &ActivityService{db: gdb}
}

// Create 记录一次运动
func (s *ActivityService) Create(input ActivityInput) (*db.Activity, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("activity name is required")
	}
	if strings.TrimSpace(input.Type) == "" {
		return nil, fmt.Errorf("activity type is required")
	}
	if input.Duration <= 0 {
		return nil, ErrActivityInvalidDuration
	}

	icon := strings.TrimSpace(input.Icon)
	if icon == "" {
		icon = "directions_run"
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	activity := db.Activity{
		Name:     strings.TrimSpace(input.Name),
		Type:     strings.TrimSpace(input.Type),
		Icon:     icon,
		Duration: input.Duration,
		Steps:    input.Steps,
		Date:     date,
		UserID:   input.UserID,
	}

	if err := s.db.Create(&activity).Error; err != nil {
		return nil, fmt.Errorf("create activity: %w", err)
	}
	return &activity, nil
}

// ListByUser 返回用户全部运动日志
func (s *ActivityService) ListByUser(userID uint) ([]db.Activity, error) {
	var activities []db.Activity
	if err := s.db.Where("user_id = ?", userID).
		Order("id ASC").
		Find(&activities).Error; err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return activities, nil
}

// RecentByUser 返回用户最近的 limit 条运动日志
// 日期相同的记录保持插入顺序，limit 非正数时使用默认值
func (s *ActivityService) RecentByUser(userID uint, limit int) ([]db.Activity, error) {
	if limit <= 0 {
		limit = DefaultRecentActivityLimit
	}

	var activities []db.Activity
	if err := s.db.Where("user_id = ?", userID).
		Order("date DESC, id ASC").
		Limit(limit).
		Find(&activities).Error; err != nil {
		return nil, fmt.Errorf("list recent activities: %w", err)
	}
	return activities, nil
}
