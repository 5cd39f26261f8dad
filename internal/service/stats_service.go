package service

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/familyfit/internal/db"
	"gorm.io/gorm"
)

// DefaultStatsWindowDays 为统计查询的默认时间窗口（天）
const DefaultStatsWindowDays = 7

// StatsService 负责运动统计时间序列的写入与窗口查询

type StatsService struct {
	db *gorm.DB
}

// ActivityStatInput 定义写入统计数据点时可配置字段
type ActivityStatInput struct {
	UserID       uint
	Date         time.Time
	ActivityType string
	Value        float64
}

// StatsFilter 描述窗口查询条件；Days 非正数时使用默认窗口，
// ActivityType 为空表示不过滤类型
type StatsFilter struct {
	UserID       uint
	Days         int
	ActivityType string
}

// NewStatsService 构造 StatsService
func NewStatsService(gdb *gorm.DB) *StatsService {
	return &StatsService{db: gdb}
}

// Create 写入一条统计数据点
func (s *StatsService) Create(input ActivityStatInput) (*db.ActivityStat, error) {
	if strings.TrimSpace(input.ActivityType) == "" {
		return nil, fmt.Errorf("stat activity type is required")
	}
	if math.IsNaN(input.Value) || math.IsInf(input.Value, 0) {
		return nil, fmt.Errorf("stat value must be a finite number")
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	stat := db.ActivityStat{
		UserID:       input.UserID,
		Date:         date,
		ActivityType: strings.TrimSpace(input.ActivityType),
		Value:        input.Value,
	}

	if err := s.db.Create(&stat).Error; err != nil {
		return nil, fmt.Errorf("create activity stat: %w", err)
	}
	return &stat, nil
}

// ListByUser 返回用户最近 Days 天内的统计数据点，按写入顺序排列
func (s *StatsService) ListByUser(filter StatsFilter, now time.Time) ([]db.ActivityStat, error) {
	days := filter.Days
	if days <= 0 {
		days = DefaultStatsWindowDays
	}
	cutoff := now.AddDate(0, 0, -days)

	query := s.db.Where("user_id = ?", filter.UserID).
		Where("date >= ?", cutoff)

	if activityType := strings.TrimSpace(filter.ActivityType); activityType != "" {
		query = query.Where("activity_type = ?", activityType)
	}

	var stats []db.ActivityStat
	if err := query.Order("id ASC").Find(&stats).Error; err != nil {
		return nil, fmt.Errorf("list activity stats: %w", err)
	}
	return stats, nil
}
