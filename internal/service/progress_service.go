package service

import (
	"fmt"
	"math"
	"time"

	"github.com/familyfit/internal/db"
	"gorm.io/gorm"
)

// ProgressService 负责进度得分的派生计算
// 所有方法均为只读，不产生任何副作用

type ProgressService struct {
	db *gorm.DB
}

// MemberProgress 表示家庭进度视图中单个成员的得分
type MemberProgress struct {
	UserID   uint `json:"userId"`
	Progress int  `json:"progress"`
}

// NewProgressService 构造 ProgressService
func NewProgressService(gdb *gorm.DB) *ProgressService {
	return &ProgressService{db: gdb}
}

// UserProgress 计算用户当日的进度得分，取值范围 [0, 100]。
// 活跃目标集合为：无截止日期、或截止日期不早于 now 所在日零点的目标。
// 集合为空时得分为 0；每个目标的完成比例为 min(current/target, 1)，
// 得分为全部比例均值乘以 100 后四舍五入。
func (s *ProgressService) UserProgress(userID uint, now time.Time) (int, error) {
	today := startOfDay(now)

	var goals []db.Goal
	if err := s.db.Where("user_id = ?", userID).
		Where("due_date IS NULL OR due_date >= ?", today).
		Order("id ASC").
		Find(&goals).Error; err != nil {
		return 0, fmt.Errorf("list active goals: %w", err)
	}

	if len(goals) == 0 {
		return 0, nil
	}

	var total float64
	for _, goal := range goals {
		total += goalRatio(goal)
	}

	return int(math.Round(total / float64(len(goals)) * 100)), nil
}

// FamilyProgress 按成员加入顺序返回每个家庭成员的进度得分。
// 家庭没有成员时返回空列表。
func (s *ProgressService) FamilyProgress(familyID uint, now time.Time) ([]MemberProgress, error) {
	var memberIDs []uint
	if err := s.db.Model(&db.FamilyMember{}).
		Where("family_id = ?", familyID).
		Order("id ASC").
		Pluck("user_id", &memberIDs).Error; err != nil {
		return nil, fmt.Errorf("list family member ids: %w", err)
	}

	results := make([]MemberProgress, 0, len(memberIDs))
	for _, userID := range memberIDs {
		progress, err := s.UserProgress(userID, now)
		if err != nil {
			return nil, err
		}
		results = append(results, MemberProgress{UserID: userID, Progress: progress})
	}

	return results, nil
}

// goalRatio 返回单个目标的完成比例，始终落在 [0, 1]。
// TargetValue 在创建时已被校验为正数；历史数据中的非正目标值按已达成处理。
func goalRatio(goal db.Goal) float64 {
	if goal.TargetValue <= 0 {
		return 1
	}

	ratio := float64(goal.CurrentValue) / float64(goal.TargetValue)
	if ratio > 1 {
		return 1
	}
	if ratio < 0 {
		return 0
	}
	return ratio
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
