package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/familyfit/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrGoalNotFound 在指定目标不存在时返回
	ErrGoalNotFound = errors.New("goal not found")
	// ErrGoalInvalidTarget 在目标值非正数时返回
	ErrGoalInvalidTarget = errors.New("goal target value must be positive")
)

// GoalService 负责用户目标的维护
// TargetValue 在创建时强制为正数，进度计算因此不会出现除零

type GoalService struct {
	db *gorm.DB
}

// GoalInput 定义创建目标时可配置字段
type GoalInput struct {
	Name         string
	Type         string
	TargetValue  int
	CurrentValue int
	Unit         string
	UserID       uint
	DueDate      *time.Time
}

// GoalPatch 定义部分更新时可修改字段，nil 表示保持原值
type GoalPatch struct {
	Name         *string
	CurrentValue *int
	TargetValue  *int
	Completed    *bool
	DueDate      *time.Time
}

// NewGoalService 构造 GoalService
func NewGoalService(gdb *gorm.DB) *GoalService {
	return &GoalService{db: gdb}
}

// Create 创建目标
func (s *GoalService) Create(input GoalInput) (*db.Goal, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("goal name is required")
	}
	if strings.TrimSpace(input.Unit) == "" {
		return nil, fmt.Errorf("goal unit is required")
	}
	if input.TargetValue <= 0 {
		return nil, ErrGoalInvalidTarget
	}
	if input.CurrentValue < 0 {
		return nil, fmt.Errorf("goal current value must not be negative")
	}

	goalType := strings.TrimSpace(input.Type)
	if goalType == "" {
		goalType = "daily"
	}

	goal := db.Goal{
		Name:         strings.TrimSpace(input.Name),
		Type:         goalType,
		TargetValue:  input.TargetValue,
		CurrentValue: input.CurrentValue,
		Unit:         strings.TrimSpace(input.Unit),
		UserID:       input.UserID,
		DueDate:      input.DueDate,
	}

	if err := s.db.Create(&goal).Error; err != nil {
		return nil, fmt.Errorf("create goal: %w", err)
	}
	return &goal, nil
}

// ListByUser 返回用户全部目标
func (s *GoalService) ListByUser(userID uint) ([]db.Goal, error) {
	var goals []db.Goal
	if err := s.db.Where("user_id = ?", userID).
		Order("id ASC").
		Find(&goals).Error; err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return goals, nil
}

// Patch 在事务内执行读取-修改-写入，避免并发更新互相覆盖
func (s *GoalService) Patch(id uint, patch GoalPatch) (*db.Goal, error) {
	var goal db.Goal

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&goal, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGoalNotFound
			}
			return fmt.Errorf("find goal: %w", err)
		}

		if patch.Name != nil {
			name := strings.TrimSpace(*patch.Name)
			if name == "" {
				return fmt.Errorf("goal name is required")
			}
			goal.Name = name
		}
		if patch.TargetValue != nil {
			if *patch.TargetValue <= 0 {
				return ErrGoalInvalidTarget
			}
			goal.TargetValue = *patch.TargetValue
		}
		if patch.CurrentValue != nil {
			if *patch.CurrentValue < 0 {
				return fmt.Errorf("goal current value must not be negative")
			}
			goal.CurrentValue = *patch.CurrentValue
		}
		if patch.Completed != nil {
			goal.Completed = *patch.Completed
		}
		if patch.DueDate != nil {
			goal.DueDate = patch.DueDate
		}

		if err := tx.Save(&goal).Error; err != nil {
			return fmt.Errorf("update goal: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &goal, nil
}
