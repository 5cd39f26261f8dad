package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/familyfit/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrFamilyNotFound 在指定家庭不存在时返回
	ErrFamilyNotFound = errors.New("family not found")
	// ErrAlreadyFamilyMember 在重复添加同一家庭成员时返回
	ErrAlreadyFamilyMember = errors.New("user is already a family member")
)

// FamilyService 负责家庭与成员关系的维护
// 成员解析始终按关联记录的插入顺序返回，进度汇总依赖这一顺序

type FamilyService struct {
	db *gorm.DB
}

// FamilyInput 定义创建家庭时可配置字段
type FamilyInput struct {
	Name      string
	CreatedBy uint
}

// NewFamilyService 构造 FamilyService
func NewFamilyService(gdb *gorm.DB) *FamilyService {
	return &FamilyService{db: gdb}
}

// Create 创建家庭
func (s *FamilyService) Create(input FamilyInput) (*db.Family, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("family name is required")
	}

	var creator db.User
	if err := s.db.First(&creator, input.CreatedBy).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find creator: %w", err)
	}

	family := db.Family{Name: name, CreatedBy: creator.ID}
	if err := s.db.Create(&family).Error; err != nil {
		return nil, fmt.Errorf("create family: %w", err)
	}
	return &family, nil
}

// Get 根据 ID 获取家庭
func (s *FamilyService) Get(id uint) (*db.Family, error) {
	var family db.Family
	if err := s.db.First(&family, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFamilyNotFound
		}
		return nil, fmt.Errorf("get family: %w", err)
	}
	return &family, nil
}

// ListByUser 返回用户创建或加入的家庭，结果按家庭 ID 去重
func (s *FamilyService) ListByUser(userID uint) ([]db.Family, error) {
	var families []db.Family
	if err := s.db.
		Distinct("families.*").
		Joins("LEFT JOIN family_members ON family_members.family_id = families.id AND family_members.deleted_at IS NULL").
		Where("families.created_by = ? OR family_members.user_id = ?", userID, userID).
		Order("families.id ASC").
		Find(&families).Error; err != nil {
		return nil, fmt.Errorf("list families by user: %w", err)
	}
	return families, nil
}

// AddMember 将用户加入家庭，重复加入返回 ErrAlreadyFamilyMember
func (s *FamilyService) AddMember(familyID, userID uint) (*db.FamilyMember, error) {
	if _, err := s.Get(familyID); err != nil {
		return nil, err
	}

	var user db.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	var existing db.FamilyMember
	err := s.db.Where("family_id = ? AND user_id = ?", familyID, userID).First(&existing).Error
	if err == nil {
		return nil, ErrAlreadyFamilyMember
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check membership: %w", err)
	}

	member := db.FamilyMember{FamilyID: familyID, UserID: userID}
	if err := s.db.Create(&member).Error; err != nil {
		return nil, fmt.Errorf("add family member: %w", err)
	}
	return &member, nil
}

// Members 按加入顺序返回家庭成员的用户记录
func (s *FamilyService) Members(familyID uint) ([]db.User, error) {
	var users []db.User
	if err := s.db.
		Joins("JOIN family_members ON family_members.user_id = users.id AND family_members.deleted_at IS NULL").
		Where("family_members.family_id = ?", familyID).
		Order("family_members.id ASC").
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list family members: %w", err)
	}
	return users, nil
}
