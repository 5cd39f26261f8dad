package db

import "gorm.io/gorm"

// Family 定义了家庭分组模型
// CreatedBy 记录创建者用户 ID，成员关系由 FamilyMember 维护
type Family struct {
	gorm.Model
	Name      string `gorm:"not null"`
	CreatedBy uint   `gorm:"index;not null"`
}

// FamilyMember 记录家庭与用户的多对多关联
// FamilyID + UserID 采用唯一索引，避免同一用户在进度汇总中被重复计算
type FamilyMember struct {
	gorm.Model
	FamilyID uint `gorm:"index;index:idx_family_member_unique,unique;not null"`
	UserID   uint `gorm:"index:idx_family_member_unique,unique;not null"`
}

// TableName 重写确保唯一索引作用到 family_id + user_id
func (FamilyMember) TableName() string {
	return "family_members"
}
