package db

import (
	"path/filepath"
	"testing"
)

func TestInitMigratesAndSeedsHealthTips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "familyfit-test.db")

	if err := Init(path); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, err := DB.DB()
		if err == nil {
			sqlDB.Close()
		}
		DB = nil
	})

	var count int64
	if err := DB.Model(&HealthTip{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count health tips: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 seeded health tips, got %d", count)
	}

	// 重复初始化不应重复播种
	if err := Init(path); err != nil {
		t.Fatalf("second Init returned error: %v", err)
	}
	if err := DB.Model(&HealthTip{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count health tips: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected seeding to be idempotent, got %d tips", count)
	}
}

func TestEnsureAdmin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "familyfit-admin.db")

	if err := Init(path); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, err := DB.DB()
		if err == nil {
			sqlDB.Close()
		}
		DB = nil
	})

	// 空凭据直接跳过
	if err := EnsureAdmin("", ""); err != nil {
		t.Fatalf("EnsureAdmin with empty credentials returned error: %v", err)
	}

	if err := EnsureAdmin("root", "toor"); err != nil {
		t.Fatalf("EnsureAdmin returned error: %v", err)
	}

	var admin User
	if err := DB.Where("username = ?", "root").First(&admin).Error; err != nil {
		t.Fatalf("failed to find admin: %v", err)
	}
	if admin.Role != RoleAdmin {
		t.Fatalf("expected admin role, got %s", admin.Role)
	}
	if admin.Password == "toor" {
		t.Fatal("expected password to be hashed")
	}

	// 再次调用不应重复创建
	if err := EnsureAdmin("root", "other"); err != nil {
		t.Fatalf("second EnsureAdmin returned error: %v", err)
	}
	var count int64
	if err := DB.Model(&User{}).Where("username = ?", "root").Count(&count).Error; err != nil {
		t.Fatalf("failed to count admins: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single admin row, got %d", count)
	}
}
