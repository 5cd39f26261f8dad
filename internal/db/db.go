package db

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DB 是一个全局的数据库连接实例
var DB *gorm.DB

// Init 初始化数据库连接并执行自动迁移。
// databasePath 为空时将回退到默认值 familyfit.db。
func Init(databasePath string) error {
	path := strings.TrimSpace(databasePath)
	if path == "" {
		path = "familyfit.db"
	}

	if err := ensureParentDir(path); err != nil {
		return err
	}

	var err error
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return err
	}

	// 自动迁移模式，为核心模型创建表
	if err = DB.AutoMigrate(
		&User{},
		&Family{},
		&FamilyMember{},
		&Activity{},
		&Goal{},
		&ScheduleEvent{},
		&EventAssignee{},
		&HealthTip{},
		&ActivityStat{},
	); err != nil {
		return err
	}

	return seedHealthTips(DB)
}

// seedHealthTips 在首次启动时写入三条示例健康贴士。
func seedHealthTips(gdb *gorm.DB) error {
	var count int64
	if err := gdb.Model(&HealthTip{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	samples := []HealthTip{
		{
			Title:   "Family Fitness Tip",
			Content: "Try a family hike this weekend! Studies show that outdoor activities improve mood and increase vitamin D levels.",
			Type:    "fitness",
			Icon:    "lightbulb",
		},
		{
			Title:   "Nutrition Tip",
			Content: "Include colorful vegetables in every meal. Different colors provide different nutrients essential for health.",
			Type:    "nutrition",
			Icon:    "restaurant",
		},
		{
			Title:   "Mental Health",
			Content: "Practice mindfulness as a family. Just 5 minutes of quiet focus can reduce stress and improve concentration.",
			Type:    "general",
			Icon:    "self_improvement",
		},
	}

	return gdb.Create(&samples).Error
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
