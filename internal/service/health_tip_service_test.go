package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/familyfit/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupHealthTipTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:tips-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := gdb.AutoMigrate(&db.HealthTip{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return gdb
}

func TestHealthTipCreateDefaults(t *testing.T) {
	gdb := setupHealthTipTestDB(t)
	svc := NewHealthTipService(gdb)

	tip, err := svc.Create(HealthTipInput{Title: "多喝水", Content: "每天至少八杯水。"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if tip.Type != "general" || tip.Icon != "lightbulb" {
		t.Fatalf("unexpected defaults: type=%s icon=%s", tip.Type, tip.Icon)
	}

	if _, err := svc.Create(HealthTipInput{Title: "", Content: "内容"}); err == nil {
		t.Fatal("expected error for missing title")
	}
}

func TestHealthTipRandom(t *testing.T) {
	gdb := setupHealthTipTestDB(t)
	svc := NewHealthTipService(gdb)

	if _, err := svc.Random(); !errors.Is(err, ErrNoHealthTips) {
		t.Fatalf("expected ErrNoHealthTips, got %v", err)
	}

	created := map[string]bool{}
	for i := 0; i < 3; i++ {
		title := fmt.Sprintf("贴士 %d", i)
		created[title] = true
		if _, err := svc.Create(HealthTipInput{Title: title, Content: "内容"}); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}

	tip, err := svc.Random()
	if err != nil {
		t.Fatalf("Random returned error: %v", err)
	}
	if !created[tip.Title] {
		t.Fatalf("random tip not among created: %s", tip.Title)
	}
}

func TestHealthTipListLimit(t *testing.T) {
	gdb := setupHealthTipTestDB(t)
	svc := NewHealthTipService(gdb)

	for i := 0; i < 7; i++ {
		if _, err := svc.Create(HealthTipInput{Title: fmt.Sprintf("贴士 %d", i), Content: "内容"}); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}

	tips, err := svc.List(3)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(tips) != 3 {
		t.Fatalf("expected 3 tips, got %d", len(tips))
	}
	// 最新的排在最前
	if tips[0].Title != "贴士 6" {
		t.Fatalf("expected newest tip first, got %s", tips[0].Title)
	}

	tips, err = svc.List(0)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(tips) != DefaultHealthTipLimit {
		t.Fatalf("expected default limit %d, got %d", DefaultHealthTipLimit, len(tips))
	}
}

func TestHealthTipRenderContentSanitizes(t *testing.T) {
	gdb := setupHealthTipTestDB(t)
	svc := NewHealthTipService(gdb)

	tip := db.HealthTip{
		Title:   "注意安全",
		Content: "**坚持锻炼**\n\n<script>alert('x')</script>",
	}

	rendered, err := svc.RenderContent(tip)
	if err != nil {
		t.Fatalf("RenderContent returned error: %v", err)
	}

	if !strings.Contains(rendered, "<strong>坚持锻炼</strong>") {
		t.Fatalf("expected markdown emphasis to render, got %s", rendered)
	}
	if strings.Contains(rendered, "<script>") {
		t.Fatalf("expected script tags to be stripped, got %s", rendered)
	}
}
