package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/familyfit/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupProgressTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:progress-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := gdb.AutoMigrate(&db.User{}, &db.Family{}, &db.FamilyMember{}, &db.Goal{}); err != nil {
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

func createProgressTestUser(t *testing.T, gdb *gorm.DB, username string) *db.User {
	t.Helper()

	user := db.User{Username: username, Password: "hashed", Name: username, Role: db.RoleMember}
	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return &user
}

func TestUserProgressNoGoals(t *testing.T) {
	gdb := setupProgressTestDB(t)
	svc := NewProgressService(gdb)
	user := createProgressTestUser(t, gdb, "papa")

	progress, err := svc.UserProgress(user.ID, time.Now())
	if err != nil {
		t.Fatalf("UserProgress returned error: %v", err)
	}
	if progress != 0 {
		t.Fatalf("expected progress 0 for user without goals, got %d", progress)
	}
}

func TestUserProgressAveragesActiveGoals(t *testing.T) {
	gdb := setupProgressTestDB(t)
	svc := NewProgressService(gdb)
	user := createProgressTestUser(t, gdb, "mama")

	goals := []db.Goal{
		{Name: "每日步数", Type: "daily", TargetValue: 100, CurrentValue: 50, Unit: "steps", UserID: user.ID},
		{Name: "运动分钟", Type: "daily", TargetValue: 20, CurrentValue: 20, Unit: "minutes", UserID: user.ID},
	}
	if err := gdb.Create(&goals).Error; err != nil {
		t.Fatalf("failed to create goals: %v", err)
	}

	// (0.5 + 1.0) / 2 = 0.75
	progress, err := svc.UserProgress(user.ID, time.Now())
	if err != nil {
		t.Fatalf("UserProgress returned error: %v", err)
	}
	if progress != 75 {
		t.Fatalf("expected progress 75, got %d", progress)
	}
}

func TestUserProgressClampsOverachievement(t *testing.T) {
	gdb := setupProgressTestDB(t)
	svc := NewProgressService(gdb)
	user := createProgressTestUser(t, gdb, "kiddo")

	goal := db.Goal{Name: "跳绳", Type: "daily", TargetValue: 100, CurrentValue: 250, Unit: "count", UserID: user.ID}
	if err := gdb.Create(&goal).Error; err != nil {
		t.Fatalf("failed to create goal: %v", err)
	}

	progress, err := svc.UserProgress(user.ID, time.Now())
	if err != nil {
		t.Fatalf("UserProgress returned error: %v", err)
	}
	if progress != 100 {
		t.Fatalf("expected progress clamped to 100, got %d", progress)
	}
}

func TestUserProgressExcludesExpiredGoals(t *testing.T) {
	gdb := setupProgressTestDB(t)
	svc := NewProgressService(gdb)
	user := createProgressTestUser(t, gdb, "grandpa")

	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)
	goal := db.Goal{Name: "过期目标", Type: "weekly", TargetValue: 10, CurrentValue: 0, Unit: "km", UserID: user.ID, DueDate: &yesterday}
	if err := gdb.Create(&goal).Error; err != nil {
		t.Fatalf("failed to create goal: %v", err)
	}

	progress, err := svc.UserProgress(user.ID, now)
	if err != nil {
		t.Fatalf("UserProgress returned error: %v", err)
	}
	if progress != 0 {
		t.Fatalf("expected progress 0 when the only goal is expired, got %d", progress)
	}
}

func TestUserProgressIncludesGoalsDueToday(t *testing.T) {
	gdb := setupProgressTestDB(t)
	svc := NewProgressService(gdb)
	user := createProgressTestUser(t, gdb, "auntie")

	now := time.Now()
	dueToday := startOfDay(now)
	goal := db.Goal{Name: "今日到期", Type: "daily", TargetValue: 10, CurrentValue: 10, Unit: "km", UserID: user.ID, DueDate: &dueToday}
	if err := gdb.Create(&goal).Error; err != nil {
		t.Fatalf("failed to create goal: %v", err)
	}

	progress, err := svc.UserProgress(user.ID, now)
	if err != nil {
		t.Fatalf("UserProgress returned error: %v", err)
	}
	if progress != 100 {
		t.Fatalf("expected due-today goal to stay active, got %d", progress)
	}
}

func TestUserProgressLegacyZeroTargetCountsAsDone(t *testing.T) {
	gdb := setupProgressTestDB(t)
	svc := NewProgressService(gdb)
	user := createProgressTestUser(t, gdb, "uncle")

	// 直接写库绕过服务层校验，模拟历史脏数据
	goals := []db.Goal{
		{Name: "脏数据", Type: "daily", TargetValue: 0, CurrentValue: 0, Unit: "steps", UserID: user.ID},
		{Name: "正常目标", Type: "daily", TargetValue: 100, CurrentValue: 0, Unit: "steps", UserID: user.ID},
	}
	if err := gdb.Create(&goals).Error; err != nil {
		t.Fatalf("failed to create goals: %v", err)
	}

	// (1.0 + 0.0) / 2 = 0.5
	progress, err := svc.UserProgress(user.ID, time.Now())
	if err != nil {
		t.Fatalf("UserProgress returned error: %v", err)
	}
	if progress != 50 {
		t.Fatalf("expected zero-target goal to count as done, got %d", progress)
	}
}

func TestUserProgressMonotonicInCurrentValue(t *testing.T) {
	gdb := setupProgressTestDB(t)
	svc := NewProgressService(gdb)
	user := createProgressTestUser(t, gdb, "runner")

	goal := db.Goal{Name: "步数", Type: "daily", TargetValue: 100, CurrentValue: 0, Unit: "steps", UserID: user.ID}
	if err := gdb.Create(&goal).Error; err != nil {
		t.Fatalf("failed to create goal: %v", err)
	}

	previous := -1
	for _, current := range []int{0, 25, 50, 99, 100, 150} {
		if err := gdb.Model(&db.Goal{}).Where("id = ?", goal.ID).Update("current_value", current).Error; err != nil {
			t.Fatalf("failed to update goal: %v", err)
		}

		progress, err := svc.UserProgress(user.ID, time.Now())
		if err != nil {
			t.Fatalf("UserProgress returned error: %v", err)
		}
		if progress < previous {
			t.Fatalf("progress decreased from %d to %d at current=%d", previous, progress, current)
		}
		previous = progress
	}
}

func TestUserProgressIdempotent(t *testing.T) {
	gdb := setupProgressTestDB(t)
	svc := NewProgressService(gdb)
	user := createProgressTestUser(t, gdb, "repeat")

	goal := db.Goal{Name: "骑行", Type: "weekly", TargetValue: 30, CurrentValue: 10, Unit: "km", UserID: user.ID}
	if err := gdb.Create(&goal).Error; err != nil {
		t.Fatalf("failed to create goal: %v", err)
	}

	now := time.Now()
	first, err := svc.UserProgress(user.ID, now)
	if err != nil {
		t.Fatalf("UserProgress returned error: %v", err)
	}
	second, err := svc.UserProgress(user.ID, now)
	if err != nil {
		t.Fatalf("UserProgress returned error: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical results without writes, got %d then %d", first, second)
	}
}

func TestFamilyProgressMemberOrderAndScores(t *testing.T) {
	gdb := setupProgressTestDB(t)
	svc := NewProgressService(gdb)

	alice := createProgressTestUser(t, gdb, "alice")
	bob := createProgressTestUser(t, gdb, "bob")

	family := db.Family{Name: "测试家庭", CreatedBy: alice.ID}
	if err := gdb.Create(&family).Error; err != nil {
		t.Fatalf("failed to create family: %v", err)
	}

	// alice 先加入，bob 后加入
	members := []db.FamilyMember{
		{FamilyID: family.ID, UserID: alice.ID},
		{FamilyID: family.ID, UserID: bob.ID},
	}
	if err := gdb.Create(&members).Error; err != nil {
		t.Fatalf("failed to create members: %v", err)
	}

	goals := []db.Goal{
		{Name: "步数", Type: "daily", TargetValue: 100, CurrentValue: 50, Unit: "steps", UserID: alice.ID},
		{Name: "分钟", Type: "daily", TargetValue: 20, CurrentValue: 20, Unit: "minutes", UserID: alice.ID},
	}
	if err := gdb.Create(&goals).Error; err != nil {
		t.Fatalf("failed to create goals: %v", err)
	}

	results, err := svc.FamilyProgress(family.ID, time.Now())
	if err != nil {
		t.Fatalf("FamilyProgress returned error: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 member results, got %d", len(results))
	}
	if results[0].UserID != alice.ID || results[0].Progress != 75 {
		t.Fatalf("unexpected first member result: %+v", results[0])
	}
	if results[1].UserID != bob.ID || results[1].Progress != 0 {
		t.Fatalf("unexpected second member result: %+v", results[1])
	}
}

func TestFamilyProgressEmptyFamily(t *testing.T) {
	gdb := setupProgressTestDB(t)
	svc := NewProgressService(gdb)

	creator := createProgressTestUser(t, gdb, "solo")
	family := db.Family{Name: "空家庭", CreatedBy: creator.ID}
	if err := gdb.Create(&family).Error; err != nil {
		t.Fatalf("failed to create family: %v", err)
	}

	results, err := svc.FamilyProgress(family.ID, time.Now())
	if err != nil {
		t.Fatalf("FamilyProgress returned error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected empty result for family without members, got %d entries", len(results))
	}
}

func TestFamilyProgressUnknownFamily(t *testing.T) {
	gdb := setupProgressTestDB(t)
	svc := NewProgressService(gdb)

	results, err := svc.FamilyProgress(9999, time.Now())
	if err != nil {
		t.Fatalf("FamilyProgress returned error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected empty result for unknown family, got %d entries", len(results))
	}
}
