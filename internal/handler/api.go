package handler

import (
	"github.com/familyfit/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db         *gorm.DB
	users      *service.UserService
	families   *service.FamilyService
	activities *service.ActivityService
	goals      *service.GoalService
	progress   *service.ProgressService
	schedule   *service.ScheduleService
	tips       *service.HealthTipService
	stats      *service.StatsService
	uploadDir  string
	uploadURL  string
}

// NewAPI constructs a handler set with shared services.
func NewAPI(db *gorm.DB, uploadDir, uploadURL string) *API {
	return &API{
		db:         db,
		users:      service.NewUserService(db),
		families:   service.NewFamilyService(db),
		activities: service.NewActivityService(db),
		goals:      service.NewGoalService(db),
		progress:   service.NewProgressService(db),
		schedule:   service.NewScheduleService(db),
		tips:       service.NewHealthTipService(db),
		stats:      service.NewStatsService(db),
		uploadDir:  uploadDir,
		uploadURL:  uploadURL,
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}
