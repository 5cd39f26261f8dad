package handler

import (
	"net/http"
	"time"

	"github.com/familyfit/internal/db"
	"github.com/familyfit/internal/service"
	"github.com/gin-gonic/gin"
)

type activityInputPayload struct {
	Name     string     `json:"name"`
	Type     string     `json:"type"`
	Icon     string     `json:"icon"`
	Duration int        `json:"duration"`
	Steps    *int       `json:"steps"`
	Date     *time.Time `json:"date"`
	UserID   uint       `json:"userId"`
}

func activityToPayload(activity db.Activity) gin.H {
	return gin.H{
		"id":       activity.ID,
		"name":     activity.Name,
		"type":     activity.Type,
		"icon":     activity.Icon,
		"duration": activity.Duration,
		"steps":    activity.Steps,
		"date":     activity.Date,
		"userId":   activity.UserID,
	}
}

// CreateActivity 记录一次运动
func (a *API) CreateActivity(c *gin.Context) {
	var payload activityInputPayload
	if !bindJSON(c, &payload, "无效的运动数据") {
		return
	}

	input := service.ActivityInput{
		Name:     payload.Name,
		Type:     payload.Type,
		Icon:     payload.Icon,
		Duration: payload.Duration,
		Steps:    payload.Steps,
		UserID:   payload.UserID,
	}
	if payload.Date != nil {
		input.Date = *payload.Date
	}

	activity, err := a.activities.Create(input)
	if err != nil {
		respondError(c, http.StatusBadRequest, "记录运动失败")
		return
	}

	c.JSON(http.StatusCreated, activityToPayload(*activity))
}

// ListUserActivities 返回用户全部运动日志
func (a *API) ListUserActivities(c *gin.Context) {
	userID, err := parseUintParam(c, "userId")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的用户ID")
		return
	}

	activities, err := a.activities.ListByUser(userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取运动日志失败")
		return
	}

	items := make([]gin.H, 0, len(activities))
	for _, activity := range activities {
		items = append(items, activityToPayload(activity))
	}
	c.JSON(http.StatusOK, items)
}

// RecentUserActivities 返回用户最近的运动日志，?limit= 控制条数
func (a *API) RecentUserActivities(c *gin.Context) {
	userID, err := parseUintParam(c, "userId")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的用户ID")
		return
	}

	limit := parseIntQuery(c, "limit", service.DefaultRecentActivityLimit)

	activities, err := a.activities.RecentByUser(userID, limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取最近运动失败")
		return
	}

	items := make([]gin.H, 0, len(activities))
	for _, activity := range activities {
		items = append(items, activityToPayload(activity))
	}
	c.JSON(http.StatusOK, items)
}
