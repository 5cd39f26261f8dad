package handler

import (
	"net/http"
	"time"

	"github.com/familyfit/internal/db"
	"github.com/familyfit/internal/service"
	"github.com/gin-gonic/gin"
)

type activityStatInputPayload struct {
	UserID       uint       `json:"userId"`
	Date         *time.Time `json:"date"`
	ActivityType string     `json:"activityType"`
	Value        float64    `json:"value"`
}

func activityStatToPayload(stat db.ActivityStat) gin.H {
	return gin.H{
		"id":           stat.ID,
		"userId":       stat.UserID,
		"date":         stat.Date,
		"activityType": stat.ActivityType,
		"value":        stat.Value,
	}
}

// CreateActivityStat 写入一条运动统计数据点
func (a *API) CreateActivityStat(c *gin.Context) {
	var payload activityStatInputPayload
	if !bindJSON(c, &payload, "无效的统计数据") {
		return
	}

	input := service.ActivityStatInput{
		UserID:       payload.UserID,
		ActivityType: payload.ActivityType,
		Value:        payload.Value,
	}
	if payload.Date != nil {
		input.Date = *payload.Date
	}

	stat, err := a.stats.Create(input)
	if err != nil {
		respondError(c, http.StatusBadRequest, "记录统计数据失败")
		return
	}

	c.JSON(http.StatusCreated, activityStatToPayload(*stat))
}

// ListUserActivityStats 返回用户最近若干天的统计数据，?days= 与 ?type= 可选
func (a *API) ListUserActivityStats(c *gin.Context) {
	userID, err := parseUintParam(c, "userId")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的用户ID")
		return
	}

	filter := service.StatsFilter{
		UserID:       userID,
		Days:         parseIntQuery(c, "days", service.DefaultStatsWindowDays),
		ActivityType: c.Query("type"),
	}

	stats, err := a.stats.ListByUser(filter, time.Now())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取统计数据失败")
		return
	}

	items := make([]gin.H, 0, len(stats))
	for _, stat := range stats {
		items = append(items, activityStatToPayload(stat))
	}
	c.JSON(http.StatusOK, items)
}
