package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/familyfit/internal/db"
	"github.com/familyfit/internal/service"
	"github.com/gin-gonic/gin"
)

type scheduleEventInputPayload struct {
	Title     string    `json:"title"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Type      string    `json:"type"`
	Color     string    `json:"color"`
	CreatedBy uint      `json:"createdBy"`
}

type eventAssigneeInputPayload struct {
	EventID uint `json:"eventId"`
	UserID  uint `json:"userId"`
}

func scheduleEventToPayload(event db.ScheduleEvent) gin.H {
	return gin.H{
		"id":        event.ID,
		"title":     event.Title,
		"startTime": event.StartTime,
		"endTime":   event.EndTime,
		"type":      event.Type,
		"color":     event.Color,
		"createdBy": event.CreatedBy,
	}
}

// CreateScheduleEvent 创建日程事件
func (a *API) CreateScheduleEvent(c *gin.Context) {
	var payload scheduleEventInputPayload
	if !bindJSON(c, &payload, "无效的日程数据") {
		return
	}

	event, err := a.schedule.CreateEvent(service.ScheduleEventInput{
		Title:     payload.Title,
		StartTime: payload.StartTime,
		EndTime:   payload.EndTime,
		Type:      payload.Type,
		Color:     payload.Color,
		CreatedBy: payload.CreatedBy,
	})
	if err != nil {
		if errors.Is(err, service.ErrEventInvalidTimeRange) {
			respondError(c, http.StatusBadRequest, "结束时间必须晚于开始时间")
			return
		}
		respondError(c, http.StatusBadRequest, "创建日程失败")
		return
	}

	c.JSON(http.StatusCreated, scheduleEventToPayload(*event))
}

// ListScheduleEvents 返回指定日期的全部日程事件，?date= 缺省为当天
func (a *API) ListScheduleEvents(c *gin.Context) {
	date, err := parseDateQuery(c, "date")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的日期格式")
		return
	}

	events, err := a.schedule.EventsByDate(date)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取日程列表失败")
		return
	}

	items := make([]gin.H, 0, len(events))
	for _, event := range events {
		items = append(items, scheduleEventToPayload(event))
	}
	c.JSON(http.StatusOK, items)
}

// AssignEventToUser 将用户指派到日程事件
func (a *API) AssignEventToUser(c *gin.Context) {
	var payload eventAssigneeInputPayload
	if !bindJSON(c, &payload, "无效的指派数据") {
		return
	}

	assignee, err := a.schedule.AssignUser(payload.EventID, payload.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			respondError(c, http.StatusNotFound, "日程不存在")
		case errors.Is(err, service.ErrUserNotFound):
			respondError(c, http.StatusNotFound, "用户不存在")
		case errors.Is(err, service.ErrAlreadyAssigned):
			respondError(c, http.StatusConflict, "该用户已被指派")
		default:
			respondError(c, http.StatusInternalServerError, "指派日程失败")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      assignee.ID,
		"eventId": assignee.EventID,
		"userId":  assignee.UserID,
	})
}

// ListEventAssignees 返回事件的参与用户
func (a *API) ListEventAssignees(c *gin.Context) {
	eventID, err := parseUintParam(c, "eventId")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的日程ID")
		return
	}

	assignees, err := a.schedule.Assignees(eventID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取参与者失败")
		return
	}

	items := make([]gin.H, 0, len(assignees))
	for _, assignee := range assignees {
		items = append(items, userToPayload(assignee))
	}
	c.JSON(http.StatusOK, items)
}

// GetUserSchedule 返回用户在指定日期被指派的日程，?date= 缺省为当天
func (a *API) GetUserSchedule(c *gin.Context) {
	userID, err := parseUintParam(c, "userId")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的用户ID")
		return
	}

	date, err := parseDateQuery(c, "date")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的日期格式")
		return
	}

	events, err := a.schedule.EventsForUser(userID, date)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取用户日程失败")
		return
	}

	items := make([]gin.H, 0, len(events))
	for _, event := range events {
		items = append(items, scheduleEventToPayload(event))
	}
	c.JSON(http.StatusOK, items)
}
