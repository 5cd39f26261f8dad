package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/familyfit/internal/db"
	"github.com/familyfit/internal/service"
	"github.com/gin-gonic/gin"
)

type goalInputPayload struct {
	Name         string     `json:"name"`
	Type         string     `json:"type"`
	TargetValue  int        `json:"targetValue"`
	CurrentValue int        `json:"currentValue"`
	Unit         string     `json:"unit"`
	UserID       uint       `json:"userId"`
	DueDate      *time.Time `json:"dueDate"`
}

type goalPatchPayload struct {
	Name         *string    `json:"name"`
	TargetValue  *int       `json:"targetValue"`
	CurrentValue *int       `json:"currentValue"`
	Completed    *bool      `json:"completed"`
	DueDate      *time.Time `json:"dueDate"`
}

func goalToPayload(goal db.Goal) gin.H {
	return gin.H{
		"id":           goal.ID,
		"name":         goal.Name,
		"type":         goal.Type,
		"targetValue":  goal.TargetValue,
		"currentValue": goal.CurrentValue,
		"unit":         goal.Unit,
		"completed":    goal.Completed,
		"userId":       goal.UserID,
		"dueDate":      goal.DueDate,
	}
}

// CreateGoal 创建目标
func (a *API) CreateGoal(c *gin.Context) {
	var payload goalInputPayload
	if !bindJSON(c, &payload, "无效的目标数据") {
		return
	}

	goal, err := a.goals.Create(service.GoalInput{
		Name:         payload.Name,
		Type:         payload.Type,
		TargetValue:  payload.TargetValue,
		CurrentValue: payload.CurrentValue,
		Unit:         payload.Unit,
		UserID:       payload.UserID,
		DueDate:      payload.DueDate,
	})
	if err != nil {
		if errors.Is(err, service.ErrGoalInvalidTarget) {
			respondError(c, http.StatusBadRequest, "目标值必须为正数")
			return
		}
		respondError(c, http.StatusBadRequest, "创建目标失败")
		return
	}

	c.JSON(http.StatusCreated, goalToPayload(*goal))
}

// ListUserGoals 返回用户全部目标
func (a *API) ListUserGoals(c *gin.Context) {
	userID, err := parseUintParam(c, "userId")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的用户ID")
		return
	}

	goals, err := a.goals.ListByUser(userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取目标列表失败")
		return
	}

	items := make([]gin.H, 0, len(goals))
	for _, goal := range goals {
		items = append(items, goalToPayload(goal))
	}
	c.JSON(http.StatusOK, items)
}

// PatchGoal 部分更新目标，未提供的字段保持原值
func (a *API) PatchGoal(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的目标ID")
		return
	}

	var payload goalPatchPayload
	if !bindJSON(c, &payload, "无效的更新数据") {
		return
	}

	goal, err := a.goals.Patch(id, service.GoalPatch{
		Name:         payload.Name,
		TargetValue:  payload.TargetValue,
		CurrentValue: payload.CurrentValue,
		Completed:    payload.Completed,
		DueDate:      payload.DueDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGoalNotFound):
			respondError(c, http.StatusNotFound, "目标不存在")
		case errors.Is(err, service.ErrGoalInvalidTarget):
			respondError(c, http.StatusBadRequest, "目标值必须为正数")
		default:
			respondError(c, http.StatusBadRequest, "更新目标失败")
		}
		return
	}

	c.JSON(http.StatusOK, goalToPayload(*goal))
}
