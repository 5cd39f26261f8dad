package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/familyfit/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrEventNotFound 在指定日程事件不存在时返回
	ErrEventNotFound = errors.New("schedule event not found")
	// ErrEventInvalidTimeRange 在结束时间不晚于开始时间时返回
	ErrEventInvalidTimeRange = errors.New("event end time must be after start time")
	// ErrAlreadyAssigned 在重复指派同一用户时返回
	ErrAlreadyAssigned = errors.New("user is already assigned to event")
)

// ScheduleService 负责家庭日程事件与参与者的维护

type ScheduleService struct {
	db *gorm.DB
}

// ScheduleEventInput 定义创建日程事件时可配置字段
type ScheduleEventInput struct {
	Title     string
	StartTime time.Time
	EndTime   time.Time
	Type      string
	Color     string
	CreatedBy uint
}

// NewScheduleService 构造 ScheduleService
func NewScheduleService(gdb *gorm.DB) *ScheduleService {
	return &ScheduleService{db: gdb}
}

// CreateEvent 创建日程事件
func (s *ScheduleService) CreateEvent(input ScheduleEventInput) (*db.ScheduleEvent, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("event title is required")
	}
	if input.StartTime.IsZero() || input.EndTime.IsZero() {
		return nil, fmt.Errorf("event start and end time are required")
	}
	if !input.EndTime.After(input.StartTime) {
		return nil, ErrEventInvalidTimeRange
	}

	eventType := strings.TrimSpace(input.Type)
	if eventType == "" {
		eventType = "task"
	}
	color := strings.TrimSpace(input.Color)
	if color == "" {
		color = "primary"
	}

	event := db.ScheduleEvent{
		Title:     strings.TrimSpace(input.Title),
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Type:      eventType,
		Color:     color,
		CreatedBy: input.CreatedBy,
	}

	if err := s.db.Create(&event).Error; err != nil {
		return nil, fmt.Errorf("create schedule event: %w", err)
	}
	return &event, nil
}

// EventsByDate 返回指定日期当天的全部事件，按开始时间排序
func (s *ScheduleService) EventsByDate(date time.Time) ([]db.ScheduleEvent, error) {
	dayStart := startOfDay(date)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var events []db.ScheduleEvent
	if err := s.db.Where("start_time >= ? AND start_time < ?", dayStart, dayEnd).
		Order("start_time ASC, id ASC").
		Find(&events).Error; err != nil {
		return nil, fmt.Errorf("list schedule events: %w", err)
	}
	return events, nil
}

// AssignUser 将用户指派到事件，重复指派返回 ErrAlreadyAssigned
func (s *ScheduleService) AssignUser(eventID, userID uint) (*db.EventAssignee, error) {
	var event db.ScheduleEvent
	if err := s.db.First(&event, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}

	var user db.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	var existing db.EventAssignee
	err := s.db.Where("event_id = ? AND user_id = ?", eventID, userID).First(&existing).Error
	if err == nil {
		return nil, ErrAlreadyAssigned
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check assignment: %w", err)
	}

	assignee := db.EventAssignee{EventID: eventID, UserID: userID}
	if err := s.db.Create(&assignee).Error; err != nil {
		return nil, fmt.Errorf("assign event: %w", err)
	}
	return &assignee, nil
}

// Assignees 按指派顺序返回事件的参与用户
func (s *ScheduleService) Assignees(eventID uint) ([]db.User, error) {
	var users []db.User
	if err := s.db.
		Joins("JOIN event_assignees ON event_assignees.user_id = users.id AND event_assignees.deleted_at IS NULL").
		Where("event_assignees.event_id = ?", eventID).
		Order("event_assignees.id ASC").
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list event assignees: %w", err)
	}
	return users, nil
}

// EventsForUser 返回用户在指定日期被指派的事件，按开始时间排序
func (s *ScheduleService) EventsForUser(userID uint, date time.Time) ([]db.ScheduleEvent, error) {
	dayStart := startOfDay(date)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var events []db.ScheduleEvent
	if err := s.db.
		Joins("JOIN event_assignees ON event_assignees.event_id = schedule_events.id AND event_assignees.deleted_at IS NULL").
		Where("event_assignees.user_id = ?", userID).
		Where("schedule_events.start_time >= ? AND schedule_events.start_time < ?", dayStart, dayEnd).
		Order("schedule_events.start_time ASC, schedule_events.id ASC").
		Find(&events).Error; err != nil {
		return nil, fmt.Errorf("list user schedule: %w", err)
	}
	return events, nil
}
