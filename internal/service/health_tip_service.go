package service

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/familyfit/internal/db"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"gorm.io/gorm"
)

// DefaultHealthTipLimit 为贴士列表查询的默认条数
const DefaultHealthTipLimit = 5

// ErrNoHealthTips 在没有任何贴士可供随机挑选时返回
var ErrNoHealthTips = errors.New("no health tips found")

var (
	tipMarkdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	tipSanitizer = bluemonday.UGCPolicy()
)

// HealthTipService 负责健康贴士的维护与展示渲染
// Content 按 Markdown 处理，渲染结果经过净化后才返回给客户端

type HealthTipService struct {
	db *gorm.DB
}

// HealthTipInput 定义创建贴士时可配置字段
type HealthTipInput struct {
	Title   string
	Content string
	Type    string
	Icon    string
}

// NewHealthTipService 构造 HealthTipService
func NewHealthTipService(gdb *gorm.DB) *HealthTipService {
	return &HealthTipService{db: gdb}
}

// Create 创建健康贴士
func (s *HealthTipService) Create(input HealthTipInput) (*db.HealthTip, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("tip title is required")
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, fmt.Errorf("tip content is required")
	}

	tipType := strings.TrimSpace(input.Type)
	if tipType == "" {
		tipType = "general"
	}
	icon := strings.TrimSpace(input.Icon)
	if icon == "" {
		icon = "lightbulb"
	}

	tip := db.HealthTip{
		Title:   strings.TrimSpace(input.Title),
		Content: strings.TrimSpace(input.Content),
		Type:    tipType,
		Icon:    icon,
	}

	if err := s.db.Create(&tip).Error; err != nil {
		return nil, fmt.Errorf("create health tip: %w", err)
	}
	return &tip, nil
}

// Random 随机返回一条贴士
func (s *HealthTipService) Random() (*db.HealthTip, error) {
	var count int64
	if err := s.db.Model(&db.HealthTip{}).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("count health tips: %w", err)
	}
	if count == 0 {
		return nil, ErrNoHealthTips
	}

	var tip db.HealthTip
	if err := s.db.Offset(rand.Intn(int(count))).
		Order("id ASC").
		First(&tip).Error; err != nil {
		return nil, fmt.Errorf("pick health tip: %w", err)
	}
	return &tip, nil
}

// List 返回最新的 limit 条贴士，limit 非正数时使用默认值
func (s *HealthTipService) List(limit int) ([]db.HealthTip, error) {
	if limit <= 0 {
		limit = DefaultHealthTipLimit
	}

	var tips []db.HealthTip
	if err := s.db.Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&tips).Error; err != nil {
		return nil, fmt.Errorf("list health tips: %w", err)
	}
	return tips, nil
}

// RenderContent 将贴士内容从 Markdown 渲染为净化后的 HTML
func (s *HealthTipService) RenderContent(tip db.HealthTip) (string, error) {
	var buf bytes.Buffer
	if err := tipMarkdownEngine.Convert([]byte(tip.Content), &buf); err != nil {
		return "", fmt.Errorf("render tip content: %w", err)
	}
	return tipSanitizer.Sanitize(buf.String()), nil
}
