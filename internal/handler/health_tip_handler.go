package handler

import (
	"errors"
	"net/http"

	"github.com/familyfit/internal/db"
	"github.com/familyfit/internal/service"
	"github.com/gin-gonic/gin"
)

type healthTipInputPayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Type    string `json:"type"`
	Icon    string `json:"icon"`
}

func (a *API) healthTipToPayload(tip db.HealthTip) gin.H {
	payload := gin.H{
		"id":        tip.ID,
		"title":     tip.Title,
		"content":   tip.Content,
		"type":      tip.Type,
		"icon":      tip.Icon,
		"createdAt": tip.CreatedAt,
	}

	if rendered, err := a.tips.RenderContent(tip); err == nil {
		payload["contentHtml"] = rendered
	}
	return payload
}

// CreateHealthTip 创建健康贴士
func (a *API) CreateHealthTip(c *gin.Context) {
	var payload healthTipInputPayload
	if !bindJSON(c, &payload, "无效的贴士数据") {
		return
	}

	tip, err := a.tips.Create(service.HealthTipInput{
		Title:   payload.Title,
		Content: payload.Content,
		Type:    payload.Type,
		Icon:    payload.Icon,
	})
	if err != nil {
		respondError(c, http.StatusBadRequest, "创建贴士失败")
		return
	}

	c.JSON(http.StatusCreated, a.healthTipToPayload(*tip))
}

// RandomHealthTip 随机返回一条贴士
func (a *API) RandomHealthTip(c *gin.Context) {
	tip, err := a.tips.Random()
	if err != nil {
		if errors.Is(err, service.ErrNoHealthTips) {
			respondError(c, http.StatusNotFound, "暂无健康贴士")
			return
		}
		respondError(c, http.StatusInternalServerError, "获取贴士失败")
		return
	}

	c.JSON(http.StatusOK, a.healthTipToPayload(*tip))
}

// ListHealthTips 返回最新的贴士列表，?limit= 控制条数
func (a *API) ListHealthTips(c *gin.Context) {
	limit := parseIntQuery(c, "limit", service.DefaultHealthTipLimit)

	tips, err := a.tips.List(limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取贴士列表失败")
		return
	}

	items := make([]gin.H, 0, len(tips))
	for _, tip := range tips {
		items = append(items, a.healthTipToPayload(tip))
	}
	c.JSON(http.StatusOK, items)
}
