package handler

import (
	"errors"
	"net/http"

	"github.com/familyfit/internal/db"
	"github.com/familyfit/internal/service"
	"github.com/gin-gonic/gin"
)

type familyInputPayload struct {
	Name      string `json:"name"`
	CreatedBy uint   `json:"createdBy"`
}

type familyMemberInputPayload struct {
	FamilyID uint `json:"familyId"`
	UserID   uint `json:"userId"`
}

func familyToPayload(family db.Family) gin.H {
	return gin.H{
		"id":        family.ID,
		"name":      family.Name,
		"createdBy": family.CreatedBy,
	}
}

// CreateFamily 创建家庭
func (a *API) CreateFamily(c *gin.Context) {
	var payload familyInputPayload
	if !bindJSON(c, &payload, "无效的家庭数据") {
		return
	}

	family, err := a.families.Create(service.FamilyInput{
		Name:      payload.Name,
		CreatedBy: payload.CreatedBy,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "创建者不存在")
			return
		}
		respondError(c, http.StatusBadRequest, "创建家庭失败")
		return
	}

	c.JSON(http.StatusCreated, familyToPayload(*family))
}

// GetFamily 返回单个家庭信息
func (a *API) GetFamily(c *gin.Context) {
	id, err := parseUintParam(c, "familyId")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的家庭ID")
		return
	}

	family, err := a.families.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrFamilyNotFound) {
			respondError(c, http.StatusNotFound, "家庭不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "获取家庭失败")
		return
	}

	c.JSON(http.StatusOK, familyToPayload(*family))
}

// ListUserFamilies 返回用户创建或加入的家庭
func (a *API) ListUserFamilies(c *gin.Context) {
	userID, err := parseUintParam(c, "userId")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的用户ID")
		return
	}

	families, err := a.families.ListByUser(userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取家庭列表失败")
		return
	}

	items := make([]gin.H, 0, len(families))
	for _, family := range families {
		items = append(items, familyToPayload(family))
	}
	c.JSON(http.StatusOK, items)
}

// AddFamilyMember 将用户加入家庭
func (a *API) AddFamilyMember(c *gin.Context) {
	var payload familyMemberInputPayload
	if !bindJSON(c, &payload, "无效的成员数据") {
		return
	}

	member, err := a.families.AddMember(payload.FamilyID, payload.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFamilyNotFound):
			respondError(c, http.StatusNotFound, "家庭不存在")
		case errors.Is(err, service.ErrUserNotFound):
			respondError(c, http.StatusNotFound, "用户不存在")
		case errors.Is(err, service.ErrAlreadyFamilyMember):
			respondError(c, http.StatusConflict, "该用户已是家庭成员")
		default:
			respondError(c, http.StatusInternalServerError, "添加家庭成员失败")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":       member.ID,
		"familyId": member.FamilyID,
		"userId":   member.UserID,
	})
}

// ListFamilyMembers 按加入顺序返回家庭成员
func (a *API) ListFamilyMembers(c *gin.Context) {
	familyID, err := parseUintParam(c, "familyId")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的家庭ID")
		return
	}

	members, err := a.families.Members(familyID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取家庭成员失败")
		return
	}

	items := make([]gin.H, 0, len(members))
	for _, member := range members {
		items = append(items, userToPayload(member))
	}
	c.JSON(http.StatusOK, items)
}
