package handler

import (
	"errors"
	"net/http"

	"github.com/familyfit/internal/db"
	"github.com/familyfit/internal/service"
	"github.com/gin-gonic/gin"
)

type userInputPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Avatar   string `json:"avatar"`
}

// userToPayload 序列化用户信息，Password 永远不会出现在响应中
func userToPayload(user db.User) gin.H {
	return gin.H{
		"id":       user.ID,
		"username": user.Username,
		"name":     user.Name,
		"role":     user.Role,
		"avatar":   user.Avatar,
	}
}

// CreateUser 注册新用户
func (a *API) CreateUser(c *gin.Context) {
	var payload userInputPayload
	if !bindJSON(c, &payload, "无效的用户数据") {
		return
	}

	user, err := a.users.Register(service.UserInput{
		Username: payload.Username,
		Password: payload.Password,
		Name:     payload.Name,
		Role:     payload.Role,
		Avatar:   payload.Avatar,
	})
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			respondError(c, http.StatusConflict, "用户名已存在")
			return
		}
		respondError(c, http.StatusBadRequest, "创建用户失败")
		return
	}

	c.JSON(http.StatusCreated, userToPayload(*user))
}

// GetUser 返回单个用户信息
func (a *API) GetUser(c *gin.Context) {
	id, err := parseUintParam(c, "userId")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的用户ID")
		return
	}

	user, err := a.users.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "用户不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "获取用户失败")
		return
	}

	c.JSON(http.StatusOK, userToPayload(*user))
}

// ListUsers 返回全部用户列表
func (a *API) ListUsers(c *gin.Context) {
	users, err := a.users.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取用户列表失败")
		return
	}

	items := make([]gin.H, 0, len(users))
	for _, user := range users {
		items = append(items, userToPayload(user))
	}
	c.JSON(http.StatusOK, items)
}
