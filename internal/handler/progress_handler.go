package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GetUserDailyProgress 返回用户当日的进度得分
func (a *API) GetUserDailyProgress(c *gin.Context) {
	userID, err := parseUintParam(c, "userId")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的用户ID")
		return
	}

	progress, err := a.progress.UserProgress(userID, time.Now())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "计算用户进度失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"progress": progress})
}

// GetFamilyProgress 按成员加入顺序返回家庭各成员的进度得分
func (a *API) GetFamilyProgress(c *gin.Context) {
	familyID, err := parseUintParam(c, "familyId")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的家庭ID")
		return
	}

	progress, err := a.progress.FamilyProgress(familyID, time.Now())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "计算家庭进度失败")
		return
	}

	c.JSON(http.StatusOK, progress)
}
