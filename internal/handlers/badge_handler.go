package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/civicfix/internal/services"
	"github.com/civicfix/pkg/utils"
)

// BadgeHandler 封装了徽章档位查询的 HTTP 处理逻辑
type BadgeHandler struct {
	badgeService services.BadgeService
}

// NewBadgeHandler 创建一个新的 BadgeHandler 实例
func NewBadgeHandler(badgeService services.BadgeService) *BadgeHandler {
	return &BadgeHandler{badgeService: badgeService}
}

// ListBadges godoc
// @Summary 徽章档位表
// @Description 返回全部徽章档位及其积分门槛
// @Tags Badges
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]models.Badge}
// @Router /badges [get]
// @Security BearerAuth
func (h *BadgeHandler) ListBadges(c *gin.Context) {
	badges, err := h.badgeService.ListBadges()
	if err != nil {
		utils.RespondInternalServerError(c, "查询徽章档位失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, badges, "")
}
