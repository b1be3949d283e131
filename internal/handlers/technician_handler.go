package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/civicfix/internal/auth"
	"github.com/civicfix/internal/models"
	"github.com/civicfix/internal/services"
	"github.com/civicfix/pkg/utils"
)

// TechnicianHandler 封装了技术员工作台的 HTTP 处理逻辑
type TechnicianHandler struct {
	complaintService services.ComplaintService
	photoService     services.PhotoService
}

// NewTechnicianHandler 创建一个新的 TechnicianHandler 实例
func NewTechnicianHandler(complaintService services.ComplaintService, photoService services.PhotoService) *TechnicianHandler {
	return &TechnicianHandler{complaintService: complaintService, photoService: photoService}
}

// GetAssignedComplaints godoc
// @Summary 我的工单
// @Description 返回指派给当前技术员的全部投诉
// @Tags Technician
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]models.Complaint}
// @Failure 401 {object} utils.APIErrorResponse "未认证"
// @Router /technician/complaints [get]
// @Security BearerAuth
func (h *TechnicianHandler) GetAssignedComplaints(c *gin.Context) {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		utils.RespondUnauthorizedError(c)
		return
	}

	complaints, err := h.complaintService.ListAssigned(actor.ID)
	if err != nil {
		utils.RespondInternalServerError(c, "查询工单失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, complaints, "")
}

// UploadWorkPhotosPayload 上传施工照片引用的请求体
type UploadWorkPhotosPayload struct {
	WorkInProgressPath string `json:"workInProgressPath" binding:"required,max=500"`
	FixedPath          string `json:"fixedPath" binding:"required,max=500"`
}

// UploadWorkPhotos godoc
// @Summary 上传施工照片
// @Description 技术员为名下工单登记施工中与完工照片。工单处于 Pending 时自动推进为 InProgress。
// @Tags Technician
// @Accept json
// @Produce json
// @Param id path int true "投诉ID"
// @Param photos body UploadWorkPhotosPayload true "照片引用"
// @Success 201 {object} utils.SuccessResponse{data=[]models.TechnicianPhoto}
// @Failure 403 {object} utils.APIErrorResponse "该工单未指派给当前技术员"
// @Failure 404 {object} utils.APIErrorResponse "投诉未找到"
// @Router /technician/complaints/{id}/photos [post]
// @Security BearerAuth
func (h *TechnicianHandler) UploadWorkPhotos(c *gin.Context) {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		utils.RespondUnauthorizedError(c)
		return
	}
	id, err := parseIDParam(c)
	if err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	var payload UploadWorkPhotosPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	photos, err := h.photoService.AddWorkPhotos(id, actor.ID, payload.WorkInProgressPath, payload.FixedPath)
	if err != nil {
		if errors.Is(err, services.ErrNotAssignedTechnician) {
			utils.RespondForbiddenError(c, err.Error())
			return
		}
		respondComplaintError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, photos, "施工照片已登记")
}

// MarkFixed godoc
// @Summary 标记工单已修复
// @Description 技术员将名下工单标记为 Fixed。要求已登记至少两条施工照片记录。
// @Tags Technician
// @Produce json
// @Param id path int true "投诉ID"
// @Success 200 {object} utils.SuccessResponse{data=models.Complaint}
// @Failure 403 {object} utils.APIErrorResponse "该工单未指派给当前技术员"
// @Failure 404 {object} utils.APIErrorResponse "投诉未找到"
// @Failure 409 {object} utils.APIErrorResponse "状态流转非法或施工照片不足"
// @Router /technician/complaints/{id}/fix [post]
// @Security BearerAuth
func (h *TechnicianHandler) MarkFixed(c *gin.Context) {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		utils.RespondUnauthorizedError(c)
		return
	}
	id, err := parseIDParam(c)
	if err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	complaint, err := h.complaintService.ChangeStatus(id, string(models.StatusFixed), actor)
	if err != nil {
		respondComplaintError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, complaint, "工单已标记为已修复")
}
