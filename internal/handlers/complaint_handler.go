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

// ComplaintHandler 封装了市民投诉相关的 HTTP 处理逻辑
type ComplaintHandler struct {
	complaintService services.ComplaintService
	commentService   services.CommentService
	ratingService    services.RatingService
	photoService     services.PhotoService
}

// NewComplaintHandler 创建一个新的 ComplaintHandler 实例
func NewComplaintHandler(
	complaintService services.ComplaintService,
	commentService services.CommentService,
	ratingService services.RatingService,
	photoService services.PhotoService,
) *ComplaintHandler {
	return &ComplaintHandler{
		complaintService: complaintService,
		commentService:   commentService,
		ratingService:    ratingService,
		photoService:     photoService,
	}
}

// SubmitComplaintPayload 是用于绑定和验证提交投诉请求的临时结构体
type SubmitComplaintPayload struct {
	ProblemType string  `json:"problemType" binding:"required,max=50"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	PhotoPath   *string `json:"photoPath" binding:"omitempty,max=255"`
	Latitude    float64 `json:"latitude" binding:"required"`
	Longitude   float64 `json:"longitude" binding:"required"`
	Address     *string `json:"address" binding:"omitempty,max=255"`
}

// SubmitComplaint godoc
// @Summary 提交投诉
// @Description 市民提交一条新投诉。按问题类型自动路由到责任部门，并为提交人奖励积分。
// @Tags Complaints
// @Accept json
// @Produce json
// @Param complaint body SubmitComplaintPayload true "投诉信息"
// @Success 201 {object} utils.SuccessResponse{data=models.Complaint} "创建成功的投诉对象"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /complaints [post]
// @Security BearerAuth
func (h *ComplaintHandler) SubmitComplaint(c *gin.Context) {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		utils.RespondUnauthorizedError(c)
		return
	}

	var payload SubmitComplaintPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}
	if err := utils.ValidateCoordinates(payload.Latitude, payload.Longitude); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	complaint, err := h.complaintService.Submit(c.Request.Context(), actor.ID, services.SubmitComplaintInput{
		ProblemType: payload.ProblemType,
		Description: payload.Description,
		PhotoPath:   payload.PhotoPath,
		Latitude:    payload.Latitude,
		Longitude:   payload.Longitude,
		Address:     payload.Address,
	})
	if err != nil {
		utils.RespondInternalServerError(c, "提交投诉失败", err.Error())
		return
	}

	utils.RespondSuccess(c, http.StatusCreated, complaint, "投诉提交成功")
}

// GetMyComplaints godoc
// @Summary 我的投诉列表
// @Description 返回当前市民提交的全部投诉，按提交时间倒序
// @Tags Complaints
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]models.Complaint}
// @Failure 401 {object} utils.APIErrorResponse "未认证"
// @Router /complaints/mine [get]
// @Security BearerAuth
func (h *ComplaintHandler) GetMyComplaints(c *gin.Context) {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		utils.RespondUnauthorizedError(c)
		return
	}

	complaints, err := h.complaintService.ListMine(actor.ID)
	if err != nil {
		utils.RespondInternalServerError(c, "查询投诉失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, complaints, "")
}

// GetComplaintDetail godoc
// @Summary 投诉详情
// @Description 返回单条投诉详情，含提交人、部门和技术员名称
// @Tags Complaints
// @Produce json
// @Param id path int true "投诉ID"
// @Success 200 {object} utils.SuccessResponse{data=models.ComplaintResponse}
// @Failure 403 {object} utils.APIErrorResponse "无权查看该投诉"
// @Failure 404 {object} utils.APIErrorResponse "投诉未找到"
// @Router /complaints/{id} [get]
// @Security BearerAuth
func (h *ComplaintHandler) GetComplaintDetail(c *gin.Context) {
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

	detail, err := h.complaintService.GetDetail(id, actor)
	if err != nil {
		respondComplaintError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, detail, "")
}

// AddCommentPayload 添加评论的请求体
type AddCommentPayload struct {
	Content     string                 `json:"content" binding:"required,max=1000"`
	Internal    bool                   `json:"internal"`
	Attachments []models.AttachmentRef `json:"attachments" binding:"omitempty,max=3,dive"`
}

// AddComment godoc
// @Summary 添加评论
// @Description 在投诉下添加评论，最多附带3个附件引用。工作人员可发仅内部可见的评论。
// @Tags Comments
// @Accept json
// @Produce json
// @Param id path int true "投诉ID"
// @Param comment body AddCommentPayload true "评论内容"
// @Success 201 {object} utils.SuccessResponse{data=models.Comment}
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 403 {object} utils.APIErrorResponse "无权评论该投诉"
// @Failure 404 {object} utils.APIErrorResponse "投诉未找到"
// @Router /complaints/{id}/comments [post]
// @Security BearerAuth
func (h *ComplaintHandler) AddComment(c *gin.Context) {
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

	var payload AddCommentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	comment, err := h.commentService.Add(id, actor, payload.Content, payload.Internal, payload.Attachments)
	if err != nil {
		if errors.Is(err, services.ErrTooManyAttachments) {
			utils.RespondValidationError(c, err.Error())
			return
		}
		respondComplaintError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, comment, "评论添加成功")
}

// GetComments godoc
// @Summary 评论列表
// @Description 返回投诉下的评论，市民只能看到对其可见的部分
// @Tags Comments
// @Produce json
// @Param id path int true "投诉ID"
// @Success 200 {object} utils.SuccessResponse{data=[]models.Comment}
// @Failure 403 {object} utils.APIErrorResponse "无权查看该投诉"
// @Failure 404 {object} utils.APIErrorResponse "投诉未找到"
// @Router /complaints/{id}/comments [get]
// @Security BearerAuth
func (h *ComplaintHandler) GetComments(c *gin.Context) {
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

	comments, err := h.commentService.ListByComplaint(id, actor)
	if err != nil {
		respondComplaintError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, comments, "")
}

// RateComplaintPayload 评分请求体
type RateComplaintPayload struct {
	Score   int     `json:"score" binding:"required"`
	Comment *string `json:"comment" binding:"omitempty,max=1000"`
}

// RateComplaint godoc
// @Summary 评价已修复的投诉
// @Description 投诉提交人对已修复的投诉打分（1-5）。提交后24小时内可修改。
// @Tags Ratings
// @Accept json
// @Produce json
// @Param id path int true "投诉ID"
// @Param rating body RateComplaintPayload true "评分"
// @Success 200 {object} utils.SuccessResponse{data=models.ComplaintRating}
// @Failure 400 {object} utils.APIErrorResponse "分值超出范围"
// @Failure 403 {object} utils.APIErrorResponse "不是投诉提交人"
// @Failure 404 {object} utils.APIErrorResponse "投诉未找到"
// @Failure 409 {object} utils.APIErrorResponse "投诉尚未修复或修改窗口已过期"
// @Router /complaints/{id}/rating [put]
// @Security BearerAuth
func (h *ComplaintHandler) RateComplaint(c *gin.Context) {
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

	var payload RateComplaintPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	rating, err := h.ratingService.Rate(id, actor.ID, payload.Score, payload.Comment)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidScore):
			utils.RespondValidationError(c, err.Error())
		case errors.Is(err, services.ErrComplaintNotFound):
			utils.RespondNotFoundError(c, "投诉")
		case errors.Is(err, services.ErrNotComplaintOwner):
			utils.RespondForbiddenError(c, err.Error())
		case errors.Is(err, services.ErrComplaintNotResolved),
			errors.Is(err, services.ErrRatingEditExpired):
			utils.RespondConflictError(c, err.Error())
		default:
			utils.RespondInternalServerError(c, "评分失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, rating, "评分已保存")
}

// GetComplaintRating godoc
// @Summary 查询投诉评分
// @Tags Ratings
// @Produce json
// @Param id path int true "投诉ID"
// @Success 200 {object} utils.SuccessResponse{data=models.ComplaintRating}
// @Failure 404 {object} utils.APIErrorResponse "评分未找到"
// @Router /complaints/{id}/rating [get]
// @Security BearerAuth
func (h *ComplaintHandler) GetComplaintRating(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	rating, err := h.ratingService.GetByComplaintID(id)
	if err != nil {
		if errors.Is(err, services.ErrComplaintNotFound) {
			utils.RespondNotFoundError(c, "评分")
			return
		}
		utils.RespondInternalServerError(c, "查询评分失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, rating, "")
}

// GetComplaintPhotos godoc
// @Summary 投诉的施工照片
// @Tags Complaints
// @Produce json
// @Param id path int true "投诉ID"
// @Success 200 {object} utils.SuccessResponse{data=[]models.TechnicianPhoto}
// @Router /complaints/{id}/photos [get]
// @Security BearerAuth
func (h *ComplaintHandler) GetComplaintPhotos(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	photos, err := h.photoService.ListByComplaint(id)
	if err != nil {
		utils.RespondInternalServerError(c, "查询施工照片失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, photos, "")
}

// respondComplaintError 将服务层错误翻译为 HTTP 响应
func respondComplaintError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrComplaintNotFound):
		utils.RespondNotFoundError(c, "投诉")
	case errors.Is(err, services.ErrOperationForbidden):
		utils.RespondForbiddenError(c, err.Error())
	case errors.Is(err, services.ErrInvalidStatusValue):
		utils.RespondValidationError(c, err.Error())
	case errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrPhotosRequired),
		errors.Is(err, services.ErrTechnicianBusy):
		utils.RespondConflictError(c, err.Error())
	case errors.Is(err, services.ErrTechnicianNotFound):
		utils.RespondNotFoundError(c, "技术员")
	default:
		utils.RespondInternalServerError(c, "操作失败", err.Error())
	}
}
