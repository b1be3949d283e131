package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/civicfix/internal/auth"
	"github.com/civicfix/internal/models"
	"github.com/civicfix/internal/repositories"
	"github.com/civicfix/internal/services"
	"github.com/civicfix/pkg/utils"
)

// DepartmentHandler 封装了部门经理工作台和参考数据管理的 HTTP 处理逻辑
type DepartmentHandler struct {
	complaintService services.ComplaintService
	departmentRepo   repositories.DepartmentRepository
	userRepo         repositories.UserRepository
}

// NewDepartmentHandler 创建一个新的 DepartmentHandler 实例
func NewDepartmentHandler(
	complaintService services.ComplaintService,
	departmentRepo repositories.DepartmentRepository,
	userRepo repositories.UserRepository,
) *DepartmentHandler {
	return &DepartmentHandler{
		complaintService: complaintService,
		departmentRepo:   departmentRepo,
		userRepo:         userRepo,
	}
}

// GetAvailableComplaints godoc
// @Summary 部门待指派投诉
// @Description 返回当前部门经理所在部门内未指派且处于 Pending 状态的投诉
// @Tags Department
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]models.Complaint}
// @Failure 401 {object} utils.APIErrorResponse "未认证"
// @Failure 403 {object} utils.APIErrorResponse "账号未归属任何部门"
// @Router /department/complaints/available [get]
// @Security BearerAuth
func (h *DepartmentHandler) GetAvailableComplaints(c *gin.Context) {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		utils.RespondUnauthorizedError(c)
		return
	}
	if actor.DepartmentID == nil {
		utils.RespondForbiddenError(c, "账号未归属任何部门")
		return
	}

	complaints, err := h.complaintService.ListAvailableForDepartment(*actor.DepartmentID)
	if err != nil {
		utils.RespondInternalServerError(c, "查询待指派投诉失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, complaints, "")
}

// GetDepartmentTechnicians godoc
// @Summary 部门技术员列表
// @Description 返回当前部门经理所在部门的全部技术员
// @Tags Department
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]models.User}
// @Failure 403 {object} utils.APIErrorResponse "账号未归属任何部门"
// @Router /department/technicians [get]
// @Security BearerAuth
func (h *DepartmentHandler) GetDepartmentTechnicians(c *gin.Context) {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		utils.RespondUnauthorizedError(c)
		return
	}
	if actor.DepartmentID == nil {
		utils.RespondForbiddenError(c, "账号未归属任何部门")
		return
	}

	technicians, err := h.userRepo.ListTechniciansByDepartment(*actor.DepartmentID)
	if err != nil {
		utils.RespondInternalServerError(c, "查询技术员失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, technicians, "")
}

// AssignToTechnicianPayload 部门经理派单请求体
type AssignToTechnicianPayload struct {
	AssignedToUserID int64   `json:"assignedToUserId" binding:"required"`
	Note             *string `json:"note" binding:"omitempty,max=500"`
}

// AssignToTechnician godoc
// @Summary 派单给技术员
// @Description 部门经理将本部门投诉指派给技术员。技术员已有未完成工单时拒绝。
// @Tags Department
// @Accept json
// @Produce json
// @Param id path int true "投诉ID"
// @Param assignment body AssignToTechnicianPayload true "指派信息"
// @Success 200 {object} utils.SuccessResponse{data=models.ComplaintAssignment}
// @Failure 403 {object} utils.APIErrorResponse "投诉不属于本部门"
// @Failure 404 {object} utils.APIErrorResponse "投诉或技术员未找到"
// @Failure 409 {object} utils.APIErrorResponse "技术员有未完成的工单"
// @Router /department/complaints/{id}/assign [post]
// @Security BearerAuth
func (h *DepartmentHandler) AssignToTechnician(c *gin.Context) {
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

	var payload AssignToTechnicianPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	assignment, err := h.complaintService.Assign(id, actor.DepartmentID, &payload.AssignedToUserID, payload.Note, actor)
	if err != nil {
		respondComplaintError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, assignment, "派单成功")
}

// ListDepartments godoc
// @Summary 部门列表
// @Tags Departments
// @Produce json
// @Param activeOnly query bool false "仅返回启用的部门" default(false)
// @Success 200 {object} utils.SuccessResponse{data=[]models.Department}
// @Router /departments [get]
// @Security BearerAuth
func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	activeOnly := c.Query("activeOnly") == "true"
	departments, err := h.departmentRepo.ListDepartments(activeOnly)
	if err != nil {
		utils.RespondInternalServerError(c, "查询部门失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, departments, "")
}

// CreateDepartmentPayload 创建部门的请求体
type CreateDepartmentPayload struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	Email       string  `json:"email" binding:"required,max=50"`
}

// CreateDepartment godoc
// @Summary 创建部门
// @Tags Departments
// @Accept json
// @Produce json
// @Param department body CreateDepartmentPayload true "部门信息"
// @Success 201 {object} utils.SuccessResponse{data=models.Department}
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Router /admin/departments [post]
// @Security BearerAuth
func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	var payload CreateDepartmentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}
	if !utils.ValidateEmailFormat(payload.Email) {
		utils.RespondValidationError(c, utils.ErrInvalidEmailFormat.Error())
		return
	}

	department := &models.Department{
		Name:        payload.Name,
		Description: payload.Description,
		Email:       payload.Email,
		IsActive:    true,
	}
	if err := h.departmentRepo.CreateDepartment(department); err != nil {
		utils.RespondInternalServerError(c, "创建部门失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, department, "部门创建成功")
}

// UpdateDepartmentPayload 更新部门的请求体，所有字段可选
type UpdateDepartmentPayload struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	Email       *string `json:"email" binding:"omitempty,max=50"`
	IsActive    *bool   `json:"isActive"`
}

// UpdateDepartment godoc
// @Summary 更新部门
// @Description 部分更新部门信息，未提供的字段保持不变
// @Tags Departments
// @Accept json
// @Produce json
// @Param id path int true "部门ID"
// @Param department body UpdateDepartmentPayload true "更新内容"
// @Success 200 {object} utils.SuccessResponse{data=models.Department}
// @Failure 404 {object} utils.APIErrorResponse "部门未找到"
// @Router /admin/departments/{id} [put]
// @Security BearerAuth
func (h *DepartmentHandler) UpdateDepartment(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	var payload UpdateDepartmentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	updates := make(map[string]interface{})
	if payload.Name != nil {
		updates["name"] = *payload.Name
	}
	if payload.Description != nil {
		updates["description"] = *payload.Description
	}
	if payload.Email != nil {
		if !utils.ValidateEmailFormat(*payload.Email) {
			utils.RespondValidationError(c, utils.ErrInvalidEmailFormat.Error())
			return
		}
		updates["email"] = *payload.Email
	}
	if payload.IsActive != nil {
		updates["is_active"] = *payload.IsActive
	}

	department, err := h.departmentRepo.UpdateDepartment(id, updates)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			utils.RespondNotFoundError(c, "部门")
			return
		}
		utils.RespondInternalServerError(c, "更新部门失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, department, "部门已更新")
}

// ListRoutes godoc
// @Summary 问题类型路由表
// @Description 返回全部问题类型路由，含已停用的
// @Tags Routes
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]models.ProblemTypeRoute}
// @Router /admin/routes [get]
// @Security BearerAuth
func (h *DepartmentHandler) ListRoutes(c *gin.Context) {
	routes, err := h.departmentRepo.ListRoutes()
	if err != nil {
		utils.RespondInternalServerError(c, "查询路由失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, routes, "")
}

// CreateRoutePayload 新建路由的请求体
type CreateRoutePayload struct {
	ProblemType  string `json:"problemType" binding:"required,max=50"`
	DepartmentID int64  `json:"departmentId" binding:"required"`
}

// CreateRoute godoc
// @Summary 新建问题类型路由
// @Description 建立问题类型到部门的路由。同一问题类型已有激活路由时拒绝。
// @Tags Routes
// @Accept json
// @Produce json
// @Param route body CreateRoutePayload true "路由信息"
// @Success 201 {object} utils.SuccessResponse{data=models.ProblemTypeRoute}
// @Failure 404 {object} utils.APIErrorResponse "部门未找到"
// @Failure 409 {object} utils.APIErrorResponse "该问题类型已存在激活路由"
// @Router /admin/routes [post]
// @Security BearerAuth
func (h *DepartmentHandler) CreateRoute(c *gin.Context) {
	var payload CreateRoutePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	if _, err := h.departmentRepo.GetByID(payload.DepartmentID); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			utils.RespondNotFoundError(c, "部门")
			return
		}
		utils.RespondInternalServerError(c, "查询部门失败", err.Error())
		return
	}

	route := &models.ProblemTypeRoute{
		ProblemType:  payload.ProblemType,
		DepartmentID: payload.DepartmentID,
	}
	if err := h.departmentRepo.CreateRoute(route); err != nil {
		if errors.Is(err, repositories.ErrRouteAlreadyExists) {
			utils.RespondConflictError(c, err.Error())
			return
		}
		utils.RespondInternalServerError(c, "创建路由失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, route, "路由创建成功")
}

// SetRouteActivePayload 启停路由的请求体
type SetRouteActivePayload struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// SetRouteActive godoc
// @Summary 启用/停用路由
// @Description 停用的路由在自动派单时视为不存在，新投诉将保持未指派
// @Tags Routes
// @Accept json
// @Produce json
// @Param id path int true "路由ID"
// @Param active body SetRouteActivePayload true "启用状态"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.APIErrorResponse "路由未找到"
// @Router /admin/routes/{id}/active [put]
// @Security BearerAuth
func (h *DepartmentHandler) SetRouteActive(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	var payload SetRouteActivePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	if err := h.departmentRepo.SetRouteActive(id, *payload.IsActive); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			utils.RespondNotFoundError(c, "路由")
			return
		}
		utils.RespondInternalServerError(c, "更新路由失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, nil, "路由已更新")
}
