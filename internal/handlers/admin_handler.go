package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/civicfix/internal/auth"
	"github.com/civicfix/internal/models"
	"github.com/civicfix/internal/repositories"
	"github.com/civicfix/internal/services"
	"github.com/civicfix/pkg/utils"
)

// AdminHandler 封装了管理员后台的 HTTP 处理逻辑
type AdminHandler struct {
	complaintService services.ComplaintService
	ratingService    services.RatingService
	userRepo         repositories.UserRepository
}

// NewAdminHandler 创建一个新的 AdminHandler 实例
func NewAdminHandler(
	complaintService services.ComplaintService,
	ratingService services.RatingService,
	userRepo repositories.UserRepository,
) *AdminHandler {
	return &AdminHandler{
		complaintService: complaintService,
		ratingService:    ratingService,
		userRepo:         userRepo,
	}
}

// PagedComplaintsData 投诉列表的分页响应结构
type PagedComplaintsData struct {
	Items      []models.ComplaintResponse `json:"items"`
	Pagination PaginationInfo             `json:"pagination"`
}

// complaintFilterFromQuery 从查询参数构建过滤条件
func complaintFilterFromQuery(c *gin.Context) (repositories.ComplaintListFilter, error) {
	filter := repositories.ComplaintListFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
	}
	if filter.Status != "" && !models.IsValidStatus(filter.Status) {
		return filter, fmt.Errorf("无效的状态筛选值: %s", filter.Status)
	}
	if deptStr := c.Query("departmentId"); deptStr != "" {
		deptID, err := strconv.ParseInt(deptStr, 10, 64)
		if err != nil {
			return filter, errors.New("departmentId 必须是整数")
		}
		filter.DepartmentID = &deptID
	}
	if fromStr := c.Query("from"); fromStr != "" {
		from, err := utils.ParseDate(fromStr)
		if err != nil {
			return filter, err
		}
		filter.From = &from
	}
	if toStr := c.Query("to"); toStr != "" {
		to, err := utils.ParseDate(toStr)
		if err != nil {
			return filter, err
		}
		// 截止日期取当天结束
		endOfDay := to.Add(24*time.Hour - time.Nanosecond)
		filter.To = &endOfDay
	}
	return filter, nil
}

// GetComplaints godoc
// @Summary 投诉列表
// @Description 获取投诉列表，支持分页、搜索和筛选
// @Tags Admin
// @Produce json
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Param sortBy query string false "排序字段 (例如: createdAt, status, problemType)"
// @Param sortOrder query string false "排序顺序 ('asc'或'desc')"
// @Param search query string false "搜索关键词 (匹配问题类型、描述、地址、提交人)"
// @Param status query string false "状态筛选 (Pending, InProgress, Fixed)"
// @Param departmentId query int false "部门筛选"
// @Param from query string false "起始日期 YYYY-MM-DD"
// @Param to query string false "截止日期 YYYY-MM-DD"
// @Success 200 {object} utils.SuccessResponse{data=PagedComplaintsData}
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /admin/complaints [get]
// @Security BearerAuth
func (h *AdminHandler) GetComplaints(c *gin.Context) {
	type listQuery struct {
		Page      int    `form:"page,default=1"`
		Limit     int    `form:"limit,default=10"`
		SortBy    string `form:"sortBy"`
		SortOrder string `form:"sortOrder"`
	}
	var query listQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 || query.Limit > 100 {
		query.Limit = 10
	}

	filter, err := complaintFilterFromQuery(c)
	if err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	items, totalItems, err := h.complaintService.List(query.Page, query.Limit, query.SortBy, query.SortOrder, filter)
	if err != nil {
		utils.RespondInternalServerError(c, "查询投诉列表失败", err.Error())
		return
	}

	totalPages := totalItems / int64(query.Limit)
	if totalItems%int64(query.Limit) != 0 {
		totalPages++
	}
	utils.RespondSuccess(c, http.StatusOK, PagedComplaintsData{
		Items: items,
		Pagination: PaginationInfo{
			TotalItems:  totalItems,
			TotalPages:  totalPages,
			CurrentPage: query.Page,
			PageSize:    query.Limit,
		},
	}, "")
}

// ChangeStatusPayload 状态流转请求体
type ChangeStatusPayload struct {
	Status string `json:"status" binding:"required,oneof=Pending InProgress Fixed"`
}

// ChangeComplaintStatus godoc
// @Summary 变更投诉状态
// @Description 执行状态流转。仅允许 Pending→InProgress、Pending→Fixed、InProgress→Fixed。
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "投诉ID"
// @Param status body ChangeStatusPayload true "目标状态"
// @Success 200 {object} utils.SuccessResponse{data=models.Complaint}
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 403 {object} utils.APIErrorResponse "无权变更该投诉"
// @Failure 404 {object} utils.APIErrorResponse "投诉未找到"
// @Failure 409 {object} utils.APIErrorResponse "非法的状态流转"
// @Router /admin/complaints/{id}/status [put]
// @Security BearerAuth
func (h *AdminHandler) ChangeComplaintStatus(c *gin.Context) {
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

	var payload ChangeStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	complaint, err := h.complaintService.ChangeStatus(id, payload.Status, actor)
	if err != nil {
		respondComplaintError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, complaint, "状态已更新")
}

// AssignComplaintPayload 指派请求体
type AssignComplaintPayload struct {
	DepartmentID     *int64  `json:"departmentId"`
	AssignedToUserID *int64  `json:"assignedToUserId"`
	Note             *string `json:"note" binding:"omitempty,max=500"`
}

// AssignComplaint godoc
// @Summary 指派投诉
// @Description 将投诉指派给部门和/或技术员。技术员已有未完成工单时整体拒绝。
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "投诉ID"
// @Param assignment body AssignComplaintPayload true "指派信息"
// @Success 200 {object} utils.SuccessResponse{data=models.ComplaintAssignment}
// @Failure 403 {object} utils.APIErrorResponse "无权指派该投诉"
// @Failure 404 {object} utils.APIErrorResponse "投诉或技术员未找到"
// @Failure 409 {object} utils.APIErrorResponse "技术员有未完成的工单"
// @Router /admin/complaints/{id}/assign [post]
// @Security BearerAuth
func (h *AdminHandler) AssignComplaint(c *gin.Context) {
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

	var payload AssignComplaintPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}
	if payload.DepartmentID == nil && payload.AssignedToUserID == nil {
		utils.RespondValidationError(c, "departmentId 和 assignedToUserId 至少提供一个")
		return
	}

	assignment, err := h.complaintService.Assign(id, payload.DepartmentID, payload.AssignedToUserID, payload.Note, actor)
	if err != nil {
		respondComplaintError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, assignment, "指派成功")
}

// PurgeComplaint godoc
// @Summary 删除投诉
// @Description 硬删除投诉及其评论、评分、指派历史和施工照片
// @Tags Admin
// @Produce json
// @Param id path int true "投诉ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.APIErrorResponse "投诉未找到"
// @Router /admin/complaints/{id} [delete]
// @Security BearerAuth
func (h *AdminHandler) PurgeComplaint(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	if err := h.complaintService.Purge(c.Request.Context(), id); err != nil {
		respondComplaintError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, nil, "投诉已删除")
}

// exportColumns 导出文件的列头
var exportColumns = []string{"ID", "Problem Type", "Status", "Reporter", "Department", "Technician", "Address", "Created At"}

func exportRow(item models.ComplaintResponse) []string {
	row := []string{
		strconv.FormatInt(item.ID, 10),
		item.ProblemType,
		item.Status,
		item.ReporterName,
		"",
		"",
		"",
		item.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if item.DepartmentName != nil {
		row[4] = *item.DepartmentName
	}
	if item.AssignedToName != nil {
		row[5] = *item.AssignedToName
	}
	if item.Address != nil {
		row[6] = *item.Address
	}
	return row
}

// ExportComplaints godoc
// @Summary 导出投诉
// @Description 按当前筛选条件导出投诉为 CSV 或 HTML 文件
// @Tags Admin
// @Produce text/csv
// @Param format query string false "导出格式 ('csv'或'html')" default(csv)
// @Param status query string false "状态筛选"
// @Param departmentId query int false "部门筛选"
// @Param from query string false "起始日期 YYYY-MM-DD"
// @Param to query string false "截止日期 YYYY-MM-DD"
// @Success 200 {string} string "导出文件"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Router /admin/complaints/export [get]
// @Security BearerAuth
func (h *AdminHandler) ExportComplaints(c *gin.Context) {
	filter, err := complaintFilterFromQuery(c)
	if err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	items, err := h.complaintService.ListForExport(c.Query("sortBy"), c.Query("sortOrder"), filter)
	if err != nil {
		utils.RespondInternalServerError(c, "导出失败", err.Error())
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	switch strings.ToLower(c.DefaultQuery("format", "csv")) {
	case "html":
		h.exportHTML(c, items, timestamp)
	case "csv":
		h.exportCSV(c, items, timestamp)
	default:
		utils.RespondValidationError(c, "format 必须是 csv 或 html")
	}
}

func (h *AdminHandler) exportCSV(c *gin.Context, items []models.ComplaintResponse, timestamp string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="complaints_%s.csv"`, timestamp))

	writer := csv.NewWriter(c.Writer)
	if err := writer.Write(exportColumns); err != nil {
		return
	}
	for _, item := range items {
		if err := writer.Write(exportRow(item)); err != nil {
			return
		}
	}
	writer.Flush()
}

var exportHTMLTemplate = template.Must(template.New("export").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Complaints Export</title></head>
<body>
<table border="1" cellspacing="0" cellpadding="4">
<tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>
</body>
</html>
`))

func (h *AdminHandler) exportHTML(c *gin.Context, items []models.ComplaintResponse, timestamp string) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="complaints_%s.html"`, timestamp))

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, exportRow(item))
	}
	_ = exportHTMLTemplate.Execute(c.Writer, gin.H{"Columns": exportColumns, "Rows": rows})
}

// GetStatusCounts godoc
// @Summary 状态统计
// @Description 按状态统计投诉数量
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=map[string]int64}
// @Router /admin/complaints/stats [get]
// @Security BearerAuth
func (h *AdminHandler) GetStatusCounts(c *gin.Context) {
	counts, err := h.complaintService.StatusCounts()
	if err != nil {
		utils.RespondInternalServerError(c, "统计失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, counts, "")
}

// GetComplaintMap godoc
// @Summary 投诉地图
// @Description 以 GeoJSON FeatureCollection 返回投诉的地理分布
// @Tags Admin
// @Produce json
// @Param status query string false "状态筛选"
// @Param departmentId query int false "部门筛选"
// @Success 200 {object} map[string]interface{} "GeoJSON FeatureCollection"
// @Router /admin/complaints/map [get]
// @Security BearerAuth
func (h *AdminHandler) GetComplaintMap(c *gin.Context) {
	filter, err := complaintFilterFromQuery(c)
	if err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	items, err := h.complaintService.ListForExport("", "", filter)
	if err != nil {
		utils.RespondInternalServerError(c, "查询失败", err.Error())
		return
	}

	features := make([]gin.H, 0, len(items))
	for _, item := range items {
		properties := gin.H{
			"id":          item.ID,
			"problemType": item.ProblemType,
			"status":      item.Status,
			"reporter":    item.ReporterName,
		}
		if item.DepartmentName != nil {
			properties["department"] = *item.DepartmentName
		}
		features = append(features, gin.H{
			"type": "Feature",
			"geometry": gin.H{
				"type": "Point",
				// GeoJSON 坐标顺序为 [经度, 纬度]
				"coordinates": []float64{item.Longitude, item.Latitude},
			},
			"properties": properties,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"type":     "FeatureCollection",
		"features": features,
	})
}

// GetCitizenScoreboard godoc
// @Summary 市民积分榜
// @Tags Admin
// @Produce json
// @Param limit query int false "返回条数" default(20)
// @Success 200 {object} utils.SuccessResponse{data=[]models.CitizenScoreEntry}
// @Router /admin/scoreboards/citizens [get]
// @Security BearerAuth
func (h *AdminHandler) GetCitizenScoreboard(c *gin.Context) {
	limit := scoreboardLimit(c)
	entries, err := h.userRepo.CitizenScoreboard(limit)
	if err != nil {
		utils.RespondInternalServerError(c, "查询积分榜失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, entries, "")
}

// GetTechnicianScoreboard godoc
// @Summary 技术员完成榜
// @Tags Admin
// @Produce json
// @Param limit query int false "返回条数" default(20)
// @Success 200 {object} utils.SuccessResponse{data=[]models.TechnicianScoreEntry}
// @Router /admin/scoreboards/technicians [get]
// @Security BearerAuth
func (h *AdminHandler) GetTechnicianScoreboard(c *gin.Context) {
	limit := scoreboardLimit(c)
	entries, err := h.userRepo.TechnicianScoreboard(limit)
	if err != nil {
		utils.RespondInternalServerError(c, "查询完成榜失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, entries, "")
}

// GetDepartmentRatings godoc
// @Summary 部门满意度统计
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]models.DepartmentRatingSummary}
// @Router /admin/scoreboards/departments [get]
// @Security BearerAuth
func (h *AdminHandler) GetDepartmentRatings(c *gin.Context) {
	summaries, err := h.ratingService.AverageByDepartment()
	if err != nil {
		utils.RespondInternalServerError(c, "查询满意度统计失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, summaries, "")
}

func scoreboardLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		return 20
	}
	return limit
}

// CreateStaffPayload 创建工作人员账号的请求体
type CreateStaffPayload struct {
	Name         string `json:"name" binding:"required,max=100"`
	Email        string `json:"email" binding:"required,max=255"`
	Password     string `json:"password" binding:"required,min=6,max=72"`
	Role         string `json:"role" binding:"required,oneof=Technician DepartmentManager Admin"`
	DepartmentID *int64 `json:"departmentId"`
}

// CreateStaff godoc
// @Summary 创建工作人员账号
// @Description 创建技术员、部门经理或管理员账号。技术员和部门经理必须归属部门。
// @Tags Admin
// @Accept json
// @Produce json
// @Param staff body CreateStaffPayload true "账号信息"
// @Success 201 {object} utils.SuccessResponse{data=UserInfo}
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 409 {object} utils.APIErrorResponse "邮箱已被注册"
// @Router /admin/staff [post]
// @Security BearerAuth
func (h *AdminHandler) CreateStaff(c *gin.Context) {
	var payload CreateStaffPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}
	if !utils.ValidateEmailFormat(payload.Email) {
		utils.RespondValidationError(c, utils.ErrInvalidEmailFormat.Error())
		return
	}
	if (payload.Role == models.RoleTechnician || payload.Role == models.RoleDepartmentManager) && payload.DepartmentID == nil {
		utils.RespondValidationError(c, "技术员和部门经理必须指定 departmentId")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondInternalServerError(c, "无法处理密码", err.Error())
		return
	}

	user := &models.User{
		Name:         payload.Name,
		Email:        strings.ToLower(strings.TrimSpace(payload.Email)),
		PasswordHash: string(hashed),
		Role:         payload.Role,
		BadgeLevel:   models.DefaultBadgeLevel,
		DepartmentID: payload.DepartmentID,
	}
	if err := h.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrEmailAlreadyExists) {
			utils.RespondConflictError(c, "邮箱已被注册")
			return
		}
		utils.RespondInternalServerError(c, "创建账号失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, toUserInfo(user), "账号创建成功")
}
