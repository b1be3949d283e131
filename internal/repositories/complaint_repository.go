package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/civicfix/internal/models"
	"gorm.io/gorm"
)

// ErrRecordNotFound 表示记录未找到，可以重用 gorm 的错误或自定义
var ErrRecordNotFound = gorm.ErrRecordNotFound

// 状态流转与派单相关错误
var ErrInvalidTransition = errors.New("非法的状态流转")
var ErrOperationForbidden = errors.New("无权操作该投诉")
var ErrPhotosRequired = errors.New("缺少施工照片记录，需同时存在施工中与完工照片")
var ErrTechnicianBusy = errors.New("技术员有未完成的工单，无法接收新指派")
var ErrTechnicianNotFound = errors.New("技术员未找到")

// ComplaintListFilter 列表/导出/地图查询的过滤条件
type ComplaintListFilter struct {
	Status           string
	DepartmentID     *int64
	AssignedToUserID *int64
	Search           string
	From             *time.Time
	To               *time.Time
}

// ComplaintRepository 定义了投诉数据仓库的接口
type ComplaintRepository interface {
	// Submit 创建投诉并执行提交的全部副作用：
	// 按问题类型查找激活路由并自动建立指派记录与系统评论，为提交人累加积分并重算徽章。
	// 路由缺失不视为错误，投诉保持未指派。返回投诉及命中的部门（可能为 nil）。
	Submit(ctx context.Context, complaint *models.Complaint, points int, computeBadge func(points int) string) (*models.Complaint, *models.Department, error)
	GetByID(id int64) (*models.Complaint, error)
	GetDetailByID(id int64) (*models.ComplaintResponse, error)
	GetComplaints(page, limit int, sortBy, sortOrder string, filter ComplaintListFilter) ([]models.ComplaintResponse, int64, error)
	ListForExport(sortBy, sortOrder string, filter ComplaintListFilter) ([]models.ComplaintResponse, error)
	ListByReporter(userID int64) ([]models.Complaint, error)
	ListByAssignee(technicianID int64) ([]models.Complaint, error)
	// ListAvailableForDepartment 查询某部门内未指派且处于 Pending 状态的投诉
	ListAvailableForDepartment(departmentID int64) ([]models.Complaint, error)
	// Transition 在单个事务内校验并执行状态流转，成功时落审计评论
	Transition(id int64, newStatus models.ComplaintStatus, actor models.Actor) (*models.Complaint, error)
	// Assign 在单个事务内执行负载闸门检查与替换式指派（历史只追加）
	Assign(id int64, departmentID, assignedToUserID *int64, note *string, actor models.Actor) (*models.ComplaintAssignment, error)
	// Purge 管理员硬删除投诉并级联删除其评论、评分、指派历史与施工照片
	Purge(ctx context.Context, id int64) error
	CountByStatus(status models.ComplaintStatus) (int64, error)
}

// gormComplaintRepository 是 ComplaintRepository 的 GORM 实现
type gormComplaintRepository struct {
	db *gorm.DB
}

// NewGormComplaintRepository 创建一个新的 gormComplaintRepository 实例
func NewGormComplaintRepository(db *gorm.DB) ComplaintRepository {
	return &gormComplaintRepository{db: db}
}

// Submit 创建投诉并在同一事务内完成自动路由与积分奖励
func (r *gormComplaintRepository) Submit(ctx context.Context, complaint *models.Complaint, points int, computeBadge func(points int) string) (*models.Complaint, *models.Department, error) {
	var routedDept *models.Department

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		complaint.Status = string(models.StatusPending)
		if err := tx.Create(complaint).Error; err != nil {
			return err
		}

		// 按问题类型精确匹配激活路由；停用的路由视为不存在
		var route models.ProblemTypeRoute
		err := tx.Where("problem_type = ? AND is_active = ?", complaint.ProblemType, true).First(&route).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err == nil {
			var dept models.Department
			if err := tx.First(&dept, route.DepartmentID).Error; err != nil {
				return err
			}

			now := time.Now()
			if err := tx.Model(&models.Complaint{}).Where("id = ?", complaint.ID).
				Updates(map[string]interface{}{"department_id": route.DepartmentID, "updated_at": &now}).Error; err != nil {
				return err
			}
			complaint.DepartmentID = &route.DepartmentID
			complaint.UpdatedAt = &now

			note := "Auto-assigned based on problem type"
			assignment := models.ComplaintAssignment{
				ComplaintID:      complaint.ID,
				DepartmentID:     &route.DepartmentID,
				Note:             &note,
				AssignedByUserID: complaint.UserID, // 系统指派，归属于提交动作本身
				AssignedAt:       now,
				IsActive:         true,
			}
			if err := tx.Create(&assignment).Error; err != nil {
				return err
			}

			autoComment := models.Comment{
				ComplaintID:   complaint.ID,
				AuthorID:      complaint.UserID,
				AuthorName:    models.SystemAuthorName,
				AuthorRole:    models.SystemAuthorRole,
				Content:       fmt.Sprintf("Complaint automatically assigned to %s department", dept.Name),
				VisibleToUser: true,
			}
			if err := tx.Create(&autoComment).Error; err != nil {
				return err
			}
			routedDept = &dept
		}

		// 无论路由结果如何都发放积分并重算徽章
		var reporter models.User
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&reporter, complaint.UserID).Error; err != nil {
			return err
		}
		newPoints := reporter.Points + points
		return tx.Model(&models.User{}).Where("id = ?", reporter.ID).
			Updates(map[string]interface{}{"points": newPoints, "badge_level": computeBadge(newPoints)}).Error
	})

	if err != nil {
		return nil, nil, err
	}
	return complaint, routedDept, nil
}

// GetByID 根据ID查询投诉
func (r *gormComplaintRepository) GetByID(id int64) (*models.Complaint, error) {
	var complaint models.Complaint
	if err := r.db.First(&complaint, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &complaint, nil
}

// complaintSelectFields 列表/详情查询共用的 SELECT 字段
var complaintSelectFields = []string{
	"complaints.id AS id",
	"complaints.problem_type AS problem_type",
	"complaints.description AS description",
	"complaints.photo_path AS photo_path",
	"complaints.latitude AS latitude",
	"complaints.longitude AS longitude",
	"complaints.address AS address",
	"complaints.status AS status",
	"reporter.name AS reporter_name",
	"reporter.badge_level AS reporter_badge",
	"complaints.department_id AS department_id",
	"department.name AS department_name",
	"complaints.assigned_to_user_id AS assigned_to_user_id",
	"assignee.name AS assigned_to_name",
	"complaints.created_at AS created_at",
	"complaints.updated_at AS updated_at",
}

// buildListQuery 构建带过滤条件的基础查询（不含 SELECT/排序/分页）
func (r *gormComplaintRepository) buildListQuery(filter ComplaintListFilter) *gorm.DB {
	queryBuilder := r.db.Model(&models.Complaint{}).
		Joins("LEFT JOIN users AS reporter ON reporter.id = complaints.user_id").
		Joins("LEFT JOIN departments AS department ON department.id = complaints.department_id").
		Joins("LEFT JOIN users AS assignee ON assignee.id = complaints.assigned_to_user_id")

	if filter.Status != "" {
		queryBuilder = queryBuilder.Where("complaints.status = ?", filter.Status)
	}
	if filter.DepartmentID != nil {
		queryBuilder = queryBuilder.Where("complaints.department_id = ?", *filter.DepartmentID)
	}
	if filter.AssignedToUserID != nil {
		queryBuilder = queryBuilder.Where("complaints.assigned_to_user_id = ?", *filter.AssignedToUserID)
	}
	if filter.Search != "" {
		searchTerm := "%" + filter.Search + "%"
		queryBuilder = queryBuilder.Where(
			"complaints.problem_type LIKE ? OR complaints.description LIKE ? OR complaints.address LIKE ? OR reporter.name LIKE ?",
			searchTerm, searchTerm, searchTerm, searchTerm)
	}
	if filter.From != nil {
		queryBuilder = queryBuilder.Where("complaints.created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		queryBuilder = queryBuilder.Where("complaints.created_at <= ?", *filter.To)
	}
	return queryBuilder
}

// applyListOrder 处理排序，白名单校验 sortBy 字段，防止 SQL 注入
func applyListOrder(queryBuilder *gorm.DB, sortBy, sortOrder string) *gorm.DB {
	if sortBy != "" {
		allowedSortByFields := map[string]string{
			"createdAt":    "complaints.created_at",
			"status":       "complaints.status",
			"problemType":  "complaints.problem_type",
			"reporterName": "reporter.name",
			"department":   "department.name",
		}
		dbSortBy, isValidField := allowedSortByFields[sortBy]
		if !isValidField {
			dbSortBy = "complaints.created_at" // 默认排序字段
		}
		if strings.ToLower(sortOrder) != "asc" {
			sortOrder = "desc"
		}
		return queryBuilder.Order(dbSortBy + " " + sortOrder)
	}
	// 默认排序
	return queryBuilder.Order("complaints.created_at desc")
}

// GetComplaints 获取投诉列表，支持分页、排序、搜索和筛选
func (r *gormComplaintRepository) GetComplaints(page, limit int, sortBy, sortOrder string, filter ComplaintListFilter) ([]models.ComplaintResponse, int64, error) {
	var complaints []models.ComplaintResponse
	var totalItems int64

	queryBuilder := r.buildListQuery(filter)

	// 执行 COUNT 查询获取总数 (基于已应用的过滤器)
	if err := queryBuilder.Count(&totalItems).Error; err != nil {
		return nil, 0, err
	}

	queryBuilder = applyListOrder(queryBuilder.Select(complaintSelectFields), sortBy, sortOrder)

	// 处理分页
	offset := (page - 1) * limit
	if err := queryBuilder.Offset(offset).Limit(limit).Find(&complaints).Error; err != nil {
		return nil, 0, err
	}

	return complaints, totalItems, nil
}

// ListForExport 导出用全量查询，与列表查询共享过滤与排序逻辑
func (r *gormComplaintRepository) ListForExport(sortBy, sortOrder string, filter ComplaintListFilter) ([]models.ComplaintResponse, error) {
	var complaints []models.ComplaintResponse
	queryBuilder := applyListOrder(r.buildListQuery(filter).Select(complaintSelectFields), sortBy, sortOrder)
	if err := queryBuilder.Find(&complaints).Error; err != nil {
		return nil, err
	}
	return complaints, nil
}

// GetDetailByID 查询投诉详情，包含关联名称
func (r *gormComplaintRepository) GetDetailByID(id int64) (*models.ComplaintResponse, error) {
	var detail models.ComplaintResponse
	tx := r.db.Model(&models.Complaint{}).
		Select(complaintSelectFields).
		Joins("LEFT JOIN users AS reporter ON reporter.id = complaints.user_id").
		Joins("LEFT JOIN departments AS department ON department.id = complaints.department_id").
		Joins("LEFT JOIN users AS assignee ON assignee.id = complaints.assigned_to_user_id").
		Where("complaints.id = ?", id).
		First(&detail)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, tx.Error
	}
	return &detail, nil
}

// ListByReporter 查询某市民提交的全部投诉
func (r *gormComplaintRepository) ListByReporter(userID int64) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&complaints).Error
	return complaints, err
}

// ListByAssignee 查询指派给某技术员的全部投诉
func (r *gormComplaintRepository) ListByAssignee(technicianID int64) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := r.db.Where("assigned_to_user_id = ?", technicianID).Order("created_at desc").Find(&complaints).Error
	return complaints, err
}

// ListAvailableForDepartment 查询某部门内未指派且处于 Pending 状态的投诉
func (r *gormComplaintRepository) ListAvailableForDepartment(departmentID int64) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := r.db.Where("department_id = ? AND assigned_to_user_id IS NULL AND status = ?",
		departmentID, string(models.StatusPending)).
		Order("created_at desc").Find(&complaints).Error
	return complaints, err
}

// Transition 校验并执行状态流转。
// 整个读-检-写序列在事务内完成并对投诉行加锁，失败时不产生任何写入。
func (r *gormComplaintRepository) Transition(id int64, newStatus models.ComplaintStatus, actor models.Actor) (*models.Complaint, error) {
	var complaint models.Complaint

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&complaint, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			return err
		}

		if !models.CanChangeStatus(actor.Role, actor.ID, actor.DepartmentID, &complaint) {
			return ErrOperationForbidden
		}

		oldStatus := models.ComplaintStatus(complaint.Status)
		if !models.IsValidStatusTransition(oldStatus, newStatus) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, oldStatus, newStatus)
		}

		// 技术员标记已修复前必须提交施工中与完工两张照片记录
		if actor.Role == models.RoleTechnician && newStatus == models.StatusFixed {
			var photoCount int64
			if err := tx.Model(&models.TechnicianPhoto{}).Where("complaint_id = ?", id).Count(&photoCount).Error; err != nil {
				return err
			}
			if photoCount < 2 {
				return ErrPhotosRequired
			}
		}

		now := time.Now()
		if err := tx.Model(&models.Complaint{}).Where("id = ?", id).
			Updates(map[string]interface{}{"status": string(newStatus), "updated_at": &now}).Error; err != nil {
			return err
		}
		complaint.Status = string(newStatus)
		complaint.UpdatedAt = &now

		auditComment := models.Comment{
			ComplaintID:   id,
			AuthorID:      actor.ID,
			AuthorName:    actor.Name,
			AuthorRole:    actor.Role,
			Content:       fmt.Sprintf("Status changed from %s to %s", oldStatus, newStatus),
			VisibleToUser: true,
		}
		return tx.Create(&auditComment).Error
	})

	if err != nil {
		return nil, err
	}
	return &complaint, nil
}

// Assign 执行指派/改派。
// 负载闸门是硬前置条件：目标技术员存在 Pending/InProgress 工单时整个事务回滚，
// 不产生任何指派历史写入。闸门通过后将旧的激活记录全部置为非激活并插入新记录，
// 指派历史只追加；当前指派始终可由唯一的激活记录推导。
func (r *gormComplaintRepository) Assign(id int64, departmentID, assignedToUserID *int64, note *string, actor models.Actor) (*models.ComplaintAssignment, error) {
	var assignment models.ComplaintAssignment

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var complaint models.Complaint
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&complaint, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			return err
		}

		if !models.CanAssign(actor.Role, actor.DepartmentID, &complaint) {
			return ErrOperationForbidden
		}

		if assignedToUserID != nil {
			// 锁定技术员行，串行化同一技术员上的并发指派，
			// 避免两笔指派同时观察到零工单而双双通过闸门
			var technician models.User
			if err := tx.Set("gorm:query_option", "FOR UPDATE").
				Where("id = ? AND role = ?", *assignedToUserID, models.RoleTechnician).
				First(&technician).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrTechnicianNotFound
				}
				return err
			}

			var openCount int64
			if err := tx.Model(&models.Complaint{}).
				Where("assigned_to_user_id = ? AND status IN ?", *assignedToUserID,
					[]string{string(models.StatusPending), string(models.StatusInProgress)}).
				Count(&openCount).Error; err != nil {
				return err
			}
			if openCount > 0 {
				return ErrTechnicianBusy
			}
		}

		// 替换式指派：旧激活记录全部置为非激活，再插入新记录
		if err := tx.Model(&models.ComplaintAssignment{}).
			Where("complaint_id = ? AND is_active = ?", id, true).
			Update("is_active", false).Error; err != nil {
			return err
		}

		now := time.Now()
		assignment = models.ComplaintAssignment{
			ComplaintID:      id,
			DepartmentID:     departmentID,
			AssignedToUserID: assignedToUserID,
			Note:             note,
			AssignedByUserID: actor.ID,
			AssignedAt:       now,
			IsActive:         true,
		}
		if err := tx.Create(&assignment).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Complaint{}).Where("id = ?", id).
			Updates(map[string]interface{}{
				"department_id":       departmentID,
				"assigned_to_user_id": assignedToUserID,
				"updated_at":          &now,
			}).Error; err != nil {
			return err
		}

		auditComment := models.Comment{
			ComplaintID:   id,
			AuthorID:      actor.ID,
			AuthorName:    actor.Name,
			AuthorRole:    actor.Role,
			Content:       "Complaint assignment updated",
			VisibleToUser: true,
		}
		return tx.Create(&auditComment).Error
	})

	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// Purge 硬删除投诉并级联删除其从属数据
func (r *gormComplaintRepository) Purge(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var complaint models.Complaint
		if err := tx.First(&complaint, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			return err
		}

		var commentIDs []int64
		if err := tx.Model(&models.Comment{}).Where("complaint_id = ?", id).Pluck("id", &commentIDs).Error; err != nil {
			return err
		}
		if len(commentIDs) > 0 {
			if err := tx.Unscoped().Where("comment_id IN ?", commentIDs).Delete(&models.CommentAttachment{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Unscoped().Where("complaint_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("complaint_id = ?", id).Delete(&models.ComplaintRating{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("complaint_id = ?", id).Delete(&models.ComplaintAssignment{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("complaint_id = ?", id).Delete(&models.TechnicianPhoto{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Complaint{}, id).Error
	})
}

// CountByStatus 按状态统计投诉数量，用于各看板
func (r *gormComplaintRepository) CountByStatus(status models.ComplaintStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.Complaint{}).Where("status = ?", string(status)).Count(&count).Error
	return count, err
}
