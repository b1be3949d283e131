package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/civicfix/internal/models"
	"github.com/civicfix/internal/repositories"
	"github.com/civicfix/pkg/email"
)

// 服务层错误，由 handler 翻译为对应的 HTTP 状态码
var ErrComplaintNotFound = errors.New("投诉未找到")
var ErrInvalidStatusValue = errors.New("无效的状态值")
var ErrInvalidTransition = repositories.ErrInvalidTransition
var ErrPhotosRequired = repositories.ErrPhotosRequired
var ErrTechnicianBusy = repositories.ErrTechnicianBusy
var ErrTechnicianNotFound = repositories.ErrTechnicianNotFound
var ErrOperationForbidden = repositories.ErrOperationForbidden

// SubmitComplaintInput 提交投诉的输入
type SubmitComplaintInput struct {
	ProblemType string
	Description *string
	PhotoPath   *string
	Latitude    float64
	Longitude   float64
	Address     *string
}

// ComplaintService 定义了投诉业务逻辑的服务接口
type ComplaintService interface {
	// Submit 提交投诉：创建记录、按问题类型自动路由、奖励积分，
	// 路由命中时向责任部门发送通知邮件（发送失败不影响提交）。
	Submit(ctx context.Context, reporterID int64, input SubmitComplaintInput) (*models.Complaint, error)
	GetByID(id int64, actor models.Actor) (*models.Complaint, error)
	GetDetail(id int64, actor models.Actor) (*models.ComplaintResponse, error)
	List(page, limit int, sortBy, sortOrder string, filter repositories.ComplaintListFilter) ([]models.ComplaintResponse, int64, error)
	ListForExport(sortBy, sortOrder string, filter repositories.ComplaintListFilter) ([]models.ComplaintResponse, error)
	ListMine(reporterID int64) ([]models.Complaint, error)
	ListAssigned(technicianID int64) ([]models.Complaint, error)
	ListAvailableForDepartment(departmentID int64) ([]models.Complaint, error)
	ChangeStatus(id int64, newStatus string, actor models.Actor) (*models.Complaint, error)
	Assign(id int64, departmentID, assignedToUserID *int64, note *string, actor models.Actor) (*models.ComplaintAssignment, error)
	Purge(ctx context.Context, id int64) error
	StatusCounts() (map[string]int64, error)
}

type complaintService struct {
	complaintRepo   repositories.ComplaintRepository
	badgeService    BadgeService
	mailSender      email.Sender // 可为 nil，表示不发通知
	pointsPerReport int
}

// NewComplaintService 创建一个新的 ComplaintService 实例
func NewComplaintService(
	complaintRepo repositories.ComplaintRepository,
	badgeService BadgeService,
	mailSender email.Sender,
	pointsPerReport int,
) ComplaintService {
	return &complaintService{
		complaintRepo:   complaintRepo,
		badgeService:    badgeService,
		mailSender:      mailSender,
		pointsPerReport: pointsPerReport,
	}
}

// Submit 提交投诉
func (s *complaintService) Submit(ctx context.Context, reporterID int64, input SubmitComplaintInput) (*models.Complaint, error) {
	complaint := &models.Complaint{
		UserID:      reporterID,
		ProblemType: input.ProblemType,
		Description: input.Description,
		PhotoPath:   input.PhotoPath,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		Address:     input.Address,
	}

	created, routedDept, err := s.complaintRepo.Submit(ctx, complaint, s.pointsPerReport, s.badgeService.ComputeLevel)
	if err != nil {
		return nil, err
	}

	if routedDept != nil && s.mailSender != nil {
		// 邮件通知是尽力而为，失败只记录日志
		dept := *routedDept
		go func() {
			subject := fmt.Sprintf("New complaint #%d: %s", created.ID, created.ProblemType)
			body := fmt.Sprintf("<p>A new <b>%s</b> complaint (#%d) has been routed to the %s department.</p>",
				created.ProblemType, created.ID, dept.Name)
			if err := s.mailSender.Send([]string{dept.Email}, subject, body); err != nil {
				log.Printf("警告: 向部门 %s 发送派单通知失败: %v", dept.Name, err)
			}
		}()
	}

	return created, nil
}

// GetByID 查询投诉，带访问控制
func (s *complaintService) GetByID(id int64, actor models.Actor) (*models.Complaint, error) {
	complaint, err := s.complaintRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, err
	}
	if !models.CanViewComplaint(actor.Role, actor.ID, actor.DepartmentID, complaint) {
		return nil, ErrOperationForbidden
	}
	return complaint, nil
}

// GetDetail 查询投诉详情视图，带访问控制
func (s *complaintService) GetDetail(id int64, actor models.Actor) (*models.ComplaintResponse, error) {
	complaint, err := s.complaintRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, err
	}
	if !models.CanViewComplaint(actor.Role, actor.ID, actor.DepartmentID, complaint) {
		return nil, ErrOperationForbidden
	}
	return s.complaintRepo.GetDetailByID(id)
}

// List 分页查询投诉列表
func (s *complaintService) List(page, limit int, sortBy, sortOrder string, filter repositories.ComplaintListFilter) ([]models.ComplaintResponse, int64, error) {
	return s.complaintRepo.GetComplaints(page, limit, sortBy, sortOrder, filter)
}

// ListForExport 导出用全量查询
func (s *complaintService) ListForExport(sortBy, sortOrder string, filter repositories.ComplaintListFilter) ([]models.ComplaintResponse, error) {
	return s.complaintRepo.ListForExport(sortBy, sortOrder, filter)
}

// ListMine 查询市民自己提交的投诉
func (s *complaintService) ListMine(reporterID int64) ([]models.Complaint, error) {
	return s.complaintRepo.ListByReporter(reporterID)
}

// ListAssigned 查询技术员名下的投诉
func (s *complaintService) ListAssigned(technicianID int64) ([]models.Complaint, error) {
	return s.complaintRepo.ListByAssignee(technicianID)
}

// ListAvailableForDepartment 查询部门内待指派的投诉
func (s *complaintService) ListAvailableForDepartment(departmentID int64) ([]models.Complaint, error) {
	return s.complaintRepo.ListAvailableForDepartment(departmentID)
}

// ChangeStatus 执行状态流转
func (s *complaintService) ChangeStatus(id int64, newStatus string, actor models.Actor) (*models.Complaint, error) {
	if !models.IsValidStatus(newStatus) {
		return nil, ErrInvalidStatusValue
	}
	complaint, err := s.complaintRepo.Transition(id, models.ComplaintStatus(newStatus), actor)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, err
	}
	return complaint, nil
}

// Assign 指派或改派投诉
func (s *complaintService) Assign(id int64, departmentID, assignedToUserID *int64, note *string, actor models.Actor) (*models.ComplaintAssignment, error) {
	assignment, err := s.complaintRepo.Assign(id, departmentID, assignedToUserID, note, actor)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, err
	}
	return assignment, nil
}

// Purge 管理员硬删除投诉及其从属数据
func (s *complaintService) Purge(ctx context.Context, id int64) error {
	err := s.complaintRepo.Purge(ctx, id)
	if errors.Is(err, repositories.ErrRecordNotFound) {
		return ErrComplaintNotFound
	}
	return err
}

// StatusCounts 按状态统计投诉数量
func (s *complaintService) StatusCounts() (map[string]int64, error) {
	counts := make(map[string]int64, 3)
	for _, status := range []models.ComplaintStatus{models.StatusPending, models.StatusInProgress, models.StatusFixed} {
		count, err := s.complaintRepo.CountByStatus(status)
		if err != nil {
			return nil, err
		}
		counts[string(status)] = count
	}
	return counts, nil
}
