package services

import (
	"errors"

	"github.com/civicfix/internal/models"
	"github.com/civicfix/internal/repositories"
)

var ErrTooManyAttachments = repositories.ErrTooManyAttachments

// CommentService 定义了投诉评论业务逻辑的服务接口
type CommentService interface {
	// Add 以操作人身份添加评论，附件为可选的引用列表。
	// internal 为 true 时评论对市民隐藏，仅工作人员角色可用。
	Add(complaintID int64, actor models.Actor, content string, internal bool, attachments []models.AttachmentRef) (*models.Comment, error)
	// ListByComplaint 返回某投诉的评论，市民只能看到对其可见的部分
	ListByComplaint(complaintID int64, actor models.Actor) ([]models.Comment, error)
}

type commentService struct {
	commentRepo   repositories.CommentRepository
	complaintRepo repositories.ComplaintRepository
}

// NewCommentService 创建一个新的 CommentService 实例
func NewCommentService(commentRepo repositories.CommentRepository, complaintRepo repositories.ComplaintRepository) CommentService {
	return &commentService{commentRepo: commentRepo, complaintRepo: complaintRepo}
}

// Add 添加评论
func (s *commentService) Add(complaintID int64, actor models.Actor, content string, internal bool, attachments []models.AttachmentRef) (*models.Comment, error) {
	complaint, err := s.complaintRepo.GetByID(complaintID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, err
	}
	if !models.CanViewComplaint(actor.Role, actor.ID, actor.DepartmentID, complaint) {
		return nil, ErrOperationForbidden
	}
	// 市民不能发内部评论
	if internal && actor.Role == models.RoleCitizen {
		return nil, ErrOperationForbidden
	}

	comment := &models.Comment{
		ComplaintID:   complaintID,
		AuthorID:      actor.ID,
		AuthorName:    actor.Name,
		AuthorRole:    actor.Role,
		Content:       content,
		VisibleToUser: !internal,
	}
	if err := s.commentRepo.Create(comment, attachments); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListByComplaint 返回某投诉的评论
func (s *commentService) ListByComplaint(complaintID int64, actor models.Actor) ([]models.Comment, error) {
	complaint, err := s.complaintRepo.GetByID(complaintID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, err
	}
	if !models.CanViewComplaint(actor.Role, actor.ID, actor.DepartmentID, complaint) {
		return nil, ErrOperationForbidden
	}
	visibleOnly := actor.Role == models.RoleCitizen
	return s.commentRepo.ListByComplaint(complaintID, visibleOnly)
}
