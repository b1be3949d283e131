package repositories

import (
	"errors"
	"time"

	"github.com/civicfix/internal/models"
	"gorm.io/gorm"
)

var ErrTooManyAttachments = errors.New("附件数量超过上限")

// 单条评论最多允许的附件数
const maxAttachmentsPerComment = 3

// CommentRepository 定义了投诉评论数据仓库的接口
type CommentRepository interface {
	// Create 创建评论及其附件引用，附件超过上限时整体拒绝
	Create(comment *models.Comment, attachments []models.AttachmentRef) error
	// ListByComplaint 按时间升序返回某投诉的评论。
	// visibleOnly 为 true 时过滤掉对市民隐藏的内部评论。
	ListByComplaint(complaintID int64, visibleOnly bool) ([]models.Comment, error)
}

// gormCommentRepository 是 CommentRepository 的 GORM 实现
type gormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository 创建一个新的 gormCommentRepository 实例
func NewGormCommentRepository(db *gorm.DB) CommentRepository {
	return &gormCommentRepository{db: db}
}

// Create 创建评论及其附件引用
func (r *gormCommentRepository) Create(comment *models.Comment, attachments []models.AttachmentRef) error {
	if len(attachments) > maxAttachmentsPerComment {
		return ErrTooManyAttachments
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var complaint models.Complaint
		if err := tx.First(&complaint, comment.ComplaintID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			return err
		}

		if err := tx.Create(comment).Error; err != nil {
			return err
		}

		now := time.Now()
		for _, ref := range attachments {
			attachment := models.CommentAttachment{
				CommentID:   comment.ID,
				FileName:    ref.FileName,
				FilePath:    ref.FilePath,
				ContentType: ref.ContentType,
				FileSize:    ref.FileSize,
				UploadedAt:  now,
			}
			if err := tx.Create(&attachment).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ListByComplaint 按时间升序返回某投诉的评论及附件
func (r *gormCommentRepository) ListByComplaint(complaintID int64, visibleOnly bool) ([]models.Comment, error) {
	var comments []models.Comment
	queryBuilder := r.db.Preload("Attachments").Where("complaint_id = ?", complaintID)
	if visibleOnly {
		queryBuilder = queryBuilder.Where("visible_to_user = ?", true)
	}
	err := queryBuilder.Order("created_at asc").Find(&comments).Error
	return comments, err
}
