package repositories

import (
	"errors"
	"time"

	"github.com/civicfix/internal/models"
	"gorm.io/gorm"
)

var ErrNotAssignedTechnician = errors.New("只有被指派的技术员可以上传施工照片")

// PhotoRepository 定义了技术员施工照片数据仓库的接口
type PhotoRepository interface {
	// AddWorkPhotos 为投诉记录一对施工照片（施工中与完工各一张）。
	// 仅被指派的技术员可上传；投诉处于 Pending 时顺带推进为 InProgress。
	AddWorkPhotos(complaintID, technicianID int64, workInProgressPath, fixedPath string) ([]models.TechnicianPhoto, error)
	ListByComplaint(complaintID int64) ([]models.TechnicianPhoto, error)
	CountByComplaint(complaintID int64) (int64, error)
}

// gormPhotoRepository 是 PhotoRepository 的 GORM 实现
type gormPhotoRepository struct {
	db *gorm.DB
}

// NewGormPhotoRepository 创建一个新的 gormPhotoRepository 实例
func NewGormPhotoRepository(db *gorm.DB) PhotoRepository {
	return &gormPhotoRepository{db: db}
}

// AddWorkPhotos 记录施工照片并在需要时推进状态
func (r *gormPhotoRepository) AddWorkPhotos(complaintID, technicianID int64, workInProgressPath, fixedPath string) ([]models.TechnicianPhoto, error) {
	var photos []models.TechnicianPhoto

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var complaint models.Complaint
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&complaint, complaintID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			return err
		}

		if complaint.AssignedToUserID == nil || *complaint.AssignedToUserID != technicianID {
			return ErrNotAssignedTechnician
		}

		now := time.Now()
		photos = []models.TechnicianPhoto{
			{ComplaintID: complaintID, PhotoType: models.PhotoTypeWorkInProgress, PhotoPath: workInProgressPath, UploadedAt: now},
			{ComplaintID: complaintID, PhotoType: models.PhotoTypeFixed, PhotoPath: fixedPath, UploadedAt: now},
		}
		if err := tx.Create(&photos).Error; err != nil {
			return err
		}

		// 上传照片视为开工，仅在 Pending 时推进；Fixed 是终态，绝不回退或改动
		if complaint.Status == string(models.StatusPending) {
			return tx.Model(&models.Complaint{}).Where("id = ?", complaintID).
				Updates(map[string]interface{}{"status": string(models.StatusInProgress), "updated_at": &now}).Error
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return photos, nil
}

// ListByComplaint 查询某投诉的全部施工照片
func (r *gormPhotoRepository) ListByComplaint(complaintID int64) ([]models.TechnicianPhoto, error) {
	var photos []models.TechnicianPhoto
	err := r.db.Where("complaint_id = ?", complaintID).Order("uploaded_at asc").Find(&photos).Error
	return photos, err
}

// CountByComplaint 统计某投诉的施工照片数量
func (r *gormPhotoRepository) CountByComplaint(complaintID int64) (int64, error) {
	var count int64
	err := r.db.Model(&models.TechnicianPhoto{}).Where("complaint_id = ?", complaintID).Count(&count).Error
	return count, err
}
