package services

import (
	"errors"

	"github.com/civicfix/internal/models"
	"github.com/civicfix/internal/repositories"
)

var ErrNotAssignedTechnician = repositories.ErrNotAssignedTechnician

// PhotoService 定义了施工照片业务逻辑的服务接口
type PhotoService interface {
	// AddWorkPhotos 技术员为名下投诉记录施工中与完工两张照片引用，
	// 投诉处于 Pending 时顺带推进为 InProgress
	AddWorkPhotos(complaintID, technicianID int64, workInProgressPath, fixedPath string) ([]models.TechnicianPhoto, error)
	ListByComplaint(complaintID int64) ([]models.TechnicianPhoto, error)
}

type photoService struct {
	photoRepo repositories.PhotoRepository
}

// NewPhotoService 创建一个新的 PhotoService 实例
func NewPhotoService(photoRepo repositories.PhotoRepository) PhotoService {
	return &photoService{photoRepo: photoRepo}
}

// AddWorkPhotos 记录施工照片
func (s *photoService) AddWorkPhotos(complaintID, technicianID int64, workInProgressPath, fixedPath string) ([]models.TechnicianPhoto, error) {
	photos, err := s.photoRepo.AddWorkPhotos(complaintID, technicianID, workInProgressPath, fixedPath)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, err
	}
	return photos, nil
}

// ListByComplaint 查询投诉的施工照片
func (s *photoService) ListByComplaint(complaintID int64) ([]models.TechnicianPhoto, error) {
	return s.photoRepo.ListByComplaint(complaintID)
}
