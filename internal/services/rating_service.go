package services

import (
	"errors"
	"time"

	"github.com/civicfix/internal/models"
	"github.com/civicfix/internal/repositories"
)

var ErrInvalidScore = errors.New("评分必须在1到5之间")
var ErrNotComplaintOwner = repositories.ErrNotComplaintOwner
var ErrComplaintNotResolved = repositories.ErrComplaintNotResolved
var ErrRatingEditExpired = repositories.ErrRatingEditExpired

// RatingService 定义了投诉评分业务逻辑的服务接口
type RatingService interface {
	// Rate 为已修复的投诉创建或修改评分，分值范围 1 到 5
	Rate(complaintID, userID int64, score int, comment *string) (*models.ComplaintRating, error)
	GetByComplaintID(complaintID int64) (*models.ComplaintRating, error)
	AverageByDepartment() ([]models.DepartmentRatingSummary, error)
}

type ratingService struct {
	ratingRepo repositories.RatingRepository
	nowFn      func() time.Time // 测试中可替换
}

// NewRatingService 创建一个新的 RatingService 实例
func NewRatingService(ratingRepo repositories.RatingRepository) RatingService {
	return &ratingService{ratingRepo: ratingRepo, nowFn: time.Now}
}

// Rate 创建或修改评分
func (s *ratingService) Rate(complaintID, userID int64, score int, comment *string) (*models.ComplaintRating, error) {
	if score < 1 || score > 5 {
		return nil, ErrInvalidScore
	}
	rating, err := s.ratingRepo.Rate(complaintID, userID, score, comment, s.nowFn())
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, err
	}
	return rating, nil
}

// GetByComplaintID 查询某投诉的评分
func (s *ratingService) GetByComplaintID(complaintID int64) (*models.ComplaintRating, error) {
	rating, err := s.ratingRepo.GetByComplaintID(complaintID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, err
	}
	return rating, nil
}

// AverageByDepartment 各部门满意度统计
func (s *ratingService) AverageByDepartment() ([]models.DepartmentRatingSummary, error) {
	return s.ratingRepo.AverageByDepartment()
}
