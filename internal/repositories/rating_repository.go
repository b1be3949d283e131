package repositories

import (
	"errors"
	"time"

	"github.com/civicfix/internal/models"
	"gorm.io/gorm"
)

// 评分相关错误
var ErrNotComplaintOwner = errors.New("只有投诉提交人可以评分")
var ErrComplaintNotResolved = errors.New("投诉尚未修复，不能评分")
var ErrRatingEditExpired = errors.New("评分修改窗口已过期")

// RatingRepository 定义了投诉评分数据仓库的接口
type RatingRepository interface {
	// Rate 创建或修改评分。投诉必须存在、属于评分人且已修复；
	// 修改仅在首次评分后 24 小时内允许，窗口以首次评分时间为锚点，修改不重置窗口。
	// now 由调用方传入，整个检查-写入序列在一个事务内完成。
	Rate(complaintID, userID int64, score int, comment *string, now time.Time) (*models.ComplaintRating, error)
	GetByComplaintID(complaintID int64) (*models.ComplaintRating, error)
	// AverageByDepartment 统计各部门已评分投诉的平均分
	AverageByDepartment() ([]models.DepartmentRatingSummary, error)
}

// gormRatingRepository 是 RatingRepository 的 GORM 实现
type gormRatingRepository struct {
	db *gorm.DB
}

// NewGormRatingRepository 创建一个新的 gormRatingRepository 实例
func NewGormRatingRepository(db *gorm.DB) RatingRepository {
	return &gormRatingRepository{db: db}
}

const ratingEditWindow = 24 * time.Hour

// Rate 创建或修改评分
func (r *gormRatingRepository) Rate(complaintID, userID int64, score int, comment *string, now time.Time) (*models.ComplaintRating, error) {
	var rating models.ComplaintRating

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var complaint models.Complaint
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&complaint, complaintID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			return err
		}

		if complaint.UserID != userID {
			return ErrNotComplaintOwner
		}
		if complaint.Status != string(models.StatusFixed) {
			return ErrComplaintNotResolved
		}

		var existing models.ComplaintRating
		err := tx.Where("complaint_id = ?", complaintID).First(&existing).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err == nil {
			// 修改路径：窗口锚定在首次评分时间，created_at 永不改动
			if now.Sub(existing.CreatedAt) > ratingEditWindow {
				return ErrRatingEditExpired
			}
			if err := tx.Model(&models.ComplaintRating{}).Where("id = ?", existing.ID).
				Updates(map[string]interface{}{
					"score":            score,
					"comment":          comment,
					"last_modified_at": &now,
				}).Error; err != nil {
				return err
			}
			existing.Score = score
			existing.Comment = comment
			existing.LastModifiedAt = &now
			rating = existing
			return nil
		}

		rating = models.ComplaintRating{
			ComplaintID: complaintID,
			UserID:      userID,
			Score:       score,
			Comment:     comment,
			CreatedAt:   now,
		}
		if err := tx.Create(&rating).Error; err != nil {
			return err
		}
		return tx.Model(&models.Complaint{}).Where("id = ?", complaintID).
			Update("rating_id", rating.ID).Error
	})

	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// GetByComplaintID 查询某投诉的评分
func (r *gormRatingRepository) GetByComplaintID(complaintID int64) (*models.ComplaintRating, error) {
	var rating models.ComplaintRating
	if err := r.db.Where("complaint_id = ?", complaintID).First(&rating).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &rating, nil
}

// AverageByDepartment 统计各部门已评分投诉的平均分与评分数
func (r *gormRatingRepository) AverageByDepartment() ([]models.DepartmentRatingSummary, error) {
	var summaries []models.DepartmentRatingSummary
	err := r.db.Model(&models.ComplaintRating{}).
		Select("departments.id AS department_id, departments.name AS department_name, AVG(complaint_ratings.score) AS average_score, COUNT(complaint_ratings.id) AS rating_count").
		Joins("JOIN complaints ON complaints.id = complaint_ratings.complaint_id").
		Joins("JOIN departments ON departments.id = complaints.department_id").
		Group("departments.id, departments.name").
		Order("average_score desc").
		Find(&summaries).Error
	return summaries, err
}
