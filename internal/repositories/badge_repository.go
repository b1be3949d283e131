package repositories

import (
	"github.com/civicfix/internal/models"
	"gorm.io/gorm"
)

// BadgeRepository 定义了徽章等级数据仓库的接口
type BadgeRepository interface {
	// ListByPointsAsc 按积分门槛升序返回全部徽章等级
	ListByPointsAsc() ([]models.Badge, error)
}

// gormBadgeRepository 是 BadgeRepository 的 GORM 实现
type gormBadgeRepository struct {
	db *gorm.DB
}

// NewGormBadgeRepository 创建一个新的 gormBadgeRepository 实例
func NewGormBadgeRepository(db *gorm.DB) BadgeRepository {
	return &gormBadgeRepository{db: db}
}

// ListByPointsAsc 按积分门槛升序返回全部徽章等级
func (r *gormBadgeRepository) ListByPointsAsc() ([]models.Badge, error) {
	var badges []models.Badge
	err := r.db.Order("points_required asc").Find(&badges).Error
	return badges, err
}
