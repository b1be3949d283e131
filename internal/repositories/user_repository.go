package repositories

import (
	"errors"

	"github.com/civicfix/internal/models"
	"gorm.io/gorm"
)

var ErrEmailAlreadyExists = errors.New("邮箱已被注册")

// UserRepository 定义了用户数据仓库的接口
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int64) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	ListTechniciansByDepartment(departmentID int64) ([]models.User, error)
	// CitizenScoreboard 按积分降序返回市民排行
	CitizenScoreboard(limit int) ([]models.CitizenScoreEntry, error)
	// TechnicianScoreboard 按完成工单数降序返回技术员排行
	TechnicianScoreboard(limit int) ([]models.TechnicianScoreEntry, error)
}

// gormUserRepository 是 UserRepository 的 GORM 实现
type gormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository 创建一个新的 gormUserRepository 实例
func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

// Create 创建用户，邮箱重复时返回 ErrEmailAlreadyExists
func (r *gormUserRepository) Create(user *models.User) error {
	var count int64
	if err := r.db.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrEmailAlreadyExists
	}
	return r.db.Create(user).Error
}

// GetByID 根据ID查询用户
func (r *gormUserRepository) GetByID(id int64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail 根据邮箱查询用户
func (r *gormUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ListTechniciansByDepartment 查询某部门下的全部技术员
func (r *gormUserRepository) ListTechniciansByDepartment(departmentID int64) ([]models.User, error) {
	var technicians []models.User
	err := r.db.Where("role = ? AND department_id = ?", models.RoleTechnician, departmentID).
		Order("name asc").Find(&technicians).Error
	return technicians, err
}

// CitizenScoreboard 按积分降序返回市民排行
func (r *gormUserRepository) CitizenScoreboard(limit int) ([]models.CitizenScoreEntry, error) {
	var entries []models.CitizenScoreEntry
	err := r.db.Model(&models.User{}).
		Select("users.name AS name, users.email AS email, users.points AS points, users.badge_level AS badge_level").
		Where("users.role = ?", models.RoleCitizen).
		Order("users.points desc").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

// TechnicianScoreboard 按完成工单数降序返回技术员排行
func (r *gormUserRepository) TechnicianScoreboard(limit int) ([]models.TechnicianScoreEntry, error) {
	var entries []models.TechnicianScoreEntry
	err := r.db.Model(&models.User{}).
		Select("users.name AS name, users.email AS email, departments.name AS department_name, "+
			"SUM(CASE WHEN complaints.status = ? THEN 1 ELSE 0 END) AS completed_tasks, "+
			"SUM(CASE WHEN complaints.status IN (?, ?) THEN 1 ELSE 0 END) AS open_tasks",
			string(models.StatusFixed), string(models.StatusPending), string(models.StatusInProgress)).
		Joins("LEFT JOIN complaints ON complaints.assigned_to_user_id = users.id").
		Joins("LEFT JOIN departments ON departments.id = users.department_id").
		Where("users.role = ?", models.RoleTechnician).
		Group("users.id, users.name, users.email, departments.name").
		Order("completed_tasks desc").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
