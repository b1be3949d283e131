package repositories

import (
	"errors"

	"github.com/civicfix/internal/models"
	"gorm.io/gorm"
)

var ErrRouteAlreadyExists = errors.New("该问题类型已存在激活路由")

// DepartmentRepository 定义了部门与问题类型路由数据仓库的接口
type DepartmentRepository interface {
	GetByID(id int64) (*models.Department, error)
	ListDepartments(activeOnly bool) ([]models.Department, error)
	CreateDepartment(department *models.Department) error
	UpdateDepartment(id int64, updates map[string]interface{}) (*models.Department, error)
	// FindActiveRouteByProblemType 按问题类型查找激活路由，未命中返回 ErrRecordNotFound
	FindActiveRouteByProblemType(problemType string) (*models.ProblemTypeRoute, error)
	ListRoutes() ([]models.ProblemTypeRoute, error)
	// CreateRoute 新建激活路由，同一问题类型已有激活路由时拒绝
	CreateRoute(route *models.ProblemTypeRoute) error
	SetRouteActive(id int64, active bool) error
}

// gormDepartmentRepository 是 DepartmentRepository 的 GORM 实现
type gormDepartmentRepository struct {
	db *gorm.DB
}

// NewGormDepartmentRepository 创建一个新的 gormDepartmentRepository 实例
func NewGormDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &gormDepartmentRepository{db: db}
}

// GetByID 根据ID查询部门
func (r *gormDepartmentRepository) GetByID(id int64) (*models.Department, error) {
	var department models.Department
	if err := r.db.First(&department, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &department, nil
}

// ListDepartments 查询部门列表
func (r *gormDepartmentRepository) ListDepartments(activeOnly bool) ([]models.Department, error) {
	var departments []models.Department
	queryBuilder := r.db.Order("name asc")
	if activeOnly {
		queryBuilder = queryBuilder.Where("is_active = ?", true)
	}
	err := queryBuilder.Find(&departments).Error
	return departments, err
}

// CreateDepartment 创建部门
func (r *gormDepartmentRepository) CreateDepartment(department *models.Department) error {
	return r.db.Create(department).Error
}

// UpdateDepartment 部分更新部门信息
func (r *gormDepartmentRepository) UpdateDepartment(id int64, updates map[string]interface{}) (*models.Department, error) {
	var department models.Department
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&department, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&models.Department{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&department, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &department, nil
}

// FindActiveRouteByProblemType 按问题类型查找激活路由
func (r *gormDepartmentRepository) FindActiveRouteByProblemType(problemType string) (*models.ProblemTypeRoute, error) {
	var route models.ProblemTypeRoute
	err := r.db.Where("problem_type = ? AND is_active = ?", problemType, true).First(&route).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &route, nil
}

// ListRoutes 查询全部路由，含已停用的
func (r *gormDepartmentRepository) ListRoutes() ([]models.ProblemTypeRoute, error) {
	var routes []models.ProblemTypeRoute
	err := r.db.Order("problem_type asc").Find(&routes).Error
	return routes, err
}

// CreateRoute 新建激活路由
func (r *gormDepartmentRepository) CreateRoute(route *models.ProblemTypeRoute) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.ProblemTypeRoute{}).
			Where("problem_type = ? AND is_active = ?", route.ProblemType, true).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrRouteAlreadyExists
		}
		route.IsActive = true
		return tx.Create(route).Error
	})
}

// SetRouteActive 启用或停用路由
func (r *gormDepartmentRepository) SetRouteActive(id int64, active bool) error {
	result := r.db.Model(&models.ProblemTypeRoute{}).Where("id = ?", id).Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
