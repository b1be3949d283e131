package models

import (
	"time"

	"gorm.io/gorm"
)

// Department 负责处理某类投诉的政府部门
type Department struct {
	ID          int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string         `json:"name" gorm:"column:name;not null;size:100"`
	Description *string        `json:"description,omitempty" gorm:"column:description;size:500"`
	Email       string         `json:"email" gorm:"column:email;not null;size:50"` // 派单通知收件地址
	IsActive    bool           `json:"isActive" gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time      `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt   time.Time      `json:"updatedAt" gorm:"column:updated_at;not null;autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// TableName 指定 Department 结构体对应的数据库表名
func (Department) TableName() string {
	return "departments"
}

// ProblemTypeRoute 问题类型到责任部门的静态路由。
// 路由可停用（is_active=false）而不删除，停用的路由在查找时视为不存在。
type ProblemTypeRoute struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	ProblemType  string    `json:"problemType" gorm:"column:problem_type;not null;size:50;index"`
	DepartmentID int64     `json:"departmentId" gorm:"column:department_id;not null"`
	IsActive     bool      `json:"isActive" gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt    time.Time `json:"updatedAt" gorm:"column:updated_at;not null;autoUpdateTime"`
}

// TableName 指定 ProblemTypeRoute 结构体对应的数据库表名
func (ProblemTypeRoute) TableName() string {
	return "problem_type_routes"
}

// DepartmentRatingSummary 部门满意度统计视图
type DepartmentRatingSummary struct {
	DepartmentID   int64   `json:"departmentId"`
	DepartmentName string  `json:"departmentName"`
	AverageScore   float64 `json:"averageScore"`
	RatingCount    int64   `json:"ratingCount"`
}
