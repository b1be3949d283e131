package models

import (
	"time"

	"gorm.io/gorm"
)

// 系统中的四种角色。市民提交投诉并获得积分，
// 技术员处理被指派的投诉，部门经理和管理员负责派单与状态流转。
const (
	RoleCitizen           = "User"
	RoleTechnician        = "Technician"
	RoleDepartmentManager = "DepartmentManager"
	RoleAdmin             = "Admin"
)

// User 对应于数据库中的 users 表
type User struct {
	ID           int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string         `json:"name" gorm:"column:name;not null;size:100"`
	Email        string         `json:"email" gorm:"column:email;unique;not null;size:255"`
	PasswordHash string         `json:"-" gorm:"column:password_hash;not null;size:255"` // 密码哈希不通过JSON暴露
	Points       int            `json:"points" gorm:"column:points;not null;default:0"`  // 累计积分，仅市民角色累加
	BadgeLevel   string         `json:"badgeLevel" gorm:"column:badge_level;not null;default:'Bronze';size:50"`
	Role         string         `json:"role" gorm:"column:role;not null;default:'User';size:20"`
	DepartmentID *int64         `json:"departmentId,omitempty" gorm:"column:department_id"` // 技术员/部门经理所属部门
	CreatedAt    time.Time      `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt    time.Time      `json:"updatedAt" gorm:"column:updated_at;not null;autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// TableName 指定 User 结构体对应的数据库表名
func (User) TableName() string {
	return "users"
}

// CitizenScoreEntry 市民积分榜条目
type CitizenScoreEntry struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Points     int    `json:"points"`
	BadgeLevel string `json:"badgeLevel"`
}

// TechnicianScoreEntry 技术员工单完成榜条目
type TechnicianScoreEntry struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	DepartmentName string `json:"departmentName"`
	CompletedTasks int64  `json:"completedTasks"`
	OpenTasks      int64  `json:"openTasks"` // Pending 与 InProgress 之和
}
