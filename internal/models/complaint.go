package models

import (
	"time"

	"gorm.io/gorm"
)

// ComplaintStatus 定义了投诉的状态类型
type ComplaintStatus string

const (
	StatusPending    ComplaintStatus = "Pending"    // 已提交，等待处理
	StatusInProgress ComplaintStatus = "InProgress" // 处理中
	StatusFixed      ComplaintStatus = "Fixed"      // 已修复，终态
)

// IsValidStatus 检查状态值是否有效
func IsValidStatus(s string) bool {
	switch ComplaintStatus(s) {
	case StatusPending, StatusInProgress, StatusFixed:
		return true
	}
	return false
}

// IsValidStatusTransition 检查状态流转是否合法。
// 合法流转仅有 Pending→InProgress、Pending→Fixed、InProgress→Fixed；
// Fixed 为终态，任何流出（包括原状态重复提交）都不合法。
func IsValidStatusTransition(from, to ComplaintStatus) bool {
	switch from {
	case StatusPending:
		return to == StatusInProgress || to == StatusFixed
	case StatusInProgress:
		return to == StatusFixed
	case StatusFixed:
		return false
	default:
		return false
	}
}

// Complaint 对应于数据库中的 complaints 表
type Complaint struct {
	ID               int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID           int64          `json:"userId" gorm:"column:user_id;not null;index"` // 提交人
	ProblemType      string         `json:"problemType" gorm:"column:problem_type;not null;size:50"`
	Description      *string        `json:"description,omitempty" gorm:"column:description;size:1000"`
	PhotoPath        *string        `json:"photoPath,omitempty" gorm:"column:photo_path;size:255"` // 市民提交时的照片引用
	Latitude         float64        `json:"latitude" gorm:"column:latitude;not null"`
	Longitude        float64        `json:"longitude" gorm:"column:longitude;not null"`
	Address          *string        `json:"address,omitempty" gorm:"column:address;size:255"`
	Status           string         `json:"status" gorm:"column:status;not null;default:'Pending';size:20;index"`
	DepartmentID     *int64         `json:"departmentId,omitempty" gorm:"column:department_id;index"`
	AssignedToUserID *int64         `json:"assignedToUserId,omitempty" gorm:"column:assigned_to_user_id;index"`
	RatingID         *int64         `json:"ratingId,omitempty" gorm:"column:rating_id"`
	CreatedAt        time.Time      `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt        *time.Time     `json:"updatedAt,omitempty" gorm:"column:updated_at"` // 首次变更前为空
	DeletedAt        gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// TableName 指定 Complaint 结构体对应的数据库表名
func (Complaint) TableName() string {
	return "complaints"
}

// ComplaintResponse 列表/详情视图的投诉信息，包含关联名称
type ComplaintResponse struct {
	ID               int64      `json:"id"`
	ProblemType      string     `json:"problemType"`
	Description      *string    `json:"description,omitempty"`
	PhotoPath        *string    `json:"photoPath,omitempty"`
	Latitude         float64    `json:"latitude"`
	Longitude        float64    `json:"longitude"`
	Address          *string    `json:"address,omitempty"`
	Status           string     `json:"status"`
	ReporterName     string     `json:"reporterName"`
	ReporterBadge    string     `json:"reporterBadge"`
	DepartmentID     *int64     `json:"departmentId,omitempty"`
	DepartmentName   *string    `json:"departmentName,omitempty"`
	AssignedToUserID *int64     `json:"assignedToUserId,omitempty"`
	AssignedToName   *string    `json:"assignedToName,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        *time.Time `json:"updatedAt,omitempty"`
}
