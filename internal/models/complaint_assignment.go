package models

import (
	"time"

	"gorm.io/gorm"
)

// ComplaintAssignment 投诉指派历史表。
// 每次指派/改派都新增一条记录，同一投诉同一时刻至多一条 is_active 记录；
// 改派时先将旧记录置为非激活再插入新记录，历史只追加不修改。
type ComplaintAssignment struct {
	ID               int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	ComplaintID      int64          `json:"complaintId" gorm:"column:complaint_id;not null;index"`
	DepartmentID     *int64         `json:"departmentId,omitempty" gorm:"column:department_id"`
	AssignedToUserID *int64         `json:"assignedToUserId,omitempty" gorm:"column:assigned_to_user_id;index"`
	Note             *string        `json:"note,omitempty" gorm:"column:note;size:500"`
	AssignedByUserID int64          `json:"assignedByUserId" gorm:"column:assigned_by_user_id;not null"` // 操作人
	AssignedAt       time.Time      `json:"assignedAt" gorm:"column:assigned_at;not null"`
	IsActive         bool           `json:"isActive" gorm:"column:is_active;not null;default:true;index"`
	CreatedAt        time.Time      `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt        time.Time      `json:"updatedAt" gorm:"column:updated_at;not null;autoUpdateTime"`
	DeletedAt        gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// TableName 指定 ComplaintAssignment 结构体对应的数据库表名
func (ComplaintAssignment) TableName() string {
	return "complaint_assignments"
}
