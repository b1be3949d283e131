package models

import (
	"time"
)

// PhotoType 技术员施工照片类型
const (
	PhotoTypeWorkInProgress = "WorkInProgress"
	PhotoTypeFixed          = "Fixed"
)

// TechnicianPhoto 技术员上传的施工照片记录。
// 标记投诉为已修复前必须至少存在两条该投诉的照片记录（施工中 + 完工）。
// 文件本体由上传层落盘，这里只保存引用。
type TechnicianPhoto struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	ComplaintID int64     `json:"complaintId" gorm:"column:complaint_id;not null;index"`
	PhotoType   string    `json:"photoType" gorm:"column:photo_type;not null;size:50"`
	PhotoPath   string    `json:"photoPath" gorm:"column:photo_path;not null;size:500"`
	UploadedAt  time.Time `json:"uploadedAt" gorm:"column:uploaded_at;not null"`
}

// TableName 指定 TechnicianPhoto 结构体对应的数据库表名
func (TechnicianPhoto) TableName() string {
	return "technician_photos"
}
