package models

import (
	"time"
)

// ComplaintRating 市民对已修复投诉的满意度评分，每条投诉至多一条。
// 提交后 24 小时内允许原作者修改分数和评语；修改只更新 last_modified_at，
// created_at 永不变化，24 小时窗口始终以首次提交时间为锚点。
type ComplaintRating struct {
	ID             int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	ComplaintID    int64      `json:"complaintId" gorm:"column:complaint_id;unique;not null"`
	UserID         int64      `json:"userId" gorm:"column:user_id;not null;index"`
	Score          int        `json:"score" gorm:"column:score;not null"` // 1-5
	Comment        *string    `json:"comment,omitempty" gorm:"column:comment;size:1000"`
	CreatedAt      time.Time  `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
	LastModifiedAt *time.Time `json:"lastModifiedAt,omitempty" gorm:"column:last_modified_at"`
}

// TableName 指定 ComplaintRating 结构体对应的数据库表名
func (ComplaintRating) TableName() string {
	return "complaint_ratings"
}
