package models

import (
	"time"
)

// 系统自动评论的作者标识（自动派单、状态流转审计等）
const (
	SystemAuthorName = "System"
	SystemAuthorRole = "System"
)

// Comment 投诉下的评论，包括人工评论和系统审计评论。
// visible_to_user 为 false 的评论仅内部角色可见。
type Comment struct {
	ID            int64               `json:"id" gorm:"primaryKey;autoIncrement"`
	ComplaintID   int64               `json:"complaintId" gorm:"column:complaint_id;not null;index"`
	AuthorID      int64               `json:"authorId" gorm:"column:author_id;not null"`
	AuthorName    string              `json:"authorName" gorm:"column:author_name;not null;size:100"`
	AuthorRole    string              `json:"authorRole" gorm:"column:author_role;not null;size:50"`
	Content       string              `json:"content" gorm:"column:content;not null;size:1000"`
	VisibleToUser bool                `json:"visibleToUser" gorm:"column:visible_to_user;not null;default:true"`
	CreatedAt     time.Time           `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
	Attachments   []CommentAttachment `json:"attachments,omitempty" gorm:"foreignKey:CommentID"`
}

// TableName 指定 Comment 结构体对应的数据库表名
func (Comment) TableName() string {
	return "comments"
}

// CommentAttachment 评论附件。文件本体由上传层落盘，
// 核心只保存引用（文件名、路径、类型、大小）。
type CommentAttachment struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	CommentID   int64     `json:"commentId" gorm:"column:comment_id;not null;index"`
	FileName    string    `json:"fileName" gorm:"column:file_name;not null;size:255"`
	FilePath    string    `json:"filePath" gorm:"column:file_path;not null;size:500"`
	ContentType string    `json:"contentType" gorm:"column:content_type;size:100"`
	FileSize    int64     `json:"fileSize" gorm:"column:file_size"`
	UploadedAt  time.Time `json:"uploadedAt" gorm:"column:uploaded_at;not null"`
}

// TableName 指定 CommentAttachment 结构体对应的数据库表名
func (CommentAttachment) TableName() string {
	return "comment_attachments"
}

// AttachmentRef 上传层交回的附件引用
type AttachmentRef struct {
	FileName    string `json:"fileName" binding:"required,max=255"`
	FilePath    string `json:"filePath" binding:"required,max=500"`
	ContentType string `json:"contentType" binding:"max=100"`
	FileSize    int64  `json:"fileSize"`
}
