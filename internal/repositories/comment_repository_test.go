package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicfix/internal/models"
)

func TestCreateCommentWithAttachments(t *testing.T) {
	database := setupTestDB(t)
	complaintRepo := NewGormComplaintRepository(database)
	commentRepo := NewGormCommentRepository(database)
	reporter := createUser(t, database, "citizen1", models.RoleCitizen, nil)
	complaint := submitComplaint(t, complaintRepo, reporter.ID, "Pothole")

	comment := &models.Comment{
		ComplaintID:   complaint.ID,
		AuthorID:      reporter.ID,
		AuthorName:    reporter.Name,
		AuthorRole:    models.RoleCitizen,
		Content:       "still broken",
		VisibleToUser: true,
	}
	attachments := []models.AttachmentRef{
		{FileName: "before.jpg", FilePath: "/files/before.jpg", ContentType: "image/jpeg", FileSize: 1024},
		{FileName: "after.jpg", FilePath: "/files/after.jpg", ContentType: "image/jpeg", FileSize: 2048},
	}
	require.NoError(t, commentRepo.Create(comment, attachments))

	comments, err := commentRepo.ListByComplaint(complaint.ID, true)
	require.NoError(t, err)
	// 自动派单的系统评论 + 刚创建的评论
	require.Len(t, comments, 2)
	created := comments[1]
	assert.Equal(t, "still broken", created.Content)
	require.Len(t, created.Attachments, 2)
	assert.Equal(t, "before.jpg", created.Attachments[0].FileName)
}

func TestCreateCommentRejectsTooManyAttachments(t *testing.T) {
	database := setupTestDB(t)
	complaintRepo := NewGormComplaintRepository(database)
	commentRepo := NewGormCommentRepository(database)
	reporter := createUser(t, database, "citizen1", models.RoleCitizen, nil)
	complaint := submitComplaint(t, complaintRepo, reporter.ID, "Pothole")

	refs := make([]models.AttachmentRef, 4)
	for i := range refs {
		refs[i] = models.AttachmentRef{FileName: "f.jpg", FilePath: "/files/f.jpg"}
	}
	err := commentRepo.Create(&models.Comment{
		ComplaintID: complaint.ID,
		AuthorID:    reporter.ID,
		AuthorName:  reporter.Name,
		AuthorRole:  models.RoleCitizen,
		Content:     "x",
	}, refs)
	assert.ErrorIs(t, err, ErrTooManyAttachments)

	// 整体拒绝，不落任何附件
	var count int64
	database.Model(&models.CommentAttachment{}).Count(&count)
	assert.Zero(t, count)
}

func TestListCommentsVisibility(t *testing.T) {
	database := setupTestDB(t)
	complaintRepo := NewGormComplaintRepository(database)
	commentRepo := NewGormCommentRepository(database)
	reporter := createUser(t, database, "citizen1", models.RoleCitizen, nil)
	staff := createUser(t, database, "manager1", models.RoleDepartmentManager, nil)
	complaint := submitComplaint(t, complaintRepo, reporter.ID, "Graffiti")

	require.NoError(t, commentRepo.Create(&models.Comment{
		ComplaintID: complaint.ID, AuthorID: staff.ID, AuthorName: staff.Name,
		AuthorRole: models.RoleDepartmentManager, Content: "public note", VisibleToUser: true,
	}, nil))
	require.NoError(t, commentRepo.Create(&models.Comment{
		ComplaintID: complaint.ID, AuthorID: staff.ID, AuthorName: staff.Name,
		AuthorRole: models.RoleDepartmentManager, Content: "internal note", VisibleToUser: false,
	}, nil))

	visible, err := commentRepo.ListByComplaint(complaint.ID, true)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "public note", visible[0].Content)

	all, err := commentRepo.ListByComplaint(complaint.ID, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestAddWorkPhotosAdvancesPendingOnly(t *testing.T) {
	database := setupTestDB(t)
	complaintRepo := NewGormComplaintRepository(database)
	photoRepo := NewGormPhotoRepository(database)
	reporter := createUser(t, database, "citizen1", models.RoleCitizen, nil)
	admin := createUser(t, database, "admin1", models.RoleAdmin, nil)
	deptID := int64(1)
	technician := createUser(t, database, "tech1", models.RoleTechnician, &deptID)
	complaint := submitComplaint(t, complaintRepo, reporter.ID, "Pothole")

	// 未指派的技术员不能上传
	_, err := photoRepo.AddWorkPhotos(complaint.ID, technician.ID, "a.jpg", "b.jpg")
	assert.ErrorIs(t, err, ErrNotAssignedTechnician)

	_, err = complaintRepo.Assign(complaint.ID, &deptID, &technician.ID, nil, adminActor(admin.ID))
	require.NoError(t, err)

	photos, err := photoRepo.AddWorkPhotos(complaint.ID, technician.ID, "a.jpg", "b.jpg")
	require.NoError(t, err)
	assert.Len(t, photos, 2)

	// 上传视为开工，Pending 推进为 InProgress
	var refreshed models.Complaint
	require.NoError(t, database.First(&refreshed, complaint.ID).Error)
	assert.Equal(t, string(models.StatusInProgress), refreshed.Status)

	// 再次上传不改变 InProgress 状态
	_, err = photoRepo.AddWorkPhotos(complaint.ID, technician.ID, "c.jpg", "d.jpg")
	require.NoError(t, err)
	require.NoError(t, database.First(&refreshed, complaint.ID).Error)
	assert.Equal(t, string(models.StatusInProgress), refreshed.Status)

	count, err := photoRepo.CountByComplaint(complaint.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}
