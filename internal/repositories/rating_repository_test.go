package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/civicfix/internal/models"
)

func timeNowUTC() time.Time {
	return time.Now().UTC()
}

// fixedComplaint 建一条已修复的投诉备评分用
func fixedComplaint(t *testing.T, database *gorm.DB, repo ComplaintRepository, reporterID, adminID int64) *models.Complaint {
	t.Helper()
	complaint := submitComplaint(t, repo, reporterID, "Pothole")
	updated, err := repo.Transition(complaint.ID, models.StatusFixed, adminActor(adminID))
	require.NoError(t, err)
	return updated
}

func TestRatePreconditions(t *testing.T) {
	database := setupTestDB(t)
	complaintRepo := NewGormComplaintRepository(database)
	ratingRepo := NewGormRatingRepository(database)
	reporter := createUser(t, database, "citizen1", models.RoleCitizen, nil)
	other := createUser(t, database, "citizen2", models.RoleCitizen, nil)
	admin := createUser(t, database, "admin1", models.RoleAdmin, nil)

	pending := submitComplaint(t, complaintRepo, reporter.ID, "Streetlight")

	// 投诉不存在
	_, err := ratingRepo.Rate(9999, reporter.ID, 4, nil, timeNowUTC())
	assert.ErrorIs(t, err, ErrRecordNotFound)

	// 未修复不能评分
	_, err = ratingRepo.Rate(pending.ID, reporter.ID, 4, nil, timeNowUTC())
	assert.ErrorIs(t, err, ErrComplaintNotResolved)

	fixed := fixedComplaint(t, database, complaintRepo, reporter.ID, admin.ID)

	// 只有提交人能评分
	_, err = ratingRepo.Rate(fixed.ID, other.ID, 4, nil, timeNowUTC())
	assert.ErrorIs(t, err, ErrNotComplaintOwner)

	rating, err := ratingRepo.Rate(fixed.ID, reporter.ID, 4, nil, timeNowUTC())
	require.NoError(t, err)
	assert.Equal(t, 4, rating.Score)
	assert.Nil(t, rating.LastModifiedAt)

	// 评分回写到投诉
	var refreshed models.Complaint
	require.NoError(t, database.First(&refreshed, fixed.ID).Error)
	require.NotNil(t, refreshed.RatingID)
	assert.Equal(t, rating.ID, *refreshed.RatingID)
}

func TestRateEditWindow(t *testing.T) {
	database := setupTestDB(t)
	complaintRepo := NewGormComplaintRepository(database)
	ratingRepo := NewGormRatingRepository(database)
	reporter := createUser(t, database, "citizen1", models.RoleCitizen, nil)
	admin := createUser(t, database, "admin1", models.RoleAdmin, nil)
	fixed := fixedComplaint(t, database, complaintRepo, reporter.ID, admin.ID)

	createdAt := timeNowUTC()
	comment := "slow but fine"
	rating, err := ratingRepo.Rate(fixed.ID, reporter.ID, 3, &comment, createdAt)
	require.NoError(t, err)

	// 23 小时后修改成功，created_at 不变
	at23h := createdAt.Add(23 * time.Hour)
	updatedComment := "changed my mind"
	updated, err := ratingRepo.Rate(fixed.ID, reporter.ID, 5, &updatedComment, at23h)
	require.NoError(t, err)
	assert.Equal(t, rating.ID, updated.ID)
	assert.Equal(t, 5, updated.Score)
	require.NotNil(t, updated.LastModifiedAt)
	assert.True(t, updated.LastModifiedAt.Equal(at23h))

	var stored models.ComplaintRating
	require.NoError(t, database.Where("complaint_id = ?", fixed.ID).First(&stored).Error)
	assert.True(t, stored.CreatedAt.Equal(createdAt), "created_at must not move on edit")
	assert.Equal(t, 5, stored.Score)

	// 窗口锚定首次评分时间：23 小时处的修改不会续期
	at25h := createdAt.Add(25 * time.Hour)
	_, err = ratingRepo.Rate(fixed.ID, reporter.ID, 1, nil, at25h)
	assert.ErrorIs(t, err, ErrRatingEditExpired)

	// 过期的修改不产生任何写入
	require.NoError(t, database.Where("complaint_id = ?", fixed.ID).First(&stored).Error)
	assert.Equal(t, 5, stored.Score)

	// 每条投诉始终只有一条评分
	var count int64
	database.Model(&models.ComplaintRating{}).Where("complaint_id = ?", fixed.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRateExactlyAtWindowBoundary(t *testing.T) {
	database := setupTestDB(t)
	complaintRepo := NewGormComplaintRepository(database)
	ratingRepo := NewGormRatingRepository(database)
	reporter := createUser(t, database, "citizen1", models.RoleCitizen, nil)
	admin := createUser(t, database, "admin1", models.RoleAdmin, nil)
	fixed := fixedComplaint(t, database, complaintRepo, reporter.ID, admin.ID)

	createdAt := timeNowUTC()
	_, err := ratingRepo.Rate(fixed.ID, reporter.ID, 2, nil, createdAt)
	require.NoError(t, err)

	// 恰好 24 小时仍可修改
	_, err = ratingRepo.Rate(fixed.ID, reporter.ID, 3, nil, createdAt.Add(24*time.Hour))
	assert.NoError(t, err)

	_, err = ratingRepo.Rate(fixed.ID, reporter.ID, 4, nil, createdAt.Add(24*time.Hour+time.Second))
	assert.ErrorIs(t, err, ErrRatingEditExpired)
}

func TestAverageByDepartment(t *testing.T) {
	database := setupTestDB(t)
	complaintRepo := NewGormComplaintRepository(database)
	ratingRepo := NewGormRatingRepository(database)
	reporter := createUser(t, database, "citizen1", models.RoleCitizen, nil)
	admin := createUser(t, database, "admin1", models.RoleAdmin, nil)

	for _, score := range []int{4, 2} {
		fixed := fixedComplaint(t, database, complaintRepo, reporter.ID, admin.ID)
		_, err := ratingRepo.Rate(fixed.ID, reporter.ID, score, nil, timeNowUTC())
		require.NoError(t, err)
	}

	summaries, err := ratingRepo.AverageByDepartment()
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Public Works", summaries[0].DepartmentName)
	assert.InDelta(t, 3.0, summaries[0].AverageScore, 0.001)
	assert.Equal(t, int64(2), summaries[0].RatingCount)
}
