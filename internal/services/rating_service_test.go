package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicfix/internal/models"
)

// recordingRatingRepo 记录调用参数的桩实现
type recordingRatingRepo struct {
	called bool
	gotNow time.Time
}

func (r *recordingRatingRepo) Rate(complaintID, userID int64, score int, comment *string, now time.Time) (*models.ComplaintRating, error) {
	r.called = true
	r.gotNow = now
	return &models.ComplaintRating{ComplaintID: complaintID, UserID: userID, Score: score, CreatedAt: now}, nil
}

func (r *recordingRatingRepo) GetByComplaintID(complaintID int64) (*models.ComplaintRating, error) {
	return nil, nil
}

func (r *recordingRatingRepo) AverageByDepartment() ([]models.DepartmentRatingSummary, error) {
	return nil, nil
}

func TestRateRejectsOutOfRangeScoreBeforeTouchingStorage(t *testing.T) {
	repo := &recordingRatingRepo{}
	service := NewRatingService(repo)

	for _, score := range []int{0, -1, 6, 100} {
		_, err := service.Rate(1, 1, score, nil)
		assert.ErrorIsf(t, err, ErrInvalidScore, "score=%d", score)
	}
	assert.False(t, repo.called)
}

func TestRatePassesInjectedClock(t *testing.T) {
	repo := &recordingRatingRepo{}
	frozen := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	service := &ratingService{ratingRepo: repo, nowFn: func() time.Time { return frozen }}

	rating, err := service.Rate(1, 1, 5, nil)
	require.NoError(t, err)
	assert.True(t, repo.gotNow.Equal(frozen))
	assert.Equal(t, 5, rating.Score)
}
