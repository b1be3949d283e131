package services

import (
	"testing"

	"github.com/civicfix/internal/models"
	"github.com/stretchr/testify/assert"
)

// stubBadgeRepo 返回固定的徽章档位表
type stubBadgeRepo struct {
	badges []models.Badge
}

func (s *stubBadgeRepo) ListByPointsAsc() ([]models.Badge, error) {
	return s.badges, nil
}

func defaultTiers() []models.Badge {
	return []models.Badge{
		{LevelName: "Bronze", PointsRequired: 10},
		{LevelName: "Silver", PointsRequired: 30},
		{LevelName: "Gold", PointsRequired: 60},
		{LevelName: "Platinum", PointsRequired: 100},
		{LevelName: "Diamond", PointsRequired: 150},
	}
}

func TestComputeLevel(t *testing.T) {
	service := NewBadgeService(&stubBadgeRepo{badges: defaultTiers()})

	cases := []struct {
		points int
		level  string
	}{
		{0, "Bronze"}, // 低于最低门槛时保底 Bronze
		{9, "Bronze"},
		{10, "Bronze"},
		{29, "Bronze"},
		{30, "Silver"},
		{59, "Silver"},
		{60, "Gold"},
		{100, "Platinum"},
		{149, "Platinum"},
		{150, "Diamond"},
		{999, "Diamond"}, // 超过最高门槛封顶
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.level, service.ComputeLevel(tc.points), "points=%d", tc.points)
	}
}

func TestComputeLevelEmptyTiers(t *testing.T) {
	service := NewBadgeService(&stubBadgeRepo{})
	assert.Equal(t, models.DefaultBadgeLevel, service.ComputeLevel(0))
	assert.Equal(t, models.DefaultBadgeLevel, service.ComputeLevel(1000))
}

func TestComputeLevelCacheRefresh(t *testing.T) {
	repo := &stubBadgeRepo{badges: defaultTiers()}
	service := NewBadgeService(repo)
	assert.Equal(t, "Silver", service.ComputeLevel(30))

	// 档位表变更后需要 Refresh 才会生效
	repo.badges = []models.Badge{{LevelName: "Elite", PointsRequired: 1}}
	assert.Equal(t, "Silver", service.ComputeLevel(30))

	service.Refresh()
	assert.Equal(t, "Elite", service.ComputeLevel(30))
}
