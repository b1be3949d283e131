package services

import (
	"sort"
	"sync"

	"github.com/civicfix/internal/models"
	"github.com/civicfix/internal/repositories"
)

// BadgeService 定义了徽章等级计算的服务接口
type BadgeService interface {
	// ComputeLevel 根据积分计算徽章等级：
	// 取 points_required 不超过当前积分的最高等级，低于最低门槛时返回默认等级。
	ComputeLevel(points int) string
	ListBadges() ([]models.Badge, error)
	// Refresh 使缓存失效，徽章等级表变更后调用
	Refresh()
}

type badgeService struct {
	badgeRepo repositories.BadgeRepository

	mu     sync.RWMutex
	cached []models.Badge // 按 points_required 升序
}

// NewBadgeService 创建一个新的 BadgeService 实例
func NewBadgeService(badgeRepo repositories.BadgeRepository) BadgeService {
	return &badgeService{badgeRepo: badgeRepo}
}

func (s *badgeService) tiers() []models.Badge {
	s.mu.RLock()
	if s.cached != nil {
		defer s.mu.RUnlock()
		return s.cached
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cached == nil {
		badges, err := s.badgeRepo.ListByPointsAsc()
		if err != nil {
			// 加载失败时不缓存，下次调用重试；本次按无等级表处理
			return nil
		}
		sort.SliceStable(badges, func(i, j int) bool {
			return badges[i].PointsRequired < badges[j].PointsRequired
		})
		s.cached = badges
	}
	return s.cached
}

// ComputeLevel 根据积分计算徽章等级
func (s *badgeService) ComputeLevel(points int) string {
	level := models.DefaultBadgeLevel
	for _, badge := range s.tiers() {
		if points >= badge.PointsRequired {
			level = badge.LevelName
		} else {
			break
		}
	}
	return level
}

// ListBadges 返回全部徽章等级
func (s *badgeService) ListBadges() ([]models.Badge, error) {
	return s.badgeRepo.ListByPointsAsc()
}

// Refresh 使缓存失效
func (s *badgeService) Refresh() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}
