package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"hackhub-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	statsCacheKey = "hackhub:stats"
	statsCacheTTL = 30 * time.Second
)

// StatsService serves the public platform aggregates. Stats tolerate
// eventual visibility, so a short-TTL Redis cache sits in front of the
// counts when a client is configured.
type StatsService struct {
	DB    *gorm.DB
	Cache *redis.Client
}

func NewStatsService(db *gorm.DB, cache *redis.Client) *StatsService {
	return &StatsService{DB: db, Cache: cache}
}

func (s *StatsService) computeStats() (*models.PlatformStats, error) {
	var stats models.PlatformStats
	if err := s.DB.Model(&models.Event{}).Count(&stats.TotalEvents).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.EventRegistration{}).Count(&stats.TotalParticipants).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Event{}).Where("status = ?", models.EventStatusLive).
		Count(&stats.ActiveEvents).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Event{}).Where("status = ?", models.EventStatusCompleted).
		Count(&stats.CompletedEvents).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetStats handles GET /api/stats. Public.
func (s *StatsService) GetStats(c *fiber.Ctx) error {
	ctx := c.Context()
	if cached := s.fromCache(ctx); cached != nil {
		return c.JSON(cached)
	}
	stats, err := s.computeStats()
	if err != nil {
		return respondErr(c, err)
	}
	s.toCache(ctx, stats)
	return c.JSON(stats)
}

func (s *StatsService) fromCache(ctx context.Context) *models.PlatformStats {
	if s.Cache == nil {
		return nil
	}
	raw, err := s.Cache.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[STATS] cache read failed: %v", err)
		}
		return nil
	}
	var stats models.PlatformStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil
	}
	return &stats
}

func (s *StatsService) toCache(ctx context.Context, stats *models.PlatformStats) {
	if s.Cache == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, statsCacheKey, raw, statsCacheTTL).Err(); err != nil {
		log.Printf("[STATS] cache write failed: %v", err)
	}
}
