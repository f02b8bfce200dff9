package workers

import (
	"context"
	"log"
	"time"

	"hackhub-backend/models"

	"gorm.io/gorm"
)

// CounterAuditor reconciles each event's denormalized participant counter
// against the actual registration rows. The registration workflow keeps
// the counter correct transactionally; this worker only repairs drift
// caused by out-of-band writes, and logs every repair it makes.
type CounterAuditor struct {
	DB *gorm.DB
}

func NewCounterAuditor(db *gorm.DB) *CounterAuditor {
	return &CounterAuditor{DB: db}
}

// Audit runs one reconciliation pass and returns how many events it fixed.
func (a *CounterAuditor) Audit(ctx context.Context) (int, error) {
	type drift struct {
		ID     string
		Actual int64
	}
	var drifted []drift
	err := a.DB.WithContext(ctx).
		Model(&models.Event{}).
		Select("events.id AS id, COUNT(event_registrations.id) AS actual").
		Joins("LEFT JOIN event_registrations ON event_registrations.event_id = events.id").
		Group("events.id, events.current_participants").
		Having("events.current_participants <> COUNT(event_registrations.id)").
		Scan(&drifted).Error
	if err != nil {
		return 0, err
	}

	fixed := 0
	for _, d := range drifted {
		res := a.DB.WithContext(ctx).Model(&models.Event{}).
			Where("id = ?", d.ID).
			UpdateColumn("current_participants", d.Actual)
		if res.Error != nil {
			log.Printf("[AUDIT] failed to repair counter for event %s: %v", d.ID, res.Error)
			continue
		}
		log.Printf("[AUDIT] repaired participant counter for event %s -> %d", d.ID, d.Actual)
		fixed++
	}
	return fixed, nil
}

// PollCounters runs Audit on a fixed interval until ctx is cancelled.
func PollCounters(ctx context.Context, auditor *CounterAuditor, interval time.Duration) {
	log.Println("Starting participant counter audit worker...")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Counter audit worker stopped.")
			return
		case <-ticker.C:
			if _, err := auditor.Audit(ctx); err != nil {
				log.Printf("[AUDIT] reconciliation pass failed: %v", err)
			}
		}
	}
}
