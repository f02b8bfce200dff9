package services

import (
	"log"
	"time"

	"hackhub-backend/models"

	"github.com/go-co-op/gocron/v2"
)

// StartStatusScheduler flips event statuses along the date-driven part of
// the lifecycle: upcoming events go live at start_date, live events
// complete at end_date. Draft and cancelled events are never touched.
func (s *EventService) StartStatusScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			now := time.Now()

			res := s.DB.Model(&models.Event{}).
				Where("status = ? AND start_date <= ?", models.EventStatusUpcoming, now).
				Update("status", models.EventStatusLive)
			if res.Error != nil {
				log.Printf("[Scheduler] promote to live failed: %v", res.Error)
			} else if res.RowsAffected > 0 {
				log.Printf("[Scheduler] %d event(s) went live", res.RowsAffected)
			}

			res = s.DB.Model(&models.Event{}).
				Where("status = ? AND end_date <= ?", models.EventStatusLive, now).
				Update("status", models.EventStatusCompleted)
			if res.Error != nil {
				log.Printf("[Scheduler] complete failed: %v", res.Error)
			} else if res.RowsAffected > 0 {
				log.Printf("[Scheduler] %d event(s) completed", res.RowsAffected)
			}
		}),
	)
}
