package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/townhub-dev/townhub/db"
	"github.com/townhub-dev/townhub/internal/models"
)

// How far past an event's start time its delivery records are kept. Past
// events are never eligible for delivery again, so pruning cannot cause a
// repeat notification.
const retainAfterStart = 7 * 24 * time.Hour

// Sweeper periodically prunes delivery records of events that started long
// ago. It is optional; without it the records simply accumulate.
type Sweeper struct {
	interval time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewSweeper(interval time.Duration) *Sweeper {
	ctx, cancel := context.WithCancel(context.Background())
	return &Sweeper{
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start runs one sweep immediately, then one per interval until Stop.
func (s *Sweeper) Start() {
	log.Printf("Starting delivery-record sweeper (interval %v)", s.interval)

	go func() {
		s.sweep()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.sweep()
			}
		}
	}()
}

func (s *Sweeper) Stop() {
	s.cancel()
	log.Println("Delivery-record sweeper stopped")
}

func (s *Sweeper) sweep() {
	cutoff := time.Now().Add(-retainAfterStart)

	// Hard delete, so the (user_id, event_id) unique index never collides
	// with a soft-deleted row.
	result := db.DB.
		Where("event_id IN (?)", db.DB.Model(&models.Event{}).Select("id").Where("start_date < ?", cutoff)).
		Unscoped().
		Delete(&models.EventNotification{})

	if result.Error != nil {
		log.Printf("Delivery-record sweep failed: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("Pruned %d stale delivery records", result.RowsAffected)
	}
}

// Global sweeper instance
var globalSweeper *Sweeper

// Initialize starts the global sweeper.
func Initialize(interval time.Duration) {
	globalSweeper = NewSweeper(interval)
	globalSweeper.Start()
}

// Shutdown stops the global sweeper.
func Shutdown() {
	if globalSweeper != nil {
		globalSweeper.Stop()
	}
}
