package cleanup

import (
	"context"
	"log"
	"time"

	"github.com/iamasit07/connect4-engine/internal/service/game"
)

type Worker struct {
	SessionManager *game.SessionManager
	Interval       time.Duration
	FinishedTTL    time.Duration
	ActiveTTL      time.Duration
}

func NewWorker(sm *game.SessionManager, interval, finishedTTL, activeTTL time.Duration) *Worker {
	return &Worker{
		SessionManager: sm,
		Interval:       interval,
		FinishedTTL:    finishedTTL,
		ActiveTTL:      activeTTL,
	}
}

// Start runs one cleanup immediately and then every Interval until ctx is done.
func (w *Worker) Start(ctx context.Context) {
	log.Println("[CLEANUP] Background worker started")
	w.RunCleanup()

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[CLEANUP] Background worker stopped")
			return
		case <-ticker.C:
			w.RunCleanup()
		}
	}
}

// RunCleanup executes the actual cleanup logic
func (w *Worker) RunCleanup() int {
	return w.SessionManager.CleanupOldSessions(w.FinishedTTL, w.ActiveTTL)
}
