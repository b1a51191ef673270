package workspace

import (
	"context"
	"log"
	"time"
)

// Sweeper periodically removes expired workspaces for the life of the
// process. It is started explicitly from main and stops when its context
// is cancelled — there is no hidden global scheduler.
type Sweeper struct {
	manager  *Manager
	maxAge   time.Duration
	interval time.Duration
}

func NewSweeper(manager *Manager, maxAge, interval time.Duration) *Sweeper {
	return &Sweeper{
		manager:  manager,
		maxAge:   maxAge,
		interval: interval,
	}
}

// Run sweeps once eagerly, then on every tick until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) error {
	log.Printf("[Workspace] Sweeper started (maxAge=%s, interval=%s)", s.maxAge, s.interval)
	s.manager.SweepExpired(s.maxAge)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[Workspace] Sweeper shutting down")
			return nil
		case <-ticker.C:
			s.manager.SweepExpired(s.maxAge)
		}
	}
}
