package booking

import (
	"context"
	"log"
	"time"
)

// Sweeper periodically reclassifies ACTIVE bookings whose end time has
// passed as OVERSTAY. It never touches slot occupancy: an overstaying
// vehicle still physically holds its slot.
type Sweeper struct {
	store    OverdueStore
	interval time.Duration
}

func NewSweeper(store OverdueStore, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Sweeper{store: store, interval: interval}
}

// Sweep runs one pass. A failing row is logged and skipped; the next
// scheduled run picks it up again, so partial progress is self-healing.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	overdue, err := s.store.ListOverdueActive(ctx, time.Now())
	if err != nil {
		return 0, err
	}

	marked := 0
	for _, b := range overdue {
		if err := s.store.MarkOverstay(ctx, b.ID); err != nil {
			log.Printf("overstay sweep: booking %d not updated: %v", b.ID, err)
			continue
		}
		marked++
	}

	if marked > 0 {
		log.Printf("overstay sweep: marked %d of %d overdue bookings", marked, len(overdue))
	}
	return marked, nil
}

// Start launches the periodic sweep on its own goroutine. The returned
// channel stops it; context cancellation stops it as well.
func (s *Sweeper) Start(ctx context.Context) chan struct{} {
	stopCh := make(chan struct{})

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if _, err := s.Sweep(ctx); err != nil {
					log.Printf("overstay sweep failed: %v", err)
				}
			case <-stopCh:
				log.Println("overstay sweeper stopped")
				return
			case <-ctx.Done():
				log.Println("overstay sweeper stopped (context done)")
				return
			}
		}
	}()

	log.Printf("overstay sweeper started with interval %v", s.interval)
	return stopCh
}
