package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/smartcity/context-hub/internal/city"
)

// Refresher periodically re-warms the context cache for the configured city
// so interactive questions mostly hit warm data.
type Refresher struct {
	scheduler *gocron.Scheduler
	server    *city.Server
	interval  time.Duration
}

// New creates a Refresher. An interval <= 0 disables it.
func New(server *city.Server, interval time.Duration) *Refresher {
	return &Refresher{
		scheduler: gocron.NewScheduler(time.UTC),
		server:    server,
		interval:  interval,
	}
}

// Start schedules the periodic refresh job and starts the underlying
// scheduler.
func (r *Refresher) Start() error {
	if r.interval <= 0 {
		log.Println("refresher: disabled; questions will refresh the cache on demand")
		return nil
	}

	_, err := r.scheduler.Every(r.interval).Do(func() {
		loc := r.server.Location()
		log.Printf("refresher: warming context cache for %s", loc.Key())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		warmed, unavailable := r.server.Refresh(ctx)
		log.Printf("refresher: warmed %d topics for %s (%d unavailable)", len(warmed), loc.Key(), len(unavailable))
	})
	if err != nil {
		return err
	}

	r.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (r *Refresher) Stop() {
	if r.scheduler != nil {
		r.scheduler.Stop()
	}
}
