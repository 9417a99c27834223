package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// sweeper is the service surface the processor drives
type sweeper interface {
	AdvanceExpired(ctx context.Context) (int, error)
}

// EventStatusProcessor periodically completes upcoming events whose
// date has passed. The sweep is idempotent, so an overlapping or
// repeated run is harmless.
type EventStatusProcessor struct {
	events   sweeper
	interval time.Duration
	logger   *slog.Logger
	stopCh   chan struct{}
	wg       sync.WaitGroup
	running  bool
	mu       sync.Mutex
}

// NewEventStatusProcessor creates a new event status processor job
func NewEventStatusProcessor(events sweeper, interval time.Duration, logger *slog.Logger) *EventStatusProcessor {
	if interval == 0 {
		interval = 1 * time.Hour
	}
	return &EventStatusProcessor{
		events:   events,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the event status processor job
func (p *EventStatusProcessor) Start() {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.mu.Unlock()

	p.wg.Add(1)
	go p.run()
	p.logger.Info("event status processor started", "interval", p.interval)
}

// Stop gracefully stops the event status processor job
func (p *EventStatusProcessor) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	p.mu.Unlock()

	close(p.stopCh)
	p.wg.Wait()
	p.logger.Info("event status processor stopped")
}

// run is the main loop
func (p *EventStatusProcessor) run() {
	defer p.wg.Done()

	// Run once shortly after start, then on the ticker
	select {
	case <-time.After(5 * time.Second):
		p.sweep()
	case <-p.stopCh:
		return
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.sweep()
		case <-p.stopCh:
			return
		}
	}
}

// sweep runs a single pass with a bounded deadline
func (p *EventStatusProcessor) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	count, err := p.events.AdvanceExpired(ctx)
	if err != nil {
		p.logger.Error("event status sweep failed", "error", err)
		return
	}
	if count > 0 {
		p.logger.Info("event status sweep advanced events", "count", count)
	}
}

// RunOnce runs the sweep once (for testing or manual trigger) and
// returns the number of events advanced
func (p *EventStatusProcessor) RunOnce(ctx context.Context) (int, error) {
	return p.events.AdvanceExpired(ctx)
}

// IsRunning returns whether the processor is running
func (p *EventStatusProcessor) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}
