package daemon

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/habitloop/habitd/internal/api"
	"github.com/habitloop/habitd/internal/app/notify"
	"github.com/habitloop/habitd/internal/app/schedule"
	"github.com/habitloop/habitd/internal/app/streak"
	"github.com/habitloop/habitd/internal/infra/metrics"
	"github.com/habitloop/habitd/internal/infra/store"
)

// Daemon is the core habitd runtime. It wires together the record
// store, the check-in service, the schedule evaluator, the due-habit
// selector, and the HTTP API, and drives the reminder tick loop.
type Daemon struct {
	Config    Config
	DB        *store.DB
	CheckIns  *streak.Service
	Evaluator *schedule.Evaluator
	Selector  *notify.Selector
	Notifier  notify.Notifier
	Server    *api.Server
	cancel    context.CancelFunc
}

// New creates and initializes a Daemon with all services wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	dir := cfg.Store.Dir
	if dir == "" {
		dir = habitdHome()
	}
	db, err := store.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("open record store: %w", err)
	}

	eval := schedule.New()
	eval.DefaultHour = cfg.Reminders.DefaultHour
	eval.DefaultMinute = cfg.Reminders.DefaultMinute

	checkins := streak.NewService(db)
	selector := notify.NewSelector(db, eval, cfg.Reminders.Workers)

	srv := api.NewServer(db, checkins, eval, selector)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}

	return &Daemon{
		Config:    cfg,
		DB:        db,
		CheckIns:  checkins,
		Evaluator: eval,
		Selector:  selector,
		Notifier:  notify.LogNotifier{},
		Server:    srv,
	}, nil
}

// Serve starts the HTTP server and the reminder loop, blocking until
// shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	go d.remindLoop(ctx)

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	fmt.Printf("habitd serving on http://%s\n", addr)
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// remindLoop evaluates due habits once per tick, aligned to the minute
// boundary so exact-minute schedules are never straddled.
func (d *Daemon) remindLoop(ctx context.Context) {
	interval := time.Duration(d.Config.Reminders.TickSeconds) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}

	// Wait for the next minute boundary before the first tick.
	now := time.Now()
	first := now.Truncate(time.Minute).Add(time.Minute)
	select {
	case <-time.After(first.Sub(now)):
	case <-ctx.Done():
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	d.runTick(time.Now())
	for {
		select {
		case at := <-ticker.C:
			d.runTick(at)
		case <-ctx.Done():
			return
		}
	}
}

// runTick selects due habits and hands each user's batch to the sink.
// A delivery failure for one user never blocks the others.
func (d *Daemon) runTick(at time.Time) {
	batches, err := d.Selector.SelectDue(at)
	if err != nil {
		log.Printf("[daemon] due evaluation: %v", err)
		return
	}

	for _, b := range batches {
		if err := d.Notifier.Notify(b.UserID, b.Habits); err != nil {
			metrics.NotificationErrors.Inc()
			log.Printf("[daemon] notify user %s: %v", b.UserID, err)
			continue
		}
		metrics.NotificationsSent.Inc()
	}
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}
