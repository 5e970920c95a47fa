package preview

import (
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Janitor purges stale preview files on a schedule so the spool stays
// bounded.
type Janitor struct {
	cron    *cron.Cron
	store   *Store
	ttl     time.Duration
	log     *zap.SugaredLogger
	mu      sync.Mutex
	running bool
}

// NewJanitor creates a janitor that removes previews older than ttl.
func NewJanitor(store *Store, ttl time.Duration, log *zap.SugaredLogger) *Janitor {
	return &Janitor{
		cron:  cron.New(),
		store: store,
		ttl:   ttl,
		log:   log,
	}
}

// Start schedules the hourly purge.
func (j *Janitor) Start() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.running {
		return nil
	}

	if _, err := j.cron.AddFunc("@hourly", j.purge); err != nil {
		return err
	}
	j.cron.Start()
	j.running = true
	j.log.Infow("preview janitor started", "ttl", j.ttl.String())
	return nil
}

// Stop halts scheduling and waits for a running purge to finish.
func (j *Janitor) Stop() {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.running {
		return
	}
	ctx := j.cron.Stop()
	<-ctx.Done()
	j.running = false
	j.log.Info("preview janitor stopped")
}

func (j *Janitor) purge() {
	removed, err := j.store.Purge(j.ttl)
	if err != nil {
		j.log.Warnw("preview purge failed", "error", err)
		return
	}
	if removed > 0 {
		j.log.Infow("purged stale previews", "removed", removed)
	}
}
