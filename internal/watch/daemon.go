package watch

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"mediasort/internal/config"
	"mediasort/internal/log"
	"mediasort/internal/organize"
	"mediasort/pkg/types"
)

const minTick = 10 * time.Millisecond

// DaemonStatus represents the current status of the daemon
type DaemonStatus struct {
	Running          bool      // Whether the daemon is currently active
	WatchDirectories []string  // Directories being watched
	LastActivity     time.Time // Time of last file activity
	FilesProcessed   int       // Files organized successfully
	FilesFailed      int       // Files that failed to organize
	Pending          int       // Files waiting for their settle delay
}

// Daemon feeds newly created files to an Organizer, one at a time, once
// each has been quiet for the settle delay.
type Daemon struct {
	watcher   *Watcher
	filter    *Filter
	organizer organize.Organizer
	settle    time.Duration
	logger    log.Logging

	// owned by the Run goroutine
	pending map[string]time.Time

	mutex        sync.RWMutex
	callback     func(types.ProcessingOutcome)
	processed    int
	failed       int
	queued       int
	lastActivity time.Time
	running      bool
}

// NewDaemon creates a watch daemon using cfg's include patterns and settle delay.
func NewDaemon(cfg *config.Config, organizer organize.Organizer, logger log.Logging) (*Daemon, error) {
	if logger == nil {
		logger = log.Discard()
	}
	filter, err := NewFilter(cfg.Watch.Include)
	if err != nil {
		return nil, err
	}
	watcher, err := New(logger)
	if err != nil {
		return nil, err
	}

	return &Daemon{
		watcher:   watcher,
		filter:    filter,
		organizer: organizer,
		settle:    cfg.Settle(),
		logger:    logger,
		pending:   make(map[string]time.Time),
	}, nil
}

// AddWatchDirectory adds a directory to be watched
func (d *Daemon) AddWatchDirectory(dir string) error {
	return d.watcher.AddDirectory(dir)
}

// SetCallback sets a function to be called after each file is processed
func (d *Daemon) SetCallback(cb func(types.ProcessingOutcome)) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.callback = cb
}

// Status returns the current status of the daemon
func (d *Daemon) Status() DaemonStatus {
	d.mutex.RLock()
	defer d.mutex.RUnlock()

	return DaemonStatus{
		Running:          d.running,
		WatchDirectories: d.watcher.GetDirectories(),
		LastActivity:     d.lastActivity,
		FilesProcessed:   d.processed,
		FilesFailed:      d.failed,
		Pending:          d.queued,
	}
}

// Start begins watching. Events are buffered until Run consumes them.
func (d *Daemon) Start() error {
	if len(d.watcher.GetDirectories()) == 0 {
		return fmt.Errorf("no directories to watch")
	}
	if err := d.watcher.Start(); err != nil {
		return fmt.Errorf("error starting watcher: %w", err)
	}

	d.mutex.Lock()
	d.running = true
	d.mutex.Unlock()
	return nil
}

// Run processes settled files until ctx is cancelled, then stops the watcher.
// Start is called first if needed.
func (d *Daemon) Run(ctx context.Context) error {
	if !d.watcher.IsRunning() {
		if err := d.Start(); err != nil {
			return err
		}
	}
	defer d.stop()

	tick := d.settle / 4
	if tick < minTick {
		tick = minTick
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-d.watcher.FileChannel():
			if !ok {
				return nil
			}
			if !d.filter.Match(ev.Path) {
				d.logger.Debugf("ignoring %s", ev.Path)
				continue
			}
			d.pending[ev.Path] = ev.Timestamp

			d.mutex.Lock()
			d.lastActivity = ev.Timestamp
			d.queued = len(d.pending)
			d.mutex.Unlock()

		case now := <-ticker.C:
			d.flush(ctx, now)
		}
	}
}

// flush organizes every pending file whose last event is older than the
// settle delay, in path order.
func (d *Daemon) flush(ctx context.Context, now time.Time) {
	var due []string
	for path, seen := range d.pending {
		if now.Sub(seen) >= d.settle {
			due = append(due, path)
		}
	}
	sort.Strings(due)

	for _, path := range due {
		if ctx.Err() != nil {
			return
		}
		delete(d.pending, path)

		// moved away or deleted while settling
		if _, err := os.Lstat(path); err != nil {
			d.logger.Debugf("%s disappeared before processing", path)
			continue
		}

		outcome := d.organizer.Process(ctx, path)

		d.mutex.Lock()
		if outcome.Succeeded() {
			d.processed++
		} else {
			d.failed++
		}
		d.queued = len(d.pending)
		cb := d.callback
		d.mutex.Unlock()

		if cb != nil {
			cb(outcome)
		}
	}
}

func (d *Daemon) stop() {
	d.watcher.Stop()
	d.mutex.Lock()
	d.running = false
	d.mutex.Unlock()
}
