package scheduler

import (
	"log"
	"os"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
)

// Purger drops a memoized table so the next request reads the file again.
type Purger interface {
	Purge(path string) bool
}

// Scheduler periodically checks the data file and purges the cached table when it changes.
type Scheduler struct {
	scheduler *gocron.Scheduler
	purger    Purger
	path      string
	interval  time.Duration

	mu      sync.Mutex
	modTime time.Time
}

// New creates a new Scheduler.
func New(path string, interval time.Duration, purger Purger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		purger:    purger,
		path:      path,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Println("scheduler: reload interval not set; data file is loaded once")
		return nil
	}

	s.modTime = statModTime(s.path)

	_, err := s.scheduler.Every(s.interval).Do(func() {
		if s.CheckOnce() {
			log.Printf("scheduler: %s changed; cached table purged", s.path)
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// CheckOnce compares the file's modification time with the last one seen and purges the
// cached table when it differs. It reports whether a purge happened.
func (s *Scheduler) CheckOnce() bool {
	current := statModTime(s.path)

	s.mu.Lock()
	defer s.mu.Unlock()

	if current.Equal(s.modTime) {
		return false
	}
	s.modTime = current
	s.purger.Purge(s.path)
	return true
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// statModTime returns the zero time when the file cannot be stat'ed, so a file that
// disappears or reappears also counts as a change.
func statModTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
