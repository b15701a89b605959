package cron

import (
	"log"

	"github.com/robfig/cron/v3"
)

// Purger drops expired draft sessions.
type Purger interface {
	Purge() int
}

// Scheduler handles scheduled housekeeping
type Scheduler struct {
	cron   *cron.Cron
	drafts Purger
}

func NewScheduler(drafts Purger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		drafts: drafts,
	}
}

// Start registers the jobs and starts the scheduler
func (s *Scheduler) Start() error {
	if s.drafts != nil {
		// Redis expires sessions by itself; the in-process store needs a sweep
		if _, err := s.cron.AddFunc("@every 10m", s.purgeDrafts); err != nil {
			return err
		}
	}
	s.cron.Start()
	log.Println("[Cron] Scheduler started")
	return nil
}

// Stop waits for running jobs to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Println("[Cron] Scheduler stopped")
}

func (s *Scheduler) purgeDrafts() {
	if n := s.drafts.Purge(); n > 0 {
		log.Printf("[Cron] Purged %d expired draft sessions", n)
	}
}
