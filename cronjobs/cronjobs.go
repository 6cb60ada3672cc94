package cronjobs

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Sweeper drops sessions idle longer than maxIdle.
type Sweeper interface {
	Sweep(maxIdle time.Duration) int
	Len() int
}

const sweepSchedule = "*/10 * * * *"

// InitCronJobs starts the idle session sweep. The caller stops the
// returned scheduler on shutdown.
func InitCronJobs(store Sweeper, maxIdle time.Duration) (*cron.Cron, error) {
	zap.S().Infow("starting cron jobs", "session_idle", maxIdle)
	c := cron.New()

	// Session sweep: every 10 minutes
	if _, err := c.AddFunc(sweepSchedule, sweepJob(store, maxIdle)); err != nil {
		return nil, err
	}

	c.Start()
	return c, nil
}

func sweepJob(store Sweeper, maxIdle time.Duration) func() {
	return func() {
		removed := store.Sweep(maxIdle)
		zap.S().Infow("cronjob: session sweep", "removed", removed, "active", store.Len())
	}
}
