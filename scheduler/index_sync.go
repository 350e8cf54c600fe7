package scheduler

import (
	"context"
	"os"
	"time"

	"datemate/profile"
	"datemate/retry"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	EnvIndexSyncInterval     = "MATCH_INDEX_SYNC_INTERVAL"
	DefaultIndexSyncInterval = time.Minute
)

// IndexSyncScheduler periodically loads every stored profile into the match index,
// so profiles written through other replicas become match candidates.
type IndexSyncScheduler struct {
	log      logrus.FieldLogger
	ctx      context.Context
	db       *gorm.DB
	index    profile.Index
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func NewIndexSyncScheduler(log logrus.FieldLogger, ctx context.Context, db *gorm.DB, index profile.Index) *IndexSyncScheduler {
	l := log.WithField("component", "index-sync-scheduler")
	return &IndexSyncScheduler{
		log:      l,
		ctx:      ctx,
		db:       db,
		index:    index,
		interval: EnvInterval(l),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// EnvInterval reads MATCH_INDEX_SYNC_INTERVAL as a duration ("30s", "5m"). Missing or invalid values use the default.
func EnvInterval(l logrus.FieldLogger) time.Duration {
	raw, ok := os.LookupEnv(EnvIndexSyncInterval)
	if !ok || raw == "" {
		return DefaultIndexSyncInterval
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		l.WithField("value", raw).Warnf("Invalid %s, using %s.", EnvIndexSyncInterval, DefaultIndexSyncInterval)
		return DefaultIndexSyncInterval
	}
	return d
}

func (s *IndexSyncScheduler) WithInterval(interval time.Duration) *IndexSyncScheduler {
	s.interval = interval
	return s
}

func (s *IndexSyncScheduler) Start() {
	s.log.WithField("interval", s.interval).Info("Starting index sync scheduler")
	go s.run()
}

// Stop gracefully stops the scheduler
func (s *IndexSyncScheduler) Stop() {
	s.log.Info("Stopping index sync scheduler")
	close(s.stop)
	<-s.done
	s.log.Info("Index sync scheduler stopped")
}

func (s *IndexSyncScheduler) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sync()

	for {
		select {
		case <-ticker.C:
			s.sync()
		case <-s.stop:
			return
		case <-s.ctx.Done():
			s.log.Info("Context cancelled, stopping index sync scheduler")
			return
		}
	}
}

func (s *IndexSyncScheduler) sync() {
	retryConfig := retry.DefaultRetryConfig().
		WithLogger(s.log.WithField("operation", "sync-index")).
		WithContext(s.ctx).
		WithMaxRetries(3).
		WithInitialDelay(time.Second).
		WithMaxDelay(10 * time.Second)

	var added int
	err := retry.ExecuteWithRetry(retryConfig, func() error {
		var err error
		added, err = profile.NewProcessor(s.log, s.ctx, s.db, s.index).SyncIndex()
		return err
	})
	if err != nil {
		s.log.WithError(err).Error("Failed to sync match index after retries")
		return
	}
	if added > 0 {
		s.log.WithField("added", added).Info("Match index synced")
	}
}
