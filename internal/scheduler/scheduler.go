// Package scheduler runs the periodic journal report.
package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const DefaultSpec = "0 21 * * *"

type Scheduler struct {
	cron       *cron.Cron
	spec       string
	ctx        context.Context
	cancel     context.CancelFunc
	reportFunc func(ctx context.Context) error
	log        logrus.FieldLogger
}

// New creates a scheduler for a standard five-field cron spec (descriptors
// such as "@every 1h" are accepted too). An empty spec means DefaultSpec.
func New(spec string, loc *time.Location, log logrus.FieldLogger) *Scheduler {
	if spec == "" {
		spec = DefaultSpec
	}
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron:   cron.New(cron.WithLocation(loc)),
		spec:   spec,
		ctx:    ctx,
		cancel: cancel,
		log:    log.WithField("schedule", spec),
	}
}

func (s *Scheduler) SetReportFunction(f func(ctx context.Context) error) {
	s.reportFunc = f
}

func (s *Scheduler) Start() error {
	if s.reportFunc == nil {
		return errors.New("report function not set")
	}

	_, err := s.cron.AddFunc(s.spec, func() {
		s.log.Info("report triggered")
		if err := s.reportFunc(s.ctx); err != nil {
			s.log.WithError(err).Error("report failed")
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info("scheduler started")
	return nil
}

// Stop waits for a running report to finish.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.log.Info("scheduler stopped")
}

func (s *Scheduler) IsRunning() bool {
	return s.cron != nil && len(s.cron.Entries()) > 0
}
