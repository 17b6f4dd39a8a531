package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/lyricroom/backend/internal/domain/cron"
	"github.com/lyricroom/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(*cli.Context) error {
	if err := s.loadDatabase(); err != nil {
		return err
	}

	if err := s.loadRedisClient(); err != nil {
		return err
	}

	if err := s.loadPublisher(); err != nil {
		return err
	}

	s.loadIndexer()
	s.loadRepos()
	s.loadLedger()

	signalCtx, stop := signal.NotifyContext(s.ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Register(
		cron.NewPurgeExpiredStoriesCronJob(s.storyRepo, s.ledger, xcontext.Configs(s.ctx).Story.PurgeInterval),
	)

	xcontext.Logger(s.ctx).Infof("Started cron jobs")
	cronJobManager.Start(signalCtx)
	xcontext.Logger(s.ctx).Infof("Stopped cron jobs")

	return s.shutdown()
}
