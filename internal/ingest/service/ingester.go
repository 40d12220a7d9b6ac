// Package service runs the ingestion loop that keeps the block tables
// complete: fetch missing heights, decode the blocks behind them, and batch
// the rows into storage.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/goodnatureofminers/txsplit7000-backend/internal/clock"
	"github.com/goodnatureofminers/txsplit7000-backend/internal/model"
	"go.uber.org/zap"
)

type Ingester struct {
	logger                 *zap.Logger
	network                model.Network
	metrics                Metrics
	sleep                  func(context.Context, time.Duration) error
	idleSleepDuration      time.Duration
	postBatchSleepDuration time.Duration
	heightFetcher          HeightFetcher
	blockProcessor         BlockProcessor
	blockWriter            BlockWriter
}

func NewIngester(
	repo Repository,
	source Source,
	metrics Metrics,
	network model.Network,
	logger *zap.Logger,
) (*Ingester, error) {
	logger = logger.With(zap.String("network", string(network)))

	if metrics == nil {
		return nil, errors.New("ingester metrics is required")
	}

	bw := newBlockWriter(repo, logger)

	return &Ingester{
		logger:                 logger,
		network:                network,
		metrics:                metrics,
		sleep:                  clock.SleepWithJitter,
		idleSleepDuration:      idleSleepDuration,
		postBatchSleepDuration: postBatchSleepDuration,
		heightFetcher: &missingHeightFetcher{
			repository: repo,
			source:     source,
			network:    network,
			limit:      randomHeightLimit,
		},
		blockWriter: bw,
		blockProcessor: &blockProcessor{
			workerCount: defaultWorkerCount,
			source:      source,
			blockWriter: bw,
			metrics:     metrics,
			logger:      logger.Named("blockProcessor"),
		},
	}, nil
}

func (s *Ingester) Run(ctx context.Context) error {
	bwCtx, bwCancel := context.WithCancel(ctx)
	s.blockProcessor.SetCancel(bwCancel)

	s.blockWriter.Start(bwCtx)
	defer func() {
		bwCancel()
		s.blockWriter.Stop()
	}()

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := s.run(ctx); err != nil {
			s.logger.Warn("run iteration failed, backing off", zap.Error(err), zap.Duration("sleep", s.idleSleepDuration))
			if sleepErr := s.sleep(ctx, s.idleSleepDuration); sleepErr != nil {
				return sleepErr
			}
		}
	}
}

func (s *Ingester) run(ctx context.Context) error {
	started := time.Now()
	heights, err := s.heightFetcher.Fetch(ctx)
	s.metrics.ObserveFetchMissing(err, started)
	if err != nil {
		s.logger.Error("fetch missing heights failed", zap.Error(err))
		return err
	}

	if len(heights) == 0 {
		s.logger.Info("no missing block heights; going idle", zap.Duration("sleep", s.idleSleepDuration))
		return s.sleep(ctx, s.idleSleepDuration)
	}

	s.logger.Info("processing batch", zap.Int("height_count", len(heights)))
	started = time.Now()
	if err := s.blockProcessor.Process(ctx, heights); err != nil {
		s.metrics.ObserveProcessBatch(err, len(heights), started)
		s.logger.Error("process batch failed", zap.Int("height_count", len(heights)), zap.Error(err))
		return err
	}
	s.metrics.ObserveProcessBatch(nil, len(heights), started)

	return s.sleep(ctx, s.postBatchSleepDuration)
}
