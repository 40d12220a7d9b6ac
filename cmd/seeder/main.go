package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/txsplit7000-backend/internal/model"
	"github.com/goodnatureofminers/txsplit7000-backend/internal/p2p"
)

type config struct {
	Addr        string        `long:"addr" env:"SEEDER_ADDR" description:"node address (host:port)" required:"true"`
	Network     model.Network `long:"network" env:"SEEDER_NETWORK" description:"network name" default:"mainnet"`
	UserAgent   string        `long:"user-agent" env:"SEEDER_USER_AGENT" description:"user agent sent in the version message" default:"/txsplit7000:0.1.0/"`
	StartHeight int32         `long:"start-height" env:"SEEDER_START_HEIGHT" description:"start height sent in the version message" default:"0"`
	Timeout     time.Duration `long:"timeout" env:"SEEDER_TIMEOUT" description:"handshake timeout" default:"10s"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("handshake failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	client, err := p2p.NewClient(cfg.Network, cfg.UserAgent, cfg.StartHeight, logger.Named("p2p"))
	if err != nil {
		return err
	}

	hsCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	result, err := client.Handshake(hsCtx, cfg.Addr)
	if err != nil {
		return err
	}

	fields := []zap.Field{
		zap.String("addr", cfg.Addr),
		zap.Duration("elapsed", result.Elapsed),
	}
	if result.Peer != nil {
		fields = append(fields,
			zap.Uint32("protocol", result.Peer.Protocol),
			zap.String("user_agent", result.Peer.UserAgent),
			zap.Int32("start_height", result.Peer.StartHeight),
			zap.Uint64("services", result.Peer.Services),
		)
	}
	logger.Info("handshake completed", fields...)
	return nil
}
