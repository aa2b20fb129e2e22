package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/alfredjeanlab/counsel/internal/config"
	"github.com/alfredjeanlab/counsel/internal/events"
	"github.com/alfredjeanlab/counsel/internal/notify"
	"github.com/alfredjeanlab/counsel/internal/server"
	"github.com/alfredjeanlab/counsel/internal/store"
	rostersync "github.com/alfredjeanlab/counsel/internal/sync"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Short:   "Start the roster HTTP and gRPC servers",
	GroupID: "system",
	// serve is the server; it does not dial one.
	PersistentPreRunE: noClient,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := openStore(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := st.Close(); err != nil {
				logger.Error("error closing store", "err", err)
			}
		}()

		var publisher events.Publisher
		if cfg.NATSURL != "" {
			pub, err := events.NewNATSPublisher(cfg.NATSURL)
			if err != nil {
				return err
			}
			publisher = pub
			logger.Info("events enabled", "nats_url", cfg.NATSURL)
		} else {
			publisher = notify.NewHandler(st, logger).Publisher(&events.NoopPublisher{})
			logger.Info("events disabled (COUNSEL_NATS_URL not set), notifications handled in-process")
		}
		defer func() {
			if err := publisher.Close(); err != nil {
				logger.Error("error closing publisher", "err", err)
			}
		}()

		if cfg.AuthToken == "" {
			logger.Warn("auth disabled (COUNSEL_AUTH_TOKEN not set)")
		}

		rosterServer := server.New(st, publisher, logger)
		grpcServer := server.NewGRPCServer(rosterServer, cfg.AuthToken)
		httpServer := &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           rosterServer.NewHTTPHandler(cfg.AuthToken),
			ReadHeaderTimeout: 10 * time.Second,
		}

		lis, err := net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			return err
		}

		if scheduler := newScheduler(ctx, cfg, st, logger); scheduler != nil {
			scheduler.Start()
			logger.Info("sync scheduler started", "interval", cfg.SyncInterval)
			defer func() {
				scheduler.Stop()
				logger.Info("sync scheduler stopped")
			}()
		}

		g, gctx := errgroup.WithContext(ctx)
		if cfg.NATSURL != "" {
			sub, err := events.NewNATSSubscriber(cfg.NATSURL)
			if err != nil {
				logger.Error("failed to create notification subscriber", "err", err)
			} else {
				handler := notify.NewHandler(st, logger)
				g.Go(func() error {
					defer sub.Close()
					return handler.StartSubscriber(gctx, sub)
				})
			}
		}
		g.Go(func() error {
			logger.Info("gRPC server listening", "addr", cfg.GRPCAddr)
			return grpcServer.Serve(lis)
		})
		g.Go(func() error {
			logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
			if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			logger.Info("shutting down")

			grpcServer.GracefulStop()
			logger.Info("gRPC server stopped")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.Error("HTTP server shutdown error", "err", err)
			}
			logger.Info("HTTP server stopped")
			return nil
		})

		logger.Info("counsel server started",
			"grpc_addr", cfg.GRPCAddr,
			"http_addr", cfg.HTTPAddr,
		)
		if err := g.Wait(); err != nil {
			return err
		}
		logger.Info("shutdown complete")
		return nil
	},
}

// newScheduler builds the snapshot scheduler from the sync settings, or
// returns nil when no destination is usable.
func newScheduler(ctx context.Context, cfg *config.Config, st store.Store, logger *slog.Logger) *rostersync.Scheduler {
	if !cfg.SyncEnabled() {
		return nil
	}
	var dests []rostersync.Destination
	if cfg.SyncS3Bucket != "" {
		s3Dest, err := rostersync.NewS3Destination(ctx, cfg.SyncS3Bucket, cfg.SyncS3Key, cfg.SyncS3Region, cfg.SyncS3Endpoint)
		if err != nil {
			logger.Error("failed to create S3 sync destination", "err", err)
		} else {
			dests = append(dests, s3Dest)
			logger.Info("sync destination enabled", "dest", s3Dest.String())
		}
	}
	if cfg.SyncGitRepo != "" {
		gitDest := rostersync.NewGitDestination(cfg.SyncGitRepo, cfg.SyncGitFile, cfg.SyncGitBranch)
		dests = append(dests, gitDest)
		logger.Info("sync destination enabled", "dest", gitDest.String())
	}
	if len(dests) == 0 {
		return nil
	}
	return rostersync.NewScheduler(st, dests, cfg.SyncInterval, logger)
}
