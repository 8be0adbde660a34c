package main

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"reelsmith/internal/daemon"
	"reelsmith/internal/logging"
	"reelsmith/internal/pipeline"
	"reelsmith/internal/queue"
	"reelsmith/internal/services/ffmpeg"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the assembly daemon and HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			logPath := filepath.Join(cfg.Paths.LogDir, "reelsmith.log")
			logger, err := logging.New(logging.Options{
				Level:       cfg.Logging.Level,
				Format:      cfg.Logging.Format,
				OutputPaths: []string{"stdout", logPath},
			})
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			store, err := queue.Open(cfg)
			if err != nil {
				return fmt.Errorf("open job store: %w", err)
			}

			transcoder := ffmpeg.NewCLI(cfg)
			orchestrator := pipeline.NewOrchestrator(cfg, store, transcoder, logger)
			manager := pipeline.NewManager(orchestrator, logger)

			d, err := daemon.New(cfg, store, manager, logger)
			if err != nil {
				store.Close()
				return err
			}
			if err := d.Start(signalCtx); err != nil {
				store.Close()
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "reelsmith daemon listening on %s\n", d.Addr())

			<-signalCtx.Done()
			d.Stop()
			return d.Close()
		},
	}
}
