package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-wolf/internal/metrics"
	"github.com/vovakirdan/tui-wolf/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagMetricsAddr string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a game picker menu. Saves
and scores are stored per SSH user name in the server's database. New
sessions are rate limited per address (server.sessions_per_minute).

Prometheus metrics and the score API are served on the metrics address:
  /metrics        - engine, session and save counters
  /healthz        - liveness probe
  /scores/{game}  - top scores as JSON

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.wolf/host_key

Examples:
  wolf serve                      # Listen on :23235 with auto-generated key
  wolf serve --ssh :2222          # Listen on port 2222
  wolf serve --metrics ""         # Disable the metrics endpoint

Users can connect with:
  ssh localhost -p 23235`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics", "", "Metrics address (default from config, empty string disables)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes (default from config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	srvCfg := appConfig.Server
	if flagSSHAddr != "" {
		srvCfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		srvCfg.HostKeyPath = flagHostKey
	}
	if cmd.Flags().Changed("metrics") {
		srvCfg.MetricsAddress = flagMetricsAddr
	}
	if flagIdleTimeout > 0 {
		srvCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}

	store, err := openStore()
	if err != nil {
		logger.Warn("could not open database, saves and scores are disabled", "err", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Server:   srvCfg,
		TickRate: appConfig.Engine.TickRate,
		Skill:    appConfig.Skill.Index(),
		Store:    store,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if srvCfg.MetricsAddress != "" {
		router := metrics.NewRouter(metrics.RouterConfig{Logger: logger})
		if store != nil {
			router = metrics.NewRouter(metrics.RouterConfig{Scores: store, Logger: logger})
		}
		go func() {
			if err := metrics.Serve(ctx, srvCfg.MetricsAddress, router, logger); err != nil {
				logger.Error("metrics server stopped", "err", err)
			}
		}()
	}

	fmt.Printf("Starting SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe(ctx)
}
