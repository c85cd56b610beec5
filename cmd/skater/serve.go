package main

import (
	"context"
	"errors"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/sats-skater/internal/config"
	"github.com/vovakirdan/sats-skater/internal/platform/tui"
	"github.com/vovakirdan/sats-skater/internal/platform/web"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH and HTTP servers",
	Long: `Start an SSH server that lets users connect and ride, and an HTTP
server with the leaderboard API and a live websocket event feed.

Each SSH connection gets its own session with the difficulty menu. The SSH
user name is stored with each run. All users share the same leaderboard.

HTTP endpoints:
  GET /healthz
  GET /api/scores?difficulty=normal&limit=10
  GET /api/stats
  GET /api/runs/{id}
  GET /ws/events      (websocket, events of every hosted run)

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.sats-skater/host_key

Examples:
  skater serve                          # SSH on :23234, HTTP on :8080
  skater serve --ssh :2222              # Listen on port 2222
  skater serve --http ""                # SSH only
  skater serve --ssh "" --http :9000    # Leaderboard only

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address, empty to disable (env SKATER_SSH_ADDR)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP server address, empty to disable (env SKATER_HTTP_ADDR)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) error {
	if !cmd.Flags().Changed("ssh") {
		flagSSHAddr = config.GetEnv("SKATER_SSH_ADDR", flagSSHAddr)
	}
	if !cmd.Flags().Changed("http") {
		flagHTTPAddr = config.GetEnv("SKATER_HTTP_ADDR", flagHTTPAddr)
	}
	if flagSSHAddr == "" && flagHTTPAddr == "" {
		return errors.New("nothing to serve: both --ssh and --http are empty")
	}

	logger := newLogger("skater")

	// Serve without storage if the database cannot be opened
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var servers []func(context.Context) error
	var sink tui.EventSink = tui.LogSink{Logger: logger}
	snapshotEvery := 0

	if flagHTTPAddr != "" {
		httpServer := web.NewServer(flagHTTPAddr, store, web.NewHub(logger))
		sink = tui.MultiSink{sink, httpServer.Hub()}
		snapshotEvery = max(flagFPS/4, 1) // About four frames a second on the feed
		servers = append(servers, httpServer.Serve)
	}

	if flagSSHAddr != "" {
		sshCfg := tui.DefaultSSHServerConfig()
		sshCfg.Address = flagSSHAddr
		sshCfg.HostKeyPath = flagHostKey
		sshCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
		sshCfg.TickRate = flagFPS
		sshCfg.SnapshotEvery = snapshotEvery

		sshServer, err := tui.NewSSHServer(sshCfg, store, sink)
		if err != nil {
			return err
		}
		logger.Info("connect with", "cmd", "ssh localhost -p "+port(flagSSHAddr))
		servers = append(servers, sshServer.Serve)
	}

	return serveAll(ctx, servers)
}

// serveAll runs every server until ctx is done. The first server to fail
// takes the others down and its error is returned.
func serveAll(ctx context.Context, servers []func(context.Context) error) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, serve := range servers {
		g.Go(func() error { return serve(ctx) })
	}
	return g.Wait()
}

// port returns the port part of a listen address.
func port(addr string) string {
	if _, p, err := net.SplitHostPort(addr); err == nil {
		return p
	}
	return addr
}
