package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chroma-arcade/internal/core"
	"github.com/vovakirdan/chroma-arcade/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host the colour games over SSH",
	Long: `Run an SSH server so anyone with a terminal can play.

Each connection gets the game menu. All players share one scores database,
so the scoreboard and round history are server-wide. Game settings come
from the palettes and game config files on the server; they are checked
once at startup.

The host key is read from --host-key, or generated at ~/.chroma/host_key.

Examples:
  chroma serve
  chroma serve --ssh :2222 --idle-timeout 10m
  chroma serve --host-key ./host_key --db ./scores.db

Players connect with:
  ssh -p 23234 <host>`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", env.SSHAddr, "Listen address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Host key file (default ~/.chroma/host_key)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 30*time.Minute, "Disconnect players idle for this long")
}

func runServe(_ *cobra.Command, _ []string) error {
	if err := checkGames(core.DefaultConfig(), gameIDs()...); err != nil {
		return err
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: flagIdleTimeout,
		TickRate:    flagFPS,
		Logger:      logger.WithPrefix("chroma-ssh"),
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Chroma Arcade is serving on %s (Ctrl+C to stop)\n", server.Addr())
	return server.Serve(ctx)
}
