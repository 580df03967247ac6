package main

import (
	"fmt"
	"net"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetris-ga/internal/config"
	"github.com/vovakirdan/tetris-ga/internal/platform/tui"
	"github.com/vovakirdan/tetris-ga/internal/presets"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
	flagServeWeight string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH spectator server",
	Long: `Start an SSH server where every connection watches its own bot game.

Finished games are saved to the shared database and leaderboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.tetrisga/host_key

Examples:
  tetrisga serve                           # Listen on :23234 with auto-generated key
  tetrisga serve --ssh :2222               # Listen on port 2222
  tetrisga serve --host-key ./my_host_key  # Use specific host key
  tetrisga serve --weights best.yaml       # Show a trained genotype

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default: serve.address)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (default: serve.idle_timeout)")
	serveCmd.Flags().StringVar(&flagServeWeight, "weights", "", "Preset name or checkpoint file (default: watch.weights)")
}

func runServe(cmd *cobra.Command, _ []string) {
	cfg, _ := loadConfig()
	f := cmd.Flags()
	if f.Changed("ssh") {
		cfg.Serve.Address = flagSSHAddr
	}
	if f.Changed("host-key") {
		cfg.Serve.HostKeyPath = flagHostKey
	}
	if f.Changed("idle-timeout") {
		cfg.Serve.IdleTimeout = flagIdleTimeout
	}
	if f.Changed("weights") {
		cfg.Watch.Weights = flagServeWeight
	}
	validate(cfg)

	g, err := presets.Resolve(cfg.Watch.Weights)
	if err != nil {
		exitf("%v", err)
	}

	hostKey, err := config.ExpandHome(cfg.Serve.HostKeyPath)
	if err != nil {
		exitf("%v", err)
	}
	var leaderboardPath string
	if board := openLeaderboard(cfg.Output.LeaderboardPath); board != nil {
		leaderboardPath = board.Path()
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:         cfg.Serve.Address,
		HostKeyPath:     hostKey,
		DBPath:          cfg.Output.DBPath,
		LeaderboardPath: leaderboardPath,
		IdleTimeout:     cfg.Serve.IdleTimeout,
		Session: tui.Options{
			Rules:    cfg.Rules.Live(),
			Genotype: g,
			TickRate: cfg.Watch.TickRate,
		},
	})
	if err != nil {
		exitf("creating server: %v", err)
	}

	fmt.Printf("Starting tetrisga SSH server on %s\n", server.Addr())
	fmt.Println("Connect with: " + connectCommand(server.Addr()))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		exitf("server: %v", err)
	}
}

// connectCommand returns the ssh invocation that reaches a server listening
// on addr. Wildcard and empty hosts map to localhost.
func connectCommand(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "ssh " + addr
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}
	if port == "22" {
		return "ssh " + host
	}
	return fmt.Sprintf("ssh %s -p %s", host, port)
}
