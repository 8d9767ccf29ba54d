package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/orb-dash/internal/metrics"
	"github.com/vovakirdan/orb-dash/internal/platform/tui"
)

var (
	flagSSHAddr      string
	flagHostKey      string
	flagIdleTimeout  int
	flagMetricsAddr  string
	flagRatePerMin   float64
	flagRateBurst    int
	flagNoRateLimits bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Orb Dash SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own independent session with the menu.
Scores are stored per-server (all users share the same leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.orbdash/host_key

Examples:
  orbdash serve                               # Listen on :23234 with auto-generated key
  orbdash serve --ssh :2222                   # Listen on port 2222
  orbdash serve --host-key ./my_host_key      # Use specific host key
  orbdash serve --metrics-addr :9100          # Expose /metrics and /healthz
  orbdash serve --rate 30 --burst 10          # Looser per-IP session limit

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	defaults := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", defaults.Address, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics-addr", "", "Address for the /metrics and /healthz endpoint (disabled if empty)")
	serveCmd.Flags().Float64Var(&flagRatePerMin, "rate", defaults.RateLimit.SessionsPerMinute, "New sessions per minute allowed per IP")
	serveCmd.Flags().IntVar(&flagRateBurst, "burst", defaults.RateLimit.Burst, "Back-to-back sessions allowed per IP")
	serveCmd.Flags().BoolVar(&flagNoRateLimits, "no-rate-limit", false, "Disable the per-IP session limit")
}

func runServe(_ *cobra.Command, _ []string) {
	logger := newLogger("orbdash-ssh")

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.MetricsAddr = flagMetricsAddr
	cfg.TickRate = flagFPS
	cfg.Preset = preset()
	cfg.RateLimit.SessionsPerMinute = flagRatePerMin
	cfg.RateLimit.Burst = flagRateBurst
	if flagNoRateLimits {
		cfg.RateLimit = tui.UnlimitedRateLimitConfig
	}

	server, err := tui.NewSSHServer(cfg, logger, metrics.New())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting Orb Dash SSH server on %s\n", server.Addr())
	fmt.Printf("Connect with: ssh localhost -p %s\n", port(server.Addr()))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// port returns the port part of a host:port address.
func port(addr string) string {
	if _, p, err := net.SplitHostPort(addr); err == nil {
		return p
	}
	return addr
}
