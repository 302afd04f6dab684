// Package config parses the proxy's command-line flags into a typed
// configuration, following the teacher's flag-based thin-adapter style.
package config

import (
	"flag"
	"fmt"
	"time"
)

// Config holds every runtime-tunable knob the proxy reads at startup.
type Config struct {
	Listen          string
	Upstream        string
	AcceptTimeout   time.Duration
	UpstreamTimeout time.Duration
	AgeInterval     time.Duration
	Debug           bool
}

// Default addresses. Listen defaults to an unprivileged port since binding
// :53 requires root on most platforms; deployments that want the standard
// port pass -listen explicitly.
const (
	DefaultListen   = "127.0.0.1:8053"
	DefaultUpstream = "8.8.8.8:53"
)

// Parse builds a Config from args (typically os.Args[1:]). It returns an
// error rather than exiting so callers can choose how to report it.
func Parse(args []string) (Config, error) {
	fs := flag.NewFlagSet("dnsproxy", flag.ContinueOnError)

	listen := fs.String("listen", DefaultListen, "address to listen for client queries on")
	upstream := fs.String("upstream", DefaultUpstream, "address of the recursive resolver to forward cache misses to")
	acceptTimeout := fs.Duration("recv-timeout", 200*time.Millisecond, "receive deadline for the accept loop's read")
	upstreamTimeout := fs.Duration("upstream-timeout", 2*time.Second, "deadline for a single upstream exchange")
	ageInterval := fs.Duration("age-interval", 60*time.Second, "interval between cache aging passes (minimum 1s)")
	debug := fs.Bool("debug", false, "enable debug-level logging")

	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}

	cfg := Config{
		Listen:          *listen,
		Upstream:        *upstream,
		AcceptTimeout:   *acceptTimeout,
		UpstreamTimeout: *upstreamTimeout,
		AgeInterval:     *ageInterval,
		Debug:           *debug,
	}

	if cfg.Listen == "" {
		return Config{}, fmt.Errorf("-listen must not be empty")
	}
	if cfg.Upstream == "" {
		return Config{}, fmt.Errorf("-upstream must not be empty")
	}
	if cfg.AgeInterval < time.Second {
		return Config{}, fmt.Errorf("-age-interval must be at least 1s, got %s", cfg.AgeInterval)
	}

	return cfg, nil
}
