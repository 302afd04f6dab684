package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	require.Equal(t, DefaultListen, cfg.Listen)
	require.Equal(t, DefaultUpstream, cfg.Upstream)
	require.Equal(t, 200*time.Millisecond, cfg.AcceptTimeout)
	require.Equal(t, 2*time.Second, cfg.UpstreamTimeout)
	require.Equal(t, 60*time.Second, cfg.AgeInterval)
	require.False(t, cfg.Debug)
}

func TestParseOverrides(t *testing.T) {
	cfg, err := Parse([]string{
		"-listen", "0.0.0.0:53",
		"-upstream", "1.1.1.1:53",
		"-recv-timeout", "500ms",
		"-upstream-timeout", "5s",
		"-age-interval", "30s",
		"-debug",
	})
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:53", cfg.Listen)
	require.Equal(t, "1.1.1.1:53", cfg.Upstream)
	require.Equal(t, 500*time.Millisecond, cfg.AcceptTimeout)
	require.Equal(t, 5*time.Second, cfg.UpstreamTimeout)
	require.Equal(t, 30*time.Second, cfg.AgeInterval)
	require.True(t, cfg.Debug)
}

func TestParseRejectsEmptyListen(t *testing.T) {
	_, err := Parse([]string{"-listen", ""})
	require.Error(t, err)
}

func TestParseRejectsSubSecondAgeInterval(t *testing.T) {
	_, err := Parse([]string{"-age-interval", "500ms"})
	require.Error(t, err)
}

func TestParseRejectsUnknownFlag(t *testing.T) {
	_, err := Parse([]string{"-bogus"})
	require.Error(t, err)
}
