package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("carbontrack-test")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "carbontrack-test", cfg.Telemetry.ServiceName)
	assert.Equal(t, "planting-plans", cfg.Temporal.TaskQueue)
	assert.Equal(t, 86400, cfg.Drawing.SessionTTL)
	assert.Equal(t, 5, cfg.Planner.TopN)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CARBONTRACK_SERVER_PORT", "9090")
	t.Setenv("CARBONTRACK_PLANNER_TOP_N", "3")

	cfg, err := Load("carbontrack-test")
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 3, cfg.Planner.TopN)
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := &Config{
		Valkey:    ValkeyConfig{Enabled: true},
		Telemetry: TelemetryConfig{Enabled: true},
	}
	err := cfg.Validate()
	require.Error(t, err)

	msg := err.Error()
	for _, want := range []string{
		"server.port",
		"nats.url",
		"valkey.addr",
		"temporal.host_port",
		"telemetry.otlp_addr",
		"drawing.session_ttl",
		"planner.plants_per_hectare",
	} {
		assert.True(t, strings.Contains(msg, want), "missing %q in %q", want, msg)
	}
}

func TestValidate_PlannerYearsBounded(t *testing.T) {
	cfg := &Config{
		Server:   ServerConfig{Port: 8080, ReadTimeout: 1, WriteTimeout: 1},
		NATS:     NATSConfig{URL: "nats://x"},
		Temporal: TemporalConfig{HostPort: "x:7233", TaskQueue: "q"},
		Drawing:  DrawingConfig{SessionTTL: 60},
		Planner:  PlannerConfig{PlantsPerHectare: 1, Years: 5000, TopN: 1},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "planner.years")
}

func TestValidate_ValkeyDisabledNeedsNoAddr(t *testing.T) {
	cfg := &Config{
		Server:   ServerConfig{Port: 8080, ReadTimeout: 1, WriteTimeout: 1},
		NATS:     NATSConfig{URL: "nats://x"},
		Temporal: TemporalConfig{HostPort: "x:7233", TaskQueue: "q"},
		Drawing:  DrawingConfig{SessionTTL: 60},
		Planner:  PlannerConfig{PlantsPerHectare: 1, Years: 1, TopN: 1},
	}
	assert.NoError(t, cfg.Validate())
}
