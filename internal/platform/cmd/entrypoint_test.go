package cmd

import (
	"context"
	"errors"
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Address string `env:"CMD_TEST_ADDRESS" envDefault:"127.0.0.1:8080"`
	Mode    string `env:"CMD_TEST_MODE" envDefault:"server"`
}

func TestParseConfigReadsEnvAndFlags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg := testConfig{}
	require.NoError(t, ParseConfig(&cfg, map[string]string{
		"CMD_TEST_ADDRESS": "env:9000",
		"CMD_TEST_MODE":    "env-mode",
	}))
	fs.StringVar(&cfg.Address, "address", cfg.Address, "address")
	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "mode")

	require.NoError(t, ParseArgs(fs, []string{"-address", "flag:9001"}))
	assert.Equal(t, "flag:9001", cfg.Address)
	assert.Equal(t, "env-mode", cfg.Mode)
}

func TestParseConfigUsesProcessEnvironmentWhenNil(t *testing.T) {
	t.Setenv("CMD_TEST_MODE", "process-mode")
	cfg := testConfig{}

	require.NoError(t, ParseConfig(&cfg, nil))
	assert.Equal(t, "process-mode", cfg.Mode)
	assert.Equal(t, "127.0.0.1:8080", cfg.Address)
}

func TestParseConfigRejectsNilTarget(t *testing.T) {
	var cfg *testConfig
	require.Error(t, ParseConfig(cfg, nil))
}

func TestParseArgsRejectsNilParser(t *testing.T) {
	require.Error(t, ParseArgs(nil, []string{}))
}

func TestRunWithTelemetryRejectsMissingInputs(t *testing.T) {
	require.Error(t, RunWithTelemetry(context.Background(), "", func(context.Context) error { return nil }))
	require.Error(t, RunWithTelemetry(context.Background(), ServiceMCP, nil))
}

func TestRunWithTelemetryReturnsRunError(t *testing.T) {
	t.Setenv("ONET_MCP_OTEL_ENDPOINT", "")
	boom := errors.New("boom")

	err := RunWithTelemetry(context.Background(), ServiceMCP, func(context.Context) error { return boom })
	require.ErrorIs(t, err, boom)
}
