package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents host-level configuration for running the planner
// against a population of agents: worker pool sizing, the soft search
// budget, harness retry policy, and telemetry endpoints. The planner core
// itself takes no configuration — it is a pure function of (state,
// actions, goal) — this is entirely the ambient configuration of the
// execution harness (§4.9, §5).
type Config struct {
	Pool      PoolConfig      `yaml:"pool"`
	Search    SearchConfig    `yaml:"search"`
	Harness   HarnessConfig   `yaml:"harness"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// PoolConfig sizes the background worker pool searches run on.
type PoolConfig struct {
	Workers int `yaml:"workers"`
}

// SearchConfig holds search soft-budget settings (§5 Timeouts).
type SearchConfig struct {
	SoftBudgetMillis int `yaml:"soft_budget_millis"`
}

// HarnessConfig holds the per-agent harness flags of §4.9.
type HarnessConfig struct {
	AlwaysPlan              bool `yaml:"always_plan"`
	RemoveGoalOnNoPlanFound bool `yaml:"remove_goal_on_no_plan_found"`
}

// TelemetryConfig holds the optional Prometheus/InfluxDB endpoints for
// planner search metrics (§7).
type TelemetryConfig struct {
	PushgatewayURL string `yaml:"pushgateway_url"` // supports ${ENV_VAR} interpolation
	JobName        string `yaml:"job_name"`
	InfluxURL      string `yaml:"influx_url"`
	InfluxToken    string `yaml:"influx_token"`
	InfluxOrg      string `yaml:"influx_org"`
	InfluxBucket   string `yaml:"influx_bucket"`
}

// DefaultConfig returns a config with sensible defaults for a single
// demo host running a handful of agents.
func DefaultConfig() *Config {
	return &Config{
		Pool: PoolConfig{
			Workers: 4,
		},
		Search: SearchConfig{
			SoftBudgetMillis: 10,
		},
		Harness: HarnessConfig{
			AlwaysPlan:              true,
			RemoveGoalOnNoPlanFound: false,
		},
		Telemetry: TelemetryConfig{
			JobName: "goap_planner",
		},
	}
}

// LoadConfig loads configuration from a YAML file, falling back to
// DefaultConfig when path is empty or the file does not exist.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to a YAML file.
func SaveConfig(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ExampleConfig returns a commented example config.
func ExampleConfig() string {
	return `# GOAP planner host configuration
# Values in this file override the defaults; ${ENV_VAR} references are
# expanded from the environment before parsing.

pool:
  # Number of concurrent background searches (§5).
  workers: 4

search:
  # Soft wall-clock budget per search, in milliseconds; searches that run
  # longer are logged at warn level with the plan length (§5, §7).
  soft_budget_millis: 10

harness:
  # Launch a new search every tick rather than only when requested.
  always_plan: true

  # Clear an agent's current goal when no plan can be found for it,
  # instead of retrying it every tick.
  remove_goal_on_no_plan_found: false

telemetry:
  # Prometheus Pushgateway URL; empty disables pushing.
  pushgateway_url: ${GOAP_PUSHGATEWAY_URL}
  job_name: goap_planner

  # InfluxDB bucket for longer-term search trend storage; empty disables it.
  influx_url: ${GOAP_INFLUX_URL}
  influx_token: ${GOAP_INFLUX_TOKEN}
  influx_org: ${GOAP_INFLUX_ORG}
  influx_bucket: ${GOAP_INFLUX_BUCKET}
`
}
