// Package engconfig loads and validates EngineConfig, the YAML-configured
// tunables for the collection/reconciliation engine, per spec.md §4.9.
// Discovery and Validate() are modeled directly on the teacher's
// manager.LoadConfig/Config.Validate pattern in pkg/manager/config.go.
package engconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EngineConfig carries every tunable the collection/reconciliation engine
// needs that is not supplied per-invocation (device list, credentials,
// sync flags). spec.md §4.9.
type EngineConfig struct {
	WorkerPoolSize int `yaml:"worker_pool_size,omitempty"`

	SSHConnectTimeout time.Duration `yaml:"ssh_connect_timeout,omitempty"`
	SSHCommandTimeout time.Duration `yaml:"ssh_command_timeout,omitempty"`
	SSHMaxRetries     int           `yaml:"ssh_max_retries,omitempty"`
	SSHRetryBackoff   time.Duration `yaml:"ssh_retry_backoff,omitempty"`

	NetBoxURL        string        `yaml:"netbox_url,omitempty"`
	NetBoxToken      string        `yaml:"netbox_token,omitempty"`
	NetBoxTimeout    time.Duration `yaml:"netbox_timeout,omitempty"`
	NetBoxMaxRetries int           `yaml:"netbox_max_retries,omitempty"`

	// CustomTemplateDir holds operator-supplied TextFSM-style override
	// templates, consulted before the shared template library
	// (pkg/parse's two-stage resolution, spec.md §4.3).
	CustomTemplateDir string `yaml:"custom_template_dir,omitempty"`
}

// Defaults returns the baseline EngineConfig before any YAML file or env
// override is applied. WorkerPoolSize of 10 matches spec.md §5's default
// collection concurrency.
func Defaults() EngineConfig {
	return EngineConfig{
		WorkerPoolSize:    10,
		SSHConnectTimeout: 10 * time.Second,
		SSHCommandTimeout: 30 * time.Second,
		SSHMaxRetries:     3,
		SSHRetryBackoff:   2 * time.Second,
		NetBoxTimeout:     15 * time.Second,
		NetBoxMaxRetries:  3,
	}
}

// ErrConfigNotFound is returned when no configuration file can be located
// and no explicit path was given.
var ErrConfigNotFound = errors.New("engine config not found")

// Load discovers and parses the YAML engine configuration, starting from
// Defaults() so a partial file only overrides what it sets. If
// explicitPath is empty, it searches, in order:
//  1. $NETINV_CONFIG
//  2. $XDG_CONFIG_HOME/netinv/config.yaml
//  3. ~/.config/netinv/config.yaml
//
// A missing file at every candidate path is not an error: Load returns
// Defaults() unchanged so the engine can run from environment/flag
// credentials alone.
func Load(explicitPath string) (EngineConfig, string, error) {
	cfg := Defaults()

	if explicitPath != "" {
		p := expandPath(explicitPath)
		data, err := os.ReadFile(p)
		if err != nil {
			return EngineConfig{}, "", fmt.Errorf("%w: %s", ErrConfigNotFound, p)
		}
		return parseInto(cfg, data, p)
	}

	for _, p := range pathCandidates() {
		p = expandPath(p)
		if p == "" {
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		return parseInto(cfg, data, p)
	}

	return cfg, "", nil
}

func parseInto(cfg EngineConfig, data []byte, path string) (EngineConfig, string, error) {
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return EngineConfig{}, path, fmt.Errorf("parse yaml %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return EngineConfig{}, path, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, path, nil
}

// pathCandidates lists the implicit (non-explicit-flag) discovery
// locations, in priority order.
func pathCandidates() []string {
	var out []string
	if env := os.Getenv("NETINV_CONFIG"); env != "" {
		out = append(out, env)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		out = append(out, filepath.Join(xdg, "netinv", "config.yaml"))
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		out = append(out, filepath.Join(home, ".config", "netinv", "config.yaml"))
	}
	return out
}

func expandPath(p string) string {
	if p == "" {
		return ""
	}
	p = os.ExpandEnv(p)
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			p = filepath.Join(home, p[2:])
		}
	}
	return p
}

// Validate checks field-qualified invariants: no negative counts or
// durations, and that a NetBox URL is always paired with a token (a
// destructive sync run cannot authenticate with one but not the other).
// It never includes NetBoxToken's value in any returned error.
func (c EngineConfig) Validate() error {
	if c.WorkerPoolSize < 0 {
		return fmt.Errorf("worker_pool_size: must be >= 0, got %d", c.WorkerPoolSize)
	}
	if c.SSHConnectTimeout < 0 {
		return fmt.Errorf("ssh_connect_timeout: must be >= 0, got %s", c.SSHConnectTimeout)
	}
	if c.SSHCommandTimeout < 0 {
		return fmt.Errorf("ssh_command_timeout: must be >= 0, got %s", c.SSHCommandTimeout)
	}
	if c.SSHMaxRetries < 0 {
		return fmt.Errorf("ssh_max_retries: must be >= 0, got %d", c.SSHMaxRetries)
	}
	if c.SSHRetryBackoff < 0 {
		return fmt.Errorf("ssh_retry_backoff: must be >= 0, got %s", c.SSHRetryBackoff)
	}
	if c.NetBoxTimeout < 0 {
		return fmt.Errorf("netbox_timeout: must be >= 0, got %s", c.NetBoxTimeout)
	}
	if c.NetBoxMaxRetries < 0 {
		return fmt.Errorf("netbox_max_retries: must be >= 0, got %d", c.NetBoxMaxRetries)
	}
	if (c.NetBoxURL == "") != (c.NetBoxToken == "") {
		return fmt.Errorf("netbox_url and netbox_token must both be set or both be empty")
	}
	return nil
}

// String deliberately omits NetBoxToken, mirroring Credentials.String's
// refusal to let secret material leak into a %v/%s log statement.
func (c EngineConfig) String() string {
	return fmt.Sprintf(
		"EngineConfig{WorkerPoolSize:%d NetBoxURL:%q SSHConnectTimeout:%s SSHCommandTimeout:%s}",
		c.WorkerPoolSize, c.NetBoxURL, c.SSHConnectTimeout, c.SSHCommandTimeout,
	)
}
