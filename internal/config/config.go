// internal/config/config.go
//
// This package handles configuration and the .latticegen directory structure.
// Every directory that latticegen runs in gets a .latticegen/ folder.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// ProjectDirName is the name of the directory we create in each project
	ProjectDirName = ".latticegen"

	// CIMEDirEnv overrides cime.scripts_dir when set.
	CIMEDirEnv = "LATTICEGEN_CIME_DIR"

	defaultComponent      = "eam"
	defaultHistoryBackend = "file"
	defaultHistoryPath    = "state/history.json"
)

const defaultProjectConfigYAML = `# latticegen project configuration
version: 1

# Namelist file written in every case is user_nl_{component}.
component: eam

cime:
  # Directory holding create_clone. LATTICEGEN_CIME_DIR overrides this value.
  scripts_dir: ""
  # Pass --keepexe so clones reuse the root case build.
  keep_exe: true

defaults:
  resubmits: 0

history:
  # file or sqlite
  backend: file
  # Relative paths resolve against .latticegen/
  path: state/history.json

metrics:
  # When set, Prometheus text exposition is written here after each command.
  textfile: ""
`

// CIMEConfig locates the case scripts.
type CIMEConfig struct {
	ScriptsDir string `yaml:"scripts_dir"`
	KeepExe    *bool  `yaml:"keep_exe,omitempty"`
}

// DefaultsConfig holds run defaults that flags may override.
type DefaultsConfig struct {
	Resubmits int `yaml:"resubmits"`
}

// HistoryConfig selects the run history backend.
type HistoryConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

// MetricsConfig controls textfile export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// ProjectConfig models .latticegen/config.yaml.
type ProjectConfig struct {
	Version   int            `yaml:"version"`
	Component string         `yaml:"component"`
	CIME      CIMEConfig     `yaml:"cime"`
	Defaults  DefaultsConfig `yaml:"defaults"`
	History   HistoryConfig  `yaml:"history"`
	Metrics   MetricsConfig  `yaml:"metrics"`
}

// Config holds the runtime configuration for latticegen.
type Config struct {
	// ProjectDir is the directory where the user ran `latticegen` from
	ProjectDir string

	// StateRoot is ProjectDir/.latticegen
	StateRoot string

	Project ProjectConfig
}

// InitProjectDir creates the .latticegen directory structure in the given directory.
//
// Structure created:
// .latticegen/
// ├── config.yaml
// ├── logs/         <- commands.log and journal.log
// └── state/        <- run history
func InitProjectDir(projectDir string) error {
	root := filepath.Join(projectDir, ProjectDirName)

	dirs := []string{
		filepath.Join(root, "logs"),
		filepath.Join(root, "state"),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	if err := ensureProjectConfig(filepath.Join(root, "config.yaml")); err != nil {
		return err
	}

	return nil
}

// NewConfig creates a new Config instance populated with project settings.
// A missing config file yields defaults.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir: projectDir,
		StateRoot:  filepath.Join(projectDir, ProjectDirName),
		Project:    defaultProjectConfig(),
	}

	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}

	if dir := strings.TrimSpace(os.Getenv(CIMEDirEnv)); dir != "" {
		cfg.Project.CIME.ScriptsDir = resolvePath(projectDir, dir)
	}

	return cfg, nil
}

// LogsDir returns the path to the logs directory
func (c *Config) LogsDir() string {
	return filepath.Join(c.StateRoot, "logs")
}

// StateDir returns the path to the state directory
func (c *Config) StateDir() string {
	return filepath.Join(c.StateRoot, "state")
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.StateRoot, "config.yaml")
}

// Component returns the model component whose user_nl file is reconciled.
func (c *Config) Component() string {
	return c.Project.Component
}

// CIMEScriptsDir returns the directory holding create_clone.
func (c *Config) CIMEScriptsDir() string {
	return c.Project.CIME.ScriptsDir
}

// KeepExe reports whether clones share the root case executable.
func (c *Config) KeepExe() bool {
	if c.Project.CIME.KeepExe == nil {
		return true
	}
	return *c.Project.CIME.KeepExe
}

// DefaultResubmits returns the RESUBMIT value for fresh clones.
func (c *Config) DefaultResubmits() int {
	return c.Project.Defaults.Resubmits
}

// HistoryBackend returns the configured history backend name.
func (c *Config) HistoryBackend() string {
	return c.Project.History.Backend
}

// HistoryPath returns the absolute history location.
func (c *Config) HistoryPath() string {
	return resolvePath(c.StateRoot, c.Project.History.Path)
}

// MetricsTextfile returns the textfile export path, or "" when disabled.
func (c *Config) MetricsTextfile() string {
	return resolvePath(c.ProjectDir, c.Project.Metrics.Textfile)
}

// SetCIMEScriptsDir updates cime.scripts_dir and persists the value back to
// .latticegen/config.yaml.
func (c *Config) SetCIMEScriptsDir(dir string) error {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return fmt.Errorf("config: scripts dir is required")
	}
	c.Project.CIME.ScriptsDir = dir
	return c.saveProjectConfig()
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize(c.ProjectDir)
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func defaultProjectConfig() ProjectConfig {
	pc := ProjectConfig{}
	pc.applyDefaults()
	return pc
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if strings.TrimSpace(pc.Component) == "" {
		pc.Component = defaultComponent
	}
	if strings.TrimSpace(pc.History.Backend) == "" {
		pc.History.Backend = defaultHistoryBackend
	}
	if strings.TrimSpace(pc.History.Path) == "" {
		pc.History.Path = defaultHistoryPath
	}
}

func (pc *ProjectConfig) normalize(base string) {
	pc.Component = strings.TrimSpace(pc.Component)
	pc.CIME.ScriptsDir = resolvePath(base, pc.CIME.ScriptsDir)
	pc.History.Backend = strings.ToLower(strings.TrimSpace(pc.History.Backend))
	pc.History.Path = strings.TrimSpace(pc.History.Path)
	pc.Metrics.Textfile = strings.TrimSpace(pc.Metrics.Textfile)
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if strings.ContainsAny(pc.Component, `/\ `) {
		return fmt.Errorf("component %q must be a bare name", pc.Component)
	}
	if pc.Defaults.Resubmits < 0 {
		return fmt.Errorf("defaults.resubmits must be >= 0")
	}
	switch pc.History.Backend {
	case "file", "sqlite":
	default:
		return fmt.Errorf("history.backend must be 'file' or 'sqlite'")
	}
	return nil
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0644)
}

func (c *Config) saveProjectConfig() error {
	if c == nil {
		return fmt.Errorf("config: nil receiver")
	}
	c.Project.applyDefaults()
	c.Project.normalize(c.ProjectDir)
	if err := c.Project.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.MkdirAll(c.StateRoot, 0o755); err != nil {
		return fmt.Errorf("config: ensure state dir: %w", err)
	}
	data, err := yaml.Marshal(c.Project)
	if err != nil {
		return fmt.Errorf("config: encode config: %w", err)
	}
	if err := os.WriteFile(c.ProjectConfigPath(), data, 0644); err != nil {
		return fmt.Errorf("config: write project config: %w", err)
	}
	return nil
}
