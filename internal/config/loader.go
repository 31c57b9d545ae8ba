package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML shape of a suite configuration file.
type fileConfig struct {
	Name          string            `yaml:"name"`
	TestRoot      string            `yaml:"test_root"`
	ExecRoot      string            `yaml:"exec_root"`
	ToolDirs      []string          `yaml:"tool_dirs"`
	Tools         []Tool            `yaml:"tools"`
	EnvAllow      []string          `yaml:"env_allow"`
	EnvSet        map[string]string `yaml:"env_set"`
	PathAppend    []string          `yaml:"path_append"`
	Substitutions []Substitution    `yaml:"substitutions"`
	Features      []string          `yaml:"features"`
	Suffixes      []string          `yaml:"suffixes"`
	Excludes      []string          `yaml:"excludes"`
	Timeout       string            `yaml:"timeout"`
	Workers       int               `yaml:"workers"`
}

// Load builds a Config from defaults, an optional suite file, an optional
// .env overlay, and command-line flags, in that precedence order. When the
// flags name no config file, jlit.yaml next to the test root is used if it
// exists.
func Load(flags Flags) (*Config, error) {
	cfg := New()

	path := flags.ConfigFile
	if path == "" {
		root := flags.TestRoot
		if root == "" {
			root = cfg.TestRoot
		}
		candidate := filepath.Join(root, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.ApplyFlags(flags)
	return cfg, nil
}

// loadFile merges one YAML suite file into the config. Relative paths in
// the file are resolved against the file's directory, and a .env sitting
// next to it is loaded into the process environment first so allow-listed
// variables can be provided per checkout.
func (c *Config) loadFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: resolve config path: %v", ErrConfiguration, err)
	}
	base := filepath.Dir(abs)

	if envPath := filepath.Join(base, ".env"); fileExists(envPath) {
		if err := godotenv.Load(envPath); err != nil {
			return fmt.Errorf("%w: load %s: %v", ErrConfiguration, envPath, err)
		}
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return fmt.Errorf("%w: read config: %v", ErrConfiguration, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("%w: parse %s: %v", ErrConfiguration, path, err)
	}

	if fc.Name != "" {
		c.SuiteName = fc.Name
	}
	if fc.TestRoot != "" {
		c.TestRoot = resolve(base, fc.TestRoot)
	} else {
		c.TestRoot = base
	}
	if fc.ExecRoot != "" {
		c.ExecRoot = resolve(base, fc.ExecRoot)
	} else {
		c.ExecRoot = resolve(base, DefaultExecRoot)
	}
	for _, d := range fc.ToolDirs {
		c.ToolDirs = append(c.ToolDirs, resolve(base, d))
	}
	c.Tools = append(c.Tools, fc.Tools...)
	c.EnvAllow = append(c.EnvAllow, fc.EnvAllow...)
	for k, v := range fc.EnvSet {
		c.EnvSet[k] = v
	}
	for _, d := range fc.PathAppend {
		c.PathAppend = append(c.PathAppend, resolve(base, d))
	}
	c.Substitutions = append(c.Substitutions, fc.Substitutions...)
	c.Features = append(c.Features, fc.Features...)
	if len(fc.Suffixes) > 0 {
		c.Suffixes = fc.Suffixes
	}
	c.Excludes = append(c.Excludes, fc.Excludes...)
	// The config file itself must never be discovered as a test.
	c.Excludes = append(c.Excludes, filepath.Base(abs))
	if fc.Timeout != "" {
		timeout, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return fmt.Errorf("%w: invalid timeout %q: %v", ErrConfiguration, fc.Timeout, err)
		}
		c.Timeout = timeout
	}
	if fc.Workers > 0 {
		c.Workers = fc.Workers
	}
	return nil
}

func resolve(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
