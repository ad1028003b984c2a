// Package config loads run configuration from YAML files, with defaults
// overridden by the file and the file overridden by command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrMissingField is returned when a required configuration field is
// absent.
var ErrMissingField = errors.New("config: missing required field")

// Remesh holds the settings of a remeshing run. The keys mirror the
// flags of cmd/remesh.
type Remesh struct {
	InputMesh  string `yaml:"input_mesh"`
	OutMesh    string `yaml:"out_mesh"`
	NumSamples int    `yaml:"num_samples"`
	Resampling bool   `yaml:"resampling"`
	Evaluate   bool   `yaml:"evaluate"`
}

// Validate checks the required fields.
func (c *Remesh) Validate() error {
	if c.InputMesh == "" {
		return fmt.Errorf("%w: input_mesh", ErrMissingField)
	}
	if c.NumSamples <= 0 {
		return fmt.Errorf("config: num_samples must be positive, have %d", c.NumSamples)
	}
	return nil
}

// LoadRemesh reads a remesh configuration file.
func LoadRemesh(path string) (*Remesh, error) {
	cfg := &Remesh{}
	if err := loadYAML(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Server holds the settings of the remeshing HTTP service. Timeouts
// are in seconds.
type Server struct {
	Addr            string `yaml:"addr"`
	ReadTimeoutSec  int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSec int    `yaml:"write_timeout_seconds"`
	MaxConcurrent   int    `yaml:"max_concurrent"`
	MaxSamples      int    `yaml:"max_samples"`
	MaxBodyMB       int    `yaml:"max_body_mb"`
	LogLevel        string `yaml:"log_level"`
	LogFile         string `yaml:"log_file"`
}

// ReadTimeout returns the read timeout as a duration.
func (s *Server) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSec) * time.Second
}

// WriteTimeout returns the write timeout as a duration.
func (s *Server) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSec) * time.Second
}

// DefaultServer returns the server defaults.
func DefaultServer() *Server {
	return &Server{
		Addr:            ":8080",
		ReadTimeoutSec:  30,
		WriteTimeoutSec: 60,
		MaxConcurrent:   4,
		MaxSamples:      100_000,
		MaxBodyMB:       64,
		LogLevel:        "info",
	}
}

// LoadServer reads a server configuration file over the defaults.
func LoadServer(path string) (*Server, error) {
	cfg := DefaultServer()
	if err := loadYAML(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}
