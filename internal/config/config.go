package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// ProjectFile is the per-directory config file name.
const ProjectFile = ".retrobuddyconfig"

// Config holds all configurable retrobuddy settings.
type Config struct {
	OutputDir   string `json:"output_dir"`
	LogFile     string `json:"log_file"`  // empty means the state-dir default
	LogLevel    string `json:"log_level"` // "debug" | "info" | "warn" | "error"
	WatchInput  *bool  `json:"watch_input,omitempty"`
	ConfirmQuit *bool  `json:"confirm_quit,omitempty"`
	Journal     bool   `json:"journal"` // also log to the systemd journal
}

// Defaults returns sensible default configuration values.
func Defaults() Config {
	return Config{
		OutputDir:   "outputs",
		LogLevel:    "info",
		WatchInput:  boolPtr(true),
		ConfirmQuit: boolPtr(false),
	}
}

func boolPtr(b bool) *bool { return &b }

// Watch reports whether the input file should be watched for outside changes.
func (c Config) Watch() bool { return c.WatchInput == nil || *c.WatchInput }

// Confirm reports whether quitting asks for confirmation.
func (c Config) Confirm() bool { return c.ConfirmQuit != nil && *c.ConfirmQuit }

// Dir returns the retrobuddy config directory, ~/.config/retrobuddy.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "retrobuddy"), nil
}

// LoadGlobal reads ~/.config/retrobuddy/config.json.
// Returns defaults if the file is absent.
func LoadGlobal() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return loadFile(filepath.Join(dir, "config.json"), true)
}

// LoadProject reads .retrobuddyconfig in the current working directory.
// Returns nil (no error) if the file is absent.
func LoadProject() (*Config, error) {
	return loadFile(ProjectFile, false)
}

func loadFile(path string, returnDefaults bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if returnDefaults {
				d := Defaults()
				return &d, nil
			}
			return nil, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &cfg, nil
}

// Merge combines global and project configs, with project taking precedence.
// Missing keys fall back to global, then defaults.
func Merge(global, project *Config) Config {
	result := Defaults()
	for _, c := range []*Config{global, project} {
		if c == nil {
			continue
		}
		if c.OutputDir != "" {
			result.OutputDir = c.OutputDir
		}
		if c.LogFile != "" {
			result.LogFile = c.LogFile
		}
		if c.LogLevel != "" {
			result.LogLevel = c.LogLevel
		}
		if c.WatchInput != nil {
			result.WatchInput = c.WatchInput
		}
		if c.ConfirmQuit != nil {
			result.ConfirmQuit = c.ConfirmQuit
		}
		if c.Journal {
			result.Journal = true
		}
	}
	return result
}

// ParseError is returned when a config file exists but cannot be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "failed to parse config file " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
