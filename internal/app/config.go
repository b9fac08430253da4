package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Program string // name of a demo program, see ProgramNames
	Args    string // HCL tuple with values for the program's inputs
	Dump    bool

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.Program == "" {
		return nil, errors.New("Program is a required configuration field and cannot be empty")
	}
	if _, ok := programs[cfg.Program]; !ok {
		return nil, fmt.Errorf("unknown program %q: must be one of %v", cfg.Program, ProgramNames())
	}

	return &cfg, nil
}
