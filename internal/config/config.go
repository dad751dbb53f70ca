// Package config loads the optional fairplay.hcl file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"

	"github.com/lox/fairplay/internal/moves"
)

// DefaultFile is the config file looked up when no path is given.
const DefaultFile = "fairplay.hcl"

// Config represents the complete configuration
type Config struct {
	Game  *GameSettings  `hcl:"game,block"`
	Log   *LogSettings   `hcl:"log,block"`
	Audit *AuditSettings `hcl:"audit,block"`
}

// GameSettings contains game settings
type GameSettings struct {
	Moves        []string `hcl:"moves,optional"`
	Rounds       *int     `hcl:"rounds,optional"` // nil means 1
	InputTimeout int      `hcl:"input_timeout,optional"` // seconds, 0 disables
}

// LogSettings contains diagnostics logging settings
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// AuditSettings contains audit trail settings
type AuditSettings struct {
	File string `hcl:"file,optional"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Game: &GameSettings{
			Moves:        []string{"rock", "paper", "scissors"},
			Rounds:       intPtr(1),
			InputTimeout: 0,
		},
		Log: &LogSettings{
			Level: "info",
			File:  "",
		},
		Audit: &AuditSettings{
			File: "",
		},
	}
}

// LoadConfig loads configuration from an HCL file. A missing file yields the
// defaults.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	defaults := DefaultConfig()

	if config.Game == nil {
		config.Game = defaults.Game
	}
	if len(config.Game.Moves) == 0 {
		config.Game.Moves = defaults.Game.Moves
	}
	if config.Game.Rounds == nil {
		config.Game.Rounds = defaults.Game.Rounds
	}
	if config.Log == nil {
		config.Log = defaults.Log
	}
	if config.Log.Level == "" {
		config.Log.Level = defaults.Log.Level
	}
	if config.Audit == nil {
		config.Audit = defaults.Audit
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := moves.Validate(c.Game.Moves); err != nil {
		return fmt.Errorf("game.moves: %w", err)
	}

	if c.Rounds() < 0 {
		return fmt.Errorf("game.rounds cannot be negative")
	}

	if c.Game.InputTimeout < 0 {
		return fmt.Errorf("game.input_timeout cannot be negative")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	return nil
}

// Rounds returns the number of rounds to play, 0 meaning until the human exits.
func (c *Config) Rounds() int {
	if c.Game.Rounds == nil {
		return 1
	}
	return *c.Game.Rounds
}

func intPtr(v int) *int { return &v }

// Timeout returns the input timeout, zero when disabled.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Game.InputTimeout) * time.Second
}

// Encode renders the configuration as HCL.
func (c *Config) Encode() []byte {
	f := hclwrite.NewEmptyFile()
	gohcl.EncodeIntoBody(c, f.Body())
	return f.Bytes()
}
