// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// MaxQueryLength is the longest query, in bytes, the interface accepts.
const MaxQueryLength = 4096

// Config holds the settings shared by the finder, the terminal interface and
// the command line.
type Config struct {
	// Prompt is printed before the query.
	// Default: "> "
	Prompt string

	// Lines is the number of result rows shown. It is clamped to the terminal
	// height at draw time.
	// Default: 10
	Lines int

	// ShowScores prefixes each result with its score.
	ShowScores bool

	// ShowInfo draws a "[available/total]" line under the prompt.
	ShowInfo bool

	// Workers is the number of search workers. 0 selects one per CPU.
	Workers int

	// Delimiter separates candidates in the input: '\n', or '\x00' for
	// NUL-separated input.
	// Default: '\n'
	Delimiter byte

	// InitialQuery is searched before the first keystroke.
	InitialQuery string

	// Scrolloff is the number of rows kept visible below the selection.
	// Default: 1
	Scrolloff int

	// HistoryPath is the directory of the history database.
	// Empty disables history. A leading "~/" is expanded.
	HistoryPath string

	// HistorySize is the number of history entries kept. 0 keeps all.
	// Default: 100
	HistorySize int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithPrompt sets the prompt.
func WithPrompt(prompt string) ConfigOption {
	return func(c *Config) {
		c.Prompt = prompt
	}
}

// WithLines sets the number of result rows.
func WithLines(lines int) ConfigOption {
	return func(c *Config) {
		c.Lines = lines
	}
}

// WithShowScores enables the score column.
func WithShowScores(show bool) ConfigOption {
	return func(c *Config) {
		c.ShowScores = show
	}
}

// WithShowInfo enables the match count line.
func WithShowInfo(show bool) ConfigOption {
	return func(c *Config) {
		c.ShowInfo = show
	}
}

// WithWorkers sets the number of search workers.
func WithWorkers(workers int) ConfigOption {
	return func(c *Config) {
		c.Workers = workers
	}
}

// WithReadNull switches the input delimiter to NUL.
func WithReadNull(null bool) ConfigOption {
	return func(c *Config) {
		if null {
			c.Delimiter = 0
		} else {
			c.Delimiter = '\n'
		}
	}
}

// WithInitialQuery sets the query searched at startup.
func WithInitialQuery(query string) ConfigOption {
	return func(c *Config) {
		c.InitialQuery = query
	}
}

// WithScrolloff sets the number of rows kept visible below the selection.
func WithScrolloff(rows int) ConfigOption {
	return func(c *Config) {
		c.Scrolloff = rows
	}
}

// WithHistory enables history stored in dir, keeping at most size entries.
func WithHistory(dir string, size int) ConfigOption {
	return func(c *Config) {
		c.HistoryPath = dir
		c.HistorySize = size
	}
}

// DefaultConfig returns a Config with the interactive defaults.
func DefaultConfig() *Config {
	return &Config{
		Prompt:      "> ",
		Lines:       10,
		Delimiter:   '\n',
		Scrolloff:   1,
		HistorySize: 100,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithLines(20),
//	    WithShowScores(true),
//	    WithHistory("~/.local/state/sift", 500),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It expands a leading "~/" in HistoryPath and cleans the path.
func (c *Config) Normalize() {
	if c.HistoryPath == "" {
		return
	}
	if c.HistoryPath == "~" || strings.HasPrefix(c.HistoryPath, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			c.HistoryPath = filepath.Join(home, strings.TrimPrefix(c.HistoryPath, "~"))
		}
	}
	c.HistoryPath = filepath.Clean(c.HistoryPath)
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Lines < 1 {
		return errors.New("config: Lines must be at least 1")
	}
	if c.Workers < 0 {
		return errors.New("config: Workers must not be negative")
	}
	if c.Delimiter != '\n' && c.Delimiter != 0 {
		return errors.New("config: Delimiter must be newline or NUL")
	}
	if c.Scrolloff < 0 {
		return errors.New("config: Scrolloff must not be negative")
	}
	if len(c.InitialQuery) > MaxQueryLength {
		return errors.New("config: InitialQuery is too long")
	}
	if c.HistorySize < 0 {
		return errors.New("config: HistorySize must not be negative")
	}
	return nil
}

// HistoryEnabled reports whether history should be recorded.
func (c *Config) HistoryEnabled() bool {
	return c.HistoryPath != ""
}
