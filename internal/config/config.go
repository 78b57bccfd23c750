// Package config loads the optional akorn.yaml settings file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/akorn-lang/akorn/internal/builtin"
	"github.com/akorn-lang/akorn/internal/normalizer"
	"github.com/akorn-lang/akorn/internal/parser"
)

// FileName is the settings file Discover looks for.
const FileName = "akorn.yaml"

// Config holds the tunable parts of the toolchain.
type Config struct {
	// Path is the file the configuration was read from, empty for defaults.
	Path        string            `yaml:"-"`
	Terminator  string            `yaml:"terminator"`
	Parser      ParserConfig      `yaml:"parser"`
	Diagnostics DiagnosticsConfig `yaml:"diagnostics"`
	Builtins    BuiltinsConfig    `yaml:"builtins"`
}

type ParserConfig struct {
	MaxDepth int `yaml:"max_depth"`
}

type DiagnosticsConfig struct {
	Snippets bool `yaml:"snippets"`
	// Limit caps the number of printed diagnostics; 0 prints all.
	Limit int `yaml:"limit"`
}

type BuiltinsConfig struct {
	Disabled []string `yaml:"disabled"`
}

// ValidationError aggregates configuration validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Terminator: normalizer.StyleAuto.String(),
		Parser:     ParserConfig{MaxDepth: parser.DefaultMaxDepth},
	}
}

// Load parses and validates the configuration file at path. Keys missing
// from the file keep their default values.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cfg := Default()
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", abs, err)
	}
	cfg.Path = abs
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Discover searches dir and its parents for FileName. Without a file it
// returns Default().
func Discover(dir string) (*Config, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", dir, err)
	}
	for {
		candidate := filepath.Join(abs, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return Load(candidate)
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return Default(), nil
		}
		abs = parent
	}
}

// Style returns the configured terminator style.
func (c *Config) Style() normalizer.Style {
	style, err := normalizer.ParseStyle(c.Terminator)
	if err != nil {
		return normalizer.StyleAuto
	}
	return style
}

// BuiltinTable returns table without the disabled builtins.
func (c *Config) BuiltinTable(table builtin.Table) builtin.Table {
	return table.Without(c.Builtins.Disabled...)
}

func (c *Config) validate() error {
	var errs ValidationError
	c.Terminator = strings.TrimSpace(c.Terminator)
	if _, err := normalizer.ParseStyle(c.Terminator); err != nil {
		errs.Issues = append(errs.Issues, fmt.Sprintf("terminator must be auto, newline or semicolon, got %q", c.Terminator))
	}
	if c.Parser.MaxDepth <= 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("parser.max_depth must be positive, got %d", c.Parser.MaxDepth))
	}
	if c.Diagnostics.Limit < 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("diagnostics.limit must not be negative, got %d", c.Diagnostics.Limit))
	}
	for i, name := range c.Builtins.Disabled {
		if _, ok := builtin.Signatures[name]; !ok {
			errs.Issues = append(errs.Issues, fmt.Sprintf("builtins.disabled[%d]: unknown builtin %q", i, name))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// Signatures returns the signatures of the enabled builtins.
func (c *Config) Signatures() map[string]builtin.Signature {
	out := make(map[string]builtin.Signature, len(builtin.Signatures))
	for name, sig := range builtin.Signatures {
		out[name] = sig
	}
	for _, name := range c.Builtins.Disabled {
		delete(out, name)
	}
	return out
}
