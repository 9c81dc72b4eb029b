package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/voithos/awl/lisp"
	"github.com/voithos/awl/lisp/lisplib"
	"github.com/voithos/awl/parser"
	"github.com/voithos/awl/repl"
	"gopkg.in/yaml.v3"
)

// DefaultConfigName is the name of the config file looked up in the user's
// home directory.
const DefaultConfigName = ".awl.yaml"

// Config holds the settings read from the awl config file.
type Config struct {
	// Prompt is the primary repl prompt.
	Prompt string `yaml:"prompt"`
	// HistoryFile stores repl history.  A leading ~ refers to the user's
	// home directory.  History is not saved when HistoryFile is empty.
	HistoryFile string `yaml:"history_file"`
	// MaxDepth limits nested evaluation, see lisp.WithMaximumDepth.
	MaxDepth int `yaml:"max_depth"`
	// Preload lists source files run before any other code.
	Preload []string `yaml:"preload"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Prompt:   repl.DefaultPrompt,
		MaxDepth: lisp.DefaultMaxDepth,
	}
}

// LoadConfig reads the config file at path.  When path is empty the default
// file in the user's home directory is read if it exists.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = filepath.Join(home, DefaultConfigName)
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}
	return ParseConfig(b)
}

// ParseConfig decodes YAML config data.  Unset fields take default values.
func ParseConfig(b []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.MaxDepth < 0 {
		return nil, fmt.Errorf("config: max_depth must not be negative: %d", cfg.MaxDepth)
	}
	cfg.HistoryFile = expandHome(cfg.HistoryFile)
	return cfg, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// NewEnv returns a top level environment with the standard library and any
// preloaded files.
func (cfg *Config) NewEnv() (*lisp.LEnv, error) {
	config := []lisp.Config{
		lisp.WithReader(parser.NewReader()),
		lisp.WithMaximumDepth(cfg.MaxDepth),
		lisp.WithLibrary(lisplib.LoadLibrary),
	}
	for _, path := range cfg.Preload {
		config = append(config, withPreload(path))
	}
	return lisp.NewTopLevelEnv(config...)
}

func withPreload(path string) lisp.Config {
	return func(env *lisp.LEnv) lisp.LVal {
		f, err := os.Open(path)
		if err != nil {
			return lisp.Error(err)
		}
		defer f.Close()
		return env.Load(path, f)
	}
}
