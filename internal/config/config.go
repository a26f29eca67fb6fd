// Package config handles loading and merging of hdrcomp configuration files.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/NikitaCOEUR/hdrcomp/internal/logger"
	"github.com/NikitaCOEUR/hdrcomp/internal/scanner"
	"github.com/NikitaCOEUR/hdrcomp/internal/syspath"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// AuthChecker defines the interface for checking directory authorization
type AuthChecker interface {
	IsAllowed(path string) (bool, error)
}

// CommandApprover is implemented by auth stores that also pin the exact
// shell commands approved for a directory
type CommandApprover interface {
	CommandsApproved(dir string, commands []string) bool
}

// SupportedConfigNames contains supported configuration file names (in order of preference)
var SupportedConfigNames = []string{
	".hdrcomp.yml",
	".hdrcomp.yaml",
	".hdrcomp.toml",
	".hdrcomp.json",
}

const (
	// GlobalConfigName is the name of the global config file
	GlobalConfigName = "config.yml"
)

//go:embed defaults.yml
var defaultsYAML []byte

// PathEntry is one configured search path: a (possibly templated) directory,
// or a shell command printing directories.
type PathEntry struct {
	Path string
	Sh   string
}

// IsShell reports whether the entry runs a command
func (e PathEntry) IsShell() bool {
	return e.Sh != ""
}

func (e PathEntry) String() string {
	if e.IsShell() {
		return "sh: " + e.Sh
	}
	return e.Path
}

// Config represents one hdrcomp configuration file
type Config struct {
	UserPaths     []interface{}          `koanf:"user_paths"`   // strings or {sh: ...}
	SystemPaths   []interface{}          `koanf:"system_paths"` // nil means use the platform heuristic
	SystemLayouts []syspath.Layout       `koanf:"system_layouts"`
	Platform      string                 `koanf:"platform"`
	ModeFilters   map[string]interface{} `koanf:"mode_filters"` // regex string or {regex|glob: ...}
	LocalOnly     bool                   `koanf:"local_only"`
	IgnoreGlobal  bool                   `koanf:"ignore_global"`
}

// GetUserPaths returns the normalized user path entries
func (c *Config) GetUserPaths() []PathEntry {
	return normalizeEntries(c.UserPaths)
}

// GetSystemPaths returns the normalized system path entries and whether the
// key was set at all
func (c *Config) GetSystemPaths() ([]PathEntry, bool) {
	return normalizeEntries(c.SystemPaths), c.SystemPaths != nil
}

// ShellCommands returns the commands of every shell path entry
func (c *Config) ShellCommands() []string {
	system, _ := c.GetSystemPaths()
	var cmds []string
	for _, e := range append(c.GetUserPaths(), system...) {
		if e.IsShell() {
			cmds = append(cmds, e.Sh)
		}
	}
	return cmds
}

// GetModeFilters returns the filter specs keyed by normalized mode id
func (c *Config) GetModeFilters() map[string]scanner.FilterSpec {
	result := make(map[string]scanner.FilterSpec, len(c.ModeFilters))
	for mode, value := range c.ModeFilters {
		mode = scanner.NormalizeMode(mode)
		switch v := value.(type) {
		case string:
			result[mode] = scanner.FilterSpec{Regex: v}
		case map[string]interface{}:
			spec := scanner.FilterSpec{}
			if re, ok := v["regex"].(string); ok {
				spec.Regex = re
			}
			if glob, ok := v["glob"].(string); ok {
				spec.Glob = glob
			}
			result[mode] = spec
		}
	}
	return result
}

func normalizeEntries(values []interface{}) []PathEntry {
	entries := make([]PathEntry, 0, len(values))
	for _, value := range values {
		switch v := value.(type) {
		case string:
			entries = append(entries, PathEntry{Path: v})
		case map[string]interface{}:
			if sh, ok := v["sh"].(string); ok {
				entries = append(entries, PathEntry{Sh: sh})
			} else if p, ok := v["path"].(string); ok {
				entries = append(entries, PathEntry{Path: p})
			}
		}
	}
	return entries
}

// Loader handles loading and parsing configuration files
type Loader struct {
	cache map[string]*Config
	log   *logger.Logger
}

// New creates a new config loader
func New() *Loader {
	return &Loader{cache: make(map[string]*Config)}
}

// WithLogger sets the logger used for hierarchy warnings
func (l *Loader) WithLogger(log *logger.Logger) *Loader {
	l.log = log
	return l
}

func (l *Loader) logger() *logger.Logger {
	if l.log == nil {
		return logger.Discard()
	}
	return l.log
}

func parserFor(path string) (koanf.Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
}

func unmarshal(data []byte, parser koanf.Parser) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg := &Config{ModeFilters: make(map[string]interface{})}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// Defaults returns the built-in configuration
func Defaults() *Config {
	cfg, err := unmarshal(defaultsYAML, yaml.Parser())
	if err != nil {
		panic(fmt.Sprintf("invalid embedded defaults: %v", err))
	}
	return cfg
}

// Load reads and parses a configuration file
func (l *Loader) Load(path string) (*Config, error) {
	if cfg, ok := l.cache[path]; ok {
		return cfg, nil
	}

	parser, err := parserFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := unmarshal(data, parser)
	if err != nil {
		return nil, err
	}

	l.cache[path] = cfg
	return cfg, nil
}

// GetGlobalConfigPath returns the path to the global config file
func GetGlobalConfigPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}

	return filepath.Join(configHome, "hdrcomp", GlobalConfigName), nil
}

// FindLocalConfig returns the config file in dir, or "" if there is none
func FindLocalConfig(dir string) string {
	for _, name := range SupportedConfigNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// FindConfigFiles searches for config files from startDir up to the root.
// Returns paths in order from root to leaf.
func FindConfigFiles(startDir string) []string {
	var configs []string
	currentDir := startDir

	for {
		if path := FindLocalConfig(currentDir); path != "" {
			configs = append(configs, path)
		}

		parent := filepath.Dir(currentDir)
		if parent == currentDir {
			break
		}
		currentDir = parent
	}

	for i, j := 0, len(configs)-1; i < j; i, j = i+1, j-1 {
		configs[i], configs[j] = configs[j], configs[i]
	}

	return configs
}
