package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "HRSLIDES_"

// DefaultFileNames are looked up in the working directory when no config
// file is given.
var DefaultFileNames = []string{"hrslides.yaml", "hrslides.yml"}

// flagKeys maps flag names that differ from their config key.
var flagKeys = map[string]string{
	"lang":       "language",
	"history-db": "history.dsn",
	"out-dir":    "output_dir",
}

// Defaults returns the built-in configuration values, rooted at home.
func Defaults(home string) map[string]interface{} {
	return map[string]interface{}{
		"output_dir":          ".",
		"language":            "fr",
		"author":              "",
		"log_dir":             filepath.Join(home, ".hrslides", "logs"),
		"verbose":             false,
		"preview_width":       960,
		"skills_dir":          filepath.Join(home, ".claude", "skills"),
		"history.enabled":     false,
		"history.engine":      "sqlite",
		"history.dsn":         filepath.Join(home, ".hrslides", "history.db"),
		"history.max_retries": 0,
	}
}

// Loader loads Config from layered sources.
// Precedence (highest to lowest): flags > env vars > config file > defaults
type Loader struct {
	k        *koanf.Koanf
	fileUsed string
	home     string
}

// NewLoader creates a loader. An empty home uses the user's home directory.
func NewLoader(home string) *Loader {
	if home == "" {
		home, _ = os.UserHomeDir()
	}
	return &Loader{k: koanf.New("."), home: home}
}

// FileUsed returns the config file that was read, if any.
func (l *Loader) FileUsed() string { return l.fileUsed }

func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range DefaultFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// envKey turns HRSLIDES_HISTORY_MAX_RETRIES into history.max_retries.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if rest, ok := strings.CutPrefix(key, "history_"); ok {
		return "history." + rest
	}
	return key
}

// flagKey turns a changed flag into its config key.
func flagKey(name string) string {
	if key, ok := flagKeys[name]; ok {
		return key
	}
	return strings.ReplaceAll(name, "-", "_")
}

// Load reads defaults, then cfgFile (or a default file in the working
// directory), then HRSLIDES_ variables, then the flags that were set.
func (l *Loader) Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	l.k = koanf.New(".")

	if err := l.k.Load(confmap.Provider(Defaults(l.home), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	l.fileUsed = findConfigFile(cfgFile)
	if l.fileUsed != "" {
		if err := l.k.Load(file.Provider(l.fileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", l.fileUsed, err)
		}
	}

	if err := l.k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := l.k.Load(posflag.ProviderWithFlag(flags, ".", l.k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return flagKey(f.Name), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := l.k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.LogDir = expandHome(cfg.LogDir, l.home)
	cfg.SkillsDir = expandHome(cfg.SkillsDir, l.home)
	if cfg.History.Engine == "sqlite" {
		cfg.History.DSN = expandHome(cfg.History.DSN, l.home)
	}
	return &cfg, nil
}

// expandHome replaces a leading "~" with home.
func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		return filepath.Join(home, rest)
	}
	return path
}
