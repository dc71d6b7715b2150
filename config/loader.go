package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/stripefdw/util"
)

// FileSystem abstracts the file operations the loader needs.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// OSFileSystem implements FileSystem on the real file system.
type OSFileSystem struct{}

// Exists reports whether path can be stat'ed.
func (OSFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadEnv loads a dotenv file into the process environment. Variables that
// are already set win over the file.
func (OSFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// Resolver finds the config.yml and .env files for a binary.
type Resolver struct {
	FileSystem FileSystem
}

// ResolvedFiles contains the resolved config and env file paths.
// Empty fields mean nothing was found.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// ResolveFiles returns the explicit paths from opts when set, and otherwise
// searches the standard locations for name.
func (r *Resolver) ResolveFiles(name string, opts LoaderConfig) ResolvedFiles {
	resolved := ResolvedFiles{
		ConfigFile: opts.ConfigFile,
		EnvFile:    opts.EnvFile,
	}
	if resolved.ConfigFile == "" {
		resolved.ConfigFile = r.first(configCandidates(name))
	}
	if resolved.EnvFile == "" {
		resolved.EnvFile = r.first(envCandidates(name))
	}
	return resolved
}

func (r *Resolver) first(paths []string) string {
	for _, p := range paths {
		if r.FileSystem.Exists(p) {
			return p
		}
	}
	return ""
}

// configCandidates lists config.yml locations, most specific first.
func configCandidates(name string) []string {
	return []string{
		filepath.Join("cmd", name, "config.yml"),
		filepath.Join("config", name+".yml"),
		filepath.Join("config", "config.yml"),
		"config.yml",
	}
}

// envCandidates lists dotenv locations, most specific first.
func envCandidates(name string) []string {
	return []string{
		filepath.Join("cmd", name, ".env"),
		".env." + name,
		".env",
	}
}

// LoaderConfig holds dependencies and optional overrides for LoadConfig.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string // explicit config file path
	EnvFile    string // explicit .env file path
	Defaults   map[string]any
	Warnings   io.Writer
}

// LoaderOption is a functional option for LoadConfig.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// WithDefault registers a default for a dotted key such as "stripe.timeout".
func WithDefault(key string, value any) LoaderOption {
	return func(lc *LoaderConfig) {
		if lc.Defaults == nil {
			lc.Defaults = make(map[string]any)
		}
		lc.Defaults[key] = value
	}
}

// WithWarnings redirects loader warnings. They go to stderr by default.
func WithWarnings(w io.Writer) LoaderOption {
	return func(lc *LoaderConfig) { lc.Warnings = w }
}

// LoadConfig loads configuration for the named binary into cfg.
//
// Sources are layered lowest first: defaults, config.yml, the .env file,
// then the process environment. Environment variables map onto nested keys
// by splitting on underscores, so STRIPE_API_KEY fills stripe.api_key.
func LoadConfig(name string, cfg any, opts ...LoaderOption) error {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = OSFileSystem{}
	}
	if lc.Warnings == nil {
		lc.Warnings = os.Stderr
	}

	resolver := &Resolver{FileSystem: lc.FileSystem}
	files := resolver.ResolveFiles(name, lc)

	v := viper.New()
	for key, value := range lc.Defaults {
		v.SetDefault(key, value)
	}

	if files.ConfigFile != "" && lc.FileSystem.Exists(files.ConfigFile) {
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			fmt.Fprintf(lc.Warnings, "[config] warning: failed to load config file %s: %v\n", files.ConfigFile, err)
		}
	}

	if files.EnvFile != "" && lc.FileSystem.Exists(files.EnvFile) {
		if err := lc.FileSystem.LoadEnv(files.EnvFile); err != nil {
			fmt.Fprintf(lc.Warnings, "[config] warning: failed to load .env file %s: %v\n", files.EnvFile, err)
		}
	}

	v.AutomaticEnv()
	bindEnv(v, os.Environ())

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config for %s: %w", name, err)
	}
	return nil
}

// bindEnv copies every KEY=value pair onto each nested key it could name.
// Keys that already hold a section are skipped, so STRIPE=1 cannot
// replace the stripe block.
func bindEnv(v *viper.Viper, environ []string) {
	for _, env := range environ {
		key, value, ok := strings.Cut(env, "=")
		if !ok || key == "" || strings.HasPrefix(key, "_") {
			continue
		}
		value = util.SanitizeEnvValue(value)
		for _, variant := range envKeyVariants(key) {
			if isSection(v, variant) {
				continue
			}
			v.Set(variant, value)
		}
	}
}

// isSection reports whether any known key is nested under key.
func isSection(v *viper.Viper, key string) bool {
	prefix := key + "."
	for _, k := range v.AllKeys() {
		if strings.HasPrefix(k, prefix) {
			return true
		}
	}
	return false
}

// envKeyVariants returns the dotted keys an environment variable may address.
//
//	STRIPE_API_KEY -> [stripe_api_key, stripe.api.key, stripe.api_key]
//	LOGGING_LEVEL  -> [logging_level, logging.level]
func envKeyVariants(envKey string) []string {
	lower := strings.ToLower(envKey)
	parts := strings.Split(lower, "_")
	if len(parts) == 1 {
		return []string{lower}
	}

	variants := []string{lower, strings.Join(parts, ".")}
	for i := 1; i < len(parts); i++ {
		variants = append(variants, strings.Join(parts[:i], ".")+"."+strings.Join(parts[i:], "_"))
	}
	return dedupe(variants)
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	result := make([]string, 0, len(items))
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}
	return result
}
