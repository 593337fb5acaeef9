package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// sections are the config keys environment variables can be bound under.
// An env var whose first underscore-separated segment matches a section is
// mapped to nested keys inside it; anything else binds as a flat top-level
// key (NAME, ENVIRONMENT, DEBUG).
var sections = []string{"server", "elevateai", "lifecycle", "observability", "logging"}

// FileSystem abstracts the file probing the loader does, so tests can run
// against a fake tree.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

type osFileSystem struct{}

func (osFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (osFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// LoaderConfig holds the loader's dependencies and optional explicit paths.
type LoaderConfig struct {
	FileSystem FileSystem
	// ConfigFile skips the config.yml search when set.
	ConfigFile string
	// EnvFile skips the .env search when set.
	EnvFile string
}

// LoaderOption customizes LoadConfig.
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

// configSearchPaths is where config.yml is looked up when no explicit path
// is given: next to the binary's source under cmd/, then the repo root.
// The parent variants cover running from a package directory during
// development.
func configSearchPaths() []string {
	return []string{
		"./cmd/autoqa/config.yml",
		"../cmd/autoqa/config.yml",
		"./config.yml",
		"../config.yml",
	}
}

func envSearchPaths() []string {
	return []string{
		"./.env",
		"./cmd/autoqa/.env",
		"../.env",
	}
}

func findFirst(fs FileSystem, paths []string) string {
	for _, p := range paths {
		if fs.Exists(p) {
			return p
		}
	}
	return ""
}

// LoadConfig loads configuration into cfg. Precedence, lowest to highest:
// config.yml, then .env entries, then process environment variables.
func LoadConfig(cfg interface{}, opts ...LoaderOption) error {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = osFileSystem{}
	}

	configFile := lc.ConfigFile
	if configFile == "" {
		configFile = findFirst(lc.FileSystem, configSearchPaths())
	}
	envFile := lc.EnvFile
	if envFile == "" {
		envFile = findFirst(lc.FileSystem, envSearchPaths())
	}

	v := viper.New()

	if configFile != "" && lc.FileSystem.Exists(configFile) {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config file %s: %w", configFile, err)
		}
	}

	// .env entries become process environment, so a single binding pass
	// after loading covers both sources.
	if envFile != "" && lc.FileSystem.Exists(envFile) {
		if err := lc.FileSystem.LoadEnv(envFile); err != nil {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}
	v.AutomaticEnv()
	bindEnvironment(v)

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}

// bindEnvironment maps every environment variable onto the viper keys it can
// address, so env vars override file values even for nested sections.
func bindEnvironment(v *viper.Viper) {
	for _, entry := range os.Environ() {
		name, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		for _, key := range envKeys(name) {
			v.Set(key, value)
		}
	}
}

// envKeys converts an env var name to candidate viper keys. For a var inside
// a known section the split point between subsection path and final key is
// ambiguous, so every split is produced:
//
//	ELEVATEAI_API_TOKEN          -> elevateai.api_token, elevateai.api.token
//	SERVER_CORS_ALLOWED_ORIGINS  -> server.cors_allowed_origins,
//	                                server.cors.allowed_origins,
//	                                server.cors.allowed.origins
//
// Setting the spurious variants is harmless: viper drops keys the target
// struct has no field for.
func envKeys(name string) []string {
	lower := strings.ToLower(name)
	section, rest, ok := strings.Cut(lower, "_")
	if !ok || !isSection(section) {
		return []string{lower}
	}

	parts := strings.Split(rest, "_")
	keys := make([]string, 0, len(parts))
	for i := 0; i < len(parts); i++ {
		prefix := strings.Join(parts[:i], ".")
		suffix := strings.Join(parts[i:], "_")
		if prefix == "" {
			keys = append(keys, section+"."+suffix)
		} else {
			keys = append(keys, section+"."+prefix+"."+suffix)
		}
	}
	return keys
}

func isSection(name string) bool {
	for _, s := range sections {
		if name == s {
			return true
		}
	}
	return false
}
