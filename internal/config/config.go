package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "curatorctl", "config.yml")
}

// Load reads the config from disk (or env). Returns a defaulted config if no
// file exists yet — init writes one.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("user", "patron")
	v.SetDefault("api_base", "https://collectionapi.metmuseum.org/public/collection/v1")
	v.SetDefault("storage.db_path", defaultDataPath("favorites.db"))
	v.SetDefault("storage.cache_dir", defaultDataPath("cache"))
	v.SetDefault("fetch.parallelism", 0)
	v.SetDefault("fetch.timeout_seconds", 30)
	v.SetDefault("search.department", "European Paintings")
	v.SetDefault("search.classification", "Paintings")
	v.SetDefault("search.on_view", true)
	v.SetDefault("search.title_search", true)

	v.SetEnvPrefix("CURATORCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath := os.Getenv("CURATORCTL_CONFIG")
	if configPath == "" {
		configPath = DefaultPath()
	}
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine — defaults carry the program.
		if !os.IsNotExist(err) {
			if _, isCfgNotFound := err.(viper.ConfigFileNotFoundError); !isCfgNotFound {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Storage.DBPath = ExpandHome(cfg.Storage.DBPath)
	cfg.Storage.CacheDir = ExpandHome(cfg.Storage.CacheDir)

	return &cfg, nil
}

// Save writes the config to the default path.
func Save(cfg *Config) error {
	path := DefaultPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(cfg)
}

// ExpandHome expands a leading ~/ in a path.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

func defaultDataPath(name string) string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "curatorctl", name)
}
