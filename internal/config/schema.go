package config

// Config is the top-level curatorctl configuration.
type Config struct {
	User    string        `mapstructure:"user" yaml:"user"`
	APIBase string        `mapstructure:"api_base" yaml:"api_base"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Fetch   FetchConfig   `mapstructure:"fetch" yaml:"fetch"`
	Search  SearchConfig  `mapstructure:"search" yaml:"search"`
}

// StorageConfig holds local persistence paths.
type StorageConfig struct {
	DBPath   string `mapstructure:"db_path" yaml:"db_path"`
	CacheDir string `mapstructure:"cache_dir" yaml:"cache_dir"`
}

// FetchConfig tunes the detail fan-out.
type FetchConfig struct {
	Parallelism    int `mapstructure:"parallelism" yaml:"parallelism"`         // 0 = derive from core count
	TimeoutSeconds int `mapstructure:"timeout_seconds" yaml:"timeout_seconds"` // per-request
}

// SearchConfig holds default filter values, mirroring what the search form
// preselects.
type SearchConfig struct {
	Department     string `mapstructure:"department" yaml:"department"`
	Classification string `mapstructure:"classification" yaml:"classification"`
	OnView         bool   `mapstructure:"on_view" yaml:"on_view"`
	TitleSearch    bool   `mapstructure:"title_search" yaml:"title_search"`
}

// EffectiveUser returns the configured user or a default patron name.
func (c *Config) EffectiveUser() string {
	if c.User != "" {
		return c.User
	}
	return "patron"
}
