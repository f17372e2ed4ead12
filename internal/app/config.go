package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the complete application configuration, loadable from
// environment variables (STOREFRONT_ prefix), flags, or YAML config files.
type Config struct {
	APIBaseURL     string        `default:"http://127.0.0.1:5000/api" usage:"Storefront backend API root" flag:"api-base-url"`
	TokenFile      string        `usage:"Path of the persisted bearer token (defaults under the user config dir)" flag:"token-file"`
	RequestTimeout time.Duration `default:"0s" usage:"Per-request timeout; 0 disables" flag:"request-timeout"`
	MaxQuantity    int           `default:"99" usage:"Maximum quantity per cart line" flag:"max-quantity"`
	ToastTTL       time.Duration `default:"5s" usage:"How long notifications stay on screen" flag:"toast-ttl"`
	Log            LogConfig
	Preferences    PreferencesConfig
}

// LogConfig controls the rotating log file. The terminal belongs to the UI,
// so logs never go to stdout.
type LogConfig struct {
	File       string `usage:"Log file path (defaults under the user cache dir)" flag:"log-file"`
	Level      string `default:"info" usage:"Minimum log level" flag:"log-level"`
	MaxSizeMB  int    `default:"10" usage:"Rotate the log file after this many megabytes" flag:"log-max-size"`
	MaxBackups int    `default:"3" usage:"Rotated log files to keep" flag:"log-max-backups"`
}

// PreferencesConfig are the shopper preferences sent with assistant and
// recommendation calls.
type PreferencesConfig struct {
	Style          string   `default:"casual" usage:"Preferred style"`
	Size           string   `default:"M" usage:"Preferred size"`
	FavoriteColors []string `default:"blue,black" usage:"Favorite colors" flag:"favorite-colors"`
	PriceRange     string   `default:"medium" usage:"Preferred price range" flag:"price-range"`
}

// LoadConfig loads configuration from environment variables, YAML config
// files, and flags, then fills in user-directory defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "STOREFRONT",
		Files:     []string{"storefront.yaml", "/etc/storefront/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyUserDirDefaults()
	return &cfg, nil
}

// applyUserDirDefaults places the token and log files under the conventional
// per-user directories when not configured explicitly.
func (c *Config) applyUserDirDefaults() {
	if c.TokenFile == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			c.TokenFile = filepath.Join(dir, "storefront", "token")
		}
	}
	if c.Log.File == "" {
		if dir, err := os.UserCacheDir(); err == nil {
			c.Log.File = filepath.Join(dir, "storefront", "storefront.log")
		}
	}
}
