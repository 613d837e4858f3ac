package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/heavycoin/heavyminer/pkg/core/types"
)

// EnvPrefix prefixes every environment variable override, e.g.
// HEAVYMINER_MINER_THREADS.
const EnvPrefix = "HEAVYMINER"

// Config holds the miner's runtime parameters.
type Config struct {
	Log   LogConfig   `mapstructure:"log"`
	Miner MinerConfig `mapstructure:"miner"`
	Store StoreConfig `mapstructure:"store"`
	RPC   RPCConfig   `mapstructure:"rpc"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MinerConfig struct {
	Variant       string        `mapstructure:"variant"`
	Threads       int           `mapstructure:"threads"`
	Difficulty    float64       `mapstructure:"difficulty"`
	StatsInterval time.Duration `mapstructure:"stats-interval"`
}

type StoreConfig struct {
	// Path is the share database directory; empty keeps shares in memory.
	Path string `mapstructure:"path"`
}

type RPCConfig struct {
	// Listen is the diagnostics HTTP address; empty disables the server.
	Listen string `mapstructure:"listen"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "plain",
		},
		Miner: MinerConfig{
			Variant:       types.VariantHeavy.String(),
			Threads:       0,
			Difficulty:    1,
			StatsInterval: 30 * time.Second,
		},
		Store: StoreConfig{
			Path: "",
		},
		RPC: RPCConfig{
			Listen: "",
		},
	}
}

// SetDefaults registers Default() on v so that every key is known to viper,
// including for environment lookups.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("miner.variant", d.Miner.Variant)
	v.SetDefault("miner.threads", d.Miner.Threads)
	v.SetDefault("miner.difficulty", d.Miner.Difficulty)
	v.SetDefault("miner.stats-interval", d.Miner.StatsInterval)
	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("rpc.listen", d.RPC.Listen)
}

// NewViper returns a viper instance with defaults and environment overrides
// configured.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file at path (if non-empty) into v and decodes the
// result. Flags bound to v take precedence over the file.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values viper cannot type-check.
func (c Config) Validate() error {
	if _, err := types.ParseVariant(c.Miner.Variant); err != nil {
		return fmt.Errorf("miner.variant: %w", err)
	}
	if c.Miner.Threads < 0 {
		return errors.New("miner.threads must not be negative")
	}
	if !(c.Miner.Difficulty > 0) {
		return fmt.Errorf("miner.difficulty must be positive, got %v", c.Miner.Difficulty)
	}
	return nil
}
