// Package config loads the launcher settings from flags, environment
// (OPENLAUNCHER_*) and an optional ~/.openlauncher.{toml,yaml,json} file
package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pbnjay/memory"
	"github.com/spf13/viper"
)

// EnvPrefix is used for all environment variables
const EnvPrefix = "OPENLAUNCHER"

// Config is the resolved launcher configuration
type Config struct {
	// Root is the game root containing versions, libraries and assets
	Root string `mapstructure:"root"`
	// RuntimeRoot contains the java runtime families. Defaults to <root>/java
	RuntimeRoot string `mapstructure:"runtimeRoot"`
	// Memory is the max heap in MiB. 0 uses a heuristic
	Memory   int    `mapstructure:"memory"`
	JVMArgs  string `mapstructure:"jvmArgs"`
	Server   bool   `mapstructure:"server"`
	Username string `mapstructure:"username"`

	Log struct {
		Level string `mapstructure:"level"`
		File  string `mapstructure:"file"`
	} `mapstructure:"log"`

	Fetch struct {
		// RateLimit is requests per second, 0 disables it
		RateLimit float64 `mapstructure:"rateLimit"`
		Cache     bool    `mapstructure:"cache"`
	} `mapstructure:"fetch"`
}

// New returns a viper instance with defaults and environment binding set up
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	home, _ := os.UserHomeDir()
	v.SetDefault("root", filepath.Join(home, ".openlauncher"))
	v.SetDefault("runtimeRoot", "")
	v.SetDefault("memory", 0)
	v.SetDefault("jvmArgs", "")
	v.SetDefault("server", false)
	v.SetDefault("username", "Player")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", "")
	v.SetDefault("fetch.rateLimit", 0)
	v.SetDefault("fetch.cache", true)
	return v
}

// Load reads the config file (if there is one) into v and returns the result.
// file may be empty to search for .openlauncher in the home directory.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigName(".openlauncher")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if cfg.RuntimeRoot == "" {
		cfg.RuntimeRoot = filepath.Join(cfg.Root, "java")
	}
	if cfg.Memory <= 0 {
		cfg.Memory = DefaultMemoryMiB(0)
	}
	return cfg, nil
}

// DefaultMemoryMiB returns the heap size to use when none was configured
func DefaultMemoryMiB(mods int) int {
	return memoryHeuristic(float64(memory.TotalMemory())/1024/1024, mods)
}

func memoryHeuristic(sysMemMiB float64, mods int) int {
	// 1GiB for base Minecraft + every mod takes 25 MiB
	maxRamMiB := float64(1024 + mods*25)

	// we take 1/4 of the system memory if that is more
	maxRamMiB = math.Max(maxRamMiB, sysMemMiB/4)
	// but not more than 85% of the memory
	if sysMemMiB > 0 {
		maxRamMiB = math.Min(maxRamMiB, sysMemMiB*0.85)
	}
	return int(maxRamMiB)
}
