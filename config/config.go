package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug           = "debug"
	ConfigBoardWidth      = "board-width"
	ConfigBoardHeight     = "board-height"
	ConfigSelfplayGames   = "selfplay-games"
	ConfigSelfplayThreads = "selfplay-threads"
	ConfigSelfplayOutput  = "selfplay-output"
	ConfigGamestorePath   = "gamestore-path"
	ConfigSeedsFile       = "seeds-file"
	ConfigCPUProfile      = "cpu-profile"
)

// Config is a viper instance with our keys registered. Values come from
// flags, then C4_* environment variables, then defaults.
type Config struct {
	*viper.Viper
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigBoardWidth, 7)
	v.SetDefault(ConfigBoardHeight, 6)
	v.SetDefault(ConfigSelfplayGames, 1000)
	v.SetDefault(ConfigSelfplayThreads, 0)
	v.SetDefault(ConfigSelfplayOutput, "")
	v.SetDefault(ConfigGamestorePath, "")
	v.SetDefault(ConfigSeedsFile, "")
	v.SetDefault(ConfigCPUProfile, "")
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("C4")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// DefaultConfig returns a config with only defaults and environment
// values, for tests and library callers.
func DefaultConfig() *Config {
	return &Config{Viper: newViper()}
}

// Load parses command-line args into the config.
func (c *Config) Load(args []string) error {
	c.Viper = newViper()

	fs := pflag.NewFlagSet("connect4", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.Int(ConfigBoardWidth, 7, "number of columns")
	fs.Int(ConfigBoardHeight, 6, "number of rows")
	fs.Int(ConfigSelfplayGames, 1000, "number of self-play games to generate")
	fs.Int(ConfigSelfplayThreads, 0, "self-play worker count (0 means one per CPU)")
	fs.String(ConfigSelfplayOutput, "", "file to write training rows to")
	fs.String(ConfigGamestorePath, "", "sqlite database to record finished games in")
	fs.String(ConfigSeedsFile, "", "file of per-game seeds to replay")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}
	if err := c.BindPFlags(fs); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return nil
}

// AdjustRelativePaths makes every relative path setting relative to
// basepath instead of the working directory.
func (c *Config) AdjustRelativePaths(basepath string) {
	for _, key := range []string{ConfigSelfplayOutput, ConfigGamestorePath, ConfigSeedsFile, ConfigCPUProfile} {
		p := c.GetString(key)
		if p == "" || filepath.IsAbs(p) {
			continue
		}
		adjusted := filepath.Join(basepath, p)
		log.Debug().Str("key", key).Str("path", adjusted).Msg("adjusted-relative-path")
		c.Set(key, adjusted)
	}
}

// SanitizedSettings returns all settings in a form safe to log.
func (c *Config) SanitizedSettings() map[string]any {
	settings := c.AllSettings()
	for k := range settings {
		if strings.Contains(k, "key") || strings.Contains(k, "secret") {
			settings[k] = "********"
		}
	}
	return settings
}
