package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// FlagBinding maps a config key such as "server.port" to a flag name.
type FlagBinding struct {
	Key  string
	Flag string
}

// ApplyFlags overrides cfg with the flags the user actually set. Flags left
// at their defaults do not touch the loaded configuration.
func ApplyFlags(cfg *Config, flags *pflag.FlagSet, bindings []FlagBinding) error {
	v := viper.New()
	changed := 0
	for _, b := range bindings {
		f := flags.Lookup(b.Flag)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(b.Key, f); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", b.Flag, err)
		}
		changed++
	}
	if changed == 0 {
		return nil
	}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to apply flag overrides: %w", err)
	}
	return nil
}
