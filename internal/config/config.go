// Package config resolves which signature suite to use from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	EnvPrefix = "ECSIG"

	DefaultCurve = "secp256k1"
	DefaultHash  = "sha256"
)

var (
	ErrEmptyCurve = errors.New("curve cannot be empty")
	ErrEmptyHash  = errors.New("hash cannot be empty")
)

// Config selects the curve and hash of a suite by name.
type Config struct {
	Curve string `mapstructure:"curve"`
	Hash  string `mapstructure:"hash"`
}

func newViperInstance() *viper.Viper {
	v := viper.New()
	v.SetDefault("curve", DefaultCurve)
	v.SetDefault("hash", DefaultHash)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads ECSIG_CURVE and ECSIG_HASH, applying defaults for unset keys.
// Names are lower-cased and trimmed; they are not checked against the set of
// supported curves here.
func Load() (*Config, error) {
	return unmarshalAndValidate(newViperInstance())
}

func unmarshalAndValidate(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Curve = strings.ToLower(strings.TrimSpace(cfg.Curve))
	cfg.Hash = strings.ToLower(strings.TrimSpace(cfg.Hash))

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func Validate(cfg *Config) error {
	if cfg.Curve == "" {
		return ErrEmptyCurve
	}

	if cfg.Hash == "" {
		return ErrEmptyHash
	}

	return nil
}
