// Package config loads the fshp command's defaults from an optional YAML
// file and FSHP_* environment variables.
package config

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"

	"github.com/hasbyte1/go-fshp/fshp"
)

const (
	// EnvPrefix prefixes every environment override, e.g. FSHP_HASH_ROUNDS.
	EnvPrefix = "FSHP_"

	// DefaultFile is read from the working directory when no path is given.
	DefaultFile = "fshp.yaml"
)

type Config struct {
	Hash Hash `koanf:"hash"`
	Log  Log  `koanf:"log"`
}

// Hash holds the parameters used for newly produced hashes.
type Hash struct {
	Variant int `koanf:"variant" validate:"min=0,max=3"`
	Rounds  int `koanf:"rounds" validate:"min=1"`
	SaltLen int `koanf:"saltLen" validate:"min=0,max=1024"`
}

type Log struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Pretty bool   `koanf:"pretty"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Hash: Hash{
			Variant: int(fshp.DefaultVariant),
			Rounds:  fshp.DefaultRounds,
			SaltLen: fshp.DefaultSaltLen,
		},
		Log: Log{Level: "info"},
	}
}

// Load builds a Config from defaults, then the YAML file at path, then the
// environment.  An empty path falls back to FSHP_CONFIG and then to
// DefaultFile if it exists; an explicit path that is missing is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(EnvPrefix + "CONFIG")
	}
	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "read config %s failed", path)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return envKey(key), value
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			TagName:          "koanf",
			WeaklyTypedInput: true,
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrap(err, "unmarshal config failed")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	return nil
}

// Options converts the hash section into fshp.Options.
func (c *Config) Options() fshp.Options {
	return fshp.Options{
		Variant: fshp.Variant(c.Hash.Variant),
		Rounds:  c.Hash.Rounds,
		SaltLen: c.Hash.SaltLen,
	}
}

// envFields restores the camel-cased koanf tags so that environment values
// land on the same keys as the YAML file.
var envFields = map[string]string{
	"saltlen": "saltLen",
}

// envKey maps FSHP_HASH_SALTLEN to hash.saltLen.  Only the first underscore
// after the prefix separates the section from the field.
func envKey(raw string) string {
	key := strings.ToLower(strings.TrimPrefix(raw, EnvPrefix))
	section, field, ok := strings.Cut(key, "_")
	if !ok {
		return key
	}
	if f, ok := envFields[field]; ok {
		field = f
	}
	return section + "." + field
}
