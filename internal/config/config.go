// Package config provides layered configuration loading for the iceken CLI.
// It merges struct defaults with ICEKEN_-prefixed environment variables via
// koanf, then validates the result.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// envPrefix namespaces the environment variables, e.g. ICEKEN_COUNT.
const envPrefix = "ICEKEN_"

// Config holds the merged runtime configuration. Defaults are overridden
// by environment variables.
type Config struct {
	// Pretty indents the JSON validation report.
	Pretty bool `koanf:"pretty"`
	// Relaxed makes the generate command emit post-2026 style IDs whose
	// check digit deliberately fails Modulus 11.
	Relaxed bool `koanf:"relaxed"`
	// Raw suppresses the display hyphen in generated IDs.
	Raw bool `koanf:"raw"`
	// Count is how many IDs the generate command emits.
	Count int `koanf:"count" validate:"gte=1,lte=100000"`
	// Entity selects what the generate command produces.
	Entity string `koanf:"entity" validate:"oneof=personal company"`
	// Sequence pins the sequence digits of generated IDs; 0 means random.
	Sequence int `koanf:"sequence" validate:"omitempty,gte=20,lte=99"`
	// GenStart and GenEnd bound the random date range for generated IDs.
	// omitnested keeps the structs provider from flattening time.Time.
	GenStart time.Time `koanf:"gen_start,omitnested"`
	GenEnd   time.Time `koanf:"gen_end,omitnested"`
}

// DefaultAppConfig is the baseline configuration before any overrides.
var DefaultAppConfig = Config{
	Pretty:   true,
	Count:    1,
	Entity:   "personal",
	GenStart: time.Date(1930, time.January, 1, 0, 0, 0, 0, time.UTC),
	GenEnd:   time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC),
}

// Loader funcs are package vars so tests can inject failures.
var defaultLoader = func(k *koanf.Koanf) error {
	return k.Load(structs.Provider(DefaultAppConfig, "koanf"), nil)
}

var envLoader = func(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
			return key, value
		},
	}), nil)
}

var registerValidators = func(v *validator.Validate) error {
	v.RegisterStructValidation(validDateRange, Config{})
	return nil
}

// Load builds the effective configuration: defaults, then environment,
// then validation.
func Load() (*Config, error) {
	k := koanf.New(".")
	if err := defaultLoader(k); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}
	if err := envLoader(k); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	conf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.ComposeDecodeHookFunc(StringToDate()),
			WeaklyTypedInput: true,
			Result:           &cfg,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, conf); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	v := validator.New()
	if err := registerValidators(v); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}
	if err := v.Struct(&cfg); err != nil {
		return nil, friendlyError(err)
	}
	return &cfg, nil
}

// validDateRange is a struct-level check that the generation range is not
// inverted.
func validDateRange(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(Config)
	if cfg.GenStart.After(cfg.GenEnd) {
		sl.ReportError(cfg.GenStart, "GenStart", "gen_start", "daterange", "")
	}
}

// friendlyError rewrites validator output into messages usable on the CLI.
func friendlyError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	for _, fe := range verrs {
		switch fe.Tag() {
		case "daterange":
			return errors.New("gen_start must not be after gen_end")
		case "oneof":
			return fmt.Errorf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
		}
	}
	return fmt.Errorf("invalid configuration: %w", err)
}
