package config

import (
	"os"
	"strconv"
	"strings"

	goerrors "github.com/TudorHulban/go-errors"
	"github.com/asaskevich/govalidator"
)

const (
	defaultDays    = 7
	defaultMaxDays = 90
)

// Config covers process level configuration read from environment variables.
type Config struct {
	Environment string `valid:"in(development|staging|production)"`
	HTTPBind    string `valid:"required"`
	SpaceFile   string // optional, served on GET /availability

	HTTPPort    int
	DefaultDays int
	MaxDays     int
}

func Load() (*Config, error) {
	cfg := &Config{
		Environment: getEnv("AVAILABILITY_ENV", "development"),
		HTTPBind:    getEnv("AVAILABILITY_HTTP_BIND", "0.0.0.0"),
		HTTPPort:    getEnvInt("AVAILABILITY_HTTP_PORT", 8080),
		SpaceFile:   getEnv("AVAILABILITY_SPACE_FILE", ""),
		DefaultDays: getEnvInt("AVAILABILITY_DEFAULT_DAYS", defaultDays),
		MaxDays:     getEnvInt("AVAILABILITY_MAX_DAYS", defaultMaxDays),
	}

	if errValidation := cfg.IsValid(); errValidation != nil {
		return nil,
			errValidation
	}

	return cfg,
		nil
}

func (cfg *Config) IsValid() error {
	if _, errValidation := govalidator.ValidateStruct(cfg); errValidation != nil {
		return goerrors.ErrServiceValidation{
			ServiceName: "Config",
			Caller:      "IsValid",
			Issue:       errValidation,
		}
	}

	if cfg.HTTPPort <= 0 || cfg.HTTPPort > 65535 {
		return goerrors.ErrValidation{
			Caller: "IsValid - Config",
			Issue: goerrors.ErrInvalidInput{
				Caller:     "IsValid - Config",
				InputName:  "HTTPPort",
				InputValue: cfg.HTTPPort,
				Issue: goerrors.ErrNegativeInput{
					InputName: "HTTPPort",
				},
			},
		}
	}

	if cfg.MaxDays < 1 {
		return goerrors.ErrValidation{
			Caller: "IsValid - Config",
			Issue: goerrors.ErrNegativeInput{
				InputName: "MaxDays",
			},
		}
	}

	if cfg.DefaultDays < 1 || cfg.DefaultDays > cfg.MaxDays {
		return goerrors.ErrValidation{
			Caller: "IsValid - Config",
			Issue: goerrors.ErrInvalidInput{
				Caller:     "IsValid - Config",
				InputName:  "DefaultDays",
				InputValue: cfg.DefaultDays,
				Issue: goerrors.ErrNegativeInput{
					InputName: "DefaultDays",
				},
			},
		}
	}

	return nil
}

func getEnv(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}

	return def
}

// getEnvInt returns -1 for unparsable values so validation reports them.
func getEnvInt(key string, def int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return def
	}

	parsed, errConv := strconv.Atoi(val)
	if errConv != nil {
		return -1
	}

	return parsed
}
