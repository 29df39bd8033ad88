package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/socialauth/pkg/logger"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// App is the configuration of the socialauth server command.
type App struct {
	Log             logger.Config
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080" validate:"required"`
	BaseURL         string        `env:"BASE_URL" envDefault:"http://localhost:8080" validate:"required,url"`
	ProvidersFile   string        `env:"PROVIDERS_FILE" envDefault:"providers.yaml" validate:"required"`
	RedisURL        string        `env:"REDIS_URL"`
	CookieSecret    string        `env:"COOKIE_SECRET" validate:"omitempty,min=32"`
	LogoutURL       string        `env:"LOGOUT_URL" envDefault:"/logout" validate:"omitempty,startswith=/"`
	LogoutAfter     string        `env:"LOGOUT_AFTER" envDefault:"/"`
	MetricsPath     string        `env:"METRICS_PATH" envDefault:"/metrics"`
	SessionTTL      time.Duration `env:"SESSION_TTL" envDefault:"24h" validate:"gt=0"`
	StateTTL        time.Duration `env:"STATE_TTL" envDefault:"10m" validate:"gt=0"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" envSeparator:","`
	CookieSecure    bool          `env:"COOKIE_SECURE"`
	DisableSession  bool          `env:"DISABLE_SESSION"`
	ReturnRaw       bool          `env:"RETURN_RAW"`
}

// Load reads the given dotenv files (".env" when none are given) and parses
// the environment into v. Missing dotenv files are ignored; variables already
// set in the environment win over the files.
// Structs with validate tags are validated after parsing.
//
//	var cfg config.App
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T, files ...string) error {
	if v == nil {
		return ErrNilPointer
	}
	if err := loadDotenv(files...); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	if err := validate.Struct(v); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return nil
		}
		return errors.Join(ErrInvalidConfig, err)
	}
	return nil
}

// MustLoad is Load that panics on error.
func MustLoad[T any](v *T, files ...string) {
	if err := Load(v, files...); err != nil {
		panic(err)
	}
}

func loadDotenv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}
