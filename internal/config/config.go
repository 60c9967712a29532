package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port         string        `mapstructure:"PORT"`
	ClinicAPIURL string        `mapstructure:"CLINIC_API_URL"`
	HTTPTimeout  time.Duration `mapstructure:"HTTP_TIMEOUT"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
	AppName   string `mapstructure:"APP_NAME"`

	SearchDebounce time.Duration `mapstructure:"SEARCH_DEBOUNCE"`
	PageSize       int           `mapstructure:"PAGE_SIZE"`
	RosterLimit    int           `mapstructure:"ROSTER_LIMIT"`
	ViewTTL        time.Duration `mapstructure:"VIEW_TTL"`
	FilterMode     string        `mapstructure:"FILTER_MODE"`

	ClinicTZ        string `mapstructure:"CLINIC_TZ"`
	DefaultDoctorID int    `mapstructure:"DEFAULT_DOCTOR_ID"`
	SessionPath     string `mapstructure:"SESSION_PATH"`

	DBDSN string `mapstructure:"DB_DSN"`

	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPass     string `mapstructure:"SMTP_PASS"`
	SMTPFromAddr string `mapstructure:"SMTP_FROM_ADDR"`
	SMTPFromName string `mapstructure:"SMTP_FROM_NAME"`
}

var keys = []string{
	"PORT", "CLINIC_API_URL", "HTTP_TIMEOUT",
	"LOG_LEVEL", "LOG_FORMAT", "APP_NAME",
	"SEARCH_DEBOUNCE", "PAGE_SIZE", "ROSTER_LIMIT", "VIEW_TTL", "FILTER_MODE",
	"CLINIC_TZ", "DEFAULT_DOCTOR_ID", "SESSION_PATH",
	"DB_DSN",
	"SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASS", "SMTP_FROM_ADDR", "SMTP_FROM_NAME",
}

// Load lee envFile (si existe) y luego el entorno. envFile vacío = ".env".
// Las variables ya definidas en el entorno ganan sobre el archivo.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("HTTP_TIMEOUT", "10s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("APP_NAME", "clinic-desk")
	v.SetDefault("SEARCH_DEBOUNCE", "400ms")
	v.SetDefault("PAGE_SIZE", 9)
	v.SetDefault("ROSTER_LIMIT", 10000)
	v.SetDefault("VIEW_TTL", "30m")
	v.SetDefault("FILTER_MODE", "record")
	v.SetDefault("DEFAULT_DOCTOR_ID", 1)
	v.SetDefault("SESSION_PATH", "/api/auth/me")
	v.SetDefault("SMTP_PORT", 25)

	// Unmarshal solo ve claves conocidas; sin BindEnv las que no tienen default se pierden
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ClinicAPIURL = strings.TrimRight(strings.TrimSpace(cfg.ClinicAPIURL), "/")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.PageSize <= 0 {
		return fmt.Errorf("PAGE_SIZE must be > 0")
	}
	if c.RosterLimit <= 0 {
		return fmt.Errorf("ROSTER_LIMIT must be > 0")
	}
	if c.SearchDebounce < 0 {
		return fmt.Errorf("SEARCH_DEBOUNCE must be >= 0")
	}
	switch c.FilterMode {
	case "record", "server":
	default:
		return fmt.Errorf("FILTER_MODE must be record or server, got %q", c.FilterMode)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location es la zona de la clínica; CLINIC_TZ vacío = zona local del proceso.
func (c *Config) Location() (*time.Location, error) {
	if strings.TrimSpace(c.ClinicTZ) == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.ClinicTZ)
	if err != nil {
		return nil, fmt.Errorf("CLINIC_TZ: %w", err)
	}
	return loc, nil
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

// DevBackend indica que no hay backend clínico y se usa el roster en memoria.
func (c *Config) DevBackend() bool {
	return c.ClinicAPIURL == ""
}

// Defaults es la configuración sin entorno (tests y herramientas).
func Defaults() *Config {
	return &Config{
		Port:            "8080",
		HTTPTimeout:     10 * time.Second,
		LogLevel:        "info",
		LogFormat:       "text",
		AppName:         "clinic-desk",
		SearchDebounce:  400 * time.Millisecond,
		PageSize:        9,
		RosterLimit:     10000,
		ViewTTL:         30 * time.Minute,
		FilterMode:      "record",
		DefaultDoctorID: 1,
		SessionPath:     "/api/auth/me",
		SMTPPort:        25,
	}
}
