package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"recon-insights/internal/amount"
	"recon-insights/internal/domain"
)

// Config holds application configuration.
type Config struct {
	Input  InputConfig         `mapstructure:"input"`
	Output OutputConfig        `mapstructure:"output"`
	Query  QueryConfig         `mapstructure:"query"`
	Locale amount.LocaleConfig `mapstructure:"locale"`
	Server ServerConfig        `mapstructure:"server"`
}

// InputConfig points at the exported snapshot files.
type InputConfig struct {
	Dir string `mapstructure:"dir"`
}

// OutputConfig is where CSV reports are written.
type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

// QueryConfig is the default dashboard request.
type QueryConfig struct {
	Platforms []string `mapstructure:"platforms"`
	DateField string   `mapstructure:"date_field"`
	Start     string   `mapstructure:"start"`
	End       string   `mapstructure:"end"`
	ActiveTab string   `mapstructure:"active_tab"`
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// Load reads configuration from file and env. Env var overrides use prefix RECON_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	locale := amount.DefaultLocale()
	v.SetDefault("input.dir", "testdata")
	v.SetDefault("output.dir", "reports")
	v.SetDefault("query.platforms", []string{string(domain.PlatformD2C)})
	v.SetDefault("query.date_field", string(domain.DateFieldSettlement))
	v.SetDefault("query.start", "")
	v.SetDefault("query.end", "")
	v.SetDefault("query.active_tab", "overview")
	v.SetDefault("locale.language", locale.Language)
	v.SetDefault("locale.currency_symbol", locale.CurrencySymbol)
	v.SetDefault("locale.decimals", locale.Decimals)
	v.SetDefault("server.addr", ":8080")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("RECON_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("recon")
	}

	v.SetEnvPrefix("RECON")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	if err := v.ReadInConfig(); err != nil && cfgPath != "" {
		return Config{}, fmt.Errorf("read config %s: %w", cfgPath, err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Validate checks the configuration without building a request.
func (c Config) Validate() error {
	_, err := c.Request(time.Time{})
	return err
}

// Request turns the query section into a dashboard request stamped with
// generatedAt. Dates use the YYYY-MM-DD layout and may be left empty.
func (c Config) Request(generatedAt time.Time) (domain.DashboardRequest, error) {
	req := domain.DashboardRequest{ActiveTab: c.Query.ActiveTab, GeneratedAt: generatedAt}

	if len(c.Query.Platforms) == 0 {
		return req, fmt.Errorf("query.platforms: at least one platform is required")
	}
	for _, name := range c.Query.Platforms {
		p, err := domain.ParsePlatform(name)
		if err != nil {
			return req, fmt.Errorf("query.platforms: %w", err)
		}
		req.Platforms = append(req.Platforms, p)
	}

	field, err := domain.ParseDateField(c.Query.DateField)
	if err != nil {
		return req, fmt.Errorf("query.date_field: %w", err)
	}
	req.DateField = field

	if req.Start, err = parseDate(c.Query.Start); err != nil {
		return req, fmt.Errorf("query.start: %w", err)
	}
	if req.End, err = parseDate(c.Query.End); err != nil {
		return req, fmt.Errorf("query.end: %w", err)
	}
	if !req.Start.IsZero() && !req.End.IsZero() && req.End.Before(req.Start) {
		return req, fmt.Errorf("query.end %s is before query.start %s", c.Query.End, c.Query.Start)
	}
	return req, nil
}

func parseDate(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.DateOnly, strings.TrimSpace(s))
}
