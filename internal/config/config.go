// Package config loads service configuration from an optional YAML file,
// a .env file and FACTURADOR_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"facturador/internal/core/types"
	"facturador/internal/domain/invoice"
	"facturador/internal/infrastructure/pdf"
)

// EnvPrefix prefixes every environment override, e.g. FACTURADOR_APP_PORT.
const EnvPrefix = "FACTURADOR"

// Config is the full service configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Log       LogConfig       `mapstructure:"log"`
	Invoicing InvoicingConfig `mapstructure:"invoicing"`
	Issuer    IssuerConfig    `mapstructure:"issuer"`
	Document  DocumentConfig  `mapstructure:"document"`
}

type AppConfig struct {
	Name            string        `mapstructure:"name" validate:"required"`
	Env             string        `mapstructure:"env" validate:"required"`
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level       string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Development bool   `mapstructure:"development"`
}

// InvoicingConfig drives the issuance engine.
type InvoicingConfig struct {
	PointsOfSale []int         `mapstructure:"points_of_sale" validate:"required,min=1,dive,min=1,max=99999"`
	TaxRate      string        `mapstructure:"tax_rate" validate:"required"`
	AuthValidity time.Duration `mapstructure:"auth_validity"`
	TypeBMode    string        `mapstructure:"type_b_mode" validate:"omitempty,oneof=legacy inclusive"`

	// IdempotencyTTL bounds how long X-Idempotency-Key responses are replayed
	IdempotencyTTL time.Duration `mapstructure:"idempotency_ttl"`
}

// IssuerConfig is the letterhead printed on documents.
type IssuerConfig struct {
	Name         string `mapstructure:"name" validate:"required"`
	TaxID        string `mapstructure:"tax_id" validate:"required"`
	Address      string `mapstructure:"address"`
	Phone        string `mapstructure:"phone"`
	TaxCondition string `mapstructure:"tax_condition"`
}

type DocumentConfig struct {
	Layout   string        `mapstructure:"layout" validate:"oneof=canvas grid"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// Load reads configuration. path may name a YAML file; when empty,
// facturador.yaml is looked up in the working directory and ./config.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("facturador")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) || path != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	head := pdf.DefaultLetterhead()

	v.SetDefault("app.name", "facturador")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.shutdown_timeout", 30*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)

	v.SetDefault("invoicing.points_of_sale", invoice.DefaultPointsOfSale())
	v.SetDefault("invoicing.tax_rate", invoice.DefaultTaxRate.String())
	v.SetDefault("invoicing.auth_validity", invoice.DefaultAuthValidity)
	v.SetDefault("invoicing.type_b_mode", string(invoice.TypeBLegacy))
	v.SetDefault("invoicing.idempotency_ttl", 24*time.Hour)

	v.SetDefault("issuer.name", head.Name)
	v.SetDefault("issuer.tax_id", head.TaxID)
	v.SetDefault("issuer.address", head.Address)
	v.SetDefault("issuer.phone", head.Phone)
	v.SetDefault("issuer.tax_condition", head.TaxCondition)

	v.SetDefault("document.layout", pdf.LayoutCanvas)
	v.SetDefault("document.cache_ttl", 30*time.Minute)
}

// Validate checks struct tags and cross-field rules.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := c.Invoicing.Rate(); err != nil {
		return err
	}
	if _, err := invoice.NewPointOfSaleRegistry(c.Invoicing.PointsOfSale); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Rate parses the configured tax rate; it must lie in (0, 1).
func (c InvoicingConfig) Rate() (types.Money, error) {
	rate, err := types.NewMoneyFromString(c.TaxRate)
	if err != nil {
		return types.Zero(), fmt.Errorf("invalid config: tax rate %q: %w", c.TaxRate, err)
	}
	if !rate.IsPositive() || rate.GreaterThanOrEqual(types.MustMoney("1")) {
		return types.Zero(), fmt.Errorf("invalid config: tax rate %s out of range (0, 1)", rate)
	}
	return rate, nil
}

// Letterhead converts the issuer section for the document renderers.
func (c IssuerConfig) Letterhead() pdf.Letterhead {
	return pdf.Letterhead{
		Name:         c.Name,
		TaxID:        c.TaxID,
		Address:      c.Address,
		Phone:        c.Phone,
		TaxCondition: c.TaxCondition,
	}
}

// IsDevelopment reports whether the service runs in development mode.
func (c AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// Addr is the HTTP listen address.
func (c AppConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
