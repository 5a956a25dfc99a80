package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Config is read from POS_* environment variables.
type Config struct {
	APIBaseURL     string        `envconfig:"API_BASE_URL" default:"http://localhost:8080"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"10s"`
	TaxRate        string        `envconfig:"TAX_RATE" default:"0.13"`
	ListenAddr     string        `envconfig:"LISTEN_ADDR" default:":8080"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`
}

func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process("pos", &c); err != nil {
		return nil, errors.Wrap(err, "read environment")
	}
	if _, err := c.ParseTaxRate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) ParseTaxRate() (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(c.TaxRate)
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "invalid tax rate %q", c.TaxRate)
	}
	if rate.IsNegative() {
		return decimal.Zero, errors.Errorf("invalid tax rate %q: must not be negative", c.TaxRate)
	}
	return rate, nil
}
