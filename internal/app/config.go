package app

import (
	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/pizza-pos/internal/domain/pricing"
)

// Config holds the complete application configuration, loadable from
// environment variables (POS_ prefix), flags, or YAML config files.
type Config struct {
	StorePath string `default:"pizza.json" usage:"Path to the store file" flag:"store"`
	Pricing   PricingConfig
}

// PricingConfig exposes the pricing constants. Defaults match the
// standard scheme: 5% loyalty discount above $100, $5 delivery, 10% GST.
type PricingConfig struct {
	DiscountThreshold float64 `default:"100"  usage:"Raw cost a loyalty order must exceed before the discount applies" flag:"discount-threshold"`
	DiscountRate      float64 `default:"0.05" usage:"Loyalty discount as a fraction of raw cost" flag:"discount-rate"`
	DeliveryFee       float64 `default:"5"    usage:"Flat home delivery fee" flag:"delivery-fee"`
	TaxRate           float64 `default:"0.1"  usage:"GST rate applied to the post-discount subtotal" flag:"tax-rate"`
}

// LoadConfig loads configuration from environment variables, flags, and
// YAML config files.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "POS",
		Files:     []string{"pos.yaml", "/etc/pizza-pos/pos.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	return &cfg, nil
}

// Params converts the configured constants to pricing parameters.
func (c PricingConfig) Params() pricing.Params {
	return pricing.Params{
		DiscountThreshold: decimal.NewFromFloat(c.DiscountThreshold),
		DiscountRate:      decimal.NewFromFloat(c.DiscountRate),
		DeliveryFee:       decimal.NewFromFloat(c.DeliveryFee),
		TaxRate:           decimal.NewFromFloat(c.TaxRate),
	}
}
