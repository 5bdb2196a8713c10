// Package config holds the user settings of gm and persists them in SQLite.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Setting keys, shared by the settings table and `gm config`.
const (
	KeyTestnetMode   = "testnet_mode"
	KeyCurrency      = "currency"
	KeyTheme         = "theme"
	KeyAlchemyAPIKey = "alchemy_api_key"
)

const (
	DefaultCurrency = "USD"
	DefaultTheme    = "dark"
)

var (
	// ErrUnknownKey is returned for a setting name gm does not know.
	ErrUnknownKey = errors.New("unknown setting")
	// ErrInvalidValue is returned when a setting value fails validation.
	ErrInvalidValue = errors.New("invalid setting value")
)

// Currencies lists the fiat currencies prices can be shown in.
var Currencies = []string{"USD", "EUR", "GBP", "INR", "JPY", "CHF", "CAD", "AUD"}

// Themes lists the theme names the interface can draw with.
var Themes = []string{"dark", "light"}

// Config is the persisted user configuration.
type Config struct {
	TestnetMode   bool   `yaml:"testnet_mode"`
	Currency      string `yaml:"currency"`
	Theme         string `yaml:"theme"`
	AlchemyAPIKey string `yaml:"alchemy_api_key"`
}

// Default returns the configuration used before anything was saved.
func Default() Config {
	return Config{Currency: DefaultCurrency, Theme: DefaultTheme}
}

// Keys lists every setting name in display order.
func Keys() []string {
	return []string{KeyTestnetMode, KeyCurrency, KeyTheme, KeyAlchemyAPIKey}
}

// Validate checks every field.
func (c Config) Validate() error {
	if !slices.Contains(Currencies, c.Currency) {
		return fmt.Errorf("%w: currency %q is not one of %s", ErrInvalidValue, c.Currency, strings.Join(Currencies, ", "))
	}
	if !slices.Contains(Themes, c.Theme) {
		return fmt.Errorf("%w: theme %q is not one of %s", ErrInvalidValue, c.Theme, strings.Join(Themes, ", "))
	}

	return nil
}

// HasAlchemyKey reports whether an asset API key is configured.
func (c Config) HasAlchemyKey() bool {
	return strings.TrimSpace(c.AlchemyAPIKey) != ""
}

// Get returns the textual value of one setting.
func (c Config) Get(key string) (string, error) {
	switch key {
	case KeyTestnetMode:
		return strconv.FormatBool(c.TestnetMode), nil
	case KeyCurrency:
		return c.Currency, nil
	case KeyTheme:
		return c.Theme, nil
	case KeyAlchemyAPIKey:
		return c.AlchemyAPIKey, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set parses value into one setting. The result is validated.
func (c *Config) Set(key, value string) error {
	next := *c

	switch key {
	case KeyTestnetMode:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", ErrInvalidValue, key)
		}
		next.TestnetMode = b
	case KeyCurrency:
		next.Currency = strings.ToUpper(strings.TrimSpace(value))
	case KeyTheme:
		next.Theme = strings.ToLower(strings.TrimSpace(value))
	case KeyAlchemyAPIKey:
		next.AlchemyAPIKey = strings.TrimSpace(value)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	if err := next.Validate(); err != nil {
		return err
	}
	*c = next

	return nil
}

// Redacted masks secrets for display.
func (c Config) Redacted() Config {
	if c.HasAlchemyKey() {
		key := c.AlchemyAPIKey
		if len(key) > 4 {
			key = strings.Repeat("*", len(key)-4) + key[len(key)-4:]
		} else {
			key = strings.Repeat("*", len(key))
		}
		c.AlchemyAPIKey = key
	}

	return c
}
