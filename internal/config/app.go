package config

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"max.ks1230/expense-bot/internal/entity/category"
)

const (
	defaultDailyLimit     = 60
	defaultCurrencySymbol = "$"
	defaultTimezone       = "Local"

	// Telegram rejects inline buttons whose callback data exceeds 64 bytes.
	maxCallbackBytes = 64
)

type AppConfig struct {
	DailyLimitValue float64  `yaml:"daily-limit"`
	CategoryNames   []string `yaml:"categories"`
	TimezoneName    string   `yaml:"timezone"`
	Enforce         *bool    `yaml:"enforce-limit"`
	Symbol          string   `yaml:"currency-symbol"`

	location *time.Location
}

func (s *AppConfig) setDefaults() {
	if s.DailyLimitValue == 0 {
		s.DailyLimitValue = defaultDailyLimit
	}
	if len(s.CategoryNames) == 0 {
		s.CategoryNames = append([]string(nil), category.Defaults...)
	}
	if s.TimezoneName == "" {
		s.TimezoneName = defaultTimezone
	}
	if s.Symbol == "" {
		s.Symbol = defaultCurrencySymbol
	}
}

func (s *AppConfig) validate() error {
	if s.DailyLimitValue <= 0 {
		return fmt.Errorf("daily-limit must be positive, got %v", s.DailyLimitValue)
	}
	seen := make(map[string]struct{}, len(s.CategoryNames))
	for _, name := range s.CategoryNames {
		if name == "" {
			return errors.New("empty category name")
		}
		if len(category.CallbackPrefix)+len(name) > maxCallbackBytes {
			return fmt.Errorf("category %q is longer than %d bytes", name, maxCallbackBytes-len(category.CallbackPrefix))
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("duplicate category %q", name)
		}
		seen[name] = struct{}{}
	}
	loc, err := time.LoadLocation(s.TimezoneName)
	if err != nil {
		return errors.Wrap(err, "loading timezone")
	}
	s.location = loc
	return nil
}

func (s *AppConfig) DailyLimit() decimal.Decimal {
	return decimal.NewFromFloat(s.DailyLimitValue)
}

func (s *AppConfig) Categories() []string {
	return s.CategoryNames
}

func (s *AppConfig) Location() *time.Location {
	if s.location == nil {
		return time.Local
	}
	return s.location
}

// EnforceLimit is true unless the config explicitly turns the check off.
func (s *AppConfig) EnforceLimit() bool {
	return s.Enforce == nil || *s.Enforce
}

func (s *AppConfig) CurrencySymbol() string {
	return s.Symbol
}
