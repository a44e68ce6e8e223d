package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxConfig is the process-wide payroll configuration, stored as a single
// row and read at the moment of each calculation. Mid-batch edits are
// visible to later rows; that is accepted behavior, not a bug to fix here.
type TaxConfig struct {
	TaxRate        decimal.Decimal `json:"tax_rate"`    // percent
	SocialRate     decimal.Decimal `json:"social_rate"` // percent, stored but not applied by the engine
	CurrencySymbol string          `json:"currency_symbol"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// UpdateSettingsRequest is the request body for the settings update.
type UpdateSettingsRequest struct {
	TaxRate        string `json:"tax_rate"`
	SocialRate     string `json:"social_rate"`
	CurrencySymbol string `json:"currency_symbol"`
}
