package services

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"payroll-backend/internal/apperror"
	"payroll-backend/internal/logger"
	"payroll-backend/internal/models"
	"payroll-backend/internal/validation"
)

// SettingService manages the payroll rates and currency symbol.
type SettingService struct {
	settings SettingStore
}

func NewSettingService(settings SettingStore) *SettingService {
	return &SettingService{settings: settings}
}

func (s *SettingService) Get(ctx context.Context) (*models.TaxConfig, error) {
	return s.settings.Get(ctx)
}

// Update validates and applies new rates. Payroll rows generated after this
// call use the new tax rate immediately.
func (s *SettingService) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.TaxConfig, error) {
	var violations []apperror.FieldViolation
	for _, check := range []error{
		validation.Rate("tax_rate", req.TaxRate),
		validation.Rate("social_rate", req.SocialRate),
		validation.Required("currency_symbol", req.CurrencySymbol),
	} {
		if check != nil {
			violations = append(violations, apperror.FieldViolation{
				Field:  apperror.FieldOf(check),
				Reason: check.Error(),
			})
		}
	}
	if len(violations) > 0 {
		return nil, apperror.ValidationReport(violations)
	}

	taxRate, _ := decimal.NewFromString(req.TaxRate)
	socialRate, _ := decimal.NewFromString(req.SocialRate)

	cfg := &models.TaxConfig{
		TaxRate:        taxRate,
		SocialRate:     socialRate,
		CurrencySymbol: req.CurrencySymbol,
	}
	if err := s.settings.Update(ctx, cfg); err != nil {
		return nil, err
	}

	logger.L.Info("payroll settings updated",
		zap.String("tax_rate", taxRate.String()),
		zap.String("social_rate", socialRate.String()))
	return s.settings.Get(ctx)
}
