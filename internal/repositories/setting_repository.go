package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"payroll-backend/internal/apperror"
	"payroll-backend/internal/models"
)

// SettingRepository reads and updates the single payroll configuration row.
type SettingRepository struct {
	DB *pgxpool.Pool
}

func NewSettingRepository(db *pgxpool.Pool) *SettingRepository {
	return &SettingRepository{DB: db}
}

// Get reads the configuration row. The migration seeds it, so a missing
// row means the schema was never initialized.
func (r *SettingRepository) Get(ctx context.Context) (*models.TaxConfig, error) {
	var cfg models.TaxConfig
	err := r.DB.QueryRow(ctx,
		`SELECT tax_rate, social_rate, currency_symbol, updated_at FROM settings WHERE id=1`).
		Scan(&cfg.TaxRate, &cfg.SocialRate, &cfg.CurrencySymbol, &cfg.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NotFound("settings", 1)
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Update overwrites the configuration row. Later payroll calculations see
// the new rates immediately.
func (r *SettingRepository) Update(ctx context.Context, cfg *models.TaxConfig) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE settings SET tax_rate=$1, social_rate=$2, currency_symbol=$3,
		        updated_at=CURRENT_TIMESTAMP
		 WHERE id=1`,
		cfg.TaxRate, cfg.SocialRate, cfg.CurrencySymbol)
	if err != nil {
		return apperror.Transaction("update settings", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("settings", 1)
	}
	return nil
}
