// Package health answers readiness for the payroll service. The service is
// ready only when the database responds and the tax configuration row that
// every payroll computation reads is present.
package health

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

const checkTimeout = 2 * time.Second

// DB is the slice of the connection pool the checks need.
type DB interface {
	Ping(ctx context.Context) error
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type HealthChecker struct {
	db DB
}

type HealthStatus struct {
	Status    string         `json:"status"`
	Database  DatabaseHealth `json:"database"`
	TaxConfig string         `json:"tax_config"`
}

type DatabaseHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

func NewHealthChecker(db DB) *HealthChecker {
	return &HealthChecker{db: db}
}

func (h *HealthChecker) Check(ctx context.Context) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	dbHealth := h.checkDatabase(ctx)

	taxConfig := "skipped"
	if dbHealth.Status == "healthy" {
		taxConfig = h.checkTaxConfig(ctx)
	}

	status := "healthy"
	if dbHealth.Status != "healthy" || taxConfig != "present" {
		status = "unhealthy"
	}

	return HealthStatus{
		Status:    status,
		Database:  dbHealth,
		TaxConfig: taxConfig,
	}
}

func (h *HealthChecker) checkDatabase(ctx context.Context) DatabaseHealth {
	start := time.Now()
	err := h.db.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return DatabaseHealth{
			Status:       "unhealthy",
			ResponseTime: responseTime,
		}
	}

	return DatabaseHealth{
		Status:       "healthy",
		ResponseTime: responseTime,
	}
}

// checkTaxConfig verifies the single settings row exists. The seed migration
// creates it, so a missing row also means the schema never migrated.
func (h *HealthChecker) checkTaxConfig(ctx context.Context) string {
	var n int
	err := h.db.QueryRow(ctx, `SELECT COUNT(*) FROM settings WHERE id=1`).Scan(&n)
	if err != nil {
		return "unreachable"
	}
	if n == 0 {
		return "missing"
	}
	return "present"
}
