package health

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

type fakeRow struct {
	n   int
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*int)) = r.n
	return nil
}

type fakeDB struct {
	pingErr  error
	queryErr error
	rows     int
}

func (f *fakeDB) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return fakeRow{n: f.rows, err: f.queryErr}
}

func TestCheckReadyWhenConfigured(t *testing.T) {
	checker := NewHealthChecker(&fakeDB{rows: 1})

	status := checker.Check(context.Background())

	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "healthy", status.Database.Status)
	assert.Equal(t, "present", status.TaxConfig)
}

func TestCheckNotReadyWithoutTaxConfig(t *testing.T) {
	checker := NewHealthChecker(&fakeDB{rows: 0})

	status := checker.Check(context.Background())

	assert.Equal(t, "unhealthy", status.Status)
	assert.Equal(t, "healthy", status.Database.Status)
	assert.Equal(t, "missing", status.TaxConfig)
}

func TestCheckNotReadyWhenDatabaseDown(t *testing.T) {
	checker := NewHealthChecker(&fakeDB{pingErr: errors.New("dial refused")})

	status := checker.Check(context.Background())

	assert.Equal(t, "unhealthy", status.Status)
	assert.Equal(t, "unhealthy", status.Database.Status)
	assert.Equal(t, "skipped", status.TaxConfig)
}

func TestCheckReportsUnreachableConfig(t *testing.T) {
	checker := NewHealthChecker(&fakeDB{queryErr: errors.New("conn closed")})

	status := checker.Check(context.Background())

	assert.Equal(t, "unhealthy", status.Status)
	assert.Equal(t, "unreachable", status.TaxConfig)
}
