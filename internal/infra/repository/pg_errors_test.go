package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
)

func TestClassifyTxError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"serialization", &pgconn.PgError{Code: "40001"}, domain.ErrTransient},
		{"deadlock", fmt.Errorf("commit: %w", &pgconn.PgError{Code: "40P01"}), domain.ErrTransient},
		{"lock timeout", &pgconn.PgError{Code: "55P03"}, domain.ErrLockTimeout},
		{"statement timeout", &pgconn.PgError{Code: "57014"}, domain.ErrLockTimeout},
		{"context deadline", context.DeadlineExceeded, domain.ErrLockTimeout},
		{"exclusion", &pgconn.PgError{Code: "23P01"}, domain.ErrOverlapConstraint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, classifyTxError(tt.err), tt.want)
		})
	}

	plain := errors.New("connection refused")
	assert.Equal(t, plain, classifyTxError(plain))
	assert.NoError(t, classifyTxError(nil))
}
