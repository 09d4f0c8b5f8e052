package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
)

// SQLSTATE relevantes para a transação de agendamento.
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
	pgQueryCanceled        = "57014"
	pgExclusionViolation   = "23P01"
)

func classifyTxError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgSerializationFailure, pgDeadlockDetected:
			return fmt.Errorf("%w: %w", domain.ErrTransient, err)
		case pgLockNotAvailable, pgQueryCanceled:
			return fmt.Errorf("%w: %w", domain.ErrLockTimeout, err)
		case pgExclusionViolation:
			return fmt.Errorf("%w: %w", domain.ErrOverlapConstraint, err)
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", domain.ErrLockTimeout, err)
	}

	return err
}
