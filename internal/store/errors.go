package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/feral-file/ff-crm/internal/domain"
)

// ConstraintError carries the database constraint behind a typed error
type ConstraintError struct {
	// Kind is the domain sentinel the failure maps to
	Kind       error
	Constraint string
	Table      string
	Code       string
	// Err is the original, possibly wrapped, driver error
	Err error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *ConstraintError) Unwrap() error {
	return e.Kind
}

// constraintKinds overrides the SQLSTATE mapping for constraints with a
// dedicated sentinel
var constraintKinds = map[string]error{
	"posted_entry_immutable": domain.ErrImmutable,
	"balanced_entry":         domain.ErrUnbalancedEntry,
	"no_self_delegation":     domain.ErrSelfDelegation,
}

// translateError maps Postgres errors onto domain sentinels, keeping the
// constraint name. Errors that are not from Postgres pass through unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	kind, ok := constraintKinds[pgErr.ConstraintName]
	if !ok {
		switch pgErr.Code {
		case "23505":
			kind = domain.ErrDuplicate
		case "23502", "23503", "23514", "23P01":
			kind = domain.ErrConstraintViolation
		case "40001":
			kind = domain.ErrVersionConflict
		case "42501":
			kind = domain.ErrPermissionDenied
		case "22023", "22P02", "22007", "22008":
			kind = domain.ErrInvalidInput
		default:
			return err
		}
	}

	return &ConstraintError{
		Kind:       kind,
		Constraint: pgErr.ConstraintName,
		Table:      pgErr.TableName,
		Code:       pgErr.Code,
		Err:        err,
	}
}

// ConstraintName returns the database constraint behind err, if any
func ConstraintName(err error) string {
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return ce.Constraint
	}
	return ""
}
