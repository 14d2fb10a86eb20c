package domain

import "errors"

var (
	// ErrNotFound is returned when a row does not exist or is not visible to the actor
	ErrNotFound = errors.New("not found")

	// ErrVersionConflict is returned when an update carries a stale row version
	ErrVersionConflict = errors.New("version conflict")

	// ErrDuplicate is returned when a write violates a uniqueness constraint among live rows
	ErrDuplicate = errors.New("duplicate")

	// ErrConstraintViolation is returned when a write violates a CHECK, NOT NULL or reference constraint
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrPermissionDenied is returned when row level security or an authorization check rejects the operation
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvalidInput is returned when arguments fail validation before reaching the database
	ErrInvalidInput = errors.New("invalid input")

	// ErrSelfDelegation is returned when a user tries to delegate a role to themselves
	ErrSelfDelegation = errors.New("cannot delegate to self")

	// ErrDependencyCycle is returned when a task dependency would close a cycle
	ErrDependencyCycle = errors.New("dependency cycle")

	// ErrUnbalancedEntry is returned when a journal entry's debits and credits differ
	ErrUnbalancedEntry = errors.New("unbalanced journal entry")

	// ErrInsufficientStock is returned when an inventory movement would drive stock negative
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrImmutable is returned when modifying a posted or voided record
	ErrImmutable = errors.New("record is immutable")
)
