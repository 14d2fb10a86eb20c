package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	gormschema "gorm.io/gorm/schema"

	"github.com/feral-file/ff-crm/internal/domain"
	"github.com/feral-file/ff-crm/internal/store/schema"
)

// managedColumns are maintained by the database and never accepted from callers
var managedColumns = map[string]bool{
	"id":            true,
	"version":       true,
	"created_at":    true,
	"created_by":    true,
	"updated_at":    true,
	"updated_by":    true,
	"deleted_at":    true,
	"deleted_by":    true,
	"search_vector": true,
}

// ListOptions narrows Repository.List
type ListOptions struct {
	// Filters are column = value conditions; a slice value becomes IN
	Filters map[string]any
	// OrderBy is a column name, optionally followed by ASC or DESC
	OrderBy string
	// IncludeDeleted also returns soft-deleted rows
	IncludeDeleted bool
	Pagination
}

// Repository provides the standard record operations for one table
type Repository[T any, P interface {
	*T
	schema.Record
}] struct {
	store *pgStore
}

// NewRepository creates a repository for T backed by db
func NewRepository[T any, P interface {
	*T
	schema.Record
}](db *gorm.DB, opts ...Option) *Repository[T, P] {
	s := NewPGStore(db, opts...).(*pgStore)
	return &Repository[T, P]{store: s}
}

// Create inserts row and reads the database-filled columns back into it
func (r *Repository[T, P]) Create(ctx context.Context, row P) error {
	row.GetBase().CreatedBy = actorRef(ctx)
	err := r.store.write(ctx, func(tx *gorm.DB) error {
		return create(tx, row)
	})
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", row.TableName(), err)
	}
	return nil
}

// Get retrieves a live row by id, returning nil when it does not exist or is not visible
func (r *Repository[T, P]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	var row *T
	err := r.store.read(ctx, func(tx *gorm.DB) error {
		var err error
		row, err = getLive[T](tx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", tableOf(new(T)), err)
	}
	return row, nil
}

// List returns the rows matching opts, newest first unless OrderBy is set
func (r *Repository[T, P]) List(ctx context.Context, opts ListOptions) ([]T, error) {
	var rows []T
	err := r.store.read(ctx, func(tx *gorm.DB) error {
		s, err := parseSchema(tx, new(T))
		if err != nil {
			return err
		}

		q := opts.Pagination.apply(tx.Model(new(T)))
		if !opts.IncludeDeleted {
			q = live(q)
		}
		for column, value := range opts.Filters {
			if lookupColumn(s, column) == nil {
				return fmt.Errorf("%w: unknown column %q", domain.ErrInvalidInput, column)
			}
			q = q.Where(fmt.Sprintf("%q IN ?", column), asSlice(value))
		}

		order := "created_at DESC"
		if opts.OrderBy != "" {
			order, err = orderClause(s, opts.OrderBy)
			if err != nil {
				return err
			}
		}
		return q.Order(order).Find(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", tableOf(new(T)), err)
	}
	return rows, nil
}

// Update applies fields to the live row id when its version still equals
// version, returning the updated row
func (r *Repository[T, P]) Update(ctx context.Context, id uuid.UUID, version int, fields map[string]any) (*T, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: nothing to update", domain.ErrInvalidInput)
	}

	var row T
	err := r.store.write(ctx, func(tx *gorm.DB) error {
		s, err := parseSchema(tx, new(T))
		if err != nil {
			return err
		}

		columns := make(map[string]any, len(fields))
		for column, value := range fields {
			field := lookupColumn(s, column)
			if field == nil || managedColumns[column] || !field.Updatable {
				return fmt.Errorf("%w: column %q cannot be updated", domain.ErrInvalidInput, column)
			}
			columns[field.DBName] = value
		}
		return updateVersioned(tx, &row, id, version, columns)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", tableOf(new(T)), err)
	}
	return &row, nil
}

// SoftDelete marks the live row id as deleted
func (r *Repository[T, P]) SoftDelete(ctx context.Context, id uuid.UUID) error {
	err := r.store.write(ctx, func(tx *gorm.DB) error {
		return softDelete(ctx, tx, new(T), id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", tableOf(new(T)), err)
	}
	return nil
}

// Restore clears the deletion mark of row id
func (r *Repository[T, P]) Restore(ctx context.Context, id uuid.UUID) error {
	err := r.store.write(ctx, func(tx *gorm.DB) error {
		return restore(tx, new(T), id)
	})
	if err != nil {
		return fmt.Errorf("failed to restore %s: %w", tableOf(new(T)), err)
	}
	return nil
}

func parseSchema(tx *gorm.DB, model any) (*gormschema.Schema, error) {
	stmt := &gorm.Statement{DB: tx}
	if err := stmt.Parse(model); err != nil {
		return nil, fmt.Errorf("failed to parse model: %w", err)
	}
	return stmt.Schema, nil
}

func lookupColumn(s *gormschema.Schema, column string) *gormschema.Field {
	field := s.LookUpField(column)
	if field == nil || field.DBName == "" || field.DBName != column {
		return nil
	}
	return field
}

func orderClause(s *gormschema.Schema, orderBy string) (string, error) {
	column, direction, _ := strings.Cut(strings.TrimSpace(orderBy), " ")
	direction = strings.ToUpper(strings.TrimSpace(direction))
	if direction == "" {
		direction = "ASC"
	}
	if direction != "ASC" && direction != "DESC" {
		return "", fmt.Errorf("%w: invalid sort direction %q", domain.ErrInvalidInput, direction)
	}
	if lookupColumn(s, column) == nil {
		return "", fmt.Errorf("%w: unknown column %q", domain.ErrInvalidInput, column)
	}
	return fmt.Sprintf("%q %s", column, direction), nil
}

func asSlice(value any) any {
	switch v := value.(type) {
	case []any, []string, []uuid.UUID, []int:
		return v
	default:
		return []any{v}
	}
}

// getRecord is Repository.Get for callers that hold a pgStore
func getRecord[T any](ctx context.Context, s *pgStore, id uuid.UUID) (*T, error) {
	var row *T
	err := s.read(ctx, func(tx *gorm.DB) error {
		var err error
		row, err = getLive[T](tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}
