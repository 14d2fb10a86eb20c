package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"

	"github.com/feral-file/ff-crm/internal/domain"
)

// DefaultSessionRole is the database role actor-scoped sessions switch to
const DefaultSessionRole = "authenticated"

var roleNamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]{0,62}$`)

type pgStore struct {
	db          *gorm.DB
	sessionRole string
}

// Option configures a pgStore
type Option func(*pgStore)

// WithSessionRole overrides the role assumed by actor-scoped sessions
func WithSessionRole(role string) Option {
	return func(s *pgStore) {
		if roleNamePattern.MatchString(role) {
			s.sessionRole = role
		}
	}
}

func hasDBResolver(db *gorm.DB) bool {
	return db != nil && db.Callback().Query().Get("gorm:db_resolver") != nil
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB, opts ...Option) Store {
	s := &pgStore{db: db, sessionRole: DefaultSessionRole}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterReadReplicas routes actor-less reads to the given replicas. Writes
// and every actor-scoped session stay on the primary.
func RegisterReadReplicas(db *gorm.DB, replicas ...gorm.Dialector) error {
	if len(replicas) == 0 {
		return nil
	}

	err := db.Use(dbresolver.Register(dbresolver.Config{
		Replicas: replicas,
		Policy:   dbresolver.RandomPolicy{},
	}))
	if err != nil {
		return fmt.Errorf("failed to register read replicas: %w", err)
	}

	return nil
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
// If any of the pool settings are 0 or empty, reasonable defaults are used:
//   - MaxOpenConns: 20 (if 0)
//   - MaxIdleConns: 5 (if 0)
//   - ConnMaxLifetime: 5 minutes (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// calculateSafeBatchSize computes the batch size for bulk inserts that stays
// under PostgreSQL's 65535 bind parameter limit, keeping a fixed headroom for
// GORM-added columns and conflict clauses.
func calculateSafeBatchSize(totalRecords int, fieldsPerRecord int) int {
	const maxParams = 65535
	const totalHeadroom = 1000

	availableParams := maxParams - totalHeadroom
	safeBatchSize := max(availableParams/fieldsPerRecord, 1)

	if safeBatchSize > totalRecords {
		return totalRecords
	}

	return safeBatchSize
}

// write runs fn in a transaction. When ctx carries an actor the transaction
// assumes the session role with the actor's JWT claims so row level security
// applies; otherwise it runs with the connection's own privileges.
func (s *pgStore) write(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return translateError(withSession(ctx, s.db, s.sessionRole, fn))
}

// read runs fn like write, except that actor-less reads skip the transaction
// so they can be served by a replica. A replica miss is retried on the
// primary since replicas may lag.
func (s *pgStore) read(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if _, ok := domain.ActorFromContext(ctx); ok {
		return s.write(ctx, fn)
	}

	err := fn(s.db.WithContext(ctx))
	if errors.Is(err, gorm.ErrRecordNotFound) && hasDBResolver(s.db) {
		err = fn(s.db.WithContext(ctx).Clauses(dbresolver.Write))
	}
	return translateError(err)
}

func withSession(ctx context.Context, db *gorm.DB, role string, fn func(tx *gorm.DB) error) error {
	actor, scoped := domain.ActorFromContext(ctx)

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if !scoped {
			return fn(tx)
		}

		claims, err := json.Marshal(map[string]string{
			"sub":   actor.UserID.String(),
			"email": actor.Email,
			"role":  role,
		})
		if err != nil {
			return fmt.Errorf("failed to encode session claims: %w", err)
		}

		err = tx.Exec("SELECT set_config('request.jwt.claim.sub', ?, true), set_config('request.jwt.claims', ?, true)",
			actor.UserID.String(), string(claims)).Error
		if err != nil {
			return fmt.Errorf("failed to set session claims: %w", err)
		}
		if err := tx.Exec(`SET LOCAL ROLE "` + role + `"`).Error; err != nil {
			return fmt.Errorf("failed to assume session role: %w", err)
		}

		if err := fn(tx); err != nil {
			return err
		}

		// Nested transactions are savepoints; restore the enclosing identity
		if err := tx.Exec("RESET ROLE").Error; err != nil {
			return fmt.Errorf("failed to reset session role: %w", err)
		}
		return tx.Exec("SELECT set_config('request.jwt.claim.sub', '', true), set_config('request.jwt.claims', '', true)").Error
	})
}

// actorRef returns the actor id for created_by style columns, nil in service mode
func actorRef(ctx context.Context) *uuid.UUID {
	if actor, ok := domain.ActorFromContext(ctx); ok {
		id := actor.UserID
		return &id
	}
	return nil
}

// live restricts a query to rows that are not soft-deleted
func live(tx *gorm.DB) *gorm.DB {
	return tx.Where("deleted_at IS NULL")
}

// getLive loads a live row by id, returning nil when it does not exist or is not visible
func getLive[T any](tx *gorm.DB, id uuid.UUID) (*T, error) {
	var row T
	err := live(tx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// mustGetLive is getLive for callers that require the row
func mustGetLive[T any](tx *gorm.DB, id uuid.UUID) (*T, error) {
	row, err := getLive[T](tx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		var zero T
		return nil, fmt.Errorf("%s %s: %w", tableOf(&zero), id, domain.ErrNotFound)
	}
	return row, nil
}

// lockLive is mustGetLive with a row lock held until the transaction ends
func lockLive[T any](tx *gorm.DB, id uuid.UUID) (*T, error) {
	return mustGetLive[T](tx.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func tableOf(v any) string {
	if t, ok := v.(interface{ TableName() string }); ok {
		return t.TableName()
	}
	return "row"
}

// create inserts row and reads generated columns back
func create(tx *gorm.DB, row any) error {
	return tx.Clauses(clause.Returning{}).Create(row).Error
}

// updateVersioned applies fields to the live row id, sending the caller's
// version so enforce_row_version rejects stale writes. The updated row,
// including generated columns, is scanned into dest.
func updateVersioned(tx *gorm.DB, dest any, id uuid.UUID, version int, fields map[string]any) error {
	if version <= 0 {
		return fmt.Errorf("version is required: %w", domain.ErrInvalidInput)
	}

	fields["version"] = version
	result := live(tx.Model(dest)).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%s %s: %w", tableOf(dest), id, domain.ErrNotFound)
	}
	return nil
}

// updateFields applies fields to the live row id without a version check.
// The trigger still bumps the version.
func updateFields(tx *gorm.DB, dest any, id uuid.UUID, fields map[string]any) error {
	result := live(tx.Model(dest)).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%s %s: %w", tableOf(dest), id, domain.ErrNotFound)
	}
	return nil
}

// softDelete stamps deleted_at/deleted_by on a live row
func softDelete(ctx context.Context, tx *gorm.DB, model any, id uuid.UUID) error {
	result := live(tx.Model(model)).
		Where("id = ?", id).
		Updates(map[string]any{
			"deleted_at": gorm.Expr("now()"),
			"deleted_by": domain.ActorID(ctx),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%s %s: %w", tableOf(model), id, domain.ErrNotFound)
	}
	return nil
}

// restore clears the deletion stamp of a soft-deleted row
func restore(tx *gorm.DB, model any, id uuid.UUID) error {
	result := tx.Model(model).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Updates(map[string]any{
			"deleted_at": nil,
			"deleted_by": nil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("deleted %s %s: %w", tableOf(model), id, domain.ErrNotFound)
	}
	return nil
}

// Pagination bounds list queries
type Pagination struct {
	Limit  int
	Offset int
}

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

func (p Pagination) apply(tx *gorm.DB) *gorm.DB {
	limit := p.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset := max(p.Offset, 0)
	return tx.Limit(limit).Offset(offset)
}
