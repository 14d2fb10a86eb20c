// Package audit relays committed audit_logs rows to NATS JetStream.
package audit

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/feral-file/ff-crm/internal/adapter"
	"github.com/feral-file/ff-crm/internal/config"
	"github.com/feral-file/ff-crm/internal/domain"
	"github.com/feral-file/ff-crm/internal/logger"
	"github.com/feral-file/ff-crm/internal/messaging"
	"github.com/feral-file/ff-crm/internal/store/schema"
	"github.com/feral-file/ff-crm/internal/sweeper"
)

// Consumer names the relay's cursor in key_value_store
const Consumer = "nats"

// Store is the subset of the store the relay reads and checkpoints with
//
//go:generate mockgen -source=relay.go -destination=../mocks/audit_store.go -package=mocks -mock_names=Store=MockAuditStore
type Store interface {
	ListAuditLogsAfter(ctx context.Context, after schema.AuditCursor, limit int) ([]schema.AuditLog, error)
	GetAuditCursor(ctx context.Context, consumer string) (schema.AuditCursor, error)
	SetAuditCursor(ctx context.Context, consumer string, cursor schema.AuditCursor) error
}

// Event is the published form of an audit_logs row
type Event struct {
	ID         uuid.UUID          `json:"id"`
	Seq        int64              `json:"seq"`
	EntityType string             `json:"entity_type"`
	EntityID   *uuid.UUID         `json:"entity_id"`
	Action     domain.AuditAction `json:"action"`
	UserID     *uuid.UUID         `json:"user_id"`
	Changes    datatypes.JSON     `json:"changes"`
	OldValues  datatypes.JSON     `json:"old_values"`
	NewValues  datatypes.JSON     `json:"new_values"`
	IPAddress  *string            `json:"ip_address"`
	UserAgent  *string            `json:"user_agent"`
	CreatedAt  time.Time          `json:"created_at"`
}

// NewEvent converts an audit row into its published form
func NewEvent(row schema.AuditLog) Event {
	return Event{
		ID:         row.ID,
		Seq:        row.Seq,
		EntityType: row.EntityType,
		EntityID:   row.EntityID,
		Action:     row.Action,
		UserID:     row.UserID,
		Changes:    row.Changes,
		OldValues:  row.OldValues,
		NewValues:  row.NewValues,
		IPAddress:  row.IPAddress,
		UserAgent:  row.UserAgent,
		CreatedAt:  row.CreatedAt,
	}
}

// Subject builds the NATS subject of an event: <prefix>.<entity_type>.<action>
func Subject(prefix string, event Event) string {
	return fmt.Sprintf("%s.%s.%s", prefix, event.EntityType, event.Action)
}

type relay struct {
	config        config.AuditRelayConfig
	subjectPrefix string
	store         Store
	publisher     messaging.Publisher
	json          adapter.JSON
	jcs           adapter.JCS
	clock         adapter.Clock
	pool          pond.Pool
	running       atomic.Bool
	stopChan      chan struct{}
	stoppedCh     chan struct{}
}

// NewRelay creates the audit relay. It publishes every audit row exactly once
// per message id and only moves its cursor past a batch that was fully
// acknowledged.
func NewRelay(
	cfg config.AuditRelayConfig,
	subjectPrefix string,
	st Store,
	publisher messaging.Publisher,
	jsonAdapter adapter.JSON,
	jcsAdapter adapter.JCS,
	clock adapter.Clock,
) sweeper.Sweeper {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 200
	}
	if cfg.Worker.WorkerPoolSize <= 0 {
		cfg.Worker.WorkerPoolSize = 1
	}
	return &relay{
		config:        cfg,
		subjectPrefix: subjectPrefix,
		store:         st,
		publisher:     publisher,
		json:          jsonAdapter,
		jcs:           jcsAdapter,
		clock:         clock,
		stopChan:      make(chan struct{}),
		stoppedCh:     make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (r *relay) Name() string {
	return "audit-relay"
}

// Start runs the relay loop until the context is canceled or Stop is called
func (r *relay) Start(ctx context.Context) error {
	if !r.running.CompareAndSwap(false, true) {
		return fmt.Errorf("audit relay already running")
	}
	defer func() {
		r.running.Store(false)
		close(r.stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting audit relay",
		zap.Int("batch_size", r.config.BatchSize),
		zap.Int("worker_pool_size", r.config.Worker.WorkerPoolSize),
		zap.Duration("poll_interval", r.config.PollInterval),
	)

	opts := []pond.Option{pond.WithContext(ctx)}
	if r.config.Worker.WorkerQueueSize > 0 {
		opts = append(opts, pond.WithQueueSize(r.config.Worker.WorkerQueueSize))
	}
	r.pool = pond.NewPool(r.config.Worker.WorkerPoolSize, opts...)
	defer r.pool.StopAndWait()

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Audit relay stopping due to context cancellation", zap.Error(ctx.Err()))
			return nil
		case <-r.stopChan:
			logger.InfoCtx(ctx, "Audit relay stop requested")
			return nil
		default:
		}

		relayed, err := r.RelayBatch(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.ErrorCtx(ctx, err)
		}

		// A full batch means the backlog is not drained yet
		if err == nil && relayed == r.config.BatchSize {
			continue
		}
		if !r.sleep(ctx, r.config.PollInterval) {
			return nil
		}
	}
}

// Stop gracefully stops the relay, waiting for the in-flight batch
func (r *relay) Stop(ctx context.Context) error {
	if !r.running.Load() {
		return nil
	}

	select {
	case <-r.stopChan:
	default:
		logger.InfoCtx(ctx, "Stopping audit relay")
		close(r.stopChan)
	}

	select {
	case <-r.stoppedCh:
		logger.InfoCtx(ctx, "Audit relay stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Audit relay stop interrupted by context timeout")
		return ctx.Err()
	}
}

// RelayBatch publishes the next batch after the cursor and returns how many
// rows it relayed
func (r *relay) RelayBatch(ctx context.Context) (int, error) {
	cursor, err := r.store.GetAuditCursor(ctx, Consumer)
	if err != nil {
		return 0, err
	}

	rows, err := r.store.ListAuditLogsAfter(ctx, cursor, r.config.BatchSize)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}

	messages := make([]messaging.Message, 0, len(rows))
	for _, row := range rows {
		msg, err := r.buildMessage(row)
		if err != nil {
			return 0, err
		}
		messages = append(messages, msg)
	}

	group := r.pool.NewGroup()
	for _, msg := range messages {
		group.SubmitErr(func() error {
			return r.publishWithRetry(ctx, msg)
		})
	}
	if err := group.Wait(); err != nil {
		return 0, fmt.Errorf("failed to relay batch after seq %d: %w", cursor.Seq, err)
	}

	last := rows[len(rows)-1].Cursor()
	if err := r.store.SetAuditCursor(ctx, Consumer, last); err != nil {
		return 0, err
	}

	logger.InfoCtx(ctx, "Relayed audit batch",
		zap.Int("count", len(rows)),
		zap.Int64("from_seq", cursor.Seq),
		zap.Int64("to_seq", last.Seq),
		zap.Int64("to_txid", last.TxID),
	)

	return len(rows), nil
}

func (r *relay) buildMessage(row schema.AuditLog) (messaging.Message, error) {
	event := NewEvent(row)

	data, err := r.json.Marshal(event)
	if err != nil {
		return messaging.Message{}, fmt.Errorf("failed to marshal audit event %s: %w", row.ID, err)
	}

	canonical, err := r.jcs.Transform(data)
	if err != nil {
		return messaging.Message{}, fmt.Errorf("failed to canonicalize audit event %s: %w", row.ID, err)
	}

	return messaging.Message{
		Subject: Subject(r.subjectPrefix, event),
		ID:      row.ID.String(),
		Data:    canonical,
	}, nil
}

// publishWithRetry publishes one message with exponential backoff
func (r *relay) publishWithRetry(ctx context.Context, msg messaging.Message) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = r.config.MaxElapsedTime
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5

	operation := func() error {
		publishCtx := ctx
		if r.config.PublishTimeout > 0 {
			var cancel context.CancelFunc
			publishCtx, cancel = context.WithTimeout(ctx, r.config.PublishTimeout)
			defer cancel()
		}
		return r.publisher.Publish(publishCtx, msg)
	}

	var attemptCount int
	notifyOnError := func(err error, duration time.Duration) {
		attemptCount++
		logger.WarnCtx(ctx, "Audit publish failed, retrying",
			zap.Error(err),
			zap.String("subject", msg.Subject),
			zap.String("id", msg.ID),
			zap.Int("attempt", attemptCount),
			zap.Duration("next_retry_in", duration),
		)
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notifyOnError); err != nil {
		return fmt.Errorf("failed to publish %s after %d attempts: %w", msg.ID, attemptCount+1, err)
	}
	return nil
}

// sleep returns false when interrupted by cancellation or Stop
func (r *relay) sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-r.clock.After(duration):
		return true
	case <-ctx.Done():
		return false
	case <-r.stopChan:
		return false
	}
}
