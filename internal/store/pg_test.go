package store

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/feral-file/ff-crm/internal/domain"
	"github.com/feral-file/ff-crm/internal/store/schema"
	"github.com/feral-file/ff-crm/internal/testutil"
)

var testPG *testutil.PostgresDB

// TestMain sets up the test database before running tests
func TestMain(m *testing.M) {
	ctx := context.Background()

	var err error
	testPG, err = testutil.StartPostgres(ctx, true)
	if err != nil {
		fmt.Printf("Failed to set up test database: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	testPG.Terminate(ctx)
	os.Exit(code)
}

// initPGTestDB opens a transaction for the test and returns a store bound
// to it. The transaction is rolled back when the test ends.
func initPGTestDB(t *testing.T) *fixture {
	tx := testPG.DB.Begin()
	require.NotNil(t, tx)
	require.NoError(t, tx.Error)

	t.Cleanup(func() {
		tx.Rollback()
	})

	return &fixture{store: NewPGStore(tx), db: tx}
}

// TestPostgreSQLStore runs all store tests against PostgreSQL
func TestPostgreSQLStore(t *testing.T) {
	if testPG == nil {
		t.Fatal("Test database not initialized")
	}

	RunStoreTests(t, initPGTestDB)
}

// TestListAuditLogsAfterInterleavedCommits commits a later writer while an
// earlier one is still open. The relay must not pass the earlier writer's row.
func TestListAuditLogsAfterInterleavedCommits(t *testing.T) {
	ctx := context.Background()
	s := NewPGStore(testPG.DB)

	writeAudit := func(tx *gorm.DB) uuid.UUID {
		entityID := uuid.New()
		require.NoError(t, tx.Create(&schema.AuditLog{
			ID:         uuid.New(),
			EntityType: "interleaved",
			EntityID:   &entityID,
			Action:     domain.AuditActionInsert,
			Changes:    datatypes.JSON(`{}`),
		}).Error)
		return entityID
	}
	t.Cleanup(func() {
		testPG.DB.Exec("DELETE FROM audit_logs WHERE entity_type = 'interleaved'")
	})

	relayed := func(cursor schema.AuditCursor) []schema.AuditLog {
		rows, err := s.ListAuditLogsAfter(ctx, cursor, 10000)
		require.NoError(t, err)
		var ours []schema.AuditLog
		for _, row := range rows {
			if row.EntityType == "interleaved" {
				ours = append(ours, row)
			}
		}
		return ours
	}

	// Everything settled so far
	var start schema.AuditCursor
	require.NoError(t, testPG.DB.Raw(
		"SELECT COALESCE(max(txid), 0) AS tx_id, COALESCE(max(seq), 0) AS seq FROM audit_logs").
		Scan(&start).Error)

	early := testPG.DB.Begin()
	require.NoError(t, early.Error)
	defer early.Rollback()
	earlyID := writeAudit(early)

	late := testPG.DB.Begin()
	require.NoError(t, late.Error)
	lateID := writeAudit(late)
	require.NoError(t, late.Commit().Error)

	// The late row is committed but sorts after a writer that is still open
	assert.Empty(t, relayed(start))

	require.NoError(t, early.Commit().Error)

	rows := relayed(start)
	require.Len(t, rows, 2)
	assert.Equal(t, earlyID, *rows[0].EntityID)
	assert.Equal(t, lateID, *rows[1].EntityID)
	assert.Less(t, rows[0].TxID, rows[1].TxID)
	assert.Empty(t, relayed(rows[1].Cursor()))
}

// TestAddDependencyConcurrentCycle adds two edges with no endpoint in common
// from separate transactions. Together they would close A→B→C→D→A.
func TestAddDependencyConcurrentCycle(t *testing.T) {
	ctx := context.Background()
	s := NewPGStore(testPG.DB)

	board, err := s.CreateBoard(ctx, CreateBoardInput{Name: "Concurrent dependencies"})
	require.NoError(t, err)
	t.Cleanup(func() {
		testPG.DB.Exec(`DELETE FROM task_dependencies WHERE task_id IN (SELECT id FROM tasks WHERE board_id = ?)`, board.ID)
		testPG.DB.Exec(`DELETE FROM tasks WHERE board_id = ?`, board.ID)
		testPG.DB.Exec(`DELETE FROM task_lists WHERE board_id = ?`, board.ID)
		testPG.DB.Exec(`DELETE FROM task_boards WHERE id = ?`, board.ID)
	})
	list, err := s.CreateList(ctx, board.ID, "Backlog", nil)
	require.NoError(t, err)

	task := func(title string) uuid.UUID {
		created, err := s.CreateTask(ctx, CreateTaskInput{ListID: list.ID, Title: title})
		require.NoError(t, err)
		return created.ID
	}
	a, b, c, d := task("Alpha"), task("Bravo"), task("Charlie"), task("Delta")

	_, err = s.AddDependency(ctx, b, c, domain.DependencyTypeFinishToStart)
	require.NoError(t, err)
	_, err = s.AddDependency(ctx, d, a, domain.DependencyTypeFinishToStart)
	require.NoError(t, err)

	first := testPG.DB.Begin()
	require.NoError(t, first.Error)
	defer first.Rollback()
	_, err = NewPGStore(first).AddDependency(ctx, a, b, domain.DependencyTypeFinishToStart)
	require.NoError(t, err)

	second := testPG.DB.Begin()
	require.NoError(t, second.Error)
	defer second.Rollback()
	done := make(chan error, 1)
	go func() {
		_, err := NewPGStore(second).AddDependency(ctx, c, d, domain.DependencyTypeFinishToStart)
		done <- err
	}()

	select {
	case err := <-done:
		t.Fatalf("second dependency was checked while the first was uncommitted: %v", err)
	case <-time.After(200 * time.Millisecond):
	}

	require.NoError(t, first.Commit().Error)

	select {
	case err := <-done:
		assert.ErrorIs(t, err, domain.ErrDependencyCycle)
	case <-time.After(10 * time.Second):
		t.Fatal("second dependency never finished")
	}
}

func TestNormalizeConnectionPoolSettings(t *testing.T) {
	tests := []struct {
		name                       string
		open, idle                 int
		lifetime, idleTime         time.Duration
		wantOpen, wantIdle         int
		wantLifetime, wantIdleTime time.Duration
	}{
		{
			name:         "defaults",
			wantOpen:     20,
			wantIdle:     5,
			wantLifetime: 5 * time.Minute,
			wantIdleTime: 10 * time.Minute,
		},
		{
			name:         "idle clamped to open",
			open:         2,
			idle:         8,
			lifetime:     time.Hour,
			idleTime:     time.Minute,
			wantOpen:     2,
			wantIdle:     2,
			wantLifetime: time.Hour,
			wantIdleTime: time.Minute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			open, idle, lifetime, idleTime := NormalizeConnectionPoolSettings(tt.open, tt.idle, tt.lifetime, tt.idleTime)
			assert.Equal(t, tt.wantOpen, open)
			assert.Equal(t, tt.wantIdle, idle)
			assert.Equal(t, tt.wantLifetime, lifetime)
			assert.Equal(t, tt.wantIdleTime, idleTime)
		})
	}
}
