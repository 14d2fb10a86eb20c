package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityTypeValid(t *testing.T) {
	tests := []struct {
		name       string
		entityType EntityType
		expected   bool
	}{
		{
			name:       "user",
			entityType: EntityTypeUser,
			expected:   true,
		},
		{
			name:       "opportunity",
			entityType: EntityTypeOpportunity,
			expected:   true,
		},
		{
			name:       "empty",
			entityType: EntityType(""),
			expected:   false,
		},
		{
			name:       "unknown",
			entityType: EntityType("account"),
			expected:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.entityType.Valid())
		})
	}
}

func TestEntityTypeTable(t *testing.T) {
	table, ok := EntityTypeLead.Table()
	assert.True(t, ok)
	assert.Equal(t, "crm_leads", table)

	table, ok = EntityTypeVendor.Table()
	assert.True(t, ok)
	assert.Equal(t, "profiles", table)

	_, ok = EntityType("account").Table()
	assert.False(t, ok)
}

func TestOpportunityStage(t *testing.T) {
	assert.True(t, OpportunityStageClosedWon.IsClosed())
	assert.True(t, OpportunityStageClosedLost.IsClosed())
	assert.False(t, OpportunityStageNegotiation.IsClosed())

	assert.Equal(t, 100.0, OpportunityStageClosedWon.DefaultProbability())
	assert.Equal(t, 0.0, OpportunityStageClosedLost.DefaultProbability())
	assert.Equal(t, 50.0, OpportunityStageProposal.DefaultProbability())
}

func TestInventoryTransactionTypeSign(t *testing.T) {
	assert.Equal(t, 1, InventoryTransactionTypeReceipt.Sign())
	assert.Equal(t, 1, InventoryTransactionTypeReturn.Sign())
	assert.Equal(t, -1, InventoryTransactionTypeIssue.Sign())
	assert.Equal(t, 0, InventoryTransactionTypeAdjustment.Sign())
}

func TestPermissionNameParse(t *testing.T) {
	tests := []struct {
		name     string
		input    PermissionName
		resource string
		action   PermissionAction
		wantErr  bool
	}{
		{
			name:     "valid",
			input:    "leads:read",
			resource: "leads",
			action:   PermissionActionRead,
		},
		{
			name:    "missing separator",
			input:   "leads",
			wantErr: true,
		},
		{
			name:    "empty resource",
			input:   ":read",
			wantErr: true,
		},
		{
			name:    "unknown action",
			input:   "leads:destroy",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resource, action, err := tt.input.Parse()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.resource, resource)
			assert.Equal(t, tt.action, action)
			assert.Equal(t, tt.input, NewPermissionName(resource, action))
		})
	}
}

func TestActorContext(t *testing.T) {
	ctx := context.Background()

	_, ok := ActorFromContext(ctx)
	assert.False(t, ok)
	assert.Equal(t, SystemUserID, ActorID(ctx))

	id := uuid.New()
	ctx = WithActor(ctx, Actor{UserID: id, Email: "a@example.com"})
	actor, ok := ActorFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, id, actor.UserID)
	assert.Equal(t, id, ActorID(ctx))

	// A nil user id is treated as no actor
	ctx = WithActor(context.Background(), Actor{})
	_, ok = ActorFromContext(ctx)
	assert.False(t, ok)

	scoped := WithActor(context.Background(), Actor{UserID: id})
	_, ok = ActorFromContext(WithoutActor(scoped))
	assert.False(t, ok)
	assert.Equal(t, SystemUserID, ActorID(WithoutActor(scoped)))
}
