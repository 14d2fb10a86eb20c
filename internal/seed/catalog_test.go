package seed_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-crm/internal/domain"
	"github.com/feral-file/ff-crm/internal/mocks"
	"github.com/feral-file/ff-crm/internal/seed"
	"github.com/feral-file/ff-crm/internal/store"
)

func TestLoadEmbeddedCatalog(t *testing.T) {
	catalog, err := seed.Load("")
	require.NoError(t, err)
	require.NotEmpty(t, catalog.Permissions)

	assert.ElementsMatch(t, []string{
		domain.RoleViewer,
		domain.RoleMember,
		domain.RoleManager,
		domain.RoleAccountant,
		domain.RoleInventoryManager,
		domain.RoleAdmin,
		domain.RoleSuperAdmin,
	}, catalog.Roles())

	inputs, err := catalog.Inputs()
	require.NoError(t, err)

	byName := make(map[domain.PermissionName]store.CreatePermissionInput, len(inputs))
	for _, in := range inputs {
		byName[domain.NewPermissionName(in.Resource, in.Action)] = in
		assert.True(t, in.IsSystem)
		assert.NoError(t, in.Conditions.Validate())
		assert.NoError(t, in.TimeRestrictions.Validate())
	}

	update := byName["profiles:update"]
	assert.Equal(t, domain.PermissionScopeOwn, update.Scope)
	assert.True(t, update.Conditions.OwnOnly)

	export := byName["audit:export"]
	assert.Equal(t, []int{1, 2, 3, 4, 5}, export.TimeRestrictions.Weekdays)
	assert.Equal(t, "06:00", export.TimeRestrictions.Start)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{
			name: "valid",
			data: `
permissions:
  - name: leads:read
    scope: team
    conditions:
      entity_types: [lead]
grants:
  member: [leads:read]
`,
		},
		{
			name: "malformed name",
			data: `
permissions:
  - name: leads
`,
			wantErr: true,
		},
		{
			name: "duplicate permission",
			data: `
permissions:
  - name: leads:read
  - name: leads:read
`,
			wantErr: true,
		},
		{
			name: "grant of undeclared permission",
			data: `
permissions:
  - name: leads:read
grants:
  member: [leads:update]
`,
			wantErr: true,
		},
		{
			name:    "not yaml",
			data:    "permissions: [",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog, err := seed.Parse([]byte(tt.data))
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				assert.Nil(t, catalog)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, catalog)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rbac.yaml")
	require.NoError(t, os.WriteFile(path, []byte("permissions:\n  - name: tasks:read\n"), 0600))

	catalog, err := seed.Load(path)
	require.NoError(t, err)
	require.Len(t, catalog.Permissions, 1)

	_, err = seed.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	ctrl := gomock.NewController(t)
	syncer := mocks.NewMockCatalogSyncer(ctrl)

	catalog, err := seed.Parse([]byte(`
permissions:
  - name: quotes:approve
    scope: organization
    description: Approve quotes
grants:
  manager: [quotes:approve]
`))
	require.NoError(t, err)

	t.Run("passes inputs and grants through", func(t *testing.T) {
		syncer.EXPECT().
			SyncPermissionCatalog(gomock.Any(), gomock.Any(), catalog.Grants).
			DoAndReturn(func(_ context.Context, inputs []store.CreatePermissionInput, _ map[string][]domain.PermissionName) (store.CatalogSyncResult, error) {
				require.Len(t, inputs, 1)
				assert.Equal(t, "quotes", inputs[0].Resource)
				assert.Equal(t, domain.PermissionActionApprove, inputs[0].Action)
				assert.Equal(t, domain.PermissionScopeOrganization, inputs[0].Scope)
				require.NotNil(t, inputs[0].Description)
				assert.Equal(t, "Approve quotes", *inputs[0].Description)
				return store.CatalogSyncResult{PermissionsCreated: 1, GrantsCreated: 1}, nil
			})

		result, err := seed.Apply(context.Background(), syncer, catalog)
		require.NoError(t, err)
		assert.Equal(t, 1, result.PermissionsCreated)
		assert.Equal(t, 1, result.GrantsCreated)
	})

	t.Run("store failure", func(t *testing.T) {
		syncer.EXPECT().
			SyncPermissionCatalog(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(store.CatalogSyncResult{}, errors.New("boom"))

		_, err := seed.Apply(context.Background(), syncer, catalog)
		assert.Error(t, err)
	})
}
