package rbac_test

import (
	"context"
	"os"
	"slices"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/feral-file/ff-crm/internal/adapter"
	"github.com/feral-file/ff-crm/internal/config"
	"github.com/feral-file/ff-crm/internal/domain"
	"github.com/feral-file/ff-crm/internal/logger"
	"github.com/feral-file/ff-crm/internal/mocks"
	"github.com/feral-file/ff-crm/internal/rbac"
	"github.com/feral-file/ff-crm/internal/store/schema"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

var now = time.Date(2026, 3, 11, 14, 30, 0, 0, time.UTC) // a Wednesday

// world is an in-memory grant graph served through the store mock
type world struct {
	roles       []*schema.Role
	userRoles   map[uuid.UUID][]schema.UserRole
	permissions []schema.RolePermission
	delegations []schema.RoleDelegation
}

func newWorld() *world {
	return &world{userRoles: make(map[uuid.UUID][]schema.UserRole)}
}

func (w *world) role(name string, parent *schema.Role) *schema.Role {
	r := schema.Role{Name: name}
	r.ID = uuid.New()
	if parent != nil {
		r.ParentRoleID = &parent.ID
	}
	w.roles = append(w.roles, &r)
	return &r
}

func activeGrant() schema.Grant {
	return schema.Grant{
		Status:         domain.GrantStatusActive,
		ApprovalStatus: domain.ApprovalStatusApproved,
		ValidFrom:      now.Add(-24 * time.Hour),
	}
}

func (w *world) assign(userID uuid.UUID, role *schema.Role, mutate ...func(*schema.UserRole)) {
	ur := schema.UserRole{Grant: activeGrant(), UserID: userID, RoleID: role.ID, Role: role}
	ur.ID = uuid.New()
	for _, m := range mutate {
		m(&ur)
	}
	w.userRoles[userID] = append(w.userRoles[userID], ur)
}

type permissionOption func(*schema.Permission, *schema.RolePermission)

func withScope(scope domain.PermissionScope) permissionOption {
	return func(p *schema.Permission, _ *schema.RolePermission) { p.Scope = scope }
}

func withConditions(c domain.PermissionConditions) permissionOption {
	return func(p *schema.Permission, _ *schema.RolePermission) { p.Conditions = datatypes.NewJSONType(c) }
}

func withWindow(r domain.TimeRestrictions) permissionOption {
	return func(p *schema.Permission, _ *schema.RolePermission) { p.TimeRestrictions = datatypes.NewJSONType(r) }
}

func grantedUntil(t time.Time) permissionOption {
	return func(_ *schema.Permission, rp *schema.RolePermission) { rp.ValidUntil = &t }
}

func (w *world) allow(role *schema.Role, name domain.PermissionName, opts ...permissionOption) {
	resource, action, err := name.Parse()
	if err != nil {
		panic(err)
	}
	p := &schema.Permission{Name: string(name), Resource: resource, Action: action, Scope: domain.PermissionScopeGlobal}
	p.ID = uuid.New()
	rp := schema.RolePermission{Grant: activeGrant(), RoleID: role.ID, PermissionID: p.ID, Permission: p}
	rp.ID = uuid.New()
	for _, opt := range opts {
		opt(p, &rp)
	}
	w.permissions = append(w.permissions, rp)
}

func (w *world) delegate(from, to uuid.UUID, role *schema.Role, mutate ...func(*schema.RoleDelegation)) *schema.RoleDelegation {
	d := schema.RoleDelegation{
		DelegatorID:    from,
		DelegateID:     to,
		RoleID:         role.ID,
		ValidFrom:      now.Add(-time.Hour),
		ValidUntil:     now.Add(24 * time.Hour),
		Status:         domain.DelegationStatusActive,
		ApprovalStatus: domain.ApprovalStatusApproved,
	}
	d.ID = uuid.New()
	for _, m := range mutate {
		m(&d)
	}
	w.delegations = append(w.delegations, d)
	return &w.delegations[len(w.delegations)-1]
}

// serve wires the store mock to the world
func (w *world) serve(store *mocks.MockRBACStore) {
	store.EXPECT().ListRoles(gomock.Any()).
		DoAndReturn(func(context.Context) ([]schema.Role, error) {
			roles := make([]schema.Role, 0, len(w.roles))
			for _, r := range w.roles {
				roles = append(roles, *r)
			}
			return roles, nil
		}).AnyTimes()
	store.EXPECT().ListUserRoleGrants(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, userID uuid.UUID) ([]schema.UserRole, error) {
			return w.userRoles[userID], nil
		}).AnyTimes()
	store.EXPECT().ListDelegationsForDelegate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, userID uuid.UUID) ([]schema.RoleDelegation, error) {
			var out []schema.RoleDelegation
			for _, d := range w.delegations {
				if d.DelegateID == userID {
					out = append(out, d)
				}
			}
			return out, nil
		}).AnyTimes()
	store.EXPECT().GetDelegation(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id uuid.UUID) (*schema.RoleDelegation, error) {
			for i := range w.delegations {
				if w.delegations[i].ID == id {
					return &w.delegations[i], nil
				}
			}
			return nil, nil
		}).AnyTimes()
	store.EXPECT().ListRolePermissionGrants(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, roleIDs []uuid.UUID) ([]schema.RolePermission, error) {
			var out []schema.RolePermission
			for _, rp := range w.permissions {
				if slices.Contains(roleIDs, rp.RoleID) {
					out = append(out, rp)
				}
			}
			return out, nil
		}).AnyTimes()
}

type testEvaluator struct {
	ctrl      *gomock.Controller
	store     *mocks.MockRBACStore
	clock     *mocks.MockClock
	evaluator rbac.Evaluator
}

func setupEvaluator(t *testing.T, w *world, cache rbac.Cache) *testEvaluator {
	ctrl := gomock.NewController(t)
	te := &testEvaluator{
		ctrl:  ctrl,
		store: mocks.NewMockRBACStore(ctrl),
		clock: mocks.NewMockClock(ctrl),
	}
	w.serve(te.store)
	te.clock.EXPECT().Now().Return(now).AnyTimes()
	te.evaluator = rbac.NewEvaluator(config.RBACConfig{CacheTTL: time.Minute}, te.store, cache, te.clock)
	return te
}

func TestEffectivePermissions_RoleHierarchy(t *testing.T) {
	w := newWorld()
	member := w.role(domain.RoleMember, nil)
	manager := w.role(domain.RoleManager, member)
	w.allow(member, "contacts:read")
	w.allow(manager, "opportunities:manage")

	alice := uuid.New()
	w.assign(alice, manager)

	te := setupEvaluator(t, w, nil)
	set, err := te.evaluator.EffectivePermissions(context.Background(), alice)
	require.NoError(t, err)

	assert.Equal(t, []domain.PermissionName{"contacts:read", "opportunities:manage"}, set.Names())
	assert.True(t, set.HasRole(domain.RoleManager))
	assert.True(t, set.HasRole(domain.RoleMember))
}

func TestEffectivePermissions_RoleCycle(t *testing.T) {
	w := newWorld()
	a := w.role("a", nil)
	b := w.role("b", a)
	a.ParentRoleID = &b.ID
	w.allow(a, "leads:read")
	w.allow(b, "leads:create")

	alice := uuid.New()
	w.assign(alice, b)

	te := setupEvaluator(t, w, nil)
	set, err := te.evaluator.EffectivePermissions(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, []domain.PermissionName{"leads:create", "leads:read"}, set.Names())
}

func TestEffectivePermissions_ExpiredGrantsNeverApply(t *testing.T) {
	expired := now.Add(-time.Minute)
	future := now.Add(time.Hour)

	tests := []struct {
		name string
		build func(w *world, user uuid.UUID)
	}{
		{
			name: "expired role assignment",
			build: func(w *world, user uuid.UUID) {
				r := w.role("sales", nil)
				w.allow(r, "leads:read")
				w.assign(user, r, func(ur *schema.UserRole) { ur.ValidUntil = &expired })
			},
		},
		{
			name: "expired role permission",
			build: func(w *world, user uuid.UUID) {
				r := w.role("sales", nil)
				w.allow(r, "leads:read", grantedUntil(expired))
				w.assign(user, r)
			},
		},
		{
			name: "assignment not yet valid",
			build: func(w *world, user uuid.UUID) {
				r := w.role("sales", nil)
				w.allow(r, "leads:read")
				w.assign(user, r, func(ur *schema.UserRole) { ur.ValidFrom = future })
			},
		},
		{
			name: "suspended assignment",
			build: func(w *world, user uuid.UUID) {
				r := w.role("sales", nil)
				w.allow(r, "leads:read")
				w.assign(user, r, func(ur *schema.UserRole) { ur.Status = domain.GrantStatusSuspended })
			},
		},
		{
			name: "assignment pending approval",
			build: func(w *world, user uuid.UUID) {
				r := w.role("sales", nil)
				w.allow(r, "leads:read")
				w.assign(user, r, func(ur *schema.UserRole) { ur.ApprovalStatus = domain.ApprovalStatusPending })
			},
		},
		{
			name: "expired delegation",
			build: func(w *world, user uuid.UUID) {
				r := w.role("sales", nil)
				w.allow(r, "leads:read")
				boss := uuid.New()
				w.assign(boss, r)
				w.delegate(boss, user, r, func(d *schema.RoleDelegation) { d.ValidUntil = expired })
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newWorld()
			user := uuid.New()
			tt.build(w, user)

			te := setupEvaluator(t, w, nil)
			set, err := te.evaluator.EffectivePermissions(context.Background(), user)
			require.NoError(t, err)
			assert.Empty(t, set.Grants)

			ok, err := te.evaluator.Check(context.Background(), user, "leads:read", rbac.Resource{})
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestEffectivePermissions_Delegation(t *testing.T) {
	t.Run("delegator holding the role passes it on", func(t *testing.T) {
		w := newWorld()
		approver := w.role("approver", nil)
		w.allow(approver, "quotes:approve")
		boss, deputy := uuid.New(), uuid.New()
		w.assign(boss, approver)
		d := w.delegate(boss, deputy, approver)

		te := setupEvaluator(t, w, nil)
		set, err := te.evaluator.EffectivePermissions(context.Background(), deputy)
		require.NoError(t, err)
		require.Len(t, set.Grants, 1)
		assert.Equal(t, domain.PermissionName("quotes:approve"), set.Grants[0].Permission)
		require.NotNil(t, set.Grants[0].DelegationID)
		assert.Equal(t, d.ID, *set.Grants[0].DelegationID)
		assert.Equal(t, d.ValidUntil, *set.Grants[0].ValidUntil)
	})

	t.Run("delegator holding a descendant role passes on the ancestor", func(t *testing.T) {
		w := newWorld()
		member := w.role(domain.RoleMember, nil)
		manager := w.role(domain.RoleManager, member)
		w.allow(member, "contacts:read")
		boss, deputy := uuid.New(), uuid.New()
		w.assign(boss, manager)
		w.delegate(boss, deputy, member)

		te := setupEvaluator(t, w, nil)
		set, err := te.evaluator.EffectivePermissions(context.Background(), deputy)
		require.NoError(t, err)
		assert.Equal(t, []domain.PermissionName{"contacts:read"}, set.Names())
	})

	t.Run("delegator who lost the role passes nothing", func(t *testing.T) {
		w := newWorld()
		approver := w.role("approver", nil)
		w.allow(approver, "quotes:approve")
		boss, deputy := uuid.New(), uuid.New()
		lapsed := now.Add(-time.Hour)
		w.assign(boss, approver, func(ur *schema.UserRole) { ur.ValidUntil = &lapsed })
		w.delegate(boss, deputy, approver)

		te := setupEvaluator(t, w, nil)
		set, err := te.evaluator.EffectivePermissions(context.Background(), deputy)
		require.NoError(t, err)
		assert.Empty(t, set.Grants)
	})

	t.Run("revoked delegation passes nothing", func(t *testing.T) {
		w := newWorld()
		approver := w.role("approver", nil)
		w.allow(approver, "quotes:approve")
		boss, deputy := uuid.New(), uuid.New()
		w.assign(boss, approver)
		revoked := now.Add(-time.Minute)
		w.delegate(boss, deputy, approver, func(d *schema.RoleDelegation) {
			d.RevokedAt = &revoked
			d.Status = domain.DelegationStatusRevoked
		})

		te := setupEvaluator(t, w, nil)
		set, err := te.evaluator.EffectivePermissions(context.Background(), deputy)
		require.NoError(t, err)
		assert.Empty(t, set.Grants)
	})
}

func TestEffectivePermissions_Redelegation(t *testing.T) {
	build := func(canRedelegate bool, hops int) (*world, uuid.UUID) {
		w := newWorld()
		approver := w.role("approver", nil)
		w.allow(approver, "quotes:approve")

		holder := uuid.New()
		w.assign(holder, approver)

		from := holder
		var parent *schema.RoleDelegation
		for range hops {
			to := uuid.New()
			parentRef := parent
			parent = w.delegate(from, to, approver, func(d *schema.RoleDelegation) {
				d.CanRedelegate = canRedelegate
				if parentRef != nil {
					d.ParentDelegationID = &parentRef.ID
				}
			})
			from = to
		}
		return w, from
	}

	tests := []struct {
		name          string
		canRedelegate bool
		hops          int
		want          bool
	}{
		{name: "two hops with redelegation allowed", canRedelegate: true, hops: 2, want: true},
		{name: "three hops within the depth bound", canRedelegate: true, hops: 3, want: true},
		{name: "four hops beyond the depth bound", canRedelegate: true, hops: 4, want: false},
		{name: "upstream forbids redelegation", canRedelegate: false, hops: 2, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, last := build(tt.canRedelegate, tt.hops)
			te := setupEvaluator(t, w, nil)

			ok, err := te.evaluator.Check(context.Background(), last, "quotes:approve", rbac.Resource{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

// serviceCtx matches contexts that carry no actor
type serviceCtx struct{}

func (serviceCtx) Matches(x any) bool {
	ctx, ok := x.(context.Context)
	if !ok {
		return false
	}
	_, scoped := domain.ActorFromContext(ctx)
	return !scoped
}

func (serviceCtx) String() string {
	return "context without an actor"
}

func TestEffectivePermissions_ReadsGrantsInServiceMode(t *testing.T) {
	w := newWorld()
	manager := w.role(domain.RoleManager, nil)
	w.allow(manager, "leads:update")

	alice, bob := uuid.New(), uuid.New()
	w.assign(alice, manager)
	w.delegate(alice, bob, manager)

	// Under bob's session row level security would hide alice's role grants
	ctrl := gomock.NewController(t)
	store := mocks.NewMockRBACStore(ctrl)
	store.EXPECT().ListRoles(serviceCtx{}).Return([]schema.Role{*manager}, nil).AnyTimes()
	store.EXPECT().ListUserRoleGrants(serviceCtx{}, gomock.Any()).
		DoAndReturn(func(_ context.Context, userID uuid.UUID) ([]schema.UserRole, error) {
			return w.userRoles[userID], nil
		}).AnyTimes()
	store.EXPECT().ListDelegationsForDelegate(serviceCtx{}, bob).Return(w.delegations, nil)
	store.EXPECT().ListRolePermissionGrants(serviceCtx{}, gomock.Any()).Return(w.permissions, nil)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(now).AnyTimes()

	evaluator := rbac.NewEvaluator(config.RBACConfig{}, store, nil, clock)
	ctx := domain.WithActor(context.Background(), domain.Actor{UserID: bob})
	ok, err := evaluator.Check(ctx, bob, "leads:update", rbac.Resource{})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCheck_ScopeAndConditions(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	contactID := uuid.New()

	aliceContact := rbac.Resource{EntityType: domain.EntityTypeContact, ID: contactID, OwnerID: &alice}
	bobContact := rbac.Resource{EntityType: domain.EntityTypeContact, ID: contactID, OwnerID: &bob}
	assignedToAlice := rbac.Resource{EntityType: domain.EntityTypeContact, ID: contactID, OwnerID: &bob, AssignedTo: &alice}

	tests := []struct {
		name       string
		opts       []permissionOption
		permission domain.PermissionName
		check      domain.PermissionName
		resource   rbac.Resource
		teamMember *bool
		want       bool
	}{
		{name: "own scope on own record", opts: []permissionOption{withScope(domain.PermissionScopeOwn)}, permission: "contacts:update", check: "contacts:update", resource: aliceContact, want: true},
		{name: "own scope on foreign record", opts: []permissionOption{withScope(domain.PermissionScopeOwn)}, permission: "contacts:update", check: "contacts:update", resource: bobContact, want: false},
		{name: "own scope on assigned record", opts: []permissionOption{withScope(domain.PermissionScopeOwn)}, permission: "contacts:update", check: "contacts:update", resource: assignedToAlice, want: true},
		{name: "own scope at collection level", opts: []permissionOption{withScope(domain.PermissionScopeOwn)}, permission: "contacts:create", check: "contacts:create", resource: rbac.Resource{}, want: true},
		{name: "team scope for a team member", opts: []permissionOption{withScope(domain.PermissionScopeTeam)}, permission: "contacts:read", check: "contacts:read", resource: bobContact, teamMember: ptr(true), want: true},
		{name: "team scope for an outsider", opts: []permissionOption{withScope(domain.PermissionScopeTeam)}, permission: "contacts:read", check: "contacts:read", resource: bobContact, teamMember: ptr(false), want: false},
		{name: "organization scope on foreign record", opts: []permissionOption{withScope(domain.PermissionScopeOrganization)}, permission: "contacts:read", check: "contacts:read", resource: bobContact, want: true},
		{name: "own only narrows global scope", opts: []permissionOption{withConditions(domain.PermissionConditions{OwnOnly: true})}, permission: "contacts:delete", check: "contacts:delete", resource: bobContact, want: false},
		{name: "entity type condition matches", opts: []permissionOption{withConditions(domain.PermissionConditions{EntityTypes: []domain.EntityType{domain.EntityTypeContact}})}, permission: "contacts:read", check: "contacts:read", resource: bobContact, want: true},
		{name: "entity type condition excludes", opts: []permissionOption{withConditions(domain.PermissionConditions{EntityTypes: []domain.EntityType{domain.EntityTypeLead}})}, permission: "contacts:read", check: "contacts:read", resource: bobContact, want: false},
		{name: "manage implies every action", permission: "contacts:manage", check: "contacts:delete", resource: bobContact, want: true},
		{name: "other actions do not imply each other", permission: "contacts:read", check: "contacts:update", resource: bobContact, want: false},
		{name: "other resources do not match", permission: "leads:read", check: "contacts:read", resource: bobContact, want: false},
		{name: "mfa required without mfa", opts: []permissionOption{withConditions(domain.PermissionConditions{RequireMFA: true})}, permission: "contacts:export", check: "contacts:export", resource: rbac.Resource{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newWorld()
			r := w.role("sales", nil)
			w.allow(r, tt.permission, tt.opts...)
			w.assign(alice, r)

			te := setupEvaluator(t, w, nil)
			if tt.teamMember != nil {
				te.store.EXPECT().
					IsTeamMember(gomock.Any(), alice, contactID, domain.EntityTypeContact).
					Return(*tt.teamMember, nil)
			}

			ok, err := te.evaluator.Check(context.Background(), alice, tt.check, tt.resource)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestCheck_RequireMFA(t *testing.T) {
	alice := uuid.New()
	w := newWorld()
	r := w.role("finance", nil)
	w.allow(r, "payments:export", withConditions(domain.PermissionConditions{RequireMFA: true}))
	w.assign(alice, r)

	te := setupEvaluator(t, w, nil)

	ctx := domain.WithActor(context.Background(), domain.Actor{UserID: alice, MFA: true})
	ok, err := te.evaluator.Check(ctx, alice, "payments:export", rbac.Resource{})
	require.NoError(t, err)
	assert.True(t, ok)

	ctx = domain.WithActor(context.Background(), domain.Actor{UserID: alice})
	ok, err = te.evaluator.Check(ctx, alice, "payments:export", rbac.Resource{})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheck_TimeRestrictions(t *testing.T) {
	alice := uuid.New()

	tests := []struct {
		name   string
		window domain.TimeRestrictions
		want   bool
	}{
		{name: "inside office hours", window: domain.TimeRestrictions{Weekdays: []int{1, 2, 3, 4, 5}, Start: "09:00", End: "17:00"}, want: true},
		{name: "weekend only", window: domain.TimeRestrictions{Weekdays: []int{6, 7}}, want: false},
		// 14:30 UTC is 23:30 in Tokyo
		{name: "office hours in another zone", window: domain.TimeRestrictions{Timezone: "Asia/Tokyo", Start: "09:00", End: "17:00"}, want: false},
		{name: "unknown zone denies", window: domain.TimeRestrictions{Timezone: "Mars/Olympus", Start: "09:00", End: "17:00"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newWorld()
			r := w.role("support", nil)
			w.allow(r, "tasks:update", withWindow(tt.window))
			w.assign(alice, r)

			te := setupEvaluator(t, w, nil)
			ok, err := te.evaluator.Check(context.Background(), alice, "tasks:update", rbac.Resource{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestCheck_AdminRoleBypasses(t *testing.T) {
	root := uuid.New()
	w := newWorld()
	w.assign(root, w.role(domain.RoleSuperAdmin, nil))

	te := setupEvaluator(t, w, nil)
	ok, err := te.evaluator.Check(context.Background(), root, "accounting:manage", rbac.Resource{})
	require.NoError(t, err)
	assert.True(t, ok)

	err = te.evaluator.Authorize(context.Background(), uuid.New(), "accounting:manage", rbac.Resource{})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestCheck_InvalidPermissionName(t *testing.T) {
	te := setupEvaluator(t, newWorld(), nil)
	_, err := te.evaluator.Check(context.Background(), uuid.New(), "leads", rbac.Resource{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEffectivePermissions_Cache(t *testing.T) {
	alice := uuid.New()
	ctrl := gomock.NewController(t)
	redis := mocks.NewMockRedisClient(ctrl)
	cache := rbac.NewRedisCache(redis, adapter.NewJSON())

	t.Run("miss computes and stores", func(t *testing.T) {
		w := newWorld()
		r := w.role("sales", nil)
		w.allow(r, "leads:read")
		w.assign(alice, r)

		te := setupEvaluator(t, w, cache)
		redis.EXPECT().Get(gomock.Any(), "crm:rbac:permissions:"+alice.String()).Return(nil, adapter.ErrCacheMiss)
		redis.EXPECT().Set(gomock.Any(), "crm:rbac:permissions:"+alice.String(), gomock.Any(), time.Minute).Return(nil)

		set, err := te.evaluator.EffectivePermissions(context.Background(), alice)
		require.NoError(t, err)
		assert.Equal(t, []domain.PermissionName{"leads:read"}, set.Names())
	})

	t.Run("hit drops grants that expired since caching", func(t *testing.T) {
		ended := now.Add(-time.Second)
		cached := rbac.PermissionSet{
			UserID:     alice,
			ComputedAt: now.Add(-30 * time.Second),
			Grants: []rbac.Grant{
				{Permission: "leads:read", Scope: domain.PermissionScopeGlobal},
				{Permission: "leads:delete", Scope: domain.PermissionScopeGlobal, ValidUntil: &ended},
			},
		}
		data, err := adapter.NewJSON().Marshal(cached)
		require.NoError(t, err)

		ctrl := gomock.NewController(t)
		store := mocks.NewMockRBACStore(ctrl)
		clock := mocks.NewMockClock(ctrl)
		clock.EXPECT().Now().Return(now).AnyTimes()
		redis.EXPECT().Get(gomock.Any(), gomock.Any()).Return(data, nil).Times(2)

		evaluator := rbac.NewEvaluator(config.RBACConfig{CacheTTL: time.Minute}, store, cache, clock)
		ok, err := evaluator.Check(context.Background(), alice, "leads:read", rbac.Resource{})
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = evaluator.Check(context.Background(), alice, "leads:delete", rbac.Resource{})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("invalidate deletes the key", func(t *testing.T) {
		te := setupEvaluator(t, newWorld(), cache)
		redis.EXPECT().Del(gomock.Any(), "crm:rbac:permissions:"+alice.String()).Return(nil)
		require.NoError(t, te.evaluator.Invalidate(context.Background(), alice))
	})
}

func ptr[T any](v T) *T {
	return &v
}
