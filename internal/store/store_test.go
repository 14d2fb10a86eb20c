package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/feral-file/ff-crm/internal/domain"
	"github.com/feral-file/ff-crm/internal/store/schema"
)

// fixture is one test's store together with the transaction it is bound to
type fixture struct {
	store Store
	db    *gorm.DB
}

// =============================================================================
// Test Data Builders
// =============================================================================

func ptr[T any](v T) *T {
	return &v
}

func asActor(userID uuid.UUID) context.Context {
	return domain.WithActor(context.Background(), domain.Actor{UserID: userID})
}

// newUser inserts an auth user and returns its id
func (f *fixture) newUser(t *testing.T, email string) uuid.UUID {
	var row struct{ ID uuid.UUID }
	err := f.db.Raw("INSERT INTO auth.users (email) VALUES (?) RETURNING id", email).Scan(&row).Error
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, row.ID)
	return row.ID
}

// newProfile creates a user profile in service mode
func (f *fixture) newProfile(t *testing.T, userID uuid.UUID, handle, email string) *schema.Profile {
	profile, err := f.store.CreateProfile(context.Background(), CreateProfileInput{
		UserID:      &userID,
		ProfileType: domain.EntityTypeUser,
		Handle:      handle,
		Email:       &email,
	})
	require.NoError(t, err)
	require.NotNil(t, profile)
	return profile
}

// grantRole assigns a seeded role in service mode
func (f *fixture) grantRole(t *testing.T, userID uuid.UUID, roleName string, window GrantWindow) *schema.UserRole {
	ctx := context.Background()
	role, err := f.store.GetRoleByName(ctx, roleName)
	require.NoError(t, err)
	require.NotNil(t, role, "role %s is seeded", roleName)

	grant, err := f.store.AssignRole(ctx, AssignRoleInput{UserID: userID, RoleID: role.ID, GrantWindow: window})
	require.NoError(t, err)
	return grant
}

// newContact creates a CRM contact owned by owner, in service mode
func (f *fixture) newContact(t *testing.T, owner *uuid.UUID, lastName string) *schema.CRMContact {
	contact := &schema.CRMContact{
		Ownership: schema.Ownership{OwnerID: owner},
		LastName:  lastName,
	}
	require.NoError(t, NewRepository[schema.CRMContact](f.db).Create(context.Background(), contact))
	return contact
}

func countPrimary[T any](rows []T, primary func(T) bool) int {
	n := 0
	for _, row := range rows {
		if primary(row) {
			n++
		}
	}
	return n
}

// =============================================================================
// Test: Profiles
// =============================================================================

func testProfiles(t *testing.T, f *fixture) {
	ctx := context.Background()
	userID := f.newUser(t, "ada@example.com")
	profile := f.newProfile(t, userID, "Ada_L", "ada@example.com")

	t.Run("create provisions satellites and a primary email", func(t *testing.T) {
		assert.Equal(t, 1, profile.Version)
		assert.Equal(t, "UTC", profile.Timezone)

		prefs, err := f.store.GetUserPreferences(ctx, profile.ID)
		require.NoError(t, err)
		require.NotNil(t, prefs)

		onboarding, err := f.store.GetUserOnboarding(ctx, profile.ID)
		require.NoError(t, err)
		require.NotNil(t, onboarding)
		assert.False(t, onboarding.IsCompleted)

		emails, err := f.store.ListEmails(ctx, profile.ID, domain.EntityTypeUser)
		require.NoError(t, err)
		require.Len(t, emails, 1)
		assert.True(t, emails[0].IsPrimary)
		assert.Equal(t, "ada@example.com", emails[0].Email)
	})

	t.Run("handle lookup ignores case", func(t *testing.T) {
		found, err := f.store.GetProfileByHandle(ctx, "ADA_l")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, profile.ID, found.ID)

		missing, err := f.store.GetProfileByHandle(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("duplicate handle is rejected", func(t *testing.T) {
		other := f.newUser(t, "grace@example.com")
		_, err := f.store.CreateProfile(ctx, CreateProfileInput{
			UserID:      &other,
			ProfileType: domain.EntityTypeUser,
			Handle:      "ada_l",
		})
		assert.ErrorIs(t, err, domain.ErrDuplicate)
	})

	t.Run("update checks the version", func(t *testing.T) {
		updated, err := f.store.UpdateProfile(ctx, UpdateProfileInput{
			ID:          profile.ID,
			Version:     profile.Version,
			DisplayName: ptr("Ada Lovelace"),
		})
		require.NoError(t, err)
		assert.Equal(t, profile.Version+1, updated.Version)
		assert.Equal(t, "Ada Lovelace", *updated.DisplayName)

		_, err = f.store.UpdateProfile(ctx, UpdateProfileInput{
			ID:       profile.ID,
			Version:  profile.Version,
			Timezone: ptr("Europe/London"),
		})
		assert.ErrorIs(t, err, domain.ErrVersionConflict)
	})

	t.Run("unverified profiles are private", func(t *testing.T) {
		own, err := f.store.GetProfile(asActor(userID), profile.ID)
		require.NoError(t, err)
		assert.NotNil(t, own)

		stranger := f.newUser(t, "stranger@example.com")
		other, err := f.store.GetProfile(asActor(stranger), profile.ID)
		require.NoError(t, err)
		assert.Nil(t, other)
	})

	t.Run("soft delete cascades and restore brings rows back", func(t *testing.T) {
		require.NoError(t, f.store.SoftDeleteProfile(ctx, profile.ID))

		gone, err := f.store.GetProfile(ctx, profile.ID)
		require.NoError(t, err)
		assert.Nil(t, gone)

		emails, err := f.store.ListEmails(ctx, profile.ID, domain.EntityTypeUser)
		require.NoError(t, err)
		assert.Empty(t, emails)

		err = f.store.SoftDeleteProfile(ctx, profile.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		require.NoError(t, f.store.RestoreProfile(ctx, profile.ID))

		back, err := f.store.GetProfile(ctx, profile.ID)
		require.NoError(t, err)
		require.NotNil(t, back)

		emails, err = f.store.ListEmails(ctx, profile.ID, domain.EntityTypeUser)
		require.NoError(t, err)
		assert.Len(t, emails, 1)
	})

	t.Run("onboarding advances through the steps", func(t *testing.T) {
		first := domain.OnboardingSteps[0]
		onboarding, err := f.store.AdvanceOnboarding(ctx, profile.ID, first, nil)
		require.NoError(t, err)
		assert.Contains(t, []string(onboarding.CompletedSteps), first)
		assert.False(t, onboarding.IsCompleted)

		for _, step := range domain.OnboardingSteps[1:] {
			onboarding, err = f.store.AdvanceOnboarding(ctx, profile.ID, step, nil)
			require.NoError(t, err)
		}
		assert.True(t, onboarding.IsCompleted)
		assert.NotNil(t, onboarding.CompletedAt)

		_, err = f.store.AdvanceOnboarding(ctx, profile.ID, "not_a_step", nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

// =============================================================================
// Test: Table invariants
// =============================================================================

func testTableInvariants(t *testing.T, f *fixture) {
	ctx := context.Background()

	// rawWrite runs fn in a savepoint so a rejected statement leaves the
	// fixture transaction usable
	rawWrite := func(fn func(tx *gorm.DB) error) error {
		return translateError(f.db.Transaction(fn))
	}

	t.Run("deleted_at without deleted_by is rejected", func(t *testing.T) {
		contact := f.newContact(t, nil, "Noether")

		// Service mode has no session user to stamp deleted_by with
		err := rawWrite(func(tx *gorm.DB) error {
			return tx.Exec("UPDATE crm_contacts SET deleted_at = now() WHERE id = ?", contact.ID).Error
		})
		assert.ErrorIs(t, err, domain.ErrConstraintViolation)
		assert.Equal(t, "valid_deletion", ConstraintName(err))
	})

	t.Run("a user holds one live profile", func(t *testing.T) {
		user := f.newUser(t, "twice@example.com")
		f.newProfile(t, user, "first_one", "twice@example.com")

		_, err := f.store.CreateProfile(asActor(user), CreateProfileInput{
			UserID:      &user,
			ProfileType: domain.EntityTypeUser,
			Handle:      "second_one",
		})
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)

		// Service mode skips the policy and meets the unique index instead
		_, err = f.store.CreateProfile(ctx, CreateProfileInput{
			UserID:      &user,
			ProfileType: domain.EntityTypeUser,
			Handle:      "third_one",
		})
		assert.ErrorIs(t, err, domain.ErrDuplicate)
	})

	t.Run("self-delegation is rejected by the table", func(t *testing.T) {
		user := f.newUser(t, "mirror@example.com")
		manager, err := f.store.GetRoleByName(ctx, "manager")
		require.NoError(t, err)
		require.NotNil(t, manager)

		err = rawWrite(func(tx *gorm.DB) error {
			return create(tx, &schema.RoleDelegation{
				DelegatorID: user,
				DelegateID:  user,
				RoleID:      manager.ID,
				ValidUntil:  time.Now().UTC().Add(time.Hour),
			})
		})
		assert.ErrorIs(t, err, domain.ErrSelfDelegation)
		assert.Equal(t, "no_self_delegation", ConstraintName(err))
	})

	t.Run("a soft-deleted profile frees its handle", func(t *testing.T) {
		first := f.newUser(t, "first.holder@example.com")
		profile := f.newProfile(t, first, "Hand_Me_Down", "first.holder@example.com")
		require.NoError(t, f.store.SoftDeleteProfile(ctx, profile.ID))

		second := f.newUser(t, "second.holder@example.com")
		reused := f.newProfile(t, second, "hand_me_down", "second.holder@example.com")
		assert.NotEqual(t, profile.ID, reused.ID)

		// The handle is live again, so the old profile cannot come back
		err := f.store.RestoreProfile(ctx, profile.ID)
		assert.ErrorIs(t, err, domain.ErrDuplicate)
	})
}

// =============================================================================
// Test: Polymorphic contact details
// =============================================================================

func testContactDetails(t *testing.T, f *fixture) {
	ctx := context.Background()
	userID := f.newUser(t, "grace@example.com")
	profile := f.newProfile(t, userID, "grace", "grace@example.com")
	isPrimary := func(e schema.EntityEmail) bool { return e.IsPrimary }

	t.Run("a new primary email demotes the old one", func(t *testing.T) {
		work, err := f.store.AddEmail(ctx, AddEmailInput{
			EntityID:   profile.ID,
			EntityType: domain.EntityTypeUser,
			Email:      "grace@navy.mil",
			EmailType:  domain.EmailTypeWork,
		})
		require.NoError(t, err)
		assert.False(t, work.IsPrimary)

		billing, err := f.store.AddEmail(ctx, AddEmailInput{
			EntityID:   profile.ID,
			EntityType: domain.EntityTypeUser,
			Email:      "billing@navy.mil",
			EmailType:  domain.EmailTypeBilling,
			IsPrimary:  true,
		})
		require.NoError(t, err)
		assert.True(t, billing.IsPrimary)

		emails, err := f.store.ListEmails(ctx, profile.ID, domain.EntityTypeUser)
		require.NoError(t, err)
		require.Len(t, emails, 3)
		assert.Equal(t, 1, countPrimary(emails, isPrimary))
		assert.Equal(t, billing.ID, emails[0].ID)

		promoted, err := f.store.SetPrimaryEmail(ctx, work.ID)
		require.NoError(t, err)
		assert.True(t, promoted.IsPrimary)

		emails, err = f.store.ListEmails(ctx, profile.ID, domain.EntityTypeUser)
		require.NoError(t, err)
		assert.Equal(t, 1, countPrimary(emails, isPrimary))
		assert.Equal(t, work.ID, emails[0].ID)
	})

	t.Run("first phone is primary", func(t *testing.T) {
		phone, err := f.store.AddPhone(ctx, AddPhoneInput{
			EntityID:    profile.ID,
			EntityType:  domain.EntityTypeUser,
			Phone:       "+14155550100",
		})
		require.NoError(t, err)
		assert.True(t, phone.IsPrimary)

		require.NoError(t, f.store.RemovePhone(ctx, phone.ID))
		phones, err := f.store.ListPhones(ctx, profile.ID, domain.EntityTypeUser)
		require.NoError(t, err)
		assert.Empty(t, phones)
	})

	t.Run("verify email stamps verified_at", func(t *testing.T) {
		emails, err := f.store.ListEmails(ctx, profile.ID, domain.EntityTypeUser)
		require.NoError(t, err)
		require.NotEmpty(t, emails)

		verified, err := f.store.VerifyEmail(ctx, emails[0].ID)
		require.NoError(t, err)
		assert.True(t, verified.IsVerified)
		assert.NotNil(t, verified.VerifiedAt)
	})

	t.Run("owner is required", func(t *testing.T) {
		_, err := f.store.AddEmail(ctx, AddEmailInput{EntityType: domain.EntityTypeUser, Email: "x@example.com"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("ownership resolves for every entity type", func(t *testing.T) {
		got, err := f.store.GetEntityOwnership(ctx, domain.EntityTypeUser, profile.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, &userID, got.OwnerID)
		assert.Nil(t, got.AssignedTo)

		// A user profile is not a vendor
		got, err = f.store.GetEntityOwnership(ctx, domain.EntityTypeVendor, profile.ID)
		require.NoError(t, err)
		assert.Nil(t, got)

		assignee := f.newUser(t, "assignee@example.com")
		contact := &schema.CRMContact{
			Ownership: schema.Ownership{OwnerID: &userID, AssignedTo: &assignee},
			LastName:  "Hopper",
		}
		require.NoError(t, NewRepository[schema.CRMContact](f.db).Create(ctx, contact))
		got, err = f.store.GetEntityOwnership(ctx, domain.EntityTypeContact, contact.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, &userID, got.OwnerID)
		assert.Equal(t, &assignee, got.AssignedTo)

		board, err := f.store.CreateBoard(ctx, CreateBoardInput{Name: "Owned"})
		require.NoError(t, err)
		list, err := f.store.CreateList(ctx, board.ID, "Todo", nil)
		require.NoError(t, err)
		task, err := f.store.CreateTask(ctx, CreateTaskInput{ListID: list.ID, Title: "Follow up"})
		require.NoError(t, err)
		got, err = f.store.GetEntityOwnership(ctx, domain.EntityTypeTask, task.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Nil(t, got.AssignedTo)

		got, err = f.store.GetEntityOwnership(ctx, domain.EntityTypeQuote, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, got)

		_, err = f.store.GetEntityOwnership(ctx, "planet", uuid.New())
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

// =============================================================================
// Test: Row level security
// =============================================================================

func testRowLevelSecurity(t *testing.T, f *fixture) {
	owner := f.newUser(t, "owner@example.com")
	member := f.newUser(t, "member@example.com")
	admin := f.newUser(t, "admin@example.com")
	f.grantRole(t, member, "member", GrantWindow{})
	f.grantRole(t, admin, "admin", GrantWindow{})

	contacts := NewRepository[schema.CRMContact](f.db)
	contact := &schema.CRMContact{LastName: "Babbage"}
	require.NoError(t, contacts.Create(asActor(owner), contact))
	require.NotNil(t, contact.OwnerID)
	assert.Equal(t, owner, *contact.OwnerID)

	t.Run("members cannot see or change other users' contacts", func(t *testing.T) {
		got, err := contacts.Get(asActor(member), contact.ID)
		require.NoError(t, err)
		assert.Nil(t, got)

		_, err = contacts.Update(asActor(member), contact.ID, contact.Version, map[string]any{"notes": "mine now"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("admins see every contact", func(t *testing.T) {
		got, err := contacts.Get(asActor(admin), contact.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, contact.ID, got.ID)
	})

	t.Run("team assignment grants access", func(t *testing.T) {
		_, err := f.store.AssignTeam(asActor(owner), member, contact.ID, domain.EntityTypeContact, "member")
		require.NoError(t, err)

		got, err := contacts.Get(asActor(member), contact.ID)
		require.NoError(t, err)
		assert.NotNil(t, got)

		isMember, err := f.store.IsTeamMember(context.Background(), member, contact.ID, domain.EntityTypeContact)
		require.NoError(t, err)
		assert.True(t, isMember)
	})

	t.Run("inserting for another owner is refused", func(t *testing.T) {
		err := contacts.Create(asActor(member), &schema.CRMContact{
			Ownership: schema.Ownership{OwnerID: &owner},
			LastName:  "Forged",
		})
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})

	t.Run("expired role grants confer nothing", func(t *testing.T) {
		expired := f.newUser(t, "expired@example.com")
		now := time.Now().UTC()
		f.grantRole(t, expired, "admin", GrantWindow{
			ValidFrom:  ptr(now.Add(-2 * time.Hour)),
			ValidUntil: ptr(now.Add(-time.Hour)),
		})

		got, err := contacts.Get(asActor(expired), contact.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

// =============================================================================
// Test: RBAC
// =============================================================================

func testRBAC(t *testing.T, f *fixture) {
	ctx := context.Background()

	t.Run("system roles are seeded with their hierarchy", func(t *testing.T) {
		admin, err := f.store.GetRoleByName(ctx, "admin")
		require.NoError(t, err)
		require.NotNil(t, admin)
		require.NotNil(t, admin.ParentRoleID)

		manager, err := f.store.GetRoleByName(ctx, "manager")
		require.NoError(t, err)
		assert.Equal(t, manager.ID, *admin.ParentRoleID)
	})

	t.Run("permission catalog sync is idempotent", func(t *testing.T) {
		permissions := []CreatePermissionInput{
			{Resource: "widgets", Action: domain.PermissionActionRead, Scope: domain.PermissionScopeOwn},
			{Resource: "widgets", Action: domain.PermissionActionManage, Scope: domain.PermissionScopeGlobal},
		}
		grants := map[string][]domain.PermissionName{
			"member": {"widgets:read"},
			"admin":  {"widgets:manage"},
		}

		result, err := f.store.SyncPermissionCatalog(ctx, permissions, grants)
		require.NoError(t, err)
		assert.Equal(t, 2, result.PermissionsCreated)
		assert.Equal(t, 2, result.GrantsCreated)

		result, err = f.store.SyncPermissionCatalog(ctx, permissions, grants)
		require.NoError(t, err)
		assert.Zero(t, result.PermissionsCreated)
		assert.Zero(t, result.GrantsCreated)

		member, err := f.store.GetRoleByName(ctx, "member")
		require.NoError(t, err)
		rolePermissions, err := f.store.ListRolePermissionGrants(ctx, []uuid.UUID{member.ID})
		require.NoError(t, err)

		var names []domain.PermissionName
		for _, rp := range rolePermissions {
			names = append(names, domain.PermissionName(rp.Permission.Name))
		}
		assert.Contains(t, names, domain.PermissionName("widgets:read"))
	})

	t.Run("unknown roles in the catalog are rejected", func(t *testing.T) {
		_, err := f.store.SyncPermissionCatalog(ctx, nil, map[string][]domain.PermissionName{
			"no_such_role": {"widgets:read"},
		})
		assert.Error(t, err)
	})

	t.Run("revoked roles can be granted again", func(t *testing.T) {
		user := f.newUser(t, "regrant@example.com")
		grant := f.grantRole(t, user, "viewer", GrantWindow{})
		assert.Equal(t, domain.GrantStatusActive, grant.Status)

		require.NoError(t, f.store.RevokeRole(ctx, user, grant.RoleID))
		grants, err := f.store.ListUserRoleGrants(ctx, user)
		require.NoError(t, err)
		assert.Empty(t, grants)

		f.grantRole(t, user, "viewer", GrantWindow{})
		grants, err = f.store.ListUserRoleGrants(ctx, user)
		require.NoError(t, err)
		assert.Len(t, grants, 1)
	})

	t.Run("grants requiring approval start pending", func(t *testing.T) {
		user := f.newUser(t, "pending@example.com")
		grant := f.grantRole(t, user, "manager", GrantWindow{RequiresApproval: true})
		assert.Equal(t, domain.GrantStatusPending, grant.Status)

		approved, err := f.store.ApproveUserRole(ctx, grant.ID, true)
		require.NoError(t, err)
		assert.Equal(t, domain.GrantStatusActive, approved.Status)
	})

	t.Run("delegations", func(t *testing.T) {
		delegator := f.newUser(t, "delegator@example.com")
		delegate := f.newUser(t, "delegate@example.com")
		third := f.newUser(t, "third@example.com")
		manager, err := f.store.GetRoleByName(ctx, "manager")
		require.NoError(t, err)
		until := time.Now().UTC().Add(24 * time.Hour)

		_, err = f.store.CreateDelegation(ctx, CreateDelegationInput{
			DelegatorID: delegator,
			DelegateID:  delegator,
			RoleID:      manager.ID,
			ValidUntil:  until,
		})
		assert.ErrorIs(t, err, domain.ErrSelfDelegation)

		root, err := f.store.CreateDelegation(ctx, CreateDelegationInput{
			DelegatorID: delegator,
			DelegateID:  delegate,
			RoleID:      manager.ID,
			ValidUntil:  until,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.DelegationStatusActive, root.Status)

		_, err = f.store.CreateDelegation(ctx, CreateDelegationInput{
			DelegatorID:        delegate,
			DelegateID:         third,
			RoleID:             manager.ID,
			ParentDelegationID: &root.ID,
			ValidUntil:         until,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "root delegation cannot be re-delegated")

		revoked, err := f.store.RevokeDelegation(ctx, root.ID, "rotation")
		require.NoError(t, err)
		assert.Equal(t, domain.DelegationStatusRevoked, revoked.Status)
		assert.NotNil(t, revoked.RevokedAt)
	})
}

// =============================================================================
// Test: Audit trail
// =============================================================================

func testAuditTrail(t *testing.T, f *fixture) {
	ctx := context.Background()
	contacts := NewRepository[schema.CRMContact](f.db)

	contact := f.newContact(t, nil, "Turing")
	updated, err := contacts.Update(ctx, contact.ID, contact.Version, map[string]any{"job_title": "Mathematician"})
	require.NoError(t, err)
	assert.Equal(t, contact.Version+1, updated.Version)
	require.NoError(t, contacts.SoftDelete(ctx, contact.ID))

	t.Run("every change is recorded in commit order", func(t *testing.T) {
		logs, err := f.store.ListAuditLogs(ctx, "crm_contacts", contact.ID, Pagination{})
		require.NoError(t, err)
		require.Len(t, logs, 3)

		assert.Equal(t, domain.AuditActionInsert, logs[0].Action)
		assert.Equal(t, domain.AuditActionUpdate, logs[1].Action)
		assert.Equal(t, domain.AuditActionSoftDelete, logs[2].Action)
		assert.Less(t, logs[0].Seq, logs[1].Seq)
		assert.Less(t, logs[1].Seq, logs[2].Seq)
		assert.Contains(t, string(logs[1].Changes), "Mathematician")
	})

	t.Run("rows of an open transaction are held back from the relay", func(t *testing.T) {
		logs, err := f.store.ListAuditLogs(ctx, "crm_contacts", contact.ID, Pagination{})
		require.NoError(t, err)
		require.NotEmpty(t, logs)
		assert.NotZero(t, logs[0].TxID)

		// The fixture transaction is still open, so its rows are not settled
		after, err := f.store.ListAuditLogsAfter(ctx, schema.AuditCursor{TxID: logs[0].TxID - 1}, 1000)
		require.NoError(t, err)
		for _, row := range after {
			assert.NotEqual(t, logs[0].TxID, row.TxID)
		}
	})

	t.Run("soft-deleted rows are hidden and restorable", func(t *testing.T) {
		got, err := contacts.Get(ctx, contact.ID)
		require.NoError(t, err)
		assert.Nil(t, got)

		all, err := contacts.List(ctx, ListOptions{IncludeDeleted: true, Filters: map[string]any{"id": contact.ID}})
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.NotNil(t, all[0].DeletedAt)
		assert.NotNil(t, all[0].DeletedBy)

		require.NoError(t, contacts.Restore(ctx, contact.ID))
		got, err = contacts.Get(ctx, contact.ID)
		require.NoError(t, err)
		assert.NotNil(t, got)
	})

	t.Run("security events filter by severity", func(t *testing.T) {
		user := f.newUser(t, "audited@example.com")
		_, err := f.store.RecordSecurityEvent(ctx, RecordSecurityEventInput{
			UserID:    &user,
			EventType: domain.SecurityEventTypeLoginFailure,
			Severity:  domain.SeverityLevelLow,
		})
		require.NoError(t, err)
		_, err = f.store.RecordSecurityEvent(ctx, RecordSecurityEventInput{
			UserID:    &user,
			EventType: domain.SecurityEventTypeSuspiciousActivity,
			Severity:  domain.SeverityLevelHigh,
		})
		require.NoError(t, err)

		events, err := f.store.ListSecurityEvents(ctx, SecurityEventFilter{UserID: &user, MinSeverity: domain.SeverityLevelMedium})
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, domain.SeverityLevelHigh, events[0].Severity)
	})
}

// =============================================================================
// Test: Cursors
// =============================================================================

func testAuditCursor(t *testing.T, f *fixture) {
	ctx := context.Background()

	t.Run("get non-existent cursor returns zero", func(t *testing.T) {
		cursor, err := f.store.GetAuditCursor(ctx, "relay")
		require.NoError(t, err)
		assert.Zero(t, cursor)
	})

	t.Run("set and update cursor", func(t *testing.T) {
		require.NoError(t, f.store.SetAuditCursor(ctx, "relay", schema.AuditCursor{TxID: 812, Seq: 42}))
		cursor, err := f.store.GetAuditCursor(ctx, "relay")
		require.NoError(t, err)
		assert.Equal(t, schema.AuditCursor{TxID: 812, Seq: 42}, cursor)

		require.NoError(t, f.store.SetAuditCursor(ctx, "relay", schema.AuditCursor{TxID: 815, Seq: 40}))
		cursor, err = f.store.GetAuditCursor(ctx, "relay")
		require.NoError(t, err)
		assert.Equal(t, schema.AuditCursor{TxID: 815, Seq: 40}, cursor)
	})

	t.Run("malformed cursor is an error", func(t *testing.T) {
		require.NoError(t, f.store.(*pgStore).SetKeyValue(ctx, auditCursorKey("broken"), "42"))
		_, err := f.store.GetAuditCursor(ctx, "broken")
		assert.Error(t, err)
	})
}

// =============================================================================
// Test: CRM
// =============================================================================

func testCRM(t *testing.T, f *fixture) {
	ctx := context.Background()

	t.Run("convert lead creates a contact and an opportunity", func(t *testing.T) {
		lead := &schema.CRMLead{
			FirstName:      ptr("Grace"),
			LastName:       "Hopper",
			Email:          ptr("grace@navy.mil"),
			EstimatedValue: ptr(5000.0),
		}
		require.NoError(t, NewRepository[schema.CRMLead](f.db).Create(ctx, lead))

		_, err := f.store.ConvertLead(ctx, ConvertLeadInput{LeadID: lead.ID, Version: lead.Version + 1})
		assert.ErrorIs(t, err, domain.ErrVersionConflict)

		result, err := f.store.ConvertLead(ctx, ConvertLeadInput{
			LeadID:            lead.ID,
			Version:           lead.Version,
			CreateOpportunity: true,
			OpportunityName:   "Compiler licences",
		})
		require.NoError(t, err)
		require.NotNil(t, result.Contact)
		require.NotNil(t, result.Opportunity)

		assert.Equal(t, domain.LeadStatusConverted, result.Lead.Status)
		assert.NotNil(t, result.Lead.ConvertedAt)
		assert.Equal(t, result.Contact.ID, *result.Lead.ConvertedContactID)
		assert.Equal(t, result.Opportunity.ID, *result.Lead.ConvertedOpportunityID)
		assert.Equal(t, "Grace Hopper", result.Contact.FullName)
		assert.Equal(t, domain.ContactTypeCustomer, result.Contact.ContactType)
		assert.Equal(t, 5000.0, result.Opportunity.Amount)
		assert.Equal(t, domain.OpportunityStageProspecting, result.Opportunity.Stage)
		assert.NotNil(t, result.Opportunity.PipelineID)

		emails, err := f.store.ListEmails(ctx, result.Contact.ID, domain.EntityTypeContact)
		require.NoError(t, err)
		require.Len(t, emails, 1)
		assert.True(t, emails[0].IsPrimary)

		_, err = f.store.ConvertLead(ctx, ConvertLeadInput{LeadID: lead.ID, Version: result.Lead.Version})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		won, err := f.store.MoveOpportunityStage(ctx, result.Opportunity.ID, result.Opportunity.Version, domain.OpportunityStageClosedWon, nil)
		require.NoError(t, err)
		assert.NotNil(t, won.ClosedAt)
		assert.Equal(t, 100.0, won.Probability)
		assert.Equal(t, 5000.0, won.ExpectedRevenue)

		reopened, err := f.store.MoveOpportunityStage(ctx, won.ID, won.Version, domain.OpportunityStageNegotiation, ptr(60.0))
		require.NoError(t, err)
		assert.Nil(t, reopened.ClosedAt)
		assert.Equal(t, 3000.0, reopened.ExpectedRevenue)
	})

	t.Run("quote items recompute the subtotal", func(t *testing.T) {
		product := &schema.CRMProduct{SKU: "WID-1", Name: "Widget", UnitPrice: 25}
		require.NoError(t, NewRepository[schema.CRMProduct](f.db).Create(ctx, product))

		quotes := NewRepository[schema.CRMQuote](f.db)
		quote := &schema.CRMQuote{QuoteNumber: "Q-1001", TaxAmount: 10}
		require.NoError(t, quotes.Create(ctx, quote))

		got, err := f.store.AddQuoteItem(ctx, AddQuoteItemInput{QuoteID: quote.ID, ProductID: &product.ID, Quantity: 2})
		require.NoError(t, err)
		require.Len(t, got.Items, 1)
		assert.Equal(t, "Widget", got.Items[0].Description)
		assert.Equal(t, 25.0, got.Items[0].UnitPrice)
		assert.Equal(t, 50.0, got.Items[0].LineTotal)

		got, err = f.store.AddQuoteItem(ctx, AddQuoteItemInput{
			QuoteID:     quote.ID,
			Description: "Installation",
			Quantity:    1,
			UnitPrice:   ptr(100.0),
		})
		require.NoError(t, err)
		require.Len(t, got.Items, 2)
		assert.Equal(t, 0, got.Items[0].Position)
		assert.Equal(t, 1, got.Items[1].Position)
		assert.Equal(t, 150.0, got.Subtotal)
		assert.Equal(t, 160.0, got.TotalAmount)

		_, err = quotes.Update(ctx, quote.ID, got.Version, map[string]any{"status": domain.QuoteStatusSent})
		require.NoError(t, err)

		_, err = f.store.AddQuoteItem(ctx, AddQuoteItemInput{QuoteID: quote.ID, Description: "Late", Quantity: 1, UnitPrice: ptr(1.0)})
		assert.ErrorIs(t, err, domain.ErrImmutable)
	})

	t.Run("notes and relationships", func(t *testing.T) {
		a := f.newContact(t, nil, "Noether")
		b := f.newContact(t, nil, "Hilbert")

		note, err := f.store.AddNote(ctx, AddNoteInput{EntityID: a.ID, EntityType: domain.EntityTypeContact, Content: "Met at the conference"})
		require.NoError(t, err)
		notes, err := f.store.ListNotes(ctx, a.ID, domain.EntityTypeContact)
		require.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Equal(t, note.ID, notes[0].ID)

		_, err = f.store.LinkEntities(ctx, LinkEntitiesInput{
			SourceID:         a.ID,
			SourceType:       domain.EntityTypeContact,
			TargetID:         b.ID,
			TargetType:       domain.EntityTypeContact,
			RelationshipType: domain.RelationshipTypePartner,
		})
		require.NoError(t, err)

		_, err = f.store.LinkEntities(ctx, LinkEntitiesInput{
			SourceID:         a.ID,
			SourceType:       domain.EntityTypeContact,
			TargetID:         a.ID,
			TargetType:       domain.EntityTypeContact,
			RelationshipType: domain.RelationshipTypeOther,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("repository rejects unknown columns", func(t *testing.T) {
		contacts := NewRepository[schema.CRMContact](f.db)
		_, err := contacts.List(ctx, ListOptions{Filters: map[string]any{"no_such_column": 1}})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, err = contacts.List(ctx, ListOptions{OrderBy: "last_name; DROP TABLE crm_contacts"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		contact := f.newContact(t, nil, "Curie")
		_, err = contacts.Update(ctx, contact.ID, contact.Version, map[string]any{"version": 99})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

// =============================================================================
// Test: Tasks
// =============================================================================

func testTasks(t *testing.T, f *fixture) {
	ctx := context.Background()

	board, err := f.store.CreateBoard(ctx, CreateBoardInput{Name: "Launch"})
	require.NoError(t, err)
	backlog, err := f.store.CreateList(ctx, board.ID, "Backlog", nil)
	require.NoError(t, err)
	doing, err := f.store.CreateList(ctx, board.ID, "Doing", ptr(1))
	require.NoError(t, err)
	assert.Equal(t, 0, backlog.Position)
	assert.Equal(t, 1, doing.Position)

	newTask := func(t *testing.T, listID uuid.UUID, title string) *schema.Task {
		task, err := f.store.CreateTask(ctx, CreateTaskInput{ListID: listID, Title: title})
		require.NoError(t, err)
		return task
	}

	t.Run("WIP limit caps open tasks in a list", func(t *testing.T) {
		first := newTask(t, doing.ID, "Write announcement")
		assert.Equal(t, board.ID, first.BoardID)

		_, err := f.store.CreateTask(ctx, CreateTaskInput{ListID: doing.ID, Title: "Over the limit"})
		assert.ErrorIs(t, err, domain.ErrConstraintViolation)

		queued := newTask(t, backlog.ID, "Queued")
		_, err = f.store.MoveTask(ctx, queued.ID, queued.Version, doing.ID, 0)
		assert.ErrorIs(t, err, domain.ErrConstraintViolation)
	})

	t.Run("moving shifts positions", func(t *testing.T) {
		a := newTask(t, backlog.ID, "A")
		b := newTask(t, backlog.ID, "B")

		moved, err := f.store.MoveTask(ctx, b.ID, b.Version, backlog.ID, 0)
		require.NoError(t, err)
		assert.Equal(t, 0, moved.Position)

		tasks, err := f.store.ListTasks(ctx, TaskFilter{ListID: &backlog.ID})
		require.NoError(t, err)
		require.NotEmpty(t, tasks)
		assert.Equal(t, b.ID, tasks[0].ID)

		var positionOfA int
		for _, task := range tasks {
			if task.ID == a.ID {
				positionOfA = task.Position
			}
		}
		assert.Greater(t, positionOfA, 0)
	})

	t.Run("dependencies refuse cycles and gate completion", func(t *testing.T) {
		design := newTask(t, backlog.ID, "Design")
		build := newTask(t, backlog.ID, "Build")
		ship := newTask(t, backlog.ID, "Ship")

		_, err := f.store.AddDependency(ctx, build.ID, design.ID, domain.DependencyTypeFinishToStart)
		require.NoError(t, err)
		_, err = f.store.AddDependency(ctx, ship.ID, build.ID, domain.DependencyTypeFinishToStart)
		require.NoError(t, err)

		_, err = f.store.AddDependency(ctx, design.ID, ship.ID, domain.DependencyTypeFinishToStart)
		assert.ErrorIs(t, err, domain.ErrDependencyCycle)
		_, err = f.store.AddDependency(ctx, design.ID, design.ID, domain.DependencyTypeFinishToStart)
		assert.ErrorIs(t, err, domain.ErrDependencyCycle)

		_, err = f.store.CompleteTask(ctx, build.ID, build.Version)
		assert.ErrorIs(t, err, domain.ErrConstraintViolation)

		done, err := f.store.CompleteTask(ctx, design.ID, design.Version)
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusDone, done.Status)
		assert.NotNil(t, done.CompletedAt)

		_, err = f.store.CompleteTask(ctx, build.ID, build.Version)
		require.NoError(t, err)
	})

	t.Run("time entries and assignees", func(t *testing.T) {
		user := f.newUser(t, "worker@example.com")
		task := newTask(t, backlog.ID, "Tracked")

		_, err := f.store.AssignTask(ctx, task.ID, user, "")
		require.NoError(t, err)
		assigned, err := f.store.ListTasks(ctx, TaskFilter{AssigneeID: &user})
		require.NoError(t, err)
		require.Len(t, assigned, 1)
		assert.Equal(t, task.ID, assigned[0].ID)

		start := time.Now().UTC().Add(-90 * time.Minute)
		entry, err := f.store.LogTime(ctx, LogTimeInput{TaskID: task.ID, UserID: &user, StartedAt: start, EndedAt: start.Add(45 * time.Minute)})
		require.NoError(t, err)
		assert.Equal(t, 45, entry.DurationMinutes)

		_, err = f.store.LogTime(ctx, LogTimeInput{TaskID: task.ID, UserID: &user, StartedAt: start, EndedAt: start.Add(-time.Minute)})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

// =============================================================================
// Test: Inventory
// =============================================================================

func testInventory(t *testing.T, f *fixture) {
	ctx := context.Background()
	item := &schema.InventoryItem{SKU: "BOLT-1", Name: "Bolt", UnitCost: 0.5}
	require.NoError(t, NewRepository[schema.InventoryItem](f.db).Create(ctx, item))

	t.Run("movements keep stock non-negative", func(t *testing.T) {
		_, updated, err := f.store.RecordInventoryTransaction(ctx, RecordInventoryTransactionInput{
			ItemID:          item.ID,
			TransactionType: domain.InventoryTransactionTypeReceipt,
			Quantity:        10,
		})
		require.NoError(t, err)
		assert.Equal(t, 10.0, updated.QuantityOnHand)
		assert.Equal(t, 10.0, updated.QuantityAvailable)

		_, _, err = f.store.RecordInventoryTransaction(ctx, RecordInventoryTransactionInput{
			ItemID:          item.ID,
			TransactionType: domain.InventoryTransactionTypeIssue,
			Quantity:        4,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "issues are negative")

		_, _, err = f.store.RecordInventoryTransaction(ctx, RecordInventoryTransactionInput{
			ItemID:          item.ID,
			TransactionType: domain.InventoryTransactionTypeIssue,
			Quantity:        -15,
		})
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)

		movement, updated, err := f.store.RecordInventoryTransaction(ctx, RecordInventoryTransactionInput{
			ItemID:          item.ID,
			TransactionType: domain.InventoryTransactionTypeIssue,
			Quantity:        -4,
		})
		require.NoError(t, err)
		assert.Equal(t, 6.0, updated.QuantityOnHand)
		assert.Equal(t, -4.0, movement.Quantity)

		ledger, err := f.store.ListInventoryTransactions(ctx, item.ID, Pagination{})
		require.NoError(t, err)
		assert.Len(t, ledger, 2)
	})

	t.Run("purchase orders are received into stock", func(t *testing.T) {
		order, err := f.store.CreatePurchaseOrder(ctx, CreatePurchaseOrderInput{
			PONumber:       "PO-1",
			ShippingAmount: 5,
			Items:          []PurchaseOrderItemInput{{ItemID: item.ID, QuantityOrdered: 5, UnitCost: 0.5}},
		})
		require.NoError(t, err)
		assert.Equal(t, domain.PurchaseOrderStatusDraft, order.Status)
		assert.Equal(t, 2.5, order.Subtotal)
		assert.Equal(t, 7.5, order.TotalAmount)
		require.Len(t, order.Items, 1)

		_, err = f.store.ReceivePurchaseOrder(ctx, order.ID, nil)
		assert.ErrorIs(t, err, domain.ErrImmutable)

		_, err = NewRepository[schema.PurchaseOrder](f.db).Update(ctx, order.ID, order.Version,
			map[string]any{"status": domain.PurchaseOrderStatusApproved})
		require.NoError(t, err)

		_, err = f.store.ReceivePurchaseOrder(ctx, order.ID, map[uuid.UUID]float64{order.Items[0].ID: 9})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		partial, err := f.store.ReceivePurchaseOrder(ctx, order.ID, map[uuid.UUID]float64{order.Items[0].ID: 2})
		require.NoError(t, err)
		assert.Equal(t, domain.PurchaseOrderStatusPartiallyReceived, partial.Status)
		assert.Equal(t, 2.0, partial.Items[0].QuantityReceived)
		assert.Nil(t, partial.ReceivedAt)

		received, err := f.store.ReceivePurchaseOrder(ctx, order.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, domain.PurchaseOrderStatusReceived, received.Status)
		assert.NotNil(t, received.ReceivedAt)

		stock, err := NewRepository[schema.InventoryItem](f.db).Get(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, 11.0, stock.QuantityOnHand)
	})

	t.Run("sync state", func(t *testing.T) {
		pending, err := f.store.ListPendingSync(ctx, SyncTableInventoryItems, 10)
		require.NoError(t, err)
		assert.Contains(t, pending, item.ID)

		require.NoError(t, f.store.MarkSyncFailed(ctx, SyncTableInventoryItems, item.ID, "timeout"))
		require.NoError(t, f.store.MarkSynced(ctx, SyncTableInventoryItems, item.ID, "ext-42"))

		pending, err = f.store.ListPendingSync(ctx, SyncTableInventoryItems, 10)
		require.NoError(t, err)
		assert.NotContains(t, pending, item.ID)

		err = f.store.MarkSynced(ctx, SyncTable("profiles"), item.ID, "ext-42")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

// =============================================================================
// Test: Accounting
// =============================================================================

func testAccounting(t *testing.T, f *fixture) {
	ctx := context.Background()
	accounts := NewRepository[schema.Account](f.db)
	cash := &schema.Account{Code: "1000", Name: "Cash", Category: domain.AccountCategoryAsset, IsActive: true}
	sales := &schema.Account{Code: "4000", Name: "Sales", Category: domain.AccountCategoryRevenue, NormalBalance: "credit", IsActive: true}
	require.NoError(t, accounts.Create(ctx, cash))
	require.NoError(t, accounts.Create(ctx, sales))

	t.Run("only balanced entries post", func(t *testing.T) {
		entry, err := f.store.CreateJournalEntry(ctx, CreateJournalEntryInput{
			EntryNumber: "JE-1",
			Lines: []JournalLineInput{
				{AccountID: cash.ID, Debit: 100},
				{AccountID: sales.ID, Credit: 90},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, domain.JournalEntryStatusDraft, entry.Status)
		require.Len(t, entry.Lines, 2)

		_, err = f.store.PostJournalEntry(ctx, entry.ID, entry.Version)
		assert.ErrorIs(t, err, domain.ErrUnbalancedEntry)

		entry, err = f.store.AddJournalLine(ctx, entry.ID, JournalLineInput{AccountID: sales.ID, Credit: 10})
		require.NoError(t, err)
		require.Len(t, entry.Lines, 3)
		assert.Equal(t, 3, entry.Lines[2].LineNumber)

		posted, err := f.store.PostJournalEntry(ctx, entry.ID, entry.Version)
		require.NoError(t, err)
		assert.Equal(t, domain.JournalEntryStatusPosted, posted.Status)
		assert.NotNil(t, posted.PostedAt)

		_, err = f.store.AddJournalLine(ctx, entry.ID, JournalLineInput{AccountID: cash.ID, Debit: 1})
		assert.ErrorIs(t, err, domain.ErrImmutable)

		voided, err := f.store.VoidJournalEntry(ctx, posted.ID, posted.Version, "entered twice")
		require.NoError(t, err)
		assert.Equal(t, domain.JournalEntryStatusVoid, voided.Status)
		assert.NotNil(t, voided.VoidedAt)
	})

	t.Run("lines are one-sided", func(t *testing.T) {
		_, err := f.store.CreateJournalEntry(ctx, CreateJournalEntryInput{
			EntryNumber: "JE-2",
			Lines:       []JournalLineInput{{AccountID: cash.ID, Debit: 5, Credit: 5}},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("draft entries cannot be voided", func(t *testing.T) {
		entry, err := f.store.CreateJournalEntry(ctx, CreateJournalEntryInput{EntryNumber: "JE-3"})
		require.NoError(t, err)

		_, err = f.store.VoidJournalEntry(ctx, entry.ID, entry.Version, "mistake")
		assert.Error(t, err)
	})

	t.Run("payments", func(t *testing.T) {
		payment, err := f.store.RecordPayment(ctx, RecordPaymentInput{
			PaymentNumber: "PAY-1",
			Amount:        100,
			Method:        domain.PaymentMethodBankTransfer,
			Status:        domain.PaymentStatusCompleted,
		})
		require.NoError(t, err)
		assert.NotNil(t, payment.PaidAt)
		assert.Equal(t, "USD", payment.Currency)

		_, err = f.store.RecordPayment(ctx, RecordPaymentInput{PaymentNumber: "PAY-2", Amount: -1, Method: domain.PaymentMethodCash})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		payments, err := f.store.ListPayments(ctx, PaymentFilter{Statuses: []domain.PaymentStatus{domain.PaymentStatusCompleted}})
		require.NoError(t, err)
		require.Len(t, payments, 1)
		assert.Equal(t, payment.ID, payments[0].ID)
	})
}

// =============================================================================
// Test: Search
// =============================================================================

func testSearch(t *testing.T, f *fixture) {
	ctx := context.Background()
	contact := &schema.CRMContact{FirstName: ptr("Ada"), LastName: "Lovelace", CompanyName: ptr("Analytical Engines")}
	require.NoError(t, NewRepository[schema.CRMContact](f.db).Create(ctx, contact))

	t.Run("ranks matches in one table", func(t *testing.T) {
		hits, err := f.store.Search(ctx, "crm_contacts", "lovelace", 10)
		require.NoError(t, err)
		require.NotEmpty(t, hits)
		assert.Equal(t, contact.ID, hits[0].ID)
		assert.Equal(t, "crm_contacts", hits[0].Table)
		assert.Equal(t, "Ada Lovelace", hits[0].Title)
		assert.Greater(t, hits[0].Rank, 0.0)
	})

	t.Run("fans out across CRM tables", func(t *testing.T) {
		hits, err := f.store.SearchCRM(ctx, "analytical engines", 10)
		require.NoError(t, err)

		var ids []uuid.UUID
		for _, hit := range hits {
			ids = append(ids, hit.ID)
		}
		assert.Contains(t, ids, contact.ID)
	})

	t.Run("rejects tables without a search vector", func(t *testing.T) {
		_, err := f.store.Search(ctx, "profiles", "ada", 10)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("empty query returns nothing", func(t *testing.T) {
		hits, err := f.store.Search(ctx, "crm_contacts", "   ", 10)
		require.NoError(t, err)
		assert.Empty(t, hits)
	})
}

// RunStoreTests runs all store tests, each in a fresh fixture
func RunStoreTests(t *testing.T, initDB func(t *testing.T) *fixture) {
	tests := []struct {
		name string
		fn   func(t *testing.T, f *fixture)
	}{
		{"Profiles", testProfiles},
		{"TableInvariants", testTableInvariants},
		{"ContactDetails", testContactDetails},
		{"RowLevelSecurity", testRowLevelSecurity},
		{"RBAC", testRBAC},
		{"AuditTrail", testAuditTrail},
		{"AuditCursor", testAuditCursor},
		{"CRM", testCRM},
		{"Tasks", testTasks},
		{"Inventory", testInventory},
		{"Accounting", testAccounting},
		{"Search", testSearch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, initDB(t))
		})
	}
}
