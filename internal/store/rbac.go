package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-crm/internal/domain"
	"github.com/feral-file/ff-crm/internal/store/schema"
)

// CreateRoleInput represents the input for creating a role
type CreateRoleInput struct {
	Name         string
	Description  *string
	RoleType     domain.RoleType
	ParentRoleID *uuid.UUID
	Priority     int
	IsSystem     bool
	Metadata     json.RawMessage
}

// CreatePermissionInput represents the input for creating a permission
type CreatePermissionInput struct {
	Resource         string
	Action           domain.PermissionAction
	Scope            domain.PermissionScope
	Description      *string
	Conditions       domain.PermissionConditions
	TimeRestrictions domain.TimeRestrictions
	IsSystem         bool
}

// GrantWindow carries the temporal and approval options of a grant
type GrantWindow struct {
	// ValidFrom defaults to now
	ValidFrom  *time.Time
	ValidUntil *time.Time
	// RequiresApproval creates the grant pending until approved
	RequiresApproval bool
}

// GrantPermissionInput represents the input for granting a permission to a role
type GrantPermissionInput struct {
	RoleID       uuid.UUID
	PermissionID uuid.UUID
	GrantWindow
}

// AssignRoleInput represents the input for assigning a role to a user
type AssignRoleInput struct {
	UserID uuid.UUID
	RoleID uuid.UUID
	// IsPrimary demotes the user's current primary role
	IsPrimary bool
	Reason    *string
	GrantWindow
}

// CreateDelegationInput represents the input for delegating a role
type CreateDelegationInput struct {
	DelegatorID uuid.UUID
	DelegateID  uuid.UUID
	RoleID      uuid.UUID
	// ParentDelegationID must name a re-delegatable delegation of the same
	// role to the delegator
	ParentDelegationID *uuid.UUID
	ValidFrom          *time.Time
	ValidUntil         time.Time
	CanRedelegate      bool
	RequiresApproval   bool
	Reason             *string
}

// CatalogSyncResult reports what SyncPermissionCatalog changed
type CatalogSyncResult struct {
	PermissionsCreated int
	GrantsCreated      int
}

func (w GrantWindow) apply(ctx context.Context, g *schema.Grant) error {
	if w.ValidFrom != nil {
		g.ValidFrom = w.ValidFrom.UTC()
	} else {
		g.ValidFrom = time.Now().UTC()
	}
	if w.ValidUntil != nil {
		if !w.ValidUntil.After(g.ValidFrom) {
			return fmt.Errorf("%w: valid_until must be after valid_from", domain.ErrInvalidInput)
		}
		until := w.ValidUntil.UTC()
		g.ValidUntil = &until
	}
	g.GrantedBy = actorRef(ctx)
	g.RequiresApproval = w.RequiresApproval
	if w.RequiresApproval {
		g.Status = domain.GrantStatusPending
		g.ApprovalStatus = domain.ApprovalStatusPending
	} else {
		g.Status = domain.GrantStatusActive
		g.ApprovalStatus = domain.ApprovalStatusApproved
	}
	return nil
}

// CreateRole inserts a role
func (s *pgStore) CreateRole(ctx context.Context, input CreateRoleInput) (*schema.Role, error) {
	if input.RoleType == "" {
		input.RoleType = domain.RoleTypeCustom
	}
	if !input.RoleType.Valid() {
		return nil, fmt.Errorf("%w: unknown role type %q", domain.ErrInvalidInput, input.RoleType)
	}
	if input.IsSystem && input.RoleType != domain.RoleTypeSystem {
		return nil, fmt.Errorf("%w: system roles must have role type system", domain.ErrInvalidInput)
	}

	role := schema.Role{
		Name:         input.Name,
		Description:  input.Description,
		RoleType:     input.RoleType,
		ParentRoleID: input.ParentRoleID,
		Priority:     input.Priority,
		IsSystem:     input.IsSystem,
		Metadata:     datatypes.JSON(input.Metadata),
	}
	role.CreatedBy = actorRef(ctx)

	err := s.write(ctx, func(tx *gorm.DB) error {
		if input.ParentRoleID != nil {
			if _, err := mustGetLive[schema.Role](tx, *input.ParentRoleID); err != nil {
				return fmt.Errorf("parent role: %w", err)
			}
		}
		return create(tx, &role)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create role: %w", err)
	}

	return &role, nil
}

// GetRoleByName retrieves a live role by name
func (s *pgStore) GetRoleByName(ctx context.Context, name string) (*schema.Role, error) {
	var role schema.Role
	err := s.read(ctx, func(tx *gorm.DB) error {
		return live(tx).Where("name = ?", name).First(&role).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	return &role, nil
}

// ListRoles returns every live role, highest priority first
func (s *pgStore) ListRoles(ctx context.Context) ([]schema.Role, error) {
	var roles []schema.Role
	err := s.read(ctx, func(tx *gorm.DB) error {
		return live(tx).Order("priority DESC, name ASC").Find(&roles).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

// CreatePermission inserts a permission named resource:action
func (s *pgStore) CreatePermission(ctx context.Context, input CreatePermissionInput) (*schema.Permission, error) {
	if input.Scope == "" {
		input.Scope = domain.PermissionScopeOwn
	}
	permission, err := newPermission(input)
	if err != nil {
		return nil, err
	}
	permission.CreatedBy = actorRef(ctx)

	err = s.write(ctx, func(tx *gorm.DB) error {
		return create(tx, permission)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create permission: %w", err)
	}

	return permission, nil
}

func newPermission(input CreatePermissionInput) (*schema.Permission, error) {
	name := domain.NewPermissionName(input.Resource, input.Action)
	if _, _, err := name.Parse(); err != nil {
		return nil, err
	}
	if !input.Scope.Valid() {
		return nil, fmt.Errorf("%w: unknown permission scope %q", domain.ErrInvalidInput, input.Scope)
	}
	if err := input.Conditions.Validate(); err != nil {
		return nil, err
	}
	if err := input.TimeRestrictions.Validate(); err != nil {
		return nil, err
	}

	return &schema.Permission{
		Name:             string(name),
		Resource:         input.Resource,
		Action:           input.Action,
		Scope:            input.Scope,
		Description:      input.Description,
		Conditions:       datatypes.NewJSONType(input.Conditions),
		TimeRestrictions: datatypes.NewJSONType(input.TimeRestrictions),
		IsSystem:         input.IsSystem,
	}, nil
}

// GetPermissionByName retrieves a live permission by its resource:action name
func (s *pgStore) GetPermissionByName(ctx context.Context, name domain.PermissionName) (*schema.Permission, error) {
	var permission schema.Permission
	err := s.read(ctx, func(tx *gorm.DB) error {
		return live(tx).Where("name = ?", string(name)).First(&permission).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get permission: %w", err)
	}
	return &permission, nil
}

// ListPermissions returns every live permission ordered by name
func (s *pgStore) ListPermissions(ctx context.Context) ([]schema.Permission, error) {
	var permissions []schema.Permission
	err := s.read(ctx, func(tx *gorm.DB) error {
		return live(tx).Order("name ASC").Find(&permissions).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}
	return permissions, nil
}

// GrantPermission grants a permission to a role
func (s *pgStore) GrantPermission(ctx context.Context, input GrantPermissionInput) (*schema.RolePermission, error) {
	grant := schema.RolePermission{
		RoleID:       input.RoleID,
		PermissionID: input.PermissionID,
	}
	if err := input.GrantWindow.apply(ctx, &grant.Grant); err != nil {
		return nil, err
	}
	grant.CreatedBy = actorRef(ctx)

	err := s.write(ctx, func(tx *gorm.DB) error {
		return create(tx, &grant)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to grant permission: %w", err)
	}

	return &grant, nil
}

// RevokePermission revokes a role's live grant of a permission. The row is
// kept soft-deleted for the audit trail so the pair can be granted again.
func (s *pgStore) RevokePermission(ctx context.Context, roleID, permissionID uuid.UUID) error {
	err := s.write(ctx, func(tx *gorm.DB) error {
		return revokeGrant(ctx, tx, &schema.RolePermission{}, "role_id = ? AND permission_id = ?", roleID, permissionID)
	})
	if err != nil {
		return fmt.Errorf("failed to revoke permission: %w", err)
	}
	return nil
}

// AssignRole grants a role to a user
func (s *pgStore) AssignRole(ctx context.Context, input AssignRoleInput) (*schema.UserRole, error) {
	assignment := schema.UserRole{
		UserID:    input.UserID,
		RoleID:    input.RoleID,
		IsPrimary: input.IsPrimary,
		Reason:    input.Reason,
	}
	if err := input.GrantWindow.apply(ctx, &assignment.Grant); err != nil {
		return nil, err
	}
	assignment.CreatedBy = actorRef(ctx)

	err := s.write(ctx, func(tx *gorm.DB) error {
		if input.IsPrimary {
			err := live(tx.Model(&schema.UserRole{})).
				Where("user_id = ? AND is_primary", input.UserID).
				Update("is_primary", false).Error
			if err != nil {
				return err
			}
		}
		return create(tx, &assignment)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to assign role: %w", err)
	}

	return &assignment, nil
}

// RevokeRole revokes a user's live assignment of a role
func (s *pgStore) RevokeRole(ctx context.Context, userID, roleID uuid.UUID) error {
	err := s.write(ctx, func(tx *gorm.DB) error {
		return revokeGrant(ctx, tx, &schema.UserRole{}, "user_id = ? AND role_id = ?", userID, roleID)
	})
	if err != nil {
		return fmt.Errorf("failed to revoke role: %w", err)
	}
	return nil
}

func revokeGrant(ctx context.Context, tx *gorm.DB, model any, query string, args ...any) error {
	result := live(tx.Model(model)).
		Where(query, args...).
		Updates(map[string]any{
			"status":     domain.GrantStatusRevoked,
			"deleted_at": gorm.Expr("now()"),
			"deleted_by": domain.ActorID(ctx),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%s grant: %w", tableOf(model), domain.ErrNotFound)
	}
	return nil
}

// ApproveUserRole approves or rejects a pending role assignment
func (s *pgStore) ApproveUserRole(ctx context.Context, id uuid.UUID, approve bool) (*schema.UserRole, error) {
	var assignment schema.UserRole
	err := s.write(ctx, func(tx *gorm.DB) error {
		current, err := lockLive[schema.UserRole](tx, id)
		if err != nil {
			return err
		}
		if current.ApprovalStatus != domain.ApprovalStatusPending {
			return fmt.Errorf("%w: assignment is already %s", domain.ErrInvalidInput, current.ApprovalStatus)
		}
		return updateFields(tx, &assignment, id, approvalFields(ctx, approve))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to approve role assignment: %w", err)
	}
	return &assignment, nil
}

func approvalFields(ctx context.Context, approve bool) map[string]any {
	fields := map[string]any{
		"approved_by": domain.ActorID(ctx),
		"approved_at": time.Now().UTC(),
	}
	if approve {
		fields["approval_status"] = domain.ApprovalStatusApproved
		fields["status"] = domain.GrantStatusActive
	} else {
		fields["approval_status"] = domain.ApprovalStatusRejected
		fields["status"] = domain.GrantStatusRevoked
	}
	return fields
}

// CreateDelegation delegates one of the delegator's roles to another user
func (s *pgStore) CreateDelegation(ctx context.Context, input CreateDelegationInput) (*schema.RoleDelegation, error) {
	if input.DelegatorID == input.DelegateID {
		return nil, domain.ErrSelfDelegation
	}

	delegation := schema.RoleDelegation{
		DelegatorID:        input.DelegatorID,
		DelegateID:         input.DelegateID,
		RoleID:             input.RoleID,
		ParentDelegationID: input.ParentDelegationID,
		ValidUntil:         input.ValidUntil.UTC(),
		CanRedelegate:      input.CanRedelegate,
		Reason:             input.Reason,
	}
	if input.ValidFrom != nil {
		delegation.ValidFrom = input.ValidFrom.UTC()
	} else {
		delegation.ValidFrom = time.Now().UTC()
	}
	if !delegation.ValidUntil.After(delegation.ValidFrom) {
		return nil, fmt.Errorf("%w: valid_until must be after valid_from", domain.ErrInvalidInput)
	}
	if input.RequiresApproval {
		delegation.Status = domain.DelegationStatusPending
		delegation.ApprovalStatus = domain.ApprovalStatusPending
	} else {
		delegation.Status = domain.DelegationStatusActive
		delegation.ApprovalStatus = domain.ApprovalStatusApproved
	}
	delegation.CreatedBy = actorRef(ctx)

	err := s.write(ctx, func(tx *gorm.DB) error {
		if input.ParentDelegationID != nil {
			parent, err := mustGetLive[schema.RoleDelegation](tx, *input.ParentDelegationID)
			if err != nil {
				return fmt.Errorf("parent delegation: %w", err)
			}
			if parent.DelegateID != input.DelegatorID || parent.RoleID != input.RoleID || !parent.CanRedelegate {
				return fmt.Errorf("%w: parent delegation does not allow re-delegating this role", domain.ErrInvalidInput)
			}
		}
		return create(tx, &delegation)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create delegation: %w", err)
	}

	return &delegation, nil
}

// ApproveDelegation approves or rejects a pending delegation
func (s *pgStore) ApproveDelegation(ctx context.Context, id uuid.UUID, approve bool) (*schema.RoleDelegation, error) {
	var delegation schema.RoleDelegation
	err := s.write(ctx, func(tx *gorm.DB) error {
		current, err := lockLive[schema.RoleDelegation](tx, id)
		if err != nil {
			return err
		}
		if current.ApprovalStatus != domain.ApprovalStatusPending {
			return fmt.Errorf("%w: delegation is already %s", domain.ErrInvalidInput, current.ApprovalStatus)
		}

		fields := map[string]any{
			"approved_by": domain.ActorID(ctx),
			"approved_at": time.Now().UTC(),
		}
		if approve {
			fields["approval_status"] = domain.ApprovalStatusApproved
			fields["status"] = domain.DelegationStatusActive
		} else {
			now := time.Now().UTC()
			fields["approval_status"] = domain.ApprovalStatusRejected
			fields["status"] = domain.DelegationStatusRevoked
			fields["revoked_at"] = now
			fields["revoked_by"] = domain.ActorID(ctx)
			fields["revocation_reason"] = "rejected"
		}
		return updateFields(tx, &delegation, id, fields)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to approve delegation: %w", err)
	}
	return &delegation, nil
}

// RevokeDelegation revokes a delegation. Delegations re-delegated from it
// stop being effective because their chain no longer resolves.
func (s *pgStore) RevokeDelegation(ctx context.Context, id uuid.UUID, reason string) (*schema.RoleDelegation, error) {
	var delegation schema.RoleDelegation
	err := s.write(ctx, func(tx *gorm.DB) error {
		current, err := lockLive[schema.RoleDelegation](tx, id)
		if err != nil {
			return err
		}
		if current.RevokedAt != nil {
			delegation = *current
			return nil
		}

		fields := map[string]any{
			"status":     domain.DelegationStatusRevoked,
			"revoked_at": time.Now().UTC(),
			"revoked_by": domain.ActorID(ctx),
		}
		if reason != "" {
			fields["revocation_reason"] = reason
		}
		return updateFields(tx, &delegation, id, fields)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to revoke delegation: %w", err)
	}
	return &delegation, nil
}

// ListUserRoleGrants returns a user's live role assignments with their roles.
// Inactive and expired assignments are included; callers filter with ActiveAt.
func (s *pgStore) ListUserRoleGrants(ctx context.Context, userID uuid.UUID) ([]schema.UserRole, error) {
	var grants []schema.UserRole
	err := s.read(ctx, func(tx *gorm.DB) error {
		return live(tx).
			Preload("Role", "deleted_at IS NULL").
			Where("user_id = ?", userID).
			Order("is_primary DESC, created_at ASC").
			Find(&grants).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list user role grants: %w", err)
	}
	return grants, nil
}

// ListRolePermissionGrants returns the live permission grants of the given roles
func (s *pgStore) ListRolePermissionGrants(ctx context.Context, roleIDs []uuid.UUID) ([]schema.RolePermission, error) {
	if len(roleIDs) == 0 {
		return nil, nil
	}

	var grants []schema.RolePermission
	err := s.read(ctx, func(tx *gorm.DB) error {
		return live(tx).
			Preload("Permission", "deleted_at IS NULL").
			Where("role_id IN ?", roleIDs).
			Find(&grants).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list role permission grants: %w", err)
	}
	return grants, nil
}

// ListDelegationsForDelegate returns the live delegations received by a user
func (s *pgStore) ListDelegationsForDelegate(ctx context.Context, userID uuid.UUID) ([]schema.RoleDelegation, error) {
	return s.listDelegations(ctx, "delegate_id = ?", userID)
}

// ListDelegationsByDelegator returns the live delegations made by a user
func (s *pgStore) ListDelegationsByDelegator(ctx context.Context, userID uuid.UUID) ([]schema.RoleDelegation, error) {
	return s.listDelegations(ctx, "delegator_id = ?", userID)
}

func (s *pgStore) listDelegations(ctx context.Context, query string, userID uuid.UUID) ([]schema.RoleDelegation, error) {
	var delegations []schema.RoleDelegation
	err := s.read(ctx, func(tx *gorm.DB) error {
		return live(tx).Where(query, userID).Order("valid_from ASC").Find(&delegations).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list delegations: %w", err)
	}
	return delegations, nil
}

// GetDelegation retrieves a live delegation by id
func (s *pgStore) GetDelegation(ctx context.Context, id uuid.UUID) (*schema.RoleDelegation, error) {
	var delegation *schema.RoleDelegation
	err := s.read(ctx, func(tx *gorm.DB) error {
		var err error
		delegation, err = getLive[schema.RoleDelegation](tx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get delegation: %w", err)
	}
	return delegation, nil
}

// AssignTeam adds a user to the team of an entity
func (s *pgStore) AssignTeam(ctx context.Context, userID, entityID uuid.UUID, entityType domain.EntityType, teamRole string) (*schema.TeamAssignment, error) {
	if err := validateOwner(entityID, entityType); err != nil {
		return nil, err
	}

	assignment := schema.TeamAssignment{
		UserID:     userID,
		EntityID:   entityID,
		EntityType: entityType,
		TeamRole:   teamRole,
	}
	assignment.CreatedBy = actorRef(ctx)

	err := s.write(ctx, func(tx *gorm.DB) error {
		return create(tx, &assignment)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to assign team: %w", err)
	}
	return &assignment, nil
}

// IsTeamMember reports whether the user holds a live team assignment on the entity
func (s *pgStore) IsTeamMember(ctx context.Context, userID, entityID uuid.UUID, entityType domain.EntityType) (bool, error) {
	var count int64
	err := s.read(ctx, func(tx *gorm.DB) error {
		return live(tx.Model(&schema.TeamAssignment{})).
			Where("user_id = ? AND entity_id = ? AND entity_type = ?", userID, entityID, entityType).
			Count(&count).Error
	})
	if err != nil {
		return false, fmt.Errorf("failed to check team membership: %w", err)
	}
	return count > 0, nil
}

// UnassignTeam removes a team assignment
func (s *pgStore) UnassignTeam(ctx context.Context, id uuid.UUID) error {
	return s.write(ctx, func(tx *gorm.DB) error {
		if err := softDelete(ctx, tx, &schema.TeamAssignment{}, id); err != nil {
			return fmt.Errorf("failed to unassign team: %w", err)
		}
		return nil
	})
}

// SyncPermissionCatalog inserts the permissions that do not exist yet and
// grants each role the listed permission names it lacks. Existing rows are
// left untouched so the sync can run on every deploy.
func (s *pgStore) SyncPermissionCatalog(ctx context.Context, permissions []CreatePermissionInput, grants map[string][]domain.PermissionName) (CatalogSyncResult, error) {
	var result CatalogSyncResult

	rows := make([]schema.Permission, 0, len(permissions))
	for _, input := range permissions {
		if input.Scope == "" {
			input.Scope = domain.PermissionScopeOwn
		}
		permission, err := newPermission(input)
		if err != nil {
			return result, err
		}
		permission.IsSystem = true
		permission.ID = uuid.New()
		rows = append(rows, *permission)
	}

	err := s.write(ctx, func(tx *gorm.DB) error {
		if len(rows) > 0 {
			// id, name, resource, action, scope, description, conditions, time_restrictions, is_system, version
			batchSize := calculateSafeBatchSize(len(rows), 10)
			res := tx.Clauses(clause.OnConflict{
				Columns:     []clause.Column{{Name: "name"}},
				TargetWhere: clause.Where{Exprs: []clause.Expression{clause.Expr{SQL: "deleted_at IS NULL"}}},
				DoNothing:   true,
			}).CreateInBatches(&rows, batchSize)
			if res.Error != nil {
				return fmt.Errorf("failed to insert permissions: %w", res.Error)
			}
			result.PermissionsCreated = int(res.RowsAffected)
		}

		for roleName, names := range grants {
			var role schema.Role
			if err := live(tx).Where("name = ?", roleName).First(&role).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("role %q: %w", roleName, domain.ErrNotFound)
				}
				return err
			}

			for _, name := range names {
				var permission schema.Permission
				if err := live(tx).Where("name = ?", string(name)).First(&permission).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return fmt.Errorf("permission %q: %w", name, domain.ErrNotFound)
					}
					return err
				}

				grant := schema.RolePermission{RoleID: role.ID, PermissionID: permission.ID}
				if err := (GrantWindow{}).apply(ctx, &grant.Grant); err != nil {
					return err
				}
				res := tx.Clauses(clause.OnConflict{
					Columns:     []clause.Column{{Name: "role_id"}, {Name: "permission_id"}},
					TargetWhere: clause.Where{Exprs: []clause.Expression{clause.Expr{SQL: "deleted_at IS NULL"}}},
					DoNothing:   true,
				}).Create(&grant)
				if res.Error != nil {
					return fmt.Errorf("failed to grant %s to %s: %w", name, roleName, res.Error)
				}
				result.GrantsCreated += int(res.RowsAffected)
			}
		}
		return nil
	})
	if err != nil {
		return CatalogSyncResult{}, fmt.Errorf("failed to sync permission catalog: %w", err)
	}

	return result, nil
}
