package rbac

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/feral-file/ff-crm/internal/adapter"
	"github.com/feral-file/ff-crm/internal/config"
	"github.com/feral-file/ff-crm/internal/domain"
	"github.com/feral-file/ff-crm/internal/logger"
	"github.com/feral-file/ff-crm/internal/store/schema"
)

// DefaultMaxDelegationDepth bounds how many delegation hops are followed
// when proving a delegator still holds a role
const DefaultMaxDelegationDepth = 3

// Store is the part of the store the evaluator reads grants from
//
//go:generate mockgen -source=evaluator.go -destination=../mocks/rbac_store.go -package=mocks -mock_names=Store=MockRBACStore
type Store interface {
	ListRoles(ctx context.Context) ([]schema.Role, error)
	ListUserRoleGrants(ctx context.Context, userID uuid.UUID) ([]schema.UserRole, error)
	ListRolePermissionGrants(ctx context.Context, roleIDs []uuid.UUID) ([]schema.RolePermission, error)
	ListDelegationsForDelegate(ctx context.Context, userID uuid.UUID) ([]schema.RoleDelegation, error)
	GetDelegation(ctx context.Context, id uuid.UUID) (*schema.RoleDelegation, error)
	IsTeamMember(ctx context.Context, userID, entityID uuid.UUID, entityType domain.EntityType) (bool, error)
}

// Evaluator resolves what a user is allowed to do
//
//go:generate mockgen -source=evaluator.go -destination=../mocks/rbac.go -package=mocks -mock_names=Evaluator=MockEvaluator
type Evaluator interface {
	// EffectivePermissions returns every grant in force for the user now
	EffectivePermissions(ctx context.Context, userID uuid.UUID) (*PermissionSet, error)

	// Check reports whether the user holds the permission on the resource.
	// A zero Resource checks the permission at collection level.
	Check(ctx context.Context, userID uuid.UUID, permission domain.PermissionName, resource Resource) (bool, error)

	// Authorize is Check returning domain.ErrPermissionDenied on refusal
	Authorize(ctx context.Context, userID uuid.UUID, permission domain.PermissionName, resource Resource) error

	// Invalidate drops any cached permission set of the user
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// Resource identifies the record a permission is checked against
type Resource struct {
	EntityType domain.EntityType
	ID         uuid.UUID
	OwnerID    *uuid.UUID
	AssignedTo *uuid.UUID
}

// IsCollection reports whether no specific record is targeted
func (r Resource) IsCollection() bool {
	return r.ID == uuid.Nil
}

func (r Resource) ownedBy(userID uuid.UUID) bool {
	return (r.OwnerID != nil && *r.OwnerID == userID) ||
		(r.AssignedTo != nil && *r.AssignedTo == userID)
}

type evaluator struct {
	config config.RBACConfig
	store  Store
	cache  Cache
	clock  adapter.Clock
}

// NewEvaluator creates an evaluator. A nil cache disables caching.
func NewEvaluator(cfg config.RBACConfig, store Store, cache Cache, clock adapter.Clock) Evaluator {
	if cfg.MaxDelegationDepth <= 0 {
		cfg.MaxDelegationDepth = DefaultMaxDelegationDepth
	}
	if len(cfg.AdminRoles) == 0 {
		cfg.AdminRoles = []string{domain.RoleSuperAdmin}
	}
	if cache == nil {
		cache = noopCache{}
	}
	return &evaluator{
		config: cfg,
		store:  store,
		cache:  cache,
		clock:  clock,
	}
}

// EffectivePermissions returns the user's permission set, from cache when possible
func (e *evaluator) EffectivePermissions(ctx context.Context, userID uuid.UUID) (*PermissionSet, error) {
	now := e.clock.Now()

	cached, err := e.cache.Get(ctx, userID)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to read cached permissions", zap.String("userID", userID.String()), zap.Error(err))
	}
	if cached != nil && (cached.ExpiresAt == nil || cached.ExpiresAt.After(now)) {
		return cached.At(now), nil
	}

	set, err := e.compute(domain.WithoutActor(ctx), userID, now)
	if err != nil {
		return nil, err
	}

	ttl := e.config.CacheTTL
	if set.ExpiresAt != nil {
		if until := set.ExpiresAt.Sub(now); until < ttl {
			ttl = until
		}
	}
	if ttl > 0 {
		if err := e.cache.Set(ctx, set, ttl); err != nil {
			logger.WarnCtx(ctx, "Failed to cache permissions", zap.String("userID", userID.String()), zap.Error(err))
		}
	}

	return set, nil
}

// Check evaluates a single permission for the user
func (e *evaluator) Check(ctx context.Context, userID uuid.UUID, permission domain.PermissionName, resource Resource) (bool, error) {
	resourceName, action, err := permission.Parse()
	if err != nil {
		return false, err
	}

	set, err := e.EffectivePermissions(ctx, userID)
	if err != nil {
		return false, err
	}

	for _, role := range e.config.AdminRoles {
		if set.HasRole(role) {
			return true, nil
		}
	}

	now := e.clock.Now()
	for _, grant := range set.Grants {
		grantResource, grantAction, err := grant.Permission.Parse()
		if err != nil || grantResource != resourceName {
			continue
		}
		if grantAction != action && grantAction != domain.PermissionActionManage {
			continue
		}

		ok, err := e.allows(ctx, userID, grant, resource, now)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}

	return false, nil
}

// Authorize checks the permission and converts a refusal into an error
func (e *evaluator) Authorize(ctx context.Context, userID uuid.UUID, permission domain.PermissionName, resource Resource) error {
	ok, err := e.Check(ctx, userID, permission, resource)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrPermissionDenied, permission)
	}
	return nil
}

// Invalidate drops the cached permission set of the user
func (e *evaluator) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if err := e.cache.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to invalidate permissions: %w", err)
	}
	return nil
}

// allows applies the grant's time window, conditions and scope
func (e *evaluator) allows(ctx context.Context, userID uuid.UUID, grant Grant, resource Resource, now time.Time) (bool, error) {
	if grant.ValidUntil != nil && !grant.ValidUntil.After(now) {
		return false, nil
	}
	if !WithinWindow(grant.TimeRestrictions, now) {
		return false, nil
	}

	conditions := grant.Conditions
	if conditions.RequireMFA {
		actor, ok := domain.ActorFromContext(ctx)
		if !ok || actor.UserID != userID || !actor.MFA {
			return false, nil
		}
	}
	if len(conditions.EntityTypes) > 0 && resource.EntityType != "" &&
		!slices.Contains(conditions.EntityTypes, resource.EntityType) {
		return false, nil
	}

	if resource.IsCollection() {
		return true, nil
	}

	owned := resource.ownedBy(userID)
	if conditions.OwnOnly && !owned {
		return false, nil
	}

	switch grant.Scope {
	case domain.PermissionScopeOrganization, domain.PermissionScopeGlobal:
		return true, nil
	case domain.PermissionScopeTeam:
		if owned {
			return true, nil
		}
		if resource.EntityType == "" {
			return false, nil
		}
		member, err := e.store.IsTeamMember(domain.WithoutActor(ctx), userID, resource.ID, resource.EntityType)
		if err != nil {
			return false, err
		}
		return member, nil
	default:
		return owned, nil
	}
}

// heldRole records how a user came to hold a role and until when
type heldRole struct {
	until        *time.Time
	delegationID *uuid.UUID
}

// compute builds the permission set from the store at time now
func (e *evaluator) compute(ctx context.Context, userID uuid.UUID, now time.Time) (*PermissionSet, error) {
	roles, err := e.store.ListRoles(ctx)
	if err != nil {
		return nil, err
	}
	graph := newRoleGraph(roles)

	var nextChange *time.Time
	notice := func(t time.Time) {
		if t.After(now) && (nextChange == nil || t.Before(*nextChange)) {
			nextChange = &t
		}
	}

	userRoles, err := e.store.ListUserRoleGrants(ctx, userID)
	if err != nil {
		return nil, err
	}

	held := make(map[uuid.UUID]heldRole)
	for _, ur := range userRoles {
		if ur.DeletedAt != nil {
			continue
		}
		if !ur.ActiveAt(now) {
			notice(ur.ValidFrom)
			continue
		}
		graph.grant(held, ur.RoleID, heldRole{until: ur.ValidUntil})
	}

	delegations, err := e.store.ListDelegationsForDelegate(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, d := range delegations {
		if !d.ActiveAt(now) {
			notice(d.ValidFrom)
			continue
		}
		ok, until, err := e.delegatorHolds(ctx, graph, d, now, 1)
		if err != nil {
			return nil, err
		}
		if !ok {
			logger.DebugCtx(ctx, "Ignoring delegation whose delegator no longer holds the role",
				zap.String("delegationID", d.ID.String()))
			continue
		}
		id := d.ID
		graph.grant(held, d.RoleID, heldRole{until: earliest(until, &d.ValidUntil), delegationID: &id})
	}

	set := &PermissionSet{
		UserID:     userID,
		ComputedAt: now,
	}

	roleIDs := make([]uuid.UUID, 0, len(held))
	for id, h := range held {
		roleIDs = append(roleIDs, id)
		if role, ok := graph.roles[id]; ok {
			set.Roles = append(set.Roles, role.Name)
		}
		if h.until != nil {
			notice(*h.until)
		}
	}
	sort.Strings(set.Roles)
	sort.Slice(roleIDs, func(i, j int) bool { return roleIDs[i].String() < roleIDs[j].String() })

	grants, err := e.store.ListRolePermissionGrants(ctx, roleIDs)
	if err != nil {
		return nil, err
	}
	for _, rp := range grants {
		if rp.DeletedAt != nil || rp.Permission == nil || rp.Permission.DeletedAt != nil {
			continue
		}
		if !rp.ActiveAt(now) {
			notice(rp.ValidFrom)
			continue
		}
		h, ok := held[rp.RoleID]
		if !ok {
			continue
		}

		until := earliest(h.until, rp.ValidUntil)
		if until != nil {
			notice(*until)
		}
		set.Grants = append(set.Grants, Grant{
			Permission:       domain.PermissionName(rp.Permission.Name),
			Scope:            rp.Permission.Scope,
			Conditions:       rp.Permission.Conditions.Data(),
			TimeRestrictions: rp.Permission.TimeRestrictions.Data(),
			RoleID:           rp.RoleID,
			DelegationID:     h.delegationID,
			ValidUntil:       until,
		})
	}
	sort.SliceStable(set.Grants, func(i, j int) bool { return set.Grants[i].Permission < set.Grants[j].Permission })

	set.ExpiresAt = nextChange
	return set, nil
}

// delegatorHolds reports whether the delegator of d holds d's role at now,
// either through a role assignment or through an upstream delegation that
// allows redelegation. It returns the earliest expiry along the proof.
func (e *evaluator) delegatorHolds(ctx context.Context, graph roleGraph, d schema.RoleDelegation, now time.Time, depth int) (bool, *time.Time, error) {
	if depth > e.config.MaxDelegationDepth {
		return false, nil, nil
	}

	userRoles, err := e.store.ListUserRoleGrants(ctx, d.DelegatorID)
	if err != nil {
		return false, nil, err
	}
	for _, ur := range userRoles {
		if ur.DeletedAt != nil || !ur.ActiveAt(now) {
			continue
		}
		if slices.Contains(graph.ancestors(ur.RoleID), d.RoleID) {
			return true, ur.ValidUntil, nil
		}
	}

	if d.ParentDelegationID == nil {
		return false, nil, nil
	}

	parent, err := e.store.GetDelegation(ctx, *d.ParentDelegationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil, nil
		}
		return false, nil, err
	}
	if parent == nil ||
		parent.DelegateID != d.DelegatorID ||
		parent.RoleID != d.RoleID ||
		!parent.CanRedelegate ||
		!parent.ActiveAt(now) {
		return false, nil, nil
	}

	ok, until, err := e.delegatorHolds(ctx, graph, *parent, now, depth+1)
	if err != nil || !ok {
		return false, nil, err
	}
	return true, earliest(until, &parent.ValidUntil), nil
}

// roleGraph is the role tree keyed by id
type roleGraph struct {
	roles map[uuid.UUID]schema.Role
}

func newRoleGraph(roles []schema.Role) roleGraph {
	g := roleGraph{roles: make(map[uuid.UUID]schema.Role, len(roles))}
	for _, r := range roles {
		if r.DeletedAt == nil {
			g.roles[r.ID] = r
		}
	}
	return g
}

// ancestors returns the role followed by its parent chain. A cycle ends the walk.
func (g roleGraph) ancestors(id uuid.UUID) []uuid.UUID {
	var chain []uuid.UUID
	seen := make(map[uuid.UUID]bool)
	for current := &id; current != nil; {
		if seen[*current] {
			break
		}
		seen[*current] = true
		chain = append(chain, *current)

		role, ok := g.roles[*current]
		if !ok {
			break
		}
		current = role.ParentRoleID
	}
	return chain
}

// grant marks the role and its ancestors as held. When a role is reachable
// several ways the longest lived source wins.
func (g roleGraph) grant(held map[uuid.UUID]heldRole, roleID uuid.UUID, source heldRole) {
	if _, ok := g.roles[roleID]; !ok {
		return
	}
	for _, id := range g.ancestors(roleID) {
		if _, ok := g.roles[id]; !ok {
			continue
		}
		existing, ok := held[id]
		if !ok || outlives(source.until, existing.until) {
			held[id] = source
		}
	}
}

// earliest returns the sooner of two optional deadlines; nil means never
func earliest(a, b *time.Time) *time.Time {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case a.Before(*b):
		return a
	default:
		return b
	}
}

// outlives reports whether deadline a is strictly later than b
func outlives(a, b *time.Time) bool {
	if b == nil {
		return false
	}
	return a == nil || a.After(*b)
}
