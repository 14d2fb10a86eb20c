package executor

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/feral-file/ff-crm/internal/api/shared/dto"
	apierrors "github.com/feral-file/ff-crm/internal/api/shared/errors"
	"github.com/feral-file/ff-crm/internal/document"
	"github.com/feral-file/ff-crm/internal/domain"
	"github.com/feral-file/ff-crm/internal/logger"
	"github.com/feral-file/ff-crm/internal/rbac"
	"github.com/feral-file/ff-crm/internal/store"
	"github.com/feral-file/ff-crm/internal/store/schema"
)

const (
	DefaultSearchLimit = 20
	MaxSearchLimit     = 100
)

// Executor is the interface for the API executor. Every method authorizes the
// actor carried by ctx before touching the store.
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor
type Executor interface {
	// Health pings the database
	Health(ctx context.Context) *dto.HealthResponse

	CreateProfile(ctx context.Context, req dto.CreateProfileRequest) (*dto.ProfileResponse, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	DeleteProfile(ctx context.Context, id uuid.UUID) error

	ListEmails(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) (*dto.EmailListResponse, error)
	AddEmail(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, req dto.AddEmailRequest) (*dto.EmailResponse, error)
	SetPrimaryEmail(ctx context.Context, entityType domain.EntityType, entityID, emailID uuid.UUID) (*dto.EmailResponse, error)

	// MyPermissions returns the caller's effective permission set
	MyPermissions(ctx context.Context) (*rbac.PermissionSet, error)
	CheckPermission(ctx context.Context, req dto.CheckPermissionRequest) (*dto.CheckPermissionResponse, error)
	AssignRole(ctx context.Context, req dto.AssignRoleRequest) (*dto.UserRoleResponse, error)
	CreateDelegation(ctx context.Context, req dto.CreateDelegationRequest) (*dto.DelegationResponse, error)
	RevokeDelegation(ctx context.Context, id uuid.UUID, req dto.RevokeDelegationRequest) (*dto.DelegationResponse, error)

	CreateLead(ctx context.Context, req dto.CreateLeadRequest) (*dto.LeadResponse, error)
	GetLead(ctx context.Context, id uuid.UUID) (*dto.LeadResponse, error)
	ConvertLead(ctx context.Context, id uuid.UUID, req dto.ConvertLeadRequest) (*dto.ConvertLeadResponse, error)
	MoveOpportunityStage(ctx context.Context, id uuid.UUID, req dto.MoveStageRequest) (*dto.OpportunityResponse, error)

	// Search ranks CRM rows against query; an empty table searches every CRM table
	Search(ctx context.Context, query, table string, limit int) (*dto.SearchResponse, error)
	ListAuditLogs(ctx context.Context, entityType string, entityID uuid.UUID, page store.Pagination) (*dto.AuditLogListResponse, error)
	UploadDocument(ctx context.Context, input document.RegisterInput) (*dto.DocumentResponse, error)
}

// Store is the subset of the store the API calls
type Store interface {
	Ping(ctx context.Context) error
	CreateProfile(ctx context.Context, input store.CreateProfileInput) (*schema.Profile, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*schema.Profile, error)
	UpdateProfile(ctx context.Context, input store.UpdateProfileInput) (*schema.Profile, error)
	SoftDeleteProfile(ctx context.Context, id uuid.UUID) error
	GetEntityOwnership(ctx context.Context, entityType domain.EntityType, id uuid.UUID) (*schema.Ownership, error)
	AddEmail(ctx context.Context, input store.AddEmailInput) (*schema.EntityEmail, error)
	ListEmails(ctx context.Context, entityID uuid.UUID, entityType domain.EntityType) ([]schema.EntityEmail, error)
	SetPrimaryEmail(ctx context.Context, id uuid.UUID) (*schema.EntityEmail, error)
	AssignRole(ctx context.Context, input store.AssignRoleInput) (*schema.UserRole, error)
	CreateDelegation(ctx context.Context, input store.CreateDelegationInput) (*schema.RoleDelegation, error)
	GetDelegation(ctx context.Context, id uuid.UUID) (*schema.RoleDelegation, error)
	RevokeDelegation(ctx context.Context, id uuid.UUID, reason string) (*schema.RoleDelegation, error)
	ListDelegationsByDelegator(ctx context.Context, userID uuid.UUID) ([]schema.RoleDelegation, error)
	ConvertLead(ctx context.Context, input store.ConvertLeadInput) (*store.ConvertLeadResult, error)
	MoveOpportunityStage(ctx context.Context, id uuid.UUID, version int, stage domain.OpportunityStage, probability *float64) (*schema.CRMOpportunity, error)
	Search(ctx context.Context, table, query string, limit int) ([]store.SearchHit, error)
	SearchCRM(ctx context.Context, query string, limit int) ([]store.SearchHit, error)
	ListAuditLogs(ctx context.Context, entityType string, entityID uuid.UUID, page store.Pagination) ([]schema.AuditLog, error)
}

// LeadRepository reads and writes crm_leads rows
type LeadRepository interface {
	Create(ctx context.Context, lead *schema.CRMLead) error
	Get(ctx context.Context, id uuid.UUID) (*schema.CRMLead, error)
}

// OpportunityRepository reads crm_opportunities rows
type OpportunityRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*schema.CRMOpportunity, error)
}

type executor struct {
	store         Store
	leads         LeadRepository
	opportunities OpportunityRepository
	evaluator     rbac.Evaluator
	documents     document.Registry
}

func NewExecutor(
	st Store,
	leads LeadRepository,
	opportunities OpportunityRepository,
	evaluator rbac.Evaluator,
	documents document.Registry,
) Executor {
	return &executor{
		store:         st,
		leads:         leads,
		opportunities: opportunities,
		evaluator:     evaluator,
		documents:     documents,
	}
}

// actor returns the authenticated caller
func (e *executor) actor(ctx context.Context) (domain.Actor, error) {
	actor, ok := domain.ActorFromContext(ctx)
	if !ok {
		return domain.Actor{}, apierrors.NewUnauthorizedError("Authentication required")
	}
	return actor, nil
}

func (e *executor) authorize(ctx context.Context, permission domain.PermissionName, resource rbac.Resource) error {
	actor, err := e.actor(ctx)
	if err != nil {
		return err
	}
	return e.evaluator.Authorize(ctx, actor.UserID, permission, resource)
}

// invalidate drops cached permissions after a grant change. Failures only
// delay the change until the cache entry expires.
func (e *executor) invalidate(ctx context.Context, userID uuid.UUID) {
	if err := e.evaluator.Invalidate(ctx, userID); err != nil {
		logger.WarnCtx(ctx, "Failed to invalidate permission cache",
			zap.String("userID", userID.String()),
			zap.Error(err))
	}
}

// invalidateDelegationChain invalidates userID and everyone who received a
// delegation from them, transitively. Re-delegations stop applying once a
// delegation above them is revoked.
func (e *executor) invalidateDelegationChain(ctx context.Context, userID uuid.UUID) {
	// Delegations made by other users are hidden from the caller's session
	serviceCtx := domain.WithoutActor(ctx)

	seen := map[uuid.UUID]bool{userID: true}
	queue := []uuid.UUID{userID}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		e.invalidate(ctx, current)

		delegations, err := e.store.ListDelegationsByDelegator(serviceCtx, current)
		if err != nil {
			logger.WarnCtx(ctx, "Failed to list re-delegations",
				zap.String("userID", current.String()),
				zap.Error(err))
			continue
		}
		for _, d := range delegations {
			if !seen[d.DelegateID] {
				seen[d.DelegateID] = true
				queue = append(queue, d.DelegateID)
			}
		}
	}
}

func (e *executor) Health(ctx context.Context) *dto.HealthResponse {
	if err := e.store.Ping(ctx); err != nil {
		logger.ErrorCtx(ctx, err)
		return &dto.HealthResponse{Status: "degraded", Database: "unreachable"}
	}
	return &dto.HealthResponse{Status: "ok", Database: "ok"}
}

// =============================================================================
// Profiles
// =============================================================================

func profileResource(p *schema.Profile) rbac.Resource {
	return rbac.Resource{EntityType: p.ProfileType, ID: p.ID, OwnerID: p.UserID}
}

func (e *executor) CreateProfile(ctx context.Context, req dto.CreateProfileRequest) (*dto.ProfileResponse, error) {
	actor, err := e.actor(ctx)
	if err != nil {
		return nil, err
	}

	input := store.CreateProfileInput{
		ProfileType: req.ProfileType,
		Handle:      req.Handle,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DisplayName: req.DisplayName,
		AvatarURL:   req.AvatarURL,
		Bio:         req.Bio,
		Timezone:    req.Timezone,
		Locale:      req.Locale,
		Metadata:    req.Metadata,
	}
	if input.ProfileType == "" {
		input.ProfileType = domain.EntityTypeUser
	}

	// Users create their own profile; any other profile needs profiles:manage
	if input.ProfileType == domain.EntityTypeUser {
		input.UserID = &actor.UserID
	} else if err := e.evaluator.Authorize(ctx, actor.UserID, "profiles:manage", rbac.Resource{EntityType: input.ProfileType}); err != nil {
		return nil, err
	}

	profile, err := e.store.CreateProfile(ctx, input)
	if err != nil {
		return nil, err
	}
	return dto.MapProfileToDTO(profile), nil
}

// getProfile loads a profile and authorizes the action on it
func (e *executor) getProfile(ctx context.Context, id uuid.UUID, action domain.PermissionAction) (*schema.Profile, error) {
	profile, err := e.store.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("profile %s: %w", id, domain.ErrNotFound)
	}
	if err := e.authorize(ctx, domain.NewPermissionName("profiles", action), profileResource(profile)); err != nil {
		return nil, err
	}
	return profile, nil
}

func (e *executor) GetProfile(ctx context.Context, id uuid.UUID) (*dto.ProfileResponse, error) {
	profile, err := e.getProfile(ctx, id, domain.PermissionActionRead)
	if err != nil {
		return nil, err
	}
	return dto.MapProfileToDTO(profile), nil
}

func (e *executor) UpdateProfile(ctx context.Context, id uuid.UUID, req dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	profile, err := e.getProfile(ctx, id, domain.PermissionActionUpdate)
	if err != nil {
		return nil, err
	}

	// Status and verification are moderation fields
	if req.Status != nil || req.VerificationLevel != nil || req.IsVerified != nil {
		if err := e.authorize(ctx, "profiles:manage", profileResource(profile)); err != nil {
			return nil, err
		}
	}

	updated, err := e.store.UpdateProfile(ctx, store.UpdateProfileInput{
		ID:                id,
		Version:           req.Version,
		Handle:            req.Handle,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		DisplayName:       req.DisplayName,
		AvatarURL:         req.AvatarURL,
		Bio:               req.Bio,
		Timezone:          req.Timezone,
		Locale:            req.Locale,
		Status:            req.Status,
		VerificationLevel: req.VerificationLevel,
		IsVerified:        req.IsVerified,
		Metadata:          req.Metadata,
	})
	if err != nil {
		return nil, err
	}
	return dto.MapProfileToDTO(updated), nil
}

func (e *executor) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	if _, err := e.getProfile(ctx, id, domain.PermissionActionManage); err != nil {
		return err
	}
	return e.store.SoftDeleteProfile(ctx, id)
}

// =============================================================================
// Polymorphic contact details
// =============================================================================

// entityResource resolves the resource guarding an entity, with its owner
// and assignee
func (e *executor) entityResource(ctx context.Context, entityType domain.EntityType, id uuid.UUID) (string, rbac.Resource, error) {
	name, ok := entityType.Resource()
	if !ok {
		return "", rbac.Resource{}, fmt.Errorf("%w: unknown entity type %q", domain.ErrInvalidInput, entityType)
	}
	resource := rbac.Resource{EntityType: entityType, ID: id}

	ownership, err := e.store.GetEntityOwnership(ctx, entityType, id)
	if err != nil {
		return "", resource, err
	}
	if ownership == nil {
		return "", resource, fmt.Errorf("%s %s: %w", entityType, id, domain.ErrNotFound)
	}
	resource.OwnerID, resource.AssignedTo = ownership.OwnerID, ownership.AssignedTo

	return name, resource, nil
}

func (e *executor) authorizeEntity(ctx context.Context, entityType domain.EntityType, id uuid.UUID, action domain.PermissionAction) error {
	name, resource, err := e.entityResource(ctx, entityType, id)
	if err != nil {
		return err
	}
	return e.authorize(ctx, domain.NewPermissionName(name, action), resource)
}

func (e *executor) ListEmails(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) (*dto.EmailListResponse, error) {
	if err := e.authorizeEntity(ctx, entityType, entityID, domain.PermissionActionRead); err != nil {
		return nil, err
	}

	emails, err := e.store.ListEmails(ctx, entityID, entityType)
	if err != nil {
		return nil, err
	}
	return dto.MapEmailsToDTO(emails), nil
}

func (e *executor) AddEmail(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, req dto.AddEmailRequest) (*dto.EmailResponse, error) {
	if err := e.authorizeEntity(ctx, entityType, entityID, domain.PermissionActionUpdate); err != nil {
		return nil, err
	}

	email, err := e.store.AddEmail(ctx, store.AddEmailInput{
		EntityID:   entityID,
		EntityType: entityType,
		Email:      req.Email,
		EmailType:  req.EmailType,
		IsPrimary:  req.IsPrimary,
	})
	if err != nil {
		return nil, err
	}
	return dto.MapEmailToDTO(email), nil
}

func (e *executor) SetPrimaryEmail(ctx context.Context, entityType domain.EntityType, entityID, emailID uuid.UUID) (*dto.EmailResponse, error) {
	if err := e.authorizeEntity(ctx, entityType, entityID, domain.PermissionActionUpdate); err != nil {
		return nil, err
	}

	emails, err := e.store.ListEmails(ctx, entityID, entityType)
	if err != nil {
		return nil, err
	}
	found := false
	for _, email := range emails {
		if email.ID == emailID {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("email %s of %s %s: %w", emailID, entityType, entityID, domain.ErrNotFound)
	}

	email, err := e.store.SetPrimaryEmail(ctx, emailID)
	if err != nil {
		return nil, err
	}
	return dto.MapEmailToDTO(email), nil
}

// =============================================================================
// RBAC
// =============================================================================

func (e *executor) MyPermissions(ctx context.Context) (*rbac.PermissionSet, error) {
	actor, err := e.actor(ctx)
	if err != nil {
		return nil, err
	}
	return e.evaluator.EffectivePermissions(ctx, actor.UserID)
}

func (e *executor) CheckPermission(ctx context.Context, req dto.CheckPermissionRequest) (*dto.CheckPermissionResponse, error) {
	actor, err := e.actor(ctx)
	if err != nil {
		return nil, err
	}

	userID := actor.UserID
	if req.UserID != nil && *req.UserID != actor.UserID {
		// Checking someone else's permissions reveals their grants
		if err := e.evaluator.Authorize(ctx, actor.UserID, "roles:read", rbac.Resource{}); err != nil {
			return nil, err
		}
		userID = *req.UserID
	}

	resource := rbac.Resource{
		EntityType: req.EntityType,
		OwnerID:    req.OwnerID,
		AssignedTo: req.AssignedTo,
	}
	if req.EntityID != nil {
		resource.ID = *req.EntityID
	}

	allowed, err := e.evaluator.Check(ctx, userID, req.Permission, resource)
	if err != nil {
		return nil, err
	}
	return &dto.CheckPermissionResponse{Permission: req.Permission, Allowed: allowed}, nil
}

func (e *executor) AssignRole(ctx context.Context, req dto.AssignRoleRequest) (*dto.UserRoleResponse, error) {
	if err := e.authorize(ctx, "roles:manage", rbac.Resource{}); err != nil {
		return nil, err
	}

	userRole, err := e.store.AssignRole(ctx, store.AssignRoleInput{
		UserID:    req.UserID,
		RoleID:    req.RoleID,
		IsPrimary: req.IsPrimary,
		Reason:    req.Reason,
		GrantWindow: store.GrantWindow{
			ValidFrom:        req.ValidFrom,
			ValidUntil:       req.ValidUntil,
			RequiresApproval: req.RequiresApproval,
		},
	})
	if err != nil {
		return nil, err
	}

	e.invalidate(ctx, req.UserID)
	return dto.MapUserRoleToDTO(userRole), nil
}

func (e *executor) CreateDelegation(ctx context.Context, req dto.CreateDelegationRequest) (*dto.DelegationResponse, error) {
	actor, err := e.actor(ctx)
	if err != nil {
		return nil, err
	}
	if err := e.evaluator.Authorize(ctx, actor.UserID, "delegations:create", rbac.Resource{}); err != nil {
		return nil, err
	}

	delegation, err := e.store.CreateDelegation(ctx, store.CreateDelegationInput{
		DelegatorID:        actor.UserID,
		DelegateID:         req.DelegateID,
		RoleID:             req.RoleID,
		ParentDelegationID: req.ParentDelegationID,
		ValidFrom:          req.ValidFrom,
		ValidUntil:         req.ValidUntil,
		CanRedelegate:      req.CanRedelegate,
		RequiresApproval:   req.RequiresApproval,
		Reason:             req.Reason,
	})
	if err != nil {
		return nil, err
	}

	e.invalidate(ctx, req.DelegateID)
	return dto.MapDelegationToDTO(delegation), nil
}

func (e *executor) RevokeDelegation(ctx context.Context, id uuid.UUID, req dto.RevokeDelegationRequest) (*dto.DelegationResponse, error) {
	actor, err := e.actor(ctx)
	if err != nil {
		return nil, err
	}

	delegation, err := e.store.GetDelegation(ctx, id)
	if err != nil {
		return nil, err
	}
	if delegation == nil {
		return nil, fmt.Errorf("delegation %s: %w", id, domain.ErrNotFound)
	}

	// The delegator may always take a delegation back
	if delegation.DelegatorID != actor.UserID {
		if err := e.evaluator.Authorize(ctx, actor.UserID, "roles:manage", rbac.Resource{}); err != nil {
			return nil, err
		}
	}

	revoked, err := e.store.RevokeDelegation(ctx, id, req.Reason)
	if err != nil {
		return nil, err
	}

	e.invalidateDelegationChain(ctx, delegation.DelegateID)
	return dto.MapDelegationToDTO(revoked), nil
}

// =============================================================================
// CRM
// =============================================================================

func leadResource(lead *schema.CRMLead) rbac.Resource {
	return rbac.Resource{
		EntityType: domain.EntityTypeLead,
		ID:         lead.ID,
		OwnerID:    lead.OwnerID,
		AssignedTo: lead.AssignedTo,
	}
}

func (e *executor) CreateLead(ctx context.Context, req dto.CreateLeadRequest) (*dto.LeadResponse, error) {
	if err := e.authorize(ctx, "leads:create", rbac.Resource{EntityType: domain.EntityTypeLead}); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.LastName) == "" {
		return nil, fmt.Errorf("%w: last name is required", domain.ErrInvalidInput)
	}
	if req.Score < 0 || req.Score > 100 {
		return nil, fmt.Errorf("%w: score must be between 0 and 100", domain.ErrInvalidInput)
	}

	lead := &schema.CRMLead{
		Ownership:      schema.Ownership{AssignedTo: req.AssignedTo},
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		CompanyName:    req.CompanyName,
		JobTitle:       req.JobTitle,
		Status:         domain.LeadStatusNew,
		Source:         req.Source,
		Score:          req.Score,
		EstimatedValue: req.EstimatedValue,
		Notes:          req.Notes,
	}
	if lead.Source == "" {
		lead.Source = domain.LeadSourceOther
	}

	if err := e.leads.Create(ctx, lead); err != nil {
		return nil, err
	}
	return dto.MapLeadToDTO(lead), nil
}

func (e *executor) getLead(ctx context.Context, id uuid.UUID, action domain.PermissionAction) (*schema.CRMLead, error) {
	lead, err := e.leads.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, fmt.Errorf("lead %s: %w", id, domain.ErrNotFound)
	}
	if err := e.authorize(ctx, domain.NewPermissionName("leads", action), leadResource(lead)); err != nil {
		return nil, err
	}
	return lead, nil
}

func (e *executor) GetLead(ctx context.Context, id uuid.UUID) (*dto.LeadResponse, error) {
	lead, err := e.getLead(ctx, id, domain.PermissionActionRead)
	if err != nil {
		return nil, err
	}
	return dto.MapLeadToDTO(lead), nil
}

func (e *executor) ConvertLead(ctx context.Context, id uuid.UUID, req dto.ConvertLeadRequest) (*dto.ConvertLeadResponse, error) {
	if _, err := e.getLead(ctx, id, domain.PermissionActionUpdate); err != nil {
		return nil, err
	}
	if err := e.authorize(ctx, "contacts:create", rbac.Resource{EntityType: domain.EntityTypeContact}); err != nil {
		return nil, err
	}
	if req.CreateOpportunity {
		if err := e.authorize(ctx, "opportunities:create", rbac.Resource{EntityType: domain.EntityTypeOpportunity}); err != nil {
			return nil, err
		}
	}

	result, err := e.store.ConvertLead(ctx, store.ConvertLeadInput{
		LeadID:            id,
		Version:           req.Version,
		ContactType:       req.ContactType,
		CreateOpportunity: req.CreateOpportunity,
		OpportunityName:   req.OpportunityName,
		Amount:            req.Amount,
		PipelineID:        req.PipelineID,
	})
	if err != nil {
		return nil, err
	}
	return dto.MapConvertLeadResultToDTO(result), nil
}

func (e *executor) MoveOpportunityStage(ctx context.Context, id uuid.UUID, req dto.MoveStageRequest) (*dto.OpportunityResponse, error) {
	opp, err := e.opportunities.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if opp == nil {
		return nil, fmt.Errorf("opportunity %s: %w", id, domain.ErrNotFound)
	}

	resource := rbac.Resource{
		EntityType: domain.EntityTypeOpportunity,
		ID:         opp.ID,
		OwnerID:    opp.OwnerID,
		AssignedTo: opp.AssignedTo,
	}
	if err := e.authorize(ctx, "opportunities:update", resource); err != nil {
		return nil, err
	}

	moved, err := e.store.MoveOpportunityStage(ctx, id, req.Version, req.Stage, req.Probability)
	if err != nil {
		return nil, err
	}
	return dto.MapOpportunityToDTO(moved), nil
}

// =============================================================================
// Search, audit and documents
// =============================================================================

func (e *executor) Search(ctx context.Context, query, table string, limit int) (*dto.SearchResponse, error) {
	// Row visibility is enforced by row level security
	if _, err := e.actor(ctx); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	var hits []store.SearchHit
	var err error
	if table == "" {
		hits, err = e.store.SearchCRM(ctx, query, limit)
	} else {
		hits, err = e.store.Search(ctx, table, query, limit)
	}
	if err != nil {
		return nil, err
	}
	if hits == nil {
		hits = []store.SearchHit{}
	}
	return &dto.SearchResponse{Query: query, Hits: hits}, nil
}

func (e *executor) ListAuditLogs(ctx context.Context, entityType string, entityID uuid.UUID, page store.Pagination) (*dto.AuditLogListResponse, error) {
	if err := e.authorize(ctx, "audit:read", rbac.Resource{}); err != nil {
		return nil, err
	}

	logs, err := e.store.ListAuditLogs(ctx, entityType, entityID, page)
	if err != nil {
		return nil, err
	}
	return dto.MapAuditLogsToDTO(logs, page), nil
}

func (e *executor) UploadDocument(ctx context.Context, input document.RegisterInput) (*dto.DocumentResponse, error) {
	if err := e.authorize(ctx, "documents:create", rbac.Resource{}); err != nil {
		return nil, err
	}
	if input.EntityID != nil && input.EntityType != nil {
		if err := e.authorizeEntity(ctx, *input.EntityType, *input.EntityID, domain.PermissionActionUpdate); err != nil {
			return nil, err
		}
	}

	doc, err := e.documents.Register(ctx, input)
	if err != nil {
		return nil, err
	}
	return dto.MapDocumentToDTO(doc), nil
}
