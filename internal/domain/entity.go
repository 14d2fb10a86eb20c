package domain

import (
	"fmt"
	"strings"
)

// entityTables mirrors the entity_type_tables lookup table.
var entityTables = map[EntityType]string{
	EntityTypeUser:        "profiles",
	EntityTypeVendor:      "profiles",
	EntityTypeContact:     "crm_contacts",
	EntityTypeLead:        "crm_leads",
	EntityTypeOpportunity: "crm_opportunities",
	EntityTypeQuote:       "crm_quotes",
	EntityTypeJob:         "crm_jobs",
	EntityTypeReferral:    "crm_referrals",
	EntityTypeProduct:     "crm_products",
	EntityTypeTask:        "tasks",
}

// Table returns the table holding rows of this entity type
func (v EntityType) Table() (string, bool) {
	t, ok := entityTables[v]
	return t, ok
}

// entityResources names the permission resource guarding each entity type
var entityResources = map[EntityType]string{
	EntityTypeUser:        "profiles",
	EntityTypeVendor:      "profiles",
	EntityTypeContact:     "contacts",
	EntityTypeLead:        "leads",
	EntityTypeOpportunity: "opportunities",
	EntityTypeQuote:       "quotes",
	EntityTypeJob:         "jobs",
	EntityTypeReferral:    "referrals",
	EntityTypeProduct:     "inventory",
	EntityTypeTask:        "tasks",
}

// Resource returns the permission resource guarding rows of this entity type
func (v EntityType) Resource() (string, bool) {
	r, ok := entityResources[v]
	return r, ok
}

// EntityRef identifies the owner of a polymorphic row
type EntityRef struct {
	ID   string     `json:"entity_id"`
	Type EntityType `json:"entity_type"`
}

// IsClosed reports whether the stage is terminal
func (v OpportunityStage) IsClosed() bool {
	return v == OpportunityStageClosedWon || v == OpportunityStageClosedLost
}

// DefaultProbability returns the win probability conventionally attached to a stage
func (v OpportunityStage) DefaultProbability() float64 {
	switch v {
	case OpportunityStageProspecting:
		return 10
	case OpportunityStageQualification:
		return 25
	case OpportunityStageProposal:
		return 50
	case OpportunityStageNegotiation:
		return 75
	case OpportunityStageClosedWon:
		return 100
	default:
		return 0
	}
}

// IsTerminal reports whether a task in this status no longer blocks dependents
func (v TaskStatus) IsTerminal() bool {
	return v == TaskStatusDone || v == TaskStatusArchived
}

// System role names seeded by the migrations
const (
	RoleSuperAdmin       = "super_admin"
	RoleAdmin            = "admin"
	RoleManager          = "manager"
	RoleMember           = "member"
	RoleViewer           = "viewer"
	RoleAccountant       = "accountant"
	RoleInventoryManager = "inventory_manager"
)

// PermissionName is a permission identifier in resource:action form
type PermissionName string

// NewPermissionName builds a permission name from its parts
func NewPermissionName(resource string, action PermissionAction) PermissionName {
	return PermissionName(resource + ":" + string(action))
}

// Parse splits the name into resource and action
func (p PermissionName) Parse() (string, PermissionAction, error) {
	resource, action, ok := strings.Cut(string(p), ":")
	if !ok || resource == "" {
		return "", "", fmt.Errorf("%w: permission %q is not resource:action", ErrInvalidInput, p)
	}
	a := PermissionAction(action)
	if !a.Valid() {
		return "", "", fmt.Errorf("%w: unknown permission action %q", ErrInvalidInput, action)
	}
	return resource, a, nil
}
