package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/feral-file/ff-crm/internal/domain"
	"github.com/feral-file/ff-crm/internal/store/schema"
)

// Store defines the interface for database operations. Every method runs as
// the actor carried by ctx (see domain.WithActor) or in service mode when
// there is none.
type Store interface {
	CursorStore

	// Ping checks the primary connection
	Ping(ctx context.Context) error

	// =============================================================================
	// Profiles
	// =============================================================================

	// CreateProfile inserts a profile; satellites are created by trigger
	CreateProfile(ctx context.Context, input CreateProfileInput) (*schema.Profile, error)
	// GetProfile retrieves a live profile by id
	GetProfile(ctx context.Context, id uuid.UUID) (*schema.Profile, error)
	// GetProfileByHandle retrieves a live profile by case-insensitive handle
	GetProfileByHandle(ctx context.Context, handle string) (*schema.Profile, error)
	// GetProfileByUserID retrieves the live profile of an auth user
	GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*schema.Profile, error)
	// UpdateProfile applies a versioned profile update
	UpdateProfile(ctx context.Context, input UpdateProfileInput) (*schema.Profile, error)
	// SoftDeleteProfile soft-deletes a profile and its dependent rows
	SoftDeleteProfile(ctx context.Context, id uuid.UUID) error
	// RestoreProfile clears the soft delete of a profile
	RestoreProfile(ctx context.Context, id uuid.UUID) error
	GetUserPreferences(ctx context.Context, profileID uuid.UUID) (*schema.UserPreferences, error)
	UpdateUserPreferences(ctx context.Context, input UpdateUserPreferencesInput) (*schema.UserPreferences, error)
	GetUserSecuritySettings(ctx context.Context, profileID uuid.UUID) (*schema.UserSecuritySettings, error)
	UpdateUserSecuritySettings(ctx context.Context, input UpdateUserSecuritySettingsInput) (*schema.UserSecuritySettings, error)
	GetUserOnboarding(ctx context.Context, profileID uuid.UUID) (*schema.UserOnboarding, error)
	// AdvanceOnboarding marks a step completed and moves to the next missing one
	AdvanceOnboarding(ctx context.Context, profileID uuid.UUID, step string, data *domain.OnboardingData) (*schema.UserOnboarding, error)

	// =============================================================================
	// Polymorphic contact details
	// =============================================================================

	// GetEntityOwnership returns the owner and assignee of any entity type
	GetEntityOwnership(ctx context.Context, entityType domain.EntityType, id uuid.UUID) (*schema.Ownership, error)
	AddEmail(ctx context.Context, input AddEmailInput) (*schema.EntityEmail, error)
	AddPhone(ctx context.Context, input AddPhoneInput) (*schema.EntityPhone, error)
	AddAddress(ctx context.Context, input AddAddressInput) (*schema.EntityAddress, error)
	ListEmails(ctx context.Context, entityID uuid.UUID, entityType domain.EntityType) ([]schema.EntityEmail, error)
	ListPhones(ctx context.Context, entityID uuid.UUID, entityType domain.EntityType) ([]schema.EntityPhone, error)
	ListAddresses(ctx context.Context, entityID uuid.UUID, entityType domain.EntityType) ([]schema.EntityAddress, error)
	// SetPrimaryEmail makes the email the only primary one of its owner
	SetPrimaryEmail(ctx context.Context, id uuid.UUID) (*schema.EntityEmail, error)
	SetPrimaryPhone(ctx context.Context, id uuid.UUID) (*schema.EntityPhone, error)
	SetPrimaryAddress(ctx context.Context, id uuid.UUID) (*schema.EntityAddress, error)
	RemoveEmail(ctx context.Context, id uuid.UUID) error
	RemovePhone(ctx context.Context, id uuid.UUID) error
	RemoveAddress(ctx context.Context, id uuid.UUID) error
	VerifyEmail(ctx context.Context, id uuid.UUID) (*schema.EntityEmail, error)

	// =============================================================================
	// RBAC
	// =============================================================================

	CreateRole(ctx context.Context, input CreateRoleInput) (*schema.Role, error)
	GetRoleByName(ctx context.Context, name string) (*schema.Role, error)
	ListRoles(ctx context.Context) ([]schema.Role, error)
	CreatePermission(ctx context.Context, input CreatePermissionInput) (*schema.Permission, error)
	GetPermissionByName(ctx context.Context, name domain.PermissionName) (*schema.Permission, error)
	ListPermissions(ctx context.Context) ([]schema.Permission, error)
	GrantPermission(ctx context.Context, input GrantPermissionInput) (*schema.RolePermission, error)
	RevokePermission(ctx context.Context, roleID, permissionID uuid.UUID) error
	AssignRole(ctx context.Context, input AssignRoleInput) (*schema.UserRole, error)
	RevokeRole(ctx context.Context, userID, roleID uuid.UUID) error
	// ApproveUserRole activates or rejects a pending role assignment
	ApproveUserRole(ctx context.Context, id uuid.UUID, approve bool) (*schema.UserRole, error)
	CreateDelegation(ctx context.Context, input CreateDelegationInput) (*schema.RoleDelegation, error)
	ApproveDelegation(ctx context.Context, id uuid.UUID, approve bool) (*schema.RoleDelegation, error)
	RevokeDelegation(ctx context.Context, id uuid.UUID, reason string) (*schema.RoleDelegation, error)
	GetDelegation(ctx context.Context, id uuid.UUID) (*schema.RoleDelegation, error)
	// ListUserRoleGrants returns a user's live role grants with their roles
	ListUserRoleGrants(ctx context.Context, userID uuid.UUID) ([]schema.UserRole, error)
	// ListRolePermissionGrants returns the live permission grants of the roles
	ListRolePermissionGrants(ctx context.Context, roleIDs []uuid.UUID) ([]schema.RolePermission, error)
	ListDelegationsForDelegate(ctx context.Context, userID uuid.UUID) ([]schema.RoleDelegation, error)
	ListDelegationsByDelegator(ctx context.Context, userID uuid.UUID) ([]schema.RoleDelegation, error)
	AssignTeam(ctx context.Context, userID, entityID uuid.UUID, entityType domain.EntityType, teamRole string) (*schema.TeamAssignment, error)
	UnassignTeam(ctx context.Context, id uuid.UUID) error
	IsTeamMember(ctx context.Context, userID, entityID uuid.UUID, entityType domain.EntityType) (bool, error)
	// SyncPermissionCatalog inserts missing permissions and role grants
	SyncPermissionCatalog(ctx context.Context, permissions []CreatePermissionInput, grants map[string][]domain.PermissionName) (CatalogSyncResult, error)

	// =============================================================================
	// CRM
	// =============================================================================

	// ConvertLead turns a lead into a contact and optionally an opportunity
	ConvertLead(ctx context.Context, input ConvertLeadInput) (*ConvertLeadResult, error)
	MoveOpportunityStage(ctx context.Context, id uuid.UUID, version int, stage domain.OpportunityStage, probability *float64) (*schema.CRMOpportunity, error)
	GetQuote(ctx context.Context, id uuid.UUID) (*schema.CRMQuote, error)
	AddQuoteItem(ctx context.Context, input AddQuoteItemInput) (*schema.CRMQuote, error)
	AddNote(ctx context.Context, input AddNoteInput) (*schema.CRMNote, error)
	ListNotes(ctx context.Context, entityID uuid.UUID, entityType domain.EntityType) ([]schema.CRMNote, error)
	LogCommunication(ctx context.Context, input LogCommunicationInput) (*schema.CRMCommunication, error)
	LinkEntities(ctx context.Context, input LinkEntitiesInput) (*schema.CRMRelationship, error)
	CreateDocument(ctx context.Context, document *schema.CRMDocument) error

	// =============================================================================
	// Tasks
	// =============================================================================

	CreateBoard(ctx context.Context, input CreateBoardInput) (*schema.TaskBoard, error)
	CreateList(ctx context.Context, boardID uuid.UUID, name string, wipLimit *int) (*schema.TaskList, error)
	CreateTask(ctx context.Context, input CreateTaskInput) (*schema.Task, error)
	MoveTask(ctx context.Context, id uuid.UUID, version int, listID uuid.UUID, position int) (*schema.Task, error)
	AssignTask(ctx context.Context, taskID, userID uuid.UUID, role string) (*schema.TaskAssignment, error)
	// AddDependency links two tasks, refusing links that would close a cycle
	AddDependency(ctx context.Context, taskID, dependsOnID uuid.UUID, dependencyType domain.DependencyType) (*schema.TaskDependency, error)
	CompleteTask(ctx context.Context, id uuid.UUID, version int) (*schema.Task, error)
	AddComment(ctx context.Context, input AddCommentInput) (*schema.TaskComment, error)
	LogTime(ctx context.Context, input LogTimeInput) (*schema.TaskTimeEntry, error)
	ListTasks(ctx context.Context, filter TaskFilter) ([]schema.Task, error)

	// =============================================================================
	// Inventory
	// =============================================================================

	// RecordInventoryTransaction applies a stock movement and appends it to the ledger
	RecordInventoryTransaction(ctx context.Context, input RecordInventoryTransactionInput) (*schema.InventoryTransaction, *schema.InventoryItem, error)
	ListInventoryTransactions(ctx context.Context, itemID uuid.UUID, page Pagination) ([]schema.InventoryTransaction, error)
	CreatePurchaseOrder(ctx context.Context, input CreatePurchaseOrderInput) (*schema.PurchaseOrder, error)
	GetPurchaseOrder(ctx context.Context, id uuid.UUID) (*schema.PurchaseOrder, error)
	ReceivePurchaseOrder(ctx context.Context, id uuid.UUID, received map[uuid.UUID]float64) (*schema.PurchaseOrder, error)
	MarkSynced(ctx context.Context, table SyncTable, id uuid.UUID, externalID string) error
	MarkSyncFailed(ctx context.Context, table SyncTable, id uuid.UUID, syncErr string) error
	ListPendingSync(ctx context.Context, table SyncTable, limit int) ([]uuid.UUID, error)

	// =============================================================================
	// Accounting
	// =============================================================================

	CreateJournalEntry(ctx context.Context, input CreateJournalEntryInput) (*schema.JournalEntry, error)
	GetJournalEntry(ctx context.Context, id uuid.UUID) (*schema.JournalEntry, error)
	AddJournalLine(ctx context.Context, entryID uuid.UUID, input JournalLineInput) (*schema.JournalEntry, error)
	// PostJournalEntry posts a balanced draft entry
	PostJournalEntry(ctx context.Context, id uuid.UUID, version int) (*schema.JournalEntry, error)
	VoidJournalEntry(ctx context.Context, id uuid.UUID, version int, reason string) (*schema.JournalEntry, error)
	RecordPayment(ctx context.Context, input RecordPaymentInput) (*schema.Payment, error)
	ListPayments(ctx context.Context, filter PaymentFilter) ([]schema.Payment, error)

	// =============================================================================
	// Audit
	// =============================================================================

	// ListAuditLogs returns the audit trail of one row in commit order
	ListAuditLogs(ctx context.Context, entityType string, entityID uuid.UUID, page Pagination) ([]schema.AuditLog, error)
	// ListAuditLogsAfter returns settled audit rows past the cursor
	ListAuditLogsAfter(ctx context.Context, after schema.AuditCursor, limit int) ([]schema.AuditLog, error)
	RecordUserActivity(ctx context.Context, input RecordUserActivityInput) (*schema.UserActivity, error)
	RecordSecurityEvent(ctx context.Context, input RecordSecurityEventInput) (*schema.SecurityEvent, error)
	RecordComplianceLog(ctx context.Context, input RecordComplianceLogInput) (*schema.ComplianceLog, error)
	ListSecurityEvents(ctx context.Context, filter SecurityEventFilter) ([]schema.SecurityEvent, error)

	// =============================================================================
	// Search
	// =============================================================================

	// Search ranks live rows of one table against a query
	Search(ctx context.Context, table, query string, limit int) ([]SearchHit, error)
	// SearchCRM searches every CRM table
	SearchCRM(ctx context.Context, query string, limit int) ([]SearchHit, error)
}

// Ping checks the primary connection
func (s *pgStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
