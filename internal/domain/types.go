package domain

import "slices"

// oneOf reports whether v is one of the listed values.
func oneOf[T comparable](v T, set ...T) bool {
	return slices.Contains(set, v)
}

// RecordStatus is the lifecycle state shared by most records.
type RecordStatus string

const (
	RecordStatusActive   RecordStatus = "active"
	RecordStatusInactive RecordStatus = "inactive"
	RecordStatusPending  RecordStatus = "pending"
	RecordStatusArchived RecordStatus = "archived"
)

// Valid reports whether the value is a known record status.
func (v RecordStatus) Valid() bool {
	return oneOf(v, RecordStatusActive, RecordStatusInactive, RecordStatusPending, RecordStatusArchived)
}

// EntityType discriminates the owner of a polymorphic (entity_id, entity_type) pair.
type EntityType string

const (
	EntityTypeUser        EntityType = "user"
	EntityTypeContact     EntityType = "contact"
	EntityTypeLead        EntityType = "lead"
	EntityTypeOpportunity EntityType = "opportunity"
	EntityTypeQuote       EntityType = "quote"
	EntityTypeJob         EntityType = "job"
	EntityTypeReferral    EntityType = "referral"
	EntityTypeProduct     EntityType = "product"
	EntityTypeTask        EntityType = "task"
	EntityTypeVendor      EntityType = "vendor"
)

// Valid reports whether the value is a known entity type.
func (v EntityType) Valid() bool {
	return oneOf(v, EntityTypeUser, EntityTypeContact, EntityTypeLead, EntityTypeOpportunity, EntityTypeQuote, EntityTypeJob, EntityTypeReferral, EntityTypeProduct, EntityTypeTask, EntityTypeVendor)
}

type EmailType string

const (
	EmailTypePersonal EmailType = "personal"
	EmailTypeWork     EmailType = "work"
	EmailTypeBilling  EmailType = "billing"
	EmailTypeOther    EmailType = "other"
)

// Valid reports whether the value is a known email type.
func (v EmailType) Valid() bool {
	return oneOf(v, EmailTypePersonal, EmailTypeWork, EmailTypeBilling, EmailTypeOther)
}

type PhoneType string

const (
	PhoneTypeMobile PhoneType = "mobile"
	PhoneTypeHome   PhoneType = "home"
	PhoneTypeWork   PhoneType = "work"
	PhoneTypeFax    PhoneType = "fax"
	PhoneTypeOther  PhoneType = "other"
)

// Valid reports whether the value is a known phone type.
func (v PhoneType) Valid() bool {
	return oneOf(v, PhoneTypeMobile, PhoneTypeHome, PhoneTypeWork, PhoneTypeFax, PhoneTypeOther)
}

type AddressType string

const (
	AddressTypeHome     AddressType = "home"
	AddressTypeWork     AddressType = "work"
	AddressTypeBilling  AddressType = "billing"
	AddressTypeShipping AddressType = "shipping"
	AddressTypeOther    AddressType = "other"
)

// Valid reports whether the value is a known address type.
func (v AddressType) Valid() bool {
	return oneOf(v, AddressTypeHome, AddressTypeWork, AddressTypeBilling, AddressTypeShipping, AddressTypeOther)
}

// VerificationLevel grades how far a profile's identity has been verified.
type VerificationLevel string

const (
	VerificationLevelNone     VerificationLevel = "none"
	VerificationLevelBasic    VerificationLevel = "basic"
	VerificationLevelVerified VerificationLevel = "verified"
	VerificationLevelTrusted  VerificationLevel = "trusted"
)

// Valid reports whether the value is a known verification level.
func (v VerificationLevel) Valid() bool {
	return oneOf(v, VerificationLevelNone, VerificationLevelBasic, VerificationLevelVerified, VerificationLevelTrusted)
}

type ThemePreference string

const (
	ThemePreferenceLight  ThemePreference = "light"
	ThemePreferenceDark   ThemePreference = "dark"
	ThemePreferenceSystem ThemePreference = "system"
)

// Valid reports whether the value is a known theme preference.
func (v ThemePreference) Valid() bool {
	return oneOf(v, ThemePreferenceLight, ThemePreferenceDark, ThemePreferenceSystem)
}

// RoleType separates built-in roles from roles created at runtime.
type RoleType string

const (
	RoleTypeSystem RoleType = "system"
	RoleTypeCustom RoleType = "custom"
)

// Valid reports whether the value is a known role type.
func (v RoleType) Valid() bool {
	return oneOf(v, RoleTypeSystem, RoleTypeCustom)
}

// PermissionAction is the verb half of a permission name.
type PermissionAction string

const (
	PermissionActionCreate  PermissionAction = "create"
	PermissionActionRead    PermissionAction = "read"
	PermissionActionUpdate  PermissionAction = "update"
	PermissionActionDelete  PermissionAction = "delete"
	PermissionActionManage  PermissionAction = "manage"
	PermissionActionApprove PermissionAction = "approve"
	PermissionActionExport  PermissionAction = "export"
)

// Valid reports whether the value is a known permission action.
func (v PermissionAction) Valid() bool {
	return oneOf(v, PermissionActionCreate, PermissionActionRead, PermissionActionUpdate, PermissionActionDelete, PermissionActionManage, PermissionActionApprove, PermissionActionExport)
}

// PermissionScope bounds which records a permission applies to.
type PermissionScope string

const (
	PermissionScopeOwn          PermissionScope = "own"
	PermissionScopeTeam         PermissionScope = "team"
	PermissionScopeOrganization PermissionScope = "organization"
	PermissionScopeGlobal       PermissionScope = "global"
)

// Valid reports whether the value is a known permission scope.
func (v PermissionScope) Valid() bool {
	return oneOf(v, PermissionScopeOwn, PermissionScopeTeam, PermissionScopeOrganization, PermissionScopeGlobal)
}

// GrantStatus is the state of a user_roles or role_permissions grant.
type GrantStatus string

const (
	GrantStatusPending   GrantStatus = "pending"
	GrantStatusActive    GrantStatus = "active"
	GrantStatusSuspended GrantStatus = "suspended"
	GrantStatusRevoked   GrantStatus = "revoked"
	GrantStatusExpired   GrantStatus = "expired"
)

// Valid reports whether the value is a known grant status.
func (v GrantStatus) Valid() bool {
	return oneOf(v, GrantStatusPending, GrantStatusActive, GrantStatusSuspended, GrantStatusRevoked, GrantStatusExpired)
}

type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

// Valid reports whether the value is a known approval status.
func (v ApprovalStatus) Valid() bool {
	return oneOf(v, ApprovalStatusPending, ApprovalStatusApproved, ApprovalStatusRejected)
}

type DelegationStatus string

const (
	DelegationStatusPending DelegationStatus = "pending"
	DelegationStatusActive  DelegationStatus = "active"
	DelegationStatusRevoked DelegationStatus = "revoked"
	DelegationStatusExpired DelegationStatus = "expired"
)

// Valid reports whether the value is a known delegation status.
func (v DelegationStatus) Valid() bool {
	return oneOf(v, DelegationStatusPending, DelegationStatusActive, DelegationStatusRevoked, DelegationStatusExpired)
}

// AuditAction is the kind of change recorded in audit_logs.
type AuditAction string

const (
	AuditActionInsert     AuditAction = "insert"
	AuditActionUpdate     AuditAction = "update"
	AuditActionSoftDelete AuditAction = "soft_delete"
	AuditActionRestore    AuditAction = "restore"
	AuditActionLogin      AuditAction = "login"
	AuditActionLogout     AuditAction = "logout"
	AuditActionAccess     AuditAction = "access"
	AuditActionExport     AuditAction = "export"
)

// Valid reports whether the value is a known audit action.
func (v AuditAction) Valid() bool {
	return oneOf(v, AuditActionInsert, AuditActionUpdate, AuditActionSoftDelete, AuditActionRestore, AuditActionLogin, AuditActionLogout, AuditActionAccess, AuditActionExport)
}

type SecurityEventType string

const (
	SecurityEventTypeLoginSuccess       SecurityEventType = "login_success"
	SecurityEventTypeLoginFailure       SecurityEventType = "login_failure"
	SecurityEventTypePasswordChange     SecurityEventType = "password_change"
	SecurityEventTypeMFAEnabled         SecurityEventType = "mfa_enabled"
	SecurityEventTypeMFADisabled        SecurityEventType = "mfa_disabled"
	SecurityEventTypePermissionDenied   SecurityEventType = "permission_denied"
	SecurityEventTypeRoleChange         SecurityEventType = "role_change"
	SecurityEventTypeSuspiciousActivity SecurityEventType = "suspicious_activity"
)

// Valid reports whether the value is a known security event type.
func (v SecurityEventType) Valid() bool {
	return oneOf(v, SecurityEventTypeLoginSuccess, SecurityEventTypeLoginFailure, SecurityEventTypePasswordChange, SecurityEventTypeMFAEnabled, SecurityEventTypeMFADisabled, SecurityEventTypePermissionDenied, SecurityEventTypeRoleChange, SecurityEventTypeSuspiciousActivity)
}

type SeverityLevel string

const (
	SeverityLevelLow      SeverityLevel = "low"
	SeverityLevelMedium   SeverityLevel = "medium"
	SeverityLevelHigh     SeverityLevel = "high"
	SeverityLevelCritical SeverityLevel = "critical"
)

// Valid reports whether the value is a known severity level.
func (v SeverityLevel) Valid() bool {
	return oneOf(v, SeverityLevelLow, SeverityLevelMedium, SeverityLevelHigh, SeverityLevelCritical)
}

type ComplianceFramework string

const (
	ComplianceFrameworkGDPR   ComplianceFramework = "gdpr"
	ComplianceFrameworkCCPA   ComplianceFramework = "ccpa"
	ComplianceFrameworkHIPAA  ComplianceFramework = "hipaa"
	ComplianceFrameworkSOX    ComplianceFramework = "sox"
	ComplianceFrameworkPCIDSS ComplianceFramework = "pci_dss"
)

// Valid reports whether the value is a known compliance framework.
func (v ComplianceFramework) Valid() bool {
	return oneOf(v, ComplianceFrameworkGDPR, ComplianceFrameworkCCPA, ComplianceFrameworkHIPAA, ComplianceFrameworkSOX, ComplianceFrameworkPCIDSS)
}

type LeadStatus string

const (
	LeadStatusNew         LeadStatus = "new"
	LeadStatusContacted   LeadStatus = "contacted"
	LeadStatusQualified   LeadStatus = "qualified"
	LeadStatusUnqualified LeadStatus = "unqualified"
	LeadStatusConverted   LeadStatus = "converted"
	LeadStatusLost        LeadStatus = "lost"
)

// Valid reports whether the value is a known lead status.
func (v LeadStatus) Valid() bool {
	return oneOf(v, LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusUnqualified, LeadStatusConverted, LeadStatusLost)
}

type LeadSource string

const (
	LeadSourceWebsite  LeadSource = "website"
	LeadSourceReferral LeadSource = "referral"
	LeadSourceSocial   LeadSource = "social"
	LeadSourceEmail    LeadSource = "email"
	LeadSourceEvent    LeadSource = "event"
	LeadSourceColdCall LeadSource = "cold_call"
	LeadSourcePartner  LeadSource = "partner"
	LeadSourceOther    LeadSource = "other"
)

// Valid reports whether the value is a known lead source.
func (v LeadSource) Valid() bool {
	return oneOf(v, LeadSourceWebsite, LeadSourceReferral, LeadSourceSocial, LeadSourceEmail, LeadSourceEvent, LeadSourceColdCall, LeadSourcePartner, LeadSourceOther)
}

type ContactType string

const (
	ContactTypeCustomer ContactType = "customer"
	ContactTypeProspect ContactType = "prospect"
	ContactTypePartner  ContactType = "partner"
	ContactTypeVendor   ContactType = "vendor"
	ContactTypeOther    ContactType = "other"
)

// Valid reports whether the value is a known contact type.
func (v ContactType) Valid() bool {
	return oneOf(v, ContactTypeCustomer, ContactTypeProspect, ContactTypePartner, ContactTypeVendor, ContactTypeOther)
}

type AccountType string

const (
	AccountTypeIndividual AccountType = "individual"
	AccountTypeBusiness   AccountType = "business"
	AccountTypePartner    AccountType = "partner"
	AccountTypeVendor     AccountType = "vendor"
	AccountTypeOther      AccountType = "other"
)

// Valid reports whether the value is a known account type.
func (v AccountType) Valid() bool {
	return oneOf(v, AccountTypeIndividual, AccountTypeBusiness, AccountTypePartner, AccountTypeVendor, AccountTypeOther)
}

// OpportunityStage is the sales stage of an opportunity. The closed stages are terminal.
type OpportunityStage string

const (
	OpportunityStageProspecting   OpportunityStage = "prospecting"
	OpportunityStageQualification OpportunityStage = "qualification"
	OpportunityStageProposal      OpportunityStage = "proposal"
	OpportunityStageNegotiation   OpportunityStage = "negotiation"
	OpportunityStageClosedWon     OpportunityStage = "closed_won"
	OpportunityStageClosedLost    OpportunityStage = "closed_lost"
)

// Valid reports whether the value is a known opportunity stage.
func (v OpportunityStage) Valid() bool {
	return oneOf(v, OpportunityStageProspecting, OpportunityStageQualification, OpportunityStageProposal, OpportunityStageNegotiation, OpportunityStageClosedWon, OpportunityStageClosedLost)
}

type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "draft"
	QuoteStatusSent     QuoteStatus = "sent"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusRejected QuoteStatus = "rejected"
	QuoteStatusExpired  QuoteStatus = "expired"
)

// Valid reports whether the value is a known quote status.
func (v QuoteStatus) Valid() bool {
	return oneOf(v, QuoteStatusDraft, QuoteStatusSent, QuoteStatusAccepted, QuoteStatusRejected, QuoteStatusExpired)
}

type JobStatus string

const (
	JobStatusScheduled  JobStatus = "scheduled"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusOnHold     JobStatus = "on_hold"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusCancelled  JobStatus = "cancelled"
)

// Valid reports whether the value is a known job status.
func (v JobStatus) Valid() bool {
	return oneOf(v, JobStatusScheduled, JobStatusInProgress, JobStatusOnHold, JobStatusCompleted, JobStatusCancelled)
}

type PriorityLevel string

const (
	PriorityLevelLow    PriorityLevel = "low"
	PriorityLevelMedium PriorityLevel = "medium"
	PriorityLevelHigh   PriorityLevel = "high"
	PriorityLevelUrgent PriorityLevel = "urgent"
)

// Valid reports whether the value is a known priority level.
func (v PriorityLevel) Valid() bool {
	return oneOf(v, PriorityLevelLow, PriorityLevelMedium, PriorityLevelHigh, PriorityLevelUrgent)
}

type ReferralStatus string

const (
	ReferralStatusPending   ReferralStatus = "pending"
	ReferralStatusContacted ReferralStatus = "contacted"
	ReferralStatusConverted ReferralStatus = "converted"
	ReferralStatusDeclined  ReferralStatus = "declined"
)

// Valid reports whether the value is a known referral status.
func (v ReferralStatus) Valid() bool {
	return oneOf(v, ReferralStatusPending, ReferralStatusContacted, ReferralStatusConverted, ReferralStatusDeclined)
}

type CommunicationType string

const (
	CommunicationTypeEmail   CommunicationType = "email"
	CommunicationTypeCall    CommunicationType = "call"
	CommunicationTypeMeeting CommunicationType = "meeting"
	CommunicationTypeSMS     CommunicationType = "sms"
	CommunicationTypeNote    CommunicationType = "note"
)

// Valid reports whether the value is a known communication type.
func (v CommunicationType) Valid() bool {
	return oneOf(v, CommunicationTypeEmail, CommunicationTypeCall, CommunicationTypeMeeting, CommunicationTypeSMS, CommunicationTypeNote)
}

type CommunicationDirection string

const (
	CommunicationDirectionInbound  CommunicationDirection = "inbound"
	CommunicationDirectionOutbound CommunicationDirection = "outbound"
)

// Valid reports whether the value is a known communication direction.
func (v CommunicationDirection) Valid() bool {
	return oneOf(v, CommunicationDirectionInbound, CommunicationDirectionOutbound)
}

type DocumentType string

const (
	DocumentTypeContract DocumentType = "contract"
	DocumentTypeProposal DocumentType = "proposal"
	DocumentTypeInvoice  DocumentType = "invoice"
	DocumentTypeReceipt  DocumentType = "receipt"
	DocumentTypeOther    DocumentType = "other"
)

// Valid reports whether the value is a known document type.
func (v DocumentType) Valid() bool {
	return oneOf(v, DocumentTypeContract, DocumentTypeProposal, DocumentTypeInvoice, DocumentTypeReceipt, DocumentTypeOther)
}

type RelationshipType string

const (
	RelationshipTypeParent     RelationshipType = "parent"
	RelationshipTypeChild      RelationshipType = "child"
	RelationshipTypePartner    RelationshipType = "partner"
	RelationshipTypeCompetitor RelationshipType = "competitor"
	RelationshipTypeReferrer   RelationshipType = "referrer"
	RelationshipTypeOther      RelationshipType = "other"
)

// Valid reports whether the value is a known relationship type.
func (v RelationshipType) Valid() bool {
	return oneOf(v, RelationshipTypeParent, RelationshipTypeChild, RelationshipTypePartner, RelationshipTypeCompetitor, RelationshipTypeReferrer, RelationshipTypeOther)
}

type PipelineType string

const (
	PipelineTypeSales      PipelineType = "sales"
	PipelineTypeService    PipelineType = "service"
	PipelineTypeRecruiting PipelineType = "recruiting"
	PipelineTypeCustom     PipelineType = "custom"
)

// Valid reports whether the value is a known pipeline type.
func (v PipelineType) Valid() bool {
	return oneOf(v, PipelineTypeSales, PipelineTypeService, PipelineTypeRecruiting, PipelineTypeCustom)
}

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusBlocked    TaskStatus = "blocked"
	TaskStatusReview     TaskStatus = "review"
	TaskStatusDone       TaskStatus = "done"
	TaskStatusArchived   TaskStatus = "archived"
)

// Valid reports whether the value is a known task status.
func (v TaskStatus) Valid() bool {
	return oneOf(v, TaskStatusTodo, TaskStatusInProgress, TaskStatusBlocked, TaskStatusReview, TaskStatusDone, TaskStatusArchived)
}

type DependencyType string

const (
	DependencyTypeFinishToStart  DependencyType = "finish_to_start"
	DependencyTypeStartToStart   DependencyType = "start_to_start"
	DependencyTypeFinishToFinish DependencyType = "finish_to_finish"
	DependencyTypeStartToFinish  DependencyType = "start_to_finish"
)

// Valid reports whether the value is a known dependency type.
func (v DependencyType) Valid() bool {
	return oneOf(v, DependencyTypeFinishToStart, DependencyTypeStartToStart, DependencyTypeFinishToFinish, DependencyTypeStartToFinish)
}

type LocationType string

const (
	LocationTypeWarehouse LocationType = "warehouse"
	LocationTypeStore     LocationType = "store"
	LocationTypeVehicle   LocationType = "vehicle"
	LocationTypeSite      LocationType = "site"
)

// Valid reports whether the value is a known location type.
func (v LocationType) Valid() bool {
	return oneOf(v, LocationTypeWarehouse, LocationTypeStore, LocationTypeVehicle, LocationTypeSite)
}

// InventoryTransactionType classifies a stock movement. Receipts and returns add stock, issues remove it.
type InventoryTransactionType string

const (
	InventoryTransactionTypeReceipt    InventoryTransactionType = "receipt"
	InventoryTransactionTypeIssue      InventoryTransactionType = "issue"
	InventoryTransactionTypeAdjustment InventoryTransactionType = "adjustment"
	InventoryTransactionTypeTransfer   InventoryTransactionType = "transfer"
	InventoryTransactionTypeReturn     InventoryTransactionType = "return"
)

// Valid reports whether the value is a known inventory transaction type.
func (v InventoryTransactionType) Valid() bool {
	return oneOf(v, InventoryTransactionTypeReceipt, InventoryTransactionTypeIssue, InventoryTransactionTypeAdjustment, InventoryTransactionTypeTransfer, InventoryTransactionTypeReturn)
}

// Sign is +1 for movements that add stock, -1 for those that remove it and
// 0 when either direction is allowed.
func (v InventoryTransactionType) Sign() int {
	switch v {
	case InventoryTransactionTypeReceipt, InventoryTransactionTypeReturn:
		return 1
	case InventoryTransactionTypeIssue:
		return -1
	}
	return 0
}

type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft             PurchaseOrderStatus = "draft"
	PurchaseOrderStatusSubmitted         PurchaseOrderStatus = "submitted"
	PurchaseOrderStatusApproved          PurchaseOrderStatus = "approved"
	PurchaseOrderStatusPartiallyReceived PurchaseOrderStatus = "partially_received"
	PurchaseOrderStatusReceived          PurchaseOrderStatus = "received"
	PurchaseOrderStatusCancelled         PurchaseOrderStatus = "cancelled"
)

// Valid reports whether the value is a known purchase order status.
func (v PurchaseOrderStatus) Valid() bool {
	return oneOf(v, PurchaseOrderStatusDraft, PurchaseOrderStatusSubmitted, PurchaseOrderStatusApproved, PurchaseOrderStatusPartiallyReceived, PurchaseOrderStatusReceived, PurchaseOrderStatusCancelled)
}

type AccountCategory string

const (
	AccountCategoryAsset     AccountCategory = "asset"
	AccountCategoryLiability AccountCategory = "liability"
	AccountCategoryEquity    AccountCategory = "equity"
	AccountCategoryRevenue   AccountCategory = "revenue"
	AccountCategoryExpense   AccountCategory = "expense"
)

// Valid reports whether the value is a known account category.
func (v AccountCategory) Valid() bool {
	return oneOf(v, AccountCategoryAsset, AccountCategoryLiability, AccountCategoryEquity, AccountCategoryRevenue, AccountCategoryExpense)
}

// JournalEntryStatus is the posting state of a journal entry. Posted and void entries are immutable.
type JournalEntryStatus string

const (
	JournalEntryStatusDraft  JournalEntryStatus = "draft"
	JournalEntryStatusPosted JournalEntryStatus = "posted"
	JournalEntryStatusVoid   JournalEntryStatus = "void"
)

// Valid reports whether the value is a known journal entry status.
func (v JournalEntryStatus) Valid() bool {
	return oneOf(v, JournalEntryStatusDraft, JournalEntryStatusPosted, JournalEntryStatusVoid)
}

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCheck        PaymentMethod = "check"
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodOther        PaymentMethod = "other"
)

// Valid reports whether the value is a known payment method.
func (v PaymentMethod) Valid() bool {
	return oneOf(v, PaymentMethodCash, PaymentMethodCheck, PaymentMethodCreditCard, PaymentMethodBankTransfer, PaymentMethodOther)
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// Valid reports whether the value is a known payment status.
func (v PaymentStatus) Valid() bool {
	return oneOf(v, PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusRefunded)
}

// SyncStatus tracks replication of a row to an external system.
type SyncStatus string

const (
	SyncStatusPending SyncStatus = "pending"
	SyncStatusSynced  SyncStatus = "synced"
	SyncStatusFailed  SyncStatus = "failed"
	SyncStatusSkipped SyncStatus = "skipped"
)

// Valid reports whether the value is a known sync status.
func (v SyncStatus) Valid() bool {
	return oneOf(v, SyncStatusPending, SyncStatusSynced, SyncStatusFailed, SyncStatusSkipped)
}
