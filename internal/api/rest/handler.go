package rest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/feral-file/ff-crm/internal/api/shared/dto"
	"github.com/feral-file/ff-crm/internal/api/shared/executor"
	"github.com/feral-file/ff-crm/internal/document"
	"github.com/feral-file/ff-crm/internal/domain"
)

// Handler defines the interface for REST API handlers
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)

	// POST /api/v1/profiles
	CreateProfile(c *gin.Context)
	// GET /api/v1/profiles/:id
	GetProfile(c *gin.Context)
	// PATCH /api/v1/profiles/:id
	UpdateProfile(c *gin.Context)
	// DELETE /api/v1/profiles/:id
	DeleteProfile(c *gin.Context)

	// GET /api/v1/entities/:type/:id/emails
	ListEmails(c *gin.Context)
	// POST /api/v1/entities/:type/:id/emails
	AddEmail(c *gin.Context)
	// POST /api/v1/entities/:type/:id/emails/:email_id/primary
	SetPrimaryEmail(c *gin.Context)

	// GET /api/v1/me/permissions
	MyPermissions(c *gin.Context)
	// POST /api/v1/permissions/check
	CheckPermission(c *gin.Context)
	// POST /api/v1/roles/assignments
	AssignRole(c *gin.Context)
	// POST /api/v1/delegations
	CreateDelegation(c *gin.Context)
	// POST /api/v1/delegations/:id/revoke
	RevokeDelegation(c *gin.Context)

	// POST /api/v1/leads
	CreateLead(c *gin.Context)
	// GET /api/v1/leads/:id
	GetLead(c *gin.Context)
	// POST /api/v1/leads/:id/convert
	ConvertLead(c *gin.Context)
	// POST /api/v1/opportunities/:id/stage
	MoveOpportunityStage(c *gin.Context)

	// Search ranks CRM rows against a web-style query
	// GET /api/v1/search?q=<query>&table=<table>&limit=<limit>
	Search(c *gin.Context)

	// ListAuditLogs returns the change history of one entity in commit order
	// GET /api/v1/audit/:entity_type/:entity_id?limit=<limit>&offset=<offset>
	ListAuditLogs(c *gin.Context)

	// UploadDocument stores a multipart file and registers it
	// POST /api/v1/documents
	UploadDocument(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(exec executor.Executor) Handler {
	return &handler{executor: exec}
}

func (h *handler) HealthCheck(c *gin.Context) {
	resp := h.executor.Health(c.Request.Context())
	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}

// =============================================================================
// Profiles
// =============================================================================

func (h *handler) CreateProfile(c *gin.Context) {
	var req dto.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	resp, err := h.executor.CreateProfile(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *handler) GetProfile(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.executor.GetProfile(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) UpdateProfile(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	resp, err := h.executor.UpdateProfile(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) DeleteProfile(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.executor.DeleteProfile(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// =============================================================================
// Emails
// =============================================================================

// entityParams parses the :type and :id path parameters
func entityParams(c *gin.Context) (domain.EntityType, uuid.UUID, bool) {
	entityType := domain.EntityType(c.Param("type"))
	if !entityType.Valid() {
		respondBadRequest(c, "Invalid entity type", string(entityType))
		return "", uuid.Nil, false
	}
	id, ok := uuidParam(c, "id")
	return entityType, id, ok
}

func (h *handler) ListEmails(c *gin.Context) {
	entityType, entityID, ok := entityParams(c)
	if !ok {
		return
	}

	resp, err := h.executor.ListEmails(c.Request.Context(), entityType, entityID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) AddEmail(c *gin.Context) {
	entityType, entityID, ok := entityParams(c)
	if !ok {
		return
	}

	var req dto.AddEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	resp, err := h.executor.AddEmail(c.Request.Context(), entityType, entityID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *handler) SetPrimaryEmail(c *gin.Context) {
	entityType, entityID, ok := entityParams(c)
	if !ok {
		return
	}
	emailID, ok := uuidParam(c, "email_id")
	if !ok {
		return
	}

	resp, err := h.executor.SetPrimaryEmail(c.Request.Context(), entityType, entityID, emailID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// =============================================================================
// RBAC
// =============================================================================

func (h *handler) MyPermissions(c *gin.Context) {
	resp, err := h.executor.MyPermissions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) CheckPermission(c *gin.Context) {
	var req dto.CheckPermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if _, _, err := req.Permission.Parse(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	resp, err := h.executor.CheckPermission(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) AssignRole(c *gin.Context) {
	var req dto.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	resp, err := h.executor.AssignRole(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *handler) CreateDelegation(c *gin.Context) {
	var req dto.CreateDelegationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	resp, err := h.executor.CreateDelegation(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *handler) RevokeDelegation(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	// The body is optional
	var req dto.RevokeDelegationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
			return
		}
	}

	resp, err := h.executor.RevokeDelegation(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// =============================================================================
// CRM
// =============================================================================

func (h *handler) CreateLead(c *gin.Context) {
	var req dto.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if req.Source != "" && !req.Source.Valid() {
		respondValidationError(c, fmt.Sprintf("invalid lead source %q", req.Source))
		return
	}

	resp, err := h.executor.CreateLead(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *handler) GetLead(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.executor.GetLead(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) ConvertLead(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req dto.ConvertLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	resp, err := h.executor.ConvertLead(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) MoveOpportunityStage(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req dto.MoveStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if !req.Stage.Valid() {
		respondValidationError(c, fmt.Sprintf("invalid stage %q", req.Stage))
		return
	}

	resp, err := h.executor.MoveOpportunityStage(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// =============================================================================
// Search, audit and documents
// =============================================================================

func (h *handler) Search(c *gin.Context) {
	params, err := ParseSearchQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	resp, err := h.executor.Search(c.Request.Context(), params.Query, params.Table, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) ListAuditLogs(c *gin.Context) {
	entityID, ok := uuidParam(c, "entity_id")
	if !ok {
		return
	}
	page, err := ParseAuditQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	resp, err := h.executor.ListAuditLogs(c.Request.Context(), c.Param("entity_type"), entityID, *page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) UploadDocument(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondValidationError(c, fmt.Sprintf("Missing file: %v", err))
		return
	}

	input := document.RegisterInput{
		Name:         c.PostForm("name"),
		DocumentType: domain.DocumentType(c.PostForm("document_type")),
	}
	if input.Name == "" {
		input.Name = fileHeader.Filename
	}
	if description := c.PostForm("description"); description != "" {
		input.Description = &description
	}
	if raw := c.PostForm("entity_id"); raw != "" {
		entityID, err := uuid.Parse(raw)
		if err != nil {
			respondValidationError(c, fmt.Sprintf("Invalid entity_id: %v", err))
			return
		}
		input.EntityID = &entityID
	}
	if raw := c.PostForm("entity_type"); raw != "" {
		entityType := domain.EntityType(raw)
		input.EntityType = &entityType
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, fmt.Errorf("failed to open upload: %w", err))
		return
	}
	defer file.Close() //nolint:errcheck
	input.Content = file

	resp, err := h.executor.UploadDocument(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
