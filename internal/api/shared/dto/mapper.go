package dto

import (
	"encoding/json"

	"github.com/feral-file/ff-crm/internal/store"
	"github.com/feral-file/ff-crm/internal/store/schema"
)

func mapRecord(b schema.Base) Record {
	return Record{
		ID:        b.ID,
		Version:   b.Version,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// rawJSON returns nil for empty columns so omitempty drops them
func rawJSON(data []byte) json.RawMessage {
	if len(data) == 0 {
		return nil
	}
	return json.RawMessage(data)
}

// MapProfileToDTO maps a schema.Profile to ProfileResponse
func MapProfileToDTO(p *schema.Profile) *ProfileResponse {
	if p == nil {
		return nil
	}
	return &ProfileResponse{
		Record:            mapRecord(p.Base),
		UserID:            p.UserID,
		ProfileType:       p.ProfileType,
		Handle:            p.Handle,
		Email:             p.Email,
		FirstName:         p.FirstName,
		LastName:          p.LastName,
		FullName:          p.FullName,
		DisplayName:       p.DisplayName,
		AvatarURL:         p.AvatarURL,
		Bio:               p.Bio,
		Timezone:          p.Timezone,
		Locale:            p.Locale,
		Status:            p.Status,
		VerificationLevel: p.VerificationLevel,
		IsVerified:        p.IsVerified,
		Metadata:          rawJSON(p.Metadata),
	}
}

// MapEmailToDTO maps a schema.EntityEmail to EmailResponse
func MapEmailToDTO(e *schema.EntityEmail) *EmailResponse {
	if e == nil {
		return nil
	}
	return &EmailResponse{
		Record:     mapRecord(e.Base),
		EntityID:   e.EntityID,
		EntityType: e.EntityType,
		Email:      e.Email,
		EmailType:  e.EmailType,
		IsPrimary:  e.IsPrimary,
		IsVerified: e.IsVerified,
		VerifiedAt: e.VerifiedAt,
	}
}

// MapEmailsToDTO maps a list of emails
func MapEmailsToDTO(emails []schema.EntityEmail) *EmailListResponse {
	resp := &EmailListResponse{Emails: make([]EmailResponse, 0, len(emails))}
	for i := range emails {
		resp.Emails = append(resp.Emails, *MapEmailToDTO(&emails[i]))
	}
	return resp
}

// MapUserRoleToDTO maps a schema.UserRole to UserRoleResponse
func MapUserRoleToDTO(r *schema.UserRole) *UserRoleResponse {
	if r == nil {
		return nil
	}
	resp := &UserRoleResponse{
		Record:         mapRecord(r.Base),
		UserID:         r.UserID,
		RoleID:         r.RoleID,
		IsPrimary:      r.IsPrimary,
		Status:         r.Status,
		ApprovalStatus: r.ApprovalStatus,
		ValidFrom:      r.ValidFrom,
		ValidUntil:     r.ValidUntil,
		Reason:         r.Reason,
	}
	if r.Role != nil {
		resp.RoleName = r.Role.Name
	}
	return resp
}

// MapDelegationToDTO maps a schema.RoleDelegation to DelegationResponse
func MapDelegationToDTO(d *schema.RoleDelegation) *DelegationResponse {
	if d == nil {
		return nil
	}
	return &DelegationResponse{
		Record:             mapRecord(d.Base),
		DelegatorID:        d.DelegatorID,
		DelegateID:         d.DelegateID,
		RoleID:             d.RoleID,
		ParentDelegationID: d.ParentDelegationID,
		ValidFrom:          d.ValidFrom,
		ValidUntil:         d.ValidUntil,
		Status:             d.Status,
		ApprovalStatus:     d.ApprovalStatus,
		CanRedelegate:      d.CanRedelegate,
		Reason:             d.Reason,
		RevokedAt:          d.RevokedAt,
		RevocationReason:   d.RevocationReason,
	}
}

// MapLeadToDTO maps a schema.CRMLead to LeadResponse
func MapLeadToDTO(l *schema.CRMLead) *LeadResponse {
	if l == nil {
		return nil
	}
	return &LeadResponse{
		Record:                 mapRecord(l.Base),
		OwnerID:                l.OwnerID,
		AssignedTo:             l.AssignedTo,
		FirstName:              l.FirstName,
		LastName:               l.LastName,
		FullName:               l.FullName,
		Email:                  l.Email,
		Phone:                  l.Phone,
		CompanyName:            l.CompanyName,
		JobTitle:               l.JobTitle,
		Status:                 l.Status,
		Source:                 l.Source,
		Score:                  l.Score,
		EstimatedValue:         l.EstimatedValue,
		ConvertedAt:            l.ConvertedAt,
		ConvertedContactID:     l.ConvertedContactID,
		ConvertedOpportunityID: l.ConvertedOpportunityID,
		Notes:                  l.Notes,
	}
}

// MapContactToDTO maps a schema.CRMContact to ContactResponse
func MapContactToDTO(c *schema.CRMContact) *ContactResponse {
	if c == nil {
		return nil
	}
	tags := []string(c.Tags)
	if tags == nil {
		tags = []string{}
	}
	return &ContactResponse{
		Record:      mapRecord(c.Base),
		OwnerID:     c.OwnerID,
		AssignedTo:  c.AssignedTo,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		FullName:    c.FullName,
		Email:       c.Email,
		Phone:       c.Phone,
		CompanyName: c.CompanyName,
		ContactType: c.ContactType,
		Status:      c.Status,
		Tags:        tags,
	}
}

// MapOpportunityToDTO maps a schema.CRMOpportunity to OpportunityResponse
func MapOpportunityToDTO(o *schema.CRMOpportunity) *OpportunityResponse {
	if o == nil {
		return nil
	}
	return &OpportunityResponse{
		Record:          mapRecord(o.Base),
		OwnerID:         o.OwnerID,
		AssignedTo:      o.AssignedTo,
		Name:            o.Name,
		ContactID:       o.ContactID,
		LeadID:          o.LeadID,
		PipelineID:      o.PipelineID,
		Stage:           o.Stage,
		Amount:          o.Amount,
		Probability:     o.Probability,
		ExpectedRevenue: o.ExpectedRevenue,
		Currency:        o.Currency,
		ClosedAt:        o.ClosedAt,
	}
}

// MapConvertLeadResultToDTO maps the rows written by a lead conversion
func MapConvertLeadResultToDTO(r *store.ConvertLeadResult) *ConvertLeadResponse {
	resp := &ConvertLeadResponse{
		Lead:        *MapLeadToDTO(r.Lead),
		Contact:     *MapContactToDTO(r.Contact),
		Opportunity: MapOpportunityToDTO(r.Opportunity),
	}
	return resp
}

// MapAuditLogsToDTO maps a page of audit rows
func MapAuditLogsToDTO(logs []schema.AuditLog, page store.Pagination) *AuditLogListResponse {
	resp := &AuditLogListResponse{
		Items:  make([]AuditLogResponse, 0, len(logs)),
		Offset: page.Offset,
		Limit:  page.Limit,
	}
	for _, l := range logs {
		resp.Items = append(resp.Items, AuditLogResponse{
			ID:         l.ID,
			Seq:        l.Seq,
			EntityType: l.EntityType,
			EntityID:   l.EntityID,
			Action:     l.Action,
			UserID:     l.UserID,
			Changes:    rawJSON(l.Changes),
			OldValues:  rawJSON(l.OldValues),
			NewValues:  rawJSON(l.NewValues),
			CreatedAt:  l.CreatedAt,
		})
	}
	return resp
}

// MapDocumentToDTO maps a schema.CRMDocument to DocumentResponse
func MapDocumentToDTO(d *schema.CRMDocument) *DocumentResponse {
	if d == nil {
		return nil
	}
	return &DocumentResponse{
		Record:         mapRecord(d.Base),
		EntityID:       d.EntityID,
		EntityType:     d.EntityType,
		Name:           d.Name,
		DocumentType:   d.DocumentType,
		MimeType:       d.MimeType,
		SizeBytes:      d.SizeBytes,
		ChecksumSHA256: d.ChecksumSHA256,
		Description:    d.Description,
	}
}
