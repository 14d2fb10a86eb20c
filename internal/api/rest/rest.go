package rest

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all REST API routes. Everything under /api/v1 runs
// behind the given middleware, which must authenticate the caller.
func SetupRoutes(router *gin.Engine, handler Handler, protected ...gin.HandlerFunc) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1", protected...)
	{
		v1.POST("/profiles", handler.CreateProfile)
		v1.GET("/profiles/:id", handler.GetProfile)
		v1.PATCH("/profiles/:id", handler.UpdateProfile)
		v1.DELETE("/profiles/:id", handler.DeleteProfile)

		// Emails of any entity that can own contact details
		v1.GET("/entities/:type/:id/emails", handler.ListEmails)
		v1.POST("/entities/:type/:id/emails", handler.AddEmail)
		v1.POST("/entities/:type/:id/emails/:email_id/primary", handler.SetPrimaryEmail)

		v1.GET("/me/permissions", handler.MyPermissions)
		v1.POST("/permissions/check", handler.CheckPermission)
		v1.POST("/roles/assignments", handler.AssignRole)
		v1.POST("/delegations", handler.CreateDelegation)
		v1.POST("/delegations/:id/revoke", handler.RevokeDelegation)

		v1.POST("/leads", handler.CreateLead)
		v1.GET("/leads/:id", handler.GetLead)
		v1.POST("/leads/:id/convert", handler.ConvertLead)
		v1.POST("/opportunities/:id/stage", handler.MoveOpportunityStage)

		v1.GET("/search", handler.Search)
		v1.GET("/audit/:entity_type/:entity_id", handler.ListAuditLogs)
		v1.POST("/documents", handler.UploadDocument)
	}
}
