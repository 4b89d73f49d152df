package echo

import (
	e "github.com/labstack/echo/v4"
	domain "github.com/unitynest/nest-backend/internal/domain/user"
)

type Handlers struct {
	Auth    *AuthHandler
	Import  *ImportHandler
	User    *UserHandler
	Payment *PaymentHandler
}

// RegisterRoutes mounts every non-nil handler under /api/v1.
func RegisterRoutes(server *e.Echo, tokens TokenParser, h Handlers) {
	if server.Validator == nil {
		server.Validator = NewRequestValidator()
	}

	api := server.Group("/api/v1")
	authed := RequireAuth(tokens)
	adminOnly := RequireRole(domain.RoleAdmin)

	if h.Auth != nil {
		api.POST("/auth/login", h.Auth.Login)
	}
	if h.Import != nil {
		api.POST("/admin/bulk-upload/users", h.Import.ImportUsers, authed, adminOnly)
		api.GET("/admin/bulk-upload/batches", h.Import.ListBatches, authed, adminOnly)
	}
	if h.User != nil {
		api.GET("/users/:id", h.User.GetUserByID, authed)
	}
	if h.Payment != nil {
		api.POST("/payments", h.Payment.Submit, authed)
		api.GET("/admin/payments", h.Payment.List, authed, adminOnly)
		api.POST("/admin/payments/:id/verify", h.Payment.Verify, authed, adminOnly)
		api.POST("/admin/payments/:id/reject", h.Payment.Reject, authed, adminOnly)
	}
}
