package middleware

import (
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/opensamaj/samiti/internal/present/rest/presenter"
)

var tracer = otel.Tracer("identity")

// Context keys for the caller identity. The surrounding auth layer resolves
// credentials before requests reach this service; the values here are
// opaque identifiers and nothing in the core parses them.
const (
	MemberIDCtxKey = "samiti-memberId"
	AdminIDCtxKey  = "samiti-adminId"
)

const (
	MemberIDHeader = "X-Member-ID"
	AdminIDHeader  = "X-Admin-ID"
)

type IdentityMiddleware struct{}

func NewIdentityMiddleware() *IdentityMiddleware {
	return &IdentityMiddleware{}
}

// Identify copies the pre-resolved caller identifiers into the request
// context. It never rejects; enforcement belongs to the route guards.
func (m *IdentityMiddleware) Identify(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		_, span := tracer.Start(c.Request().Context(), "Identity.Middleware.Identify")
		defer span.End()

		memberID := c.Request().Header.Get(MemberIDHeader)
		if memberID != "" {
			c.Set(MemberIDCtxKey, memberID)
			span.SetAttributes(attribute.String("memberId", memberID))
		}

		adminID := c.Request().Header.Get(AdminIDHeader)
		if adminID != "" {
			c.Set(AdminIDCtxKey, adminID)
			span.SetAttributes(attribute.String("adminId", adminID))
		}

		return next(c)
	}
}

// RequireAdmin guards the reference-data mutations and admin listings.
func (m *IdentityMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Get(AdminIDCtxKey) == nil {
			return presenter.Unauthorized(c, "admin identity required")
		}
		return next(c)
	}
}
