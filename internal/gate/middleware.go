package gate

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/mssola/useragent"

	auditDomain "github.com/allisson/phiguard/internal/audit/domain"
	apperrors "github.com/allisson/phiguard/internal/errors"
	"github.com/allisson/phiguard/internal/httputil"
)

// Recorder is the audit trail surface the gate writes through.
type Recorder interface {
	Record(ctx context.Context, input *auditDomain.AuditEventInput) (*auditDomain.AuditEvent, error)
}

// Request-pipeline headers carrying the authenticated actor identity.
const (
	HeaderActorID        = "X-Actor-Id"
	HeaderOrganizationID = "X-Organization-Id"
	HeaderSessionID      = "X-Session-Id"
)

// ActorMiddleware extracts the authenticated actor identity supplied by the
// request pipeline and stores it in the request context. It performs no
// authentication itself; an upstream gateway is expected to have validated
// the identity headers.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := Actor{
			ID:             c.GetHeader(HeaderActorID),
			OrganizationID: c.GetHeader(HeaderOrganizationID),
			SessionID:      c.GetHeader(HeaderSessionID),
			IPAddress:      c.ClientIP(),
			UserAgent:      c.Request.UserAgent(),
		}
		if actor.ID != "" {
			c.Request = c.Request.WithContext(WithActor(c.Request.Context(), actor))
		}
		c.Next()
	}
}

// RequireJustification guards an endpoint that accesses protected data.
//
// Ordering is a hard invariant: the middleware first requires an
// authenticated actor (401 before anything else happens), then writes an
// audit event carrying the justification, and only then passes control to
// the handler. A failed audit write aborts the request, because an unlogged
// access is worse than no access.
func RequireJustification(
	justification string,
	resource string,
	recorder Recorder,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		actor, ok := GetActor(ctx)
		if !ok {
			logger.Debug("access gate rejected request: missing actor identity",
				slog.String("resource", resource))
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		input := &auditDomain.AuditEventInput{
			ActorID:        actor.ID,
			OrganizationID: actor.OrganizationID,
			Action:         "phi.access",
			Resource:       resource,
			Details:        userAgentDetails(actor.UserAgent),
			PHIAccessed:    true,
			EventKind:      auditDomain.EventAccess,
			Justification:  justification,
			SessionID:      actor.SessionID,
			IPAddress:      actor.IPAddress,
			UserAgent:      actor.UserAgent,
			Severity:       auditDomain.SeverityMedium,
		}

		// Audit-first, execute-second: the access record exists even if the
		// guarded handler fails afterward.
		if _, err := recorder.Record(ctx, input); err != nil {
			logger.Error("access gate audit write failed",
				slog.String("resource", resource),
				slog.Any("error", err))
			httputil.HandleErrorGin(c, apperrors.Wrap(err, "access audit write failed"), logger)
			c.Abort()
			return
		}

		c.Next()
	}
}

// userAgentDetails normalizes the raw user agent into structured audit
// details. Returns nil when no user agent was supplied.
func userAgentDetails(rawUA string) map[string]any {
	if rawUA == "" {
		return nil
	}
	ua := useragent.New(rawUA)
	name, version := ua.Browser()
	return map[string]any{
		"browser":         name,
		"browser_version": version,
		"os":              ua.OS(),
		"mobile":          ua.Mobile(),
		"bot":             ua.Bot(),
	}
}
