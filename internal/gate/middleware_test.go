package gate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditDomain "github.com/allisson/phiguard/internal/audit/domain"
)

// fakeRecorder captures audit inputs and returns a configurable error.
type fakeRecorder struct {
	inputs    []*auditDomain.AuditEventInput
	recordErr error
}

func (f *fakeRecorder) Record(_ context.Context, input *auditDomain.AuditEventInput) (*auditDomain.AuditEvent, error) {
	f.inputs = append(f.inputs, input)
	if f.recordErr != nil {
		return nil, f.recordErr
	}
	return &auditDomain.AuditEvent{ID: uuid.Must(uuid.NewV7())}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestActorMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("ExtractsActorFromHeaders", func(t *testing.T) {
		var captured Actor
		var present bool

		router := gin.New()
		router.Use(ActorMiddleware())
		router.GET("/probe", func(c *gin.Context) {
			captured, present = GetActor(c.Request.Context())
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set(HeaderActorID, "user-1")
		req.Header.Set(HeaderOrganizationID, "org-1")
		req.Header.Set(HeaderSessionID, "sess-1")
		req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) Gecko/20100101 Firefox/126.0")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.True(t, present)
		assert.Equal(t, "user-1", captured.ID)
		assert.Equal(t, "org-1", captured.OrganizationID)
		assert.Equal(t, "sess-1", captured.SessionID)
		assert.NotEmpty(t, captured.IPAddress)
		assert.Contains(t, captured.UserAgent, "Firefox")
	})

	t.Run("NoHeadersMeansNoActor", func(t *testing.T) {
		var present bool

		router := gin.New()
		router.Use(ActorMiddleware())
		router.GET("/probe", func(c *gin.Context) {
			_, present = GetActor(c.Request.Context())
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))

		assert.False(t, present)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireJustification(t *testing.T) {
	gin.SetMode(gin.TestMode)

	setupRouter := func(recorder Recorder, handlerRan *bool) *gin.Engine {
		router := gin.New()
		router.Use(ActorMiddleware())
		router.GET("/records",
			RequireJustification("routine records review", "records", recorder, testLogger()),
			func(c *gin.Context) {
				*handlerRan = true
				c.Status(http.StatusOK)
			})
		return router
	}

	authedRequest := func() *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/records", nil)
		req.Header.Set(HeaderActorID, "user-1")
		req.Header.Set(HeaderOrganizationID, "org-1")
		req.Header.Set(HeaderSessionID, "sess-1")
		req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) Gecko/20100101 Firefox/126.0")
		return req
	}

	t.Run("AuditsThenRunsHandler", func(t *testing.T) {
		recorder := &fakeRecorder{}
		handlerRan := false
		router := setupRouter(recorder, &handlerRan)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, authedRequest())

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, handlerRan)

		require.Len(t, recorder.inputs, 1)
		input := recorder.inputs[0]
		assert.Equal(t, "user-1", input.ActorID)
		assert.Equal(t, "org-1", input.OrganizationID)
		assert.Equal(t, "phi.access", input.Action)
		assert.Equal(t, "records", input.Resource)
		assert.Equal(t, "routine records review", input.Justification)
		assert.Equal(t, auditDomain.EventAccess, input.EventKind)
		assert.Equal(t, auditDomain.SeverityMedium, input.Severity)
		assert.True(t, input.PHIAccessed)
		assert.Equal(t, "Firefox", input.Details["browser"])
	})

	t.Run("MissingActorIsRejectedBeforeAudit", func(t *testing.T) {
		recorder := &fakeRecorder{}
		handlerRan := false
		router := setupRouter(recorder, &handlerRan)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/records", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, handlerRan)
		assert.Empty(t, recorder.inputs)
	})

	t.Run("AuditWriteFailureAbortsRequest", func(t *testing.T) {
		recorder := &fakeRecorder{recordErr: errors.New("trail unavailable")}
		handlerRan := false
		router := setupRouter(recorder, &handlerRan)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, authedRequest())

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.False(t, handlerRan)
		require.Len(t, recorder.inputs, 1)
	})

	t.Run("NoUserAgentMeansNoDetails", func(t *testing.T) {
		recorder := &fakeRecorder{}
		handlerRan := false
		router := setupRouter(recorder, &handlerRan)

		req := authedRequest()
		req.Header.Del("User-Agent")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		require.Len(t, recorder.inputs, 1)
		assert.Nil(t, recorder.inputs[0].Details)
	})
}
