package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"floral-studio/internal/domain"
	"floral-studio/internal/metrics"
	"floral-studio/internal/response"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestRecovery_ReturnsInternalError(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	router := setupTestRouter()
	router.Use(Recovery(zap.New(core), nil))
	router.GET("/panic", func(c *gin.Context) {
		panic("wilted")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	errorData, ok := resp.Error.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, response.ErrCodeInternal, errorData["code"])
	assert.Equal(t, 1, logs.FilterMessage("Studio handler panicked").Len())
}

func TestLogger_LevelFollowsStatus(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	router := setupTestRouter()
	router.Use(Logger(zap.New(core), nil))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	router.GET("/fail", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for _, path := range []string{"/ok", "/bad", "/fail"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Equal(t, zap.ErrorLevel, entries[2].Level)
}

type fixedActor struct {
	user *domain.User
}

func (f fixedActor) CurrentUser() *domain.User { return f.user }

func TestLogger_RecordsActorAndRoute(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	actor := &domain.User{BaseModel: domain.BaseModel{ID: uuid.New()}, Username: "ivy", Role: domain.RoleDesigner}

	router := setupTestRouter()
	router.Use(Logger(zap.New(core), fixedActor{user: actor}))
	router.PUT("/designs/:id", func(c *gin.Context) { c.Status(http.StatusForbidden) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPut, "/designs/42", nil))

	entries := logs.FilterMessage("Studio request denied").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/designs/:id", fields["route"])
	assert.Equal(t, actor.ID.String(), fields["actor_id"])
	assert.Equal(t, string(domain.RoleDesigner), fields["actor_role"])
	assert.Equal(t, true, fields["signed_in"])
}

func TestLogger_SignedOutAndUnmatchedRoute(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	router := setupTestRouter()
	router.Use(Logger(zap.New(core), fixedActor{}))

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "unmatched", fields["route"])
	assert.Equal(t, false, fields["signed_in"])
	assert.NotContains(t, fields, "actor_id")
}

func TestRecovery_KeepsWrittenResponse(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	router := setupTestRouter()
	router.Use(Recovery(zap.New(core), fixedActor{}))
	router.GET("/half", func(c *gin.Context) {
		c.String(http.StatusAccepted, "partial")
		panic("thorn")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/half", nil))

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "partial", w.Body.String())
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "/half", logs.All()[0].ContextMap()["route"])
}

func TestCORS(t *testing.T) {
	router := setupTestRouter()
	router.Use(CORS([]string{"http://localhost:5173"}))
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		name         string
		method       string
		origin       string
		expectStatus int
		expectHeader string
	}{
		{"allowed origin", http.MethodGet, "http://localhost:5173", http.StatusOK, "http://localhost:5173"},
		{"unknown origin", http.MethodGet, "http://evil.example", http.StatusOK, ""},
		{"preflight", http.MethodOptions, "http://localhost:5173", http.StatusNoContent, "http://localhost:5173"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/x", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectStatus, w.Code)
			assert.Equal(t, tt.expectHeader, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestMetrics_RecordsRoutePattern(t *testing.T) {
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
	router := setupTestRouter()
	router.Use(Metrics(m))
	router.GET("/designs/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/designs/123", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	metric := &dto.Metric{}
	counter, err := m.HTTPRequestsTotal.GetMetricWithLabelValues(http.MethodGet, "/designs/:id", "2xx")
	require.NoError(t, err)
	require.NoError(t, counter.Write(metric))
	assert.Equal(t, float64(1), metric.Counter.GetValue())
}

func TestMetrics_NilMetricsPassesThrough(t *testing.T) {
	router := setupTestRouter()
	router.Use(Metrics(nil))
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
