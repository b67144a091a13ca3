package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/iliyamo/luxury-estate-api/internal/config"
	"github.com/iliyamo/luxury-estate-api/internal/model"
	"github.com/iliyamo/luxury-estate-api/internal/repository"
	"github.com/iliyamo/luxury-estate-api/internal/service"
	"github.com/iliyamo/luxury-estate-api/internal/utils"
)

// memBackend is an in-memory LeadBackend.
type memBackend struct {
	mu    sync.Mutex
	leads []model.Lead
}

func (m *memBackend) Create(ctx context.Context, l *model.Lead) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l.ID = primitive.NewObjectID()
	l.CreatedAt = time.Now().UTC()
	l.UpdatedAt = l.CreatedAt
	m.leads = append(m.leads, *l)
	return l.ID.Hex(), nil
}

func (m *memBackend) List(ctx context.Context, limit int) ([]model.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Lead{}
	for i := len(m.leads) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.leads[i])
	}
	return out, nil
}

func (m *memBackend) Available() bool      { return true }
func (m *memBackend) DatabaseName() string { return "estate" }
func (m *memBackend) CollectionNames(ctx context.Context) ([]string, error) {
	return []string{repository.LeadCollection}, nil
}

func testDeps(rdb *redis.Client, leads LeadBackend) Deps {
	return Deps{
		Projects: repository.NewProjectRepo(),
		Leads:    leads,
		Events:   service.NopPublisher{},
		Redis:    rdb,
		Cache: config.CacheConfig{
			Enabled: true, Methods: map[string]bool{http.MethodGet: true},
			TTL: time.Minute, KeyStrategy: "route_query", Prefix: "cache", MaxBodyBytes: 1 << 20,
		},
		RateLimit: config.RateLimitConfig{
			Enabled: true, Capacity: 3, RefillTokens: 1, RefillInterval: time.Hour,
			TTL: 5 * time.Hour, KeyStrategy: "ip_route", Prefix: "rl",
		},
		Logger: zap.NewNop(),
	}
}

func serve(e *echo.Echo, method, path, body string, hdr ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSetup_EndToEnd(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	e := Setup(config.Config{DatabaseURL: "mongodb://x", DatabaseName: "estate"}, testDeps(rdb, &memBackend{}))

	t.Run("root and health", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Luxury Real Estate Backend Running")
		assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

		assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/healthz", "").Code)
	})

	t.Run("projects are cached", func(t *testing.T) {
		first := serve(e, http.MethodGet, "/api/projects", "")
		require.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

		var projects []model.Project
		require.NoError(t, json.Unmarshal(first.Body.Bytes(), &projects))
		assert.Len(t, projects, 2)

		second := serve(e, http.MethodGet, "/api/projects", "")
		assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
		assert.Equal(t, first.Body.String(), second.Body.String())

		assert.Equal(t, http.StatusNotFound, serve(e, http.MethodGet, "/api/projects/unknown", "").Code)
	})

	t.Run("leads round trip and limiter", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			rec := serve(e, http.MethodPost, "/api/leads", `{"name":"Jane","email":"jane@example.com"}`)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), `"status":"ok"`)
		}
		blocked := serve(e, http.MethodPost, "/api/leads", `{"name":"Jane","email":"jane@example.com"}`)
		assert.Equal(t, http.StatusTooManyRequests, blocked.Code)

		rec := serve(e, http.MethodGet, "/api/leads", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("X-Cache"))
		var leads []model.Lead
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &leads))
		assert.Len(t, leads, 3)
	})

	t.Run("diagnostics", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/test", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"connection_status":"Connected"`)
		assert.Contains(t, rec.Body.String(), `"collections":["lead"]`)
	})

	t.Run("cors", func(t *testing.T) {
		rec := serve(e, http.MethodOptions, "/api/leads", "",
			echo.HeaderOrigin, "https://estate.example",
			echo.HeaderAccessControlRequestMethod, http.MethodPost)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	})
}

func TestSetup_WithoutRedisOrDatabase(t *testing.T) {
	e := Setup(config.Config{}, testDeps(nil, repository.NewLeadRepo(nil)))

	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/api/projects/serenity-bay", "").Code)

	rec := serve(e, http.MethodPost, "/api/leads", `{"name":"Jane","email":"jane@example.com"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = serve(e, http.MethodGet, "/test", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"connection_status":"Not Connected"`)
}

func TestSetup_LeadsRequireAdmin(t *testing.T) {
	cfg := config.Config{JWTSecret: "s", LeadsRequireAdmin: true}
	e := Setup(cfg, testDeps(nil, &memBackend{}))

	assert.Equal(t, http.StatusUnauthorized, serve(e, http.MethodGet, "/api/leads", "").Code)

	tok, err := utils.NewAccessToken("s", "admin", utils.RoleAdmin, 5)
	require.NoError(t, err)
	rec := serve(e, http.MethodGet, "/api/leads", "", echo.HeaderAuthorization, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusOK, rec.Code)

	// submissions stay public
	rec = serve(e, http.MethodPost, "/api/leads", `{"name":"Jane","email":"jane@example.com"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}
