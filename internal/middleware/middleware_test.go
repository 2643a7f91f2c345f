package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/brightminds-api/internal/models"
	"github.com/noah-isme/brightminds-api/internal/policy"
	"github.com/noah-isme/brightminds-api/internal/service"
	"github.com/noah-isme/brightminds-api/pkg/response"
)

type stubValidator map[string]models.Identity

func (s stubValidator) ValidateToken(token string) (*models.JWTClaims, error) {
	identity, ok := s[token]
	if !ok {
		return nil, errors.New("bad token")
	}
	return &models.JWTClaims{User: identity}, nil
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		identity, _ := IdentityFromContext(c)
		c.JSON(http.StatusOK, identity)
	})
	r.GET("/protected", handlers...)
	return r
}

func do(r http.Handler, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.ErrorBody {
	t.Helper()
	var body response.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestJWTMiddleware(t *testing.T) {
	validator := stubValidator{"good": {ID: "u1", Role: models.RoleTeacher}}
	r := newRouter(JWT(validator))

	rec := do(r, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "No token provided", decodeError(t, rec).Error)

	rec = do(r, "Token good")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(r, "Bearer forged")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "Invalid token", body.Error)
	assert.Equal(t, "UNAUTHORIZED", body.Code)

	rec = do(r, "bearer good")
	require.Equal(t, http.StatusOK, rec.Code)
	var identity models.Identity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &identity))
	assert.Equal(t, models.Identity{ID: "u1", Role: models.RoleTeacher}, identity)
}

func TestAuthorizeMiddleware(t *testing.T) {
	validator := stubValidator{
		"teacher": {ID: "t1", Role: models.RoleTeacher},
		"admin":   {ID: "a1", Role: models.RoleAdmin},
	}
	r := newRouter(JWT(validator), Authorize(policy.KindUser, policy.ActionList))

	assert.Equal(t, http.StatusForbidden, do(r, "Bearer teacher").Code)
	assert.Equal(t, http.StatusOK, do(r, "Bearer admin").Code)

	bare := newRouter(Authorize(policy.KindUser, policy.ActionList))
	assert.Equal(t, http.StatusUnauthorized, do(bare, "").Code)
}

func TestMetricsMiddlewareUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := service.NewMetricsService()
	r := gin.New()
	r.Use(Metrics(metrics))
	r.GET("/api/news/:id", func(c *gin.Context) {
		time.Sleep(time.Millisecond)
		c.Status(http.StatusOK)
	})

	for _, path := range []string{"/api/news/1", "/api/news/2", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, `http_requests_total{method="GET",path="/api/news/:id",status="200"} 2`)
	assert.Contains(t, body, `path="unmatched",status="404"`)
	assert.False(t, strings.Contains(body, `path="/api/news/1"`))
}
