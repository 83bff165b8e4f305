package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiptix/internal/domain"
	"shiptix/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func sessionEngine() *gin.Engine {
	r := gin.New()
	r.Use(Session(3600, false))
	r.GET("/sid", func(c *gin.Context) {
		c.String(http.StatusOK, GetSessionID(c))
	})
	return r
}

func TestSession_MintsWhenMissing(t *testing.T) {
	r := sessionEngine()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sid", nil))

	require.Equal(t, http.StatusOK, w.Code)
	id := w.Body.String()
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, w.Header().Get(SessionHeader))
	assert.Contains(t, w.Header().Get("Set-Cookie"), SessionCookie+"="+id)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "HttpOnly")
}

func TestSession_ReusesHeaderThenCookie(t *testing.T) {
	r := sessionEngine()
	known := uuid.NewString()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sid", nil)
	req.Header.Set(SessionHeader, known)
	r.ServeHTTP(w, req)
	assert.Equal(t, known, w.Body.String())

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/sid", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: known})
	r.ServeHTTP(w, req)
	assert.Equal(t, known, w.Body.String())
}

func TestSession_RejectsMalformedID(t *testing.T) {
	r := sessionEngine()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sid", nil)
	req.Header.Set(SessionHeader, "../../etc/passwd")
	r.ServeHTTP(w, req)

	assert.NotEqual(t, "../../etc/passwd", w.Body.String())
	_, err := uuid.Parse(w.Body.String())
	assert.NoError(t, err)
}

type stubParser struct{}

func (stubParser) ParseToken(raw string) (services.Claims, error) {
	switch raw {
	case "admin-token":
		return services.Claims{UserID: "u-1", Role: "admin"}, nil
	case "staff-token":
		return services.Claims{UserID: "u-2", Role: "staff"}, nil
	default:
		return services.Claims{}, domain.UnauthorizedError{Msg: "token tidak valid"}
	}
}

func authEngine() *gin.Engine {
	r := gin.New()
	r.Use(RequireAuth(stubParser{}), RequireRoles("Admin", "owner"))
	r.GET("/me", func(c *gin.Context) {
		u := CurrentUser(c)
		c.String(http.StatusOK, u.UserID+"/"+u.Role)
	})
	return r
}

func TestRequireAuthAndRoles(t *testing.T) {
	cases := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"no header", "", http.StatusUnauthorized, `"code":"unauthorized"`},
		{"wrong scheme", "Basic admin-token", http.StatusUnauthorized, `"code":"unauthorized"`},
		{"bad token", "Bearer nope", http.StatusUnauthorized, "token tidak valid"},
		{"role not allowed", "Bearer staff-token", http.StatusForbidden, `"code":"forbidden"`},
		{"admin", "bearer admin-token", http.StatusOK, "u-1/admin"},
	}
	r := authEngine()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tc.body), "body %q lacks %q", w.Body.String(), tc.body)
		})
	}
}

func TestRequireRoles_WithoutAuthIsUnauthorized(t *testing.T) {
	r := gin.New()
	r.Use(RequireRoles("admin"))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestID_EchoesIncoming(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", "req-42")
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-42", w.Body.String())
}
