package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubParser struct {
	userID uuid.UUID
	err    error
}

func (s stubParser) ParseAccess(string) (uuid.UUID, error) { return s.userID, s.err }

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()

	tests := []struct {
		name   string
		header string
		parser stubParser
		code   int
	}{
		{"no header", "", stubParser{userID: userID}, http.StatusUnauthorized},
		{"not bearer", "Basic abc", stubParser{userID: userID}, http.StatusUnauthorized},
		{"invalid token", "Bearer abc", stubParser{err: errors.New("bad")}, http.StatusUnauthorized},
		{"nil user", "Bearer abc", stubParser{}, http.StatusUnauthorized},
		{"ok", "Bearer abc", stubParser{userID: userID}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/me", AuthMiddleware(tt.parser), func(c *gin.Context) {
				assert.Equal(t, userID, c.MustGet(ContextUserIDKey))
				assert.Equal(t, "lens-token", c.GetString(ContextLensTokenKey))
				c.Status(http.StatusOK)
			})

			req, _ := http.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			req.Header.Set(LensAccessTokenHeader, "lens-token")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.code, w.Code)
		})
	}
}

func TestRateLimitMiddleware_PerViewer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	alice, bob := uuid.New(), uuid.New()

	r := gin.New()
	r.POST("/reports", func(c *gin.Context) {
		if c.GetHeader("X-User") == "bob" {
			c.Set(ContextUserIDKey, bob)
		} else {
			c.Set(ContextUserIDKey, alice)
		}
	}, RateLimitMiddleware(2, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	send := func(user string) *httptest.ResponseRecorder {
		req, _ := http.NewRequest("POST", "/reports", nil)
		req.Header.Set("X-User", user)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusCreated, send("alice").Code)
	assert.Equal(t, http.StatusCreated, send("alice").Code)
	w := send("alice")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusCreated, send("bob").Code)
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://lenstube.xyz"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req, _ := http.NewRequest("OPTIONS", "/x", nil)
	req.Header.Set("Origin", "https://lenstube.xyz")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://lenstube.xyz", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), LensAccessTokenHeader)

	req, _ = http.NewRequest("GET", "/x", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestPublicationIDValidator(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/publications/:id", PublicationIDValidator("id"), func(c *gin.Context) { c.Status(http.StatusOK) })

	for id, code := range map[string]int{
		"0x01-0x02":   http.StatusOK,
		"0x2f-0x1A3b": http.StatusOK,
		"0x01":        http.StatusBadRequest,
		"01-02":       http.StatusBadRequest,
		"0x01-0xzz":   http.StatusBadRequest,
	} {
		req, _ := http.NewRequest("GET", "/publications/"+id, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, code, w.Code, id)
	}
}
