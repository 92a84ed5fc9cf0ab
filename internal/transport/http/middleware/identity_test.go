package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopher-blog/internal/model"
	"gopher-blog/internal/session"
)

type stubResolver map[string]*model.User

func (r stubResolver) Identify(_ context.Context, token string) (*model.User, error) {
	if token == "flaky" {
		return nil, errors.New("session store unavailable")
	}
	user, ok := r[token]
	if !ok {
		return nil, session.ErrNoSession
	}
	return user, nil
}

func newIdentityRouter(resolver UserResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Identity(resolver, SessionCookie{Name: "blog_session"}))
	router.GET("/", func(c *gin.Context) {
		if user := CurrentUser(c); user != nil {
			c.String(http.StatusOK, user.Name)
			return
		}
		c.String(http.StatusOK, "anonymous")
	})
	return router
}

func TestIdentity(t *testing.T) {
	resolver := stubResolver{"good": {ID: 1, Name: "Alice"}}
	router := newIdentityRouter(resolver)

	tests := []struct {
		name        string
		cookie      string
		want        string
		wantCleared bool
	}{
		{"no cookie", "", "anonymous", false},
		{"valid session", "good", "Alice", false},
		{"stale session", "revoked", "anonymous", true},
		{"store outage keeps cookie", "flaky", "anonymous", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "blog_session", Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, w.Body.String())
			cleared := false
			for _, c := range w.Result().Cookies() {
				if c.Name == "blog_session" && c.MaxAge < 0 {
					cleared = true
				}
			}
			assert.Equal(t, tt.wantCleared, cleared)
		})
	}
}

func TestSessionCookieSet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	SessionCookie{Name: "blog_session", Secure: true}.Set(c, &session.Ticket{
		Token:     "tok",
		ExpiresAt: time.Now().Add(time.Hour),
	})

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "tok", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
	assert.Greater(t, cookies[0].MaxAge, 3500)
}
