package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gopher-blog/internal/model"
	"gopher-blog/internal/session"
)

const ContextUserKey = "current_user"

// UserResolver turns a session token into a user. session.ErrNoSession marks
// a token that will never resolve.
type UserResolver interface {
	Identify(ctx context.Context, token string) (*model.User, error)
}

// Identity puts the user behind the session cookie into the gin context. A
// missing, stale or forged cookie leaves the request anonymous and is
// cleared. When the lookup itself fails the request is anonymous too, but the
// cookie stays for the next request.
func Identity(resolver UserResolver, cookie SessionCookie) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookie.Name)
		if err != nil || token == "" {
			c.Next()
			return
		}

		user, err := resolver.Identify(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, session.ErrNoSession) {
				cookie.Clear(c)
			} else {
				_ = c.Error(err)
			}
			c.Next()
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the resolved user, nil for anonymous requests.
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}

type SessionCookie struct {
	Name   string
	Secure bool
}

func (sc SessionCookie) Set(c *gin.Context, ticket *session.Ticket) {
	maxAge := int(time.Until(ticket.ExpiresAt).Seconds())
	if maxAge <= 0 {
		maxAge = -1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sc.Name, ticket.Token, maxAge, "/", "", sc.Secure, true)
}

func (sc SessionCookie) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sc.Name, "", -1, "/", "", sc.Secure, true)
}
