package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"gopher-blog/internal/app"
	"gopher-blog/internal/model"
	"gopher-blog/internal/transport/http/middleware"
	"gopher-blog/internal/transport/http/view"
)

const (
	flashCookie = "flash"

	FlashSuccess = "success"
	FlashWarning = "warning"
)

// Presenter fills the per-request parts of view.Page and renders it.
type Presenter struct {
	gate      *app.AdminGate
	siteTitle string
	// secure marks the flash cookie Secure, like the session cookie.
	secure bool
	log    logrus.FieldLogger
}

func NewPresenter(gate *app.AdminGate, siteTitle string, secureCookies bool, log logrus.FieldLogger) *Presenter {
	return &Presenter{gate: gate, siteTitle: siteTitle, secure: secureCookies, log: log}
}

func (p *Presenter) Render(c *gin.Context, status int, name string, page view.Page) {
	user := middleware.CurrentUser(c)
	page.SiteTitle = p.siteTitle
	page.CurrentUser = user
	page.IsAdmin = p.gate.IsAdmin(user)
	page.Flash = p.popFlash(c)
	c.HTML(status, name, page)
}

// RequireAdmin is the guard every privileged handler calls first. On denial
// the 403 page is already written and the caller must return.
func (p *Presenter) RequireAdmin(c *gin.Context) (*model.User, bool) {
	user := middleware.CurrentUser(c)
	if err := p.gate.RequireAdmin(user); err != nil {
		p.Status(c, http.StatusForbidden, "")
		return nil, false
	}
	return user, true
}

// Status renders the error page for status and aborts the chain.
func (p *Presenter) Status(c *gin.Context, status int, message string) {
	p.Render(c, status, "error.html", view.Page{
		Title:   http.StatusText(status),
		Status:  status,
		Message: message,
	})
	c.Abort()
}

// Fail logs an unexpected error and renders the 500 page.
func (p *Presenter) Fail(c *gin.Context, err error, msg string) {
	_ = c.Error(err)
	p.log.WithError(err).WithField("path", c.Request.URL.Path).Error(msg)
	p.Status(c, http.StatusInternalServerError, "Something went wrong. Please try again later.")
}

// NotFound is the NoRoute handler.
func (p *Presenter) NotFound(c *gin.Context) {
	p.Status(c, http.StatusNotFound, "")
}

// Flash queues a message for the next rendered page.
func (p *Presenter) Flash(c *gin.Context, category, message string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, category+"|"+message, 60, "/", "", p.secure, true)
}

func (p *Presenter) popFlash(c *gin.Context) *view.Flash {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, "", -1, "/", "", p.secure, true)

	category, message, ok := strings.Cut(raw, "|")
	if !ok {
		return nil
	}
	return &view.Flash{Category: category, Message: message}
}
