package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"gopher-blog/internal/app"
	"gopher-blog/internal/form"
	"gopher-blog/internal/transport/http/middleware"
	"gopher-blog/internal/transport/http/view"
)

const (
	msgUserExists        = "You've already signed up with that email, log in instead!"
	msgEmailNotFound     = "That email does not exist, please try again."
	msgIncorrectPassword = "Password incorrect, please try again."
)

type AuthHandler struct {
	authService *app.AuthService
	cookie      middleware.SessionCookie
	pages       *Presenter
}

func NewAuthHandler(authService *app.AuthService, cookie middleware.SessionCookie, pages *Presenter) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie, pages: pages}
}

func (h *AuthHandler) RegisterForm(c *gin.Context) {
	h.pages.Render(c, http.StatusOK, "register.html", view.Page{Title: "Register"})
}

func (h *AuthHandler) Register(c *gin.Context) {
	req, errs := form.Bind[form.Register](c)
	if errs != nil {
		h.pages.Render(c, http.StatusBadRequest, "register.html", view.Page{
			Title:  "Register",
			Form:   map[string]string{"name": req.Name, "email": req.Email},
			Errors: errs,
		})
		return
	}

	result, err := h.authService.Register(c.Request.Context(), app.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrEmailExists):
			h.pages.Flash(c, FlashWarning, msgUserExists)
			c.Redirect(http.StatusFound, "/login")
		case errors.Is(err, app.ErrInvalidInput):
			h.pages.Render(c, http.StatusBadRequest, "register.html", view.Page{
				Title:   "Register",
				Form:    map[string]string{"name": req.Name, "email": req.Email},
				Message: "Please fill in every field.",
			})
		default:
			h.pages.Fail(c, err, "register failed")
		}
		return
	}

	h.cookie.Set(c, result.Ticket)
	h.pages.Flash(c, FlashSuccess, fmt.Sprintf("Welcome, %s!", result.User.Name))
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) LoginForm(c *gin.Context) {
	h.pages.Render(c, http.StatusOK, "login.html", view.Page{Title: "Log In"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	req, errs := form.Bind[form.Login](c)
	if errs != nil {
		h.pages.Render(c, http.StatusBadRequest, "login.html", view.Page{
			Title:  "Log In",
			Form:   map[string]string{"email": req.Email},
			Errors: errs,
		})
		return
	}

	result, err := h.authService.Login(c.Request.Context(), app.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		page := view.Page{Title: "Log In", Form: map[string]string{"email": req.Email}}
		switch {
		case errors.Is(err, app.ErrEmailNotFound):
			page.Message = msgEmailNotFound
		case errors.Is(err, app.ErrIncorrectPassword):
			page.Message = msgIncorrectPassword
		case errors.Is(err, app.ErrInvalidInput):
			page.Message = "Please fill in every field."
		default:
			h.pages.Fail(c, err, "login failed")
			return
		}
		h.pages.Render(c, http.StatusOK, "login.html", page)
		return
	}

	h.cookie.Set(c, result.Ticket)
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.cookie.Name); err == nil && token != "" {
		if err := h.authService.Logout(c.Request.Context(), token); err != nil {
			// the cookie is cleared either way
			_ = c.Error(err)
		}
	}
	h.cookie.Clear(c)
	c.Redirect(http.StatusFound, "/")
}
