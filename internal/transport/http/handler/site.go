package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gopher-blog/internal/app"
	"gopher-blog/internal/form"
	"gopher-blog/internal/transport/http/view"
)

const msgContactSent = "Message sent, thank you! I'll get back to you soon."

// SiteHandler serves the static pages and the contact form.
type SiteHandler struct {
	contactService *app.ContactService
	pages          *Presenter
}

func NewSiteHandler(contactService *app.ContactService, pages *Presenter) *SiteHandler {
	return &SiteHandler{contactService: contactService, pages: pages}
}

func (h *SiteHandler) About(c *gin.Context) {
	h.pages.Render(c, http.StatusOK, "about.html", view.Page{Title: "About"})
}

func (h *SiteHandler) ContactForm(c *gin.Context) {
	h.pages.Render(c, http.StatusOK, "contact.html", view.Page{Title: "Contact"})
}

func (h *SiteHandler) Contact(c *gin.Context) {
	req, errs := form.Bind[form.Contact](c)
	page := view.Page{
		Title: "Contact",
		Form: map[string]string{
			"name":    req.Name,
			"email":   req.Email,
			"phone":   req.Phone,
			"message": req.Message,
		},
	}
	if errs != nil {
		page.Errors = errs
		h.pages.Render(c, http.StatusBadRequest, "contact.html", page)
		return
	}

	err := h.contactService.Submit(c.Request.Context(), app.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if errors.Is(err, app.ErrInvalidInput) {
		page.Message = "Please fill in every required field."
		h.pages.Render(c, http.StatusBadRequest, "contact.html", page)
		return
	}
	if err != nil {
		_ = c.Error(err)
		h.pages.log.WithError(err).Error("submit contact message failed")
		page.Message = "Your message could not be sent. Please try again later."
		h.pages.Render(c, http.StatusServiceUnavailable, "contact.html", page)
		return
	}

	h.pages.Flash(c, FlashSuccess, msgContactSent)
	c.Redirect(http.StatusFound, "/contact")
}
