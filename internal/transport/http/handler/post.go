package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gopher-blog/internal/app"
	"gopher-blog/internal/feed"
	"gopher-blog/internal/form"
	"gopher-blog/internal/model"
	"gopher-blog/internal/transport/http/view"
)

const msgTitleExists = "A post with that title already exists."

type PostHandler struct {
	postService *app.PostService
	channel     feed.Channel
	pages       *Presenter
}

func NewPostHandler(postService *app.PostService, channel feed.Channel, pages *Presenter) *PostHandler {
	return &PostHandler{postService: postService, channel: channel, pages: pages}
}

func (h *PostHandler) Index(c *gin.Context) {
	posts, err := h.postService.ListDetails(c.Request.Context())
	if err != nil {
		h.pages.Fail(c, err, "list posts failed")
		return
	}
	h.pages.Render(c, http.StatusOK, "index.html", view.Page{Posts: posts})
}

func (h *PostHandler) Show(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		h.pages.NotFound(c)
		return
	}
	detail, err := h.postService.Detail(c.Request.Context(), id)
	if err != nil {
		h.postError(c, err, "show post failed")
		return
	}
	h.pages.Render(c, http.StatusOK, "post.html", view.Page{Title: detail.Title, Post: detail})
}

func (h *PostHandler) NewForm(c *gin.Context) {
	if _, ok := h.pages.RequireAdmin(c); !ok {
		return
	}
	h.pages.Render(c, http.StatusOK, "make-post.html", view.Page{Title: "New Post"})
}

func (h *PostHandler) Create(c *gin.Context) {
	user, ok := h.pages.RequireAdmin(c)
	if !ok {
		return
	}

	req, errs := form.Bind[form.Post](c)
	if errs != nil {
		h.pages.Render(c, http.StatusBadRequest, "make-post.html", view.Page{
			Title:  "New Post",
			Form:   postForm(req),
			Errors: errs,
		})
		return
	}

	if _, err := h.postService.Create(c.Request.Context(), user, postFields(req)); err != nil {
		if errors.Is(err, app.ErrTitleExists) {
			h.pages.Flash(c, FlashWarning, msgTitleExists)
			c.Redirect(http.StatusFound, "/new-post")
			return
		}
		h.postError(c, err, "create post failed")
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *PostHandler) EditForm(c *gin.Context) {
	if _, ok := h.pages.RequireAdmin(c); !ok {
		return
	}
	id, ok := postID(c)
	if !ok {
		h.pages.NotFound(c)
		return
	}
	detail, err := h.postService.Detail(c.Request.Context(), id)
	if err != nil {
		h.postError(c, err, "load post for edit failed")
		return
	}
	h.pages.Render(c, http.StatusOK, "make-post.html", view.Page{
		Title:  "Edit Post",
		IsEdit: true,
		Post:   detail,
		Form: map[string]string{
			"title":    detail.Title,
			"subtitle": detail.Subtitle,
			"img_url":  detail.ImgURL,
			"body":     detail.Body,
		},
	})
}

func (h *PostHandler) Update(c *gin.Context) {
	user, ok := h.pages.RequireAdmin(c)
	if !ok {
		return
	}
	id, ok := postID(c)
	if !ok {
		h.pages.NotFound(c)
		return
	}
	existing, err := h.postService.Get(c.Request.Context(), id)
	if err != nil {
		h.postError(c, err, "load post for update failed")
		return
	}

	req, errs := form.Bind[form.Post](c)
	if errs != nil {
		h.pages.Render(c, http.StatusBadRequest, "make-post.html", view.Page{
			Title:  "Edit Post",
			IsEdit: true,
			Post:   &app.PostDetail{Post: *existing},
			Form:   postForm(req),
			Errors: errs,
		})
		return
	}

	post, err := h.postService.Update(c.Request.Context(), user, id, postFields(req))
	if err != nil {
		if errors.Is(err, app.ErrTitleExists) {
			h.pages.Flash(c, FlashWarning, msgTitleExists)
			c.Redirect(http.StatusFound, fmt.Sprintf("/edit-post/%d", id))
			return
		}
		h.postError(c, err, "update post failed")
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", post.ID))
}

func (h *PostHandler) Delete(c *gin.Context) {
	user, ok := h.pages.RequireAdmin(c)
	if !ok {
		return
	}
	id, ok := postID(c)
	if !ok {
		h.pages.NotFound(c)
		return
	}
	if err := h.postService.Delete(c.Request.Context(), user, id); err != nil {
		h.postError(c, err, "delete post failed")
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// Feed serves every post as RSS.
func (h *PostHandler) Feed(c *gin.Context) {
	posts, err := h.postService.ListDetails(c.Request.Context())
	if err != nil {
		h.pages.Fail(c, err, "build feed failed")
		return
	}
	c.Header("Content-Type", "application/rss+xml; charset=utf-8")
	c.Status(http.StatusOK)
	if err := feed.Write(c.Writer, h.channel, posts); err != nil {
		_ = c.Error(err)
	}
}

func (h *PostHandler) postError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, app.ErrPostNotFound):
		h.pages.NotFound(c)
	case errors.Is(err, app.ErrForbidden):
		h.pages.Status(c, http.StatusForbidden, "")
	case errors.Is(err, app.ErrInvalidInput):
		h.pages.Status(c, http.StatusBadRequest, "Please fill in every field.")
	default:
		h.pages.Fail(c, err, msg)
	}
}

func postID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func postFields(req form.Post) model.PostFields {
	return model.PostFields{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Body:     req.Body,
		ImgURL:   req.ImgURL,
	}
}

func postForm(req form.Post) map[string]string {
	return map[string]string{
		"title":    req.Title,
		"subtitle": req.Subtitle,
		"img_url":  req.ImgURL,
		"body":     req.Body,
	}
}
