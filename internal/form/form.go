// Package form declares the submitted forms and turns gin binding failures
// into per-field messages the templates can show.
package form

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type Register struct {
	Name     string `form:"name" binding:"required,max=1000"`
	Email    string `form:"email" binding:"required,email,max=100"`
	Password string `form:"password" binding:"required,min=6"`
}

type Login struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type Post struct {
	Title    string `form:"title" binding:"required,max=250"`
	Subtitle string `form:"subtitle" binding:"required,max=250"`
	ImgURL   string `form:"img_url" binding:"required,url,max=250"`
	Body     string `form:"body" binding:"required"`
}

type Contact struct {
	Name    string `form:"name" binding:"required,max=250"`
	Email   string `form:"email" binding:"required,email,max=100"`
	Phone   string `form:"phone" binding:"max=64"`
	Message string `form:"message" binding:"required,max=5000"`
}

// Errors maps a form field name to its message. A nil Errors means valid.
type Errors map[string]string

func (e Errors) Get(field string) string {
	return e[field]
}

// Fields lists the failing fields in a stable order.
func (e Errors) Fields() []string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// Bind decodes the request form into T and validates it.
func Bind[T any](c *gin.Context) (T, Errors) {
	var dst T
	err := c.ShouldBindWith(&dst, binding.FormPost)
	if err == nil {
		return dst, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return dst, Errors{"_form": "The submitted form could not be read."}
	}
	out := make(Errors, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = message(fe)
	}
	return dst, out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Invalid email address."
	case "url":
		return "Invalid URL."
	case "min":
		if fe.Field() == "password" {
			return fmt.Sprintf("Password must be at least %s characters long.", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s characters long.", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters long.", fe.Param())
	default:
		return "Invalid value."
	}
}
