package app

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrEmailExists       = errors.New("email already exists")
	ErrEmailNotFound     = errors.New("email not found")
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrForbidden         = errors.New("forbidden")
	ErrPostNotFound      = errors.New("post not found")
	ErrTitleExists       = errors.New("post title already exists")
)
