package model

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUploadFailed = errors.New("upload failed")
	ErrUnauthorized = errors.New("unauthorized")
)
