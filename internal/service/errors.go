package service

import "errors"

var (
	ErrMissingFields      = errors.New("all fields are required")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordFormat     = errors.New("password has the wrong format")
	ErrNameTaken          = errors.New("that name is already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotFound           = errors.New("not found")
	ErrInvalidAmount      = errors.New("enter a valid amount")
)
