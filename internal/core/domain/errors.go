package domain

import "errors"

var (
	ErrClientNotFound     = errors.New("client not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmployeeExists     = errors.New("employee ID or email already exists")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrUnauthenticated    = errors.New("invalid authentication credentials")
	ErrForbidden          = errors.New("admin privileges required")
	ErrInvalidID          = errors.New("invalid identifier")
	ErrBusy               = errors.New("record is being modified, try again")
)
