package auth

import "errors"

var (
	ErrCredentialsRequired = errors.New("Username and password are required")
	ErrInvalidCredentials  = errors.New("Wrong username or password")
	ErrNotAuthenticated    = errors.New("Not authenticated")
)
