package auth

import "errors"

var (
	ErrInvalidToken     = errors.New("invalid or expired token")
	ErrMissingPrincipal = errors.New("request has no authenticated principal")
	ErrForbidden        = errors.New("insufficient permissions")
	ErrNoEmployeeLinked = errors.New("user is not linked to an employee record")
)
