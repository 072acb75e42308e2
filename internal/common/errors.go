package common

import "errors"

var (

	// repository specific errors
	ErrorNotFound  = errors.New("not found")
	ErrorStorage   = errors.New("storage error")
	ErrorDuplicate = errors.New("already exists")

	// service specific errors
	ErrorValidation = errors.New("validation error")

	// auth-specific errors
	ErrorInvalidCredentials = errors.New("invalid credentials")
	ErrorInvalidToken       = errors.New("invalid token")
)
