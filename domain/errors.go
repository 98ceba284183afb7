package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrItemNotFound       = errors.New("item not found")
	ErrEmailExists        = errors.New("email already exists")
	ErrUsernameExists     = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
)
