package application

import "errors"

var (
	ErrAnimeNotFound = errors.New("anime not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrInvalidState  = errors.New("invalid oauth state")
	ErrLoginFailed   = errors.New("login failed")
)
