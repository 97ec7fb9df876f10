package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("Email atau password salah")
	ErrInvalidToken       = errors.New("invalid or missing token")
)
