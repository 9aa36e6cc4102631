package domain

import "errors"

var ErrDuplicateUser = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")

// User models a registered account. The row is write-once: credentials are
// never updated or deleted after registration.
type User struct {
	UserName     string `json:"username"`
	Salt         string `json:"-"`
	PasswordHash string `json:"-"`
}
