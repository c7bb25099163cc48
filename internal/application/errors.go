// internal/application/errors.go
package application

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid admin credentials")
	ErrAccountNotFound    = errors.New("no account found with these credentials")
	ErrInvalidCode        = errors.New("invalid verification code")
	ErrNotFound           = errors.New("not found")
	ErrOutOfStock         = errors.New("product is out of stock")
	ErrEmptyCart          = errors.New("cart is empty")
)
