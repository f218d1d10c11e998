package repositories

import "errors"

var (
	ErrNotFound      = errors.New("record not found")
	ErrQuantityLimit = errors.New("quantity limit exceeded")
)
