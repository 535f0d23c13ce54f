package catalog

import "errors"

var (
	ErrNotFound = errors.New("catalog item not found")
	ErrConflict = errors.New("catalog item already exists")
)
