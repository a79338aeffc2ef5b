package repositories

import "errors"

// ErrNotFound is wrapped by every repository when the addressed record does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is wrapped when a unique field is already taken.
var ErrDuplicate = errors.New("already exists")
