package repository

import "errors"

// ErrNotFound is wrapped by repositories when a requested entity does not exist.
var ErrNotFound = errors.New("not found")
