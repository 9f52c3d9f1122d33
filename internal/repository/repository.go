package repository

import "errors"

// ErrNotFound is returned when an update or delete matches no row owned
// by the requesting user.
var ErrNotFound = errors.New("record not found")
