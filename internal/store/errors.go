package store

import "errors"

// ErrNotFound is returned when a record does not exist, or when the
// caller does not own it. Repositories deliberately do not distinguish
// the two cases.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned when registering an email that already
// has an account.
var ErrDuplicateEmail = errors.New("email already registered")
