package services

import "errors"

// ErrQuotaExceeded means a create was denied by the free plan limit.
// Callers show an upgrade prompt for this one, not a generic failure.
var ErrQuotaExceeded = errors.New("free plan limit reached")

// ErrNotFound means a referenced account, customer or order does not exist.
var ErrNotFound = errors.New("record not found")
