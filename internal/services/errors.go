package services

import "errors"

// Sentinel errors for the service layer. Handlers check these with
// errors.Is and map them to HTTP statuses; anything else is treated as an
// internal error and never leaks its detail to the client.
var (
	// ErrUnauthorized means the operation requires an authenticated user
	// and none was supplied.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden means the authenticated user does not own the target
	// entity.
	ErrForbidden = errors.New("forbidden")

	// ErrBadRequest means the input is malformed: empty order, bad
	// quantity, unknown product.
	ErrBadRequest = errors.New("bad request")

	// ErrNotFound means the referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrOutOfStock means a product has less stock than requested. It is
	// a BadRequest in HTTP terms but callers often want to distinguish it.
	ErrOutOfStock = errors.New("out of stock")
)
