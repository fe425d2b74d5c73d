package repository

import "errors"

var (
	ErrNotFound  = errors.New("not found")
	ErrMalformed = errors.New("malformed ledger row")
)
