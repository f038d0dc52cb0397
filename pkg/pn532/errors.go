package pn532

import "errors"

var (
	ErrNoTarget       = errors.New("pn532: no target in field")
	ErrNotISODEP      = errors.New("pn532: target does not support ISO-DEP")
	ErrExchangeFailed = errors.New("pn532: data exchange rejected")
	ErrShortResponse  = errors.New("pn532: response too short")
	ErrBadStatus      = errors.New("pn532: card returned error status")
)
