package register

import "errors"

// Catalog construction errors.
var (
	ErrDuplicateAddress = errors.New("register: duplicate address")
	ErrDuplicateName    = errors.New("register: duplicate name")
	ErrInvalidWidth     = errors.New("register: invalid width")
	ErrMissingName      = errors.New("register: missing name")
)

// Operation errors. None of these affect the channel that carried the message.
var (
	ErrUnknownAddress   = errors.New("register: unknown address")
	ErrAddressMismatch  = errors.New("register: message address does not match register")
	ErrMalformedPayload = errors.New("register: malformed payload")
	ErrMissingTimestamp = errors.New("register: message has no timestamp")
	ErrValueOutOfRange  = errors.New("register: value does not fit register width")
)
