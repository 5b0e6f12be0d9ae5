package device

import (
	"errors"
	"fmt"
)

// ErrUnexpectedIdentity is wrapped by every *UnexpectedIdentityError.
var ErrUnexpectedIdentity = errors.New("device: unexpected identity")

// UnexpectedIdentityError is returned by Open when the WhoAmI register does
// not hold the identity of the catalog.
type UnexpectedIdentityError struct {
	Device    string
	Expected  uint16
	Observed  uint16
	Transport string
}

func (e *UnexpectedIdentityError) Error() string {
	return fmt.Sprintf("device: device ID %d on %s was unexpected (expected %d); check whether a %s device is connected to the specified port",
		e.Observed, e.Transport, e.Expected, e.Device)
}

// Is matches ErrUnexpectedIdentity.
func (e *UnexpectedIdentityError) Is(target error) bool {
	return target == ErrUnexpectedIdentity
}
