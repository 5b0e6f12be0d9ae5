package device

// HandshakeState is the outcome of the identity handshake.
type HandshakeState uint8

const (
	StateUnverified HandshakeState = iota
	StateVerified
	StateRejected
)

// String returns the state name.
func (s HandshakeState) String() string {
	switch s {
	case StateUnverified:
		return "UNVERIFIED"
	case StateVerified:
		return "VERIFIED"
	case StateRejected:
		return "REJECTED"
	default:
		return "UNKNOWN"
	}
}
