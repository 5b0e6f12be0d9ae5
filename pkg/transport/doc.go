// Package transport moves Harp messages over a byte stream.
//
// The layer handles:
//   - Harp message framing, with resynchronization after corrupt bytes
//   - Serial port access (1 Mbaud, 8N1) via go.bug.st/serial
//   - In-memory pipes for tests and the device simulator
//   - Optional protocol capture of frames and decoded messages
//
// # Protocol Stack
//
//	┌────────────────────────────────┐
//	│   Register payloads (U8/U16)   │
//	├────────────────────────────────┤
//	│   Harp message + checksum      │
//	├────────────────────────────────┤
//	│   Serial line / byte stream    │
//	└────────────────────────────────┘
//
// A Transport does no request correlation and never reconnects; both are
// the caller's business (see package channel).
package transport

//go:generate go run github.com/vektra/mockery/v2
