// Package connection paces repeated attempts to open a Harp device.
//
// The protocol core never reconnects on its own. When a serial port vanishes
// or the identity handshake fails, the caller decides whether to try again
// and re-invokes the whole open sequence. This package supplies the delay
// schedule for that decision:
//
//	delay = base + random(0, base * Jitter)
//	base  = min(Initial * Multiplier^attempt, Max)
//
// Retry wraps an attempt function with that schedule. Errors marked with
// Permanent stop the loop immediately.
package connection
