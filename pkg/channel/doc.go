// Package channel correlates Harp requests with their replies.
//
// Harp has no request ids: a reply is recognized by echoing the request's
// type and register address. A Channel therefore keeps exactly one command
// on the wire at a time. Callers of Execute queue in submission order and
// a dispatcher goroutine sends each request only after the previous one was
// answered, cancelled or failed.
//
// Unsolicited Event messages are never mistaken for replies; they are
// delivered in arrival order to Config.OnEvent on a separate goroutine.
//
// A transport error ends the channel: every queued and in-flight command,
// and every later Execute, fails with a *TransportError. There is no
// automatic reconnection; the caller builds a new channel.
package channel
