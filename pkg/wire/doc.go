// Package wire defines the binary message format of the Harp protocol.
//
// Every Harp message is a short little-endian frame:
//
//	[type][length][address][port][payloadType][seconds:4][ticks:2][payload...][checksum]
//
// The seconds/ticks timestamp is present only when the payload type carries
// the timestamp flag (0x10). Length counts every byte after the length field,
// and the checksum is the sum of all preceding bytes modulo 256.
//
// # Message Types
//
// There are three message types:
//   - Read: host asks the device for a register value (no payload)
//   - Write: host sets a register value
//   - Event: device reports a register change on its own
//
// Replies to Read and Write reuse the request type and echo the address.
// A device that rejects a request sets the error flag (0x08) on the reply.
//
// # Payload Types
//
// The payload type encodes the element size in its low nibble and carries
// signed (0x80) and floating-point (0x40) flags. A message payload holds one
// or more elements of that type.
package wire
