package device

import (
	"context"

	"github.com/harp-protocol/harp-go/pkg/register"
	"github.com/harp-protocol/harp-go/pkg/wire"
)

// Read reads reg and decodes the reply into T.
func Read[T register.Value](ctx context.Context, d *Device, reg register.Register[T]) (T, error) {
	var zero T
	reply, err := d.read(ctx, reg.Descriptor())
	if err != nil {
		return zero, err
	}
	return reg.Decode(reply)
}

// ReadTimestamped reads reg and returns the value with the device time of
// the reply. It fails with register.ErrMissingTimestamp if the reply carries
// no timestamp.
func ReadTimestamped[T register.Value](ctx context.Context, d *Device, reg register.Register[T]) (register.Timestamped[T], error) {
	reply, err := d.read(ctx, reg.Descriptor())
	if err != nil {
		return register.Timestamped[T]{}, err
	}
	return reg.DecodeTimestamped(reply)
}

// Write writes v to reg and waits for the acknowledgement. Writes to
// read-only registers are sent anyway; the device answers them with an
// error reply, returned as a *channel.ReplyError.
func Write[T register.Value](ctx context.Context, d *Device, reg register.Register[T], v T) error {
	if err := d.check(reg.Descriptor()); err != nil {
		return err
	}
	_, err := d.ch.Execute(ctx, reg.WriteRequest(v))
	return err
}

// ReadAddress reads the register at address and returns its descriptor and
// raw value.
func (d *Device) ReadAddress(ctx context.Context, address uint8) (register.Descriptor, uint16, error) {
	desc, err := d.catalog.Resolve(address)
	if err != nil {
		return register.Descriptor{}, 0, err
	}
	reply, err := d.ch.Execute(ctx, register.ReadRequest(desc))
	if err != nil {
		return desc, 0, err
	}
	v, err := register.DecodeRaw(desc, reply)
	return desc, v, err
}

// WriteAddress writes a raw value to the register at address. Values wider
// than the register fail with register.ErrValueOutOfRange.
func (d *Device) WriteAddress(ctx context.Context, address uint8, v uint16) error {
	desc, err := d.catalog.Resolve(address)
	if err != nil {
		return err
	}
	req, err := register.EncodeRaw(desc, wire.MessageWrite, v)
	if err != nil {
		return err
	}
	_, err = d.ch.Execute(ctx, req)
	return err
}

func (d *Device) read(ctx context.Context, desc register.Descriptor) (*wire.Message, error) {
	if err := d.check(desc); err != nil {
		return nil, err
	}
	return d.ch.Execute(ctx, register.ReadRequest(desc))
}
