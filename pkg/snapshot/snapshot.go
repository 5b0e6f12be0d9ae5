package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harp-protocol/harp-go/pkg/device"
	"github.com/harp-protocol/harp-go/pkg/register"
)

// Version is the current snapshot file format version.
const Version = 1

// FirstDeviceAddress is the lowest address of the device-specific register
// block. Common registers below it are left out of snapshots.
const FirstDeviceAddress uint8 = 32

var (
	// ErrIdentityMismatch is returned when restoring onto a different device type.
	ErrIdentityMismatch = errors.New("snapshot: device identity mismatch")

	// ErrUnsupportedVersion is returned when decoding a newer file format.
	ErrUnsupportedVersion = errors.New("snapshot: unsupported version")

	// ErrNotWritable is returned when a snapshot names a register the
	// catalog does not allow writing.
	ErrNotWritable = errors.New("snapshot: register is not writable")

	// ErrVolatile is returned when a snapshot names a register whose
	// writes trigger an action on the device.
	ErrVolatile = errors.New("snapshot: register is volatile")
)

// Snapshot is a set of register values read from one device.
type Snapshot struct {
	Version   int       `yaml:"version"`
	Device    string    `yaml:"device"`
	WhoAmI    uint16    `yaml:"whoAmI"`
	SavedAt   time.Time `yaml:"savedAt"`
	Registers []Entry   `yaml:"registers"`
}

// Entry is one captured register value.
type Entry struct {
	Address uint8  `yaml:"address"`
	Name    string `yaml:"name,omitempty"`
	Value   uint16 `yaml:"value"`
}

// Included reports whether Capture records a register: readable and
// writable device registers that hold a setting.
func Included(d register.Descriptor) bool {
	return d.Address >= FirstDeviceAddress && d.Writable() && !d.Volatile && d.Access.Has(register.AccessRead)
}

// Capture reads every included register of d.
func Capture(ctx context.Context, d *device.Device) (*Snapshot, error) {
	catalog := d.Catalog()
	s := &Snapshot{
		Version: Version,
		Device:  catalog.Name(),
		WhoAmI:  d.WhoAmI(),
		SavedAt: time.Now().UTC(),
	}

	for _, desc := range catalog.Descriptors() {
		if !Included(desc) {
			continue
		}
		_, v, err := d.ReadAddress(ctx, desc.Address)
		if err != nil {
			return nil, fmt.Errorf("snapshot: capture %s: %w", desc, err)
		}
		s.Registers = append(s.Registers, Entry{
			Address: desc.Address,
			Name:    desc.Name,
			Value:   v,
		})
	}
	return s, nil
}

// Restore writes the values of s to d in ascending address order. Entries
// are checked against the catalog before anything is written: read-only
// registers fail with ErrNotWritable and volatile ones with ErrVolatile.
// Restore stops at the first failed write; registers before it keep their
// new values.
func Restore(ctx context.Context, d *device.Device, s *Snapshot) error {
	if s.WhoAmI != d.WhoAmI() {
		return fmt.Errorf("%w: snapshot is for %d, device is %d", ErrIdentityMismatch, s.WhoAmI, d.WhoAmI())
	}

	entries := slices.Clone(s.Registers)
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return int(a.Address) - int(b.Address)
	})

	catalog := d.Catalog()
	descs := make([]register.Descriptor, len(entries))
	for i, e := range entries {
		desc, err := catalog.Resolve(e.Address)
		if err != nil {
			return fmt.Errorf("snapshot: restore: %w", err)
		}
		switch {
		case !desc.Writable():
			return fmt.Errorf("%w: %s", ErrNotWritable, desc)
		case desc.Volatile:
			return fmt.Errorf("%w: %s", ErrVolatile, desc)
		}
		descs[i] = desc
	}

	for i, e := range entries {
		desc := descs[i]
		if err := d.WriteAddress(ctx, e.Address, e.Value); err != nil {
			return fmt.Errorf("snapshot: restore %s: %w", desc, err)
		}
	}
	return nil
}

// Encode writes s as YAML.
func Encode(w io.Writer, s *Snapshot) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("snapshot: encode: %w", err)
	}
	return enc.Close()
}

// Decode reads a YAML snapshot.
func Decode(r io.Reader) (*Snapshot, error) {
	s := &Snapshot{}
	if err := yaml.NewDecoder(r).Decode(s); err != nil {
		return nil, fmt.Errorf("snapshot: decode: %w", err)
	}
	if s.Version > Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, s.Version)
	}
	return s, nil
}
