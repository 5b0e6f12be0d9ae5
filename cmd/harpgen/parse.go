package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// RawDevice is a Harp device.yml document.
type RawDevice struct {
	Device          string       `yaml:"device"`
	WhoAmI          uint16       `yaml:"whoAmI"`
	FirmwareVersion string       `yaml:"firmwareVersion"`
	HardwareVersion string       `yaml:"hardwareVersion"`
	Registers       RawRegisters `yaml:"registers"`
	BitMasks        RawMasks     `yaml:"bitMasks"`
	GroupMasks      RawMasks     `yaml:"groupMasks"`
}

// RawRegister is one entry of the registers mapping.
type RawRegister struct {
	Name        string    `yaml:"-"`
	Address     int       `yaml:"address"`
	Type        string    `yaml:"type"` // "U8" or "U16"
	Access      RawAccess `yaml:"access"`
	MaskType    string    `yaml:"maskType"`
	Description string    `yaml:"description"`
	Volatile    bool      `yaml:"volatile"`
}

// RawRegisters keeps registers in document order.
type RawRegisters []RawRegister

// UnmarshalYAML decodes the name-keyed registers mapping.
func (r *RawRegisters) UnmarshalYAML(node *yaml.Node) error {
	return decodeMapping(node, func(name string, value *yaml.Node) error {
		var reg RawRegister
		if err := value.Decode(&reg); err != nil {
			return fmt.Errorf("register %s: %w", name, err)
		}
		reg.Name = name
		*r = append(*r, reg)
		return nil
	})
}

// RawAccess is either a single access name or a list of them.
type RawAccess []string

// UnmarshalYAML accepts "Read" as well as [Read, Write].
func (a *RawAccess) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*a = RawAccess{node.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*a = list
		return nil
	default:
		return fmt.Errorf("line %d: access must be a name or a list", node.Line)
	}
}

// Has reports whether the access list names want.
func (a RawAccess) Has(want string) bool {
	for _, s := range a {
		if strings.EqualFold(s, want) {
			return true
		}
	}
	return false
}

// RawMask is a bit mask or group mask definition.
type RawMask struct {
	Name        string
	Description string
	Values      []RawMaskValue
}

// RawMaskValue is one named bit or group value.
type RawMaskValue struct {
	Name  string
	Value uint16
}

// RawMasks keeps masks in document order.
type RawMasks []RawMask

// UnmarshalYAML decodes the name-keyed mask mapping. Bit masks list their
// members under "bits", group masks under "values".
func (m *RawMasks) UnmarshalYAML(node *yaml.Node) error {
	return decodeMapping(node, func(name string, value *yaml.Node) error {
		mask := RawMask{Name: name}
		err := decodeMapping(value, func(key string, field *yaml.Node) error {
			switch key {
			case "description":
				return field.Decode(&mask.Description)
			case "bits", "values":
				return decodeMapping(field, func(member string, v *yaml.Node) error {
					var n uint16
					if err := v.Decode(&n); err != nil {
						return fmt.Errorf("%s.%s: %w", name, member, err)
					}
					mask.Values = append(mask.Values, RawMaskValue{Name: member, Value: n})
					return nil
				})
			default:
				return nil
			}
		})
		if err != nil {
			return err
		}
		*m = append(*m, mask)
		return nil
	})
}

// Lookup returns the mask called name.
func (m RawMasks) Lookup(name string) (RawMask, bool) {
	for _, mask := range m {
		if mask.Name == name {
			return mask, true
		}
	}
	return RawMask{}, false
}

func decodeMapping(node *yaml.Node, fn func(key string, value *yaml.Node) error) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if err := fn(node.Content[i].Value, node.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}

// ParseDevice parses and validates a device.yml document.
func ParseDevice(data []byte) (*RawDevice, error) {
	var dev RawDevice
	if err := yaml.Unmarshal(data, &dev); err != nil {
		return nil, fmt.Errorf("parsing device: %w", err)
	}
	if err := dev.validate(); err != nil {
		return nil, err
	}
	return &dev, nil
}

// LoadDevice loads and parses a device.yml file.
func LoadDevice(path string) (*RawDevice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseDevice(data)
}

func (d *RawDevice) validate() error {
	if d.Device == "" {
		return fmt.Errorf("device definition missing name")
	}
	if d.WhoAmI == 0 {
		return fmt.Errorf("device %s: missing whoAmI", d.Device)
	}

	seen := make(map[int]string)
	for _, r := range d.Registers {
		if r.Address < 32 || r.Address > 255 {
			return fmt.Errorf("register %s: address %d outside the device range 32-255", r.Name, r.Address)
		}
		if other, ok := seen[r.Address]; ok {
			return fmt.Errorf("register %s: address %d already used by %s", r.Name, r.Address, other)
		}
		seen[r.Address] = r.Name

		if r.Type != "U8" && r.Type != "U16" {
			return fmt.Errorf("register %s: unsupported type %q", r.Name, r.Type)
		}
		if len(r.Access) == 0 {
			return fmt.Errorf("register %s: missing access", r.Name)
		}
		for _, a := range r.Access {
			switch strings.ToLower(a) {
			case "read", "write", "event":
			default:
				return fmt.Errorf("register %s: unknown access %q", r.Name, a)
			}
		}
		if r.Volatile && !r.Access.Has("Write") {
			return fmt.Errorf("register %s: volatile register must be writable", r.Name)
		}
		if r.MaskType != "" {
			_, bit := d.BitMasks.Lookup(r.MaskType)
			_, group := d.GroupMasks.Lookup(r.MaskType)
			if !bit && !group {
				return fmt.Errorf("register %s: unknown maskType %q", r.Name, r.MaskType)
			}
		}
	}
	return nil
}
