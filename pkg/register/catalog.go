package register

import (
	"fmt"
	"sort"
)

// Catalog is an immutable, address-indexed set of register descriptors for
// one device family.
type Catalog struct {
	name    string
	whoAmI  uint16
	byAddr  [256]*Descriptor
	byName  map[string]*Descriptor
	ordered []Descriptor
}

// NewCatalog builds a catalog for the device family identified by whoAmI.
// Duplicate addresses or names and unsupported widths are rejected.
func NewCatalog(name string, whoAmI uint16, descs ...Descriptor) (*Catalog, error) {
	c := &Catalog{
		name:    name,
		whoAmI:  whoAmI,
		byName:  make(map[string]*Descriptor, len(descs)),
		ordered: make([]Descriptor, 0, len(descs)),
	}

	var seen [256]string
	names := make(map[string]bool, len(descs))
	for _, d := range descs {
		if err := d.validate(); err != nil {
			return nil, err
		}
		if prev := seen[d.Address]; prev != "" {
			return nil, fmt.Errorf("%w: %d used by %s and %s", ErrDuplicateAddress, d.Address, prev, d.Name)
		}
		if names[d.Name] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, d.Name)
		}
		seen[d.Address] = d.Name
		names[d.Name] = true
		c.ordered = append(c.ordered, d)
	}

	sort.Slice(c.ordered, func(i, j int) bool {
		return c.ordered[i].Address < c.ordered[j].Address
	})
	for i := range c.ordered {
		d := &c.ordered[i]
		c.byAddr[d.Address] = d
		c.byName[d.Name] = d
	}

	return c, nil
}

// MustCatalog is like NewCatalog but panics on a misconfigured table.
// It is meant for package-level catalog variables.
func MustCatalog(name string, whoAmI uint16, descs ...Descriptor) *Catalog {
	c, err := NewCatalog(name, whoAmI, descs...)
	if err != nil {
		panic(fmt.Sprintf("register catalog %s: %v", name, err))
	}
	return c
}

// Name returns the device family name.
func (c *Catalog) Name() string {
	return c.name
}

// WhoAmI returns the identity the device family reports in register 0.
func (c *Catalog) WhoAmI() uint16 {
	return c.whoAmI
}

// Resolve returns the descriptor for address.
func (c *Catalog) Resolve(address uint8) (Descriptor, error) {
	d := c.byAddr[address]
	if d == nil {
		return Descriptor{}, fmt.Errorf("%w: %d", ErrUnknownAddress, address)
	}
	return *d, nil
}

// Lookup is like Resolve but reports presence instead of an error.
func (c *Catalog) Lookup(address uint8) (Descriptor, bool) {
	d := c.byAddr[address]
	if d == nil {
		return Descriptor{}, false
	}
	return *d, true
}

// ByName returns the descriptor with the given register name.
func (c *Catalog) ByName(name string) (Descriptor, bool) {
	d, ok := c.byName[name]
	if !ok {
		return Descriptor{}, false
	}
	return *d, true
}

// Contains returns true if d is the catalog's descriptor for d.Address.
func (c *Catalog) Contains(d Descriptor) bool {
	cur := c.byAddr[d.Address]
	return cur != nil && *cur == d
}

// Descriptors returns all descriptors ordered by address.
func (c *Catalog) Descriptors() []Descriptor {
	out := make([]Descriptor, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Len returns the number of registers in the catalog.
func (c *Catalog) Len() int {
	return len(c.ordered)
}

// NameOf returns the register name at address, or "" if there is none.
func (c *Catalog) NameOf(address uint8) string {
	if d := c.byAddr[address]; d != nil {
		return d.Name
	}
	return ""
}
