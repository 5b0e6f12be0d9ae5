package register

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDescriptors() []Descriptor {
	return []Descriptor{
		{Address: 50, Name: "Frequency", Width: Width16, Kind: KindInteger, Access: AccessRead | AccessWrite},
		{Address: 32, Name: "Start", Width: Width8, Kind: KindFlags, Access: AccessRead | AccessWrite},
		{Address: 40, Name: "Trigger", Width: Width8, Kind: KindInteger, Access: AccessRead | AccessEvent},
	}
}

func TestNewCatalog(t *testing.T) {
	c, err := NewCatalog("Test", 1234, testDescriptors()...)
	require.NoError(t, err)

	assert.Equal(t, "Test", c.Name())
	assert.Equal(t, uint16(1234), c.WhoAmI())
	assert.Equal(t, 3, c.Len())

	d, err := c.Resolve(50)
	require.NoError(t, err)
	assert.Equal(t, "Frequency", d.Name)
	assert.Equal(t, Width16, d.Width)

	_, err = c.Resolve(33)
	assert.ErrorIs(t, err, ErrUnknownAddress)

	_, ok := c.Lookup(33)
	assert.False(t, ok)

	d, ok = c.ByName("Trigger")
	require.True(t, ok)
	assert.Equal(t, uint8(40), d.Address)

	assert.Equal(t, "Start", c.NameOf(32))
	assert.Empty(t, c.NameOf(33))
}

func TestCatalogDescriptorsOrdered(t *testing.T) {
	c := MustCatalog("Test", 1, testDescriptors()...)

	var addrs []uint8
	for _, d := range c.Descriptors() {
		addrs = append(addrs, d.Address)
	}
	assert.Equal(t, []uint8{32, 40, 50}, addrs)
}

func TestCatalogUniqueResolve(t *testing.T) {
	c := MustCatalog("Test", 1, append(Common(), testDescriptors()...)...)

	seen := make(map[string]uint8)
	for addr := 0; addr < 256; addr++ {
		d, ok := c.Lookup(uint8(addr))
		if !ok {
			continue
		}
		assert.Equal(t, uint8(addr), d.Address)
		if prev, dup := seen[d.Name]; dup {
			t.Errorf("addresses %d and %d resolve to %s", prev, addr, d.Name)
		}
		seen[d.Name] = uint8(addr)
	}
	assert.Len(t, seen, c.Len())
}

func TestNewCatalogRejectsInvalidTables(t *testing.T) {
	tests := []struct {
		name  string
		descs []Descriptor
		want  error
	}{
		{
			name: "duplicate address",
			descs: []Descriptor{
				{Address: 32, Name: "A", Width: Width8},
				{Address: 32, Name: "B", Width: Width8},
			},
			want: ErrDuplicateAddress,
		},
		{
			name: "duplicate name",
			descs: []Descriptor{
				{Address: 32, Name: "A", Width: Width8},
				{Address: 33, Name: "A", Width: Width8},
			},
			want: ErrDuplicateName,
		},
		{
			name:  "invalid width",
			descs: []Descriptor{{Address: 32, Name: "A", Width: 4}},
			want:  ErrInvalidWidth,
		},
		{
			name:  "missing name",
			descs: []Descriptor{{Address: 32, Width: Width8}},
			want:  ErrMissingName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog("Test", 1, tt.descs...)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMustCatalogPanics(t *testing.T) {
	assert.Panics(t, func() {
		MustCatalog("Test", 1,
			Descriptor{Address: 1, Name: "A", Width: Width8},
			Descriptor{Address: 1, Name: "B", Width: Width8},
		)
	})
}

func TestCatalogContains(t *testing.T) {
	c := MustCatalog("Test", 1, testDescriptors()...)

	d, _ := c.Resolve(32)
	assert.True(t, c.Contains(d))

	d.Width = Width16
	assert.False(t, c.Contains(d))
	assert.False(t, c.Contains(Descriptor{Address: 99, Name: "X", Width: Width8}))
}

func TestAccessString(t *testing.T) {
	assert.Equal(t, "Read|Write", (AccessRead | AccessWrite).String())
	assert.Equal(t, "Read|Event", (AccessRead | AccessEvent).String())
	assert.Equal(t, "None", Access(0).String())
}
