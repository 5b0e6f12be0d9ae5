package register

import (
	"fmt"
	"strconv"
	"strings"
)

// Bit names one flag of a flags register.
type Bit struct {
	Name  string
	Value uint16
}

// FormatFlags renders v as names joined by "|". Bits without a name are
// kept as a hex remainder. Zero renders as the name of a zero-valued bit,
// or "None".
func FormatFlags(v uint16, bits []Bit) string {
	if v == 0 {
		for _, b := range bits {
			if b.Value == 0 {
				return b.Name
			}
		}
		return "None"
	}
	var parts []string
	rest := v
	for _, b := range bits {
		if b.Value != 0 && v&b.Value == b.Value {
			parts = append(parts, b.Name)
			rest &^= b.Value
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%X", rest))
	}
	return strings.Join(parts, "|")
}

// ParseFlags is the inverse of FormatFlags. Names are matched case
// insensitively and hex or decimal numbers are accepted for any part.
func ParseFlags(s string, bits []Bit) (uint16, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "None") {
		return 0, nil
	}
	var v uint16
	for _, part := range strings.Split(s, "|") {
		part = strings.TrimSpace(part)
		found := false
		for _, b := range bits {
			if strings.EqualFold(part, b.Name) {
				v |= b.Value
				found = true
				break
			}
		}
		if found {
			continue
		}
		n, err := strconv.ParseUint(part, 0, 16)
		if err != nil {
			return 0, fmt.Errorf("register: unknown flag %q", part)
		}
		v |= uint16(n)
	}
	return v, nil
}
