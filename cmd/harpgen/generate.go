package main

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
)

// Generate renders the Go source for a device definition. The result is
// not yet gofmt-formatted.
func Generate(dev *RawDevice, pkg, source string) (code string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	data, err := buildFileData(dev, pkg, source)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, name := range []string{"header", "bitMasks", "groupMasks", "registers", "accessors"} {
		renderTemplate(&b, name, data)
	}
	return b.String(), nil
}

func buildFileData(dev *RawDevice, pkg, source string) (*fileData, error) {
	data := &fileData{
		Source:  source,
		Package: pkg,
		Device:  dev.Device,
		WhoAmI:  dev.WhoAmI,
	}

	wide := make(map[string]bool)
	for _, r := range dev.Registers {
		if r.MaskType != "" && r.Type == "U16" {
			wide[r.MaskType] = true
		}
	}
	goType := func(mask string) string {
		if wide[mask] {
			return "uint16"
		}
		return "uint8"
	}

	for _, m := range dev.BitMasks {
		md := maskData{
			Name:        m.Name,
			Description: m.Description,
			GoType:      goType(m.Name),
			VarName:     unexport(m.Name) + "Bits",
			NeedsNone:   true,
		}
		for _, v := range m.Values {
			if v.Value == 0 {
				md.NeedsNone = false
			}
			md.Values = append(md.Values, maskValueData{
				Name:      v.Name,
				ConstName: v.Name,
				Value:     v.Value,
			})
		}
		data.BitMasks = append(data.BitMasks, md)
	}

	for _, m := range dev.GroupMasks {
		prefix := strings.TrimSuffix(m.Name, "Config")
		md := maskData{
			Name:        m.Name,
			Description: m.Description,
			GoType:      goType(m.Name),
			VarName:     unexport(m.Name) + "Values",
		}
		for _, v := range m.Values {
			md.Values = append(md.Values, maskValueData{
				Name:      v.Name,
				ConstName: prefix + v.Name,
				Value:     v.Value,
			})
		}
		data.GroupMasks = append(data.GroupMasks, md)
	}

	regs := slices.Clone(dev.Registers)
	slices.SortStableFunc(regs, func(a, b RawRegister) int { return a.Address - b.Address })

	for _, r := range regs {
		rd := registerData{
			Name:        r.Name,
			Address:     r.Address,
			Access:      accessExpr(r.Access),
			Description: r.Description,
			Writable:    r.Access.Has("Write"),
			Volatile:    r.Volatile,
			Kind:        "register.KindInteger",
		}
		if r.Type == "U16" {
			rd.GoType = "uint16"
			rd.Width = "register.Width16"
		} else {
			rd.GoType = "uint8"
			rd.Width = "register.Width8"
		}

		if r.MaskType != "" {
			rd.GoType = r.MaskType
			if _, ok := dev.BitMasks.Lookup(r.MaskType); ok {
				rd.Kind = "register.KindFlags"
				rd.NamedValues = unexport(r.MaskType) + "Bits"
			} else if _, ok := dev.GroupMasks.Lookup(r.MaskType); ok {
				rd.Kind = "register.KindEnum"
				rd.NamedValues = unexport(r.MaskType) + "Values"
			} else {
				return nil, fmt.Errorf("register %s: unknown maskType %q", r.Name, r.MaskType)
			}
		}
		data.Registers = append(data.Registers, rd)
	}
	return data, nil
}

// accessExpr renders an access list as a register.Access expression in
// Read, Write, Event order.
func accessExpr(a RawAccess) string {
	var parts []string
	for _, name := range []string{"Read", "Write", "Event"} {
		if a.Has(name) {
			parts = append(parts, "register.Access"+name)
		}
	}
	return strings.Join(parts, " | ")
}

// firstLower lowercases the first letter: "Starts the" -> "starts the".
func firstLower(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// unexport turns an exported identifier into an unexported one, treating a
// leading initialism as a single word: "Cameras" -> "cameras",
// "DI0ModeConfig" -> "di0ModeConfig".
func unexport(s string) string {
	i := 0
	for i < len(s) && (unicode.IsUpper(rune(s[i])) || unicode.IsDigit(rune(s[i]))) {
		i++
	}
	if i == 0 {
		return s
	}
	if i < len(s) && i > 1 {
		i--
	}
	return strings.ToLower(s[:i]) + s[i:]
}
