// Command harpgen generates typed register definitions and accessors for a
// Harp device from its device.yml description.
//
//	harpgen -in device.yml -out registers_gen.go -package cameracontroller
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/tools/imports"
)

func main() {
	in := flag.String("in", "device.yml", "Path to the device description")
	out := flag.String("out", "", "Output path for the generated Go file")
	pkg := flag.String("package", "", "Package name of the generated file (default: lowercased device name)")
	flag.Parse()

	if *out == "" {
		fmt.Fprintln(os.Stderr, "Usage: harpgen -in <device.yml> -out <file.go> [-package <name>]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(*in, *out, *pkg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(in, out, pkg string) error {
	dev, err := LoadDevice(in)
	if err != nil {
		return fmt.Errorf("loading device: %w", err)
	}
	if pkg == "" {
		pkg = packageName(dev.Device)
	}

	code, err := Generate(dev, pkg, filepath.Base(in))
	if err != nil {
		return fmt.Errorf("generating %s: %w", dev.Device, err)
	}
	if err := writeFormatted(out, code); err != nil {
		return err
	}
	fmt.Printf("  generated %s\n", out)
	return nil
}

// writeFormatted formats Go source code with goimports and writes it to a file.
func writeFormatted(path string, code string) error {
	formatted, err := format(path, code)
	if err != nil {
		// Write unformatted so you can debug the generator output
		_ = os.WriteFile(path+".broken", []byte(code), 0o644)
		return err
	}
	return os.WriteFile(path, formatted, 0o644)
}

func format(path string, code string) ([]byte, error) {
	formatted, err := imports.Process(path, []byte(code), nil)
	if err != nil {
		return nil, fmt.Errorf("goimports %s: %w", filepath.Base(path), err)
	}
	return formatted, nil
}

// packageName converts "CameraController" to "cameracontroller".
func packageName(device string) string {
	var b []rune
	for _, r := range device {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b = append(b, r)
		}
	}
	return string(b)
}
