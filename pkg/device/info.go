package device

import (
	"context"
	"fmt"

	"github.com/harp-protocol/harp-go/pkg/register"
)

// Version is a major.minor version pair.
type Version struct {
	Major uint8 `yaml:"major"`
	Minor uint8 `yaml:"minor"`
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Info is the identification block every Harp device exposes.
type Info struct {
	WhoAmI          uint16  `yaml:"whoAmI"`
	HardwareVersion Version `yaml:"hardwareVersion"`
	AssemblyVersion uint8   `yaml:"assemblyVersion"`
	CoreVersion     Version `yaml:"coreVersion"`
	FirmwareVersion Version `yaml:"firmwareVersion"`
	SerialNumber    uint16  `yaml:"serialNumber"`
}

// ReadInfo reads the common identification registers.
func (d *Device) ReadInfo(ctx context.Context) (Info, error) {
	var info Info
	var err error

	u8 := func(reg register.Register[uint8]) uint8 {
		if err != nil {
			return 0
		}
		var v uint8
		v, err = Read(ctx, d, reg)
		return v
	}
	u16 := func(reg register.Register[uint16]) uint16 {
		if err != nil {
			return 0
		}
		var v uint16
		v, err = Read(ctx, d, reg)
		return v
	}

	info.WhoAmI = u16(register.WhoAmI)
	info.HardwareVersion = Version{u8(register.HardwareVersionHigh), u8(register.HardwareVersionLow)}
	info.AssemblyVersion = u8(register.AssemblyVersion)
	info.CoreVersion = Version{u8(register.CoreVersionHigh), u8(register.CoreVersionLow)}
	info.FirmwareVersion = Version{u8(register.FirmwareVersionHigh), u8(register.FirmwareVersionLow)}
	info.SerialNumber = u16(register.SerialNumber)

	if err != nil {
		return Info{}, fmt.Errorf("device: read info: %w", err)
	}
	return info, nil
}

// SetOperationMode writes the OperationControl register.
func (d *Device) SetOperationMode(ctx context.Context, mode register.OperationMode, flags register.OperationControl) error {
	return Write(ctx, d, register.OperationControlRegister, register.NewOperationControl(mode, flags))
}

// OperationControl reads the OperationControl register.
func (d *Device) OperationControl(ctx context.Context) (register.OperationControl, error) {
	return Read(ctx, d, register.OperationControlRegister)
}
