package register

// Addresses of the registers every Harp device implements.
const (
	AddressWhoAmI              uint8 = 0
	AddressHardwareVersionHigh uint8 = 1
	AddressHardwareVersionLow  uint8 = 2
	AddressAssemblyVersion     uint8 = 3
	AddressCoreVersionHigh     uint8 = 4
	AddressCoreVersionLow      uint8 = 5
	AddressFirmwareVersionHigh uint8 = 6
	AddressFirmwareVersionLow  uint8 = 7
	AddressOperationControl    uint8 = 10
	AddressResetDevice         uint8 = 11
	AddressSerialNumber        uint8 = 13
)

// OperationMode is the device operation mode held in bits 0-1 of
// OperationControl.
type OperationMode uint8

const (
	ModeStandby OperationMode = 0
	ModeActive  OperationMode = 1
	ModeSpeed   OperationMode = 3
)

// String returns the mode name.
func (m OperationMode) String() string {
	switch m {
	case ModeStandby:
		return "Standby"
	case ModeActive:
		return "Active"
	case ModeSpeed:
		return "Speed"
	default:
		return "Unknown"
	}
}

// OperationControl is the value of the OperationControl register.
type OperationControl uint8

const (
	operationModeMask OperationControl = 0x03

	// OperationDump makes the device emit every register once.
	OperationDump OperationControl = 1 << 3
	// OperationMuteReplies suppresses replies to host commands.
	OperationMuteReplies OperationControl = 1 << 4
	// OperationVisualIndicators enables the board indicator LEDs.
	OperationVisualIndicators OperationControl = 1 << 5
	// OperationLED enables the operation LED.
	OperationLED OperationControl = 1 << 6
	// OperationHeartbeat enables the one-second heartbeat event.
	OperationHeartbeat OperationControl = 1 << 7
)

// NewOperationControl combines a mode with option flags.
func NewOperationControl(mode OperationMode, flags OperationControl) OperationControl {
	return flags&^operationModeMask | OperationControl(mode)&operationModeMask
}

// Mode returns the operation mode.
func (c OperationControl) Mode() OperationMode {
	return OperationMode(c & operationModeMask)
}

// Has returns true if all flags in f are set.
func (c OperationControl) Has(f OperationControl) bool {
	return c&f == f
}

// ResetFlags is the value written to ResetDevice.
type ResetFlags uint8

const (
	ResetDefaults   ResetFlags = 1 << 0
	ResetFromMemory ResetFlags = 1 << 1
	ResetSave       ResetFlags = 1 << 2
)

// Common registers.
var (
	WhoAmI = Define[uint16](Descriptor{
		Address:     AddressWhoAmI,
		Name:        "WhoAmI",
		Width:       Width16,
		Kind:        KindInteger,
		Access:      AccessRead,
		Description: "Identity of the device family.",
	})

	HardwareVersionHigh = Define[uint8](Descriptor{
		Address:     AddressHardwareVersionHigh,
		Name:        "HardwareVersionHigh",
		Width:       Width8,
		Kind:        KindInteger,
		Access:      AccessRead,
		Description: "Major hardware version.",
	})

	HardwareVersionLow = Define[uint8](Descriptor{
		Address:     AddressHardwareVersionLow,
		Name:        "HardwareVersionLow",
		Width:       Width8,
		Kind:        KindInteger,
		Access:      AccessRead,
		Description: "Minor hardware version.",
	})

	AssemblyVersion = Define[uint8](Descriptor{
		Address:     AddressAssemblyVersion,
		Name:        "AssemblyVersion",
		Width:       Width8,
		Kind:        KindInteger,
		Access:      AccessRead,
		Description: "Board assembly version.",
	})

	CoreVersionHigh = Define[uint8](Descriptor{
		Address:     AddressCoreVersionHigh,
		Name:        "CoreVersionHigh",
		Width:       Width8,
		Kind:        KindInteger,
		Access:      AccessRead,
		Description: "Major protocol core version.",
	})

	CoreVersionLow = Define[uint8](Descriptor{
		Address:     AddressCoreVersionLow,
		Name:        "CoreVersionLow",
		Width:       Width8,
		Kind:        KindInteger,
		Access:      AccessRead,
		Description: "Minor protocol core version.",
	})

	FirmwareVersionHigh = Define[uint8](Descriptor{
		Address:     AddressFirmwareVersionHigh,
		Name:        "FirmwareVersionHigh",
		Width:       Width8,
		Kind:        KindInteger,
		Access:      AccessRead,
		Description: "Major firmware version.",
	})

	FirmwareVersionLow = Define[uint8](Descriptor{
		Address:     AddressFirmwareVersionLow,
		Name:        "FirmwareVersionLow",
		Width:       Width8,
		Kind:        KindInteger,
		Access:      AccessRead,
		Description: "Minor firmware version.",
	})

	OperationControlRegister = Define[OperationControl](Descriptor{
		Address:     AddressOperationControl,
		Name:        "OperationControl",
		Width:       Width8,
		Kind:        KindFlags,
		Access:      AccessRead | AccessWrite,
		Description: "Operation mode and option flags.",
	})

	ResetDevice = Define[ResetFlags](Descriptor{
		Address:     AddressResetDevice,
		Name:        "ResetDevice",
		Width:       Width8,
		Kind:        KindFlags,
		Access:      AccessRead | AccessWrite,
		Volatile:    true,
		Description: "Resets the device or saves its registers to non-volatile memory.",
	})

	SerialNumber = Define[uint16](Descriptor{
		Address:     AddressSerialNumber,
		Name:        "SerialNumber",
		Width:       Width16,
		Kind:        KindInteger,
		Access:      AccessRead | AccessWrite,
		Description: "Device serial number.",
	})
)

// Common returns the descriptors of the registers every Harp device
// implements, for inclusion in a device catalog.
func Common() []Descriptor {
	return []Descriptor{
		WhoAmI.Descriptor(),
		HardwareVersionHigh.Descriptor(),
		HardwareVersionLow.Descriptor(),
		AssemblyVersion.Descriptor(),
		CoreVersionHigh.Descriptor(),
		CoreVersionLow.Descriptor(),
		FirmwareVersionHigh.Descriptor(),
		FirmwareVersionLow.Descriptor(),
		OperationControlRegister.Descriptor(),
		ResetDevice.Descriptor(),
		SerialNumber.Descriptor(),
	}
}
