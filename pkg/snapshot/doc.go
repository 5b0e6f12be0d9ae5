// Package snapshot captures the writable registers of a Harp device and
// restores them later, possibly on another unit of the same device type.
//
// Snapshots are stored as YAML so they can be reviewed and edited by hand:
//
//	version: 1
//	device: CameraController
//	whoAmI: 1168
//	savedAt: 2026-10-19T10:00:00Z
//	registers:
//	    - address: 50
//	      name: Camera0Frequency
//	      value: 30
//
// Restore writes registers in ascending address order and refuses to touch a
// device whose identity differs from the one recorded.
package snapshot
