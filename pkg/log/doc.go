// Package log captures Harp protocol traffic for debugging and analysis.
//
// Protocol capture is separate from operational logging. Operational logs
// (slog or zerolog) tell an operator what the program is doing; a protocol
// log is a complete, machine-readable trace of every frame, decoded message
// and channel state change on a device connection.
//
// # Basic Usage
//
//	// Console output during development
//	cfg.Logger = log.NewSlogAdapter(slog.Default())
//
//	// Binary capture for later analysis with harp-log
//	fl, _ := log.NewFileLogger("/var/log/harp/camera.hlog")
//	cfg.Logger = fl
//
//	// Both
//	cfg.Logger = log.NewMultiLogger(log.NewSlogAdapter(slog.Default()), fl)
//
// # Layers
//
//   - Transport: raw frame bytes as read from or written to the port
//   - Wire: decoded Harp messages, with the register name when known
//   - Channel: command queue state changes, discarded replies and errors
//
// # File Format
//
// Log files are a stream of CBOR-encoded events with the .hlog extension.
package log
