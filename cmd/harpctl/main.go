// Command harpctl talks to a Harp CameraController over a serial port, or to
// a simulated one.
//
// Usage:
//
//	harpctl [flags] <command> [args]
//
// Examples:
//
//	# List serial ports
//	harpctl ports
//
//	# Show identification of the device on /dev/ttyUSB0
//	harpctl -port /dev/ttyUSB0 info
//
//	# Start both cameras and watch the trigger events of a simulated device
//	harpctl -simulate shell
//
//	# Save and restore the configuration
//	harpctl -port COM3 dump camera.yml
//	harpctl -port COM3 restore camera.yml
//
//	# Keep monitoring across unplugs, capturing every frame
//	harpctl -port COM3 -retry 0 -protocol-log session.hlog monitor
//
// Settings may also come from a TOML file given with -config:
//
//	port = "/dev/ttyUSB0"
//	timeout = "1s"
//	retry = 3
//	log_level = "debug"
//	protocol_log = "harp.hlog"
//	metrics_addr = ":9112"
//
//	[backoff]
//	initial = "250ms"
//	max = "5s"
//
// The HARPCTL_LOG_LEVEL environment variable overrides the file's log level.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.ReadCloser, stdout, stderr io.Writer) int {
	cfg, rest, err := parseArgs(args, os.Getenv, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}
	if len(rest) == 0 {
		fmt.Fprintln(stderr, "error: missing command (try -h)")
		return 2
	}

	zl, err := initLogger(cfg.LogLevel, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	plog, closeLog, err := protocolLogger(cfg, zl)
	if err != nil {
		zl.Error().Err(err).Msg("startup")
		return 1
	}
	defer func() {
		if err := closeLog(); err != nil {
			zl.Warn().Err(err).Msg("closing protocol log")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := newSession(cfg, zl, plog, stdout)
	defer s.Close()
	if cfg.MetricsAddr != "" {
		s.serveMetrics(ctx, cfg.MetricsAddr)
	}

	cmd, cmdArgs := rest[0], rest[1:]
	if cmd == "shell" {
		sh, err := newShell(s, stdin, stdout)
		if err != nil {
			zl.Error().Err(err).Msg("shell")
			return 1
		}
		if shellLog, err := initLogger(cfg.LogLevel, sh.Stdout()); err == nil {
			s.zl = shellLog
		}
		sh.Run(ctx)
		return 0
	}

	if err := s.run(ctx, cmd, cmdArgs); err != nil {
		printError(stderr, err)
		if errors.Is(err, errUsage) || errors.Is(err, errUnknown) {
			return 2
		}
		return 1
	}
	return 0
}
