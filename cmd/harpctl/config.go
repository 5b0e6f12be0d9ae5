package main

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/harp-protocol/harp-go/pkg/connection"
	"github.com/harp-protocol/harp-go/pkg/transport"
)

// logLevelEnv overrides the log level from the config file.
const logLevelEnv = "HARPCTL_LOG_LEVEL"

// Config holds the harpctl settings.
type Config struct {
	ConfigFile string

	Port         string
	BaudRate     int
	Simulate     bool
	SerialNumber uint

	Timeout        time.Duration
	Retry          int
	Backoff        connection.BackoffConfig
	LateReplyGrace time.Duration
	EventBuffer    int

	LogLevel    string
	ProtocolLog string
	MetricsAddr string
}

func defaultConfig() Config {
	return Config{
		BaudRate: transport.DefaultBaudRate,
		Timeout:  2 * time.Second,
		Retry:    1,
		LogLevel: "info",
	}
}

type fileConfig struct {
	Port           string        `toml:"port"`
	Baud           int           `toml:"baud"`
	Simulate       bool          `toml:"simulate"`
	SerialNumber   uint          `toml:"serial_number"`
	Timeout        string        `toml:"timeout"`
	Retry          int           `toml:"retry"`
	LateReplyGrace string        `toml:"late_reply_grace"`
	EventBuffer    int           `toml:"event_buffer"`
	LogLevel       string        `toml:"log_level"`
	ProtocolLog    string        `toml:"protocol_log"`
	MetricsAddr    string        `toml:"metrics_addr"`
	Backoff        backoffConfig `toml:"backoff"`
}

type backoffConfig struct {
	Initial string `toml:"initial"`
	Max     string `toml:"max"`
}

// loadConfigFile applies the keys present in a TOML file on top of cfg.
func loadConfigFile(path string, cfg *Config) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load harpctl config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("load harpctl config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("port") {
		cfg.Port = strings.TrimSpace(raw.Port)
	}
	if meta.IsDefined("baud") {
		cfg.BaudRate = raw.Baud
	}
	if meta.IsDefined("simulate") {
		cfg.Simulate = raw.Simulate
	}
	if meta.IsDefined("serial_number") {
		cfg.SerialNumber = raw.SerialNumber
	}
	if meta.IsDefined("retry") {
		cfg.Retry = raw.Retry
	}
	if meta.IsDefined("event_buffer") {
		cfg.EventBuffer = raw.EventBuffer
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("protocol_log") {
		cfg.ProtocolLog = strings.TrimSpace(raw.ProtocolLog)
	}
	if meta.IsDefined("metrics_addr") {
		cfg.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)
	}

	durations := []struct {
		key  []string
		raw  string
		dest *time.Duration
	}{
		{[]string{"timeout"}, raw.Timeout, &cfg.Timeout},
		{[]string{"late_reply_grace"}, raw.LateReplyGrace, &cfg.LateReplyGrace},
		{[]string{"backoff", "initial"}, raw.Backoff.Initial, &cfg.Backoff.Initial},
		{[]string{"backoff", "max"}, raw.Backoff.Max, &cfg.Backoff.Max},
	}
	for _, d := range durations {
		if !meta.IsDefined(d.key...) {
			continue
		}
		v, err := time.ParseDuration(strings.TrimSpace(d.raw))
		if err != nil {
			return fmt.Errorf("parse %s: %w", strings.Join(d.key, "."), err)
		}
		*d.dest = v
	}
	return nil
}

// parseArgs resolves the configuration from defaults, the config file, the
// environment and the command line, in increasing precedence. It returns the
// remaining arguments (the command and its operands).
func parseArgs(args []string, getenv func(string) string, stderr io.Writer) (Config, []string, error) {
	cfg := defaultConfig()
	flags := defaultConfig()

	fs := flag.NewFlagSet("harpctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(fs) }

	fs.StringVar(&flags.ConfigFile, "config", "", "TOML configuration file")
	fs.StringVar(&flags.Port, "port", "", "Serial port of the device (e.g. /dev/ttyUSB0, COM3)")
	fs.IntVar(&flags.BaudRate, "baud", flags.BaudRate, "Serial baud rate")
	fs.BoolVar(&flags.Simulate, "simulate", false, "Talk to a simulated CameraController instead of a serial port")
	fs.UintVar(&flags.SerialNumber, "serial-number", 0, "Serial number reported by the simulated device")
	fs.DurationVar(&flags.Timeout, "timeout", flags.Timeout, "Timeout for each command")
	fs.IntVar(&flags.Retry, "retry", flags.Retry, "Open attempts before giving up (0 = until interrupted)")
	fs.DurationVar(&flags.LateReplyGrace, "late-reply-grace", 0, "How long to discard replies to cancelled commands")
	fs.StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: trace, debug, info, warn, error")
	fs.StringVar(&flags.ProtocolLog, "protocol-log", "", "Append protocol events to this .hlog file")
	fs.StringVar(&flags.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9112)")

	if err := fs.Parse(args); err != nil {
		return Config{}, nil, err
	}

	if flags.ConfigFile != "" {
		cfg.ConfigFile = flags.ConfigFile
		if err := loadConfigFile(flags.ConfigFile, &cfg); err != nil {
			return Config{}, nil, err
		}
	}
	if v := strings.TrimSpace(getenv(logLevelEnv)); v != "" {
		cfg.LogLevel = v
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			cfg.Port = flags.Port
		case "baud":
			cfg.BaudRate = flags.BaudRate
		case "simulate":
			cfg.Simulate = flags.Simulate
		case "serial-number":
			cfg.SerialNumber = flags.SerialNumber
		case "timeout":
			cfg.Timeout = flags.Timeout
		case "retry":
			cfg.Retry = flags.Retry
		case "late-reply-grace":
			cfg.LateReplyGrace = flags.LateReplyGrace
		case "log-level":
			cfg.LogLevel = flags.LogLevel
		case "protocol-log":
			cfg.ProtocolLog = flags.ProtocolLog
		case "metrics-addr":
			cfg.MetricsAddr = flags.MetricsAddr
		}
	})

	if cfg.SerialNumber > 0xFFFF {
		return Config{}, nil, fmt.Errorf("serial number %d does not fit in 16 bits", cfg.SerialNumber)
	}
	if cfg.Retry < 0 {
		return Config{}, nil, fmt.Errorf("retry must not be negative")
	}
	return cfg, fs.Args(), nil
}

func usage(fs *flag.FlagSet) {
	w := fs.Output()
	fmt.Fprintln(w, `Usage: harpctl [flags] <command> [args]

Commands:
  ports                      List serial ports
  info                       Show device identification
  registers                  List the CameraController registers
  read <register>            Read a register (name or address)
  write <register> <value>   Write a register (number or value names, e.g. Camera0|Camera1)
  dump [file]                Capture writable registers as YAML
  restore <file>             Restore registers from a YAML snapshot
  monitor [duration]         Print device events until interrupted
  shell                      Interactive command shell

Flags:`)
	fs.PrintDefaults()
}
