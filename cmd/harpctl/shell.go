package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/harp-protocol/harp-go/pkg/cameracontroller"
)

// shell is the interactive command loop.
type shell struct {
	s  *session
	rl *readline.Instance
}

func newShell(s *session, in io.ReadCloser, out io.Writer) (*shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "harp> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    completer(),
		Stdin:           in,
		Stdout:          out,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	s.out = rl.Stdout()
	return &shell{s: s, rl: rl}, nil
}

// Stdout returns a writer that coordinates with the prompt.
func (sh *shell) Stdout() io.Writer {
	return sh.rl.Stdout()
}

func completer() *readline.PrefixCompleter {
	var regs []readline.PrefixCompleterInterface
	for _, d := range cameracontroller.Catalog.Descriptors() {
		regs = append(regs, readline.PcItem(d.Name))
	}
	return readline.NewPrefixCompleter(
		readline.PcItem("info"),
		readline.PcItem("registers"),
		readline.PcItem("read", regs...),
		readline.PcItem("write", regs...),
		readline.PcItem("dump"),
		readline.PcItem("restore"),
		readline.PcItem("monitor", readline.PcItem("on"), readline.PcItem("off")),
		readline.PcItem("stats"),
		readline.PcItem("reconnect"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}

// Run reads commands until quit, EOF or ctx ends.
func (sh *shell) Run(ctx context.Context) {
	defer sh.rl.Close()
	out := sh.rl.Stdout()

	sh.printHelp()

	for {
		if ctx.Err() != nil {
			return
		}

		line, err := sh.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			fmt.Fprintln(out, "Exiting...")
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			sh.printHelp()
		case "quit", "exit", "q":
			fmt.Fprintln(out, "Exiting...")
			return
		case "monitor":
			sh.cmdMonitor(args)
		case "reconnect":
			if _, err := sh.s.open(ctx); err != nil {
				printError(out, err)
			}
		default:
			if err := sh.s.run(ctx, cmd, args); err != nil {
				printError(out, err)
			}
		}
	}
}

// cmdMonitor toggles event printing without blocking the prompt.
func (sh *shell) cmdMonitor(args []string) {
	out := sh.rl.Stdout()
	switch {
	case len(args) == 0:
		state := "off"
		if sh.s.monitoring.Load() {
			state = "on"
		}
		fmt.Fprintf(out, "monitor is %s\n", state)
	case args[0] == "on":
		sh.s.monitoring.Store(true)
	case args[0] == "off":
		sh.s.monitoring.Store(false)
	default:
		fmt.Fprintln(out, "Usage: monitor [on|off]")
	}
}

func (sh *shell) printHelp() {
	fmt.Fprintln(sh.rl.Stdout(), `
Harp CameraController Commands:
  Device:
    info                      - Show device identification
    registers                 - List registers and value names
    read <register>           - Read a register (name or address)
    write <register> <value>  - Write a register, e.g. write CameraStart Camera0|Camera1
    reconnect                 - Re-open the device

  Snapshots:
    dump [file]               - Capture writable registers
    restore <file>            - Restore registers from a snapshot

  Events:
    monitor [on|off]          - Print device events as they arrive
    stats                     - Show command and event counters

  General:
    help                      - Show this help
    quit                      - Exit`)
}
