package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harp-protocol/harp-go/pkg/cameracontroller"
	"github.com/harp-protocol/harp-go/pkg/register"
	"github.com/harp-protocol/harp-go/pkg/snapshot"
	"github.com/harp-protocol/harp-go/pkg/transport"
)

var (
	errUsage           = errors.New("usage")
	errUnknown         = errors.New("unknown command")
	errUnknownRegister = errors.New("unknown register")
)

// listPorts is replaced in tests.
var listPorts = transport.ListPorts

// run executes one command.
func (s *session) run(ctx context.Context, cmd string, args []string) error {
	switch strings.ToLower(cmd) {
	case "ports":
		return s.cmdPorts()
	case "registers", "regs":
		return s.cmdRegisters()
	case "info":
		return s.cmdInfo(ctx)
	case "read", "r":
		return s.cmdRead(ctx, args)
	case "write", "w":
		return s.cmdWrite(ctx, args)
	case "dump":
		return s.cmdDump(ctx, args)
	case "restore":
		return s.cmdRestore(ctx, args)
	case "monitor":
		return s.cmdMonitor(ctx, args)
	case "stats":
		return s.cmdStats()
	default:
		return fmt.Errorf("%w: %s", errUnknown, cmd)
	}
}

func (s *session) cmdPorts() error {
	ports, err := listPorts()
	if err != nil {
		return err
	}
	if len(ports) == 0 {
		fmt.Fprintln(s.out, "No serial ports found")
		return nil
	}

	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PORT\tUSB\tVID:PID\tSERIAL\tPRODUCT")
	for _, p := range ports {
		usb, ids := "no", ""
		if p.IsUSB {
			usb, ids = "yes", p.VID+":"+p.PID
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.Name, usb, ids, p.SerialNumber, p.Product)
	}
	return tw.Flush()
}

func (s *session) cmdRegisters() error {
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ADDR\tNAME\tTYPE\tACCESS\tVALUES")
	for _, d := range cameracontroller.Catalog.Descriptors() {
		var names []string
		for _, b := range cameracontroller.NamedValues(d.Name) {
			names = append(names, b.Name)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s %s\t%s\t%s\n", d.Address, d.Name, d.PayloadType(), d.Kind, d.Access, strings.Join(names, ","))
	}
	return tw.Flush()
}

func (s *session) cmdInfo(ctx context.Context) error {
	dev, err := s.device(ctx)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	info, err := dev.ReadInfo(ctx)
	if err != nil {
		return err
	}
	control, err := dev.OperationControl(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "device: %s\nport: %s\nhandshake: %s\nmode: %s\n",
		dev.Catalog().Name(), dev.TransportID(), dev.State(), control.Mode())
	enc := yaml.NewEncoder(s.out)
	enc.SetIndent(2)
	if err := enc.Encode(info); err != nil {
		return err
	}
	return enc.Close()
}

func (s *session) cmdRead(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: read <register>", errUsage)
	}
	desc, err := resolveRegister(args[0])
	if err != nil {
		return err
	}
	dev, err := s.device(ctx)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	_, v, err := dev.ReadAddress(ctx, desc.Address)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s (%d) = %s\n", desc.Name, desc.Address, formatValue(desc, v))
	return nil
}

func (s *session) cmdWrite(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: write <register> <value>", errUsage)
	}
	desc, err := resolveRegister(args[0])
	if err != nil {
		return err
	}
	v, err := parseValue(desc, args[1])
	if err != nil {
		return err
	}
	dev, err := s.device(ctx)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	if err := dev.WriteAddress(ctx, desc.Address, v); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s (%d) <- %s\n", desc.Name, desc.Address, formatValue(desc, v))
	return nil
}

func (s *session) cmdDump(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("%w: dump [file]", errUsage)
	}
	dev, err := s.device(ctx)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	snap, err := snapshot.Capture(ctx, dev.Device)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return snapshot.Encode(s.out, snap)
	}
	if err := snapshot.NewStore(args[0]).Save(snap); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Saved %d registers to %s\n", len(snap.Registers), args[0])
	return nil
}

func (s *session) cmdRestore(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: restore <file>", errUsage)
	}
	snap, err := snapshot.NewStore(args[0]).Load()
	if err != nil {
		return err
	}
	if snap == nil {
		return fmt.Errorf("snapshot %s not found", args[0])
	}
	dev, err := s.device(ctx)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	if err := snapshot.Restore(ctx, dev.Device, snap); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Restored %d registers from %s\n", len(snap.Registers), args[0])
	return nil
}

// cmdMonitor prints events until ctx ends or the optional duration passes.
// A lost connection is reopened when retries are enabled.
func (s *session) cmdMonitor(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("%w: monitor [duration]", errUsage)
	}
	if len(args) == 1 {
		d, err := time.ParseDuration(args[0])
		if err != nil {
			return fmt.Errorf("%w: monitor [duration]: %v", errUsage, err)
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	s.monitoring.Store(true)
	defer s.monitoring.Store(false)

	for {
		dev, err := s.device(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		select {
		case <-ctx.Done():
			return s.cmdStats()
		case <-dev.Done():
			if s.cfg.Retry == 1 {
				return fmt.Errorf("connection lost: %w", dev.Err())
			}
		}
	}
}

func (s *session) cmdStats() error {
	s.mu.Lock()
	dev := s.dev
	s.mu.Unlock()

	rs := s.router.Stats()
	fmt.Fprintf(s.out, "events routed: %d unknown: %d undecodable: %d\n", rs.Routed, rs.Unknown, rs.DecodeErrors)
	if dev == nil {
		return nil
	}
	cs := dev.Stats()
	fmt.Fprintf(s.out, "commands sent: %d replies: %d cancelled: %d discarded: %d events: %d dropped: %d\n",
		cs.Sent, cs.Replies, cs.Cancelled, cs.Discarded, cs.Events, cs.DroppedEvents)
	return nil
}

// resolveRegister accepts a register name (case-insensitive) or address.
func resolveRegister(s string) (register.Descriptor, error) {
	if n, err := strconv.ParseUint(s, 0, 8); err == nil {
		return cameracontroller.Catalog.Resolve(uint8(n))
	}
	if d, ok := cameracontroller.Catalog.ByName(s); ok {
		return d, nil
	}
	for _, d := range cameracontroller.Catalog.Descriptors() {
		if strings.EqualFold(d.Name, s) {
			return d, nil
		}
	}
	return register.Descriptor{}, fmt.Errorf("%w: %q", errUnknownRegister, s)
}

// parseValue accepts numbers and, for flags and enum registers, value names.
func parseValue(desc register.Descriptor, s string) (uint16, error) {
	if named := cameracontroller.NamedValues(desc.Name); named != nil {
		return register.ParseFlags(s, named)
	}
	n, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q for %s", s, desc.Name)
	}
	return uint16(n), nil
}

// formatValue renders v with value names where the register has them.
func formatValue(desc register.Descriptor, v uint16) string {
	named := cameracontroller.NamedValues(desc.Name)
	switch {
	case named == nil:
		return strconv.FormatUint(uint64(v), 10)
	case desc.Kind == register.KindEnum:
		for _, b := range named {
			if b.Value == v {
				return fmt.Sprintf("%s (%d)", b.Name, v)
			}
		}
		return strconv.FormatUint(uint64(v), 10)
	default:
		return fmt.Sprintf("%s (0x%X)", register.FormatFlags(v, named), v)
	}
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
}
