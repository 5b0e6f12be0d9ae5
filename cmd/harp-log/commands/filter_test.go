package commands

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harp-protocol/harp-go/pkg/log"
)

func readAll(t *testing.T, path string) []log.Event {
	t.Helper()
	r, err := log.NewReader(path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer r.Close()

	var events []log.Event
	for {
		e, err := r.Next()
		if err == io.EOF {
			return events
		}
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		events = append(events, e)
	}
}

func TestRunFilterByAddress(t *testing.T) {
	path := createTestLogFile(t, session())
	out := filepath.Join(t.TempDir(), "filtered.hlog")

	var buf bytes.Buffer
	err := RunFilter(path, FilterOptions{Output: out, Address: "41"}, &buf)
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Filtered 1 events") {
		t.Errorf("unexpected summary: %s", buf.String())
	}

	events := readAll(t, out)
	if len(events) != 1 || events[0].Message.Register != "Camera1Trigger" {
		t.Errorf("unexpected filtered events: %+v", events)
	}
}

func TestRunFilterByTimeAndDirection(t *testing.T) {
	path := createTestLogFile(t, session())
	out := filepath.Join(t.TempDir(), "filtered.hlog")

	opts := FilterOptions{
		Output:    out,
		Port:      "/dev/ttyUSB0",
		TimeStart: "2026-01-28T10:15:32Z",
		TimeEnd:   "2026-01-28T10:15:33Z",
		Direction: "in",
	}
	if err := RunFilter(path, opts, io.Discard); err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}

	events := readAll(t, out)
	if len(events) != 1 {
		t.Fatalf("expected the reply only, got %d events", len(events))
	}
	if events[0].Message.RoundTrip == nil {
		t.Error("expected the reply event")
	}
}

func TestFilterOptionsErrors(t *testing.T) {
	tests := []FilterOptions{
		{Address: "0x1ff"},
		{TimeStart: "yesterday"},
		{TimeEnd: "tomorrow"},
		{Layer: "service"},
		{Direction: "sideways"},
		{Category: "snapshot"},
	}
	for _, opts := range tests {
		if _, err := opts.Filter(); err == nil {
			t.Errorf("expected error for %+v", opts)
		}
	}
}
