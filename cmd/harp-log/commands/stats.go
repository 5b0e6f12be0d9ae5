package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/harp-protocol/harp-go/pkg/log"
	"github.com/harp-protocol/harp-go/pkg/wire"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents       int
	EventsByLayer     map[log.Layer]int
	EventsByCategory  map[log.Category]int
	EventsByDirection map[log.Direction]int
	Connections       map[string]*ConnectionStats
	Registers         map[uint8]*RegisterStats
	Errors            int
	Discarded         int
	TimeRange         struct {
		Start time.Time
		End   time.Time
	}
}

// ConnectionStats holds statistics for a single connection.
type ConnectionStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Port      string
	Device    string
}

// RegisterStats counts wire-layer traffic for one register address.
type RegisterStats struct {
	Name       string
	Reads      int
	Writes     int
	Events     int
	Errors     int
	RoundTrips int
	TotalRTT   time.Duration
	MaxRTT     time.Duration
}

// MeanRTT returns the mean round trip of the replies that carried one.
func (r *RegisterStats) MeanRTT() time.Duration {
	if r.RoundTrips == 0 {
		return 0
	}
	return r.TotalRTT / time.Duration(r.RoundTrips)
}

// Collect reads every event of the log file into a Stats.
func Collect(path string) (*Stats, error) {
	reader, err := log.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByLayer:     make(map[log.Layer]int),
		EventsByCategory:  make(map[log.Category]int),
		EventsByDirection: make(map[log.Direction]int),
		Connections:       make(map[string]*ConnectionStats),
		Registers:         make(map[uint8]*RegisterStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}
	return stats, nil
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByLayer[event.Layer]++
	s.EventsByCategory[event.Category]++
	s.EventsByDirection[event.Direction]++

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	conn, ok := s.Connections[event.ConnectionID]
	if !ok {
		conn = &ConnectionStats{
			FirstSeen: event.Timestamp,
			LastSeen:  event.Timestamp,
		}
		s.Connections[event.ConnectionID] = conn
	}
	conn.Events++
	if event.Timestamp.After(conn.LastSeen) {
		conn.LastSeen = event.Timestamp
	}
	if event.Port != "" && conn.Port == "" {
		conn.Port = event.Port
	}
	if event.Device != "" && conn.Device == "" {
		conn.Device = event.Device
	}

	if event.Error != nil {
		s.Errors++
	}

	m := event.Message
	if m == nil {
		return
	}
	if m.Discarded {
		s.Discarded++
		return
	}
	wireLayer := event.Layer == log.LayerWire
	if !wireLayer && m.RoundTrip == nil {
		return
	}

	reg, ok := s.Registers[m.Address]
	if !ok {
		reg = &RegisterStats{}
		s.Registers[m.Address] = reg
	}
	if m.Register != "" {
		reg.Name = m.Register
	}
	if m.RoundTrip != nil {
		reg.RoundTrips++
		reg.TotalRTT += *m.RoundTrip
		if *m.RoundTrip > reg.MaxRTT {
			reg.MaxRTT = *m.RoundTrip
		}
	}

	// Traffic counts come from the wire layer only; the channel layer
	// repeats the same messages.
	if !wireLayer {
		return
	}
	if m.Type.IsError() {
		reg.Errors++
	}
	switch m.Type.Base() {
	case wire.MessageRead:
		reg.Reads++
	case wire.MessageWrite:
		reg.Writes++
	case wire.MessageEvent:
		reg.Events++
	}
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	stats, err := Collect(path)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Harp Protocol Log Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Layer:")
	for _, layer := range []log.Layer{log.LayerTransport, log.LayerWire, log.LayerChannel} {
		if count := stats.EventsByLayer[layer]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", layer.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryMessage, log.CategoryEvent, log.CategoryState, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Direction:")
	for _, dir := range []log.Direction{log.DirectionIn, log.DirectionOut} {
		if count := stats.EventsByDirection[dir]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", dir.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	if len(stats.Registers) > 0 {
		addrs := make([]int, 0, len(stats.Registers))
		for a := range stats.Registers {
			addrs = append(addrs, int(a))
		}
		sort.Ints(addrs)

		fmt.Fprintln(w, "Registers:")
		for _, a := range addrs {
			r := stats.Registers[uint8(a)]
			name := r.Name
			if name == "" {
				name = "?"
			}
			fmt.Fprintf(w, "  %3d %-18s reads=%d writes=%d events=%d", a, name, r.Reads, r.Writes, r.Events)
			if r.Errors > 0 {
				fmt.Fprintf(w, " errors=%d", r.Errors)
			}
			if r.RoundTrips > 0 {
				fmt.Fprintf(w, " rtt(mean/max)=%s/%s", formatDuration(r.MeanRTT()), formatDuration(r.MaxRTT))
			}
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Connections: %d\n", len(stats.Connections))
	if len(stats.Connections) > 0 {
		type connInfo struct {
			id    string
			stats *ConnectionStats
		}
		conns := make([]connInfo, 0, len(stats.Connections))
		for id, cs := range stats.Connections {
			conns = append(conns, connInfo{id, cs})
		}
		sort.Slice(conns, func(i, j int) bool {
			return conns[i].stats.FirstSeen.Before(conns[j].stats.FirstSeen)
		})

		fmt.Fprintln(w)
		for _, c := range conns {
			duration := c.stats.LastSeen.Sub(c.stats.FirstSeen).Round(time.Millisecond)
			fmt.Fprintf(w, "  [%s] %d events, duration %s\n", shortenConnID(c.id), c.stats.Events, duration)
			if c.stats.Port != "" {
				fmt.Fprintf(w, "           Port: %s\n", c.stats.Port)
			}
			if c.stats.Device != "" {
				fmt.Fprintf(w, "           Device: %s\n", c.stats.Device)
			}
		}
	}

	if stats.Discarded > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Discarded replies: %d\n", stats.Discarded)
	}
	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
