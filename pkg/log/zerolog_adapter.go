package log

import (
	"encoding/hex"

	"github.com/rs/zerolog"
)

// ZerologAdapter writes protocol events to a zerolog.Logger.
// Errors are logged at Warn level and everything else at Debug.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter returns an adapter writing to logger.
func NewZerologAdapter(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

// Log writes the event.
func (a *ZerologAdapter) Log(event Event) {
	var e *zerolog.Event
	if event.Category == CategoryError {
		e = a.logger.Warn()
	} else {
		e = a.logger.Debug()
	}
	if !e.Enabled() {
		return
	}

	e = e.Str("conn_id", shortID(event.ConnectionID)).
		Str("dir", event.Direction.String()).
		Str("layer", event.Layer.String()).
		Str("category", event.Category.String())
	if event.Port != "" {
		e = e.Str("port", event.Port)
	}

	switch {
	case event.Frame != nil:
		e = e.Int("frame_size", event.Frame.Size).Str("frame", hexBytes(event.Frame.Data))
	case event.Message != nil:
		m := event.Message
		e = e.Stringer("msg_type", m.Type).Uint8("address", m.Address).Stringer("payload_type", m.PayloadType)
		if m.Register != "" {
			e = e.Str("register", m.Register)
		}
		if len(m.Payload) > 0 {
			e = e.Str("payload", hexBytes(m.Payload))
		}
		if m.Seconds != nil {
			e = e.Float64("device_seconds", *m.Seconds)
		}
		if m.RoundTrip != nil {
			e = e.Dur("round_trip", *m.RoundTrip)
		}
		if m.Discarded {
			e = e.Bool("discarded", true)
		}
	case event.StateChange != nil:
		e = e.Stringer("entity", event.StateChange.Entity).
			Str("old_state", event.StateChange.OldState).
			Str("new_state", event.StateChange.NewState).
			Str("reason", event.StateChange.Reason)
	case event.Error != nil:
		e = e.Str("error", event.Error.Message).Str("context", event.Error.Context)
	}

	e.Msg("protocol")
}

var _ Logger = (*ZerologAdapter)(nil)

func hexBytes(b []byte) string {
	return hex.EncodeToString(b)
}

// shortID returns the first 8 characters of a connection UUID.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
