package transport

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/harp-protocol/harp-go/pkg/log"
	"github.com/harp-protocol/harp-go/pkg/wire"
)

// MaxLogFrameDataSize bounds the frame bytes copied into a log event.
// Harp frames never exceed it; it guards against misuse of the writer.
const MaxLogFrameDataSize = wire.MaxMessageSize

// Framing errors.
var (
	ErrMessageEmpty   = errors.New("message is empty")
	ErrFrameTruncated = errors.New("frame truncated")
)

// FrameWriter writes encoded Harp messages to an underlying writer.
type FrameWriter struct {
	w  io.Writer
	mu sync.Mutex

	logger log.Logger
	connID string
	port   string
}

// NewFrameWriter creates a new frame writer.
func NewFrameWriter(w io.Writer) *FrameWriter {
	return &FrameWriter{w: w}
}

// SetLogger configures frame capture. Pass nil to disable it.
func (fw *FrameWriter) SetLogger(logger log.Logger, connID, port string) {
	fw.logger = logger
	fw.connID = connID
	fw.port = port
}

// WriteFrame writes a complete frame in a single write.
// Safe for concurrent use.
func (fw *FrameWriter) WriteFrame(data []byte) error {
	if len(data) == 0 {
		return ErrMessageEmpty
	}
	if len(data) > wire.MaxMessageSize {
		return fmt.Errorf("%w: %d > %d", wire.ErrMessageTooLarge, len(data), wire.MaxMessageSize)
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if _, err := fw.w.Write(data); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}

	if fw.logger != nil {
		fw.logger.Log(frameEvent(data, log.DirectionOut, fw.connID, fw.port))
	}
	return nil
}

// FrameReader reads Harp frames from a byte stream.
//
// Harp has no start-of-frame marker. The reader trusts the length byte of
// a plausible header and verifies the checksum; when either check fails it
// drops one byte and tries again at the next offset.
type FrameReader struct {
	r       *bufio.Reader
	skipped atomic.Uint64

	logger log.Logger
	connID string
	port   string
}

// NewFrameReader creates a new frame reader.
func NewFrameReader(r io.Reader) *FrameReader {
	return &FrameReader{r: bufio.NewReaderSize(r, 4*wire.MaxMessageSize)}
}

// SetLogger configures frame capture. Pass nil to disable it.
func (fr *FrameReader) SetLogger(logger log.Logger, connID, port string) {
	fr.logger = logger
	fr.connID = connID
	fr.port = port
}

// Skipped returns the number of bytes dropped while resynchronizing.
func (fr *FrameReader) Skipped() uint64 {
	return fr.skipped.Load()
}

// ReadFrame returns the next frame whose header and checksum are valid.
// It returns io.EOF when the stream ends on a frame boundary and
// ErrFrameTruncated when it ends inside a frame.
func (fr *FrameReader) ReadFrame() ([]byte, error) {
	dropped := 0
	for {
		hdr, err := fr.r.Peek(wire.HeaderSize)
		if err != nil {
			return nil, fr.endOfStream(err, dropped)
		}

		size := wire.FrameSize(hdr)
		if !plausibleHeader(hdr) || size < wire.MinMessageSize {
			fr.drop(&dropped)
			continue
		}

		frame, err := fr.r.Peek(size)
		if err != nil {
			return nil, fr.endOfStream(err, dropped)
		}
		if wire.Checksum(frame[:size-1]) != frame[size-1] {
			fr.drop(&dropped)
			continue
		}

		out := make([]byte, size)
		copy(out, frame)
		if _, err := fr.r.Discard(size); err != nil {
			return nil, err
		}

		if dropped > 0 {
			fr.logResync(dropped)
		}
		if fr.logger != nil {
			fr.logger.Log(frameEvent(out, log.DirectionIn, fr.connID, fr.port))
		}
		return out, nil
	}
}

func (fr *FrameReader) drop(dropped *int) {
	_, _ = fr.r.Discard(1)
	*dropped++
	fr.skipped.Add(1)
}

func (fr *FrameReader) endOfStream(err error, dropped int) error {
	if dropped > 0 {
		fr.logResync(dropped)
	}
	if errors.Is(err, io.EOF) {
		if fr.r.Buffered() > 0 {
			return ErrFrameTruncated
		}
		return io.EOF
	}
	return fmt.Errorf("failed to read frame: %w", err)
}

func (fr *FrameReader) logResync(dropped int) {
	if fr.logger == nil {
		return
	}
	fr.logger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: fr.connID,
		Direction:    log.DirectionIn,
		Layer:        log.LayerTransport,
		Category:     log.CategoryError,
		Port:         fr.port,
		Error: &log.ErrorEventData{
			Layer:   log.LayerTransport,
			Message: fmt.Sprintf("dropped %d bytes", dropped),
			Context: "resync",
		},
	})
}

// plausibleHeader checks the message and payload type bytes.
func plausibleHeader(hdr []byte) bool {
	return wire.MessageType(hdr[0]).IsValid() && wire.PayloadType(hdr[4]).IsValid()
}

func frameEvent(data []byte, direction log.Direction, connID, port string) log.Event {
	frameData := data
	truncated := false
	if len(data) > MaxLogFrameDataSize {
		frameData = data[:MaxLogFrameDataSize]
		truncated = true
	}

	return log.Event{
		Timestamp:    time.Now(),
		ConnectionID: connID,
		Direction:    direction,
		Layer:        log.LayerTransport,
		Category:     log.CategoryMessage,
		Port:         port,
		Frame: &log.FrameEvent{
			Size:      len(data),
			Data:      append([]byte(nil), frameData...),
			Truncated: truncated,
		},
	}
}

// Framer combines frame reading and writing.
type Framer struct {
	*FrameReader
	*FrameWriter
}

// NewFramer creates a framer over rw.
func NewFramer(rw io.ReadWriter) *Framer {
	return &Framer{
		FrameReader: NewFrameReader(rw),
		FrameWriter: NewFrameWriter(rw),
	}
}

// SetLogger configures capture for both directions.
func (f *Framer) SetLogger(logger log.Logger, connID, port string) {
	f.FrameReader.SetLogger(logger, connID, port)
	f.FrameWriter.SetLogger(logger, connID, port)
}
