package trace

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/andybalholm/brotli"
	"github.com/thelolagemann/gbcore/internal/cpu"
)

type fileSink struct {
	f   io.Closer
	enc *brotli.Writer
	w   *bufio.Writer
}

// NewFileSink creates path and returns a Sink that appends one text
// line per trace to it, brotli compressed.
func NewFileSink(path string) (Sink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("trace: %w", err)
	}

	return newWriterSink(f, f), nil
}

func newWriterSink(w io.Writer, c io.Closer) *fileSink {
	enc := brotli.NewWriterLevel(w, brotli.DefaultCompression)
	return &fileSink{
		f:   c,
		enc: enc,
		w:   bufio.NewWriter(enc),
	}
}

func (s *fileSink) Write(t cpu.Trace) error {
	if _, err := s.w.WriteString(t.String()); err != nil {
		return err
	}
	return s.w.WriteByte('\n')
}

// Close flushes the compressed stream and closes the file.
func (s *fileSink) Close() error {
	if err := s.w.Flush(); err != nil {
		return err
	}
	if err := s.enc.Close(); err != nil {
		return err
	}
	return s.f.Close()
}
