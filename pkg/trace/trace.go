// Package trace provides the sinks that consume the per-step traces
// produced by the CPU.
package trace

import (
	"errors"

	"github.com/thelolagemann/gbcore/internal/cpu"
	"github.com/thelolagemann/gbcore/pkg/log"
)

// Sink receives one trace per executed step.
type Sink interface {
	Write(t cpu.Trace) error
	Close() error
}

type multi []Sink

// Multi returns a Sink that writes every trace to each of sinks in
// order. Close closes every sink and joins their errors.
func Multi(sinks ...Sink) Sink {
	return multi(sinks)
}

func (m multi) Write(t cpu.Trace) error {
	for _, s := range m {
		if err := s.Write(t); err != nil {
			return err
		}
	}
	return nil
}

func (m multi) Close() error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.Close())
	}
	return errors.Join(errs...)
}

type logSink struct {
	l log.Logger
}

// NewLogSink returns a Sink that logs every trace at debug level, with
// the registers as structured fields.
func NewLogSink(l log.Logger) Sink {
	return &logSink{l: l}
}

func (s *logSink) Write(t cpu.Trace) error {
	s.l.WithFields(t.Fields()).Debugf("step")
	return nil
}

func (s *logSink) Close() error {
	return nil
}
