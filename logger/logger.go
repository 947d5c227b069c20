// Package logger is the asynchronous leveled log sink shared by all relex
// subpackages.
//
// Producers never block and never fail hard: a message is formatted, tagged
// with the caller's file and line, and handed to a buffered queue drained by
// a single background worker. If the queue is full the message is dropped
// and the enqueue reports false; callers treat logging as fire-and-forget,
// so a lost message never affects parsing or matching. Message records are
// recycled through a free pool. Closing the sink drains and flushes
// everything still queued.
package logger

import (
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

// Level is a log message severity. Messages below the sink's minimum level
// are discarded before formatting.
type Level int32

const (
	DebugLevel Level = iota
	InfoLevel
	WarningLevel
	ErrorLevel
)

func (lv Level) String() string {
	switch lv {
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	case WarningLevel:
		return "warning"
	case ErrorLevel:
		return "error"
	default:
		return fmt.Sprintf("level(%d)", int32(lv))
	}
}

// ParseLevel converts a level name as used in configuration files and CLI
// flags.
func ParseLevel(name string) (Level, error) {
	switch name {
	case "debug":
		return DebugLevel, nil
	case "info":
		return InfoLevel, nil
	case "warning", "warn":
		return WarningLevel, nil
	case "error":
		return ErrorLevel, nil
	default:
		return DebugLevel, fmt.Errorf("unknown log level %q", name)
	}
}

func (lv Level) logrus() logrus.Level {
	switch lv {
	case DebugLevel:
		return logrus.DebugLevel
	case InfoLevel:
		return logrus.InfoLevel
	case WarningLevel:
		return logrus.WarnLevel
	default:
		return logrus.ErrorLevel
	}
}

type message struct {
	level Level
	file  string
	line  int
	text  string
}

// DefaultQueueSize is the queue capacity of sinks created by NewSink.
const DefaultQueueSize = 512

// Sink is one log queue plus its background worker.
type Sink struct {
	out    *logrus.Logger
	level  atomic.Int32
	mu     sync.RWMutex
	closed bool
	queue  chan *message
	pool   sync.Pool
	done   chan struct{}
}

// NewSink creates a sink writing to w and starts its worker.
func NewSink(w io.Writer, level Level) *Sink {
	out := logrus.New()
	out.SetOutput(w)
	out.SetLevel(logrus.DebugLevel) // filtering happens on the producer side

	s := &Sink{
		out:   out,
		queue: make(chan *message, DefaultQueueSize),
		done:  make(chan struct{}),
		pool:  sync.Pool{New: func() any { return new(message) }},
	}
	s.level.Store(int32(level))
	go s.run()
	return s
}

func (s *Sink) run() {
	for m := range s.queue {
		s.emit(m)
		s.pool.Put(m)
	}
	close(s.done)
}

func (s *Sink) emit(m *message) {
	entry := logrus.NewEntry(s.out)
	if m.file != "" {
		entry = entry.WithField("src", fmt.Sprintf("%s:%d", m.file, m.line))
	}
	entry.Log(m.level.logrus(), m.text)
}

// SetLevel changes the minimum level of messages accepted by the sink.
func (s *Sink) SetLevel(level Level) {
	if s != nil {
		s.level.Store(int32(level))
	}
}

// Enabled reports whether messages of the given level are currently
// accepted.
func (s *Sink) Enabled(level Level) bool {
	return s != nil && int32(level) >= s.level.Load()
}

// output formats and enqueues one message. calldepth locates the logging
// call site for the file:line tag, as in runtime.Caller. The boolean result
// reports whether the message was enqueued; a false return is not an error
// condition.
func (s *Sink) output(level Level, calldepth int, format string, args ...any) bool {
	if !s.Enabled(level) {
		return false
	}

	m := s.pool.Get().(*message)
	m.level = level
	m.text = fmt.Sprintf(format, args...)
	m.file = ""
	m.line = 0
	if _, file, line, ok := runtime.Caller(calldepth); ok {
		m.file = filepath.Base(file)
		m.line = line
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		s.pool.Put(m)
		return false
	}
	select {
	case s.queue <- m:
		return true
	default:
		s.pool.Put(m)
		return false
	}
}

// Logf enqueues a message attributed to the caller of Logf.
func (s *Sink) Logf(level Level, format string, args ...any) bool {
	return s.output(level, 2, format, args...)
}

// Close drains the queue, flushes all remaining messages, and stops the
// worker. Messages logged after Close are discarded.
func (s *Sink) Close() {
	if s == nil {
		return
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.queue)
	s.mu.Unlock()
	<-s.done
}

// The default sink used by the package-level functions. A nil default makes
// all of them no-ops, so library code may log unconditionally.
var std atomic.Pointer[Sink]

// Start installs a default sink writing to w. The previous sink, if any, is
// closed.
func Start(w io.Writer, level Level) {
	Stop()
	std.Store(NewSink(w, level))
}

// Stop closes the default sink after flushing everything still queued.
func Stop() {
	s := std.Swap(nil)
	s.Close()
}

// SetLevel changes the minimum level of the default sink.
func SetLevel(level Level) {
	std.Load().SetLevel(level)
}

func Debugf(format string, args ...any) bool {
	return std.Load().output(DebugLevel, 2, format, args...)
}

func Infof(format string, args ...any) bool {
	return std.Load().output(InfoLevel, 2, format, args...)
}

func Warningf(format string, args ...any) bool {
	return std.Load().output(WarningLevel, 2, format, args...)
}

func Errorf(format string, args ...any) bool {
	return std.Load().output(ErrorLevel, 2, format, args...)
}
