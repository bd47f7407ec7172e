// Package report implements the diagnostic sink boundary (spec §5, §9):
// a single push interface the checker core calls, a console
// implementation for single-threaded use, and a thread-safe Mailbox for
// multi-threaded deployments. Grounded on kailua_vs::report's
// proxy-over-channel design and on the teacher's cmd/lsp/server.go use
// of sync.RWMutex to guard state shared with a read loop.
package report

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/funvibe/kailua/internal/diagnostics"
)

// Kind is a diagnostic's severity (spec §6 wire format).
type Kind int

const (
	Note Kind = iota
	Info
	Warning
	Error
	Fatal
)

func (k Kind) String() string {
	switch k {
	case Note:
		return "note"
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Fatal:
		return "fatal"
	default:
		return "?"
	}
}

// Stop is the control signal propagated after a Fatal diagnostic or a
// disconnected mailbox forwarder (spec §7, §9).
var Stop = errors.New("report: stop")

// Report is the push interface the checker core calls; a single method,
// as spec §9 prescribes, so the sink never holds a lock across
// re-entry into the checker.
type Report interface {
	Add(kind Kind, span diagnostics.Span, message string) error
}

// Console is a single-threaded Report that writes to an io.Writer,
// color-coding by Kind when the writer is a real terminal.
type Console struct {
	w        io.Writer
	color    bool
	counts   [5]int
}

// NewConsole builds a Console sink. fd is used for isatty detection
// (typically os.Stderr.Fd()); pass 0 if w is not a file descriptor.
func NewConsole(w io.Writer, fd uintptr) *Console {
	color := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return &Console{w: w, color: color}
}

func (c *Console) Add(kind Kind, span diagnostics.Span, message string) error {
	c.counts[kind]++
	line := fmt.Sprintf("%s: %s: %s\n", span, kind, message)
	if c.color {
		line = colorize(kind, line)
	}
	if _, err := io.WriteString(c.w, line); err != nil {
		return err
	}
	if kind == Fatal {
		return Stop
	}
	return nil
}

// Summary renders a one-line count of diagnostics emitted so far, using
// humanize.Comma the way the teacher reaches for go-humanize rather than
// hand-rolling thousands separators.
func (c *Console) Summary() string {
	return fmt.Sprintf("%s notes, %s warnings, %s errors",
		humanize.Comma(int64(c.counts[Note]+c.counts[Info])),
		humanize.Comma(int64(c.counts[Warning])),
		humanize.Comma(int64(c.counts[Error]+c.counts[Fatal])),
	)
}

func colorize(kind Kind, line string) string {
	code := "0"
	switch kind {
	case Warning:
		code = "33"
	case Error, Fatal:
		code = "31"
	case Info, Note:
		code = "36"
	}
	return "\x1b[" + code + "m" + line + "\x1b[0m"
}

// Mailbox is the thread-safe proxy spec §5 requires for multi-threaded
// deployments: callers on any goroutine call Add, which enqueues under a
// mutex; a single forwarding goroutine drains the queue into the real
// sink. A disconnected forwarder converts any subsequent Add into Stop,
// mirroring VSReportProxy::add_span mapping a channel send error to Stop.
type Mailbox struct {
	mu     sync.Mutex
	queue  []mailboxEntry
	cond   *sync.Cond
	closed bool
	sink   Report
}

type mailboxEntry struct {
	kind    Kind
	span    diagnostics.Span
	message string
}

// NewMailbox starts a forwarding goroutine draining into sink.
func NewMailbox(sink Report) *Mailbox {
	m := &Mailbox{sink: sink}
	m.cond = sync.NewCond(&m.mu)
	go m.forward()
	return m
}

func (m *Mailbox) Add(kind Kind, span diagnostics.Span, message string) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return Stop
	}
	m.queue = append(m.queue, mailboxEntry{kind: kind, span: span, message: message})
	m.cond.Signal()
	m.mu.Unlock()
	if kind == Fatal {
		return Stop
	}
	return nil
}

// Close stops the forwarding goroutine after it drains any queued
// entries.
func (m *Mailbox) Close() {
	m.mu.Lock()
	m.closed = true
	m.cond.Signal()
	m.mu.Unlock()
}

func (m *Mailbox) forward() {
	for {
		m.mu.Lock()
		for len(m.queue) == 0 && !m.closed {
			m.cond.Wait()
		}
		if len(m.queue) == 0 && m.closed {
			m.mu.Unlock()
			return
		}
		entry := m.queue[0]
		m.queue = m.queue[1:]
		m.mu.Unlock()

		if err := m.sink.Add(entry.kind, entry.span, entry.message); err != nil {
			m.Close()
			return
		}
	}
}
