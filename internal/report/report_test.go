package report

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/funvibe/kailua/internal/diagnostics"
)

func TestConsoleAddReturnsStopOnFatal(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, 0)

	require.NoError(t, c.Add(Warning, diagnostics.Span{File: "a.lua", Line: 1, Col: 1}, "careful"))
	err := c.Add(Fatal, diagnostics.Span{File: "a.lua", Line: 2, Col: 1}, "boom")
	require.ErrorIs(t, err, Stop)
	require.Contains(t, buf.String(), "boom")
}

func TestConsoleSummaryCounts(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, 0)
	_ = c.Add(Warning, diagnostics.Span{}, "w1")
	_ = c.Add(Error, diagnostics.Span{}, "e1")
	require.Contains(t, c.Summary(), "1 warnings")
	require.Contains(t, c.Summary(), "1 errors")
}

type recordingSink struct {
	mu   sync.Mutex
	msgs []string
}

func (r *recordingSink) Add(kind Kind, span diagnostics.Span, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, message)
	return nil
}

func (r *recordingSink) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.msgs)
}

func TestMailboxForwardsAcrossGoroutines(t *testing.T) {
	sink := &recordingSink{}
	mb := NewMailbox(sink)
	defer mb.Close()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = mb.Add(Note, diagnostics.Span{}, "hi")
		}()
	}
	wg.Wait()

	require.Eventually(t, func() bool { return sink.len() == 10 }, time.Second, time.Millisecond)
}

func TestMailboxReturnsStopAfterClose(t *testing.T) {
	sink := &recordingSink{}
	mb := NewMailbox(sink)
	mb.Close()
	require.Eventually(t, func() bool {
		return mb.Add(Note, diagnostics.Span{}, "late") == Stop
	}, time.Second, time.Millisecond)
}
