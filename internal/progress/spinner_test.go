// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package progress

import (
	"bytes"
	"sync"
	"testing"
	"time"
)

// syncWriter lets the test read what the spinner goroutine wrote without
// racing it.
type syncWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (w *syncWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

func (w *syncWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.String()
}

func TestSpinnerWritesFrames(t *testing.T) {
	w := &syncWriter{}
	s := Start(w, time.Millisecond)

	deadline := time.Now().Add(time.Second)
	for w.String() == "" && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	s.Stop()

	if w.String() == "" {
		t.Error("spinner wrote nothing")
	}
}

func TestSpinnerStopIsIdempotentAndPrompt(t *testing.T) {
	w := &syncWriter{}
	s := Start(w, time.Millisecond)

	done := make(chan struct{})
	go func() {
		s.Stop()
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop() blocked; it must signal, not await")
	}
}
