// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package progress renders a cosmetic terminal spinner. It reads no
// crawl state and the crawl never waits on it; stopping is a signal, not
// a join.
package progress

import (
	"fmt"
	"io"
	"sync"
	"time"
)

var frames = []byte{'|', '/', '-', '\\'}

// Spinner is a background activity indicator.
type Spinner struct {
	w        io.Writer
	interval time.Duration
	stop     chan struct{}
	once     sync.Once
}

// Start launches the spinner goroutine writing to w. A zero interval
// defaults to 100ms.
func Start(w io.Writer, interval time.Duration) *Spinner {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	s := &Spinner{w: w, interval: interval, stop: make(chan struct{})}
	go s.run()
	return s
}

func (s *Spinner) run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	i := 0
	for {
		select {
		case <-s.stop:
			fmt.Fprint(s.w, "\r \r")
			return
		case <-ticker.C:
			fmt.Fprintf(s.w, "\r%c", frames[i%len(frames)])
			i++
		}
	}
}

// Stop cancels the spinner. It returns immediately without waiting for
// the goroutine and is safe to call more than once.
func (s *Spinner) Stop() {
	s.once.Do(func() { close(s.stop) })
}
