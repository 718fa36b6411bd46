package notify

import (
	"fmt"
	"io"
	"sync"
)

// Writer prints notifications instead of showing them. The one-shot CLI
// commands use it so the outcome lands on the terminal.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriter returns a Sender printing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (p *Writer) Notify(title, body string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "%s\n%s\n", title, body)
}

// NotifyWithAction prints like Notify; there is no button to offer.
func (p *Writer) NotifyWithAction(title, body string) {
	p.Notify(title, body)
}
