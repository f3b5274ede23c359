// Package console renders notices as lines on a terminal.
package console

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/oasisnourish/storefront/internal/ports"
)

var _ ports.Notifier = (*Notifier)(nil)

// Notifier prints notices as "[ok] title" or "[!!] title".
type Notifier struct {
	mu  sync.Mutex
	out io.Writer
}

// NewNotifier writes notices to out.
func NewNotifier(out io.Writer) *Notifier {
	return &Notifier{out: out}
}

func (n *Notifier) Notify(_ context.Context, notice ports.Notice) {
	if notice.Title == "" {
		return
	}
	marker := "[ok]"
	if notice.Variant == ports.NoticeDestructive {
		marker = "[!!]"
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	_, _ = fmt.Fprintf(n.out, "%s %s\n", marker, notice.Title)
}
