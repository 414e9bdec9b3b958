//go:build !windows

package termio

import (
	"os"
	"os/signal"
	"syscall"
)

// NewResizeNotifier subscribes to SIGWINCH.
func NewResizeNotifier() *ResizeNotifier {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGWINCH)
	return &ResizeNotifier{C: ch, stop: func() { signal.Stop(ch) }}
}
