//go:build windows

package termio

import "os"

// NewResizeNotifier returns a notifier whose channel never fires: Windows
// consoles have no SIGWINCH equivalent, so no resize event is ever
// delivered on Windows.
func NewResizeNotifier() *ResizeNotifier {
	ch := make(chan os.Signal)
	return &ResizeNotifier{C: ch, stop: func() {}}
}
