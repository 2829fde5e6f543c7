//go:build unix

package cli

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/memberclient/internal/client/session"
)

// resumeEvents turns SIGCONT into foreground events. Signals arriving while
// an event is still pending are coalesced.
func resumeEvents(ctx context.Context) (<-chan session.Event, func()) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGCONT)

	events := make(chan session.Event, 1)
	done := make(chan struct{})

	go func() {
		defer close(events)
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case <-sigs:
				select {
				case events <- session.EventForeground:
				default:
				}
			}
		}
	}()

	var once sync.Once
	return events, func() {
		once.Do(func() {
			signal.Stop(sigs)
			close(done)
		})
	}
}
