package cli

import (
	"bufio"
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return "(anonymous)"
	}
	s := "authenticated"
	if sess := a.controller.Current(); sess != nil && sess.UserID != "" {
		s = sess.UserID + " " + s
	}
	return fmt.Sprintf("(%s)", s)
}

// Root checks the stored session, starts the resume watcher and runs the
// REPL until the user exits.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to the member CLI (type 'help' for commands)")

	if _, err := a.controller.CheckStatus(ctx); err != nil {
		a.logger.Warn(ctx, "could not read stored session", "error", err)
	}

	events, stopEvents := resumeEvents(ctx)
	stopWatch := a.controller.Watch(ctx, events)
	defer func() {
		stopEvents()
		stopWatch()
	}()

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(lineReader{a.reader}))
}

// lineReader hands out at most one line per Read, so a Scanner over it never
// buffers input that a command prompt reads next.
type lineReader struct {
	r *bufio.Reader
}

func (l lineReader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		b, err := l.r.ReadByte()
		if err != nil {
			if n > 0 {
				return n, nil
			}
			return 0, err
		}
		p[n] = b
		n++
		if b == '\n' {
			break
		}
	}
	return n, nil
}
