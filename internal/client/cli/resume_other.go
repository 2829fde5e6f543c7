//go:build !unix

package cli

import (
	"context"

	"github.com/dmitrijs2005/memberclient/internal/client/session"
)

// resumeEvents has no source outside unix job control. The nil channel
// never delivers.
func resumeEvents(context.Context) (<-chan session.Event, func()) {
	return nil, func() {}
}
