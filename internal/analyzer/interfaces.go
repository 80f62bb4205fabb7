package analyzer

import (
	"context"

	"github.com/talhabaig007/PhishStop/internal/model"
)

// RemoteClient scores URLs against an external analysis service.
// Implementations must honor context cancellation; the analyzer applies
// its own bounded timeout around every call.
type RemoteClient interface {
	Analyze(ctx context.Context, url string) (model.Verdict, error)
}

// Observer receives every verdict the analyzer completes, including
// results computed for navigations that have since gone away. Cache hits
// are not re-announced.
type Observer interface {
	Record(v model.Verdict)
}
