package met

import (
	"context"

	"github.com/blackwell-systems/curatorctl/internal/artwork"
)

// Result is one delivery from a streaming fetch. Generation identifies the
// FetchAll invocation that produced it; consumers drop results whose
// generation is older than the search they are currently rendering, which
// keeps a superseded search from overwriting current rows.
type Result struct {
	Generation int
	Record     artwork.Record
	Err        error // terminal; no further results follow for this generation
}

// Stream runs FetchAll in the calling goroutine and delivers every record,
// the trailing sentinel included, onto ch tagged with gen. On failure it
// delivers a single Result carrying the error instead. The channel is not
// closed: several generations may share one queue, and the sentinel (or the
// error) is the per-generation completion signal.
//
// Run it from a background goroutine; network calls block and must stay off
// the UI event loop.
func Stream(ctx context.Context, req *SearchRequest, gen int, ch chan<- Result) {
	records, err := req.FetchAll(ctx)
	if err != nil {
		select {
		case ch <- Result{Generation: gen, Err: err}:
		case <-ctx.Done():
		}
		return
	}
	for _, rec := range records {
		select {
		case ch <- Result{Generation: gen, Record: rec}:
		case <-ctx.Done():
			return
		}
	}
}
