package met

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/blackwell-systems/curatorctl/internal/artwork"
	"golang.org/x/sync/errgroup"
)

// searchResponse is the shape of the search endpoint. objectIDs is absent or
// null when nothing matched; that is an empty result, not an error.
type searchResponse struct {
	Total     int     `json:"total"`
	ObjectIDs []int64 `json:"objectIDs"`
}

// objectResponse carries the detail fields this program consumes.
type objectResponse struct {
	ObjectID          json.Number `json:"objectID"`
	Title             string      `json:"title"`
	ArtistDisplayName string      `json:"artistDisplayName"`
	ObjectDate        string      `json:"objectDate"`
	ArtistNationality string      `json:"artistNationality"`
	Medium            string      `json:"medium"`
	PrimaryImageSmall string      `json:"primaryImageSmall"`
}

// FetchIdentifiers runs the search call and returns the matching object ids
// in the order the API reported them. Zero matches yields an empty slice and
// a nil error.
func (r *SearchRequest) FetchIdentifiers(ctx context.Context) ([]string, error) {
	url := r.client.url("search") + "?" + r.Encode()
	var resp searchResponse
	if err := r.client.getJSON(ctx, url, &resp); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(resp.ObjectIDs))
	for _, id := range resp.ObjectIDs {
		ids = append(ids, strconv.FormatInt(id, 10))
	}
	return ids, nil
}

// FetchRecord retrieves the detail record for one object id. This is the
// per-item call fanned out by FetchAll.
func (r *SearchRequest) FetchRecord(ctx context.Context, id string) (artwork.Record, error) {
	url := r.client.url("objects", artwork.NormalizeID(id))
	var resp objectResponse
	if err := r.client.getJSON(ctx, url, &resp); err != nil {
		var te *TransportError
		if errors.As(err, &te) && te.Status == 404 {
			return artwork.Record{}, &TransportError{URL: url, Status: te.Status, Err: ErrObjectNotFound}
		}
		return artwork.Record{}, err
	}
	return artwork.Record{
		ID:          artwork.NormalizeID(resp.ObjectID.String()),
		Title:       resp.Title,
		Artist:      resp.ArtistDisplayName,
		Date:        resp.ObjectDate,
		Nationality: resp.ArtistNationality,
		Medium:      resp.Medium,
		ImageURL:    resp.PrimaryImageSmall,
	}, nil
}

// FetchRecords fans FetchRecord out over the given ids with a bounded worker
// pool. Results arrive in completion order, not id order; callers needing
// stable ordering re-sort afterwards. Any single detail failure aborts the
// whole call.
func (r *SearchRequest) FetchRecords(ctx context.Context, ids []string) ([]artwork.Record, error) {
	results := make(chan artwork.Record, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.client.parallelism)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			rec, err := r.FetchRecord(gctx, id)
			if err != nil {
				return err
			}
			results <- rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	close(results)

	records := make([]artwork.Record, 0, len(ids))
	for rec := range results {
		records = append(records, rec)
	}
	return records, nil
}

// FetchAll runs the identifier search and fans the detail fetches out over
// the matches. The returned slice always ends with exactly one sentinel
// record, appended after all workers have joined, so a consumer draining the
// sequence through a queue can detect completion.
func (r *SearchRequest) FetchAll(ctx context.Context) ([]artwork.Record, error) {
	ids, err := r.FetchIdentifiers(ctx)
	if err != nil {
		return nil, err
	}
	records, err := r.FetchRecords(ctx, ids)
	if err != nil {
		return nil, err
	}
	return append(records, artwork.Sentinel()), nil
}
