package met

import (
	"fmt"
	"net/url"
	"strconv"
)

// SearchOptions enumerates the recognized search filters. It compiles into
// the request's parameter bag; hasImages is always true and not represented
// here on purpose.
type SearchOptions struct {
	Query           string // free text, the q parameter
	TitleSearch     bool   // restrict q to titles
	OnView          bool
	Highlight       bool
	ArtistOrCulture bool
	DepartmentID    int    // 0 means unset
	Classification  string // display name from Classifications()
	GeoLocation     string // value from GeoLocations()
	DateBegin       int    // year, negative for BCE
	DateEnd         int
	HasDateRange    bool // DateBegin/DateEnd are only sent when set
}

// SearchRequest holds the named, string-valued parameters of one search
// invocation plus the two-phase fetch against the API. Build one per search
// and discard it afterwards.
type SearchRequest struct {
	client *Client
	params map[string]string
}

// NewSearch creates a request with the one fixed invariant parameter:
// hasImages=true. Everything else is opt-in.
func (c *Client) NewSearch() *SearchRequest {
	return &SearchRequest{
		client: c,
		params: map[string]string{"hasImages": "true"},
	}
}

// NewSearchWith creates a request and applies the typed options.
func (c *Client) NewSearchWith(opts SearchOptions) *SearchRequest {
	r := c.NewSearch()
	r.Set("q", opts.Query)
	r.Set("title", strconv.FormatBool(opts.TitleSearch))
	r.Set("isOnView", strconv.FormatBool(opts.OnView))
	r.Set("isHighlight", strconv.FormatBool(opts.Highlight))
	if opts.ArtistOrCulture {
		r.Set("artistOrCulture", "true")
	}
	if opts.DepartmentID != 0 {
		r.Set("departmentId", strconv.Itoa(opts.DepartmentID))
	}
	if opts.Classification != "" {
		r.Set("classification", opts.Classification)
	}
	if opts.GeoLocation != "" {
		r.Set("geoLocation", opts.GeoLocation)
	}
	if opts.HasDateRange {
		r.Set("dateBegin", strconv.Itoa(opts.DateBegin))
		r.Set("dateEnd", strconv.Itoa(opts.DateEnd))
	}
	return r
}

// Set stores a parameter, overwriting any existing value. Values are not
// validated against the upstream schema; that gap is inherited knowingly.
func (r *SearchRequest) Set(name, value string) {
	r.params[name] = value
}

// Unset removes a parameter. Unsetting a name that was never set returns
// ErrParameterNotSet.
func (r *SearchRequest) Unset(name string) error {
	if _, ok := r.params[name]; !ok {
		return fmt.Errorf("%w: %q", ErrParameterNotSet, name)
	}
	delete(r.params, name)
	return nil
}

// Get returns the current value of a parameter and whether it is set.
func (r *SearchRequest) Get(name string) (string, bool) {
	v, ok := r.params[name]
	return v, ok
}

// Encode serializes the parameters as a query string. url.Values sorts by
// key, so encoding is deterministic regardless of insertion order.
func (r *SearchRequest) Encode() string {
	v := url.Values{}
	for name, value := range r.params {
		v.Set(name, value)
	}
	return v.Encode()
}
