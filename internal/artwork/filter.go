package artwork

import "strings"

// Filter narrows a record list. Empty fields match everything.
type Filter struct {
	Search string // matches title, artist, or medium (case-insensitive)
	Artist string
	Medium string
}

// Apply returns the subset of records matching all non-empty filter fields.
func (f Filter) Apply(records []Record) []Record {
	var out []Record
	for _, r := range records {
		if f.Artist != "" && !strings.EqualFold(r.Artist, f.Artist) {
			continue
		}
		if f.Medium != "" && !containsFold(r.Medium, f.Medium) {
			continue
		}
		if f.Search != "" && !matchesSearch(r, f.Search) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesSearch(r Record, q string) bool {
	return containsFold(r.Title, q) ||
		containsFold(r.Artist, q) ||
		containsFold(r.Medium, q)
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
