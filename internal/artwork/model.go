package artwork

import (
	"sort"
	"strconv"
	"strings"
)

// Record is one museum object as consumed by the rest of the program.
// Identity is ID; the other fields are descriptive and may differ between
// fetches of the same object. Records are replaced, never mutated in place.
type Record struct {
	ID          string `json:"objectId"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Date        string `json:"date"`
	Nationality string `json:"nationality"`
	Medium      string `json:"medium"`
	ImageURL    string `json:"imageUrl"`
}

// sentinelID never collides with a real object id (the API hands out
// positive integers).
const sentinelID = "-1"

// Sentinel returns the end-of-results marker appended after the last record
// of a fetch. It exists so a consumer draining a queue can detect completion
// without a separate signal.
func Sentinel() Record {
	return Record{ID: sentinelID}
}

// IsSentinel reports whether r is the end-of-results marker.
func (r Record) IsSentinel() bool {
	return r.ID == sentinelID
}

// NormalizeID canonicalizes an external identifier to a decimal string.
// Search responses carry numeric ids while the store and the exchange format
// carry strings; everything downstream of a deserialization boundary uses
// this one representation.
func NormalizeID(id string) string {
	id = strings.TrimSpace(id)
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		return strconv.FormatInt(n, 10)
	}
	return id
}

// SortByTitle orders records by title ascending, byte order, with ID as the
// tiebreaker so equal titles still sort deterministically.
func SortByTitle(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Title != records[j].Title {
			return records[i].Title < records[j].Title
		}
		return records[i].ID < records[j].ID
	})
}

// ByID returns the first record with the given (normalized) id, or nil.
func ByID(records []Record, id string) *Record {
	id = NormalizeID(id)
	for i := range records {
		if records[i].ID == id {
			return &records[i]
		}
	}
	return nil
}
