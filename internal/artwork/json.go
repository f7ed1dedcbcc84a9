package artwork

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FormatError reports a malformed favorites payload. A single bad element
// fails the whole parse; import never partially applies.
type FormatError struct {
	Index int // element position, -1 when the array itself is malformed
	Err   error
}

func (e *FormatError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("malformed favorites payload: %v", e.Err)
	}
	return fmt.Sprintf("malformed favorites entry %d: %v", e.Index, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// exchangeRecord is the on-disk favorites shape. The keys mirror the Record
// field names exactly so export/import round-trips losslessly. objectId is
// decoded leniently: older exports carried it as a bare number.
type exchangeRecord struct {
	ObjectID    json.RawMessage `json:"objectId"`
	Title       string          `json:"title"`
	Artist      string          `json:"artist"`
	Date        string          `json:"date"`
	Nationality string          `json:"nationality"`
	Medium      string          `json:"medium"`
	ImageURL    string          `json:"imageUrl"`
}

// Parse decodes a favorites exchange payload (a JSON array of record
// objects) into records with normalized ids.
func Parse(data []byte) ([]Record, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &FormatError{Index: -1, Err: err}
	}

	records := make([]Record, 0, len(raw))
	for i, elem := range raw {
		dec := json.NewDecoder(bytes.NewReader(elem))
		dec.DisallowUnknownFields()
		var er exchangeRecord
		if err := dec.Decode(&er); err != nil {
			return nil, &FormatError{Index: i, Err: err}
		}
		id, err := decodeID(er.ObjectID)
		if err != nil {
			return nil, &FormatError{Index: i, Err: err}
		}
		if id == "" {
			return nil, &FormatError{Index: i, Err: fmt.Errorf("missing objectId")}
		}
		records = append(records, Record{
			ID:          id,
			Title:       er.Title,
			Artist:      er.Artist,
			Date:        er.Date,
			Nationality: er.Nationality,
			Medium:      er.Medium,
			ImageURL:    er.ImageURL,
		})
	}
	return records, nil
}

// Marshal encodes records as the favorites exchange payload.
func Marshal(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("encoding favorites: %w", err)
	}
	return buf.Bytes(), nil
}

// decodeID accepts a JSON string or number and returns the canonical id.
func decodeID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return NormalizeID(s), nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("objectId must be a string or number")
	}
	return NormalizeID(n.String()), nil
}
