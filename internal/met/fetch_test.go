package met_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/blackwell-systems/curatorctl/internal/artwork"
	"github.com/blackwell-systems/curatorctl/internal/met"
)

// stubMuseum serves a canned search response and per-id detail responses.
func stubMuseum(t *testing.T, search string, objects map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/search"):
			fmt.Fprint(w, search)
		case strings.HasPrefix(r.URL.Path, "/objects/"):
			id := strings.TrimPrefix(r.URL.Path, "/objects/")
			body, ok := objects[id]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprint(w, `{"message":"ObjectID not found"}`)
				return
			}
			fmt.Fprint(w, body)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestFetchIdentifiers_Order(t *testing.T) {
	srv := stubMuseum(t, `{"total":3,"objectIDs":[1003,1001,1002]}`, nil)
	defer srv.Close()

	ids, err := met.New(srv.URL).NewSearch().FetchIdentifiers(context.Background())
	if err != nil {
		t.Fatalf("FetchIdentifiers: %v", err)
	}
	want := []string{"1003", "1001", "1002"}
	if len(ids) != len(want) {
		t.Fatalf("got %d ids, want %d", len(ids), len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestFetchIdentifiers_NullIsEmpty(t *testing.T) {
	// Zero matches: the API reports objectIDs as null. That is the empty
	// result condition, not a transport failure.
	srv := stubMuseum(t, `{"total":0,"objectIDs":null}`, nil)
	defer srv.Close()

	ids, err := met.New(srv.URL).NewSearch().FetchIdentifiers(context.Background())
	if err != nil {
		t.Fatalf("FetchIdentifiers: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("got %d ids, want 0", len(ids))
	}
}

func TestFetchIdentifiers_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := met.New(srv.URL).NewSearch().FetchIdentifiers(context.Background())
	var te *met.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("error = %v, want *TransportError", err)
	}
	if te.Status != http.StatusBadGateway {
		t.Errorf("TransportError.Status = %d, want 502", te.Status)
	}
}

func TestFetchRecord_Fields(t *testing.T) {
	srv := stubMuseum(t, `{}`, map[string]string{
		"436121": `{"objectID":436121,"title":"The Laundress","artistDisplayName":"Honoré Daumier",` +
			`"objectDate":"ca. 1863","artistNationality":"French","medium":"Oil on wood",` +
			`"primaryImageSmall":"https://images.example.org/436121.jpg"}`,
	})
	defer srv.Close()

	rec, err := met.New(srv.URL).NewSearch().FetchRecord(context.Background(), "436121")
	if err != nil {
		t.Fatalf("FetchRecord: %v", err)
	}
	want := artwork.Record{
		ID:          "436121",
		Title:       "The Laundress",
		Artist:      "Honoré Daumier",
		Date:        "ca. 1863",
		Nationality: "French",
		Medium:      "Oil on wood",
		ImageURL:    "https://images.example.org/436121.jpg",
	}
	if rec != want {
		t.Errorf("FetchRecord = %+v, want %+v", rec, want)
	}
}

func TestFetchRecord_NotFound(t *testing.T) {
	srv := stubMuseum(t, `{}`, nil)
	defer srv.Close()

	_, err := met.New(srv.URL).NewSearch().FetchRecord(context.Background(), "99")
	if !errors.Is(err, met.ErrObjectNotFound) {
		t.Errorf("error = %v, want ErrObjectNotFound", err)
	}
}

func TestFetchRecords_GivenIDsNoSearchCall(t *testing.T) {
	var searchCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/search") {
			searchCalls.Add(1)
			fmt.Fprint(w, `{"total":0}`)
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/objects/")
		fmt.Fprintf(w, `{"objectID":%s,"title":"t%s"}`, id, id)
	}))
	defer srv.Close()

	records, err := met.New(srv.URL).NewSearch().FetchRecords(context.Background(), []string{"1", "2", "3"})
	if err != nil {
		t.Fatalf("FetchRecords: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	for _, r := range records {
		if r.IsSentinel() {
			t.Error("FetchRecords should not append a sentinel")
		}
	}
	if n := searchCalls.Load(); n != 0 {
		t.Errorf("FetchRecords hit the search endpoint %d times, want 0", n)
	}
}

func TestFetchAll_DaumierScenario(t *testing.T) {
	srv := stubMuseum(t,
		`{"total":2,"objectIDs":[1001,1002]}`,
		map[string]string{
			"1001": `{"objectID":1001,"title":"The Laundress","artistDisplayName":"Honoré Daumier","objectDate":"1863","artistNationality":"French","medium":"Oil","primaryImageSmall":"u1"}`,
			"1002": `{"objectID":1002,"title":"Study","artistDisplayName":"Honoré Daumier","objectDate":"1860","artistNationality":"French","medium":"Chalk","primaryImageSmall":"u2"}`,
		})
	defer srv.Close()

	req := met.New(srv.URL).NewSearch()
	req.Set("q", "Daumier")
	req.Set("title", "true")
	req.Set("isOnView", "true")

	records, err := req.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	// Two records in any order, then exactly one sentinel, last.
	if len(records) != 3 {
		t.Fatalf("got %d records, want 2 + sentinel", len(records))
	}
	if !records[2].IsSentinel() {
		t.Error("last record should be the sentinel")
	}
	titles := map[string]bool{}
	for _, r := range records[:2] {
		if r.IsSentinel() {
			t.Fatal("sentinel appeared before the end")
		}
		titles[r.Title] = true
	}
	if !titles["The Laundress"] || !titles["Study"] {
		t.Errorf("titles = %v, want The Laundress and Study", titles)
	}
}

func TestFetchAll_LengthAndSentinelPosition(t *testing.T) {
	const n = 40
	var search strings.Builder
	search.WriteString(`{"total":40,"objectIDs":[`)
	objects := map[string]string{}
	for i := 0; i < n; i++ {
		if i > 0 {
			search.WriteString(",")
		}
		fmt.Fprintf(&search, "%d", 100+i)
		objects[fmt.Sprint(100+i)] = fmt.Sprintf(
			`{"objectID":%d,"title":"t%d","artistDisplayName":"","objectDate":"","artistNationality":"","medium":"","primaryImageSmall":""}`,
			100+i, i)
	}
	search.WriteString(`]}`)

	srv := stubMuseum(t, search.String(), objects)
	defer srv.Close()

	records, err := met.New(srv.URL, met.WithParallelism(8)).NewSearch().FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(records) != n+1 {
		t.Fatalf("got %d records, want %d", len(records), n+1)
	}
	for i, r := range records {
		if r.IsSentinel() != (i == n) {
			t.Fatalf("sentinel misplaced at index %d", i)
		}
	}
}

func TestFetchAll_EmptyResult(t *testing.T) {
	srv := stubMuseum(t, `{"total":0}`, nil)
	defer srv.Close()

	records, err := met.New(srv.URL).NewSearch().FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(records) != 1 || !records[0].IsSentinel() {
		t.Errorf("empty search should yield only the sentinel, got %v", records)
	}
}

func TestFetchAll_SingleFailureAborts(t *testing.T) {
	srv := stubMuseum(t,
		`{"total":3,"objectIDs":[1,2,3]}`,
		map[string]string{
			"1": `{"objectID":1,"title":"a"}`,
			"3": `{"objectID":3,"title":"c"}`,
			// id 2 404s
		})
	defer srv.Close()

	_, err := met.New(srv.URL).NewSearch().FetchAll(context.Background())
	if err == nil {
		t.Fatal("FetchAll should abort when one detail fetch fails")
	}
	var te *met.TransportError
	if !errors.As(err, &te) {
		t.Errorf("error = %v, want *TransportError", err)
	}
}

func TestFetchAll_BoundedFanOut(t *testing.T) {
	const limit = 3
	var inFlight, peak atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/search") {
			fmt.Fprint(w, `{"total":12,"objectIDs":[1,2,3,4,5,6,7,8,9,10,11,12]}`)
			return
		}
		cur := inFlight.Add(1)
		for {
			p := peak.Load()
			if cur <= p || peak.CompareAndSwap(p, cur) {
				break
			}
		}
		defer inFlight.Add(-1)
		id := strings.TrimPrefix(r.URL.Path, "/objects/")
		fmt.Fprintf(w, `{"objectID":%s,"title":"t"}`, id)
	}))
	defer srv.Close()

	_, err := met.New(srv.URL, met.WithParallelism(limit)).NewSearch().FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if got := peak.Load(); got > limit {
		t.Errorf("observed %d concurrent detail fetches, limit is %d", got, limit)
	}
}

func TestStream_GenerationTagAndSentinelLast(t *testing.T) {
	srv := stubMuseum(t,
		`{"total":2,"objectIDs":[1,2]}`,
		map[string]string{
			"1": `{"objectID":1,"title":"a"}`,
			"2": `{"objectID":2,"title":"b"}`,
		})
	defer srv.Close()

	ch := make(chan met.Result, 8)
	go met.Stream(context.Background(), met.New(srv.URL).NewSearch(), 7, ch)

	var got []met.Result
	for r := range ch {
		if r.Err != nil {
			t.Fatalf("Stream error: %v", r.Err)
		}
		got = append(got, r)
		if r.Record.IsSentinel() {
			break
		}
	}
	if len(got) != 3 {
		t.Fatalf("got %d results, want 3", len(got))
	}
	for _, r := range got {
		if r.Generation != 7 {
			t.Errorf("Generation = %d, want 7", r.Generation)
		}
	}
}

func TestStream_SharedChannelAcrossGenerations(t *testing.T) {
	srv := stubMuseum(t,
		`{"total":1,"objectIDs":[1]}`,
		map[string]string{"1": `{"objectID":1,"title":"a"}`})
	defer srv.Close()

	// Two searches share one channel; each generation carries its own tag
	// and ends with its own sentinel. The channel stays open throughout.
	ch := make(chan met.Result, 8)
	client := met.New(srv.URL)
	go met.Stream(context.Background(), client.NewSearch(), 1, ch)

	seen := map[int]int{}
	drainGeneration := func(gen int) {
		for r := range ch {
			if r.Err != nil {
				t.Fatalf("Stream error: %v", r.Err)
			}
			seen[r.Generation]++
			if r.Record.IsSentinel() {
				if r.Generation != gen {
					t.Fatalf("sentinel tagged generation %d, want %d", r.Generation, gen)
				}
				return
			}
		}
		t.Fatal("channel closed; it should stay open across generations")
	}

	drainGeneration(1)
	go met.Stream(context.Background(), client.NewSearch(), 2, ch)
	drainGeneration(2)

	if seen[1] != 2 || seen[2] != 2 {
		t.Errorf("deliveries per generation = %v, want 2 each", seen)
	}
}

func TestStream_DeliversError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ch := make(chan met.Result, 1)
	go met.Stream(context.Background(), met.New(srv.URL).NewSearch(), 1, ch)

	r := <-ch
	if r.Err == nil {
		t.Fatal("expected an error result")
	}
	if r.Generation != 1 {
		t.Errorf("Generation = %d, want 1", r.Generation)
	}
}
