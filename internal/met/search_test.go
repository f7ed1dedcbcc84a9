package met_test

import (
	"errors"
	"sort"
	"testing"

	"github.com/blackwell-systems/curatorctl/internal/met"
)

func TestNewSearch_HasImagesFixed(t *testing.T) {
	r := met.New("").NewSearch()
	v, ok := r.Get("hasImages")
	if !ok || v != "true" {
		t.Errorf("hasImages = %q (set=%v), want fixed \"true\"", v, ok)
	}
}

func TestSet_Overwrites(t *testing.T) {
	r := met.New("").NewSearch()
	r.Set("q", "Daumier")
	r.Set("q", "Monet")
	if v, _ := r.Get("q"); v != "Monet" {
		t.Errorf("q = %q after overwrite, want %q", v, "Monet")
	}
}

func TestUnset_NeverSet(t *testing.T) {
	r := met.New("").NewSearch()
	err := r.Unset("departmentId")
	if !errors.Is(err, met.ErrParameterNotSet) {
		t.Errorf("Unset of never-set parameter = %v, want ErrParameterNotSet", err)
	}
}

func TestUnset_Set(t *testing.T) {
	r := met.New("").NewSearch()
	r.Set("isOnView", "true")
	if err := r.Unset("isOnView"); err != nil {
		t.Fatalf("Unset: %v", err)
	}
	if _, ok := r.Get("isOnView"); ok {
		t.Error("parameter still present after Unset")
	}
}

func TestEncode_Deterministic(t *testing.T) {
	a := met.New("").NewSearch()
	a.Set("q", "Daumier")
	a.Set("isOnView", "true")
	a.Set("title", "true")

	b := met.New("").NewSearch()
	b.Set("title", "true")
	b.Set("isOnView", "true")
	b.Set("q", "Daumier")

	if a.Encode() != b.Encode() {
		t.Errorf("encoding depends on insertion order:\n%s\n%s", a.Encode(), b.Encode())
	}
	want := "hasImages=true&isOnView=true&q=Daumier&title=true"
	if got := a.Encode(); got != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}
}

func TestNewSearchWith_Options(t *testing.T) {
	r := met.New("").NewSearchWith(met.SearchOptions{
		Query:          "sunflowers",
		TitleSearch:    true,
		OnView:         true,
		DepartmentID:   11,
		Classification: "Paintings",
		GeoLocation:    "France",
		DateBegin:      -2000,
		DateEnd:        2021,
		HasDateRange:   true,
	})
	cases := map[string]string{
		"q":              "sunflowers",
		"title":          "true",
		"isOnView":       "true",
		"isHighlight":    "false",
		"departmentId":   "11",
		"classification": "Paintings",
		"geoLocation":    "France",
		"dateBegin":      "-2000",
		"dateEnd":        "2021",
		"hasImages":      "true",
	}
	for name, want := range cases {
		if got, ok := r.Get(name); !ok || got != want {
			t.Errorf("parameter %q = %q (set=%v), want %q", name, got, ok, want)
		}
	}
	if _, ok := r.Get("artistOrCulture"); ok {
		t.Error("artistOrCulture should be absent unless requested")
	}
}

func TestDepartments_Enumeration(t *testing.T) {
	id, ok := met.DepartmentID("European Paintings")
	if !ok || id != 11 {
		t.Errorf("DepartmentID(European Paintings) = %d, %v; want 11, true", id, ok)
	}
	if _, ok := met.DepartmentID("Nope"); ok {
		t.Error("unknown department should not resolve")
	}
	if len(met.Departments()) == 0 {
		t.Error("built-in department table is empty")
	}
}

func TestGeoLocations_Enumeration(t *testing.T) {
	locations := met.GeoLocations()
	if len(locations) == 0 {
		t.Fatal("built-in geographic location table is empty")
	}
	if !sort.StringsAreSorted(locations) {
		t.Errorf("GeoLocations() not sorted: %v", locations)
	}
	found := false
	for _, l := range locations {
		if l == "France" {
			found = true
		}
	}
	if !found {
		t.Errorf("GeoLocations() = %v, missing France", locations)
	}
}
