package favorites_test

import (
	"testing"

	"github.com/blackwell-systems/curatorctl/internal/artwork"
	"github.com/blackwell-systems/curatorctl/internal/favorites"
)

func newSet(t *testing.T) (*favorites.Store, *favorites.Set) {
	t.Helper()
	s := openStore(t)
	set, err := favorites.NewSet(s, "patron")
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	return s, set
}

func TestToggle_AddThenRemove(t *testing.T) {
	store, set := newSet(t)

	status, err := set.Toggle(laundress)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if status != favorites.Added {
		t.Errorf("first toggle = %v, want Added", status)
	}
	if !set.IsFavorite("436121") {
		t.Error("IsFavorite false after add")
	}
	if recs, _ := store.List("patron"); len(recs) != 1 {
		t.Errorf("store rows = %d after add, want 1", len(recs))
	}

	status, err = set.Toggle(laundress)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if status != favorites.Removed {
		t.Errorf("second toggle = %v, want Removed", status)
	}
	if set.IsFavorite("436121") {
		t.Error("IsFavorite true after remove")
	}
	if recs, _ := store.List("patron"); len(recs) != 0 {
		t.Errorf("store rows = %d after remove, want 0", len(recs))
	}
}

func TestIsFavorite_NormalizesIDs(t *testing.T) {
	// Search results carry numeric ids, the store carries strings. Both
	// spellings must resolve to the same membership answer.
	_, set := newSet(t)
	if _, err := set.Toggle(artwork.Record{ID: "00436121", Title: "x"}); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !set.IsFavorite("436121") {
		t.Error("IsFavorite(436121) false after adding 00436121")
	}
	if !set.IsFavorite(" 436121 ") {
		t.Error("IsFavorite should trim before comparing")
	}
}

func TestIsFavorite_NeverAdded(t *testing.T) {
	_, set := newSet(t)
	if set.IsFavorite("12345") {
		t.Error("IsFavorite true for id never added")
	}
}

func TestNewSet_LoadsExisting(t *testing.T) {
	store := openStore(t)
	_ = store.Put("patron", laundress)

	set, err := favorites.NewSet(store, "patron")
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	if !set.IsFavorite("436121") {
		t.Error("set should reflect pre-existing store rows")
	}
	if set.Len() != 1 {
		t.Errorf("Len = %d, want 1", set.Len())
	}
}

func TestReload_AfterImport(t *testing.T) {
	store, set := newSet(t)

	payload := []byte(`[{"objectId":"7","title":"t","artist":"","date":"","nationality":"","medium":"","imageUrl":""}]`)
	if _, err := store.Import("patron", payload); err != nil {
		t.Fatalf("Import: %v", err)
	}
	if set.IsFavorite("7") {
		t.Fatal("set should not see the import before Reload")
	}
	if err := set.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if !set.IsFavorite("7") {
		t.Error("set should see the import after Reload")
	}
}
