package library

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"cadenza/internal/metadata"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "library.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func abbeyRoadItems() []*metadata.Item {
	return []*metadata.Item{
		{
			Title: "Come Together", Artist: "The Beatles", Album: "Abbey Road",
			AlbumArtist: "The Beatles", Track: 1, Disc: 1, Length: 259,
			MBTrackID: "r1", MBReleaseID: "rel-1", Year: 1969,
		},
		{
			Title: "Something", Artist: "The Beatles", Album: "Abbey Road",
			AlbumArtist: "The Beatles", Track: 2, Disc: 1, Length: 182,
			MBTrackID: "r2", MBReleaseID: "rel-1", Year: 1969,
		},
	}
}

func TestSaveAndQueryItems(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.SaveItems(ctx, abbeyRoadItems()); err != nil {
		t.Fatalf("SaveItems: %v", err)
	}

	items, err := store.ItemsByAlbum(ctx, "The Beatles", "Abbey Road")
	if err != nil {
		t.Fatalf("ItemsByAlbum: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	if items[0].Title != "Come Together" || items[1].Title != "Something" {
		t.Errorf("order = %q, %q", items[0].Title, items[1].Title)
	}
	if items[0].MBTrackID != "r1" || items[0].Length != 259 || items[0].Year != 1969 {
		t.Errorf("item round-trip = %+v", items[0])
	}
}

func TestItemsByReleaseID(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.SaveItems(ctx, abbeyRoadItems()); err != nil {
		t.Fatalf("SaveItems: %v", err)
	}

	items, err := store.ItemsByReleaseID(ctx, "rel-1")
	if err != nil {
		t.Fatalf("ItemsByReleaseID: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("items = %d, want 2", len(items))
	}

	none, err := store.ItemsByReleaseID(ctx, "rel-unknown")
	if err != nil {
		t.Fatalf("ItemsByReleaseID: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("unknown release returned %d items", len(none))
	}
}

func TestReplaceAlbum(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.SaveItems(ctx, abbeyRoadItems()); err != nil {
		t.Fatalf("SaveItems: %v", err)
	}

	retagged := abbeyRoadItems()
	for _, item := range retagged {
		item.MBReleaseID = "rel-2"
		item.Year = 1987
	}
	retagged = retagged[:1]

	if err := store.ReplaceAlbum(ctx, "The Beatles", "Abbey Road", retagged); err != nil {
		t.Fatalf("ReplaceAlbum: %v", err)
	}

	items, err := store.ItemsByAlbum(ctx, "The Beatles", "Abbey Road")
	if err != nil {
		t.Fatalf("ItemsByAlbum: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %d, want the replacement only", len(items))
	}
	if items[0].MBReleaseID != "rel-2" || items[0].Year != 1987 {
		t.Errorf("replacement = %+v", items[0])
	}
}

func TestAlbums(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	items := abbeyRoadItems()
	items = append(items, &metadata.Item{
		Title: "Windowlicker", Artist: "Aphex Twin", Album: "Windowlicker",
		AlbumArtist: "Aphex Twin", Track: 1, Year: 1999,
	})
	if err := store.SaveItems(ctx, items); err != nil {
		t.Fatalf("SaveItems: %v", err)
	}

	albums, err := store.Albums(ctx)
	if err != nil {
		t.Fatalf("Albums: %v", err)
	}
	if len(albums) != 2 {
		t.Fatalf("albums = %d, want 2", len(albums))
	}
	if albums[0].AlbumArtist != "Aphex Twin" || albums[1].Album != "Abbey Road" {
		t.Errorf("order = %+v", albums)
	}
	if albums[1].Items != 2 || albums[1].Year != 1969 {
		t.Errorf("summary = %+v", albums[1])
	}
}

func TestSaveItemsEmptyNoop(t *testing.T) {
	store := openTestStore(t)
	if err := store.SaveItems(context.Background(), nil); err != nil {
		t.Fatalf("SaveItems(nil): %v", err)
	}
}

func TestOpenRefusesSecondProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.db")
	first, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer first.Close()

	if _, err := Open(path); !errors.Is(err, ErrLocked) {
		t.Errorf("second Open error = %v, want ErrLocked", err)
	}
}

func TestReopenAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.SaveItems(context.Background(), abbeyRoadItems()); err != nil {
		t.Fatalf("SaveItems: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	store, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer store.Close()

	items, err := store.ItemsByAlbum(context.Background(), "The Beatles", "Abbey Road")
	if err != nil {
		t.Fatalf("ItemsByAlbum: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("items after reopen = %d, want 2", len(items))
	}
}
