package autotag

import (
	"testing"

	"cadenza/internal/metadata"
)

func TestCurrentMetadataPlurality(t *testing.T) {
	items := []*metadata.Item{
		{Artist: "The Beatles", Album: "Abbey Road", Year: 1969},
		{Artist: "The Beatles", Album: "Abbey Road", Year: 1969},
		{Artist: "Beatles, The", Album: "Abbey Road", Year: 1969},
	}

	likelies, consensus := CurrentMetadata(items)
	if likelies.Artist != "The Beatles" {
		t.Errorf("Artist = %q, want plurality winner", likelies.Artist)
	}
	if consensus.Artist {
		t.Error("Artist consensus = true for a split field")
	}
	if likelies.Album != "Abbey Road" || !consensus.Album {
		t.Errorf("Album = %q (consensus %v), want unanimous Abbey Road", likelies.Album, consensus.Album)
	}
	if likelies.Year != 1969 || !consensus.Year {
		t.Errorf("Year = %d (consensus %v)", likelies.Year, consensus.Year)
	}
}

func TestCurrentMetadataPluralityTieKeepsFirst(t *testing.T) {
	items := []*metadata.Item{
		{Artist: "A"},
		{Artist: "B"},
	}
	likelies, _ := CurrentMetadata(items)
	if likelies.Artist != "A" {
		t.Errorf("Artist = %q, want first-seen value on tie", likelies.Artist)
	}
}

func TestCurrentMetadataAlbumArtistOverride(t *testing.T) {
	// Ten items with distinct track artists and a unanimous album artist.
	items := make([]*metadata.Item, 10)
	for i := range items {
		items[i] = &metadata.Item{
			Artist:      string(rune('A' + i)),
			AlbumArtist: "Various Artists",
		}
	}

	likelies, consensus := CurrentMetadata(items)
	if likelies.Artist != "Various Artists" {
		t.Errorf("Artist = %q, want the unanimous album artist", likelies.Artist)
	}
	if consensus.Artist {
		t.Error("Artist consensus should stay false; the override changes the likely value only")
	}
}

func TestCurrentMetadataNoOverrideWithoutConsensus(t *testing.T) {
	items := []*metadata.Item{
		{Artist: "Solo", AlbumArtist: "Various Artists"},
		{Artist: "Solo", AlbumArtist: ""},
	}
	likelies, _ := CurrentMetadata(items)
	if likelies.Artist != "Solo" {
		t.Errorf("Artist = %q, want the track artist when album artist is split", likelies.Artist)
	}
}

func TestCurrentMetadataEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for empty item set")
		}
	}()
	CurrentMetadata(nil)
}

func TestFieldTerms(t *testing.T) {
	likelies := Likelies{
		Year:       1994,
		Label:      "Warp",
		CatalogNum: "",
		Country:    "GB",
	}

	terms := likelies.FieldTerms([]string{"year", "label", "catalognum", "country", "bogus"})
	want := map[string]string{
		"year":    "1994",
		"label":   "Warp",
		"country": "GB",
	}
	if len(terms) != len(want) {
		t.Fatalf("terms = %v, want %v", terms, want)
	}
	for field, value := range want {
		if terms[field] != value {
			t.Errorf("terms[%q] = %q, want %q", field, terms[field], value)
		}
	}
}
