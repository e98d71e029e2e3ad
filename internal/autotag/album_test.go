package autotag

import (
	"testing"
	"time"

	"cadenza/internal/metadata"
)

func testRelease() *metadata.AlbumInfo {
	return &metadata.AlbumInfo{
		Artist:     "The Beatles",
		Album:      "Abbey Road",
		AlbumID:    "rel-1",
		Year:       1969,
		Label:      "Apple",
		CatalogNum: "PCS 7088",
		Country:    "GB",
		Media:      "Vinyl",
		Mediums:    1,
		Tracks: []*metadata.TrackInfo{
			{Title: "Come Together", Artist: "The Beatles", TrackID: "r1", Index: 1, MediumIndex: 1, Medium: 1, Length: 259},
			{Title: "Something", Artist: "The Beatles", TrackID: "r2", Index: 2, MediumIndex: 2, Medium: 1, Length: 182},
		},
	}
}

func itemsForRelease(info *metadata.AlbumInfo) []*metadata.Item {
	items := make([]*metadata.Item, 0, len(info.Tracks))
	for _, track := range info.Tracks {
		items = append(items, &metadata.Item{
			Title:       track.Title,
			Artist:      track.Artist,
			Album:       info.Album,
			Track:       track.MediumIndex,
			Disc:        track.Medium,
			DiscTotal:   info.Mediums,
			Length:      track.Length,
			MBTrackID:   track.TrackID,
			MBReleaseID: info.AlbumID,
			Label:       info.Label,
			CatalogNum:  info.CatalogNum,
			Country:     info.Country,
			Media:       info.Media,
			Year:        info.Year,
		})
	}
	return items
}

func albumDist(t *testing.T, m *Matcher, items []*metadata.Item, info *metadata.AlbumInfo) *Distance {
	t.Helper()
	assignment, err := m.AssignItems(items, info.Tracks)
	if err != nil {
		t.Fatalf("AssignItems: %v", err)
	}
	dist, err := m.AlbumDistance(items, info, assignment)
	if err != nil {
		t.Fatalf("AlbumDistance: %v", err)
	}
	return dist
}

func hasKey(dist *Distance, key string) bool {
	for _, k := range dist.Keys() {
		if k == key {
			return true
		}
	}
	return false
}

func TestAlbumDistancePerfectCopy(t *testing.T) {
	m := newTestMatcher(t, DefaultSettings())
	info := testRelease()
	dist := albumDist(t, m, itemsForRelease(info), info)
	if got := dist.Score(); got != 0 {
		t.Errorf("Score() = %v, want 0; penalties: %v", got, dist.Penalties())
	}
	if len(dist.Tracks) != len(info.Tracks) {
		t.Errorf("per-track distances = %d, want %d", len(dist.Tracks), len(info.Tracks))
	}
}

func TestAlbumDistanceVASkipsArtist(t *testing.T) {
	m := newTestMatcher(t, DefaultSettings())
	info := testRelease()
	info.VA = true
	info.Artist = "Various Artists"

	dist := albumDist(t, m, itemsForRelease(testRelease()), info)
	if _, ok := dist.penalties["artist"]; ok {
		t.Error("artist penalty recorded for a various-artists release")
	}
}

func TestAlbumDistanceMissingTracks(t *testing.T) {
	m := newTestMatcher(t, DefaultSettings())
	info := testRelease()
	items := itemsForRelease(info)[:1]

	dist := albumDist(t, m, items, info)
	if !hasKey(dist, "missing_tracks") {
		t.Errorf("missing_tracks absent; keys = %v", dist.Keys())
	}
	if got := len(dist.penalties["missing_tracks"]); got != 1 {
		t.Errorf("missing_tracks penalties = %d, want 1", got)
	}
}

func TestAlbumDistanceUnmatchedTracks(t *testing.T) {
	m := newTestMatcher(t, DefaultSettings())
	info := testRelease()
	items := itemsForRelease(info)
	items = append(items, &metadata.Item{Title: "Hidden Bonus", Album: info.Album, Artist: info.Artist})

	dist := albumDist(t, m, items, info)
	if !hasKey(dist, "unmatched_tracks") {
		t.Errorf("unmatched_tracks absent; keys = %v", dist.Keys())
	}
}

func TestAlbumDistanceYearMatchesOriginal(t *testing.T) {
	m := newTestMatcher(t, DefaultSettings())
	info := testRelease()
	info.Year = 1987
	info.OriginalYear = 1969
	items := itemsForRelease(testRelease()) // tagged with 1969

	dist := albumDist(t, m, items, info)
	if hasKey(dist, "year") {
		t.Errorf("year penalized although items match the original year; keys = %v", dist.Keys())
	}
}

func TestAlbumDistanceYearBetweenOriginalAndRelease(t *testing.T) {
	m := newTestMatcher(t, DefaultSettings())
	info := testRelease()
	info.Year = 1987
	info.OriginalYear = 1969
	items := itemsForRelease(testRelease())
	for _, item := range items {
		item.Year = 1980
	}

	dist := albumDist(t, m, items, info)
	want := 7.0 / float64(time.Now().Year()-1969)
	if got := dist.penalties["year"][0]; !almostEqual(got, want) {
		t.Errorf("year penalty = %v, want %v", got, want)
	}
}

func TestAlbumDistanceYearFullPenaltyWithoutOriginal(t *testing.T) {
	m := newTestMatcher(t, DefaultSettings())
	info := testRelease()
	info.Year = 1990
	items := itemsForRelease(testRelease()) // tagged with 1969

	dist := albumDist(t, m, items, info)
	if got := dist.penalties["year"][0]; got != 1 {
		t.Errorf("year penalty = %v, want 1", got)
	}
}

func TestAlbumDistancePreferOriginalYear(t *testing.T) {
	settings := DefaultSettings()
	settings.PreferOriginalYear = true
	m := newTestMatcher(t, settings)

	info := testRelease()
	info.Year = 1987
	info.OriginalYear = 1969

	dist := albumDist(t, m, itemsForRelease(testRelease()), info)
	got := dist.penalties["year"][0]
	if got <= 0 || got >= 1 {
		t.Errorf("reissue penalty = %v, want a partial penalty", got)
	}

	// The original pressing itself costs nothing.
	original := testRelease()
	original.OriginalYear = 1969
	dist = albumDist(t, m, itemsForRelease(testRelease()), original)
	if got := dist.penalties["year"][0]; got != 0 {
		t.Errorf("original pressing penalty = %v, want 0", got)
	}
}

func TestAlbumDistancePreferredMediaRanking(t *testing.T) {
	settings := DefaultSettings()
	settings.PreferredMedia = []string{"CD", "Vinyl"}
	m := newTestMatcher(t, settings)

	items := itemsForRelease(testRelease())

	cd := testRelease()
	cd.Media = "CD"
	cassette := testRelease()
	cassette.Media = "Cassette"

	if got := albumDist(t, m, items, cd).penalties["media"][0]; got != 0 {
		t.Errorf("preferred media penalty = %v, want 0", got)
	}
	vinyl := albumDist(t, m, items, testRelease()).penalties["media"][0]
	if !almostEqual(vinyl, 0.5) {
		t.Errorf("second-choice media penalty = %v, want 0.5", vinyl)
	}
	if got := albumDist(t, m, items, cassette).penalties["media"][0]; got != 1 {
		t.Errorf("unlisted media penalty = %v, want 1", got)
	}
}

func TestAlbumDistanceMediaEqualityFallback(t *testing.T) {
	m := newTestMatcher(t, DefaultSettings())
	info := testRelease()
	info.Media = "CD" // items say Vinyl

	dist := albumDist(t, m, itemsForRelease(testRelease()), info)
	if got := dist.penalties["media"][0]; got != 1 {
		t.Errorf("media mismatch penalty = %v, want 1", got)
	}
}

func TestAlbumDistancePreferredCountriesRanking(t *testing.T) {
	settings := DefaultSettings()
	settings.PreferredCountries = []string{"GB", "US"}
	m := newTestMatcher(t, settings)

	items := itemsForRelease(testRelease())
	us := testRelease()
	us.Country = "US"

	if got := albumDist(t, m, items, testRelease()).penalties["country"][0]; got != 0 {
		t.Errorf("first-choice country penalty = %v, want 0", got)
	}
	if got := albumDist(t, m, items, us).penalties["country"][0]; !almostEqual(got, 0.5) {
		t.Errorf("second-choice country penalty = %v, want 0.5", got)
	}
}

func TestAlbumDistanceMediumsCount(t *testing.T) {
	m := newTestMatcher(t, DefaultSettings())
	info := testRelease()
	info.Mediums = 3 // items say DiscTotal 1

	dist := albumDist(t, m, itemsForRelease(testRelease()), info)
	if got := len(dist.penalties["mediums"]); got != 2 {
		t.Errorf("mediums penalties = %d, want one per medium of difference", got)
	}
}

func TestAlbumDistanceAlbumIDMismatch(t *testing.T) {
	m := newTestMatcher(t, DefaultSettings())
	info := testRelease()
	info.AlbumID = "rel-other"

	dist := albumDist(t, m, itemsForRelease(testRelease()), info)
	if got := dist.penalties["album_id"][0]; got != 1 {
		t.Errorf("album_id penalty = %v, want 1", got)
	}
}
