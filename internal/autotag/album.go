package autotag

import (
	"fmt"
	"time"

	"cadenza/internal/metadata"
)

// Assume the earliest first gramophone discs when a release's original year
// is unknown.
const earliestReleaseYear = 1889

func intAbs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// AlbumDistance scores how significant a release-level metadata change from
// items to the candidate release would be. The assignment decides which
// item is compared against which canonical track; per-track distances are
// retained on the returned Distance.
func (m *Matcher) AlbumDistance(items []*metadata.Item, info *metadata.AlbumInfo, assignment Assignment) (*Distance, error) {
	likelies, _ := CurrentMetadata(items)

	dist := NewDistance(m.settings.Weights)

	// Artist, unless the release is various-artists.
	if !info.VA {
		dist.AddString("artist", likelies.Artist, info.Artist)
	}

	dist.AddString("album", likelies.Album, info.Album)

	if info.Media != "" {
		if len(m.mediaPatterns) > 0 {
			dist.AddPriority("media", info.Media, m.mediaPatterns)
		} else if likelies.Media != "" {
			dist.AddEquality("media", info.Media, likelies.Media)
		}
	}

	if likelies.DiscTotal != 0 && info.Mediums != 0 {
		dist.AddNumber("mediums", likelies.DiscTotal, info.Mediums)
	}

	if info.Year != 0 && m.settings.PreferOriginalYear {
		original := info.OriginalYear
		if original == 0 {
			original = earliestReleaseYear
		}
		diff := intAbs(info.Year - original)
		diffMax := intAbs(time.Now().Year() - original)
		dist.AddRatio("year", float64(diff), float64(diffMax))
	} else if likelies.Year != 0 && info.Year != 0 {
		switch {
		case likelies.Year == info.Year,
			info.OriginalYear != 0 && likelies.Year == info.OriginalYear:
			// No penalty for matching the release or original year.
			dist.Add("year", 0.0)
		case info.OriginalYear != 0:
			// Prefer matches closest to the release year.
			diff := intAbs(likelies.Year - info.Year)
			diffMax := intAbs(time.Now().Year() - info.OriginalYear)
			dist.AddRatio("year", float64(diff), float64(diffMax))
		default:
			dist.Add("year", 1.0)
		}
	}

	if info.Country != "" && len(m.countryPatterns) > 0 {
		dist.AddPriority("country", info.Country, m.countryPatterns)
	} else if likelies.Country != "" && info.Country != "" {
		dist.AddString("country", likelies.Country, info.Country)
	}

	if likelies.Label != "" && info.Label != "" {
		dist.AddString("label", likelies.Label, info.Label)
	}

	if likelies.CatalogNum != "" && info.CatalogNum != "" {
		dist.AddString("catalognum", likelies.CatalogNum, info.CatalogNum)
	}

	if likelies.AlbumDisambig != "" && info.AlbumDisambig != "" {
		dist.AddString("albumdisambig", likelies.AlbumDisambig, info.AlbumDisambig)
	}

	if likelies.MBReleaseID != "" {
		dist.AddEquality("album_id", likelies.MBReleaseID, info.AlbumID)
	}

	// Per-track distances, folded into the release score.
	dist.Tracks = make(map[*metadata.TrackInfo]*Distance, len(assignment.Mapping))
	for item, track := range assignment.Mapping {
		trackDist, err := m.TrackDistance(item, track, info.VA)
		if err != nil {
			return nil, err
		}
		dist.Tracks[track] = trackDist
		dist.Add("tracks", trackDist.Score())
	}

	for i := len(assignment.Mapping); i < len(info.Tracks); i++ {
		dist.Add("missing_tracks", 1.0)
	}

	for i := len(assignment.Mapping); i < len(items); i++ {
		dist.Add("unmatched_tracks", 1.0)
	}

	for _, plugin := range m.plugins {
		extra, err := plugin.AlbumDistance(items, info, assignment.Mapping)
		if err != nil {
			return nil, fmt.Errorf("plugin album distance: %w", err)
		}
		dist.Update(extra)
	}

	return dist, nil
}
