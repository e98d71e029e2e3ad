package autotag

import (
	"fmt"
	"math"

	"cadenza/internal/metadata"
)

// trackIndexChanged reports whether the item's track number matches neither
// the canonical per-medium index nor the canonical release-wide index.
// Tolerating both numbering schemes avoids penalizing multi-disc rips.
func trackIndexChanged(item *metadata.Item, track *metadata.TrackInfo) bool {
	return item.Track != track.MediumIndex && item.Track != track.Index
}

// TrackDistance scores how significant a metadata change from item to the
// canonical track would be. inclArtist adds a track-artist component, used
// on various-artists releases where per-track artists are meaningful.
//
// Each factor is skipped entirely when its inputs are unknown; absence is
// never penalized.
func (m *Matcher) TrackDistance(item *metadata.Item, track *metadata.TrackInfo, inclArtist bool) (*Distance, error) {
	dist := NewDistance(m.settings.Weights)

	if track.Length > 0 {
		diff := math.Abs(item.Length-track.Length) - m.settings.TrackLengthGrace
		dist.AddRatio("track_length", diff, m.settings.TrackLengthMax)
	}

	dist.AddString("track_title", item.Title, track.Title)

	// Artist, unless the local value is a various-artists placeholder.
	if inclArtist && track.Artist != "" && !isVAArtist(item.Artist) {
		dist.AddString("track_artist", item.Artist, track.Artist)
	}

	if track.Index != 0 && item.Track != 0 {
		dist.AddExpr("track_index", trackIndexChanged(item, track))
	}

	if item.MBTrackID != "" {
		dist.AddExpr("track_id", item.MBTrackID != track.TrackID)
	}

	if track.Medium != 0 && item.Disc != 0 {
		dist.AddExpr("medium", item.Disc != track.Medium)
	}

	for _, plugin := range m.plugins {
		extra, err := plugin.TrackDistance(item, track)
		if err != nil {
			return nil, fmt.Errorf("plugin track distance: %w", err)
		}
		dist.Update(extra)
	}

	return dist, nil
}
