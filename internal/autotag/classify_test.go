package autotag

import (
	"testing"

	"cadenza/internal/metadata"
)

func matchWithScore(id string, score float64) Match {
	dist := NewDistance(nil)
	dist.Add("album", score)
	return &AlbumMatch{Dist: dist, Info: &metadata.AlbumInfo{AlbumID: id}}
}

func TestRecommendThresholds(t *testing.T) {
	settings := DefaultSettings()
	settings.StrongRecThresh = 0.04
	settings.MediumRecThresh = 0.25
	settings.RecGapThresh = 0.4
	m := newTestMatcher(t, settings)

	cases := []struct {
		name   string
		scores []float64
		want   Recommendation
	}{
		{"no candidates", nil, RecNone},
		{"below strong threshold", []float64{0.03, 0.5}, RecStrong},
		{"between thresholds", []float64{0.05, 0.5}, RecMedium},
		{"at medium threshold", []float64{0.25, 0.9}, RecMedium},
		{"single weak candidate", []float64{0.5}, RecLow},
		{"large gap to runner-up", []float64{0.30, 0.90}, RecLow},
		{"crowded weak field", []float64{0.30, 0.35}, RecNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var results []Match
			for i, score := range tc.scores {
				results = append(results, matchWithScore(string(rune('a'+i)), score))
			}
			if got := m.Recommend(results); got != tc.want {
				t.Errorf("Recommend(%v) = %v, want %v", tc.scores, got, tc.want)
			}
		})
	}
}

func TestRecommendCeilingDowngrade(t *testing.T) {
	settings := DefaultSettings()
	settings.MaxRec = map[string]Recommendation{"year": RecMedium}
	m := newTestMatcher(t, settings)

	dist := NewDistance(DefaultWeights())
	dist.Add("year", 0.02) // keeps the score under the strong threshold
	best := &AlbumMatch{Dist: dist, Info: &metadata.AlbumInfo{AlbumID: "a"}}

	if got := m.Recommend([]Match{best}); got != RecMedium {
		t.Errorf("Recommend = %v, want the configured ceiling", got)
	}
}

func TestRecommendCeilingNeverUpgrades(t *testing.T) {
	settings := DefaultSettings()
	settings.MaxRec = map[string]Recommendation{"album": RecStrong}
	m := newTestMatcher(t, settings)

	// Single candidate above the medium threshold lands at low; the strong
	// ceiling on its penalty must not lift it.
	if got := m.Recommend([]Match{matchWithScore("a", 0.5)}); got != RecLow {
		t.Errorf("Recommend = %v, want low", got)
	}
}

func TestRecommendCeilingFromTrackPenalty(t *testing.T) {
	settings := DefaultSettings()
	settings.MaxRec = map[string]Recommendation{"track_length": RecLow}
	m := newTestMatcher(t, settings)

	trackDist := NewDistance(DefaultWeights())
	trackDist.Add("track_length", 0.2)

	dist := NewDistance(DefaultWeights())
	dist.Add("tracks", 0.01)
	dist.Tracks = map[*metadata.TrackInfo]*Distance{
		{Title: "Song"}: trackDist,
	}

	best := &AlbumMatch{Dist: dist, Info: &metadata.AlbumInfo{AlbumID: "a"}}
	if got := m.Recommend([]Match{best}); got != RecLow {
		t.Errorf("Recommend = %v, want per-track ceiling applied", got)
	}
}

func TestRecommendCeilingAppliesToTrackMatches(t *testing.T) {
	settings := DefaultSettings()
	settings.MaxRec = map[string]Recommendation{"track_length": RecLow}
	m := newTestMatcher(t, settings)

	// A track match carries its penalty on the top-level distance, so the
	// ceiling still applies there.
	dist := NewDistance(DefaultWeights())
	dist.Add("track_length", 0.01)
	match := &TrackMatch{Dist: dist, Info: &metadata.TrackInfo{TrackID: "r1"}}
	if got := m.Recommend([]Match{match}); got != RecLow {
		t.Errorf("Recommend = %v, want low", got)
	}
}

func TestRecommendationOrdering(t *testing.T) {
	if !(RecNone < RecLow && RecLow < RecMedium && RecMedium < RecStrong) {
		t.Error("recommendation levels are not ordered")
	}
}

func TestParseRecommendation(t *testing.T) {
	cases := []struct {
		in      string
		want    Recommendation
		wantErr bool
	}{
		{"none", RecNone, false},
		{"low", RecLow, false},
		{"medium", RecMedium, false},
		{"strong", RecStrong, false},
		{"bogus", RecNone, true},
	}
	for _, tc := range cases {
		got, err := ParseRecommendation(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseRecommendation(%q) error = %v", tc.in, err)
			continue
		}
		if !tc.wantErr && got != tc.want {
			t.Errorf("ParseRecommendation(%q) = %v, want %v", tc.in, got, tc.want)
		}
		if !tc.wantErr && got.String() != tc.in {
			t.Errorf("String() round-trip = %q, want %q", got.String(), tc.in)
		}
	}
}
