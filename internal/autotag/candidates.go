package autotag

import (
	"sort"

	"cadenza/internal/logging"
	"cadenza/internal/metadata"
)

// Match is a scored candidate: either a whole release (AlbumMatch) or a
// single track (TrackMatch).
type Match interface {
	// Distance is the accumulated dissimilarity against the local data.
	Distance() *Distance
	// ID is the candidate's catalog identifier, used for deduplication.
	ID() string
}

// AlbumMatch bundles a candidate release with its distance and the item to
// track pairing that produced it.
type AlbumMatch struct {
	Dist        *Distance
	Info        *metadata.AlbumInfo
	Mapping     map[*metadata.Item]*metadata.TrackInfo
	ExtraItems  []*metadata.Item
	ExtraTracks []*metadata.TrackInfo
}

func (m *AlbumMatch) Distance() *Distance { return m.Dist }

func (m *AlbumMatch) ID() string { return m.Info.AlbumID }

// TrackMatch bundles a candidate track with its distance.
type TrackMatch struct {
	Dist *Distance
	Info *metadata.TrackInfo
}

func (m *TrackMatch) Distance() *Distance { return m.Dist }

func (m *TrackMatch) ID() string { return m.Info.TrackID }

// candidateSet accumulates matches for one reconciliation call, keyed by
// candidate ID. It is never shared across calls.
type candidateSet struct {
	matches []Match
	seen    map[string]struct{}
}

func newCandidateSet() *candidateSet {
	return &candidateSet{seen: make(map[string]struct{})}
}

func (s *candidateSet) contains(id string) bool {
	if id == "" {
		return false
	}
	_, ok := s.seen[id]
	return ok
}

func (s *candidateSet) add(match Match) bool {
	id := match.ID()
	if s.contains(id) {
		return false
	}
	if id != "" {
		s.seen[id] = struct{}{}
	}
	s.matches = append(s.matches, match)
	return true
}

// sorted returns the matches ordered ascending by distance score. The sort
// is stable: ties keep accumulation order.
func (s *candidateSet) sorted() []Match {
	out := make([]Match, len(s.matches))
	copy(out, s.matches)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Distance().Score() < out[j].Distance().Score()
	})
	return out
}

// albumFieldPresent reports whether a release carries the named field.
// Unknown field names never disqualify a candidate.
func albumFieldPresent(info *metadata.AlbumInfo, field string) bool {
	switch field {
	case "year":
		return info.Year != 0
	case "originalyear":
		return info.OriginalYear != 0
	case "label":
		return info.Label != ""
	case "barcode":
		return info.Barcode != ""
	case "catalognum":
		return info.CatalogNum != ""
	case "country":
		return info.Country != ""
	case "media":
		return info.Media != ""
	case "albumdisambig":
		return info.AlbumDisambig != ""
	default:
		return true
	}
}

// addCandidate validates one candidate release and, if it survives the
// filters, scores it and stores the AlbumMatch. Rejections are diagnostic
// detail, not errors; only collaborator failures propagate.
func (m *Matcher) addCandidate(items []*metadata.Item, set *candidateSet, info *metadata.AlbumInfo) error {
	logger := m.logger.With(
		logging.String("artist", info.Artist),
		logging.String("album", info.Album),
		logging.String("album_id", info.AlbumID),
	)
	logger.Debug("evaluating candidate")

	if len(info.Tracks) == 0 {
		logger.Debug("candidate rejected: no tracks")
		return nil
	}

	if set.contains(info.AlbumID) {
		logger.Debug("candidate rejected: duplicate")
		return nil
	}

	for _, required := range m.settings.Required {
		if !albumFieldPresent(info, required) {
			logger.Debug("candidate rejected: missing required field",
				logging.String("field", required))
			return nil
		}
	}

	assignment, err := m.AssignItems(items, info.Tracks)
	if err != nil {
		return err
	}

	dist, err := m.AlbumDistance(items, info, assignment)
	if err != nil {
		return err
	}

	penalties := dist.Keys()
	for _, ignored := range m.settings.Ignored {
		for _, penalty := range penalties {
			if penalty == ignored {
				logger.Debug("candidate rejected: ignored penalty",
					logging.String("penalty", penalty))
				return nil
			}
		}
	}

	logger.Debug("candidate accepted", logging.Float64("distance", dist.Score()))
	set.add(&AlbumMatch{
		Dist:        dist,
		Info:        info,
		Mapping:     assignment.Mapping,
		ExtraItems:  assignment.ExtraItems,
		ExtraTracks: assignment.ExtraTracks,
	})
	return nil
}
