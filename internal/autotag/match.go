package autotag

import (
	"context"
	"fmt"

	"cadenza/internal/logging"
	"cadenza/internal/metadata"
)

// Source supplies canonical metadata from a catalog backend. Lookup methods
// return their zero result (nil or an empty slice) when the catalog simply
// has no answer; errors are reserved for backend failures, which the engine
// surfaces to the caller instead of treating as "no candidates".
type Source interface {
	// AlbumForID resolves a single release identifier. Returns (nil, nil)
	// when the ID is unknown to the catalog.
	AlbumForID(ctx context.Context, id string) (*metadata.AlbumInfo, error)

	// AlbumsForID resolves an identifier that may fan out to several
	// releases (for example a release-group ID).
	AlbumsForID(ctx context.Context, id string) ([]*metadata.AlbumInfo, error)

	// TracksForID resolves a recording identifier to its appearances.
	TracksForID(ctx context.Context, id string) ([]*metadata.TrackInfo, error)

	// AlbumCandidates searches for releases matching the items' metadata.
	AlbumCandidates(ctx context.Context, items []*metadata.Item, artist, album string, vaLikely bool, extra map[string]string) ([]*metadata.AlbumInfo, error)

	// ItemCandidates searches for tracks matching a single item.
	ItemCandidates(ctx context.Context, item *metadata.Item, artist, title string) ([]*metadata.TrackInfo, error)
}

// Plugin contributes additional distance components under its own category
// keys. Errors abort the reconciliation call.
type Plugin interface {
	TrackDistance(item *metadata.Item, track *metadata.TrackInfo) (*Distance, error)
	AlbumDistance(items []*metadata.Item, info *metadata.AlbumInfo, mapping map[*metadata.Item]*metadata.TrackInfo) (*Distance, error)
}

// AlbumQuery overrides the search terms derived from the items. When IDs is
// set, only those identifiers are looked up and no text search runs.
type AlbumQuery struct {
	Artist string
	Album  string
	IDs    []string
}

// TrackQuery overrides the search terms for a single-item reconciliation.
type TrackQuery struct {
	Artist string
	Title  string
	IDs    []string
}

// TagAlbum reconciles an album's items against the catalog. It returns the
// consensus artist and album names alongside a Proposal of ranked
// AlbumMatch candidates.
//
// Identifier-based lookup runs first: explicit query IDs replace all
// searching, while IDs carried in the items' own tags are used only when
// every tagged item agrees. A confident ID match returns immediately unless
// Timid is set.
func (m *Matcher) TagAlbum(ctx context.Context, items []*metadata.Item, query AlbumQuery) (string, string, *Proposal, error) {
	likelies, consensus := CurrentMetadata(items)
	curArtist, curAlbum := likelies.Artist, likelies.Album
	m.logger.Debug("tagging album",
		logging.String("artist", curArtist),
		logging.String("album", curAlbum))

	set := newCandidateSet()

	if len(query.IDs) > 0 {
		for _, id := range query.IDs {
			m.logger.Debug("searching for album ID", logging.String("album_id", id))
			infos, err := m.source.AlbumsForID(ctx, id)
			if err != nil {
				return "", "", nil, fmt.Errorf("album lookup %q: %w", id, err)
			}
			for _, info := range infos {
				if err := m.addCandidate(items, set, info); err != nil {
					return "", "", nil, err
				}
			}
		}
	} else {
		info, err := m.matchByID(ctx, items)
		if err != nil {
			return "", "", nil, fmt.Errorf("album ID lookup: %w", err)
		}
		if info != nil {
			if err := m.addCandidate(items, set, info); err != nil {
				return "", "", nil, err
			}
			sorted := set.sorted()
			rec := m.Recommend(sorted)
			m.logger.Debug("album ID match recommendation",
				logging.String("recommendation", rec.String()))
			// A very good ID match wins outright; otherwise it competes
			// against the metadata-based candidates below.
			if len(sorted) > 0 && !m.settings.Timid && rec == RecStrong {
				return curArtist, curAlbum, &Proposal{Candidates: sorted, Recommendation: rec}, nil
			}
		}

		searchArtist, searchAlbum := query.Artist, query.Album
		if searchArtist == "" || searchAlbum == "" {
			searchArtist, searchAlbum = curArtist, curAlbum
		}
		m.logger.Debug("search terms",
			logging.String("artist", searchArtist),
			logging.String("album", searchAlbum))

		var extra map[string]string
		if len(m.settings.ExtraTags) > 0 {
			extra = likelies.FieldTerms(m.settings.ExtraTags)
		}

		vaLikely := !consensus.Artist || isVAArtist(searchArtist) || anyComp(items)
		m.logger.Debug("album might be VA", logging.Bool("va_likely", vaLikely))

		infos, err := m.source.AlbumCandidates(ctx, items, searchArtist, searchAlbum, vaLikely, extra)
		if err != nil {
			return "", "", nil, fmt.Errorf("album search: %w", err)
		}
		for _, info := range infos {
			if err := m.addCandidate(items, set, info); err != nil {
				return "", "", nil, err
			}
		}
	}

	sorted := set.sorted()
	rec := m.Recommend(sorted)
	m.logger.Debug("evaluated candidates",
		logging.Int("count", len(sorted)),
		logging.String("recommendation", rec.String()))
	return curArtist, curAlbum, &Proposal{Candidates: sorted, Recommendation: rec}, nil
}

// TagItem reconciles a single item against the catalog and returns a
// Proposal of ranked TrackMatch candidates.
func (m *Matcher) TagItem(ctx context.Context, item *metadata.Item, query TrackQuery) (*Proposal, error) {
	set := newCandidateSet()

	trackIDs := query.IDs
	if len(trackIDs) == 0 && item.MBTrackID != "" {
		trackIDs = []string{item.MBTrackID}
	}
	for _, id := range trackIDs {
		m.logger.Debug("searching for track ID", logging.String("track_id", id))
		tracks, err := m.source.TracksForID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("track lookup %q: %w", id, err)
		}
		for _, track := range tracks {
			dist, err := m.TrackDistance(item, track, true)
			if err != nil {
				return nil, err
			}
			set.add(&TrackMatch{Dist: dist, Info: track})

			// A good enough ID match ends the search early.
			sorted := set.sorted()
			if rec := m.Recommend(sorted); rec == RecStrong && !m.settings.Timid {
				m.logger.Debug("track ID match")
				return &Proposal{Candidates: sorted, Recommendation: rec}, nil
			}
		}
	}

	// Explicit ID queries never fall back to text search.
	if len(query.IDs) > 0 {
		sorted := set.sorted()
		return &Proposal{Candidates: sorted, Recommendation: m.Recommend(sorted)}, nil
	}

	searchArtist, searchTitle := query.Artist, query.Title
	if searchArtist == "" || searchTitle == "" {
		searchArtist, searchTitle = item.Artist, item.Title
	}
	m.logger.Debug("item search terms",
		logging.String("artist", searchArtist),
		logging.String("title", searchTitle))

	tracks, err := m.source.ItemCandidates(ctx, item, searchArtist, searchTitle)
	if err != nil {
		return nil, fmt.Errorf("track search: %w", err)
	}
	for _, track := range tracks {
		dist, err := m.TrackDistance(item, track, true)
		if err != nil {
			return nil, err
		}
		set.add(&TrackMatch{Dist: dist, Info: track})
	}

	sorted := set.sorted()
	rec := m.Recommend(sorted)
	m.logger.Debug("evaluated track candidates",
		logging.Int("count", len(sorted)),
		logging.String("recommendation", rec.String()))
	return &Proposal{Candidates: sorted, Recommendation: rec}, nil
}

// matchByID looks up the release identifier the items agree on. Items
// without an identifier are ignored; any disagreement among tagged items
// aborts the lookup.
func (m *Matcher) matchByID(ctx context.Context, items []*metadata.Item) (*metadata.AlbumInfo, error) {
	first := ""
	for _, item := range items {
		id := item.MBReleaseID
		if id == "" {
			continue
		}
		if first == "" {
			first = id
			continue
		}
		if id != first {
			m.logger.Debug("no album ID consensus")
			return nil, nil
		}
	}
	if first == "" {
		m.logger.Debug("no album ID found")
		return nil, nil
	}
	m.logger.Debug("searching for discovered album ID", logging.String("album_id", first))
	return m.source.AlbumForID(ctx, first)
}

func anyComp(items []*metadata.Item) bool {
	for _, item := range items {
		if item.Comp {
			return true
		}
	}
	return false
}
