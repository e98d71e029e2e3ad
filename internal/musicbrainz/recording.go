package musicbrainz

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"cadenza/internal/logging"
	"cadenza/internal/metadata"
	"cadenza/internal/textutil"
)

// recordingSearchLimit bounds track search results; recording hits need no
// extra hydration, so the limit is more generous than for releases.
const recordingSearchLimit = 10

type recordingJSON struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Length       float64        `json:"length"`
	ArtistCredit []artistCredit `json:"artist-credit"`
}

type recordingSearchJSON struct {
	Recordings []recordingJSON `json:"recordings"`
}

func (r *recordingJSON) trackInfo() *metadata.TrackInfo {
	return &metadata.TrackInfo{
		Title:   r.Title,
		Artist:  joinArtistCredit(r.ArtistCredit),
		TrackID: r.ID,
		Length:  r.Length / 1000.0,
	}
}

// TracksForID fetches one recording by MBID. Invalid and unknown
// identifiers yield an empty result without error.
func (c *Client) TracksForID(ctx context.Context, id string) ([]*metadata.TrackInfo, error) {
	if _, err := uuid.Parse(id); err != nil {
		c.logger.Debug("skipping invalid recording ID", logging.String("track_id", id))
		return nil, nil
	}

	params := url.Values{}
	params.Set("inc", "artist-credits")

	var recording recordingJSON
	err := c.get(ctx, "/recording/"+id, params, &recording)
	if errors.Is(err, errNotFound) {
		c.logger.Debug("recording not found", logging.String("track_id", id))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []*metadata.TrackInfo{recording.trackInfo()}, nil
}

// ItemCandidates searches for recordings matching a single item.
func (c *Client) ItemCandidates(ctx context.Context, item *metadata.Item, artist, title string) ([]*metadata.TrackInfo, error) {
	terms := []string{queryTerm("recording", textutil.StripBrackets(title))}
	if artist != "" {
		terms = append(terms, queryTerm("artist", artist))
	}

	params := url.Values{}
	params.Set("query", strings.Join(terms, " AND "))
	params.Set("limit", strconv.Itoa(recordingSearchLimit))

	var result recordingSearchJSON
	if err := c.get(ctx, "/recording", params, &result); err != nil {
		return nil, err
	}
	c.logger.Debug("recording search",
		logging.String("title", title),
		logging.Int("hits", len(result.Recordings)))

	tracks := make([]*metadata.TrackInfo, 0, len(result.Recordings))
	for i := range result.Recordings {
		tracks = append(tracks, result.Recordings[i].trackInfo())
	}
	return tracks, nil
}
