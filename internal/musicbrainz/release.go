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

// releaseIncludes pulls everything the matcher scores in one request.
const releaseIncludes = "recordings+artist-credits+labels+release-groups+media"

// searchLimit bounds how many search hits are hydrated into full releases.
// Each hydration is another rate-limited request.
const searchLimit = 5

type artistCredit struct {
	Name       string `json:"name"`
	JoinPhrase string `json:"joinphrase"`
}

type releaseJSON struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Date           string         `json:"date"`
	Country        string         `json:"country"`
	Barcode        string         `json:"barcode"`
	Disambiguation string         `json:"disambiguation"`
	ArtistCredit   []artistCredit `json:"artist-credit"`
	ReleaseGroup   struct {
		FirstReleaseDate string `json:"first-release-date"`
	} `json:"release-group"`
	LabelInfo []struct {
		CatalogNumber string `json:"catalog-number"`
		Label         struct {
			Name string `json:"name"`
		} `json:"label"`
	} `json:"label-info"`
	Media []struct {
		Position int    `json:"position"`
		Format   string `json:"format"`
		Tracks   []struct {
			ID           string         `json:"id"`
			Title        string         `json:"title"`
			Position     int            `json:"position"`
			Length       float64        `json:"length"`
			ArtistCredit []artistCredit `json:"artist-credit"`
			Recording    struct {
				ID     string  `json:"id"`
				Title  string  `json:"title"`
				Length float64 `json:"length"`
			} `json:"recording"`
		} `json:"tracks"`
	} `json:"media"`
}

type releaseSearchJSON struct {
	Releases []struct {
		ID string `json:"id"`
	} `json:"releases"`
}

func joinArtistCredit(credit []artistCredit) string {
	var b strings.Builder
	for _, part := range credit {
		b.WriteString(part.Name)
		b.WriteString(part.JoinPhrase)
	}
	return b.String()
}

func yearOf(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

// albumInfo converts a release document into the matcher's canonical form.
func (r *releaseJSON) albumInfo() *metadata.AlbumInfo {
	artist := joinArtistCredit(r.ArtistCredit)
	info := &metadata.AlbumInfo{
		Artist:        artist,
		Album:         r.Title,
		VA:            strings.EqualFold(artist, "various artists"),
		AlbumID:       r.ID,
		Year:          yearOf(r.Date),
		OriginalYear:  yearOf(r.ReleaseGroup.FirstReleaseDate),
		Country:       r.Country,
		Barcode:       r.Barcode,
		AlbumDisambig: r.Disambiguation,
		Mediums:       len(r.Media),
	}
	if len(r.LabelInfo) > 0 {
		info.Label = r.LabelInfo[0].Label.Name
		info.CatalogNum = r.LabelInfo[0].CatalogNumber
	}

	index := 0
	var formats []string
	for _, medium := range r.Media {
		if medium.Format != "" {
			formats = append(formats, medium.Format)
		}
		for _, track := range medium.Tracks {
			index++
			trackID := track.Recording.ID
			if trackID == "" {
				trackID = track.ID
			}
			title := track.Title
			if title == "" {
				title = track.Recording.Title
			}
			length := track.Length
			if length == 0 {
				length = track.Recording.Length
			}
			info.Tracks = append(info.Tracks, &metadata.TrackInfo{
				Title:       title,
				Artist:      joinArtistCredit(track.ArtistCredit),
				TrackID:     trackID,
				Index:       index,
				MediumIndex: track.Position,
				Medium:      medium.Position,
				Length:      length / 1000.0,
			})
		}
	}
	if len(formats) > 0 {
		info.Media = formats[0]
	}
	return info
}

// AlbumForID fetches one release by MBID. Identifiers that are not valid
// UUIDs and identifiers the catalog does not know both yield (nil, nil).
func (c *Client) AlbumForID(ctx context.Context, id string) (*metadata.AlbumInfo, error) {
	if _, err := uuid.Parse(id); err != nil {
		c.logger.Debug("skipping invalid release ID", logging.String("release_id", id))
		return nil, nil
	}

	params := url.Values{}
	params.Set("inc", releaseIncludes)

	var release releaseJSON
	err := c.get(ctx, "/release/"+id, params, &release)
	if errors.Is(err, errNotFound) {
		c.logger.Debug("release not found", logging.String("release_id", id))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return release.albumInfo(), nil
}

// AlbumsForID resolves one identifier to candidate releases.
func (c *Client) AlbumsForID(ctx context.Context, id string) ([]*metadata.AlbumInfo, error) {
	info, err := c.AlbumForID(ctx, id)
	if err != nil || info == nil {
		return nil, err
	}
	return []*metadata.AlbumInfo{info}, nil
}

// extraTagFields maps consensus field names onto release search fields.
var extraTagFields = map[string]string{
	"year":          "date",
	"label":         "label",
	"barcode":       "barcode",
	"catalognum":    "catno",
	"country":       "country",
	"media":         "format",
	"albumdisambig": "comment",
}

// AlbumCandidates searches for releases matching the album metadata and
// hydrates each hit into a full release.
func (c *Client) AlbumCandidates(ctx context.Context, items []*metadata.Item, artist, album string, vaLikely bool, extra map[string]string) ([]*metadata.AlbumInfo, error) {
	terms := []string{
		queryTerm("release", textutil.StripBrackets(album)),
		"tracks:" + strconv.Itoa(len(items)),
	}
	if vaLikely {
		// The Various Artists entity.
		terms = append(terms, "arid:89ad4ac3-39f7-470e-963a-56509c546377")
	} else if artist != "" {
		terms = append(terms, queryTerm("artist", artist))
	}
	for field, value := range extra {
		if mapped, ok := extraTagFields[field]; ok {
			terms = append(terms, queryTerm(mapped, value))
		}
	}

	params := url.Values{}
	params.Set("query", strings.Join(terms, " AND "))
	params.Set("limit", strconv.Itoa(searchLimit))

	var result releaseSearchJSON
	if err := c.get(ctx, "/release", params, &result); err != nil {
		return nil, err
	}
	c.logger.Debug("release search",
		logging.String("album", album),
		logging.Int("hits", len(result.Releases)))

	infos := make([]*metadata.AlbumInfo, 0, len(result.Releases))
	for _, hit := range result.Releases {
		info, err := c.AlbumForID(ctx, hit.ID)
		if err != nil {
			return nil, err
		}
		if info != nil {
			infos = append(infos, info)
		}
	}
	return infos, nil
}
