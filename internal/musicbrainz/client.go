package musicbrainz

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"cadenza/internal/config"
	"cadenza/internal/logging"
)

// Client talks to the MusicBrainz web service. It is safe for concurrent
// use; the shared rate limiter serializes requests to stay within the
// service guideline.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	limiter   *rate.Limiter
	logger    *slog.Logger
}

// New builds a Client from configuration.
func New(cfg *config.Config, logger *slog.Logger) *Client {
	mb := cfg.MusicBrainz
	return &Client{
		baseURL:   mb.BaseURL,
		userAgent: mb.UserAgent,
		http: &http.Client{
			Timeout: time.Duration(mb.TimeoutSeconds) * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(mb.RateLimit), 1),
		logger:  logging.NewComponentLogger(logger, "musicbrainz"),
	}
}

// errNotFound distinguishes a 404 from a transport failure so lookups can
// report "no such record" without an error.
var errNotFound = fmt.Errorf("musicbrainz: not found")

// get performs one rate-limited request and decodes the JSON response into
// out. Responses other than 200 and 404 are failures.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	params.Set("fmt", "json")
	endpoint := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("musicbrainz request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		io.Copy(io.Discard, resp.Body)
		return errNotFound
	default:
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("musicbrainz %s: unexpected status %s", path, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// luceneEscape quotes a value for embedding in a MusicBrainz Lucene query.
func luceneEscape(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, `"`, `\"`)
	return value
}

// queryTerm renders one field:"value" search term.
func queryTerm(field, value string) string {
	return field + `:"` + luceneEscape(value) + `"`
}
