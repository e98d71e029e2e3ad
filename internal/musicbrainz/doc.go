// Package musicbrainz implements the autotag.Source contract against the
// MusicBrainz web service.
//
// Lookups fetch full releases (recordings, artist credits, labels, release
// groups) so the matcher can score every field; searches use the service's
// Lucene query syntax and then hydrate each hit into a full release. All
// requests honor the service's rate-limit guideline and send the
// descriptive User-Agent MusicBrainz asks clients for.
package musicbrainz
