// Command cadenza reconciles local music metadata against the MusicBrainz
// catalog. It proposes ranked candidate releases and tracks with a
// confidence level; it never writes to media files.
package main
