// Package metadata defines the record types exchanged during reconciliation.
//
// Item is a track as it exists in the local library. TrackInfo and AlbumInfo
// describe canonical catalog records supplied by a metadata source such as
// MusicBrainz. The matching engine (internal/autotag) only reads these types;
// it never mutates an Item or writes anything back.
package metadata
