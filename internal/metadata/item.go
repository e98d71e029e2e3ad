package metadata

// Item is one track as known locally. Zero values mean "unknown" for numeric
// fields and "absent" for strings.
type Item struct {
	Title       string
	Artist      string
	Album       string
	AlbumArtist string

	Track     int
	Disc      int
	DiscTotal int

	// Length is the track duration in seconds.
	Length float64

	// MusicBrainz identifiers carried in the file's tags, if any.
	MBTrackID   string
	MBReleaseID string

	Label         string
	Barcode       string
	CatalogNum    string
	Country       string
	Media         string
	Year          int
	AlbumDisambig string

	// Comp marks the item as part of a various-artists compilation.
	Comp bool
}
