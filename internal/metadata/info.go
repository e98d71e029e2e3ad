package metadata

// TrackInfo describes a canonical track from a metadata source.
type TrackInfo struct {
	Title  string
	Artist string

	// TrackID is the source's identifier for the recording.
	TrackID string

	// Index is the track's position within the whole release, MediumIndex
	// its position within its medium, and Medium the disc number. Zero
	// means unknown.
	Index       int
	MediumIndex int
	Medium      int

	// Length is the duration in seconds; zero when the source does not
	// report one.
	Length float64
}

// AlbumInfo describes a canonical release from a metadata source.
type AlbumInfo struct {
	Artist string
	Album  string

	// VA marks the release as a various-artists compilation.
	VA bool

	Tracks []*TrackInfo

	AlbumID string

	Year         int
	OriginalYear int
	Label        string
	Barcode      string
	CatalogNum   string
	Country      string
	Media        string
	Mediums      int

	AlbumDisambig string
}
