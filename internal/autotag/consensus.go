package autotag

import (
	"strconv"

	"cadenza/internal/metadata"
)

// Likelies holds the most common value of each release-level field across a
// set of items.
type Likelies struct {
	Artist        string
	Album         string
	AlbumArtist   string
	Year          int
	DiscTotal     int
	MBReleaseID   string
	Label         string
	Barcode       string
	CatalogNum    string
	Country       string
	Media         string
	AlbumDisambig string
}

// Consensus records, per field, whether every item agreed on the value.
type Consensus struct {
	Artist        bool
	Album         bool
	AlbumArtist   bool
	Year          bool
	DiscTotal     bool
	MBReleaseID   bool
	Label         bool
	Barcode       bool
	CatalogNum    bool
	Country       bool
	Media         bool
	AlbumDisambig bool
}

// plurality returns the most frequent value and its frequency. Ties go to
// the value encountered first.
func plurality[T comparable](values []T) (T, int) {
	counts := make(map[T]int, len(values))
	var best T
	bestCount := 0
	for _, v := range values {
		counts[v]++
		if counts[v] > bestCount {
			best = v
			bestCount = counts[v]
		}
	}
	return best, bestCount
}

func pluralityField[T comparable](items []*metadata.Item, get func(*metadata.Item) T) (T, bool) {
	values := make([]T, 0, len(items))
	for _, item := range items {
		values = append(values, get(item))
	}
	value, freq := plurality(values)
	return value, freq == len(values)
}

// CurrentMetadata extracts the likely release-level metadata for an album
// from its items. A unanimous non-empty album artist overrides the derived
// artist, since per-track artists vary on compilations.
//
// The item set must be non-empty; passing no items is a programming error
// and panics.
func CurrentMetadata(items []*metadata.Item) (Likelies, Consensus) {
	if len(items) == 0 {
		panic("autotag: CurrentMetadata requires at least one item")
	}

	var likelies Likelies
	var consensus Consensus

	likelies.Artist, consensus.Artist = pluralityField(items, func(i *metadata.Item) string { return i.Artist })
	likelies.Album, consensus.Album = pluralityField(items, func(i *metadata.Item) string { return i.Album })
	likelies.AlbumArtist, consensus.AlbumArtist = pluralityField(items, func(i *metadata.Item) string { return i.AlbumArtist })
	likelies.Year, consensus.Year = pluralityField(items, func(i *metadata.Item) int { return i.Year })
	likelies.DiscTotal, consensus.DiscTotal = pluralityField(items, func(i *metadata.Item) int { return i.DiscTotal })
	likelies.MBReleaseID, consensus.MBReleaseID = pluralityField(items, func(i *metadata.Item) string { return i.MBReleaseID })
	likelies.Label, consensus.Label = pluralityField(items, func(i *metadata.Item) string { return i.Label })
	likelies.Barcode, consensus.Barcode = pluralityField(items, func(i *metadata.Item) string { return i.Barcode })
	likelies.CatalogNum, consensus.CatalogNum = pluralityField(items, func(i *metadata.Item) string { return i.CatalogNum })
	likelies.Country, consensus.Country = pluralityField(items, func(i *metadata.Item) string { return i.Country })
	likelies.Media, consensus.Media = pluralityField(items, func(i *metadata.Item) string { return i.Media })
	likelies.AlbumDisambig, consensus.AlbumDisambig = pluralityField(items, func(i *metadata.Item) string { return i.AlbumDisambig })

	if consensus.AlbumArtist && likelies.AlbumArtist != "" {
		likelies.Artist = likelies.AlbumArtist
	}

	return likelies, consensus
}

// FieldTerms returns the requested fields as search-term strings, keyed by
// field name. Fields with empty values are omitted; unknown names are
// ignored.
func (l Likelies) FieldTerms(fields []string) map[string]string {
	terms := make(map[string]string, len(fields))
	for _, field := range fields {
		var value string
		switch field {
		case "year":
			if l.Year != 0 {
				value = strconv.Itoa(l.Year)
			}
		case "label":
			value = l.Label
		case "barcode":
			value = l.Barcode
		case "catalognum":
			value = l.CatalogNum
		case "country":
			value = l.Country
		case "media":
			value = l.Media
		case "albumdisambig":
			value = l.AlbumDisambig
		}
		if value != "" {
			terms[field] = value
		}
	}
	return terms
}
