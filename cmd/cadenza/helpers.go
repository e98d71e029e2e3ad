package main

import (
	"cadenza/internal/metadata"
)

func itemFromArgs(artist, title string, ids []string) *metadata.Item {
	item := &metadata.Item{Artist: artist, Title: title}
	if len(ids) == 1 {
		item.MBTrackID = ids[0]
	}
	return item
}
