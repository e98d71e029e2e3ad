package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTrackFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tracks.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write track file: %v", err)
	}
	return path
}

func TestReadTrackFile(t *testing.T) {
	path := writeTrackFile(t, `
[[tracks]]
title = "Come Together"
artist = "The Beatles"
album = "Abbey Road"
album_artist = "The Beatles"
track = 1
disc = 1
length = 259.0
mb_track_id = "r1"
year = 1969

[[tracks]]
title = "Something"
artist = "The Beatles"
album = "Abbey Road"
track = 2
disc = 1
`)

	items, err := readTrackFile(path)
	if err != nil {
		t.Fatalf("readTrackFile: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	first := items[0]
	if first.Title != "Come Together" || first.Length != 259 || first.MBTrackID != "r1" {
		t.Errorf("first item = %+v", first)
	}
	if first.Year != 1969 || first.AlbumArtist != "The Beatles" {
		t.Errorf("first item = %+v", first)
	}
}

func TestReadTrackFileRejectsEmpty(t *testing.T) {
	path := writeTrackFile(t, "")
	if _, err := readTrackFile(path); err == nil {
		t.Error("expected error for a file without tracks")
	}
}

func TestReadTrackFileRejectsUntitled(t *testing.T) {
	path := writeTrackFile(t, `
[[tracks]]
artist = "Nobody"
`)
	if _, err := readTrackFile(path); err == nil {
		t.Error("expected error for a track without a title")
	}
}

func TestFormatLength(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{259, "4:19"},
		{60, "1:00"},
		{59.6, "1:00"},
		{5, "0:05"},
	}
	for _, tc := range cases {
		if got := formatLength(tc.seconds); got != tc.want {
			t.Errorf("formatLength(%v) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}
