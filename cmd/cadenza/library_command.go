package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"cadenza/internal/metadata"
)

func newLibraryCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "library",
		Short: "Inspect and populate the item library",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newLibraryImportCommand(ctx))
	cmd.AddCommand(newLibraryListCommand(ctx))
	cmd.AddCommand(newLibraryShowCommand(ctx))
	return cmd
}

// trackFile is the on-disk import format: a TOML document with one
// [[tracks]] table per item.
type trackFile struct {
	Tracks []trackEntry `toml:"tracks"`
}

type trackEntry struct {
	Title         string  `toml:"title"`
	Artist        string  `toml:"artist"`
	Album         string  `toml:"album"`
	AlbumArtist   string  `toml:"album_artist"`
	Track         int     `toml:"track"`
	Disc          int     `toml:"disc"`
	DiscTotal     int     `toml:"disc_total"`
	Length        float64 `toml:"length"`
	MBTrackID     string  `toml:"mb_track_id"`
	MBReleaseID   string  `toml:"mb_release_id"`
	Label         string  `toml:"label"`
	Barcode       string  `toml:"barcode"`
	CatalogNum    string  `toml:"catalog_num"`
	Country       string  `toml:"country"`
	Media         string  `toml:"media"`
	Year          int     `toml:"year"`
	AlbumDisambig string  `toml:"album_disambig"`
	Comp          bool    `toml:"comp"`
}

func (e trackEntry) item() *metadata.Item {
	return &metadata.Item{
		Title:         e.Title,
		Artist:        e.Artist,
		Album:         e.Album,
		AlbumArtist:   e.AlbumArtist,
		Track:         e.Track,
		Disc:          e.Disc,
		DiscTotal:     e.DiscTotal,
		Length:        e.Length,
		MBTrackID:     e.MBTrackID,
		MBReleaseID:   e.MBReleaseID,
		Label:         e.Label,
		Barcode:       e.Barcode,
		CatalogNum:    e.CatalogNum,
		Country:       e.Country,
		Media:         e.Media,
		Year:          e.Year,
		AlbumDisambig: e.AlbumDisambig,
		Comp:          e.Comp,
	}
}

func readTrackFile(path string) ([]*metadata.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read track file: %w", err)
	}
	var file trackFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse track file: %w", err)
	}
	if len(file.Tracks) == 0 {
		return nil, fmt.Errorf("track file %s lists no tracks", path)
	}

	items := make([]*metadata.Item, 0, len(file.Tracks))
	for i, entry := range file.Tracks {
		if entry.Title == "" {
			return nil, fmt.Errorf("track %d has no title", i+1)
		}
		items = append(items, entry.item())
	}
	return items, nil
}

func newLibraryImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <tracks.toml>",
		Short: "Load items from a TOML track listing into the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := readTrackFile(args[0])
			if err != nil {
				return err
			}

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.SaveItems(cmd.Context(), items); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d items from %s\n", len(items), args[0])
			return nil
		},
	}
}

func newLibraryListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored albums",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			albums, err := store.Albums(cmd.Context())
			if err != nil {
				return err
			}
			if len(albums) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Library is empty.")
				return nil
			}

			rows := make([][]string, 0, len(albums))
			for _, a := range albums {
				year := ""
				if a.Year != 0 {
					year = strconv.Itoa(a.Year)
				}
				rows = append(rows, []string{a.AlbumArtist, a.Album, year, strconv.Itoa(a.Items)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Album Artist", "Album", "Year", "Tracks"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight},
			))
			return nil
		},
	}
}

func newLibraryShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <album-artist> <album>",
		Short: "Show an album's stored items",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			items, err := store.ItemsByAlbum(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if len(items) == 0 {
				return fmt.Errorf("no items stored for %q / %q", args[0], args[1])
			}

			rows := make([][]string, 0, len(items))
			for _, item := range items {
				length := ""
				if item.Length > 0 {
					length = formatLength(item.Length)
				}
				rows = append(rows, []string{
					strconv.Itoa(item.Disc),
					strconv.Itoa(item.Track),
					item.Title,
					item.Artist,
					length,
					item.MBTrackID,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Disc", "#", "Title", "Artist", "Length", "Recording ID"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}
}
