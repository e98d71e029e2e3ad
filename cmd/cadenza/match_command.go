package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"cadenza/internal/autotag"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var (
		releaseIDs []string
		artist     string
		album      string
		timid      bool
	)

	cmd := &cobra.Command{
		Use:   "match <album-artist> <album>",
		Short: "Propose canonical releases for a stored album",
		Long: `Match loads an album's items from the library and reconciles them
against MusicBrainz. Candidates are ranked by similarity; nothing is
written back.`,
		Args: cobra.ExactArgs(2),
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
				return fmt.Errorf("no items stored for %q / %q; run `cadenza library import` first", args[0], args[1])
			}

			matcher, err := ctx.newMatcher(timid)
			if err != nil {
				return err
			}

			query := autotag.AlbumQuery{Artist: artist, Album: album, IDs: releaseIDs}
			curArtist, curAlbum, proposal, err := matcher.TagAlbum(cmd.Context(), items, query)
			if err != nil {
				return fmt.Errorf("match album: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Tagging: %s - %s (%d items)\n\n", curArtist, curAlbum, len(items))
			renderAlbumProposal(out, proposal)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&releaseIDs, "id", nil, "Candidate release ID (repeatable; disables searching)")
	cmd.Flags().StringVar(&artist, "artist", "", "Override the search artist")
	cmd.Flags().StringVar(&album, "album", "", "Override the search album")
	cmd.Flags().BoolVar(&timid, "timid", false, "Always list candidates, even on a confident ID match")

	return cmd
}

func newTrackCommand(ctx *commandContext) *cobra.Command {
	var (
		trackIDs []string
		artist   string
		title    string
		timid    bool
	)

	cmd := &cobra.Command{
		Use:   "track <artist> <title>",
		Short: "Propose canonical recordings for a single track",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[1] == "" {
				return errors.New("title must not be empty")
			}

			matcher, err := ctx.newMatcher(timid)
			if err != nil {
				return err
			}

			item := itemFromArgs(args[0], args[1], trackIDs)
			query := autotag.TrackQuery{Artist: artist, Title: title, IDs: trackIDs}
			proposal, err := matcher.TagItem(cmd.Context(), item, query)
			if err != nil {
				return fmt.Errorf("match track: %w", err)
			}

			renderTrackProposal(cmd.OutOrStdout(), proposal)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&trackIDs, "id", nil, "Candidate recording ID (repeatable; disables searching)")
	cmd.Flags().StringVar(&artist, "artist", "", "Override the search artist")
	cmd.Flags().StringVar(&title, "title", "", "Override the search title")
	cmd.Flags().BoolVar(&timid, "timid", false, "Always list candidates, even on a confident ID match")

	return cmd
}
