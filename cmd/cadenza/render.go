package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"cadenza/internal/autotag"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func recommendationColor(rec autotag.Recommendation) string {
	switch rec {
	case autotag.RecStrong:
		return ansiGreen
	case autotag.RecMedium:
		return ansiYellow
	case autotag.RecLow, autotag.RecNone:
		return ansiRed
	default:
		return ""
	}
}

func renderRecommendation(rec autotag.Recommendation, colorize bool) string {
	label := strings.ToUpper(rec.String())
	if colorize {
		if color := recommendationColor(rec); color != "" {
			return color + label + ansiReset
		}
	}
	return label
}

// penaltySummary lists the candidate's penalty categories, most significant
// first, as a compact single cell.
func penaltySummary(dist *autotag.Distance) string {
	penalties := dist.Penalties()
	if len(penalties) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(penalties))
	for _, p := range penalties {
		parts = append(parts, p.Key)
	}
	return strings.Join(parts, ", ")
}

func renderAlbumProposal(w io.Writer, proposal *autotag.Proposal) {
	colorize := shouldColorize(w)

	if len(proposal.Candidates) == 0 {
		fmt.Fprintln(w, "No candidates found.")
		return
	}

	rows := make([][]string, 0, len(proposal.Candidates))
	for i, candidate := range proposal.Candidates {
		match, ok := candidate.(*autotag.AlbumMatch)
		if !ok {
			continue
		}
		year := ""
		if match.Info.Year != 0 {
			year = fmt.Sprintf("%d", match.Info.Year)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			match.Info.Artist,
			match.Info.Album,
			year,
			match.Info.Media,
			fmt.Sprintf("%.1f%%", (1-match.Dist.Score())*100),
			penaltySummary(match.Dist),
		})
	}

	fmt.Fprintln(w, renderTable(
		[]string{"#", "Artist", "Album", "Year", "Media", "Similarity", "Penalties"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft, alignRight, alignLeft},
	))
	fmt.Fprintf(w, "Recommendation: %s\n", renderRecommendation(proposal.Recommendation, colorize))
}

func renderTrackProposal(w io.Writer, proposal *autotag.Proposal) {
	colorize := shouldColorize(w)

	if len(proposal.Candidates) == 0 {
		fmt.Fprintln(w, "No candidates found.")
		return
	}

	rows := make([][]string, 0, len(proposal.Candidates))
	for i, candidate := range proposal.Candidates {
		match, ok := candidate.(*autotag.TrackMatch)
		if !ok {
			continue
		}
		length := ""
		if match.Info.Length > 0 {
			length = formatLength(match.Info.Length)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			match.Info.Artist,
			match.Info.Title,
			length,
			fmt.Sprintf("%.1f%%", (1-match.Dist.Score())*100),
			penaltySummary(match.Dist),
		})
	}

	fmt.Fprintln(w, renderTable(
		[]string{"#", "Artist", "Title", "Length", "Similarity", "Penalties"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
	))
	fmt.Fprintf(w, "Recommendation: %s\n", renderRecommendation(proposal.Recommendation, colorize))
}

func formatLength(seconds float64) string {
	total := int(seconds + 0.5)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
