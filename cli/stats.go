package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/amonks/musiclib/db"
	"github.com/amonks/musiclib/subcmd"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func stats(ctx context.Context, db *db.DB, args []string) error {
	subcmd := subcmd.New("stats", "report how many rows each table holds")
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	counts, err := db.Counts(ctx)
	if err != nil {
		return err
	}
	songsWithoutAlbum, err := db.CountSongsWithoutAlbum(ctx)
	if err != nil {
		return err
	}

	printSection("artists", counts["artists"], nil)
	printSection("albums", counts["albums"], nil)
	printSection("songs", counts["songs"], map[string]int{
		"without an album": songsWithoutAlbum,
	})

	return nil
}

var humanPrinter = message.NewPrinter(language.English)

func printSection(name string, known int, parts map[string]int) {
	humanPrinter.Printf("%s\n", strings.ToUpper(name))
	humanPrinter.Printf("  %d\tknown\n", known)
	for k, v := range parts {
		if known == 0 {
			humanPrinter.Printf("  %d\t%s\n", v, k)
			continue
		}
		humanPrinter.Printf("  %d\t%s (%.2f%%)\n", v, k, 100.0*float64(v)/float64(known))
	}
	humanPrinter.Printf("\n")
}
