package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/amonks/musiclib/data"
	"github.com/amonks/musiclib/db"
	"github.com/amonks/musiclib/subcmd"
)

func list(ctx context.Context, d *db.DB, args []string) error {
	subcmd := subcmd.New("list", "print every row of one table")
	subcmd.SetArg("table", "string", "the table to print (required)", db.Tables...)
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	header, rows, err := tableRows(ctx, d, subcmd.Arg(0))
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Printf("no %s\n", subcmd.Arg(0))
		return nil
	}
	return printTable(os.Stdout, header, rows)
}

func tableRows(ctx context.Context, d *db.DB, table string) ([]string, [][]string, error) {
	switch table {
	case "artists":
		artists, err := db.NewTable[data.Artist](d).List(ctx)
		if err != nil {
			return nil, nil, err
		}
		rows := make([][]string, len(artists))
		for i, a := range artists {
			rows[i] = []string{id(a.ID), a.Name, a.CreatedAt.Format(time.DateTime), truncate(a.Bio, 40)}
		}
		return []string{"id", "name", "created_at", "bio"}, rows, nil

	case "albums":
		albums, err := db.NewTable[data.Album](d).List(ctx)
		if err != nil {
			return nil, nil, err
		}
		rows := make([][]string, len(albums))
		for i, a := range albums {
			rows[i] = []string{id(a.ID), a.Title, id(a.ArtistID), date(a.ReleaseDate), a.CoverImage}
		}
		return []string{"id", "title", "artist_id", "release_date", "cover_image"}, rows, nil

	case "songs":
		songs, err := db.NewTable[data.Song](d).List(ctx)
		if err != nil {
			return nil, nil, err
		}
		rows := make([][]string, len(songs))
		for i, s := range songs {
			albumID := ""
			if s.AlbumID != nil {
				albumID = id(*s.AlbumID)
			}
			rows[i] = []string{id(s.ID), s.Title, id(s.ArtistID), albumID, s.Genre, date(s.ReleaseDate)}
		}
		return []string{"id", "title", "artist_id", "album_id", "genre", "release_date"}, rows, nil

	default:
		return nil, nil, fmt.Errorf("unknown table '%s'", table)
	}
}

func printTable(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func id(n int64) string {
	return strconv.FormatInt(n, 10)
}

func date(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateOnly)
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}
