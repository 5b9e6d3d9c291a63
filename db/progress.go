package db

import (
	"context"
	"fmt"
)

// Tables lists the catalog's tables, parents before children.
var Tables = []string{"artists", "albums", "songs"}

// Counts returns the number of rows in each table.
func (db *DB) Counts(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int, len(Tables))
	for _, table := range Tables {
		n, err := db.Count(ctx, table)
		if err != nil {
			return nil, err
		}
		counts[table] = n
	}
	return counts, nil
}

func (db *DB) Count(ctx context.Context, table string) (int, error) {
	var count int64
	if err := db.
		WithContext(ctx).
		Table(table).
		Count(&count).
		Error; err != nil {
		return 0, fmt.Errorf("error counting %s: %w", table, err)
	}
	return int(count), nil
}

// CountSongsWithoutAlbum counts singles, and songs whose album was deleted.
func (db *DB) CountSongsWithoutAlbum(ctx context.Context) (int, error) {
	var count int64
	if err := db.
		WithContext(ctx).
		Table("songs").
		Where("album_id is null").
		Count(&count).
		Error; err != nil {
		return 0, fmt.Errorf("error counting songs without an album: %w", err)
	}
	return int(count), nil
}
