package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned when no row has the requested id.
var ErrNotFound = errors.New("not found")

// Table does single-row CRUD on the table behind the entity type E. Rows are
// addressed by their integer primary key.
type Table[E any] struct {
	db   *DB
	name string
}

func NewTable[E any](db *DB) *Table[E] {
	var e E
	stmt := &gorm.Statement{DB: db.DB}
	name := fmt.Sprintf("%T", e)
	if err := stmt.Parse(&e); err == nil {
		name = stmt.Schema.Table
	}
	return &Table[E]{db: db, name: name}
}

// List returns every row in id order. An empty table gives an empty, non-nil
// slice.
func (t *Table[E]) List(ctx context.Context) ([]E, error) {
	rows := []E{}
	if err := t.db.
		WithContext(ctx).
		Order("id").
		Find(&rows).
		Error; err != nil {
		return nil, fmt.Errorf("error listing %s: %w", t.name, err)
	}
	return rows, nil
}

// ListBy returns the rows whose column equals value, in id order. column is
// trusted; never pass it user input.
func (t *Table[E]) ListBy(ctx context.Context, column string, value int64) ([]E, error) {
	rows := []E{}
	if err := t.db.
		WithContext(ctx).
		Where(column+" = ?", value).
		Order("id").
		Find(&rows).
		Error; err != nil {
		return nil, fmt.Errorf("error listing %s by %s %d: %w", t.name, column, value, err)
	}
	return rows, nil
}

// Find returns the row with the given id, or an error wrapping ErrNotFound.
func (t *Table[E]) Find(ctx context.Context, id int64) (*E, error) {
	var row E
	if err := t.db.
		WithContext(ctx).
		Take(&row, id).
		Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("no row in %s with id %d: %w", t.name, id, ErrNotFound)
	} else if err != nil {
		return nil, fmt.Errorf("error getting %s %d: %w", t.name, id, err)
	}
	return &row, nil
}

// Exists reports whether a row with the given id exists.
func (t *Table[E]) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := t.db.
		WithContext(ctx).
		Model(new(E)).
		Where("id = ?", id).
		Count(&count).
		Error; err != nil {
		return false, fmt.Errorf("error checking for %s %d: %w", t.name, id, err)
	}
	return count > 0, nil
}

// Create inserts row, filling in its generated id.
func (t *Table[E]) Create(ctx context.Context, row *E) error {
	if err := t.db.
		WithContext(ctx).
		Create(row).
		Error; err != nil {
		return fmt.Errorf("error inserting into %s: %w", t.name, err)
	}
	return nil
}

// Save writes every column of an existing row. A row that is gone by the
// time it is written gives an error wrapping ErrNotFound; it is never
// reinserted.
func (t *Table[E]) Save(ctx context.Context, row *E) error {
	res := t.db.
		WithContext(ctx).
		Select("*").
		Updates(row)
	if res.Error != nil {
		return fmt.Errorf("error updating %s: %w", t.name, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("error updating %s: %w", t.name, ErrNotFound)
	}
	return nil
}

// Delete removes row by its primary key.
func (t *Table[E]) Delete(ctx context.Context, row *E) error {
	if err := t.db.
		WithContext(ctx).
		Delete(row).
		Error; err != nil {
		return fmt.Errorf("error deleting from %s: %w", t.name, err)
	}
	return nil
}
