package resource

import "context"

// Nested is a read-only listing of the rows that point at one parent row.
type Nested interface {
	path() string
	list(ctx context.Context, parentID int64) (any, error)
}

// ChildStore finds rows by a foreign-key column. *db.Table satisfies it.
type ChildStore[E any] interface {
	ListBy(ctx context.Context, column string, value int64) ([]E, error)
}

// Children lists the rows of one child table whose Column holds the parent's
// id, e.g. an artist's albums.
type Children[E, D any] struct {
	Path   string
	Column string
	Store  ChildStore[E]
	ToDTO  func(e *E) D
}

func (ch Children[E, D]) path() string { return ch.Path }

func (ch Children[E, D]) list(ctx context.Context, parentID int64) (any, error) {
	rows, err := ch.Store.ListBy(ctx, ch.Column, parentID)
	if err != nil {
		return nil, err
	}
	out := make([]D, len(rows))
	for i := range rows {
		out[i] = ch.ToDTO(&rows[i])
	}
	return out, nil
}
