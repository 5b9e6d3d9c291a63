// Package resource serves CRUD over HTTP for any entity type that has a flat
// DTO. Each catalog resource is one Handler, parameterized by its entity, its
// DTO, and a Mapping between them.
//
// Failures carry no body: the status code is the whole answer.
package resource

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/amonks/musiclib/db"
	"github.com/gin-gonic/gin"
)

// Store is the datastore as a handler sees it. *db.Table satisfies it.
type Store[E any] interface {
	List(ctx context.Context) ([]E, error)
	Find(ctx context.Context, id int64) (*E, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, row *E) error
	Save(ctx context.Context, row *E) error
	Delete(ctx context.Context, row *E) error
}

// Mapping converts between an entity and its DTO.
type Mapping[E, D any] struct {
	// ToDTO projects a stored entity, id included.
	ToDTO func(e *E) D

	// Apply copies every mutable field from the DTO onto the entity. It must
	// never touch the entity's id.
	Apply func(d *D, e *E)

	// ID reads the id a client put in a DTO body.
	ID func(d *D) int64
}

type Handler[E, D any] struct {
	name    string
	base    string
	store   Store[E]
	mapping Mapping[E, D]
	nested  []Nested
}

// New returns a handler that will serve the resource under /{name} of
// whichever group it is registered on.
func New[E, D any](name string, store Store[E], mapping Mapping[E, D]) *Handler[E, D] {
	return &Handler[E, D]{name: name, store: store, mapping: mapping}
}

// With adds read-only child listings at /{name}/{id}/{child}.
func (h *Handler[E, D]) With(nested ...Nested) *Handler[E, D] {
	h.nested = append(h.nested, nested...)
	return h
}

func (h *Handler[E, D]) Register(g *gin.RouterGroup) {
	r := g.Group("/" + h.name)
	h.base = r.BasePath()

	r.GET("", h.List)
	r.GET("/:id", h.Get)
	r.POST("", h.Create)
	r.PUT("/:id", h.Update)
	r.DELETE("/:id", h.Delete)

	for _, n := range h.nested {
		r.GET("/:id/"+n.path(), h.listNested(n))
	}
}

func (h *Handler[E, D]) List(c *gin.Context) {
	rows, err := h.store.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]D, len(rows))
	for i := range rows {
		out[i] = h.mapping.ToDTO(&rows[i])
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler[E, D]) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	row, err := h.store.Find(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.mapping.ToDTO(row))
}

// Create ignores any id in the body; the datastore assigns one.
func (h *Handler[E, D]) Create(c *gin.Context) {
	var dto D
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.Error(err).SetType(gin.ErrorTypeBind)
		c.Status(http.StatusBadRequest)
		return
	}

	var row E
	h.mapping.Apply(&dto, &row)
	if err := h.store.Create(c.Request.Context(), &row); err != nil {
		h.fail(c, err)
		return
	}

	out := h.mapping.ToDTO(&row)
	c.Header("Location", fmt.Sprintf("%s/%d", h.base, h.mapping.ID(&out)))
	c.JSON(http.StatusCreated, out)
}

// Update replaces every mutable field of an existing row. A body whose id
// disagrees with the path is rejected before the row is looked up.
func (h *Handler[E, D]) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var dto D
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.Error(err).SetType(gin.ErrorTypeBind)
		c.Status(http.StatusBadRequest)
		return
	}
	if bodyID := h.mapping.ID(&dto); bodyID != id {
		c.Error(fmt.Errorf("path id %d does not match body id %d", id, bodyID)).SetType(gin.ErrorTypeBind)
		c.Status(http.StatusBadRequest)
		return
	}

	ctx := c.Request.Context()
	row, err := h.store.Find(ctx, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.mapping.Apply(&dto, row)
	if err := h.store.Save(ctx, row); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler[E, D]) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	row, err := h.store.Find(ctx, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.store.Delete(ctx, row); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler[E, D]) listNested(n Nested) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}

		ctx := c.Request.Context()
		if ok, err := h.store.Exists(ctx, id); err != nil {
			h.fail(c, err)
			return
		} else if !ok {
			c.Status(http.StatusNotFound)
			return
		}
		out, err := n.list(ctx, id)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// fail answers 404 for a missing row and 500 for anything else. The error is
// attached to the context for the request logger.
func (h *Handler[E, D]) fail(c *gin.Context, err error) {
	if errors.Is(err, db.ErrNotFound) {
		c.Status(http.StatusNotFound)
		return
	}
	c.Error(fmt.Errorf("%s: %w", h.name, err))
	c.Status(http.StatusInternalServerError)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(fmt.Errorf("bad id '%s': %w", c.Param("id"), err)).SetType(gin.ErrorTypeBind)
		c.Status(http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
