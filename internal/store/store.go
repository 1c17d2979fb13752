// Package store provides an interface for producto storage operations.
package store

import (
	"context"
	"strings"

	"github.com/andreastrap/productos/internal/store/db"
)

// ProductoStore is an interface for producto storage operations.
// Every method is a single statement against the productos table.
type ProductoStore interface {
	// FindAll returns every producto in storage order.
	FindAll(ctx context.Context) ([]db.Producto, error)

	// FindByID retrieves a single producto by its identifier.
	// Returns ErrProductoNotFound if no producto exists with the given ID.
	FindByID(ctx context.Context, id int64) (*db.Producto, error)

	// Save inserts p when p.ID is zero, otherwise overwrites nombre and precio of the existing row.
	// Returns ErrProductoNotFound when updating an ID that does not exist.
	Save(ctx context.Context, p db.Producto) (*db.Producto, error)

	// DeleteByID removes the producto if present. Deleting a missing ID is not an error.
	DeleteByID(ctx context.Context, id int64) error

	ExistsByID(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)

	// FindByNombreIgnoreCase returns productos whose nombre equals n, ignoring case.
	FindByNombreIgnoreCase(ctx context.Context, n string) ([]db.Producto, error)

	// FindByNombreContainingIgnoreCase returns productos whose nombre contains s, ignoring case.
	// LIKE wildcards in s match literally.
	FindByNombreContainingIgnoreCase(ctx context.Context, s string) ([]db.Producto, error)

	// FindByPrecioBetween returns productos with minPrecio <= precio <= maxPrecio.
	FindByPrecioBetween(ctx context.Context, minPrecio, maxPrecio float64) ([]db.Producto, error)

	FindByPrecioGreaterThan(ctx context.Context, precio float64) ([]db.Producto, error)
	FindByPrecioLessThan(ctx context.Context, precio float64) ([]db.Producto, error)

	// FindByNombreAndPrecioRange returns productos whose nombre contains s (case-sensitive)
	// and whose precio lies in [minPrecio, maxPrecio].
	FindByNombreAndPrecioRange(ctx context.Context, s string, minPrecio, maxPrecio float64) ([]db.Producto, error)

	FindAllOrderByPrecioAsc(ctx context.Context) ([]db.Producto, error)
	FindAllOrderByNombreAsc(ctx context.Context) ([]db.Producto, error)

	ExistsByNombreIgnoreCase(ctx context.Context, n string) (bool, error)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike escapes the LIKE wildcards of s for use with ESCAPE '\'.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
