package store

import (
	"context"
	"errors"
	"fmt"

	perrors "github.com/andreastrap/productos/internal/errors"
	"github.com/andreastrap/productos/internal/store/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ ProductoStore = (*PgStore)(nil)

// PgStore implements ProductoStore using PostgreSQL through pgx.
type PgStore struct {
	db *pgxpool.Pool
	q  *db.Queries
}

// NewPgStore creates a new instance of PgStore using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{
		db: dbp,
		q:  db.New(dbp),
	}
}

func (p *PgStore) FindAll(ctx context.Context) ([]db.Producto, error) {
	productos, err := p.q.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find all productos: %w", err)
	}
	return productos, nil
}

// FindByID retrieves a producto by its identifier.
// Returns ErrProductoNotFound if no producto exists with the given ID.
func (p *PgStore) FindByID(ctx context.Context, id int64) (*db.Producto, error) {
	producto, err := p.q.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, perrors.ErrProductoNotFound
		}
		return nil, fmt.Errorf("failed to find producto by ID: %w", err)
	}
	return &producto, nil
}

func (p *PgStore) Save(ctx context.Context, producto db.Producto) (*db.Producto, error) {
	if producto.ID == 0 {
		created, err := p.q.Create(ctx, db.CreateParams{
			Nombre: producto.Nombre,
			Precio: producto.Precio,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create producto: %w", err)
		}
		return &created, nil
	}

	updated, err := p.q.Update(ctx, db.UpdateParams{
		ID:     producto.ID,
		Nombre: producto.Nombre,
		Precio: producto.Precio,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, perrors.ErrProductoNotFound
		}
		return nil, fmt.Errorf("failed to update producto: %w", err)
	}
	return &updated, nil
}

func (p *PgStore) DeleteByID(ctx context.Context, id int64) error {
	if _, err := p.q.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete producto by ID: %w", err)
	}
	return nil
}

func (p *PgStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	exists, err := p.q.ExistsByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to check producto existence: %w", err)
	}
	return exists, nil
}

func (p *PgStore) Count(ctx context.Context) (int64, error) {
	count, err := p.q.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count productos: %w", err)
	}
	return count, nil
}

func (p *PgStore) FindByNombreIgnoreCase(ctx context.Context, n string) ([]db.Producto, error) {
	productos, err := p.q.FindByNombreIgnoreCase(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("failed to find productos by nombre: %w", err)
	}
	return productos, nil
}

func (p *PgStore) FindByNombreContainingIgnoreCase(ctx context.Context, s string) ([]db.Producto, error) {
	productos, err := p.q.FindByNombreContainingIgnoreCase(ctx, escapeLike(s))
	if err != nil {
		return nil, fmt.Errorf("failed to search productos by nombre: %w", err)
	}
	return productos, nil
}

func (p *PgStore) FindByPrecioBetween(ctx context.Context, minPrecio, maxPrecio float64) ([]db.Producto, error) {
	productos, err := p.q.FindByPrecioBetween(ctx, db.FindByPrecioBetweenParams{Min: minPrecio, Max: maxPrecio})
	if err != nil {
		return nil, fmt.Errorf("failed to find productos by precio range: %w", err)
	}
	return productos, nil
}

func (p *PgStore) FindByPrecioGreaterThan(ctx context.Context, precio float64) ([]db.Producto, error) {
	productos, err := p.q.FindByPrecioGreaterThan(ctx, precio)
	if err != nil {
		return nil, fmt.Errorf("failed to find productos with precio greater than %v: %w", precio, err)
	}
	return productos, nil
}

func (p *PgStore) FindByPrecioLessThan(ctx context.Context, precio float64) ([]db.Producto, error) {
	productos, err := p.q.FindByPrecioLessThan(ctx, precio)
	if err != nil {
		return nil, fmt.Errorf("failed to find productos with precio less than %v: %w", precio, err)
	}
	return productos, nil
}

func (p *PgStore) FindByNombreAndPrecioRange(ctx context.Context, s string, minPrecio, maxPrecio float64) ([]db.Producto, error) {
	productos, err := p.q.FindByNombreAndPrecioRange(ctx, db.FindByNombreAndPrecioRangeParams{
		Pattern: escapeLike(s),
		Min:     minPrecio,
		Max:     maxPrecio,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find productos by nombre and precio range: %w", err)
	}
	return productos, nil
}

func (p *PgStore) FindAllOrderByPrecioAsc(ctx context.Context) ([]db.Producto, error) {
	productos, err := p.q.FindAllOrderByPrecio(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list productos ordered by precio: %w", err)
	}
	return productos, nil
}

func (p *PgStore) FindAllOrderByNombreAsc(ctx context.Context) ([]db.Producto, error) {
	productos, err := p.q.FindAllOrderByNombre(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list productos ordered by nombre: %w", err)
	}
	return productos, nil
}

func (p *PgStore) ExistsByNombreIgnoreCase(ctx context.Context, n string) (bool, error) {
	exists, err := p.q.ExistsByNombreIgnoreCase(ctx, n)
	if err != nil {
		return false, fmt.Errorf("failed to check producto nombre: %w", err)
	}
	return exists, nil
}
