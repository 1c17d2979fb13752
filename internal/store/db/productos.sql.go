package db

import (
	"context"

	"github.com/jackc/pgx/v5"
)

const countProductos = `
SELECT count(*) FROM productos
`

func (q *Queries) Count(ctx context.Context) (int64, error) {
	row := q.db.QueryRow(ctx, countProductos)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createProducto = `
INSERT INTO productos (nombre, precio)
VALUES ($1, $2)
RETURNING id, nombre, precio
`

type CreateParams struct {
	Nombre string
	Precio float64
}

func (q *Queries) Create(ctx context.Context, arg CreateParams) (Producto, error) {
	row := q.db.QueryRow(ctx, createProducto, arg.Nombre, arg.Precio)
	var i Producto
	err := row.Scan(&i.ID, &i.Nombre, &i.Precio)
	return i, err
}

const deleteProducto = `
DELETE FROM productos
WHERE id = $1
`

func (q *Queries) Delete(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.Exec(ctx, deleteProducto, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const existsByID = `
SELECT EXISTS (SELECT 1 FROM productos WHERE id = $1)
`

func (q *Queries) ExistsByID(ctx context.Context, id int64) (bool, error) {
	row := q.db.QueryRow(ctx, existsByID, id)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const existsByNombreIgnoreCase = `
SELECT EXISTS (SELECT 1 FROM productos WHERE lower(nombre) = lower($1::text))
`

func (q *Queries) ExistsByNombreIgnoreCase(ctx context.Context, nombre string) (bool, error) {
	row := q.db.QueryRow(ctx, existsByNombreIgnoreCase, nombre)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const findAll = `
SELECT id, nombre, precio FROM productos
`

func (q *Queries) FindAll(ctx context.Context) ([]Producto, error) {
	return q.queryMany(ctx, findAll)
}

const findAllOrderByNombre = `
SELECT id, nombre, precio FROM productos
ORDER BY nombre, id
`

func (q *Queries) FindAllOrderByNombre(ctx context.Context) ([]Producto, error) {
	return q.queryMany(ctx, findAllOrderByNombre)
}

const findAllOrderByPrecio = `
SELECT id, nombre, precio FROM productos
ORDER BY precio, id
`

func (q *Queries) FindAllOrderByPrecio(ctx context.Context) ([]Producto, error) {
	return q.queryMany(ctx, findAllOrderByPrecio)
}

const findByID = `
SELECT id, nombre, precio FROM productos
WHERE id = $1
`

func (q *Queries) FindByID(ctx context.Context, id int64) (Producto, error) {
	row := q.db.QueryRow(ctx, findByID, id)
	var i Producto
	err := row.Scan(&i.ID, &i.Nombre, &i.Precio)
	return i, err
}

const findByNombreAndPrecioRange = `
SELECT id, nombre, precio FROM productos
WHERE nombre LIKE '%' || $1::text || '%' ESCAPE '\'
  AND precio BETWEEN $2 AND $3
`

type FindByNombreAndPrecioRangeParams struct {
	Pattern string
	Min     float64
	Max     float64
}

// FindByNombreAndPrecioRange expects Pattern to be LIKE-escaped by the caller.
func (q *Queries) FindByNombreAndPrecioRange(ctx context.Context, arg FindByNombreAndPrecioRangeParams) ([]Producto, error) {
	return q.queryMany(ctx, findByNombreAndPrecioRange, arg.Pattern, arg.Min, arg.Max)
}

const findByNombreContainingIgnoreCase = `
SELECT id, nombre, precio FROM productos
WHERE lower(nombre) LIKE '%' || lower($1::text) || '%' ESCAPE '\'
`

// FindByNombreContainingIgnoreCase expects pattern to be LIKE-escaped by the caller.
func (q *Queries) FindByNombreContainingIgnoreCase(ctx context.Context, pattern string) ([]Producto, error) {
	return q.queryMany(ctx, findByNombreContainingIgnoreCase, pattern)
}

const findByNombreIgnoreCase = `
SELECT id, nombre, precio FROM productos
WHERE lower(nombre) = lower($1::text)
`

func (q *Queries) FindByNombreIgnoreCase(ctx context.Context, nombre string) ([]Producto, error) {
	return q.queryMany(ctx, findByNombreIgnoreCase, nombre)
}

const findByPrecioBetween = `
SELECT id, nombre, precio FROM productos
WHERE precio BETWEEN $1 AND $2
`

type FindByPrecioBetweenParams struct {
	Min float64
	Max float64
}

func (q *Queries) FindByPrecioBetween(ctx context.Context, arg FindByPrecioBetweenParams) ([]Producto, error) {
	return q.queryMany(ctx, findByPrecioBetween, arg.Min, arg.Max)
}

const findByPrecioGreaterThan = `
SELECT id, nombre, precio FROM productos
WHERE precio > $1
`

func (q *Queries) FindByPrecioGreaterThan(ctx context.Context, precio float64) ([]Producto, error) {
	return q.queryMany(ctx, findByPrecioGreaterThan, precio)
}

const findByPrecioLessThan = `
SELECT id, nombre, precio FROM productos
WHERE precio < $1
`

func (q *Queries) FindByPrecioLessThan(ctx context.Context, precio float64) ([]Producto, error) {
	return q.queryMany(ctx, findByPrecioLessThan, precio)
}

const updateProducto = `
UPDATE productos
SET nombre = $2,
    precio = $3
WHERE id = $1
RETURNING id, nombre, precio
`

type UpdateParams struct {
	ID     int64
	Nombre string
	Precio float64
}

func (q *Queries) Update(ctx context.Context, arg UpdateParams) (Producto, error) {
	row := q.db.QueryRow(ctx, updateProducto, arg.ID, arg.Nombre, arg.Precio)
	var i Producto
	err := row.Scan(&i.ID, &i.Nombre, &i.Precio)
	return i, err
}

func (q *Queries) queryMany(ctx context.Context, sql string, args ...interface{}) ([]Producto, error) {
	rows, err := q.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[Producto])
}
