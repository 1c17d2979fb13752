// Package service provides the producto business operations on top of the store.
package service

import (
	"context"
	"fmt"

	"github.com/andreastrap/productos/internal/store"
	"github.com/andreastrap/productos/internal/store/db"
)

// ProductoService defines the operations available on productos.
// Each method maps to one store call, except DeleteByID.
type ProductoService interface {
	// FindAll returns every producto. Returns an empty slice if there are none.
	FindAll(ctx context.Context) ([]ProductoDto, error)

	// FindByID retrieves a single producto.
	// Returns ErrProductoNotFound if no producto exists with the given ID.
	FindByID(ctx context.Context, id int64) (*ProductoDto, error)

	// Save creates the producto when ID is zero, otherwise overwrites nombre and precio.
	Save(ctx context.Context, producto ProductoDto) (*ProductoDto, error)

	// DeleteByID deletes the producto and reports whether it existed.
	DeleteByID(ctx context.Context, id int64) (bool, error)

	ExistsByID(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)

	// FindByNombre matches the whole nombre, ignoring case.
	FindByNombre(ctx context.Context, nombre string) ([]ProductoDto, error)
	// FindByNombreContaining matches a substring of nombre, ignoring case.
	FindByNombreContaining(ctx context.Context, nombre string) ([]ProductoDto, error)

	FindByPrecioRange(ctx context.Context, minPrecio, maxPrecio float64) ([]ProductoDto, error)
	FindByPrecioGreaterThan(ctx context.Context, precio float64) ([]ProductoDto, error)
	FindByPrecioLessThan(ctx context.Context, precio float64) ([]ProductoDto, error)
	FindByNombreAndPrecioRange(ctx context.Context, nombre string, minPrecio, maxPrecio float64) ([]ProductoDto, error)

	FindAllOrderByPrecio(ctx context.Context) ([]ProductoDto, error)
	FindAllOrderByNombre(ctx context.Context) ([]ProductoDto, error)

	// ExistsByNombre reports whether a producto with the same nombre exists, ignoring case.
	ExistsByNombre(ctx context.Context, nombre string) (bool, error)
}

var _ ProductoService = (*Service)(nil)

// Service implements ProductoService.
type Service struct {
	repository store.ProductoStore
}

// NewService creates a new instance of ProductoService with the provided repository.
func NewService(repo store.ProductoStore) *Service {
	return &Service{
		repository: repo,
	}
}

// ProductoDto is the JSON representation of a producto.
type ProductoDto struct {
	ID     int64   `json:"id"`
	Nombre string  `json:"nombre"`
	Precio float64 `json:"precio"`
}

// ProductoRequestDto is the body accepted on create and update. Pointers tell a missing field from a zero value.
type ProductoRequestDto struct {
	ID     *int64   `json:"id"`
	Nombre *string  `json:"nombre" validate:"required,notblank"`
	Precio *float64 `json:"precio" validate:"required,gte=0"`
}

func (s *Service) FindAll(ctx context.Context) ([]ProductoDto, error) {
	productos, err := s.repository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find all productos: %w", err)
	}
	return toDtos(productos), nil
}

func (s *Service) FindByID(ctx context.Context, id int64) (*ProductoDto, error) {
	producto, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find producto with ID %d: %w", id, err)
	}
	dto := toDto(*producto)
	return &dto, nil
}

func (s *Service) Save(ctx context.Context, producto ProductoDto) (*ProductoDto, error) {
	saved, err := s.repository.Save(ctx, db.Producto{
		ID:     producto.ID,
		Nombre: producto.Nombre,
		Precio: producto.Precio,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save producto: %w", err)
	}
	dto := toDto(*saved)
	return &dto, nil
}

// DeleteByID checks existence first and only then deletes. The two calls are not atomic.
func (s *Service) DeleteByID(ctx context.Context, id int64) (bool, error) {
	exists, err := s.repository.ExistsByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete producto with ID %d: %w", id, err)
	}
	if !exists {
		return false, nil
	}
	if err := s.repository.DeleteByID(ctx, id); err != nil {
		return false, fmt.Errorf("failed to delete producto with ID %d: %w", id, err)
	}
	return true, nil
}

func (s *Service) ExistsByID(ctx context.Context, id int64) (bool, error) {
	exists, err := s.repository.ExistsByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to check producto with ID %d: %w", id, err)
	}
	return exists, nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	count, err := s.repository.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count productos: %w", err)
	}
	return count, nil
}

func (s *Service) FindByNombre(ctx context.Context, nombre string) ([]ProductoDto, error) {
	return list(s.repository.FindByNombreIgnoreCase(ctx, nombre))
}

func (s *Service) FindByNombreContaining(ctx context.Context, nombre string) ([]ProductoDto, error) {
	return list(s.repository.FindByNombreContainingIgnoreCase(ctx, nombre))
}

func (s *Service) FindByPrecioRange(ctx context.Context, minPrecio, maxPrecio float64) ([]ProductoDto, error) {
	return list(s.repository.FindByPrecioBetween(ctx, minPrecio, maxPrecio))
}

func (s *Service) FindByPrecioGreaterThan(ctx context.Context, precio float64) ([]ProductoDto, error) {
	return list(s.repository.FindByPrecioGreaterThan(ctx, precio))
}

func (s *Service) FindByPrecioLessThan(ctx context.Context, precio float64) ([]ProductoDto, error) {
	return list(s.repository.FindByPrecioLessThan(ctx, precio))
}

func (s *Service) FindByNombreAndPrecioRange(ctx context.Context, nombre string, minPrecio, maxPrecio float64) ([]ProductoDto, error) {
	return list(s.repository.FindByNombreAndPrecioRange(ctx, nombre, minPrecio, maxPrecio))
}

func (s *Service) FindAllOrderByPrecio(ctx context.Context) ([]ProductoDto, error) {
	return list(s.repository.FindAllOrderByPrecioAsc(ctx))
}

func (s *Service) FindAllOrderByNombre(ctx context.Context) ([]ProductoDto, error) {
	return list(s.repository.FindAllOrderByNombreAsc(ctx))
}

func (s *Service) ExistsByNombre(ctx context.Context, nombre string) (bool, error) {
	exists, err := s.repository.ExistsByNombreIgnoreCase(ctx, nombre)
	if err != nil {
		return false, fmt.Errorf("failed to check producto nombre: %w", err)
	}
	return exists, nil
}

// list converts a store query result, wrapping its error.
func list(productos []db.Producto, err error) ([]ProductoDto, error) {
	if err != nil {
		return nil, fmt.Errorf("failed to query productos: %w", err)
	}
	return toDtos(productos), nil
}

func toDto(p db.Producto) ProductoDto {
	return ProductoDto{
		ID:     p.ID,
		Nombre: p.Nombre,
		Precio: p.Precio,
	}
}

func toDtos(productos []db.Producto) []ProductoDto {
	dtos := make([]ProductoDto, 0, len(productos))
	for _, p := range productos {
		dtos = append(dtos, toDto(p))
	}
	return dtos
}
