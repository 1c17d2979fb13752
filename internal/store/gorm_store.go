package store

import (
	"context"
	"errors"
	"fmt"

	perrors "github.com/andreastrap/productos/internal/errors"
	"github.com/andreastrap/productos/internal/store/db"
	"gorm.io/gorm"
)

var _ ProductoStore = (*GormStore)(nil)

// GormStore implements ProductoStore on top of gorm. It works with the postgres and sqlite dialects.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GormStore.
func NewGormStore(gdb *gorm.DB) *GormStore {
	return &GormStore{db: gdb}
}

// AutoMigrate creates or updates the productos table from the model definition.
func AutoMigrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(&db.Producto{}); err != nil {
		return fmt.Errorf("failed to migrate productos table: %w", err)
	}
	return nil
}

func (s *GormStore) FindAll(ctx context.Context) ([]db.Producto, error) {
	return s.findMany(ctx, "failed to find all productos", s.db)
}

// FindByID retrieves a producto by its identifier.
// Returns ErrProductoNotFound if no producto exists with the given ID.
func (s *GormStore) FindByID(ctx context.Context, id int64) (*db.Producto, error) {
	var producto db.Producto
	if err := s.db.WithContext(ctx).First(&producto, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, perrors.ErrProductoNotFound
		}
		return nil, fmt.Errorf("failed to find producto by ID: %w", err)
	}
	return &producto, nil
}

func (s *GormStore) Save(ctx context.Context, producto db.Producto) (*db.Producto, error) {
	if producto.ID == 0 {
		if err := s.db.WithContext(ctx).Create(&producto).Error; err != nil {
			return nil, fmt.Errorf("failed to create producto: %w", err)
		}
		return &producto, nil
	}

	result := s.db.WithContext(ctx).
		Model(&db.Producto{}).
		Where("id = ?", producto.ID).
		Updates(map[string]any{"nombre": producto.Nombre, "precio": producto.Precio})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update producto: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, perrors.ErrProductoNotFound
	}
	return &producto, nil
}

func (s *GormStore) DeleteByID(ctx context.Context, id int64) error {
	if err := s.db.WithContext(ctx).Delete(&db.Producto{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete producto by ID: %w", err)
	}
	return nil
}

func (s *GormStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	count, err := s.count(ctx, s.db.Where("id = ?", id))
	if err != nil {
		return false, fmt.Errorf("failed to check producto existence: %w", err)
	}
	return count > 0, nil
}

func (s *GormStore) Count(ctx context.Context) (int64, error) {
	count, err := s.count(ctx, s.db)
	if err != nil {
		return 0, fmt.Errorf("failed to count productos: %w", err)
	}
	return count, nil
}

func (s *GormStore) FindByNombreIgnoreCase(ctx context.Context, n string) ([]db.Producto, error) {
	return s.findMany(ctx, "failed to find productos by nombre",
		s.db.Where("LOWER(nombre) = LOWER(?)", n))
}

func (s *GormStore) FindByNombreContainingIgnoreCase(ctx context.Context, str string) ([]db.Producto, error) {
	return s.findMany(ctx, "failed to search productos by nombre",
		s.db.Where(`LOWER(nombre) LIKE LOWER(?) ESCAPE '\'`, "%"+escapeLike(str)+"%"))
}

func (s *GormStore) FindByPrecioBetween(ctx context.Context, minPrecio, maxPrecio float64) ([]db.Producto, error) {
	return s.findMany(ctx, "failed to find productos by precio range",
		s.db.Where("precio BETWEEN ? AND ?", minPrecio, maxPrecio))
}

func (s *GormStore) FindByPrecioGreaterThan(ctx context.Context, precio float64) ([]db.Producto, error) {
	return s.findMany(ctx, "failed to find productos by precio",
		s.db.Where("precio > ?", precio))
}

func (s *GormStore) FindByPrecioLessThan(ctx context.Context, precio float64) ([]db.Producto, error) {
	return s.findMany(ctx, "failed to find productos by precio",
		s.db.Where("precio < ?", precio))
}

func (s *GormStore) FindByNombreAndPrecioRange(ctx context.Context, str string, minPrecio, maxPrecio float64) ([]db.Producto, error) {
	return s.findMany(ctx, "failed to find productos by nombre and precio range",
		s.containsCaseSensitive(str).Where("precio BETWEEN ? AND ?", minPrecio, maxPrecio))
}

func (s *GormStore) FindAllOrderByPrecioAsc(ctx context.Context) ([]db.Producto, error) {
	return s.findMany(ctx, "failed to list productos ordered by precio",
		s.db.Order("precio ASC").Order("id ASC"))
}

func (s *GormStore) FindAllOrderByNombreAsc(ctx context.Context) ([]db.Producto, error) {
	return s.findMany(ctx, "failed to list productos ordered by nombre",
		s.db.Order("nombre ASC").Order("id ASC"))
}

func (s *GormStore) ExistsByNombreIgnoreCase(ctx context.Context, n string) (bool, error) {
	count, err := s.count(ctx, s.db.Where("LOWER(nombre) = LOWER(?)", n))
	if err != nil {
		return false, fmt.Errorf("failed to check producto nombre: %w", err)
	}
	return count > 0, nil
}

// containsCaseSensitive filters on nombre containing str. SQLite LIKE ignores ASCII case, so instr is used there.
func (s *GormStore) containsCaseSensitive(str string) *gorm.DB {
	if s.db.Dialector.Name() == "sqlite" {
		return s.db.Where("instr(nombre, ?) > 0", str)
	}
	return s.db.Where(`nombre LIKE ? ESCAPE '\'`, "%"+escapeLike(str)+"%")
}

func (s *GormStore) findMany(ctx context.Context, errMsg string, query *gorm.DB) ([]db.Producto, error) {
	var productos []db.Producto
	if err := query.WithContext(ctx).Find(&productos).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}
	return productos, nil
}

func (s *GormStore) count(ctx context.Context, query *gorm.DB) (int64, error) {
	var count int64
	err := query.WithContext(ctx).Model(&db.Producto{}).Count(&count).Error
	return count, err
}
