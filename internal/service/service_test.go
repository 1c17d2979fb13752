package service

import (
	"context"
	"errors"
	"testing"

	perrors "github.com/andreastrap/productos/internal/errors"
	"github.com/andreastrap/productos/internal/store/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductoStore is a testify mock of store.ProductoStore.
type MockProductoStore struct {
	mock.Mock
}

func (m *MockProductoStore) productos(args mock.Arguments) ([]db.Producto, error) {
	var productos []db.Producto
	if args.Get(0) != nil {
		productos = args.Get(0).([]db.Producto)
	}
	return productos, args.Error(1)
}

func (m *MockProductoStore) producto(args mock.Arguments) (*db.Producto, error) {
	var producto *db.Producto
	if args.Get(0) != nil {
		producto = args.Get(0).(*db.Producto)
	}
	return producto, args.Error(1)
}

func (m *MockProductoStore) FindAll(ctx context.Context) ([]db.Producto, error) {
	return m.productos(m.Called(ctx))
}

func (m *MockProductoStore) FindByID(ctx context.Context, id int64) (*db.Producto, error) {
	return m.producto(m.Called(ctx, id))
}

func (m *MockProductoStore) Save(ctx context.Context, p db.Producto) (*db.Producto, error) {
	return m.producto(m.Called(ctx, p))
}

func (m *MockProductoStore) DeleteByID(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductoStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductoStore) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductoStore) FindByNombreIgnoreCase(ctx context.Context, n string) ([]db.Producto, error) {
	return m.productos(m.Called(ctx, n))
}

func (m *MockProductoStore) FindByNombreContainingIgnoreCase(ctx context.Context, s string) ([]db.Producto, error) {
	return m.productos(m.Called(ctx, s))
}

func (m *MockProductoStore) FindByPrecioBetween(ctx context.Context, minPrecio, maxPrecio float64) ([]db.Producto, error) {
	return m.productos(m.Called(ctx, minPrecio, maxPrecio))
}

func (m *MockProductoStore) FindByPrecioGreaterThan(ctx context.Context, precio float64) ([]db.Producto, error) {
	return m.productos(m.Called(ctx, precio))
}

func (m *MockProductoStore) FindByPrecioLessThan(ctx context.Context, precio float64) ([]db.Producto, error) {
	return m.productos(m.Called(ctx, precio))
}

func (m *MockProductoStore) FindByNombreAndPrecioRange(ctx context.Context, s string, minPrecio, maxPrecio float64) ([]db.Producto, error) {
	return m.productos(m.Called(ctx, s, minPrecio, maxPrecio))
}

func (m *MockProductoStore) FindAllOrderByPrecioAsc(ctx context.Context) ([]db.Producto, error) {
	return m.productos(m.Called(ctx))
}

func (m *MockProductoStore) FindAllOrderByNombreAsc(ctx context.Context) ([]db.Producto, error) {
	return m.productos(m.Called(ctx))
}

func (m *MockProductoStore) ExistsByNombreIgnoreCase(ctx context.Context, n string) (bool, error) {
	args := m.Called(ctx, n)
	return args.Bool(0), args.Error(1)
}

func Test_Service_FindByID(t *testing.T) {
	testCases := []struct {
		name        string
		stored      *db.Producto
		storeErr    error
		expected    *ProductoDto
		expectError error
	}{
		{
			name:     "Success - producto found",
			stored:   &db.Producto{ID: 1, Nombre: "Pan", Precio: 10},
			expected: &ProductoDto{ID: 1, Nombre: "Pan", Precio: 10},
		},
		{
			name:        "Error - producto not found",
			storeErr:    perrors.ErrProductoNotFound,
			expectError: perrors.ErrProductoNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			mockStore := new(MockProductoStore)
			mockStore.On("FindByID", mock.Anything, int64(1)).Return(tc.stored, tc.storeErr)
			service := NewService(mockStore)

			// when
			found, err := service.FindByID(context.Background(), 1)

			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, found)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, found)
			mockStore.AssertExpectations(t)
		})
	}
}

func Test_Service_FindAll(t *testing.T) {
	errStore := errors.New("store error")
	testCases := []struct {
		name        string
		stored      []db.Producto
		storeErr    error
		expected    []ProductoDto
		expectError error
	}{
		{
			name:     "Success - productos found",
			stored:   []db.Producto{{ID: 1, Nombre: "Pan", Precio: 10}, {ID: 2, Nombre: "Leche", Precio: 5}},
			expected: []ProductoDto{{ID: 1, Nombre: "Pan", Precio: 10}, {ID: 2, Nombre: "Leche", Precio: 5}},
		},
		{
			name:     "Success - no productos",
			stored:   []db.Producto{},
			expected: []ProductoDto{},
		},
		{
			name:        "Error - store error",
			storeErr:    errStore,
			expectError: errStore,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			mockStore := new(MockProductoStore)
			mockStore.On("FindAll", mock.Anything).Return(tc.stored, tc.storeErr)
			service := NewService(mockStore)

			// when
			found, err := service.FindAll(context.Background())

			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, found)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, found)
		})
	}
}

func Test_Service_Save(t *testing.T) {
	testCases := []struct {
		name     string
		input    ProductoDto
		toStore  db.Producto
		stored   db.Producto
		expected ProductoDto
	}{
		{
			name:     "create",
			input:    ProductoDto{Nombre: "Pan", Precio: 10},
			toStore:  db.Producto{Nombre: "Pan", Precio: 10},
			stored:   db.Producto{ID: 7, Nombre: "Pan", Precio: 10},
			expected: ProductoDto{ID: 7, Nombre: "Pan", Precio: 10},
		},
		{
			name:     "update",
			input:    ProductoDto{ID: 7, Nombre: "Pan integral", Precio: 12},
			toStore:  db.Producto{ID: 7, Nombre: "Pan integral", Precio: 12},
			stored:   db.Producto{ID: 7, Nombre: "Pan integral", Precio: 12},
			expected: ProductoDto{ID: 7, Nombre: "Pan integral", Precio: 12},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			mockStore := new(MockProductoStore)
			mockStore.On("Save", mock.Anything, tc.toStore).Return(&tc.stored, nil)
			service := NewService(mockStore)

			// when
			saved, err := service.Save(context.Background(), tc.input)

			// then
			require.NoError(t, err)
			assert.Equal(t, tc.expected, *saved)
			mockStore.AssertExpectations(t)
		})
	}
}

func Test_Service_Save_NotFound(t *testing.T) {
	// given
	mockStore := new(MockProductoStore)
	mockStore.On("Save", mock.Anything, mock.Anything).Return(nil, perrors.ErrProductoNotFound)
	service := NewService(mockStore)

	// when
	saved, err := service.Save(context.Background(), ProductoDto{ID: 99, Nombre: "X", Precio: 1})

	// then
	assert.ErrorIs(t, err, perrors.ErrProductoNotFound)
	assert.Nil(t, saved)
}

func Test_Service_DeleteByID(t *testing.T) {
	errStore := errors.New("store error")
	testCases := []struct {
		name        string
		exists      bool
		existsErr   error
		deleteErr   error
		expectCall  bool
		expected    bool
		expectError error
	}{
		{name: "present is deleted", exists: true, expectCall: true, expected: true},
		{name: "absent is not deleted", exists: false, expectCall: false, expected: false},
		{name: "exists check fails", existsErr: errStore, expectError: errStore},
		{name: "delete fails", exists: true, deleteErr: errStore, expectCall: true, expectError: errStore},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			mockStore := new(MockProductoStore)
			mockStore.On("ExistsByID", mock.Anything, int64(3)).Return(tc.exists, tc.existsErr)
			if tc.expectCall {
				mockStore.On("DeleteByID", mock.Anything, int64(3)).Return(tc.deleteErr)
			}
			service := NewService(mockStore)

			// when
			deleted, err := service.DeleteByID(context.Background(), 3)

			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.False(t, deleted)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, deleted)
			if !tc.expectCall {
				mockStore.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
			}
			mockStore.AssertExpectations(t)
		})
	}
}

func Test_Service_Queries_Delegate(t *testing.T) {
	rows := []db.Producto{{ID: 1, Nombre: "Pan", Precio: 10}}
	dtos := []ProductoDto{{ID: 1, Nombre: "Pan", Precio: 10}}
	ctx := context.Background()

	testCases := []struct {
		name   string
		method string
		args   []any
		call   func(s *Service) ([]ProductoDto, error)
	}{
		{name: "FindByNombre", method: "FindByNombreIgnoreCase", args: []any{"pan"},
			call: func(s *Service) ([]ProductoDto, error) { return s.FindByNombre(ctx, "pan") }},
		{name: "FindByNombreContaining", method: "FindByNombreContainingIgnoreCase", args: []any{"a"},
			call: func(s *Service) ([]ProductoDto, error) { return s.FindByNombreContaining(ctx, "a") }},
		{name: "FindByPrecioRange", method: "FindByPrecioBetween", args: []any{1.0, 20.0},
			call: func(s *Service) ([]ProductoDto, error) { return s.FindByPrecioRange(ctx, 1, 20) }},
		{name: "FindByPrecioGreaterThan", method: "FindByPrecioGreaterThan", args: []any{5.0},
			call: func(s *Service) ([]ProductoDto, error) { return s.FindByPrecioGreaterThan(ctx, 5) }},
		{name: "FindByPrecioLessThan", method: "FindByPrecioLessThan", args: []any{50.0},
			call: func(s *Service) ([]ProductoDto, error) { return s.FindByPrecioLessThan(ctx, 50) }},
		{name: "FindByNombreAndPrecioRange", method: "FindByNombreAndPrecioRange", args: []any{"Pan", 0.0, 100.0},
			call: func(s *Service) ([]ProductoDto, error) { return s.FindByNombreAndPrecioRange(ctx, "Pan", 0, 100) }},
		{name: "FindAllOrderByPrecio", method: "FindAllOrderByPrecioAsc",
			call: func(s *Service) ([]ProductoDto, error) { return s.FindAllOrderByPrecio(ctx) }},
		{name: "FindAllOrderByNombre", method: "FindAllOrderByNombreAsc",
			call: func(s *Service) ([]ProductoDto, error) { return s.FindAllOrderByNombre(ctx) }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			mockStore := new(MockProductoStore)
			mockStore.On(tc.method, append([]any{mock.Anything}, tc.args...)...).Return(rows, nil)
			service := NewService(mockStore)

			// when
			found, err := tc.call(service)

			// then
			require.NoError(t, err)
			assert.Equal(t, dtos, found)
			mockStore.AssertExpectations(t)
		})
	}
}

func Test_Service_Query_Error(t *testing.T) {
	// given
	errStore := errors.New("store error")
	mockStore := new(MockProductoStore)
	mockStore.On("FindAllOrderByNombreAsc", mock.Anything).Return(nil, errStore)
	service := NewService(mockStore)

	// when
	found, err := service.FindAllOrderByNombre(context.Background())

	// then
	assert.ErrorIs(t, err, errStore)
	assert.Nil(t, found)
}

func Test_Service_CountAndExists(t *testing.T) {
	// given
	mockStore := new(MockProductoStore)
	mockStore.On("Count", mock.Anything).Return(int64(3), nil)
	mockStore.On("ExistsByID", mock.Anything, int64(1)).Return(true, nil)
	mockStore.On("ExistsByNombreIgnoreCase", mock.Anything, "PAN").Return(true, nil)
	service := NewService(mockStore)
	ctx := context.Background()

	// when
	count, errCount := service.Count(ctx)
	existsID, errID := service.ExistsByID(ctx, 1)
	existsNombre, errNombre := service.ExistsByNombre(ctx, "PAN")

	// then
	require.NoError(t, errCount)
	require.NoError(t, errID)
	require.NoError(t, errNombre)
	assert.Equal(t, int64(3), count)
	assert.True(t, existsID)
	assert.True(t, existsNombre)
}
